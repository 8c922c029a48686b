package chaincode

import (
	"encoding/json"
	"testing"

	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStub(t *testing.T) *shimtest.MockStub {
	t.Helper()
	cc, err := contractapi.NewChaincode(&SmartContract{})
	require.NoError(t, err)
	return shimtest.NewMockStub("basic", cc)
}

func invoke(stub *shimtest.MockStub, txID string, function string, args ...string) ([]byte, error) {
	raw := [][]byte{[]byte(function)}
	for _, a := range args {
		raw = append(raw, []byte(a))
	}
	response := stub.MockInvoke(txID, raw)
	if response.Status != shim.OK {
		return nil, errors.New(response.Message)
	}
	return response.Payload, nil
}

func TestInitLedger(t *testing.T) {
	stub := newStub(t)

	_, err := invoke(stub, "tx1", "InitLedger")
	require.NoError(t, err)

	payload, err := invoke(stub, "tx2", "GetAllAssets")
	require.NoError(t, err)

	var assets []Asset
	require.NoError(t, json.Unmarshal(payload, &assets))
	require.Len(t, assets, 6)
	assert.Equal(t, Asset{ID: "asset1", Color: "blue", Size: 5, Owner: "Tomoko", AppraisedValue: 300}, assets[0])
	assert.Equal(t, Asset{ID: "asset6", Color: "white", Size: 15, Owner: "Michel", AppraisedValue: 800}, assets[5])
}

func TestGetAllAssetsEmpty(t *testing.T) {
	stub := newStub(t)

	payload, err := invoke(stub, "tx1", "GetAllAssets")
	require.NoError(t, err)

	var assets []Asset
	require.NoError(t, json.Unmarshal(payload, &assets))
	assert.Empty(t, assets)
}

func TestCreateAndReadAsset(t *testing.T) {
	stub := newStub(t)

	_, err := invoke(stub, "tx1", "ReadAsset", "asset100")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the asset asset100 does not exist")

	_, err = invoke(stub, "tx2", "CreateAsset", "asset100", "yellow", "5", "Tom", "1300")
	require.NoError(t, err)

	payload, err := invoke(stub, "tx3", "ReadAsset", "asset100")
	require.NoError(t, err)

	var asset Asset
	require.NoError(t, json.Unmarshal(payload, &asset))
	assert.Equal(t, Asset{ID: "asset100", Color: "yellow", Size: 5, Owner: "Tom", AppraisedValue: 1300}, asset)

	_, err = invoke(stub, "tx4", "CreateAsset", "asset100", "yellow", "5", "Tom", "1300")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the asset asset100 already exists")
}

func TestCreateAssetEmitsEvent(t *testing.T) {
	stub := newStub(t)

	_, err := invoke(stub, "tx1", "CreateAsset", "asset7", "orange", "12", "Saptha", "900")
	require.NoError(t, err)

	select {
	case e := <-stub.ChaincodeEventsChannel:
		assert.Equal(t, CreateAssetEvent, e.EventName)
		var asset Asset
		require.NoError(t, json.Unmarshal(e.Payload, &asset))
		assert.Equal(t, "asset7", asset.ID)
		assert.Equal(t, "Saptha", asset.Owner)
	default:
		t.Fatal("no chaincode event emitted")
	}
}

func TestTransferAssetReturnsOldOwner(t *testing.T) {
	stub := newStub(t)

	_, err := invoke(stub, "tx1", "InitLedger")
	require.NoError(t, err)

	payload, err := invoke(stub, "tx2", "TransferAsset", "asset1", "Saptha")
	require.NoError(t, err)
	assert.Equal(t, "Tomoko", string(payload))

	payload, err = invoke(stub, "tx3", "ReadAsset", "asset1")
	require.NoError(t, err)
	var asset Asset
	require.NoError(t, json.Unmarshal(payload, &asset))
	assert.Equal(t, "Saptha", asset.Owner)

	_, err = invoke(stub, "tx4", "TransferAsset", "asset70", "Saptha")
	assert.Error(t, err)
}

func TestUpdateAndDeleteAsset(t *testing.T) {
	stub := newStub(t)

	_, err := invoke(stub, "tx1", "UpdateAsset", "asset70", "blue", "5", "Tomoko", "300")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the asset asset70 does not exist")

	_, err = invoke(stub, "tx2", "InitLedger")
	require.NoError(t, err)

	_, err = invoke(stub, "tx3", "UpdateAsset", "asset2", "purple", "7", "Brad", "450")
	require.NoError(t, err)

	payload, err := invoke(stub, "tx4", "ReadAsset", "asset2")
	require.NoError(t, err)
	var asset Asset
	require.NoError(t, json.Unmarshal(payload, &asset))
	assert.Equal(t, "purple", asset.Color)
	assert.Equal(t, 450, asset.AppraisedValue)

	payload, err = invoke(stub, "tx5", "AssetExists", "asset2")
	require.NoError(t, err)
	assert.Equal(t, "true", string(payload))

	_, err = invoke(stub, "tx6", "DeleteAsset", "asset2")
	require.NoError(t, err)

	payload, err = invoke(stub, "tx7", "AssetExists", "asset2")
	require.NoError(t, err)
	assert.Equal(t, "false", string(payload))

	_, err = invoke(stub, "tx8", "DeleteAsset", "asset2")
	assert.Error(t, err)
}

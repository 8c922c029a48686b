package core

import (
	"asset-transfer-gateway/blockchains/mock"
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"asset-transfer-gateway/mocks/clientmocks"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	testifymock "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func observeLogs(t *testing.T) *observer.ObservedLogs {
	t.Helper()
	observed, logs := observer.New(zapcore.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(observed))
	t.Cleanup(restore)
	return logs
}

func orgConfig(org int) *configs.OrgConfig {
	return &configs.OrgConfig{
		Org:              org,
		ChannelName:      fmt.Sprintf("org%d", org),
		RelayChannelName: "mychannel",
		ChaincodeName:    "basic",
		MspID:            fmt.Sprintf("Org%dMSP", org),
		UserName:         "User1",
	}
}

func stubUser(cfg *configs.OrgConfig) (*types.FabricUser, error) {
	return &types.FabricUser{Label: cfg.UserName, MspID: cfg.MspID, Cert: []byte("CERT"), Key: []byte("KEY")}, nil
}

func ledgerDriver(ledger *mock.Ledger) *Driver {
	d := NewOfflineDriver(ledger)
	d.AssetID = "asset1700000000000"
	return d
}

func readAsset(t *testing.T, ledger *mock.Ledger, channelName string, id string) (types.Asset, bool) {
	t.Helper()
	raw, ok := ledger.State(channelName, "basic")[id]
	if !ok {
		return types.Asset{}, false
	}
	var asset types.Asset
	require.NoError(t, json.Unmarshal(raw, &asset))
	return asset, true
}

func TestNewDriverAssetID(t *testing.T) {
	d := NewDriver(mock.NewLedger())
	assert.Regexp(t, `^asset\d{13}$`, d.AssetID)
}

func TestRunOrgEmptyIdentityDoesNotConnect(t *testing.T) {
	root := t.TempDir()
	cfg := orgConfig(1)
	cfg.CertDirectoryPath = filepath.Join(root, "signcerts")
	cfg.KeyDirectoryPath = filepath.Join(root, "keystore")
	require.NoError(t, os.MkdirAll(cfg.CertDirectoryPath, 0700))
	require.NoError(t, os.MkdirAll(cfg.KeyDirectoryPath, 0700))

	connector := clientmocks.NewConnector(t)
	d := NewDriver(connector)

	err := d.RunOrg(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no files in directory")
	connector.AssertNotCalled(t, "Connect", testifymock.Anything, testifymock.Anything)

	err = d.Run(context.Background(), []*configs.OrgConfig{cfg, orgConfig(2)})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "org 1")
}

func TestRunOrgDemo(t *testing.T) {
	logs := observeLogs(t)
	ledger := mock.NewLedger()
	d := ledgerDriver(ledger)

	require.NoError(t, d.RunOrg(context.Background(), orgConfig(1)))

	asset, ok := readAsset(t, ledger, "org1", "asset1700000000000-org1")
	require.True(t, ok)
	assert.Equal(t, NewOwner, asset.Owner)
	assert.Len(t, ledger.State("org1", "basic"), 7)
	_, ok = readAsset(t, ledger, "org1", "asset70")
	assert.False(t, ok)

	assert.Equal(t, 0, ledger.OpenSessions())
	assert.Equal(t, 1, logs.FilterMessage("*** Successfully caught the error").Len())
	assert.Equal(t, 0, logs.FilterMessage("error running org").Len())
}

func TestRunOrgsSequentially(t *testing.T) {
	ledger := mock.NewLedger()
	d := ledgerDriver(ledger)

	cfgs := []*configs.OrgConfig{orgConfig(1), orgConfig(2), orgConfig(3)}
	require.NoError(t, d.Run(context.Background(), cfgs))

	for org := 1; org <= 3; org++ {
		channelName := fmt.Sprintf("org%d", org)
		asset, ok := readAsset(t, ledger, channelName, d.orgAssetID(org))
		require.True(t, ok, channelName)
		assert.Equal(t, NewOwner, asset.Owner)
	}
	assert.Empty(t, ledger.State("mychannel", "basic"))
}

func TestRunOrgDemoErrorIsLogged(t *testing.T) {
	logs := observeLogs(t)

	contract := clientmocks.NewContract(t)
	contract.On("Submit", testifymock.Anything, "InitLedger").Return(nil, errors.New("endorsement failure"))

	session := clientmocks.NewSession(t)
	session.On("Contract", "org2", "basic").Return(contract, nil)
	session.On("Close").Return().Once()

	connector := clientmocks.NewConnector(t)
	connector.On("Connect", testifymock.Anything, testifymock.Anything).Return(session, nil)

	d := NewDriver(connector)
	d.loadUser = stubUser

	require.NoError(t, d.RunOrg(context.Background(), orgConfig(2)))

	entries := logs.FilterMessage("error running org").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "endorsement failure", entries[0].ContextMap()["error"])
}

func TestRunOrgRejectedTransferIsLogged(t *testing.T) {
	logs := observeLogs(t)

	commit := clientmocks.NewCommit(t)
	commit.On("Result").Return([]byte("Tom"))
	commit.On("TransactionID").Return("tx9")
	commit.On("Status", testifymock.Anything).Return(&types.CommitStatus{TransactionID: "tx9", Code: 11}, nil)

	contract := clientmocks.NewContract(t)
	contract.On("Submit", testifymock.Anything, "InitLedger").Return(nil, nil)
	contract.On("Evaluate", testifymock.Anything, "GetAllAssets").Return([]byte("[]"), nil)
	contract.On("Submit", testifymock.Anything, "CreateAsset", "asset1-org1", "yellow", "5", "Tom", "1300").Return(nil, nil)
	contract.On("SubmitAsync", testifymock.Anything, "TransferAsset", "asset1-org1", NewOwner).Return(commit, nil)

	session := clientmocks.NewSession(t)
	session.On("Contract", "org1", "basic").Return(contract, nil)
	session.On("Close").Return().Once()

	connector := clientmocks.NewConnector(t)
	connector.On("Connect", testifymock.Anything, testifymock.Anything).Return(session, nil)

	d := NewDriver(connector)
	d.loadUser = stubUser
	d.AssetID = "asset1"

	require.NoError(t, d.RunOrg(context.Background(), orgConfig(1)))

	entries := logs.FilterMessage("error running org").All()
	require.Len(t, entries, 1)
	assert.Contains(t, entries[0].ContextMap()["error"], "tx9")
	contract.AssertNotCalled(t, "Evaluate", testifymock.Anything, "ReadAsset", "asset1-org1")
}

func TestRunOrgConnectError(t *testing.T) {
	connector := clientmocks.NewConnector(t)
	connector.On("Connect", testifymock.Anything, testifymock.Anything).Return(nil, errors.New("dial timeout"))

	d := NewDriver(connector)
	d.loadUser = stubUser

	err := d.RunOrg(context.Background(), orgConfig(3))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial timeout")
}

func TestRunOrgContractErrorClosesSession(t *testing.T) {
	session := clientmocks.NewSession(t)
	session.On("Contract", "org1", "basic").Return(nil, errors.New("channel not found"))
	session.On("Close").Return().Once()

	connector := clientmocks.NewConnector(t)
	connector.On("Connect", testifymock.Anything, testifymock.Anything).Return(session, nil)

	d := NewDriver(connector)
	d.loadUser = stubUser

	assert.Error(t, d.RunOrg(context.Background(), orgConfig(1)))
}

func TestRunOrgRelaysCreatedAsset(t *testing.T) {
	ledger := mock.NewLedger()
	d := ledgerDriver(ledger)
	d.Listen = true

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error)
	go func() { done <- d.RunOrg(ctx, orgConfig(2)) }()

	require.Eventually(t, func() bool {
		_, ok := readAsset(t, ledger, "mychannel", "asset1700000000000-org2")
		return ok
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)

	relayed, _ := readAsset(t, ledger, "mychannel", "asset1700000000000-org2")
	assert.Equal(t, "Tom", relayed.Owner)
	assert.Len(t, ledger.State("mychannel", "basic"), 1)
	assert.Equal(t, 0, ledger.OpenSessions())
}

func TestRunOrgsRelayEveryCreatedAsset(t *testing.T) {
	logs := observeLogs(t)
	ledger := mock.NewLedger()
	d := ledgerDriver(ledger)
	d.Listen = true
	d.ListenTimeout = 100 * time.Millisecond

	cfgs := []*configs.OrgConfig{orgConfig(1), orgConfig(2), orgConfig(3)}
	require.NoError(t, d.Run(context.Background(), cfgs))

	relayed := ledger.State("mychannel", "basic")
	assert.Len(t, relayed, 3)
	for org := 1; org <= 3; org++ {
		asset, ok := readAsset(t, ledger, "mychannel", d.orgAssetID(org))
		require.True(t, ok, "org %d", org)
		assert.Equal(t, "Tom", asset.Owner)
	}
	assert.Equal(t, 0, logs.FilterMessage("failed to handle chaincode event").Len())
	assert.Equal(t, 3, logs.FilterMessage("relayed asset").Len())
	assert.Equal(t, 0, ledger.OpenSessions())
}

func TestRunOrgListenTimeout(t *testing.T) {
	ledger := mock.NewLedger()
	d := ledgerDriver(ledger)
	d.Listen = true
	d.ListenTimeout = 50 * time.Millisecond

	require.NoError(t, d.RunOrg(context.Background(), orgConfig(3)))
	assert.Equal(t, 0, ledger.OpenSessions())
}

// Package assettransfer is a typed client for the asset-transfer-basic
// chaincode.
package assettransfer

import (
	"asset-transfer-gateway/blockchains/clientinterfaces"
	"asset-transfer-gateway/blockchains/types"
	"context"
	"encoding/json"
	"strconv"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Client invokes the asset-transfer chaincode through a contract proxy.
type Client struct {
	contract clientinterfaces.Contract
}

// NewClient wraps the given contract.
func NewClient(contract clientinterfaces.Contract) *Client {
	return &Client{contract: contract}
}

// PendingTransfer is an ownership transfer that was endorsed but may not be
// committed yet.
type PendingTransfer struct {
	OldOwner string
	commit   clientinterfaces.Commit
}

// TransactionID of the submitted transfer.
func (p *PendingTransfer) TransactionID() string {
	return p.commit.TransactionID()
}

// Wait blocks until the transfer commits. A transaction rejected by the
// network is reported as an error.
func (p *PendingTransfer) Wait(ctx context.Context) error {
	status, err := p.commit.Status(ctx)
	if err != nil {
		return err
	}
	if !status.Successful {
		return errors.Errorf("transaction %s failed to commit with status code %d (%s)",
			status.TransactionID, int32(status.Code), status.Code.String())
	}

	fields := []zap.Field{zap.String("txID", status.TransactionID)}
	if status.BlockNumber > 0 {
		fields = append(fields, zap.Uint64("block", status.BlockNumber))
	}
	zap.L().Debug("transfer committed", fields...)
	return nil
}

// InitLedger creates the initial set of assets on the ledger.
func (c *Client) InitLedger(ctx context.Context) error {
	_, err := c.contract.Submit(ctx, "InitLedger")
	return err
}

// GetAllAssets returns every asset on the ledger.
func (c *Client) GetAllAssets(ctx context.Context) ([]types.Asset, error) {
	result, err := c.contract.Evaluate(ctx, "GetAllAssets")
	if err != nil {
		return nil, err
	}

	assets := []types.Asset{}
	if len(result) == 0 {
		return assets, nil
	}
	if err := json.Unmarshal(result, &assets); err != nil {
		return nil, errors.Wrap(err, "failed to decode assets")
	}
	return assets, nil
}

// CreateAsset submits a new asset and waits for it to commit.
func (c *Client) CreateAsset(ctx context.Context, asset types.Asset) error {
	_, err := c.contract.Submit(ctx, "CreateAsset", assetArgs(asset)...)
	return err
}

// UpdateAsset overwrites an existing asset.
func (c *Client) UpdateAsset(ctx context.Context, asset types.Asset) error {
	_, err := c.contract.Submit(ctx, "UpdateAsset", assetArgs(asset)...)
	return err
}

// DeleteAsset removes an asset from the ledger.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	_, err := c.contract.Submit(ctx, "DeleteAsset", id)
	return err
}

// ReadAsset returns the asset with the given id.
func (c *Client) ReadAsset(ctx context.Context, id string) (*types.Asset, error) {
	result, err := c.contract.Evaluate(ctx, "ReadAsset", id)
	if err != nil {
		return nil, err
	}

	var asset types.Asset
	if err := json.Unmarshal(result, &asset); err != nil {
		return nil, errors.Wrapf(err, "failed to decode asset %s", id)
	}
	return &asset, nil
}

// AssetExists reports whether an asset with the given id is on the ledger.
func (c *Client) AssetExists(ctx context.Context, id string) (bool, error) {
	result, err := c.contract.Evaluate(ctx, "AssetExists", id)
	if err != nil {
		return false, err
	}

	exists, err := strconv.ParseBool(string(result))
	if err != nil {
		return false, errors.Wrapf(err, "unexpected AssetExists result %q", result)
	}
	return exists, nil
}

// TransferAsset changes the owner and waits for the commit. It returns the
// previous owner.
func (c *Client) TransferAsset(ctx context.Context, id string, newOwner string) (string, error) {
	result, err := c.contract.Submit(ctx, "TransferAsset", id, newOwner)
	if err != nil {
		return "", err
	}
	return string(result), nil
}

// SubmitTransferAsset changes the owner without waiting for the commit. The
// previous owner is known as soon as the transaction is endorsed.
func (c *Client) SubmitTransferAsset(ctx context.Context, id string, newOwner string) (*PendingTransfer, error) {
	commit, err := c.contract.SubmitAsync(ctx, "TransferAsset", id, newOwner)
	if err != nil {
		return nil, err
	}
	return &PendingTransfer{OldOwner: string(commit.Result()), commit: commit}, nil
}

func assetArgs(asset types.Asset) []string {
	return []string{
		asset.ID,
		asset.Color,
		strconv.Itoa(asset.Size),
		asset.Owner,
		strconv.Itoa(asset.AppraisedValue),
	}
}

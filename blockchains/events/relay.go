package events

import (
	"asset-transfer-gateway/blockchains/assettransfer"
	"asset-transfer-gateway/blockchains/types"
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// AssetRelay recreates every asset carried by an event on a second contract.
type AssetRelay struct {
	target *assettransfer.Client
}

func NewAssetRelay(target *assettransfer.Client) *AssetRelay {
	return &AssetRelay{target: target}
}

func (r *AssetRelay) Handle(ctx context.Context, event *types.ChaincodeEvent) error {
	var asset types.Asset
	if err := json.Unmarshal(event.Payload, &asset); err != nil {
		return errors.Wrapf(err, "invalid %s event payload", event.EventName)
	}
	if asset.ID == "" {
		return errors.Errorf("%s event payload carries no asset ID", event.EventName)
	}

	if err := r.target.CreateAsset(ctx, asset); err != nil {
		return errors.Wrapf(err, "failed to relay asset %s", asset.ID)
	}

	zap.L().Info("relayed asset", zap.String("assetID", asset.ID), zap.String("owner", asset.Owner))
	return nil
}

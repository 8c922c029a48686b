package core

import (
	"asset-transfer-gateway/blockchains/assettransfer"
	"asset-transfer-gateway/blockchains/clientinterfaces"
	"asset-transfer-gateway/blockchains/events"
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// NewOwner receives the asset transferred by the demo.
const NewOwner = "Saptha"

// Driver runs the demo once for each organization.
type Driver struct {
	connector clientinterfaces.Connector
	loadUser  func(cfg *configs.OrgConfig) (*types.FabricUser, error)

	// Listen relays the CreateAsset events of the org's channel to its relay
	// channel while the demo runs, and for ListenTimeout afterwards. A zero
	// ListenTimeout keeps listening until the context is cancelled.
	Listen        bool
	ListenTimeout time.Duration

	// AssetID prefixes the asset created by the demo. Each org appends its
	// number, so assets relayed to a shared channel never collide.
	AssetID string
}

// NewDriver returns a driver connecting through the given connector. The asset
// id prefix is derived from the current time, as asset<unix millis>.
func NewDriver(connector clientinterfaces.Connector) *Driver {
	return &Driver{
		connector: connector,
		loadUser:  clientinterfaces.LoadUser,
		AssetID:   fmt.Sprintf("asset%d", time.Now().UnixNano()/int64(time.Millisecond)),
	}
}

// NewOfflineDriver returns a driver for connectors that need no credentials,
// such as the in-process ledger. Nothing is read from disk.
func NewOfflineDriver(connector clientinterfaces.Connector) *Driver {
	d := NewDriver(connector)
	d.loadUser = func(cfg *configs.OrgConfig) (*types.FabricUser, error) {
		return &types.FabricUser{Label: cfg.UserName, MspID: cfg.MspID}, nil
	}
	return d
}

// Run handles the organizations one after the other. It stops at the first
// organization that cannot be set up.
func (d *Driver) Run(ctx context.Context, cfgs []*configs.OrgConfig) error {
	for _, cfg := range cfgs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := d.RunOrg(ctx, cfg); err != nil {
			return errors.Wrapf(err, "org %d", cfg.Org)
		}
	}
	return nil
}

// RunOrg connects as the organization's user and runs the demo. Errors setting
// up the identity, the session or the contracts are returned; errors raised by
// the demo itself are logged.
func (d *Driver) RunOrg(ctx context.Context, cfg *configs.OrgConfig) error {
	log := zap.L().With(zap.Int("org", cfg.Org), zap.String("channel", cfg.ChannelName))

	// The identity is read before any connection is attempted.
	user, err := d.loadUser(cfg)
	if err != nil {
		return err
	}

	session, err := d.connector.Connect(cfg, user)
	if err != nil {
		return errors.Wrap(err, "failed to connect")
	}
	defer session.Close()

	contract, err := session.Contract(cfg.ChannelName, cfg.ChaincodeName)
	if err != nil {
		return err
	}

	log.Info("starting")

	var wg sync.WaitGroup
	listenCtx, stopListening := context.WithCancel(ctx)
	defer func() {
		stopListening()
		wg.Wait()
	}()

	if d.Listen {
		relay, err := session.Contract(cfg.RelayChannelName, cfg.ChaincodeName)
		if err != nil {
			return err
		}

		// Subscribe before the demo runs so its own CreateAsset is relayed.
		ready := make(chan struct{})
		listener := events.NewListener(&readyContract{Contract: contract, ready: ready}, events.NewAssetRelay(assettransfer.NewClient(relay)))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := listener.Run(listenCtx); err != nil {
				log.Error("error listening for events", zap.Error(err))
			}
		}()

		select {
		case <-ready:
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	if err := d.demo(ctx, assettransfer.NewClient(contract), d.orgAssetID(cfg.Org), log); err != nil {
		log.Error("error running org", zap.Error(err))
	}

	if d.Listen {
		d.waitListenWindow(ctx, log)
	}

	log.Info("done")
	return nil
}

func (d *Driver) waitListenWindow(ctx context.Context, log *zap.Logger) {
	if d.ListenTimeout <= 0 {
		log.Info("listening for events until interrupted")
		<-ctx.Done()
		return
	}

	log.Info("listening for events", zap.Duration("timeout", d.ListenTimeout))
	timer := time.NewTimer(d.ListenTimeout)
	defer timer.Stop()
	select {
	case <-timer.C:
	case <-ctx.Done():
	}
}

// orgAssetID is the id of the asset created by the demo of the given org.
func (d *Driver) orgAssetID(org int) string {
	return fmt.Sprintf("%s-org%d", d.AssetID, org)
}

// demo is the fixed script run against the organization's channel.
func (d *Driver) demo(ctx context.Context, client *assettransfer.Client, assetID string, log *zap.Logger) error {
	log.Info("--> Submit Transaction: InitLedger, function creates the initial set of assets on the ledger")
	if err := client.InitLedger(ctx); err != nil {
		return err
	}
	log.Info("*** Transaction committed successfully")

	log.Info("--> Evaluate Transaction: GetAllAssets, function returns all the current assets on the ledger")
	assets, err := client.GetAllAssets(ctx)
	if err != nil {
		return err
	}
	log.Info("*** Result", zap.Any("assets", assets))

	log.Info("--> Submit Transaction: CreateAsset, creates new asset with ID, Color, Size, Owner and AppraisedValue arguments")
	err = client.CreateAsset(ctx, types.Asset{
		ID:             assetID,
		Color:          "yellow",
		Size:           5,
		Owner:          "Tom",
		AppraisedValue: 1300,
	})
	if err != nil {
		return err
	}
	log.Info("*** Transaction committed successfully")

	log.Info("--> Async Submit Transaction: TransferAsset, updates existing asset owner")
	pending, err := client.SubmitTransferAsset(ctx, assetID, NewOwner)
	if err != nil {
		return err
	}
	log.Info(fmt.Sprintf("*** Successfully submitted transaction to transfer ownership from %s to %s", pending.OldOwner, NewOwner))
	log.Info("*** Waiting for transaction commit", zap.String("txID", pending.TransactionID()))
	if err := pending.Wait(ctx); err != nil {
		return err
	}
	log.Info("*** Transaction committed successfully")

	log.Info("--> Evaluate Transaction: ReadAsset, function returns asset attributes")
	asset, err := client.ReadAsset(ctx, assetID)
	if err != nil {
		return err
	}
	log.Info("*** Result", zap.Any("asset", asset))

	log.Info("--> Submit Transaction: UpdateAsset asset70, asset70 does not exist and should return an error")
	err = client.UpdateAsset(ctx, types.Asset{ID: "asset70", Color: "blue", Size: 5, Owner: "Tomoko", AppraisedValue: 300})
	if err == nil {
		log.Error("******** FAILED to return an error")
	} else {
		log.Info("*** Successfully caught the error", zap.Error(err))
	}

	return nil
}

// readyContract signals once the event subscription is open.
type readyContract struct {
	clientinterfaces.Contract
	ready chan struct{}
	once  sync.Once
}

func (c *readyContract) Events(ctx context.Context) (<-chan *types.ChaincodeEvent, error) {
	stream, err := c.Contract.Events(ctx)
	c.once.Do(func() { close(c.ready) })
	return stream, err
}

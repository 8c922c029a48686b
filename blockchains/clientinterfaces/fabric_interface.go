package clientinterfaces

import (
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"sync"

	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/event"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/msp"
	mspprovider "github.com/hyperledger/fabric-sdk-go/pkg/common/providers/msp"
	"github.com/hyperledger/fabric-sdk-go/pkg/core/config"
	"github.com/hyperledger/fabric-sdk-go/pkg/fabsdk"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// FabricConnector connects to a Fabric gateway peer with fabric-sdk-go.
type FabricConnector struct{}

// FabricInterface is the Hyperledger Fabric implementation of Session.
// It owns the SDK instance, and with it every connection opened to the
// peer, the orderers and the event service.
type FabricInterface struct {
	sdk      *fabsdk.FabricSDK
	identity mspprovider.SigningIdentity // signs every proposal and transaction
	org      string
	timeouts configs.Timeouts

	mu       sync.Mutex
	networks map[string]*fabricNetwork // channel clients, one per channel

	subscriptions *subscriptions
}

// fabricNetwork holds the clients bound to one channel.
type fabricNetwork struct {
	client *channel.Client
	events *event.Client
}

// Connect builds the connection profile of the organization, starts the SDK
// and turns the user's certificate and private key into a signing identity.
func (FabricConnector) Connect(cfg *configs.OrgConfig, user *types.FabricUser) (Session, error) {
	profile, err := buildConnectionProfile(cfg)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build connection profile")
	}

	sdk, err := fabsdk.New(config.FromRaw(profile, "yaml"))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create SDK")
	}

	mspClient, err := msp.New(sdk.Context(), msp.WithOrg(cfg.OrgName()))
	if err != nil {
		sdk.Close()
		return nil, errors.Wrap(err, "failed to create MSP client")
	}

	identity, err := mspClient.CreateSigningIdentity(
		mspprovider.WithCert(user.Cert),
		mspprovider.WithPrivateKey(user.Key))
	if err != nil {
		sdk.Close()
		return nil, errors.Wrap(err, "failed to create signing identity")
	}

	zap.L().Info("connected to gateway peer",
		zap.Int("org", cfg.Org),
		zap.String("endpoint", cfg.PeerEndpoint),
		zap.String("hostAlias", cfg.PeerHostAlias),
		zap.String("mspID", identity.Identifier().MSPID))

	return &FabricInterface{
		sdk:      sdk,
		identity: identity,
		org:      cfg.OrgName(),
		timeouts: cfg.Timeouts,
		networks: make(map[string]*fabricNetwork),

		subscriptions: newSubscriptions(),
	}, nil
}

// Contract returns the chaincode on the given channel. Channel clients are
// created on first use and reused afterwards.
func (f *FabricInterface) Contract(channelName string, chaincodeName string) (Contract, error) {
	network, err := f.network(channelName)
	if err != nil {
		return nil, err
	}

	return &fabricContract{
		chaincodeID:   chaincodeName,
		client:        network.client,
		events:        network.events,
		subscriptions: f.subscriptions,
		timeouts:      f.timeouts,
	}, nil
}

func (f *FabricInterface) network(channelName string) (*fabricNetwork, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if n, ok := f.networks[channelName]; ok {
		return n, nil
	}

	provider := f.sdk.ChannelContext(channelName, fabsdk.WithIdentity(f.identity), fabsdk.WithOrg(f.org))

	client, err := channel.New(provider)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create channel client for %s", channelName)
	}

	// Full blocks are needed, filtered blocks carry no event payload.
	events, err := event.New(provider, event.WithBlockEvents())
	if err != nil {
		return nil, errors.Wrapf(err, "failed to create event client for %s", channelName)
	}

	n := &fabricNetwork{client: client, events: events}
	f.networks[channelName] = n
	return n, nil
}

// Close the connection to the gateway peer. Open event subscriptions are
// unregistered first.
func (f *FabricInterface) Close() {
	f.subscriptions.close()

	f.mu.Lock()
	f.networks = make(map[string]*fabricNetwork)
	f.mu.Unlock()

	f.sdk.Close()
}

package clientinterfaces

import (
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"context"
)

//go:generate mockery --name Connector --output ../../mocks/clientmocks --outpkg clientmocks
//go:generate mockery --name Session --output ../../mocks/clientmocks --outpkg clientmocks
//go:generate mockery --name Contract --output ../../mocks/clientmocks --outpkg clientmocks
//go:generate mockery --name Commit --output ../../mocks/clientmocks --outpkg clientmocks

// Connector opens a gateway session for one organization.
type Connector interface {
	// Connect uses the identity to sign every request made through the
	// returned session. The caller owns the session and must Close it.
	Connect(cfg *configs.OrgConfig, user *types.FabricUser) (Session, error)
}

// Session is an open connection to the organization's gateway peer.
type Session interface {
	// Contract resolves the chaincode on the named channel.
	Contract(channelName string, chaincodeName string) (Contract, error)

	// Close releases the network layer and the underlying connections.
	Close()
}

// Contract is a chaincode deployed on a channel.
// Functions are invoked by name with string arguments.
type Contract interface {
	Name() string

	// Evaluate runs a read-only query against a single peer, nothing is
	// ordered or committed.
	Evaluate(ctx context.Context, function string, args ...string) ([]byte, error)

	// Submit endorses, orders and waits for the transaction to be committed.
	// Chaincode rejections are returned as errors carrying the chaincode
	// message.
	Submit(ctx context.Context, function string, args ...string) ([]byte, error)

	// SubmitAsync returns once the transaction is endorsed and sent for
	// ordering; the commit outcome is obtained from the returned Commit.
	SubmitAsync(ctx context.Context, function string, args ...string) (Commit, error)

	// Events subscribes to the events emitted by this chaincode. The channel
	// is closed once ctx is done.
	Events(ctx context.Context) (<-chan *types.ChaincodeEvent, error)
}

// Commit is a transaction that has been endorsed and is waiting to commit.
type Commit interface {
	TransactionID() string

	// Result is the value returned by the chaincode at endorsement.
	Result() []byte

	// Status blocks until the transaction's commit status is known. It may be
	// called several times and always reports the same outcome.
	Status(ctx context.Context) (*types.CommitStatus, error)
}

// Package mock is an in-process Fabric network. Every channel runs its own
// copy of the asset-transfer chaincode on a shimtest stub, which makes it
// usable wherever a gateway session is expected.
package mock

import (
	"asset-transfer-gateway/blockchains/clientinterfaces"
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/contracts/fabric/assetTransfer/chaincode"
	"asset-transfer-gateway/core/configs"
	"container/list"
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/hyperledger/fabric-contract-api-go/contractapi"
	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Ledger holds the world state of every channel. It can be shared by several
// sessions, as the organizations of a network share their channels.
type Ledger struct {
	mu       sync.Mutex
	stubs    map[string]*shimtest.MockStub // by channel/chaincode
	height   map[string]uint64             // blocks committed per channel
	rejects  []peer.TxValidationCode       // codes for the next commits
	sessions int

	subscribers map[string][]*subscriber // by channel/chaincode
}

type subscriber struct {
	events chan *types.ChaincodeEvent
}

// subscriberBuffer bounds the events queued for a slow subscriber; further
// events are dropped.
const subscriberBuffer = 100

func NewLedger() *Ledger {
	return &Ledger{
		stubs:       make(map[string]*shimtest.MockStub),
		height:      make(map[string]uint64),
		subscribers: make(map[string][]*subscriber),
	}
}

// Connect implements clientinterfaces.Connector.
func (l *Ledger) Connect(cfg *configs.OrgConfig, user *types.FabricUser) (clientinterfaces.Session, error) {
	l.mu.Lock()
	l.sessions++
	l.mu.Unlock()

	zap.L().Debug("connected to in-process ledger", zap.Int("org", cfg.Org), zap.String("mspID", user.MspID))
	return &Session{ledger: l}, nil
}

// OpenSessions is the number of sessions connected and not closed yet.
func (l *Ledger) OpenSessions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.sessions
}

// RejectNextCommit makes the next submitted transaction fail validation with
// the given code. Its writes are discarded and it emits no event.
func (l *Ledger) RejectNextCommit(code peer.TxValidationCode) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rejects = append(l.rejects, code)
}

// State returns a copy of the world state of a chaincode on a channel.
func (l *Ledger) State(channelName string, chaincodeName string) map[string][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()

	state := make(map[string][]byte)
	stub, ok := l.stubs[key(channelName, chaincodeName)]
	if !ok {
		return state
	}
	for k, v := range stub.State {
		state[k] = append([]byte(nil), v...)
	}
	return state
}

// BlockHeight is the number of blocks committed on a channel.
func (l *Ledger) BlockHeight(channelName string) uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.height[channelName]
}

func key(channelName string, chaincodeName string) string {
	return channelName + "/" + chaincodeName
}

func (l *Ledger) stub(channelName string, chaincodeName string) (*shimtest.MockStub, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	k := key(channelName, chaincodeName)
	if stub, ok := l.stubs[k]; ok {
		return stub, nil
	}

	cc, err := contractapi.NewChaincode(&chaincode.SmartContract{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create chaincode")
	}
	stub := shimtest.NewMockStub(chaincodeName, cc)
	l.stubs[k] = stub
	return stub, nil
}

// Session is a connection to the in-process ledger.
type Session struct {
	ledger *Ledger
	once   sync.Once
}

func (s *Session) Contract(channelName string, chaincodeName string) (clientinterfaces.Contract, error) {
	stub, err := s.ledger.stub(channelName, chaincodeName)
	if err != nil {
		return nil, err
	}
	return &Contract{ledger: s.ledger, channel: channelName, chaincode: chaincodeName, stub: stub}, nil
}

func (s *Session) Close() {
	s.once.Do(func() {
		s.ledger.mu.Lock()
		s.ledger.sessions--
		s.ledger.mu.Unlock()
	})
}

// Contract runs transactions against the chaincode stub of one channel.
type Contract struct {
	ledger    *Ledger
	channel   string
	chaincode string
	stub      *shimtest.MockStub
}

func (c *Contract) Name() string {
	return c.chaincode
}

// snapshot of the stub's world state, restored for evaluations and rejected
// transactions.
type snapshot struct {
	state map[string][]byte
	keys  *list.List
}

func (c *Contract) snapshot() snapshot {
	s := snapshot{state: make(map[string][]byte, len(c.stub.State)), keys: list.New()}
	for k, v := range c.stub.State {
		s.state[k] = v
	}
	for e := c.stub.Keys.Front(); e != nil; e = e.Next() {
		s.keys.PushBack(e.Value)
	}
	return s
}

func (c *Contract) restore(s snapshot) {
	c.stub.State = s.state
	c.stub.Keys = s.keys
}

// drainEvents collects the events the last invocation set on the stub.
func (c *Contract) drainEvents() []*peer.ChaincodeEvent {
	var events []*peer.ChaincodeEvent
	for {
		select {
		case e := <-c.stub.ChaincodeEventsChannel:
			events = append(events, e)
		default:
			return events
		}
	}
}

func (c *Contract) invoke(txID string, function string, args []string) peer.Response {
	raw := make([][]byte, 0, len(args)+1)
	raw = append(raw, []byte(function))
	for _, a := range args {
		raw = append(raw, []byte(a))
	}
	return c.stub.MockInvoke(txID, raw)
}

func chaincodeError(response peer.Response) error {
	return errors.Errorf("chaincode returned status %d: %s", response.Status, response.Message)
}

// Evaluate runs the function and discards its writes and events.
func (c *Contract) Evaluate(ctx context.Context, function string, args ...string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	c.ledger.mu.Lock()
	defer c.ledger.mu.Unlock()

	saved := c.snapshot()
	response := c.invoke(uuid.New().String(), function, args)
	c.restore(saved)
	c.drainEvents()

	if response.Status != shim.OK {
		return nil, errors.Wrapf(chaincodeError(response), "failed to evaluate %s", function)
	}
	return response.Payload, nil
}

// Submit endorses and commits the transaction in one step.
func (c *Contract) Submit(ctx context.Context, function string, args ...string) ([]byte, error) {
	commit, err := c.SubmitAsync(ctx, function, args...)
	if err != nil {
		return nil, err
	}

	status, err := commit.Status(ctx)
	if err != nil {
		return nil, err
	}
	if !status.Successful {
		return nil, errors.Errorf("failed to submit %s: transaction %s invalidated with code %s",
			function, status.TransactionID, status.Code.String())
	}
	return commit.Result(), nil
}

// SubmitAsync executes the transaction and decides its validation outcome
// immediately. A transaction the chaincode rejects is never ordered and is
// reported as an error.
func (c *Contract) SubmitAsync(ctx context.Context, function string, args ...string) (clientinterfaces.Commit, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l := c.ledger
	l.mu.Lock()
	defer l.mu.Unlock()

	txID := uuid.New().String()
	saved := c.snapshot()
	response := c.invoke(txID, function, args)
	events := c.drainEvents()

	if response.Status != shim.OK {
		c.restore(saved)
		return nil, errors.Wrapf(chaincodeError(response), "failed to submit %s", function)
	}

	l.height[c.channel]++
	status := &types.CommitStatus{
		TransactionID: txID,
		Code:          peer.TxValidationCode_VALID,
		Successful:    true,
		BlockNumber:   l.height[c.channel] - 1,
	}

	if len(l.rejects) > 0 {
		status.Code = l.rejects[0]
		status.Successful = status.Code == peer.TxValidationCode_VALID
		l.rejects = l.rejects[1:]
	}

	if !status.Successful {
		c.restore(saved)
		return &commit{status: status, result: response.Payload}, nil
	}

	for _, e := range events {
		c.publish(&types.ChaincodeEvent{
			TransactionID: txID,
			ChaincodeID:   c.chaincode,
			EventName:     e.EventName,
			Payload:       e.Payload,
			BlockNumber:   status.BlockNumber,
		})
	}

	return &commit{status: status, result: response.Payload}, nil
}

// publish must be called with the ledger lock held.
func (c *Contract) publish(event *types.ChaincodeEvent) {
	for _, s := range c.ledger.subscribers[key(c.channel, c.chaincode)] {
		select {
		case s.events <- event:
		default:
			zap.L().Warn("dropping chaincode event for slow subscriber",
				zap.String("event", event.EventName),
				zap.String("txID", event.TransactionID))
		}
	}
}

// Events subscribes to events committed after this call.
func (c *Contract) Events(ctx context.Context) (<-chan *types.ChaincodeEvent, error) {
	l := c.ledger
	k := key(c.channel, c.chaincode)
	s := &subscriber{events: make(chan *types.ChaincodeEvent, subscriberBuffer)}

	l.mu.Lock()
	l.subscribers[k] = append(l.subscribers[k], s)
	l.mu.Unlock()

	go func() {
		<-ctx.Done()

		l.mu.Lock()
		defer l.mu.Unlock()
		subs := l.subscribers[k]
		for i, other := range subs {
			if other == s {
				l.subscribers[k] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		close(s.events)
	}()

	return s.events, nil
}

type commit struct {
	status *types.CommitStatus
	result []byte
}

func (c *commit) TransactionID() string {
	return c.status.TransactionID
}

func (c *commit) Result() []byte {
	return c.result
}

func (c *commit) Status(ctx context.Context) (*types.CommitStatus, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return c.status, nil
}

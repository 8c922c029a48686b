package clientinterfaces

import (
	"asset-transfer-gateway/blockchains/types"
	"asset-transfer-gateway/core/configs"
	"context"
	"sync"

	"github.com/hyperledger/fabric-protos-go/peer"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/channel/invoke"
	"github.com/hyperledger/fabric-sdk-go/pkg/client/event"
	"github.com/hyperledger/fabric-sdk-go/pkg/common/errors/status"
	"github.com/hyperledger/fabric-sdk-go/pkg/common/providers/fab"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// allEvents matches every event name emitted by the chaincode.
const allEvents = ".*"

// eventService is the part of *event.Client used to follow chaincode events.
type eventService interface {
	RegisterChaincodeEvent(ccID, eventFilter string) (fab.Registration, <-chan *fab.CCEvent, error)
	Unregister(reg fab.Registration)
}

var _ eventService = (*event.Client)(nil)

type fabricContract struct {
	chaincodeID   string
	client        *channel.Client
	events        eventService
	subscriptions *subscriptions
	timeouts      configs.Timeouts
}

func (c *fabricContract) Name() string {
	return c.chaincodeID
}

func (c *fabricContract) request(function string, args []string) channel.Request {
	bytes := make([][]byte, len(args))
	for i, v := range args {
		bytes[i] = []byte(v)
	}
	return channel.Request{ChaincodeID: c.chaincodeID, Fcn: function, Args: bytes}
}

// submitOptions applies the endorse, submit and commit-status timeouts.
func (c *fabricContract) submitOptions(ctx context.Context) []channel.RequestOption {
	return []channel.RequestOption{
		channel.WithParentContext(ctx),
		channel.WithTimeout(fab.PeerResponse, c.timeouts.Endorse),
		channel.WithTimeout(fab.OrdererResponse, c.timeouts.Submit),
		channel.WithTimeout(fab.Execute, c.timeouts.CommitStatus),
	}
}

// Evaluate queries a single peer, the proposal response is never sent for
// ordering.
func (c *fabricContract) Evaluate(ctx context.Context, function string, args ...string) ([]byte, error) {
	response, err := c.client.Query(c.request(function, args),
		channel.WithParentContext(ctx),
		channel.WithTimeout(fab.PeerResponse, c.timeouts.Evaluate),
		channel.WithTimeout(fab.Query, c.timeouts.Evaluate))
	if err != nil {
		return nil, errors.Wrapf(err, "failed to evaluate %s", function)
	}
	return response.Payload, nil
}

// Submit blocks until the transaction is committed or rejected.
func (c *fabricContract) Submit(ctx context.Context, function string, args ...string) ([]byte, error) {
	response, err := c.client.Execute(c.request(function, args), c.submitOptions(ctx)...)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to submit %s", function)
	}

	zap.L().Debug("transaction committed",
		zap.String("function", function),
		zap.String("txID", string(response.TransactionID)))

	return response.Payload, nil
}

// SubmitAsync runs the execute handler chain in the background and returns as
// soon as the endorsed response is known. The commit handler keeps waiting
// for the commit event and its outcome is delivered through Status.
func (c *fabricContract) SubmitAsync(ctx context.Context, function string, args ...string) (Commit, error) {
	endorsed := make(chan invoke.Response, 1)
	handler := invoke.NewSelectAndEndorseHandler(
		invoke.NewEndorsementValidationHandler(
			invoke.NewSignatureValidationHandler(
				&endorsedHandler{endorsed: endorsed, next: invoke.NewCommitHandler()},
			),
		),
	)

	commit := &fabricCommit{done: make(chan struct{})}
	request := c.request(function, args)
	options := c.submitOptions(ctx)
	go func() {
		_, err := c.client.InvokeHandler(handler, request, options...)
		commit.err = err
		close(commit.done)
	}()

	accept := func(response invoke.Response) Commit {
		commit.txID = string(response.TransactionID)
		commit.result = response.Payload
		return commit
	}

	select {
	case response := <-endorsed:
		return accept(response), nil
	case <-commit.done:
		select {
		case response := <-endorsed:
			return accept(response), nil
		default:
		}
		// The chain stopped before reaching the commit handler.
		if commit.err != nil {
			return nil, errors.Wrapf(commit.err, "failed to submit %s", function)
		}
		return nil, errors.Errorf("failed to submit %s: no endorsement received", function)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Events forwards the chaincode events of this contract until ctx is done or
// the session is closed. The registration is released before the channel is
// closed.
func (c *fabricContract) Events(ctx context.Context) (<-chan *types.ChaincodeEvent, error) {
	if !c.subscriptions.add() {
		return nil, errors.Errorf("failed to register for %s chaincode events: session closed", c.chaincodeID)
	}

	registration, notifier, err := c.events.RegisterChaincodeEvent(c.chaincodeID, allEvents)
	if err != nil {
		c.subscriptions.done()
		return nil, errors.Wrapf(err, "failed to register for %s chaincode events", c.chaincodeID)
	}

	out := make(chan *types.ChaincodeEvent)
	go func() {
		defer c.subscriptions.done()
		defer close(out)
		defer c.events.Unregister(registration)

		for {
			select {
			case <-ctx.Done():
				return
			case <-c.subscriptions.closing:
				return
			case e, ok := <-notifier:
				if !ok {
					return
				}
				ev := &types.ChaincodeEvent{
					TransactionID: e.TxID,
					ChaincodeID:   e.ChaincodeID,
					EventName:     e.EventName,
					Payload:       e.Payload,
					BlockNumber:   e.BlockNumber,
				}
				select {
				case out <- ev:
				case <-ctx.Done():
					return
				case <-c.subscriptions.closing:
					return
				}
			}
		}
	}()

	return out, nil
}

// subscriptions tracks the event forwarders of a session.
type subscriptions struct {
	mu      sync.Mutex
	closed  bool
	closing chan struct{}
	wg      sync.WaitGroup
}

func newSubscriptions() *subscriptions {
	return &subscriptions{closing: make(chan struct{})}
}

// add reserves a forwarder, it fails once the session is closed.
func (s *subscriptions) add() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}
	s.wg.Add(1)
	return true
}

func (s *subscriptions) done() {
	s.wg.Done()
}

// close stops every forwarder and waits until each one has unregistered.
func (s *subscriptions) close() {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.closing)
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// endorsedHandler publishes the validated endorsement before handing over to
// the commit handler.
type endorsedHandler struct {
	endorsed chan<- invoke.Response
	next     invoke.Handler
}

func (h *endorsedHandler) Handle(requestContext *invoke.RequestContext, clientContext *invoke.ClientContext) {
	select {
	case h.endorsed <- requestContext.Response:
	default:
		// already published by an earlier attempt
	}
	h.next.Handle(requestContext, clientContext)
}

type fabricCommit struct {
	txID   string
	result []byte

	done chan struct{}
	err  error // set before done is closed

	once   sync.Once
	status *types.CommitStatus
	serr   error
}

func (c *fabricCommit) TransactionID() string {
	return c.txID
}

func (c *fabricCommit) Result() []byte {
	return c.result
}

// Status waits for the commit handler. A transaction invalidated by the
// committing peer is reported as an unsuccessful status, any other failure
// as an error.
func (c *fabricCommit) Status(ctx context.Context) (*types.CommitStatus, error) {
	select {
	case <-c.done:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	c.once.Do(func() {
		c.status, c.serr = commitStatusFromError(c.txID, c.err)
	})
	return c.status, c.serr
}

func commitStatusFromError(txID string, err error) (*types.CommitStatus, error) {
	if err == nil {
		return &types.CommitStatus{
			TransactionID: txID,
			Code:          peer.TxValidationCode_VALID,
			Successful:    true,
		}, nil
	}

	s, ok := status.FromError(err)
	if ok && s.Group == status.EventServerStatus {
		return &types.CommitStatus{
			TransactionID: txID,
			Code:          peer.TxValidationCode(s.Code),
			Successful:    false,
		}, nil
	}

	return nil, errors.Wrapf(err, "failed to obtain commit status of %s", txID)
}

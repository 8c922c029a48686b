// Package events consumes chaincode events and hands them to a handler.
package events

import (
	"asset-transfer-gateway/blockchains/clientinterfaces"
	"asset-transfer-gateway/blockchains/types"
	"context"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Handler processes one chaincode event.
type Handler interface {
	Handle(ctx context.Context, event *types.ChaincodeEvent) error
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc func(ctx context.Context, event *types.ChaincodeEvent) error

func (f HandlerFunc) Handle(ctx context.Context, event *types.ChaincodeEvent) error {
	return f(ctx, event)
}

// Listener delivers the events of a contract to a handler, one at a time.
type Listener struct {
	contract clientinterfaces.Contract
	handler  Handler
}

func NewListener(contract clientinterfaces.Contract, handler Handler) *Listener {
	return &Listener{contract: contract, handler: handler}
}

// Run subscribes and processes events until ctx is done or the event stream
// is closed. A failing event is logged and skipped. Every call opens a new
// subscription.
func (l *Listener) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream, err := l.contract.Events(ctx)
	if err != nil {
		return errors.Wrapf(err, "failed to listen to %s events", l.contract.Name())
	}

	zap.L().Info("listening for chaincode events", zap.String("chaincode", l.contract.Name()))

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-stream:
			if !ok {
				return nil
			}

			zap.L().Debug("received chaincode event",
				zap.String("event", event.EventName),
				zap.String("txID", event.TransactionID),
				zap.Uint64("block", event.BlockNumber))

			if err := l.handler.Handle(ctx, event); err != nil {
				zap.L().Warn("failed to handle chaincode event",
					zap.String("event", event.EventName),
					zap.String("txID", event.TransactionID),
					zap.Error(err))
			}
		}
	}
}

package agent

import (
	"context"
	"fmt"

	"github.com/Panorama-Block/zico-agents-sub000/internal/router"
	"github.com/Panorama-Block/zico-agents-sub000/pkg/log"
)

// Dispatcher resolves a routing decision into the handler that owns the
// turn. The table is closed at construction and must cover exactly the
// routable handler names.
type Dispatcher struct {
	handlers map[string]Handler
	logger   log.Logger
}

func NewDispatcher(logger log.Logger, handlers ...Handler) (*Dispatcher, error) {
	table := make(map[string]Handler, len(handlers))
	for _, h := range handlers {
		if _, dup := table[h.Name()]; dup {
			return nil, fmt.Errorf("agent: duplicate handler %q", h.Name())
		}
		table[h.Name()] = h
	}
	for _, name := range router.HandlerNames() {
		if _, ok := table[name]; !ok {
			return nil, fmt.Errorf("agent: no handler registered for %q", name)
		}
	}
	for name := range table {
		if !router.ValidHandler(name) {
			return nil, fmt.Errorf("agent: handler %q is not routable", name)
		}
	}
	return &Dispatcher{handlers: table, logger: logger}, nil
}

// Dispatch hands the turn to the decided handler. An unknown target is a
// programming error upstream; the turn degrades to the default handler
// instead of failing.
func (d *Dispatcher) Dispatch(ctx context.Context, turn *Turn) (*Reply, error) {
	name := turn.Decision.TargetHandler
	h, ok := d.handlers[name]
	if !ok {
		d.logger.Warnf(ctx, "agent.Dispatcher.Dispatch: unknown handler %q, using default", name)
		h = d.handlers[router.HandlerDefault]
	}
	return h.Handle(ctx, turn)
}

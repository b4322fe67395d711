package events

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	types "github.com/crestline/origination-backend/internal/domain"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

// Handler reacts to one domain event. Handlers run after the originating
// transaction has committed; failures are logged and never propagated back to
// the request that produced the event.
type Handler func(ctx context.Context, ev types.Event) error

type Dispatcher struct {
	log      *logger.Logger
	handlers []Handler
	timeout  time.Duration
}

func NewDispatcher(baseLog *logger.Logger) *Dispatcher {
	return &Dispatcher{
		log:     baseLog.With("service", "EventDispatcher"),
		timeout: 10 * time.Second,
	}
}

func (d *Dispatcher) Register(h Handler) {
	if h == nil {
		return
	}
	d.handlers = append(d.handlers, h)
}

// Dispatch fans each event out to every handler concurrently. The caller's
// context may already be cancelled (the HTTP request is done), so dispatch
// runs on its own deadline.
func (d *Dispatcher) Dispatch(evs ...types.Event) {
	if len(d.handlers) == 0 || len(evs) == 0 {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	for _, ev := range evs {
		for _, h := range d.handlers {
			ev, h := ev, h
			g.Go(func() error {
				if err := h(gctx, ev); err != nil {
					d.log.Warn("event handler failed", "event", ev.EventName(), "error", err)
				}
				return nil
			})
		}
	}
	_ = g.Wait()
}

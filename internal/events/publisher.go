package events

import (
	"context"

	types "github.com/crestline/origination-backend/internal/domain"
)

// Publisher pushes domain events to external collaborators (notification and
// audit consumers). Fire-and-forget: callers never treat a publish failure as
// a request failure.
type Publisher interface {
	Publish(ctx context.Context, ev types.Event) error
	Close() error
}

type noopPublisher struct{}

func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, types.Event) error { return nil }
func (noopPublisher) Close() error                               { return nil }

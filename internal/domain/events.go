package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is dispatched by the orchestrator after a successful commit, never
// inside the transaction. Handlers are fire-and-forget.
type Event interface {
	EventName() string
}

type StageChanged struct {
	ApplicationID uuid.UUID  `json:"application_id"`
	FromStage     string     `json:"from_stage"`
	ToStage       string     `json:"to_stage"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (StageChanged) EventName() string { return "application.stage_changed" }

type ApplicationSettled struct {
	ApplicationID uuid.UUID  `json:"application_id"`
	ActorID       *uuid.UUID `json:"actor_id,omitempty"`
	OccurredAt    time.Time  `json:"occurred_at"`
}

func (ApplicationSettled) EventName() string { return "application.settled" }

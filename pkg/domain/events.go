package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventSessionCreated EventType = "session_created"
	EventTransition     EventType = "transition"
	EventRejection      EventType = "rejection"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
}

// TransitionEvent is emitted after a transition was persisted.
type TransitionEvent struct {
	EventBase
	Op      Operation `json:"op"`
	From    State     `json:"from"`
	To      State     `json:"to"`
	Verdict *Verdict  `json:"verdict,omitempty"`

	// Diff is computed against the snapshot the transition was applied to.
	Diff *SessionDiff `json:"diff,omitempty"`
}

// RejectionEvent is emitted when a guard refused an operation.
type RejectionEvent struct {
	EventBase
	Op    Operation `json:"op"`
	State State     `json:"state,omitempty"`
	Kind  Kind      `json:"kind"`
	Err   string    `json:"err"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnCreate     func(context.Context, *Session)
	OnTransition func(context.Context, *TransitionEvent)
	OnReject     func(context.Context, *RejectionEvent)
}

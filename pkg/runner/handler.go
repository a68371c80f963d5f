package runner

import (
	"context"

	"github.com/aretw0/casefile/pkg/domain"
)

// IOHandler defines the strategy for interacting with the listener.
// This allows switching between Text (CLI/TUI) and JSON (Structured) modes.
type IOHandler interface {
	// Present shows the current view.
	Present(ctx context.Context, view *domain.View) error

	// Choose asks the listener to pick one of choices and returns its id.
	// io.EOF means the listener left.
	Choose(ctx context.Context, choices []domain.Choice) (string, error)

	// Verdict announces the outcome of the accusation.
	Verdict(ctx context.Context, verdict domain.Verdict) error

	// SystemOutput presents a meta-message (e.g. a rejected selection).
	SystemOutput(ctx context.Context, msg string) error
}

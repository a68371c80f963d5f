package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/casefile/pkg/domain"
)

// Chain combines several hook sets into one. Callbacks run in argument order.
func Chain(sets ...domain.LifecycleHooks) domain.LifecycleHooks {
	var out domain.LifecycleHooks

	var onCreate []func(context.Context, *domain.Session)
	var onTransition []func(context.Context, *domain.TransitionEvent)
	var onReject []func(context.Context, *domain.RejectionEvent)
	for _, h := range sets {
		if h.OnCreate != nil {
			onCreate = append(onCreate, h.OnCreate)
		}
		if h.OnTransition != nil {
			onTransition = append(onTransition, h.OnTransition)
		}
		if h.OnReject != nil {
			onReject = append(onReject, h.OnReject)
		}
	}

	if len(onCreate) > 0 {
		out.OnCreate = func(ctx context.Context, s *domain.Session) {
			for _, fn := range onCreate {
				fn(ctx, s)
			}
		}
	}
	if len(onTransition) > 0 {
		out.OnTransition = func(ctx context.Context, e *domain.TransitionEvent) {
			for _, fn := range onTransition {
				fn(ctx, e)
			}
		}
	}
	if len(onReject) > 0 {
		out.OnReject = func(ctx context.Context, e *domain.RejectionEvent) {
			for _, fn := range onReject {
				fn(ctx, e)
			}
		}
	}
	return out
}

// AuditHooks logs every verdict as an audit record.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			if e.Verdict == nil {
				return
			}
			logger.InfoContext(ctx, "verdict",
				"session_id", e.SessionID,
				"correct", e.Verdict.IsCorrect,
				"result_audio", e.Verdict.ResultAudio,
			)
		},
	}
}

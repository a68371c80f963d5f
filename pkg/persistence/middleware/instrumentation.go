package middleware

import (
	"context"
	"errors"
	"time"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/prometheus/client_golang/prometheus"
)

type instrumentationMiddleware struct {
	next     ports.SessionStore
	duration *prometheus.HistogramVec
}

// NewInstrumentationMiddleware records casefile_store_duration_seconds{op,result} on reg.
// result is one of ok, conflict, not_found or error; conflicts show CAS contention.
func NewInstrumentationMiddleware(reg prometheus.Registerer) Middleware {
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "casefile_store_duration_seconds",
		Help:    "Session store call latency by operation and result.",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
	}, []string{"op", "result"})
	reg.MustRegister(duration)

	return func(next ports.SessionStore) ports.SessionStore {
		return &instrumentationMiddleware{next: next, duration: duration}
	}
}

func (m *instrumentationMiddleware) observe(op string, start time.Time, err error) {
	m.duration.WithLabelValues(op, resultOf(err)).Observe(time.Since(start).Seconds())
}

func (m *instrumentationMiddleware) Save(ctx context.Context, s *domain.Session, expectedVersion int64) (err error) {
	defer func(start time.Time) { m.observe("save", start, err) }(time.Now())
	return m.next.Save(ctx, s, expectedVersion)
}

func (m *instrumentationMiddleware) Load(ctx context.Context, id string) (s *domain.Session, err error) {
	defer func(start time.Time) { m.observe("load", start, err) }(time.Now())
	return m.next.Load(ctx, id)
}

func (m *instrumentationMiddleware) Delete(ctx context.Context, id string) (err error) {
	defer func(start time.Time) { m.observe("delete", start, err) }(time.Now())
	return m.next.Delete(ctx, id)
}

func (m *instrumentationMiddleware) List(ctx context.Context) (ids []string, err error) {
	defer func(start time.Time) { m.observe("list", start, err) }(time.Now())
	return m.next.List(ctx)
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrVersionConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

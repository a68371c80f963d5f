package observability

import (
	"context"
	"net/http"
	"strconv"

	"github.com/aretw0/casefile/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics records engine activity on a private Prometheus registry.
type Metrics struct {
	registry *prometheus.Registry

	sessionsCreated *prometheus.CounterVec
	transitions     *prometheus.CounterVec
	rejections      *prometheus.CounterVec
	verdicts        *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them, plus the Go and process collectors.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		sessionsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casefile_sessions_created_total",
				Help: "Sessions created, by podcast.",
			},
			[]string{"podcast_id"},
		),
		transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casefile_transitions_total",
				Help: "Persisted state transitions by operation and edge.",
			},
			[]string{"op", "from", "to"},
		),
		rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casefile_rejections_total",
				Help: "Rejected operations by operation and error kind.",
			},
			[]string{"op", "kind"},
		),
		verdicts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "casefile_verdicts_total",
				Help: "Final accusations by outcome.",
			},
			[]string{"correct"},
		),
	}
	m.registry.MustRegister(
		m.sessionsCreated,
		m.transitions,
		m.rejections,
		m.verdicts,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the underlying registry, mostly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that feed the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCreate: func(_ context.Context, s *domain.Session) {
			m.sessionsCreated.WithLabelValues(s.PodcastID).Inc()
		},
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.transitions.WithLabelValues(string(e.Op), string(e.From), string(e.To)).Inc()
			if e.Verdict != nil {
				m.verdicts.WithLabelValues(strconv.FormatBool(e.Verdict.IsCorrect)).Inc()
			}
		},
		OnReject: func(_ context.Context, e *domain.RejectionEvent) {
			m.rejections.WithLabelValues(string(e.Op), string(e.Kind)).Inc()
		},
	}
}

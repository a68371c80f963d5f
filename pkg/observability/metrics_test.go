package observability_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/pkg/adapters/memory"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/observability"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_RecordsEngineActivity(t *testing.T) {
	metrics := observability.NewMetrics()
	eng, err := casefile.New(memory.SeedTestInvestigation(),
		casefile.WithLifecycleHooks(metrics.Hooks()),
		casefile.WithIDGenerator(func() string { return "m1" }),
	)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = eng.CreateSession(ctx, memory.TestPodcastID)
	require.NoError(t, err)
	_, err = eng.StartInvestigation(ctx, "m1")
	require.NoError(t, err)
	_, err = eng.StartInvestigation(ctx, "m1")
	require.Error(t, err)

	expected := `
# HELP casefile_rejections_total Rejected operations by operation and error kind.
# TYPE casefile_rejections_total counter
casefile_rejections_total{kind="InvalidState",op="startInvestigation"} 1
# HELP casefile_transitions_total Persisted state transitions by operation and edge.
# TYPE casefile_transitions_total counter
casefile_transitions_total{from="INTRO",op="startInvestigation",to="MAIN_SELECTION"} 1
`
	require.NoError(t, testutil.GatherAndCompare(metrics.Registry(), strings.NewReader(expected),
		"casefile_transitions_total", "casefile_rejections_total"))

	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `casefile_sessions_created_total{podcast_id="test-investigation"} 1`)
}

func TestMetrics_Verdicts(t *testing.T) {
	metrics := observability.NewMetrics()
	hooks := metrics.Hooks()
	hooks.OnTransition(context.Background(), &domain.TransitionEvent{
		Op: domain.OpSelectAccusation, From: domain.StateAccusationSelection, To: domain.StateResult,
		Verdict: &domain.Verdict{IsCorrect: true},
	})
	n, err := testutil.GatherAndCount(metrics.Registry(), "casefile_verdicts_total")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestChain(t *testing.T) {
	var calls []string
	a := domain.LifecycleHooks{OnCreate: func(context.Context, *domain.Session) { calls = append(calls, "a") }}
	b := domain.LifecycleHooks{
		OnCreate: func(context.Context, *domain.Session) { calls = append(calls, "b") },
		OnReject: func(context.Context, *domain.RejectionEvent) { calls = append(calls, "reject") },
	}

	chained := observability.Chain(a, domain.LifecycleHooks{}, b)
	chained.OnCreate(context.Background(), &domain.Session{})
	chained.OnReject(context.Background(), &domain.RejectionEvent{})
	assert.Nil(t, chained.OnTransition)
	assert.Equal(t, []string{"a", "b", "reject"}, calls)
}

func TestAuditHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	hooks := observability.AuditHooks(logger)

	hooks.OnTransition(context.Background(), &domain.TransitionEvent{Op: domain.OpStartInvestigation})
	assert.Empty(t, buf.String())

	hooks.OnTransition(context.Background(), &domain.TransitionEvent{
		EventBase: domain.EventBase{SessionID: "s"},
		Verdict:   &domain.Verdict{IsCorrect: false, ResultAudio: "wrong.mp3"},
	})
	assert.Contains(t, buf.String(), "correct=false")
	assert.Contains(t, buf.String(), "result_audio=wrong.mp3")
}

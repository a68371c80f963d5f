package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/internal/logging"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server exposes a SessionEngine over JSON/HTTP.
type Server struct {
	Engine  ports.SessionEngine
	Streams *StreamManager

	logger  *slog.Logger
	metrics http.Handler
	health  func(context.Context) error
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger for request failures and stream events.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithStreams serves GET /sessions/{id}/events from sm. The engine must publish
// into sm through sm.Hooks(); otherwise subscribers only receive the ping.
func WithStreams(sm *StreamManager) Option {
	return func(s *Server) {
		s.Streams = sm
	}
}

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithHealthCheck makes GET /health report 503 when check fails.
func WithHealthCheck(check func(context.Context) error) Option {
	return func(s *Server) {
		s.health = check
	}
}

// NewHandler creates a new HTTP handler for the engine.
func NewHandler(engine ports.SessionEngine, opts ...Option) http.Handler {
	server := &Server{
		Engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(server)
	}
	if server.Streams == nil {
		server.Streams = NewStreamManager(server.logger)
	}
	return server.Routes()
}

// Routes builds the chi router.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}

	r.Route("/sessions", func(r chi.Router) {
		r.Post("/", s.CreateSession)
		r.Get("/", s.ListSessions)

		r.Route("/{sessionID}", func(r chi.Router) {
			r.Get("/", s.GetSession)
			r.Delete("/", s.DeleteSession)
			r.Get("/view", s.GetView)
			r.Get("/events", s.SubscribeEvents)

			r.Post("/start", s.simple(s.Engine.StartInvestigation))
			r.Post("/finish-main-intro", s.simple(s.Engine.FinishMainIntro))
			r.Post("/return-to-sub-selection", s.simple(s.Engine.ReturnToSubSelection))
			r.Post("/finish-sub-branch", s.simple(s.Engine.FinishSubBranch))
			r.Post("/proceed-to-accusations", s.simple(s.Engine.ProceedToAccusations))
			r.Post("/finish-accusation-intro", s.simple(s.Engine.FinishAccusationIntro))

			r.Post("/major-branches", s.SelectMajorBranch)
			r.Post("/sub-branches", s.SelectSubBranch)
			r.Post("/accusation", s.SelectAccusation)
			r.Post("/advance", s.Advance)
		})
	})

	r.Get("/podcasts/{podcastID}", s.GetPodcast)
	r.Get("/podcasts/{podcastID}/major-branches", s.ListMajorBranches)
	r.Get("/podcasts/{podcastID}/accusations", s.ListAccusations)
	r.Get("/major-branches/{majorBranchID}/minor-branches", s.ListMinorBranches)

	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	if s.health != nil {
		if err := s.health(r.Context()); err != nil {
			s.logger.Warn("Health check failed", "err", err)
			s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{
		"app":     "casefile-http",
		"version": casefile.Version,
	})
}

type createSessionRequest struct {
	PodcastID string `json:"podcast_id"`
}

// CreateSession handles POST /sessions.
func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var body createSessionRequest
	if !s.decode(w, r, &body) {
		return
	}
	if body.PodcastID == "" {
		s.badRequest(w, "podcast_id is required")
		return
	}
	sess, err := s.Engine.CreateSession(r.Context(), body.PodcastID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, sess)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.Engine.ListSessions(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if ids == nil {
		ids = []string{}
	}
	s.writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.Engine.Session(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, sess)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.Engine.DeleteSession(r.Context(), chi.URLParam(r, "sessionID")); err != nil {
		s.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetView handles GET /sessions/{id}/view.
func (s *Server) GetView(w http.ResponseWriter, r *http.Request) {
	v, err := s.Engine.View(r.Context(), chi.URLParam(r, "sessionID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, v)
}

type transitionFunc func(ctx context.Context, sessionID string) (*domain.Session, error)

// simple adapts a body-less transition into a handler.
func (s *Server) simple(fn transitionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sessionID")
		s.transition(w, r, func(ctx context.Context) (*domain.Session, error) {
			return fn(ctx, id)
		})
	}
}

// transition runs op and writes the new Session.
func (s *Server) transition(w http.ResponseWriter, r *http.Request, op func(context.Context) (*domain.Session, error)) {
	after, err := op(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, after)
}

type selectMajorRequest struct {
	MajorBranchID string `json:"major_branch_id"`
}

// SelectMajorBranch handles POST /sessions/{id}/major-branches.
func (s *Server) SelectMajorBranch(w http.ResponseWriter, r *http.Request) {
	var body selectMajorRequest
	if !s.decode(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "sessionID")
	s.transition(w, r, func(ctx context.Context) (*domain.Session, error) {
		return s.Engine.SelectMajorBranch(ctx, id, body.MajorBranchID)
	})
}

type selectSubRequest struct {
	MinorBranchID string `json:"minor_branch_id"`
}

// SelectSubBranch handles POST /sessions/{id}/sub-branches.
func (s *Server) SelectSubBranch(w http.ResponseWriter, r *http.Request) {
	var body selectSubRequest
	if !s.decode(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "sessionID")
	s.transition(w, r, func(ctx context.Context) (*domain.Session, error) {
		return s.Engine.SelectSubBranch(ctx, id, body.MinorBranchID)
	})
}

type selectAccusationRequest struct {
	AccusationID string `json:"accusation_id"`
}

type accusationResponse struct {
	Session *domain.Session `json:"session"`
	Verdict domain.Verdict  `json:"verdict"`
}

// SelectAccusation handles POST /sessions/{id}/accusation.
func (s *Server) SelectAccusation(w http.ResponseWriter, r *http.Request) {
	var body selectAccusationRequest
	if !s.decode(w, r, &body) {
		return
	}
	id := chi.URLParam(r, "sessionID")
	after, verdict, err := s.Engine.SelectAccusation(r.Context(), id, body.AccusationID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, accusationResponse{Session: after, Verdict: verdict})
}

type advanceRequest struct {
	From string `json:"from"`
}

// Advance handles POST /sessions/{id}/advance, the "audio finished" signal.
func (s *Server) Advance(w http.ResponseWriter, r *http.Request) {
	var body advanceRequest
	if !s.decode(w, r, &body) {
		return
	}
	from, err := domain.ParseState(body.From)
	if err != nil {
		s.badRequest(w, err.Error())
		return
	}
	id := chi.URLParam(r, "sessionID")
	s.transition(w, r, func(ctx context.Context) (*domain.Session, error) {
		return s.Engine.Advance(ctx, id, from)
	})
}

// GetPodcast handles GET /podcasts/{id}.
func (s *Server) GetPodcast(w http.ResponseWriter, r *http.Request) {
	p, err := s.Engine.Content().GetPodcast(r.Context(), chi.URLParam(r, "podcastID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, p)
}

// ListMajorBranches handles GET /podcasts/{id}/major-branches.
func (s *Server) ListMajorBranches(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Content().ListMajorBranches(r.Context(), chi.URLParam(r, "podcastID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// ListAccusations handles GET /podcasts/{id}/accusations.
func (s *Server) ListAccusations(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Content().ListAccusations(r.Context(), chi.URLParam(r, "podcastID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// ListMinorBranches handles GET /major-branches/{id}/minor-branches.
func (s *Server) ListMinorBranches(w http.ResponseWriter, r *http.Request) {
	list, err := s.Engine.Content().ListMinorBranches(r.Context(), chi.URLParam(r, "majorBranchID"))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, list)
}

// -- Helpers --

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.logger.Warn("Invalid request body", "path", r.URL.Path, "err", err)
		s.badRequest(w, "invalid request body")
		return false
	}
	return true
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Response encode failed", "err", err)
	}
}

type errorResponse struct {
	Error string      `json:"error"`
	Kind  domain.Kind `json:"kind,omitempty"`
}

func (s *Server) badRequest(w http.ResponseWriter, msg string) {
	s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("Request failed", "path", r.URL.Path, "err", err)
	}
	s.writeJSON(w, status, errorResponse{Error: err.Error(), Kind: domain.KindOf(err)})
}

// StatusFor maps an engine error onto an HTTP status.
func StatusFor(err error) int {
	switch domain.KindOf(err) {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindOwnershipMismatch:
		return http.StatusUnprocessableEntity
	case domain.KindInvalidState, domain.KindQuotaExceeded, domain.KindDuplicateSelection:
		return http.StatusConflict
	}
	if errors.Is(err, context.Canceled) {
		return 499
	}
	return http.StatusInternalServerError
}

package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/casefile"
	"github.com/aretw0/casefile/internal/logging"
	"github.com/aretw0/casefile/pkg/domain"
	"github.com/aretw0/casefile/pkg/ports"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"golang.org/x/sync/errgroup"
)

// SessionResponse is the structured result of every session tool.
// It carries the new snapshot together with what to present next.
type SessionResponse struct {
	Session *domain.Session `json:"session" jsonschema_description:"The session after the operation"`
	View    *domain.View    `json:"view,omitempty" jsonschema_description:"Audio, choices and next operation for the new state"`
	Verdict *domain.Verdict `json:"verdict,omitempty" jsonschema_description:"Outcome of select_accusation"`
}

// SessionInput identifies the session a tool operates on.
type SessionInput struct {
	SessionID string `json:"session_id"`
}

// SelectionInput carries the session and the selected entity id.
type SelectionInput struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
}

// AdvanceInput is an "audio finished" signal.
type AdvanceInput struct {
	SessionID string `json:"session_id"`
	From      string `json:"from"`
}

// CreateInput starts a session.
type CreateInput struct {
	PodcastID string `json:"podcast_id"`
}

// Server wraps the session engine and exposes it as an MCP Server.
type Server struct {
	engine    ports.SessionEngine
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// NewServer creates a new MCP Server instance.
func NewServer(engine ports.SessionEngine, logger *slog.Logger) *Server {
	if logger == nil {
		logger = logging.NewNop()
	}
	s := &Server{
		engine:    engine,
		logger:    logger,
		mcpServer: server.NewMCPServer("casefile-mcp", casefile.Version),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	if err := server.ServeStdio(s.mcpServer); err != nil {
		return fmt.Errorf("serve MCP: %w", err)
	}
	return nil
}

// ServeSSE serves MCP over SSE on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr string) error {
	baseURL := "http://localhost" + addr
	if !strings.HasPrefix(addr, ":") {
		baseURL = "http://" + addr
	}
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	})
	return g.Wait()
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionTool(name, description string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to operate on")),
		mcp.WithOutputSchema[SessionResponse](),
	)
}

func selectionTool(name, description, idDescription string) mcp.Tool {
	return mcp.NewTool(name,
		mcp.WithDescription(description),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to operate on")),
		mcp.WithString("id", mcp.Required(), mcp.Description(idDescription)),
		mcp.WithOutputSchema[SessionResponse](),
	)
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("create_session",
		mcp.WithDescription("Start a new investigation session for a podcast."),
		mcp.WithString("podcast_id", mcp.Required(), mcp.Description("Podcast to investigate")),
		mcp.WithOutputSchema[SessionResponse](),
	), s.handleCreate)

	s.mcpServer.AddTool(sessionTool("get_view",
		"Describe what to play and which choices are open, without advancing the session."), s.handleView)

	simple := []struct {
		name, description string
		fn                func(context.Context, string) (*domain.Session, error)
	}{
		{"start_investigation", "Leave the introduction and open major branch selection.", s.engine.StartInvestigation},
		{"finish_main_intro", "The major branch intro finished; open sub-branch selection.", s.engine.FinishMainIntro},
		{"return_to_sub_selection", "The first sub-branch finished; pick the second one.", s.engine.ReturnToSubSelection},
		{"finish_sub_branch", "Both sub-branches are done; go back to major selection.", s.engine.FinishSubBranch},
		{"proceed_to_accusations", "Enough major branches explored; play the accusation intro.", s.engine.ProceedToAccusations},
		{"finish_accusation_intro", "The accusation intro finished; open suspect selection.", s.engine.FinishAccusationIntro},
	}
	for _, op := range simple {
		s.mcpServer.AddTool(sessionTool(op.name, op.description), s.handleSimple(op.fn))
	}

	s.mcpServer.AddTool(selectionTool("select_major_branch",
		"Pick a major branch of the session's podcast.", "Major branch id"),
		s.handleSelection(s.engine.SelectMajorBranch))
	s.mcpServer.AddTool(selectionTool("select_sub_branch",
		"Pick a minor branch of the current major branch.", "Minor branch id"),
		s.handleSelection(s.engine.SelectSubBranch))
	s.mcpServer.AddTool(selectionTool("select_accusation",
		"Accuse a suspect and end the investigation.", "Accusation id"),
		s.handleAccusation)

	s.mcpServer.AddTool(mcp.NewTool("advance",
		mcp.WithDescription("Report that the audio started in state `from` has finished."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session to operate on")),
		mcp.WithString("from", mcp.Required(), mcp.Description("State the session was in when the audio started")),
		mcp.WithOutputSchema[SessionResponse](),
	), s.handleAdvance)
}

func (s *Server) respond(ctx context.Context, sess *domain.Session, verdict *domain.Verdict) *mcp.CallToolResult {
	view, err := s.engine.View(ctx, sess.ID)
	if err != nil {
		s.logger.Error("MCP: View failed after transition", "session_id", sess.ID, "err", err)
	}
	return mcp.NewToolResultStructuredOnly(SessionResponse{Session: sess, View: view, Verdict: verdict})
}

func toolError(err error) *mcp.CallToolResult {
	if kind := domain.KindOf(err); kind != "" {
		return mcp.NewToolResultError(fmt.Sprintf("%s: %v", kind, err))
	}
	return mcp.NewToolResultErrorFromErr("operation failed", err)
}

func (s *Server) handleCreate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input CreateInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	sess, err := s.engine.CreateSession(ctx, input.PodcastID)
	if err != nil {
		return toolError(err), nil
	}
	return s.respond(ctx, sess, nil), nil
}

func (s *Server) handleView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SessionInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	view, err := s.engine.View(ctx, input.SessionID)
	if err != nil {
		return toolError(err), nil
	}
	return mcp.NewToolResultStructuredOnly(SessionResponse{Session: view.Session, View: view}), nil
}

func (s *Server) handleSimple(fn func(context.Context, string) (*domain.Session, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input SessionInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		sess, err := fn(ctx, input.SessionID)
		if err != nil {
			return toolError(err), nil
		}
		return s.respond(ctx, sess, nil), nil
	}
}

func (s *Server) handleSelection(fn func(context.Context, string, string) (*domain.Session, error)) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var input SelectionInput
		if err := request.BindArguments(&input); err != nil {
			return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
		}
		sess, err := fn(ctx, input.SessionID, input.ID)
		if err != nil {
			return toolError(err), nil
		}
		return s.respond(ctx, sess, nil), nil
	}
}

func (s *Server) handleAccusation(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input SelectionInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	sess, verdict, err := s.engine.SelectAccusation(ctx, input.SessionID, input.ID)
	if err != nil {
		return toolError(err), nil
	}
	return s.respond(ctx, sess, &verdict), nil
}

func (s *Server) handleAdvance(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var input AdvanceInput
	if err := request.BindArguments(&input); err != nil {
		return mcp.NewToolResultErrorFromErr("invalid arguments", err), nil
	}
	from, err := domain.ParseState(input.From)
	if err != nil {
		return mcp.NewToolResultErrorFromErr("invalid from state", err), nil
	}
	sess, err := s.engine.Advance(ctx, input.SessionID, from)
	if err != nil {
		return toolError(err), nil
	}
	return s.respond(ctx, sess, nil), nil
}

// podcastResource is the content listing for one podcast.
type podcastResource struct {
	Podcast       domain.Podcast                  `json:"podcast"`
	MajorBranches []domain.MajorBranch            `json:"major_branches"`
	MinorBranches map[string][]domain.MinorBranch `json:"minor_branches"`
	Accusations   []domain.Accusation             `json:"accusations"`
}

const podcastURIPrefix = "casefile://podcasts/"

func (s *Server) registerResources() {
	s.mcpServer.AddResourceTemplate(mcp.NewResourceTemplate(podcastURIPrefix+"{id}", "Podcast content",
		mcp.WithTemplateDescription("Branches and suspects of a podcast"),
		mcp.WithTemplateMIMEType("application/json"),
	), s.readPodcast)
}

func (s *Server) readPodcast(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := request.Params.URI
	id := strings.TrimPrefix(uri, podcastURIPrefix)
	res, err := s.loadPodcast(ctx, id)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(res)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) loadPodcast(ctx context.Context, id string) (*podcastResource, error) {
	content := s.engine.Content()
	p, err := content.GetPodcast(ctx, id)
	if err != nil {
		return nil, err
	}
	majors, err := content.ListMajorBranches(ctx, id)
	if err != nil {
		return nil, err
	}
	accusations, err := content.ListAccusations(ctx, id)
	if err != nil {
		return nil, err
	}
	res := &podcastResource{
		Podcast:       p,
		MajorBranches: majors,
		MinorBranches: make(map[string][]domain.MinorBranch, len(majors)),
		Accusations:   accusations,
	}
	for _, m := range majors {
		minors, err := content.ListMinorBranches(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		res.MinorBranches[m.ID] = minors
	}
	return res, nil
}

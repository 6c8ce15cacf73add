package gateway

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/aleister1102/redline/internal/common/errorwrapper"
	"github.com/aleister1102/redline/internal/config"
	"github.com/aleister1102/redline/internal/differ"
	"github.com/aleister1102/redline/internal/models"
	"github.com/aleister1102/redline/internal/presenter"
	"github.com/aleister1102/redline/internal/tasklog"
)

// Executor performs a text action and returns the normalized result. It is
// satisfied by the textaction client.
type Executor interface {
	Execute(ctx context.Context, req models.TextActionRequest) (*models.StructuredResult, error)
}

// Server fronts the text transformation service: it authenticates callers,
// forwards requests through the Executor, records task events, and maps the
// error taxonomy onto HTTP status codes.
type Server struct {
	cfg       config.GatewayConfig
	diffCfg   config.DiffConfig
	executor  Executor
	taskLog   *tasklog.Store
	presenter *presenter.Presenter
	logger    zerolog.Logger
}

// NewServer creates a gateway server. taskLog may be nil to disable task
// recording.
func NewServer(cfg config.GatewayConfig, diffCfg config.DiffConfig, executor Executor, taskLog *tasklog.Store, logger zerolog.Logger) *Server {
	return &Server{
		cfg:       cfg,
		diffCfg:   diffCfg,
		executor:  executor,
		taskLog:   taskLog,
		presenter: presenter.NewPresenter(),
		logger:    logger.With().Str("component", "Gateway").Logger(),
	}
}

// Handler returns the gateway's HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/agents/text-action", s.handleTextAction)
	mux.HandleFunc("/api/diff", s.handleDiff)
	mux.HandleFunc("/api/tasks", s.handleTasks)
	return mux
}

// Start runs the server until ctx is cancelled, then shuts down gracefully
// within the configured shutdown timeout.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:        s.cfg.ListenAddr,
		Handler:     s.Handler(),
		ReadTimeout: s.cfg.ReadTimeout(),
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()
	s.logger.Info().Str("listen_addr", s.cfg.ListenAddr).Msg("Gateway listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout())
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errorwrapper.WrapError(err, "gateway shutdown failed")
		}
		s.logger.Info().Msg("Gateway stopped")
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return errorwrapper.WrapError(err, "gateway listen failed")
	}
}

func (s *Server) handleTextAction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if bearerToken(r) == "" {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.TextActionRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	taskID := r.Header.Get("X-Task-ID")
	if taskID == "" {
		taskID = newTaskID()
	}
	s.recordTask(tasklog.TaskEvent{
		TaskID:     taskID,
		AgentID:    req.AgentID,
		ActionType: req.ActionType,
		Status:     tasklog.StatusRunning,
	})

	result, err := s.executor.Execute(r.Context(), req)
	if err != nil {
		s.recordTask(tasklog.TaskEvent{TaskID: taskID, Status: tasklog.StatusFailed, Detail: err.Error()})
		s.writeTaxonomyError(w, err)
		return
	}
	s.recordTask(tasklog.TaskEvent{TaskID: taskID, Status: tasklog.StatusCompleted})

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Task-ID", taskID)
	if err := json.NewEncoder(w).Encode(result); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode text action response")
	}
}

type diffRequest struct {
	Original    string `json:"original"`
	Modified    string `json:"modified"`
	Mode        string `json:"mode,omitempty"`
	Granularity string `json:"granularity,omitempty"`
}

// handleDiff renders a review view for an (original, modified) pair. An
// omitted granularity applies the configured word/line threshold.
func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req diffRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := decoder.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	mode := presenter.Mode(req.Mode)
	if mode == "" {
		mode = presenter.ModeInline
	}
	if mode != presenter.ModeInline && mode != presenter.ModeSideBySide {
		writeError(w, http.StatusBadRequest, "mode must be inline or side-by-side")
		return
	}

	var view presenter.View
	switch models.Granularity(req.Granularity) {
	case models.GranularityWord, models.GranularityLine:
		view = s.presenter.Render(req.Original, req.Modified, mode, models.Granularity(req.Granularity))
	case "":
		granularity := differ.AutoGranularity(req.Original, req.Modified, s.diffCfg.AutoLineThresholdChars)
		view = s.presenter.Render(req.Original, req.Modified, mode, granularity)
	default:
		writeError(w, http.StatusBadRequest, "granularity must be word or line")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode diff view")
	}
}

func (s *Server) handleTasks(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	if s.taskLog == nil {
		writeError(w, http.StatusNotFound, "task log disabled")
		return
	}

	states, err := s.taskLog.Reduce()
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to reduce task log")
		writeError(w, http.StatusInternalServerError, "failed to read task log")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(tasksResponse{Tasks: toTaskViews(states)}); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode task list")
	}
}

// writeTaxonomyError maps typed errors onto HTTP statuses. Upstream service
// failures pass their status and body through verbatim.
func (s *Server) writeTaxonomyError(w http.ResponseWriter, err error) {
	var (
		valErr  *errorwrapper.ValidationError
		authErr *errorwrapper.AuthenticationError
		toErr   *errorwrapper.TimeoutError
		svcErr  *errorwrapper.ServiceError
		clsErr  *errorwrapper.ClassificationError
	)
	switch {
	case errors.As(err, &valErr):
		writeError(w, http.StatusBadRequest, valErr.Error())
	case errors.As(err, &authErr):
		writeError(w, http.StatusUnauthorized, authErr.Error())
	case errors.As(err, &toErr):
		writeError(w, http.StatusGatewayTimeout, "text action timed out")
	case errors.As(err, &svcErr):
		writeError(w, svcErr.StatusCode, svcErr.Body)
	case errors.As(err, &clsErr):
		writeError(w, http.StatusBadGateway, clsErr.Error())
	default:
		s.logger.Error().Err(err).Msg("Unclassified text action failure")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) recordTask(ev tasklog.TaskEvent) {
	if s.taskLog == nil {
		return
	}
	if err := s.taskLog.Append(ev); err != nil {
		s.logger.Error().Err(err).Str("task_id", ev.TaskID).Msg("Failed to record task event")
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type tasksResponse struct {
	Tasks []taskView `json:"tasks"`
}

type taskView struct {
	TaskID     string `json:"taskId"`
	AgentID    string `json:"agentId,omitempty"`
	ActionType string `json:"actionType,omitempty"`
	Status     string `json:"status"`
	Detail     string `json:"detail,omitempty"`
	CreatedAt  string `json:"createdAt"`
	UpdatedAt  string `json:"updatedAt"`
}

func toTaskViews(states []tasklog.TaskState) []taskView {
	views := make([]taskView, 0, len(states))
	for _, state := range states {
		views = append(views, taskView{
			TaskID:     state.TaskID,
			AgentID:    state.AgentID,
			ActionType: string(state.ActionType),
			Status:     string(state.Status),
			Detail:     state.Detail,
			CreatedAt:  state.CreatedAt.UTC().Format(time.RFC3339),
			UpdatedAt:  state.UpdatedAt.UTC().Format(time.RFC3339),
		})
	}
	return views
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message})
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

func newTaskID() string {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "task-" + time.Now().UTC().Format("20060102150405.000000000")
	}
	return hex.EncodeToString(buf)
}

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/taskmate/backend/internal/config"
	"github.com/taskmate/backend/internal/engine"
	"github.com/taskmate/backend/internal/search"
	"github.com/taskmate/backend/internal/task"
)

type Server struct {
	Engine *engine.Engine
	Logger *logrus.Entry
	Router *http.ServeMux
	Config config.APIConfig

	httpServer *http.Server
}

func NewServer(eng *engine.Engine, cfg config.APIConfig, logger *logrus.Entry) *Server {
	s := &Server{
		Engine: eng,
		Logger: logger,
		Router: http.NewServeMux(),
		Config: cfg,
	}
	s.routes()
	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

func (s *Server) routes() {
	s.Router.HandleFunc("GET /api/v1/tasks", s.handleListTasks)
	s.Router.HandleFunc("POST /api/v1/tasks", s.handleAddTask)
	s.Router.HandleFunc("DELETE /api/v1/tasks/{index}", s.handleRemoveTask)
	s.Router.HandleFunc("GET /api/v1/tasks/{index}/similar", s.handleSimilar)
	s.Router.HandleFunc("GET /api/v1/search", s.handleSearch)
	s.Router.HandleFunc("GET /api/v1/status", s.handleStatus)
}

// Handler returns the router wrapped with CORS handling.
func (s *Server) Handler() http.Handler {
	c := cors.New(cors.Options{
		AllowedOrigins: s.Config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(s.Router)
}

func (s *Server) Start() error {
	s.Logger.Infof("Starting API Server on %s", s.Config.Addr)
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// Responses
type ErrorResponse struct {
	Error string `json:"error"`
}

type TaskView struct {
	Index       int       `json:"index"`
	ID          int       `json:"id"`
	Description string    `json:"description"`
	Priority    string    `json:"priority"`
	CreatedAt   time.Time `json:"created_at"`
}

type TaskListResponse struct {
	Tasks []TaskView `json:"tasks"`
	Total int        `json:"total"`
}

type MatchView struct {
	TaskView
	Score   float64 `json:"score"`
	Display string  `json:"display_score"`
}

type SimilarResponse struct {
	Source   TaskView    `json:"source"`
	Similar  []MatchView `json:"similar"`
	TopK     int         `json:"top_k"`
	MinScore float64     `json:"min_score"`
	Message  string      `json:"message,omitempty"`
}

type SearchResponse struct {
	Query   string      `json:"query"`
	Results []MatchView `json:"results"`
}

type StatusResponse struct {
	Tasks           int    `json:"tasks"`
	Recommendations int64  `json:"recommendations"`
	Searches        int64  `json:"searches"`
	Uptime          string `json:"uptime"`
}

// Handlers

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks := s.Engine.List()
	resp := TaskListResponse{
		Tasks: make([]TaskView, len(tasks)),
		Total: len(tasks),
	}
	for i, t := range tasks {
		resp.Tasks[i] = taskView(i, t)
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleAddTask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Description string `json:"description"`
		Priority    string `json:"priority"`
	}

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Invalid JSON"})
		return
	}

	t, index, err := s.Engine.Add(req.Description, req.Priority)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	jsonResponse(w, http.StatusCreated, taskView(index, t))
}

func (s *Server) handleRemoveTask(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}

	t, err := s.Engine.Remove(index)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, taskView(index, t))
}

func (s *Server) handleSimilar(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	opts, ok := s.queryOptions(w, r)
	if !ok {
		return
	}

	source, err := s.Engine.Get(index)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	recs, err := s.Engine.Recommend(index, opts)
	if err != nil {
		s.errorResponse(w, err)
		return
	}

	resp := SimilarResponse{
		Source:   taskView(index, source),
		Similar:  matchViews(recs),
		TopK:     opts.TopK,
		MinScore: opts.MinScore,
	}
	switch {
	case s.Engine.Len() < 2:
		resp.Message = "not enough tasks to compare"
	case len(recs) == 0:
		resp.Message = "no similar tasks found"
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "Query 'q' is required"})
		return
	}
	opts, ok := s.queryOptions(w, r)
	if !ok {
		return
	}

	recs, err := s.Engine.Search(query, opts)
	if err != nil {
		s.errorResponse(w, err)
		return
	}
	jsonResponse(w, http.StatusOK, SearchResponse{Query: query, Results: matchViews(recs)})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	stats := s.Engine.Snapshot()
	jsonResponse(w, http.StatusOK, StatusResponse{
		Tasks:           s.Engine.Len(),
		Recommendations: stats.Recommendations,
		Searches:        stats.Searches,
		Uptime:          time.Since(stats.StartTime).Round(time.Second).String(),
	})
}

// queryOptions reads top_k and min_score, falling back to the engine defaults.
func (s *Server) queryOptions(w http.ResponseWriter, r *http.Request) (engine.Options, bool) {
	opts := s.Engine.DefaultOptions()
	q := r.URL.Query()

	if v := q.Get("top_k"); v != "" {
		topK, err := strconv.Atoi(v)
		if err != nil || topK < 0 {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "top_k must be a non-negative integer"})
			return opts, false
		}
		opts.TopK = topK
	}
	if v := q.Get("min_score"); v != "" {
		minScore, err := strconv.ParseFloat(v, 64)
		if err != nil || minScore < 0 || minScore > 1 {
			jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "min_score must be a number within [0, 1]"})
			return opts, false
		}
		opts.MinScore = minScore
	}
	return opts, true
}

func (s *Server) errorResponse(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrTaskNotFound):
		jsonResponse(w, http.StatusNotFound, ErrorResponse{Error: err.Error()})
	case errors.Is(err, task.ErrInvalidTask), errors.Is(err, search.ErrInvalidInput):
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
	default:
		s.Logger.WithError(err).Error("Request failed")
		jsonResponse(w, http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
	}
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		jsonResponse(w, http.StatusBadRequest, ErrorResponse{Error: "index must be an integer"})
		return 0, false
	}
	return index, true
}

func taskView(index int, t task.Task) TaskView {
	return TaskView{
		Index:       index,
		ID:          t.ID,
		Description: t.Description,
		Priority:    t.Priority,
		CreatedAt:   t.CreatedAt,
	}
}

func matchViews(recs []engine.Recommendation) []MatchView {
	views := make([]MatchView, len(recs))
	for i, rec := range recs {
		views[i] = MatchView{
			TaskView: taskView(rec.Index, rec.Task),
			Score:    rec.Score,
			Display:  engine.FormatScore(rec.Score),
		}
	}
	return views
}

func jsonResponse(w http.ResponseWriter, code int, payload interface{}) {
	response, _ := json.Marshal(payload)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

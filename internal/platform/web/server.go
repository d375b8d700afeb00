package web

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/kuzushi/internal/storage"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Spectators may connect from any origin
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
}

// HighScoreReader reads the persisted high score.
type HighScoreReader interface {
	Load() int
}

// RunLister lists recorded runs.
type RunLister interface {
	TopRuns(limit int) ([]storage.RunRecord, error)
	RecentRuns(limit int) ([]storage.RunRecord, error)
}

// Server handles HTTP requests for spectators and the scores API.
type Server struct {
	hub    *Hub
	high   HighScoreReader
	runs   RunLister
	logger *log.Logger
}

// NewServer creates a server. high and runs may be nil.
func NewServer(hub *Hub, high HighScoreReader, runs RunLister, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Server{hub: hub, high: high, runs: runs, logger: logger}
}

// Routes sets up the HTTP routes.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Timeout(10 * time.Second))
		r.Get("/highscore", s.handleHighScore)
		r.Get("/runs", s.handleRuns)
	})

	return r
}

// ListenAndServe serves Routes on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting HTTP server", "address", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("web: listen on %s: %w", addr, err)
	case <-ctx.Done():
	}

	s.hub.Close()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("web: shutdown: %w", err)
	}
	return nil
}

type healthResponse struct {
	Status     string `json:"status"`
	Spectators int    `json:"spectators"`
}

type highScoreResponse struct {
	HighScore int `json:"highscore"`
}

type runResponse struct {
	ID        string    `json:"id"`
	Outcome   string    `json:"outcome"`
	Score     int       `json:"score"`
	Level     int       `json:"level"`
	Lives     int       `json:"lives"`
	Frames    int64     `json:"frames"`
	CreatedAt time.Time `json:"created_at"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, healthResponse{Status: "ok", Spectators: s.hub.ClientCount()})
}

func (s *Server) handleHighScore(w http.ResponseWriter, r *http.Request) {
	resp := highScoreResponse{}
	if s.high != nil {
		resp.HighScore = s.high.Load()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleRuns lists runs. Query: order=top|recent (default top), limit=1..100.
func (s *Server) handleRuns(w http.ResponseWriter, r *http.Request) {
	if s.runs == nil {
		s.writeError(w, http.StatusServiceUnavailable, "run history is not available")
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 100 {
			s.writeError(w, http.StatusBadRequest, "limit must be between 1 and 100")
			return
		}
		limit = n
	}

	var (
		runs []storage.RunRecord
		err  error
	)
	switch order := r.URL.Query().Get("order"); order {
	case "", "top":
		runs, err = s.runs.TopRuns(limit)
	case "recent":
		runs, err = s.runs.RecentRuns(limit)
	default:
		s.writeError(w, http.StatusBadRequest, "order must be top or recent")
		return
	}
	if err != nil {
		s.logger.Error("could not list runs", "error", err)
		s.writeError(w, http.StatusInternalServerError, "could not list runs")
		return
	}

	resp := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		resp = append(resp, runResponse(run))
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// handleWebSocket upgrades a spectator. Query: player=<name> to follow one player.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		player: r.URL.Query().Get("player"),
	}
	if !s.hub.register(c) {
		conn.Close()
		return
	}
	s.logger.Debug("spectator connected", "remote", r.RemoteAddr, "player", c.player)

	go s.hub.writePump(c)
	go s.hub.readPump(c)
}

// requestLogger logs every request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}

// writeJSON writes a JSON response.
func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("could not write response", "error", err)
	}
}

// writeError writes an error response.
func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

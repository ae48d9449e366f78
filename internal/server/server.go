// internal/server/server.go
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"isolation_go/internal/config"
	"isolation_go/internal/eval"
	"isolation_go/internal/game"
	"isolation_go/internal/search"
)

const (
	maxBoardSide = 32
	maxTimeMs    = 10_000
)

type moveRequest struct {
	State  game.State `json:"state"`
	Agent  string     `json:"agent"`
	Score  string     `json:"score"`
	Depth  int        `json:"depth"`
	TimeMs int        `json:"time_ms"`
}

type moveResponse struct {
	Move      [2]int `json:"move"`
	Depth     int    `json:"depth"`
	Nodes     int    `json:"nodes"`
	ElapsedMs int64  `json:"elapsed_ms"`
}

// Server answers move requests and streams self-play games.
type Server struct {
	cfg    config.Config
	search search.Config
	router chi.Router
}

func New(cfg config.Config) (*Server, error) {
	sc, err := cfg.Search()
	if err != nil {
		return nil, err
	}
	s := &Server{cfg: cfg, search: sc}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
	})
	r.Get("/api/heuristics", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, eval.Names())
	})
	r.Post("/api/move", s.handleMove)
	r.Get("/ws/match", s.handleMatch)

	s.router = r
	return s, nil
}

func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on cfg.Server.Addr until ctx is done, then shuts
// down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.cfg.Server.Addr, Handler: s.router}
	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()
	log.Info().Str("addr", srv.Addr).Msg("server listening")

	select {
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	case err, ok := <-errCh:
		if ok {
			return err
		}
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) timeLimit(ms int) (time.Duration, bool) {
	if ms == 0 {
		return s.cfg.TimeLimit(), true
	}
	if ms < 0 || ms > maxTimeMs {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}
	if req.State.Width > maxBoardSide || req.State.Height > maxBoardSide {
		writeError(w, http.StatusBadRequest, "board too large")
		return
	}
	b, err := game.FromState(req.State)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	limit, ok := s.timeLimit(req.TimeMs)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid time_ms")
		return
	}
	if req.Depth < 0 {
		writeError(w, http.StatusBadRequest, "invalid depth")
		return
	}

	cfg := s.search
	if req.Score != "" {
		if cfg.Score, err = eval.Lookup(req.Score); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	if req.Agent == "" {
		req.Agent = search.KindAlphaBeta
	}
	if req.Depth > 0 {
		cfg.SearchDepth = req.Depth
		cfg.MaxDepth = req.Depth
	}
	player, err := search.NewPlayer(req.Agent, cfg)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), limit)
	defer cancel()
	timeLeft := search.FromContext(ctx)

	start := time.Now()
	resp := moveResponse{}
	switch p := player.(type) {
	case *search.AlphaBetaPlayer:
		res := p.Search(b, timeLeft)
		resp.Move, resp.Depth, resp.Nodes = game.CellPair(res.Move), res.Depth, res.Nodes
	case *search.MinimaxPlayer:
		m := p.GetMove(b, timeLeft)
		resp.Move, resp.Nodes = game.CellPair(m), p.Nodes()
		if m != game.NoMove {
			resp.Depth = p.SearchDepth
		}
	default:
		m := p.GetMove(b, timeLeft)
		resp.Move = game.CellPair(m)
		if m != game.NoMove {
			resp.Depth = 1
		}
	}
	resp.ElapsedMs = time.Since(start).Milliseconds()

	log.Debug().
		Str("agent", req.Agent).
		Ints("move", resp.Move[:]).
		Int("depth", resp.Depth).
		Int("nodes", resp.Nodes).
		Msg("move served")
	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

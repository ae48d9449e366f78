package server

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"isolation_go/internal/eval"
	"isolation_go/internal/game"
	"isolation_go/internal/match"
	"isolation_go/internal/search"
)

const writeWait = 5 * time.Second

// frame is one websocket message: a "move" per ply, then one "outcome".
type frame struct {
	Type      string      `json:"type"`
	Ply       int         `json:"ply,omitempty"`
	Player    int         `json:"player,omitempty"`
	Move      *[2]int     `json:"move,omitempty"`
	ElapsedMs int64       `json:"elapsed_ms,omitempty"`
	State     *game.State `json:"state,omitempty"`
	Winner    int         `json:"winner,omitempty"`
	Reason    string      `json:"reason,omitempty"`
	Plies     int         `json:"plies,omitempty"`
}

func queryInt(r *http.Request, key string, def int) (int, bool) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	return n, err == nil
}

// handleMatch plays one alpha-beta game from a random opening and streams
// it to the client.
func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	width, okW := queryInt(r, "width", s.cfg.Width)
	height, okH := queryInt(r, "height", s.cfg.Height)
	timeMs, okT := queryInt(r, "time_ms", 0)
	if !okW || !okH || !okT || width < 1 || height < 1 || width > maxBoardSide || height > maxBoardSide {
		writeError(w, http.StatusBadRequest, "invalid board size or time")
		return
	}
	limit, ok := s.timeLimit(timeMs)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid time_ms")
		return
	}

	agents := [2]match.Agent{}
	for i, key := range []string{"score1", "score2"} {
		spec := search.KindAlphaBeta
		if name := r.URL.Query().Get(key); name != "" {
			if _, err := eval.Lookup(name); err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			spec += ":" + name
		}
		a, err := match.ParseAgent(spec, s.search)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		agents[i] = a
	}

	upgrader := websocket.Upgrader{CheckOrigin: func(r *http.Request) bool { return true }}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	// 客户端断开时停止对局
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				cancel()
				return
			}
		}
	}()

	send := func(f frame) {
		if ctx.Err() != nil {
			return
		}
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(f); err != nil {
			log.Debug().Err(err).Msg("ws write")
			cancel()
		}
	}

	opts := match.Options{
		Width:     width,
		Height:    height,
		TimeLimit: limit,
		Opening:   match.RandomOpening(game.GlobalRand, width, height),
		OnMove: func(ply int, b *game.Board, m game.Cell, elapsed time.Duration) {
			mv := game.CellPair(m)
			st := b.State()
			send(frame{
				Type:      "move",
				Ply:       ply,
				Player:    int(b.InactivePlayer()),
				Move:      &mv,
				ElapsedMs: elapsed.Milliseconds(),
				State:     &st,
			})
		},
	}
	rec, err := match.Play(ctx, agents[0], agents[1], opts)
	if err != nil {
		log.Debug().Err(err).Msg("ws match aborted")
		return
	}
	send(frame{Type: "outcome", Winner: rec.Winner, Reason: rec.Reason, Plies: len(rec.Moves)})
	_ = conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
}

package search

import (
	"errors"
	"math"
	"testing"
	"time"

	"isolation_go/internal/eval"
	"isolation_go/internal/game"
)

type position struct {
	name    string
	w, h    int
	blocked []game.Cell
	moves   []game.Cell
}

var smallPositions = []position{
	{"4x4 corners", 4, 4, nil, []game.Cell{{Row: 0, Col: 0}, {Row: 3, Col: 3}}},
	{"4x4 one placed", 4, 4, nil, []game.Cell{{Row: 1, Col: 1}}},
	{"5x5 blocked", 5, 5, []game.Cell{{Row: 1, Col: 4}, {Row: 3, Col: 0}}, []game.Cell{{Row: 2, Col: 2}, {Row: 0, Col: 1}}},
	{"5x4 sides", 5, 4, nil, []game.Cell{{Row: 1, Col: 0}, {Row: 2, Col: 4}}},
	{"5x5 late", 5, 5, []game.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 2, Col: 3}, {Row: 3, Col: 3}, {Row: 4, Col: 0}}, []game.Cell{{Row: 0, Col: 0}, {Row: 4, Col: 4}}},
}

func (p position) board(t *testing.T) *game.Board {
	t.Helper()
	b := game.NewBoard(p.w, p.h)
	if err := b.Block(p.blocked...); err != nil {
		t.Fatal(err)
	}
	for _, m := range p.moves {
		if err := b.Apply(m); err != nil {
			t.Fatalf("apply %v: %v", m, err)
		}
	}
	return b
}

// refValue is a plain depth-limited minimax used as an oracle.
func refValue(b *game.Board, depth int, root game.Player, score eval.ScoreFunc) float64 {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return b.Utility(root)
	}
	if depth == 0 {
		return score(b, root)
	}
	vals := make([]float64, len(moves))
	for i, m := range moves {
		vals[i] = refValue(b.ForecastMove(m), depth-1, root, score)
	}
	best := vals[0]
	for _, v := range vals[1:] {
		if b.ActivePlayer() == root {
			best = math.Max(best, v)
		} else {
			best = math.Min(best, v)
		}
	}
	return best
}

// solve plays the game out; the result is ±Inf for root. A node stops as
// soon as it finds a win for the side to move.
func solve(b *game.Board, root game.Player) float64 {
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return b.Utility(root)
	}
	win := math.Inf(1)
	if b.ActivePlayer() != root {
		win = math.Inf(-1)
	}
	for _, m := range moves {
		if v := solve(b.ForecastMove(m), root); v == win {
			return win
		}
	}
	return -win
}

func TestMinimaxIsOptimal(t *testing.T) {
	for _, pos := range smallPositions {
		for depth := 1; depth <= 3; depth++ {
			b := pos.board(t)
			root := b.ActivePlayer()
			p := NewMinimaxPlayer(DefaultConfig())

			m, v, err := p.Minimax(b, depth)
			if err != nil {
				t.Fatalf("%s depth %d: %v", pos.name, depth, err)
			}

			want, wantMove := 0.0, game.NoMove
			for i, lm := range b.LegalMoves() {
				rv := refValue(b.ForecastMove(lm), depth-1, root, eval.CustomScore)
				if i == 0 || rv > want {
					want, wantMove = rv, lm
				}
			}
			if v != want || m != wantMove {
				t.Errorf("%s depth %d: got %v (%v), want %v (%v)", pos.name, depth, m, v, wantMove, want)
			}
		}
	}
}

func TestAlphaBetaMatchesMinimax(t *testing.T) {
	for _, pos := range smallPositions {
		for depth := 1; depth <= 4; depth++ {
			b := pos.board(t)
			mm := NewMinimaxPlayer(DefaultConfig())
			ab := NewAlphaBetaPlayer(DefaultConfig())

			wantMove, want, err := mm.Minimax(b, depth)
			if err != nil {
				t.Fatal(err)
			}
			m, v, err := ab.AlphaBeta(b, depth, math.Inf(-1), math.Inf(1))
			if err != nil {
				t.Fatal(err)
			}
			if m != wantMove || v != want {
				t.Errorf("%s depth %d: alphabeta %v (%v), minimax %v (%v)", pos.name, depth, m, v, wantMove, want)
			}
			if ab.nodes > mm.nodes {
				t.Errorf("%s depth %d: alphabeta visited %d nodes, minimax %d", pos.name, depth, ab.nodes, mm.nodes)
			}
		}
	}
}

func TestAlphaBetaMatchesMinimaxOtherHeuristics(t *testing.T) {
	for _, name := range []string{"improved_score", "open_move_score", "custom_score_logistic"} {
		score, err := eval.Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		cfg := Config{Score: score}
		for _, pos := range smallPositions {
			b := pos.board(t)
			wantMove, _, _ := NewMinimaxPlayer(cfg).Minimax(b, 3)
			m, _, _ := NewAlphaBetaPlayer(cfg).AlphaBeta(b, 3, math.Inf(-1), math.Inf(1))
			if m != wantMove {
				t.Errorf("%s %s: alphabeta %v, minimax %v", name, pos.name, m, wantMove)
			}
		}
	}
}

func TestDepthZeroLeafReturnsFirstMove(t *testing.T) {
	b := smallPositions[0].board(t)
	ab := NewAlphaBetaPlayer(DefaultConfig())
	m, _, err := ab.AlphaBeta(b, 0, math.Inf(-1), math.Inf(1))
	if err != nil {
		t.Fatal(err)
	}
	if m != b.LegalMoves()[0] {
		t.Errorf("got %v, want first legal move %v", m, b.LegalMoves()[0])
	}

	mm := NewMinimaxPlayer(DefaultConfig())
	if m, _, _ := mm.Minimax(b, 0); m != game.NoMove {
		t.Errorf("minimax depth 0 = %v, want NoMove", m)
	}
}

func TestImmediateTimeout(t *testing.T) {
	expired := func() time.Duration { return 0 }
	b := game.NewBoard(7, 7)

	ab := NewAlphaBetaPlayer(DefaultConfig())
	res := ab.Search(b, expired)
	if res.Move != game.NoMove || res.Depth != 0 {
		t.Errorf("alphabeta = %+v, want NoMove at depth 0", res)
	}

	mm := NewMinimaxPlayer(DefaultConfig())
	if m := mm.GetMove(b, expired); m != game.NoMove {
		t.Errorf("minimax = %v, want NoMove", m)
	}
}

func TestMinimaxTimeoutMidTree(t *testing.T) {
	b := game.NewBoard(5, 5)
	for _, m := range []game.Cell{{Row: 2, Col: 2}, {Row: 0, Col: 0}} {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}

	// 前 20 次查询还有时间，之后超时：已经搜过部分子树
	calls := 0
	budget := func() time.Duration {
		calls++
		if calls > 20 {
			return 0
		}
		return time.Hour
	}
	mm := NewMinimaxPlayer(DefaultConfig())
	if m := mm.GetMove(b, budget); m != game.NoMove {
		t.Errorf("got %v, want NoMove after a mid-tree timeout", m)
	}
	if mm.Nodes() < 5 {
		t.Errorf("timed out after %d nodes, expected to be deep in the tree", mm.Nodes())
	}

	_, _, err := mm.Minimax(b, 3)
	if !errors.Is(err, ErrSearchTimeout) {
		t.Errorf("Minimax err = %v, want ErrSearchTimeout", err)
	}
}

func TestTimeoutBelowThreshold(t *testing.T) {
	// 剩余 5ms < 默认 10ms 阈值
	almost := func() time.Duration { return 5 * time.Millisecond }
	b := game.NewBoard(5, 5)
	if m := NewAlphaBetaPlayer(DefaultConfig()).GetMove(b, almost); m != game.NoMove {
		t.Errorf("got %v, want NoMove", m)
	}
}

func TestNoLegalMoves(t *testing.T) {
	b := game.NewBoard(3, 3)
	for _, m := range []game.Cell{{Row: 1, Col: 1}, {Row: 0, Col: 0}} {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	if m := NewAlphaBetaPlayer(DefaultConfig()).GetMove(b, Unlimited); m != game.NoMove {
		t.Errorf("alphabeta = %v, want NoMove", m)
	}
	if m := NewMinimaxPlayer(DefaultConfig()).GetMove(b, Unlimited); m != game.NoMove {
		t.Errorf("minimax = %v, want NoMove", m)
	}
}

func TestPartialIterationIsDiscarded(t *testing.T) {
	b := game.NewBoard(7, 7)
	for _, m := range []game.Cell{{Row: 3, Col: 3}, {Row: 0, Col: 0}} {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}

	ref := NewAlphaBetaPlayer(Config{MaxDepth: 2}).Search(b, Unlimited)
	if ref.Depth != 2 {
		t.Fatalf("reference depth = %d", ref.Depth)
	}

	// Budget lasts exactly as many nodes as depths 1 and 2 need.
	calls := 0
	budget := func() time.Duration {
		calls++
		if calls > ref.Nodes {
			return 0
		}
		return time.Hour
	}
	res := NewAlphaBetaPlayer(DefaultConfig()).Search(b, budget)
	if res.Depth != 2 || res.Move != ref.Move || res.Score != ref.Score {
		t.Errorf("got %+v, want depth 2 result %+v", res, ref)
	}
}

func TestUnlimitedBudgetSolvesSmallBoard(t *testing.T) {
	positions := []position{
		smallPositions[0],
		{"4x4 blocked", 4, 4, []game.Cell{{Row: 1, Col: 1}, {Row: 2, Col: 2}}, []game.Cell{{Row: 0, Col: 1}, {Row: 3, Col: 2}}},
		{"5x5 sparse", 5, 5,
			[]game.Cell{{Row: 0, Col: 2}, {Row: 1, Col: 1}, {Row: 1, Col: 3}, {Row: 2, Col: 2}, {Row: 3, Col: 1}, {Row: 3, Col: 3}, {Row: 4, Col: 2}, {Row: 2, Col: 0}},
			[]game.Cell{{Row: 0, Col: 0}, {Row: 4, Col: 4}}},
	}
	for _, pos := range positions {
		b := pos.board(t)
		root := b.ActivePlayer()

		res := NewAlphaBetaPlayer(DefaultConfig()).Search(b, Unlimited)
		if res.Move == game.NoMove {
			t.Fatalf("%s: no move", pos.name)
		}

		best := math.Inf(-1)
		for _, m := range b.LegalMoves() {
			best = math.Max(best, solve(b.ForecastMove(m), root))
		}
		if got := solve(b.ForecastMove(res.Move), root); got != best {
			t.Errorf("%s: move %v solves to %v, best is %v", pos.name, res.Move, got, best)
		}
		if res.Score != best {
			t.Errorf("%s: score %v, want exact %v", pos.name, res.Score, best)
		}
	}
}

func TestMaxDepth(t *testing.T) {
	b := game.NewBoard(7, 7)
	res := NewAlphaBetaPlayer(Config{MaxDepth: 2}).Search(b, Unlimited)
	if res.Depth != 2 {
		t.Errorf("depth = %d, want 2", res.Depth)
	}
	if !b.MoveIsLegal(res.Move) {
		t.Errorf("illegal move %v", res.Move)
	}
}

func TestBudgetReturnsLegalMove(t *testing.T) {
	b := game.NewBoard(7, 7)
	for _, m := range []game.Cell{{Row: 2, Col: 3}, {Row: 4, Col: 4}} {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	res := NewAlphaBetaPlayer(DefaultConfig()).Search(b, Budget(150*time.Millisecond))
	if res.Depth < 1 {
		t.Fatalf("no iteration completed: %+v", res)
	}
	legal := false
	for _, m := range b.LegalMoves() {
		legal = legal || m == res.Move
	}
	if !legal {
		t.Errorf("move %v is not legal", res.Move)
	}
}

func TestConfigDefaults(t *testing.T) {
	c := Config{}.withDefaults()
	if c.SearchDepth != 3 || c.Timeout != 10*time.Millisecond || c.Score == nil || c.MaxDepth != 0 {
		t.Errorf("defaults = %+v", c)
	}
	c = Config{SearchDepth: 5, Timeout: time.Second}.withDefaults()
	if c.SearchDepth != 5 || c.Timeout != time.Second {
		t.Errorf("overrides lost: %+v", c)
	}
}

func TestNewPlayer(t *testing.T) {
	for _, kind := range Kinds() {
		p, err := NewPlayer(kind, DefaultConfig())
		if err != nil {
			t.Fatalf("%s: %v", kind, err)
		}
		b := game.NewBoard(5, 5)
		if m := p.GetMove(b, Budget(time.Second)); !b.MoveIsLegal(m) {
			t.Errorf("%s played %v", kind, m)
		}
	}
	if _, err := NewPlayer("mcts", DefaultConfig()); !errors.Is(err, ErrUnknownAgent) {
		t.Errorf("err = %v, want ErrUnknownAgent", err)
	}
}

func TestBaselinePlayers(t *testing.T) {
	b := game.NewBoard(7, 7)
	for _, m := range []game.Cell{{Row: 3, Col: 3}, {Row: 0, Col: 0}} {
		if err := b.Apply(m); err != nil {
			t.Fatal(err)
		}
	}
	r := RandomPlayer{Rand: game.NewRand(3)}
	for i := 0; i < 20; i++ {
		m := r.GetMove(b, nil)
		if !b.MoveIsLegal(m) || !game.IsKnightHop(game.Cell{Row: 3, Col: 3}, m) {
			t.Fatalf("random played %v", m)
		}
	}

	g := GreedyPlayer{Score: eval.OpenMoveScore}
	m := g.GetMove(b, nil)
	want, wantVal := game.NoMove, 0.0
	for i, lm := range b.LegalMoves() {
		if v := eval.OpenMoveScore(b.ForecastMove(lm), game.Player1); i == 0 || v > wantVal {
			want, wantVal = lm, v
		}
	}
	if m != want {
		t.Errorf("greedy = %v, want %v", m, want)
	}

	stuck := game.NewBoard(3, 3)
	_ = stuck.Apply(game.Cell{Row: 1, Col: 1})
	_ = stuck.Apply(game.Cell{Row: 0, Col: 0})
	if m := r.GetMove(stuck, nil); m != game.NoMove {
		t.Errorf("random on stuck board = %v", m)
	}
	if m := g.GetMove(stuck, nil); m != game.NoMove {
		t.Errorf("greedy on stuck board = %v", m)
	}
}

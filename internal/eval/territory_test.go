package eval

import (
	"math"
	"testing"

	"isolation_go/internal/game"
)

func place(t *testing.T, b *game.Board, moves ...game.Cell) {
	t.Helper()
	for _, m := range moves {
		if err := b.Apply(m); err != nil {
			t.Fatalf("apply %v: %v", m, err)
		}
	}
}

func TestSaturationProperties(t *testing.T) {
	funcs := []struct {
		name  string
		f     Saturation
		limit float64
	}{
		{"arctan", Arctan, math.Pi / 2},
		{"logistic", Logistic, 1},
	}
	for _, tc := range funcs {
		t.Run(tc.name, func(t *testing.T) {
			if v := tc.f(0); v != 0 {
				t.Errorf("f(0) = %v", v)
			}
			prev := tc.f(-10)
			for d := -9.5; d <= 10; d += 0.5 {
				v := tc.f(d)
				if v <= prev {
					t.Fatalf("not strictly increasing at %v: %v <= %v", d, v, prev)
				}
				prev = v
				if tc.f(-d) != -v {
					t.Errorf("f(-%v) = %v, want %v", d, tc.f(-d), -v)
				}
				if math.Abs(v) > tc.limit {
					t.Errorf("|f(%v)| = %v exceeds %v", d, v, tc.limit)
				}
			}
			if v := tc.f(1e6); math.Abs(v-tc.limit) > 1e-3 {
				t.Errorf("f(+inf) → %v, want %v", v, tc.limit)
			}
			if v := tc.f(-1e6); math.Abs(v+tc.limit) > 1e-3 {
				t.Errorf("f(-inf) → %v, want %v", v, -tc.limit)
			}
		})
	}
}

func TestCustomScoreSymmetricEvenBoard(t *testing.T) {
	// 中心对称放置：(r,c) ↔ (h-1-r, w-1-c)
	b := game.NewBoard(6, 6)
	place(t, b, game.Cell{Row: 1, Col: 2}, game.Cell{Row: 4, Col: 3})

	for _, score := range []ScoreFunc{CustomScore, LogisticScore} {
		if v := score(b, game.Player1); v != 0 {
			t.Errorf("player1 score = %v, want 0", v)
		}
		if v := score(b, game.Player2); v != 0 {
			t.Errorf("player2 score = %v, want 0", v)
		}
	}
}

func TestCustomScoreMirrored7x7(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 game.Cell
	}{
		{"point mirror", game.Cell{Row: 2, Col: 3}, game.Cell{Row: 4, Col: 3}},
		{"corners", game.Cell{Row: 0, Col: 0}, game.Cell{Row: 6, Col: 6}},
		{"row mirror", game.Cell{Row: 1, Col: 1}, game.Cell{Row: 5, Col: 1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			b := game.NewBoard(7, 7)
			place(t, b, tc.p1, tc.p2)
			if v := CustomScore(b, game.Player1); v != 0 {
				t.Errorf("player1 score = %v, want 0", v)
			}
			if v := CustomScore(b, game.Player2); v != 0 {
				t.Errorf("player2 score = %v, want 0", v)
			}
		})
	}
}

func TestCustomScoreWallSplitsTerritory(t *testing.T) {
	// A knight hops over a single column, so the wall is two columns thick.
	// Left region: 3x4 cells, right region: 4x4 cells.
	b := game.NewBoard(9, 4)
	for r := 0; r < 4; r++ {
		_ = b.Block(game.Cell{Row: r, Col: 3}, game.Cell{Row: r, Col: 4})
	}
	place(t, b, game.Cell{Row: 0, Col: 0}, game.Cell{Row: 0, Col: 8})

	leftBlank, rightBlank := 3*4-1, 4*4-1
	if v := CustomScore(b, game.Player1); v != float64(leftBlank-rightBlank) {
		t.Errorf("player1 score = %v, want %d", v, leftBlank-rightBlank)
	}
	if v := CustomScore(b, game.Player2); v != float64(rightBlank-leftBlank) {
		t.Errorf("player2 score = %v, want %d", v, rightBlank-leftBlank)
	}
}

func TestCustomScoreFavoursCloserPlayer(t *testing.T) {
	b := game.NewBoard(7, 7)
	place(t, b, game.Cell{Row: 3, Col: 3}, game.Cell{Row: 0, Col: 0})
	if v := CustomScore(b, game.Player1); v <= 0 {
		t.Errorf("central player should lead, got %v", v)
	}
}

func TestEvaluatorsReturnUtilityWhenStuck(t *testing.T) {
	// 3x3 中心无路可走：player1 输
	b := game.NewBoard(3, 3)
	place(t, b, game.Cell{Row: 1, Col: 1}, game.Cell{Row: 0, Col: 0})

	for _, name := range Names() {
		f, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, p := range []game.Player{game.Player1, game.Player2} {
			if got, want := f(b, p), b.Utility(p); got != want {
				t.Errorf("%s(%v) = %v, want utility %v", name, p, got, want)
			}
		}
	}
}

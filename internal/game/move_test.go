package game

import "testing"

func TestKnightMovesFromCentre(t *testing.T) {
	b := NewBoard(7, 7)
	moves := b.MovesFrom(Cell{3, 3})
	want := []Cell{
		{1, 2}, {1, 4}, {2, 1}, {2, 5},
		{4, 1}, {4, 5}, {5, 2}, {5, 4},
	}
	if len(moves) != len(want) {
		t.Fatalf("got %d moves, want %d: %v", len(moves), len(want), moves)
	}
	for i := range want {
		if moves[i] != want[i] {
			t.Errorf("move %d = %v, want %v", i, moves[i], want[i])
		}
	}
}

func TestKnightMovesFromCorner(t *testing.T) {
	b := NewBoard(7, 7)
	moves := b.MovesFrom(Cell{0, 0})
	if len(moves) != 2 {
		t.Fatalf("corner should have 2 moves, got %v", moves)
	}
	for _, m := range moves {
		if !IsKnightHop(Cell{0, 0}, m) {
			t.Errorf("%v is not a knight hop from the corner", m)
		}
	}
}

func TestJumpOverBlockedCell(t *testing.T) {
	// 马步可以越过已访问的格子，只要落点为空
	b := NewBoard(5, 5)
	if err := b.Block(Cell{1, 1}, Cell{0, 1}, Cell{1, 0}); err != nil {
		t.Fatal(err)
	}
	want := Cell{2, 1}
	found := false
	for _, m := range b.MovesFrom(Cell{0, 0}) {
		if m == want {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %v reachable over blocked cells", want)
	}
}

func TestMovesSkipVisitedTargets(t *testing.T) {
	b := NewBoard(5, 5)
	_ = b.Block(Cell{2, 1})
	for _, m := range b.MovesFrom(Cell{0, 0}) {
		if m == (Cell{2, 1}) {
			t.Fatalf("visited cell %v offered as a move", m)
		}
	}
}

func TestSampleWithoutReplacement(t *testing.T) {
	r := NewRand(7)
	cells := []Cell{{0, 0}, {0, 1}, {0, 2}, {0, 3}, {0, 4}}
	got := Sample(r, cells, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	seen := map[Cell]bool{}
	for _, c := range got {
		if seen[c] {
			t.Errorf("duplicate %v in sample", c)
		}
		seen[c] = true
	}
	if cells[0] != (Cell{0, 0}) || cells[4] != (Cell{0, 4}) {
		t.Error("Sample modified its input")
	}
	if n := len(Sample(r, cells, 10)); n != len(cells) {
		t.Errorf("oversized sample returned %d cells", n)
	}
}

func TestNewRandDeterministic(t *testing.T) {
	a, b := NewRand(42), NewRand(42)
	for i := 0; i < 20; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

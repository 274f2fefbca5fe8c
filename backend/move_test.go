package main

import "testing"

func TestMoveAdjacency(t *testing.T) {
	center := Move{Row: 7, Col: 7}
	cases := []struct {
		other   Move
		lateral bool
		diag    bool
	}{
		{Move{Row: 6, Col: 7}, true, false},
		{Move{Row: 7, Col: 8}, true, false},
		{Move{Row: 6, Col: 6}, false, true},
		{Move{Row: 8, Col: 6}, false, true},
		{Move{Row: 7, Col: 7}, false, false},
		{Move{Row: 5, Col: 7}, false, false},
		{Move{Row: 5, Col: 6}, false, false},
	}
	for _, c := range cases {
		if got := center.LaterallyAdjacent(c.other); got != c.lateral {
			t.Fatalf("LaterallyAdjacent(%v) = %v, want %v", c.other, got, c.lateral)
		}
		if got := center.DiagonallyAdjacent(c.other); got != c.diag {
			t.Fatalf("DiagonallyAdjacent(%v) = %v, want %v", c.other, got, c.diag)
		}
	}
}

func TestMoveChebyshev(t *testing.T) {
	a := Move{Row: 3, Col: 4}
	if d := a.Chebyshev(Move{Row: 5, Col: 5}); d != 2 {
		t.Fatalf("Chebyshev = %d, want 2", d)
	}
	if d := a.Chebyshev(Move{Row: 3, Col: 4}); d != 0 {
		t.Fatalf("Chebyshev to self = %d, want 0", d)
	}
	if d := a.Chebyshev(Move{Row: 2, Col: 9}); d != 5 {
		t.Fatalf("Chebyshev = %d, want 5", d)
	}
}

func TestMoveIsValid(t *testing.T) {
	if !(Move{Row: 0, Col: 14}).IsValid(15) {
		t.Fatalf("corner rejected")
	}
	if (Move{Row: -1, Col: 3}).IsValid(15) {
		t.Fatalf("negative row accepted")
	}
	if (Move{Row: 3, Col: 15}).IsValid(15) {
		t.Fatalf("col past edge accepted")
	}
}

func TestAxisCoord(t *testing.T) {
	m := Move{Row: 3, Col: 9}
	if axisCoord(PlayerX, m) != 3 {
		t.Fatalf("X axis coord = %d, want 3", axisCoord(PlayerX, m))
	}
	if axisCoord(PlayerO, m) != 9 {
		t.Fatalf("O axis coord = %d, want 9", axisCoord(PlayerO, m))
	}
	if offAxisCoord(PlayerX, m) != 9 || offAxisCoord(PlayerO, m) != 3 {
		t.Fatalf("off-axis coords wrong")
	}
}

func TestMoveHistorySequence(t *testing.T) {
	history := MoveHistory{}
	first := history.Push(HistoryEntry{Move: Move{Row: 3, Col: 3}, Player: PlayerX})
	second := history.Push(HistoryEntry{Move: Move{Row: 4, Col: 4}, Player: PlayerO})
	if first.Sequence != 1 || second.Sequence != 2 {
		t.Fatalf("sequences = %d, %d, want 1, 2", first.Sequence, second.Sequence)
	}
	if seq, ok := history.SequenceOf(Move{Row: 4, Col: 4}); !ok || seq != 2 {
		t.Fatalf("SequenceOf = %d, %v, want 2, true", seq, ok)
	}
	if _, ok := history.SequenceOf(Move{Row: 9, Col: 9}); ok {
		t.Fatalf("unknown cell reported a sequence")
	}
	if history.Size() != 2 {
		t.Fatalf("size = %d, want 2", history.Size())
	}
}

package main

import "testing"

func TestNewBoardStartsEmpty(t *testing.T) {
	board := NewBoard(15)
	if board.Size() != 15 {
		t.Fatalf("size = %d, want 15", board.Size())
	}
	if board.CountEmpty() != 225 {
		t.Fatalf("empty count = %d, want 225", board.CountEmpty())
	}
	if board.At(7, 7) != CellEmpty {
		t.Fatalf("center not empty")
	}
}

func TestBoardSetAndAt(t *testing.T) {
	board := NewBoard(15)
	board.Set(3, 4, CellX)
	if board.At(3, 4) != CellX {
		t.Fatalf("At(3,4) = %v, want X", board.At(3, 4))
	}
	if board.IsEmpty(3, 4) {
		t.Fatalf("occupied cell reported empty")
	}
	if board.CountEmpty() != 224 {
		t.Fatalf("empty count = %d, want 224", board.CountEmpty())
	}
}

func TestBoardInBounds(t *testing.T) {
	board := NewBoard(15)
	cases := []struct {
		row, col int
		want     bool
	}{
		{0, 0, true},
		{14, 14, true},
		{-1, 0, false},
		{0, -1, false},
		{15, 0, false},
		{0, 15, false},
	}
	for _, c := range cases {
		if got := board.InBounds(c.row, c.col); got != c.want {
			t.Fatalf("InBounds(%d,%d) = %v, want %v", c.row, c.col, got, c.want)
		}
	}
	if board.IsEmpty(-1, 0) {
		t.Fatalf("out-of-bounds cell reported empty")
	}
}

func TestBoardPiecesRowMajor(t *testing.T) {
	board := NewBoard(15)
	board.Set(5, 9, CellX)
	board.Set(2, 3, CellX)
	board.Set(5, 1, CellX)
	board.Set(4, 4, CellO)

	pieces := board.Pieces(PlayerX)
	want := []Move{{Row: 2, Col: 3}, {Row: 5, Col: 1}, {Row: 5, Col: 9}}
	if len(pieces) != len(want) {
		t.Fatalf("pieces = %v, want %v", pieces, want)
	}
	for i := range want {
		if !pieces[i].Equals(want[i]) {
			t.Fatalf("pieces[%d] = %v, want %v", i, pieces[i], want[i])
		}
	}
}

func TestBoardCloneIsIndependent(t *testing.T) {
	board := NewBoard(15)
	board.Set(7, 7, CellX)
	clone := board.Clone()
	clone.Set(0, 0, CellO)
	if board.At(0, 0) != CellEmpty {
		t.Fatalf("clone write leaked into original")
	}
	if clone.At(7, 7) != CellX {
		t.Fatalf("clone lost original piece")
	}
}

func TestPlayerFromCell(t *testing.T) {
	if p, err := PlayerFromCell(CellX); err != nil || p != PlayerX {
		t.Fatalf("PlayerFromCell(X) = %v, %v", p, err)
	}
	if p, err := PlayerFromCell(CellO); err != nil || p != PlayerO {
		t.Fatalf("PlayerFromCell(O) = %v, %v", p, err)
	}
	if _, err := PlayerFromCell(CellEmpty); err == nil {
		t.Fatalf("expected error for empty cell")
	}
}

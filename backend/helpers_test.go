package main

import "testing"

// testEngine wires a board, history, ledger and registry the way the game
// does, with incremental updates after every placement.
type testEngine struct {
	board    Board
	history  MoveHistory
	ledger   *DiagonalLedger
	detector *PatternDetector
	registry *GapRegistry
}

func newTestEngine(t *testing.T, classes PatternClasses) *testEngine {
	t.Helper()
	e := &testEngine{board: NewBoard(15)}
	ledger, err := NewDiagonalLedger(&e.board, &e.history)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	e.ledger = ledger
	detector, err := NewPatternDetector(&e.board, classes)
	if err != nil {
		t.Fatalf("new detector: %v", err)
	}
	e.detector = detector
	registry, err := NewGapRegistry(&e.board, detector, ledger, &e.history)
	if err != nil {
		t.Fatalf("new registry: %v", err)
	}
	e.registry = registry
	return e
}

func (e *testEngine) place(player PlayerColor, row, col int) {
	e.board.Set(row, col, CellFromPlayer(player))
	e.history.Push(HistoryEntry{Move: Move{Row: row, Col: col}, Player: player})
	e.ledger.Update()
	e.registry.Update()
}

func defaultClasses() PatternClasses {
	return PatternClasses{L: true, I: true, Diagonal: false}
}

func containsMove(moves []Move, target Move) bool {
	for _, m := range moves {
		if m.Equals(target) {
			return true
		}
	}
	return false
}

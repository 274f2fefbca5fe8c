package main

import "testing"

func humanVsHumanSettings() GameSettings {
	settings := DefaultGameSettings()
	settings.XType = PlayerHuman
	settings.OType = PlayerHuman
	return settings
}

func TestMoveRejectedBeforeStart(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	ok, reason := game.TryApplyMove(Move{Row: 7, Col: 7})
	if ok {
		t.Fatalf("move applied before start")
	}
	if reason != "Illegal move: game not started" {
		t.Fatalf("reason = %q", reason)
	}
}

func TestMoveAppliesAndAlternatesTurns(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	game.Start()

	if ok, reason := game.TryApplyMove(Move{Row: 7, Col: 7}); !ok {
		t.Fatalf("legal move rejected: %s", reason)
	}
	state := game.State()
	if state.Board.At(7, 7) != CellX {
		t.Fatalf("board not updated")
	}
	if state.ToMove != PlayerO {
		t.Fatalf("turn did not pass to O")
	}
	if state.Generation != 1 {
		t.Fatalf("generation = %d, want 1", state.Generation)
	}
	if !state.HasLastMove || !state.LastMove.Equals(Move{Row: 7, Col: 7}) {
		t.Fatalf("last move = %+v", state.LastMove)
	}
	if game.History().Size() != 1 {
		t.Fatalf("history size = %d, want 1", game.History().Size())
	}
}

func TestIllegalMoveTaxonomy(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	game.Start()
	if ok, _ := game.TryApplyMove(Move{Row: 7, Col: 7}); !ok {
		t.Fatalf("setup move rejected")
	}

	if ok, reason := game.TryApplyMove(Move{Row: 7, Col: 7}); ok || reason != "Illegal move: occupied" {
		t.Fatalf("occupied cell: ok=%v reason=%q", ok, reason)
	}
	if ok, reason := game.TryApplyMove(Move{Row: -1, Col: 7}); ok || reason != "Illegal move: out of bounds" {
		t.Fatalf("out of bounds: ok=%v reason=%q", ok, reason)
	}
	if ok, reason := game.TryApplyMove(Move{Row: 15, Col: 0}); ok || reason != "Illegal move: out of bounds" {
		t.Fatalf("out of bounds: ok=%v reason=%q", ok, reason)
	}
	// A rejected move leaves the turn where it was.
	if game.State().ToMove != PlayerO {
		t.Fatalf("rejection advanced the turn")
	}
	if game.History().Size() != 1 {
		t.Fatalf("rejection grew the history")
	}
}

func TestRulesRejectWrongPlayer(t *testing.T) {
	settings := humanVsHumanSettings()
	rules := NewRules(settings)
	state := DefaultGameState(settings)
	state.Status = StatusRunning
	if ok, reason := rules.IsLegal(state, Move{Row: 7, Col: 7}, PlayerO); ok || reason != "not your turn" {
		t.Fatalf("wrong player: ok=%v reason=%q", ok, reason)
	}
	if ok, _ := rules.IsLegal(state, Move{Row: 7, Col: 7}, PlayerX); !ok {
		t.Fatalf("right player rejected")
	}
}

func TestFullGameStraightColumnWin(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	game.Start()

	// X plays down column 7, O fills column 0. X's 15th piece lands on move
	// 29, the first move a win is even possible.
	for row := 0; row < 14; row++ {
		if ok, reason := game.TryApplyMove(Move{Row: row, Col: 7}); !ok {
			t.Fatalf("X move %d rejected: %s", row, reason)
		}
		if ok, reason := game.TryApplyMove(Move{Row: row, Col: 0}); !ok {
			t.Fatalf("O move %d rejected: %s", row, reason)
		}
	}
	if status := game.State().Status; status != StatusRunning {
		t.Fatalf("status before final move = %v", status)
	}
	if ok, reason := game.TryApplyMove(Move{Row: 14, Col: 7}); !ok {
		t.Fatalf("winning move rejected: %s", reason)
	}

	state := game.State()
	if state.Status != StatusXWon {
		t.Fatalf("status = %v, want X won", state.Status)
	}
	if state.WinReason != WinReasonConnected {
		t.Fatalf("win reason = %q", state.WinReason)
	}
	if len(state.WinningPath) != 15 {
		t.Fatalf("winning path length = %d, want 15", len(state.WinningPath))
	}

	if ok, reason := game.TryApplyMove(Move{Row: 10, Col: 10}); ok || reason != "Illegal move: game already over" {
		t.Fatalf("post-win move: ok=%v reason=%q", ok, reason)
	}
}

func TestResetClearsEverything(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	game.Start()
	game.TryApplyMove(Move{Row: 7, Col: 7})

	game.Reset(humanVsHumanSettings())
	state := game.State()
	if state.Status != StatusNotStarted {
		t.Fatalf("status after reset = %v", state.Status)
	}
	if state.Board.CountEmpty() != 225 {
		t.Fatalf("board not cleared")
	}
	if game.History().Size() != 0 {
		t.Fatalf("history not cleared")
	}
	if state.Generation != 0 {
		t.Fatalf("generation not reset")
	}
}

func TestSubmitHumanMoveAppliesOnTick(t *testing.T) {
	game := NewGame(humanVsHumanSettings())
	game.Start()

	if !game.SubmitHumanMove(Move{Row: 7, Col: 7}) {
		t.Fatalf("pending move rejected")
	}
	if !game.Tick(false, nil) {
		t.Fatalf("tick did not apply the pending move")
	}
	if game.State().Board.At(7, 7) != CellX {
		t.Fatalf("pending move not on board")
	}
	// No pending move: tick is a no-op.
	if game.Tick(false, nil) {
		t.Fatalf("tick applied a move with nothing pending")
	}
}

func TestAiSelfPlayProgresses(t *testing.T) {
	settings := DefaultGameSettings()
	settings.XType = PlayerAI
	settings.OType = PlayerAI
	game := NewGame(settings)
	game.Start()

	for i := 0; i < 20 && game.State().Status == StatusRunning; i++ {
		if !game.Tick(false, nil) {
			t.Fatalf("AI tick %d applied no move", i)
		}
	}
	if game.History().Size() < 20 && game.State().Status == StatusRunning {
		t.Fatalf("history size = %d after 20 ticks", game.History().Size())
	}
}

func TestGameControllerGuardsHumanTurn(t *testing.T) {
	settings := DefaultGameSettings()
	settings.XType = PlayerAI
	settings.OType = PlayerHuman
	controller := NewGameController(settings)
	controller.StartGame(settings)

	// X is the AI, so a human move is out of turn.
	if ok, reason := controller.ApplyHumanMove(Move{Row: 7, Col: 7}); ok || reason != "not human turn" {
		t.Fatalf("AI turn accepted human move: ok=%v reason=%q", ok, reason)
	}

	if controller.Tick() { // AI plays
		if ok, _ := controller.ApplyHumanMove(Move{Row: 0, Col: 0}); !ok {
			t.Fatalf("human move rejected on human turn")
		}
	}
}

package main

import "testing"

func TestAnalyzerRejectsNilCollaborators(t *testing.T) {
	settings := DefaultGameSettings()
	state := DefaultGameState(settings)
	history := MoveHistory{}
	if _, err := NewAnalyzer(nil, &history, settings); err == nil {
		t.Fatalf("nil state accepted")
	}
	if _, err := NewAnalyzer(&state, nil, settings); err == nil {
		t.Fatalf("nil history accepted")
	}
	if _, err := NewAnalyzer(&state, &history, settings); err != nil {
		t.Fatalf("valid wiring rejected: %v", err)
	}
}

func TestAnalyzerTracksGeneration(t *testing.T) {
	settings := DefaultGameSettings()
	state := DefaultGameState(settings)
	history := MoveHistory{}
	analyzer, err := NewAnalyzer(&state, &history, settings)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}

	state.Board.Set(5, 5, CellX)
	history.Push(HistoryEntry{Move: Move{Row: 5, Col: 5}, Player: PlayerX})
	state.Board.Set(7, 6, CellX)
	history.Push(HistoryEntry{Move: Move{Row: 7, Col: 6}, Player: PlayerX})
	state.Generation++

	// The generation moved, so the next read reconciles.
	if patterns := analyzer.Registry().ActivePatterns(PlayerX); len(patterns) != 1 {
		t.Fatalf("patterns after refresh = %d, want 1", len(patterns))
	}

	// Same generation: cached results come back unchanged even though the
	// board mutated underneath.
	state.Board.Set(6, 5, CellO)
	history.Push(HistoryEntry{Move: Move{Row: 6, Col: 5}, Player: PlayerO})
	if gaps := analyzer.ThreatenedGaps(PlayerX); len(gaps) != 0 {
		t.Fatalf("stale generation recomputed: %v", gaps)
	}

	state.Generation++
	if gaps := analyzer.ThreatenedGaps(PlayerX); len(gaps) != 1 {
		t.Fatalf("threatened gaps after generation bump = %v, want 1", gaps)
	}
}

func TestAnalyzerCachesWinAndFragments(t *testing.T) {
	settings := DefaultGameSettings()
	state := DefaultGameState(settings)
	history := MoveHistory{}
	analyzer, err := NewAnalyzer(&state, &history, settings)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}

	first := analyzer.CheckWin(PlayerX)
	second := analyzer.CheckWin(PlayerX)
	if first.Reason != WinReasonTooEarly || second.Reason != first.Reason {
		t.Fatalf("win results = %+v / %+v", first, second)
	}

	state.Board.Set(7, 7, CellX)
	history.Push(HistoryEntry{Move: Move{Row: 7, Col: 7}, Player: PlayerX})
	state.Generation++
	fragments := analyzer.AnalyzeFragments(PlayerX)
	if len(fragments) != 1 {
		t.Fatalf("fragments = %d, want 1", len(fragments))
	}
	again := analyzer.AnalyzeFragments(PlayerX)
	if len(again) != 1 {
		t.Fatalf("cached fragments = %d, want 1", len(again))
	}
}

func TestSnapshotShape(t *testing.T) {
	settings := DefaultGameSettings()
	state := DefaultGameState(settings)
	history := MoveHistory{}
	analyzer, err := NewAnalyzer(&state, &history, settings)
	if err != nil {
		t.Fatalf("new analyzer: %v", err)
	}

	state.Board.Set(5, 5, CellX)
	history.Push(HistoryEntry{Move: Move{Row: 5, Col: 5}, Player: PlayerX})
	state.Board.Set(7, 6, CellX)
	history.Push(HistoryEntry{Move: Move{Row: 7, Col: 6}, Player: PlayerX})
	state.Generation++

	snapshot := analyzer.Snapshot()
	if snapshot.Generation != state.Generation {
		t.Fatalf("snapshot generation = %d, want %d", snapshot.Generation, state.Generation)
	}
	for _, key := range []string{"X", "O"} {
		if _, ok := snapshot.Patterns[key]; !ok {
			t.Fatalf("snapshot missing patterns for %s", key)
		}
		if _, ok := snapshot.Gaps[key]; !ok {
			t.Fatalf("snapshot missing gaps for %s", key)
		}
		if _, ok := snapshot.Fragments[key]; !ok {
			t.Fatalf("snapshot missing fragments for %s", key)
		}
	}
	if len(snapshot.Patterns["X"]) != 1 {
		t.Fatalf("snapshot X patterns = %d, want 1", len(snapshot.Patterns["X"]))
	}
	if len(snapshot.Gaps["X"]["safe"]) != 2 {
		t.Fatalf("snapshot safe gaps = %v, want 2 cells", snapshot.Gaps["X"]["safe"])
	}
}

package main

import "fmt"

// Analyzer wires the derived-state components over one game's board and
// history and keeps them reconciled. All collaborators are injected at
// construction and checked once; there is no ambient lookup and no per-call
// duck typing. Derived results are stamped with the state generation and
// recomputed only when it advances.
type Analyzer struct {
	state    *GameState
	history  *MoveHistory
	settings GameSettings

	ledger    *DiagonalLedger
	detector  *PatternDetector
	registry  *GapRegistry
	fragments *FragmentAnalyzer
	checker   *WinChecker
	selector  *ExtensionSelector

	generation    uint64
	fresh         bool
	fragmentCache map[PlayerColor][]Fragment
	winCache      map[PlayerColor]*WinResult
}

// AnalysisSnapshot is the read-only view handed to the presentation layer:
// only currently valid connections and active gaps appear in it.
type AnalysisSnapshot struct {
	Generation  uint64                          `json:"generation"`
	Connections map[string][]DiagonalConnection `json:"connections"`
	Patterns    map[string][]TrackedPattern     `json:"patterns"`
	Gaps        map[string]map[string][]Move    `json:"gaps"`
	Fragments   map[string][]Fragment           `json:"fragments"`
}

func NewAnalyzer(state *GameState, history *MoveHistory, settings GameSettings) (*Analyzer, error) {
	if state == nil {
		return nil, fmt.Errorf("analyzer: nil game state")
	}
	if history == nil {
		return nil, fmt.Errorf("analyzer: nil move history")
	}
	ledger, err := NewDiagonalLedger(&state.Board, history)
	if err != nil {
		return nil, err
	}
	detector, err := NewPatternDetector(&state.Board, settings.PatternClasses())
	if err != nil {
		return nil, err
	}
	registry, err := NewGapRegistry(&state.Board, detector, ledger, history)
	if err != nil {
		return nil, err
	}
	fragments, err := NewFragmentAnalyzer(&state.Board, ledger, registry, settings.PatternClasses())
	if err != nil {
		return nil, err
	}
	checker, err := NewWinChecker(&state.Board, ledger, history, settings.MinMovesForWinCheck)
	if err != nil {
		return nil, err
	}
	selector, err := NewExtensionSelector(&state.Board)
	if err != nil {
		return nil, err
	}
	analyzer := &Analyzer{
		state:     state,
		history:   history,
		settings:  settings,
		ledger:    ledger,
		detector:  detector,
		registry:  registry,
		fragments: fragments,
		checker:   checker,
		selector:  selector,
	}
	analyzer.Refresh()
	return analyzer, nil
}

// Refresh reconciles the derived structures with the board. Safe to call
// repeatedly: a generation already reconciled is a no-op, so readers can
// never observe a board whose derived state lags behind.
func (a *Analyzer) Refresh() {
	if a.fresh && a.generation == a.state.Generation {
		return
	}
	a.ledger.Update()
	a.registry.Update()
	a.generation = a.state.Generation
	a.fresh = true
	a.fragmentCache = map[PlayerColor][]Fragment{}
	a.winCache = map[PlayerColor]*WinResult{}
}

func (a *Analyzer) Ledger() *DiagonalLedger {
	a.Refresh()
	return a.ledger
}

func (a *Analyzer) Registry() *GapRegistry {
	a.Refresh()
	return a.registry
}

func (a *Analyzer) AnalyzeFragments(player PlayerColor) []Fragment {
	a.Refresh()
	if cached, ok := a.fragmentCache[player]; ok {
		return cached
	}
	result := a.fragments.AnalyzeFragments(player)
	a.fragmentCache[player] = result
	return result
}

func (a *Analyzer) CheckWin(player PlayerColor) WinResult {
	a.Refresh()
	if cached, ok := a.winCache[player]; ok {
		return *cached
	}
	result := a.checker.CheckWin(player)
	a.winCache[player] = &result
	return result
}

func (a *Analyzer) ThreatenedGaps(player PlayerColor) []Move {
	a.Refresh()
	return a.registry.ThreatenedGaps(player)
}

func (a *Analyzer) SafeGaps(player PlayerColor) []Move {
	a.Refresh()
	return a.registry.SafeGaps(player)
}

func (a *Analyzer) AttackOpportunities(player PlayerColor) []Move {
	a.Refresh()
	return a.registry.AttackOpportunities(player)
}

// SelectExtension consults the fragment analysis; it is meant for the move
// generator once direct head extension is exhausted.
func (a *Analyzer) SelectExtension(player PlayerColor, heuristics ExtensionHeuristics) *ExtensionPlan {
	return a.selector.SelectExtension(player, a.AnalyzeFragments(player), heuristics)
}

func (a *Analyzer) HeadDestinations(player PlayerColor, head Head) []Move {
	a.Refresh()
	return a.fragments.HeadDestinations(player, head)
}

func (a *Analyzer) Snapshot() AnalysisSnapshot {
	a.Refresh()
	snapshot := AnalysisSnapshot{
		Generation:  a.generation,
		Connections: map[string][]DiagonalConnection{},
		Patterns:    map[string][]TrackedPattern{},
		Gaps:        map[string]map[string][]Move{},
		Fragments:   map[string][]Fragment{},
	}
	for _, player := range []PlayerColor{PlayerX, PlayerO} {
		key := player.String()
		snapshot.Connections[key] = a.ledger.ActiveConnections(player)
		snapshot.Patterns[key] = a.registry.ActivePatterns(player)
		snapshot.Gaps[key] = map[string][]Move{
			"safe":       a.registry.SafeGaps(player),
			"threatened": a.registry.ThreatenedGaps(player),
		}
		snapshot.Fragments[key] = a.AnalyzeFragments(player)
	}
	return snapshot
}

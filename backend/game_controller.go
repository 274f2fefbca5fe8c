package main

import "sync"

type GameController struct {
	mu                sync.Mutex
	game              *Game
	analysisEnabled   func() bool
	analysisPublisher func(AnalysisSnapshot)
}

func NewGameController(settings GameSettings) *GameController {
	return &GameController{game: NewGame(settings)}
}

func (gc *GameController) SetAnalysisPublisher(enabled func() bool, publisher func(AnalysisSnapshot)) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.analysisEnabled = enabled
	gc.analysisPublisher = publisher
}

func (gc *GameController) ApplyHumanMove(move Move) (bool, string) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if !gc.game.CurrentPlayerIsHuman() {
		return false, "not human turn"
	}
	applied, reason := gc.game.TryApplyMove(move)
	if applied && gc.analysisEnabled != nil && gc.analysisEnabled() && gc.analysisPublisher != nil {
		gc.analysisPublisher(gc.game.Analyzer().Snapshot())
	}
	return applied, reason
}

func (gc *GameController) Tick() bool {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	enabled := false
	if gc.analysisEnabled != nil {
		enabled = gc.analysisEnabled()
	}
	return gc.game.Tick(enabled, gc.analysisPublisher)
}

func (gc *GameController) State() GameState {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.State()
}

func (gc *GameController) Settings() GameSettings {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Settings()
}

func (gc *GameController) History() MoveHistory {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.History()
}

func (gc *GameController) AnalysisSnapshot() AnalysisSnapshot {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Analyzer().Snapshot()
}

func (gc *GameController) CheckWin(player PlayerColor) WinResult {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.Analyzer().CheckWin(player)
}

func (gc *GameController) CurrentTurnStartedAtMs() int64 {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	return gc.game.TurnStartedAtMs()
}

func (gc *GameController) LatestHistoryEntry() (HistoryEntry, bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	history := gc.game.History()
	if history.Size() == 0 {
		return HistoryEntry{}, false
	}
	entries := history.All()
	return entries[len(entries)-1], true
}

func (gc *GameController) Reset(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
}

func (gc *GameController) StartGame(settings GameSettings) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	gc.game.Reset(settings)
	gc.game.Start()
}

func (gc *GameController) UpdateSettings(update GameSettings, reset bool) {
	gc.mu.Lock()
	defer gc.mu.Unlock()
	if reset {
		gc.game.Reset(update)
		return
	}
	gc.game.settings = update
	gc.game.createPlayers()
}

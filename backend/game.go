package main

import (
	"fmt"
	"log"
	"time"
)

type Game struct {
	settings  GameSettings
	rules     Rules
	state     GameState
	history   MoveHistory
	analyzer  *Analyzer
	xPlayer   IPlayer
	oPlayer   IPlayer
	turnStart time.Time
}

func NewGame(settings GameSettings) *Game {
	g := &Game{}
	g.Reset(settings)
	return g
}

func (g *Game) Reset(settings GameSettings) {
	g.settings = settings
	g.rules = NewRules(settings)
	g.state.Reset(settings)
	g.history.Clear()
	analyzer, err := NewAnalyzer(&g.state, &g.history, settings)
	if err != nil {
		// Wiring failure is a programmer error, not a game state.
		panic(fmt.Sprintf("game reset: %v", err))
	}
	g.analyzer = analyzer
	g.createPlayers()
	g.turnStart = time.Now()
}

func (g *Game) Start() {
	if g.state.Status == StatusNotStarted {
		g.state.Status = StatusRunning
		g.turnStart = time.Now()
	}
}

func (g *Game) State() GameState {
	return g.state.Clone()
}

func (g *Game) History() MoveHistory {
	return g.history
}

func (g *Game) Analyzer() *Analyzer {
	return g.analyzer
}

func (g *Game) Settings() GameSettings {
	return g.settings
}

func (g *Game) TurnStartedAtMs() int64 {
	if g.turnStart.IsZero() {
		return 0
	}
	return g.turnStart.UnixMilli()
}

// TryApplyMove is the single mutation path. The placement and the derived
// state refresh (lock ledger, gap registry, win check) happen before control
// returns, so no reader can see a board ahead of its analysis.
func (g *Game) TryApplyMove(move Move) (bool, string) {
	player := g.currentPlayer()
	isAiMove := player != nil && !player.IsHuman()
	ok, reason := g.rules.IsLegalDefault(g.state, move)
	if !ok {
		g.state.LastMessage = "Illegal move: " + reason
		return false, g.state.LastMessage
	}
	g.state.LastMessage = ""
	elapsedMs := float64(time.Since(g.turnStart).Milliseconds())
	mover := g.state.ToMove
	g.state.Board.Set(move.Row, move.Col, CellFromPlayer(mover))
	g.state.LastMove = move
	g.state.HasLastMove = true
	entry := g.history.Push(HistoryEntry{Move: move, Player: mover, ElapsedMs: elapsedMs, IsAi: isAiMove})
	g.state.Generation++
	g.analyzer.Refresh()
	if GetConfig().LogMoves {
		log.Printf("[engine] move %d: %v plays (%d,%d)", entry.Sequence, mover, move.Row, move.Col)
	}

	result := g.analyzer.CheckWin(mover)
	if result.IsWin {
		g.state.WinReason = result.Reason
		g.state.WinningPath = append([]Move(nil), result.Path...)
		if mover == PlayerX {
			g.state.Status = StatusXWon
		} else {
			g.state.Status = StatusOWon
		}
		log.Printf("[engine] %v wins after move %d (%d-piece path)", mover, entry.Sequence, len(result.Path))
		return true, ""
	}
	if g.rules.IsDraw(g.state.Board) {
		g.state.Status = StatusDraw
		return true, ""
	}

	g.state.ToMove = otherPlayer(mover)
	g.turnStart = time.Now()
	return true, ""
}

// Tick advances AI turns and pending human moves; it returns whether a move
// was applied.
func (g *Game) Tick(analysisEnabled bool, analysisSink func(AnalysisSnapshot)) bool {
	if g.state.Status != StatusRunning {
		return false
	}
	player := g.currentPlayer()
	if player == nil {
		return false
	}
	applied := false
	if player.IsHuman() {
		human, ok := player.(*HumanPlayer)
		if ok && human.HasPendingMove() {
			applied, _ = g.TryApplyMove(human.TakePendingMove())
		}
	} else {
		move := player.ChooseMove(g.state, g.analyzer)
		applied, _ = g.TryApplyMove(move)
	}
	if applied && analysisEnabled && analysisSink != nil {
		analysisSink(g.analyzer.Snapshot())
	}
	return applied
}

func (g *Game) SubmitHumanMove(move Move) bool {
	player := g.currentPlayer()
	if player == nil || !player.IsHuman() {
		return false
	}
	human, ok := player.(*HumanPlayer)
	if !ok {
		return false
	}
	human.SetPendingMove(move)
	return true
}

func (g *Game) CurrentPlayerIsHuman() bool {
	player := g.currentPlayer()
	return player != nil && player.IsHuman()
}

func (g *Game) currentPlayer() IPlayer {
	return g.playerForColor(g.state.ToMove)
}

func (g *Game) playerForColor(color PlayerColor) IPlayer {
	if color == PlayerX {
		return g.xPlayer
	}
	return g.oPlayer
}

func (g *Game) createPlayers() {
	if g.settings.XType == PlayerHuman {
		g.xPlayer = NewHumanPlayer()
	} else {
		g.xPlayer = NewAIPlayer()
	}
	if g.settings.OType == PlayerHuman {
		g.oPlayer = NewHumanPlayer()
	} else {
		g.oPlayer = NewAIPlayer()
	}
}

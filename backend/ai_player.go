package main

import (
	"math/rand"
	"time"
)

// AIPlayer picks moves from the analyzer output by fixed priority: defend an
// own threatened gap, attack an opponent pattern (last-gap blocks first),
// extend the most promising fragment head, fall back to the strategic
// extension selector, and finally take the most central free cell. The whole
// chain is synchronous; on a 225-cell board it completes well inside the
// per-move latency budget.
type AIPlayer struct {
	rng *rand.Rand
}

func NewAIPlayer() *AIPlayer {
	return &AIPlayer{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

func (a *AIPlayer) IsHuman() bool {
	return false
}

func (a *AIPlayer) ChooseMove(state GameState, analyzer *Analyzer) Move {
	player := state.ToMove
	config := GetConfig()

	if move, ok := a.defendThreatenedGap(state, analyzer, player, config); ok {
		return move
	}
	if move, ok := a.attackOpponentPattern(analyzer, player); ok {
		return move
	}
	if move, ok := a.extendBestHead(state, analyzer, player, config); ok {
		return move
	}
	if move, ok := a.followExtensionPlan(state, analyzer, player, config); ok {
		return move
	}
	return a.centralFallback(state, config)
}

// defendThreatenedGap fills an own gap cell the opponent has started
// blocking. Urgency first: patterns with a single empty gap left.
func (a *AIPlayer) defendThreatenedGap(state GameState, analyzer *Analyzer, player PlayerColor, config Config) (Move, bool) {
	var fallback *Move
	for _, tracked := range analyzer.Registry().ActivePatterns(player) {
		if tracked.State != GapThreatened || len(tracked.EmptyGaps) == 0 {
			continue
		}
		if len(tracked.EmptyGaps) == 1 {
			return tracked.EmptyGaps[0], true
		}
		if fallback == nil {
			best := a.pickByCentrality(state, tracked.EmptyGaps, config)
			fallback = &best
		}
	}
	if fallback != nil {
		return *fallback, true
	}
	return Move{}, false
}

// attackOpponentPattern marks an empty gap of an opponent pattern, preferring
// cells that block a pattern outright (single remaining gap).
func (a *AIPlayer) attackOpponentPattern(analyzer *Analyzer, player PlayerColor) (Move, bool) {
	opponent := otherPlayer(player)
	for _, tracked := range analyzer.Registry().ActivePatterns(opponent) {
		if len(tracked.EmptyGaps) == 1 {
			return tracked.EmptyGaps[0], true
		}
	}
	// No outright block available; only press the attack on patterns the
	// opponent is invested in (already threatened ones stay threatened).
	opportunities := analyzer.AttackOpportunities(player)
	if len(opportunities) == 0 {
		return Move{}, false
	}
	threatened := analyzer.ThreatenedGaps(opponent)
	for _, cell := range opportunities {
		for _, hot := range threatened {
			if cell.Equals(hot) {
				return cell, true
			}
		}
	}
	return Move{}, false
}

// extendBestHead grows the fragment closest to completing its axis, through
// whichever of its heads still has room.
func (a *AIPlayer) extendBestHead(state GameState, analyzer *Analyzer, player PlayerColor, config Config) (Move, bool) {
	fragments := analyzer.AnalyzeFragments(player)
	if len(fragments) == 0 {
		return Move{}, false
	}
	best := -1
	for i, fragment := range fragments {
		if fragment.TouchesBothBorders() {
			continue
		}
		if best == -1 || fragments[i].AxisCoverage > fragments[best].AxisCoverage {
			best = i
		}
	}
	if best == -1 {
		return Move{}, false
	}
	fragment := fragments[best]
	size := state.Board.Size()
	var candidates []Move
	for _, head := range fragment.Heads {
		if head.Blocked || head.Type == HeadFullyConnected {
			continue
		}
		if head.Type == HeadBorderConnection {
			// One step from the border: claim the border cell directly.
			border := 0
			if head.End == HeadMax {
				border = size - 1
			}
			var cell Move
			if player == PlayerX {
				cell = Move{Row: border, Col: head.Piece.Col}
			} else {
				cell = Move{Row: head.Piece.Row, Col: border}
			}
			if state.Board.IsEmpty(cell.Row, cell.Col) {
				return cell, true
			}
		}
		candidates = append(candidates, analyzer.HeadDestinations(player, head)...)
	}
	if len(candidates) == 0 {
		return Move{}, false
	}
	return a.pickByCentrality(state, candidates, config), true
}

// followExtensionPlan turns the selector's plan into a placement: a pattern
// destination from the chosen piece, nearest to the plan target.
func (a *AIPlayer) followExtensionPlan(state GameState, analyzer *Analyzer, player PlayerColor, config Config) (Move, bool) {
	plan := analyzer.SelectExtension(player, config.Extension)
	if plan == nil {
		return Move{}, false
	}
	var best Move
	bestDist := -1
	for _, offset := range patternOffsets(analyzer.settings.PatternClasses()) {
		next := Move{Row: plan.Piece.Row + offset[0], Col: plan.Piece.Col + offset[1]}
		if !state.Board.IsEmpty(next.Row, next.Col) {
			continue
		}
		dist := next.Chebyshev(plan.Target)
		if bestDist == -1 || dist < bestDist {
			bestDist = dist
			best = next
		}
	}
	if bestDist == -1 {
		return Move{}, false
	}
	return best, true
}

func (a *AIPlayer) centralFallback(state GameState, config Config) Move {
	size := state.Board.Size()
	var candidates []Move
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if state.Board.IsEmpty(row, col) {
				candidates = append(candidates, Move{Row: row, Col: col})
			}
		}
	}
	if len(candidates) == 0 {
		return Move{Row: -1, Col: -1}
	}
	return a.pickByCentrality(state, candidates, config)
}

// pickByCentrality scores candidates by closeness to the board center plus a
// small random jitter so equal positions do not always resolve the same way.
func (a *AIPlayer) pickByCentrality(state GameState, candidates []Move, config Config) Move {
	center := state.Board.Size() / 2
	best := candidates[0]
	bestScore := -1.0
	for _, candidate := range candidates {
		dist := absInt(candidate.Row-center) + absInt(candidate.Col-center)
		score := config.AiCentralityWeight*float64(2*center-dist) + a.rng.Float64()*config.AiJitter
		if score > bestScore {
			bestScore = score
			best = candidate
		}
	}
	return best
}

package main

import "fmt"

type GapState int

const (
	GapSafe GapState = iota
	GapThreatened
)

func (s GapState) String() string {
	if s == GapThreatened {
		return "threatened"
	}
	return "safe"
}

type RemovalReason int

const (
	RemovedCompleted RemovalReason = iota
	RemovedBlocked
	RemovedSevered
)

func (r RemovalReason) String() string {
	switch r {
	case RemovedCompleted:
		return "completed"
	case RemovedBlocked:
		return "blocked"
	default:
		return "severed"
	}
}

// TrackedPattern is an active pattern with its gap classification.
type TrackedPattern struct {
	Pattern
	State     GapState `json:"state"`
	EmptyGaps []Move   `json:"empty_gaps"`
}

type RemovedPattern struct {
	Pattern
	Reason RemovalReason `json:"reason"`
	AtMove int           `json:"at_move"`
}

// GapRegistry owns the pattern lifecycle. Update reconciles the full set from
// the current board after every move (either player's): a diagonal lock
// established on move N can retroactively sever a pattern formed on move N-5,
// so nothing here survives on trust.
type GapRegistry struct {
	board    *Board
	detector *PatternDetector
	ledger   *DiagonalLedger
	history  *MoveHistory
	active   map[PlayerColor][]TrackedPattern
	removed  map[PlayerColor][]RemovedPattern
}

func NewGapRegistry(board *Board, detector *PatternDetector, ledger *DiagonalLedger, history *MoveHistory) (*GapRegistry, error) {
	if board == nil {
		return nil, fmt.Errorf("gap registry: nil board")
	}
	if detector == nil {
		return nil, fmt.Errorf("gap registry: nil pattern detector")
	}
	if ledger == nil {
		return nil, fmt.Errorf("gap registry: nil diagonal ledger")
	}
	if history == nil {
		return nil, fmt.Errorf("gap registry: nil history")
	}
	registry := &GapRegistry{
		board:    board,
		detector: detector,
		ledger:   ledger,
		history:  history,
		active:   map[PlayerColor][]TrackedPattern{PlayerX: {}, PlayerO: {}},
		removed:  map[PlayerColor][]RemovedPattern{PlayerX: {}, PlayerO: {}},
	}
	registry.Update()
	return registry, nil
}

// Update recomputes active patterns and their classification for both
// players. Severance takes precedence over gap occupancy: a crossed pattern
// goes even with every gap cell empty.
func (g *GapRegistry) Update() {
	for _, player := range []PlayerColor{PlayerX, PlayerO} {
		previous := g.active[player]
		next := []TrackedPattern{}
		for _, pattern := range g.detector.FindPatterns(player) {
			g.assertPatternSane(pattern)
			if removed, reason := g.removalState(pattern); removed {
				g.recordRemoval(previous, pattern, reason)
				continue
			}
			tracked := TrackedPattern{Pattern: pattern, State: GapSafe}
			opponentCell := CellFromPlayer(otherPlayer(player))
			opponentGaps := 0
			for _, gap := range pattern.Gaps {
				switch g.board.At(gap.Row, gap.Col) {
				case CellEmpty:
					tracked.EmptyGaps = append(tracked.EmptyGaps, gap)
				case opponentCell:
					opponentGaps++
				}
			}
			if opponentGaps > 0 {
				tracked.State = GapThreatened
			}
			next = append(next, tracked)
		}
		g.active[player] = next
	}
}

// removalState decides whether a geometric pattern is out of play: severed by
// a valid crossing opponent diagonal, completed by the owner filling a gap,
// or blocked by the opponent filling every gap (both cells for L, all three
// for I; a single opponent mark is a threat, not a block).
func (g *GapRegistry) removalState(pattern Pattern) (bool, RemovalReason) {
	if g.isSevered(pattern) {
		return true, RemovedSevered
	}
	ownerCell := CellFromPlayer(pattern.Player)
	opponentCell := CellFromPlayer(otherPlayer(pattern.Player))
	opponentGaps := 0
	for _, gap := range pattern.Gaps {
		switch g.board.At(gap.Row, gap.Col) {
		case ownerCell:
			return true, RemovedCompleted
		case opponentCell:
			opponentGaps++
		}
	}
	if opponentGaps == len(pattern.Gaps) {
		return true, RemovedBlocked
	}
	return false, 0
}

func (g *GapRegistry) isSevered(pattern Pattern) bool {
	for _, conn := range g.ledger.ActiveConnections(otherPlayer(pattern.Player)) {
		if segmentsCross(pattern.A, pattern.B, conn.A, conn.B) {
			return true
		}
	}
	return false
}

// recordRemoval appends to the removal log only for patterns that were
// actually active before, keeping Update idempotent between moves.
func (g *GapRegistry) recordRemoval(previous []TrackedPattern, pattern Pattern, reason RemovalReason) {
	for _, tracked := range previous {
		if tracked.SameAs(pattern) {
			g.removed[pattern.Player] = append(g.removed[pattern.Player], RemovedPattern{
				Pattern: pattern,
				Reason:  reason,
				AtMove:  g.history.Size(),
			})
			return
		}
	}
}

func (g *GapRegistry) ActivePatterns(player PlayerColor) []TrackedPattern {
	return append([]TrackedPattern(nil), g.active[player]...)
}

func (g *GapRegistry) RemovedPatterns(player PlayerColor) []RemovedPattern {
	return append([]RemovedPattern(nil), g.removed[player]...)
}

// ThreatenedGaps returns the still-empty gap cells of the player's threatened
// patterns: the squares to fill before the opponent completes the block.
func (g *GapRegistry) ThreatenedGaps(player PlayerColor) []Move {
	return g.gapsInState(player, GapThreatened)
}

func (g *GapRegistry) SafeGaps(player PlayerColor) []Move {
	return g.gapsInState(player, GapSafe)
}

func (g *GapRegistry) gapsInState(player PlayerColor, state GapState) []Move {
	gaps := []Move{}
	seen := map[Move]bool{}
	for _, tracked := range g.active[player] {
		if tracked.State != state {
			continue
		}
		for _, gap := range tracked.EmptyGaps {
			if !seen[gap] {
				seen[gap] = true
				gaps = append(gaps, gap)
			}
		}
	}
	return gaps
}

// AttackOpportunities lists the empty gap cells of the opponent's active
// patterns. Marking one either starts a threat or, on a pattern with a single
// remaining gap, blocks it outright.
func (g *GapRegistry) AttackOpportunities(player PlayerColor) []Move {
	return g.allEmptyGaps(otherPlayer(player))
}

func (g *GapRegistry) allEmptyGaps(player PlayerColor) []Move {
	gaps := []Move{}
	seen := map[Move]bool{}
	for _, tracked := range g.active[player] {
		for _, gap := range tracked.EmptyGaps {
			if !seen[gap] {
				seen[gap] = true
				gaps = append(gaps, gap)
			}
		}
	}
	return gaps
}

// PatternsAt returns every active pattern (either player) that has the cell
// as an endpoint or a gap.
func (g *GapRegistry) PatternsAt(row, col int) []TrackedPattern {
	cell := Move{Row: row, Col: col}
	result := []TrackedPattern{}
	for _, player := range []PlayerColor{PlayerX, PlayerO} {
		for _, tracked := range g.active[player] {
			if tracked.A.Equals(cell) || tracked.B.Equals(cell) {
				result = append(result, tracked)
				continue
			}
			for _, gap := range tracked.Gaps {
				if gap.Equals(cell) {
					result = append(result, tracked)
					break
				}
			}
		}
	}
	return result
}

// assertPatternSane fails loudly on detector output that violates the data
// model; a bad pattern is a maintenance bug, never a legitimate game state.
func (g *GapRegistry) assertPatternSane(pattern Pattern) {
	size := g.board.Size()
	ownerCell := CellFromPlayer(pattern.Player)
	if g.board.At(pattern.A.Row, pattern.A.Col) != ownerCell || g.board.At(pattern.B.Row, pattern.B.Col) != ownerCell {
		panic(fmt.Sprintf("pattern %v-%v not owned by %v", pattern.A, pattern.B, pattern.Player))
	}
	for _, gap := range pattern.Gaps {
		if !gap.IsValid(size) {
			panic(fmt.Sprintf("pattern %v-%v gap %v out of bounds", pattern.A, pattern.B, gap))
		}
	}
}

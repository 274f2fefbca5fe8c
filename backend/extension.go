package main

import "fmt"

type ExtensionKind int

const (
	// ExtensionBridge merges two fragments across the gap separating them.
	ExtensionBridge ExtensionKind = iota
	// ExtensionBorder pushes a single fragment toward a border it has not
	// reached yet.
	ExtensionBorder
)

func (k ExtensionKind) String() string {
	if k == ExtensionBridge {
		return "bridge"
	}
	return "border"
}

// ExtensionWeights are tunable scoring parameters, not correctness rules.
// Resistance and Congestion are penalties (subtracted).
type ExtensionWeights struct {
	Proximity   float64 `json:"proximity"`
	Clearance   float64 `json:"clearance"`
	Resistance  float64 `json:"resistance"`
	Congestion  float64 `json:"congestion"`
	BorderBonus float64 `json:"border_bonus"`
}

type ExtensionHeuristics struct {
	Bridge ExtensionWeights `json:"bridge"`
	Border ExtensionWeights `json:"border"`
	// BridgeBothBordersBonus is the base score of a bridge that would merge
	// two fragments already touching opposite borders: completing it is an
	// immediate win path.
	BridgeBothBordersBonus float64 `json:"bridge_both_borders_bonus"`
}

func DefaultExtensionHeuristics() ExtensionHeuristics {
	return ExtensionHeuristics{
		Bridge: ExtensionWeights{
			Proximity:   6.0,
			Clearance:   4.0,
			Resistance:  5.0,
			Congestion:  2.0,
			BorderBonus: 1.0,
		},
		Border: ExtensionWeights{
			Proximity:   5.0,
			Clearance:   6.0,
			Resistance:  3.0,
			Congestion:  2.0,
			BorderBonus: 2.0,
		},
		BridgeBothBordersBonus: 1000.0,
	}
}

// ExtensionPlan is the selector's answer: push Piece one step in Direction
// toward Target. It affects move quality only, never legality.
type ExtensionPlan struct {
	Piece               Move          `json:"piece"`
	Direction           Move          `json:"direction"` // unit row/col step
	Kind                ExtensionKind `json:"kind"`
	Target              Move          `json:"target"`
	Score               float64       `json:"score"`
	BothBorderConnected bool          `json:"both_border_connected"`
}

// ExtensionSelector scores mid-chain pieces for alternative strategies when
// no fragment head can extend directly.
type ExtensionSelector struct {
	board *Board
}

func NewExtensionSelector(board *Board) (*ExtensionSelector, error) {
	if board == nil {
		return nil, fmt.Errorf("extension selector: nil board")
	}
	return &ExtensionSelector{board: board}, nil
}

type extensionTarget struct {
	kind                ExtensionKind
	target              Move
	base                float64
	bothBorderConnected bool
	fragments           []Fragment // fragments whose pieces are candidates
}

// SelectExtension returns the highest-scoring candidate across all bridge and
// border targets, or nil when nothing qualifies. Ties break arbitrarily.
func (s *ExtensionSelector) SelectExtension(player PlayerColor, fragments []Fragment, heuristics ExtensionHeuristics) *ExtensionPlan {
	targets := s.collectTargets(player, fragments, heuristics)
	var best *ExtensionPlan
	for _, target := range targets {
		weights := heuristics.Border
		if target.kind == ExtensionBridge {
			weights = heuristics.Bridge
		}
		for _, fragment := range target.fragments {
			for _, piece := range fragment.Pieces {
				if !s.isCandidate(player, piece, fragment) {
					continue
				}
				score := target.base + s.scoreCandidate(player, piece, target.target, weights)
				if best == nil || score > best.Score {
					best = &ExtensionPlan{
						Piece:               piece,
						Direction:           unitStep(piece, target.target),
						Kind:                target.kind,
						Target:              target.target,
						Score:               score,
						BothBorderConnected: target.bothBorderConnected,
					}
				}
			}
		}
	}
	return best
}

func (s *ExtensionSelector) collectTargets(player PlayerColor, fragments []Fragment, heuristics ExtensionHeuristics) []extensionTarget {
	targets := []extensionTarget{}
	for i := 0; i < len(fragments); i++ {
		for j := i + 1; j < len(fragments); j++ {
			f1 := fragments[i]
			f2 := fragments[j]
			pa, pb := closestPiecePair(f1, f2)
			target := Move{Row: (pa.Row + pb.Row) / 2, Col: (pa.Col + pb.Col) / 2}
			bridge := extensionTarget{
				kind:      ExtensionBridge,
				target:    target,
				fragments: []Fragment{f1, f2},
			}
			if bridgeConnectsBorders(player, f1, f2) {
				bridge.base = heuristics.BridgeBothBordersBonus
				bridge.bothBorderConnected = true
			}
			targets = append(targets, bridge)
		}
	}
	size := s.board.Size()
	for _, fragment := range fragments {
		for _, borderAxis := range missingBorders(player, fragment, size) {
			targets = append(targets, extensionTarget{
				kind:      ExtensionBorder,
				target:    borderProjection(player, fragment, borderAxis),
				fragments: []Fragment{fragment},
			})
		}
	}
	return targets
}

// isCandidate keeps mid-chain, non-border-zone, non-head pieces: head
// extension already covers the rest.
func (s *ExtensionSelector) isCandidate(player PlayerColor, piece Move, fragment Fragment) bool {
	axis := axisCoord(player, piece)
	if axis < 2 || axis > s.board.Size()-3 {
		return false
	}
	return !fragment.IsHead(piece)
}

func (s *ExtensionSelector) scoreCandidate(player PlayerColor, piece, target Move, weights ExtensionWeights) float64 {
	size := s.board.Size()
	opponentCell := CellFromPlayer(otherPlayer(player))
	ownCell := CellFromPlayer(player)

	proximity := weights.Proximity * float64(size-piece.Chebyshev(target))

	step := unitStep(piece, target)
	clearance := 0
	cursor := piece
	for i := 0; i < 3; i++ {
		cursor = Move{Row: cursor.Row + step.Row, Col: cursor.Col + step.Col}
		if !cursor.IsValid(size) {
			break
		}
		if s.board.At(cursor.Row, cursor.Col) == CellEmpty {
			clearance++
		}
	}

	resistance := 0
	congestion := 0
	for dr := -2; dr <= 2; dr++ {
		for dc := -2; dc <= 2; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nr := piece.Row + dr
			nc := piece.Col + dc
			if !s.board.InBounds(nr, nc) {
				continue
			}
			switch s.board.At(nr, nc) {
			case opponentCell:
				resistance++
			case ownCell:
				if absInt(dr) <= 1 && absInt(dc) <= 1 {
					congestion++
				}
			}
		}
	}

	axis := axisCoord(player, piece)
	borderDist := axis
	if size-1-axis < borderDist {
		borderDist = size - 1 - axis
	}
	borderBonus := weights.BorderBonus * float64(size/2-borderDist)

	return proximity +
		weights.Clearance*float64(clearance) -
		weights.Resistance*float64(resistance) -
		weights.Congestion*float64(congestion) +
		borderBonus
}

func closestPiecePair(f1, f2 Fragment) (Move, Move) {
	best := f1.Pieces[0].Chebyshev(f2.Pieces[0]) + 1
	var pa, pb Move
	for _, a := range f1.Pieces {
		for _, b := range f2.Pieces {
			if d := a.Chebyshev(b); d < best {
				best = d
				pa = a
				pb = b
			}
		}
	}
	return pa, pb
}

// bridgeConnectsBorders is true when the two fragments individually touch
// opposite target borders, so merging them completes a border-to-border
// chain.
func bridgeConnectsBorders(player PlayerColor, f1, f2 Fragment) bool {
	if player == PlayerX {
		return (f1.Borders.Top && f2.Borders.Bottom) || (f2.Borders.Top && f1.Borders.Bottom)
	}
	return (f1.Borders.Left && f2.Borders.Right) || (f2.Borders.Left && f1.Borders.Right)
}

func missingBorders(player PlayerColor, fragment Fragment, size int) []int {
	missing := []int{}
	if player == PlayerX {
		if !fragment.Borders.Top {
			missing = append(missing, 0)
		}
		if !fragment.Borders.Bottom {
			missing = append(missing, size-1)
		}
	} else {
		if !fragment.Borders.Left {
			missing = append(missing, 0)
		}
		if !fragment.Borders.Right {
			missing = append(missing, size-1)
		}
	}
	return missing
}

// borderProjection drops the fragment's axis-extreme piece onto the border
// line, keeping its off-axis coordinate.
func borderProjection(player PlayerColor, fragment Fragment, borderAxis int) Move {
	reference := fragment.Pieces[0]
	for _, piece := range fragment.Pieces[1:] {
		refDist := absInt(axisCoord(player, reference) - borderAxis)
		pieceDist := absInt(axisCoord(player, piece) - borderAxis)
		if pieceDist < refDist {
			reference = piece
		}
	}
	if player == PlayerX {
		return Move{Row: borderAxis, Col: reference.Col}
	}
	return Move{Row: reference.Row, Col: borderAxis}
}

func unitStep(from, to Move) Move {
	return Move{Row: signInt(to.Row - from.Row), Col: signInt(to.Col - from.Col)}
}

func signInt(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

package main

import "fmt"

type PatternKind int

const (
	PatternL PatternKind = iota
	PatternI
	PatternDiagonal
)

func (k PatternKind) String() string {
	switch k {
	case PatternL:
		return "L"
	case PatternI:
		return "I"
	default:
		return "diagonal"
	}
}

type PatternClasses struct {
	L        bool `json:"l"`
	I        bool `json:"i"`
	Diagonal bool `json:"diagonal"`
}

// Pattern associates two same-player pieces at L-distance (2,1)/(1,2),
// I-distance (2,0)/(0,2), or diagonal distance (2,2), with the gap cells
// whose filling would complete a direct adjacency chain between them.
// A precedes B in row-major scan order.
type Pattern struct {
	Kind   PatternKind `json:"kind"`
	Player PlayerColor `json:"player"`
	A      Move        `json:"a"`
	B      Move        `json:"b"`
	Gaps   []Move      `json:"gaps"`
}

func (p Pattern) SameAs(other Pattern) bool {
	return p.Kind == other.Kind && p.Player == other.Player &&
		p.A.Equals(other.A) && p.B.Equals(other.B)
}

// PatternDetector finds the geometric piece pairs of a player. It is occupancy
// agnostic beyond piece positions: gap emptiness, blocking and severance are
// the registry's business.
type PatternDetector struct {
	board   *Board
	classes PatternClasses
}

func NewPatternDetector(board *Board, classes PatternClasses) (*PatternDetector, error) {
	if board == nil {
		return nil, fmt.Errorf("pattern detector: nil board")
	}
	return &PatternDetector{board: board, classes: classes}, nil
}

func (d *PatternDetector) SetClasses(classes PatternClasses) {
	d.classes = classes
}

// FindPatterns returns every enabled-class pattern of the player. Pairs at
// Chebyshev distance <= 1 are already adjacent and rejected before any other
// test; pairs beyond L/I/diagonal range have no gap semantics and are
// discarded outright.
func (d *PatternDetector) FindPatterns(player PlayerColor) []Pattern {
	pieces := d.board.Pieces(player)
	patterns := []Pattern{}
	for i := 0; i < len(pieces); i++ {
		for j := i + 1; j < len(pieces); j++ {
			a := pieces[i]
			b := pieces[j]
			if a.Chebyshev(b) <= 1 {
				continue
			}
			kind, ok := classifyPair(a, b)
			if !ok || !d.classEnabled(kind) {
				continue
			}
			gaps := ComputeGaps(a, b, d.board.Size())
			if len(gaps) == 0 {
				continue
			}
			patterns = append(patterns, Pattern{
				Kind:   kind,
				Player: player,
				A:      a,
				B:      b,
				Gaps:   gaps,
			})
		}
	}
	return patterns
}

func (d *PatternDetector) classEnabled(kind PatternKind) bool {
	switch kind {
	case PatternL:
		return d.classes.L
	case PatternI:
		return d.classes.I
	default:
		return d.classes.Diagonal
	}
}

func classifyPair(a, b Move) (PatternKind, bool) {
	dr := absInt(a.Row - b.Row)
	dc := absInt(a.Col - b.Col)
	switch {
	case (dr == 2 && dc == 1) || (dr == 1 && dc == 2):
		return PatternL, true
	case (dr == 2 && dc == 0) || (dr == 0 && dc == 2):
		return PatternI, true
	case dr == 2 && dc == 2:
		return PatternDiagonal, true
	default:
		return 0, false
	}
}

// ComputeGaps is a pure function of pair geometry; it ignores occupancy and
// only drops cells that fall off the board. L-pairs get the two knee cells at
// the midpoint of the long side; I-pairs get the straight midline cell plus
// its two orthogonal flanks (center first); diagonal pairs get the single
// midpoint. Pairs that match no pattern class yield nil.
func ComputeGaps(a, b Move, boardSize int) []Move {
	kind, ok := classifyPair(a, b)
	if !ok {
		return nil
	}
	gaps := []Move{}
	switch kind {
	case PatternL:
		if absInt(a.Row-b.Row) == 2 {
			midRow := (a.Row + b.Row) / 2
			gaps = append(gaps, Move{Row: midRow, Col: a.Col}, Move{Row: midRow, Col: b.Col})
		} else {
			midCol := (a.Col + b.Col) / 2
			gaps = append(gaps, Move{Row: a.Row, Col: midCol}, Move{Row: b.Row, Col: midCol})
		}
	case PatternI:
		if absInt(a.Row-b.Row) == 2 {
			midRow := (a.Row + b.Row) / 2
			gaps = append(gaps,
				Move{Row: midRow, Col: a.Col},
				Move{Row: midRow, Col: a.Col - 1},
				Move{Row: midRow, Col: a.Col + 1})
		} else {
			midCol := (a.Col + b.Col) / 2
			gaps = append(gaps,
				Move{Row: a.Row, Col: midCol},
				Move{Row: a.Row - 1, Col: midCol},
				Move{Row: a.Row + 1, Col: midCol})
		}
	case PatternDiagonal:
		gaps = append(gaps, Move{Row: (a.Row + b.Row) / 2, Col: (a.Col + b.Col) / 2})
	}
	inBounds := gaps[:0]
	for _, gap := range gaps {
		if gap.IsValid(boardSize) {
			inBounds = append(inBounds, gap)
		}
	}
	return inBounds
}

// segmentsCross reports a proper crossing of the open segments p1-p2 and
// q1-q2 (grid cells as lattice points). Endpoint touches do not count: a
// diagonal ending on a gap cell is a gap-occupancy matter, not a severance.
func segmentsCross(p1, p2, q1, q2 Move) bool {
	d1 := crossOrientation(q1, q2, p1)
	d2 := crossOrientation(q1, q2, p2)
	d3 := crossOrientation(p1, p2, q1)
	d4 := crossOrientation(p1, p2, q2)
	return ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0))
}

func crossOrientation(a, b, c Move) int {
	return (b.Col-a.Col)*(c.Row-a.Row) - (b.Row-a.Row)*(c.Col-a.Col)
}

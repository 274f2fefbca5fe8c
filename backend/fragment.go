package main

import (
	"fmt"
	"sort"
)

type HeadType int

const (
	// HeadFullyConnected sits on the border itself (axis 0 or 14).
	HeadFullyConnected HeadType = iota
	// HeadBorderConnection is one gap-fill away from the border (axis 1 or 13).
	HeadBorderConnection
	// HeadActive can still extend via L/I placement (axis 2-12).
	HeadActive
)

func (t HeadType) String() string {
	switch t {
	case HeadFullyConnected:
		return "fully-connected"
	case HeadBorderConnection:
		return "border-connection"
	default:
		return "active"
	}
}

type HeadEnd int

const (
	HeadMin HeadEnd = iota // toward axis 0
	HeadMax                // toward axis size-1
)

type Head struct {
	Piece Move     `json:"piece"`
	Type  HeadType `json:"type"`
	End   HeadEnd  `json:"end"`
	// Blocked means no empty L/I destination advances this head toward its
	// border; ExtensionOptions counts those destinations.
	Blocked          bool `json:"blocked"`
	ExtensionOptions int  `json:"extension_options"`
}

type BorderConnections struct {
	Top    bool `json:"top"`
	Bottom bool `json:"bottom"`
	Left   bool `json:"left"`
	Right  bool `json:"right"`
}

// Fragment is a maximal set of one player's pieces connected through lateral
// adjacency, unblocked diagonal adjacency, or pattern linkage (an unfilled
// gap still binds its pieces into one fragment: it is an intended future
// connection).
type Fragment struct {
	Player          PlayerColor       `json:"player"`
	Pieces          []Move            `json:"pieces"`
	Heads           []Head            `json:"heads"`
	Borders         BorderConnections `json:"borders"`
	AxisCoverage    int               `json:"axis_coverage"`
	AxisCoveragePct float64           `json:"axis_coverage_pct"`
	// BorderDistance is the smaller of the two head-to-border distances.
	BorderDistance int `json:"border_distance"`
}

func (f Fragment) Contains(piece Move) bool {
	for _, p := range f.Pieces {
		if p.Equals(piece) {
			return true
		}
	}
	return false
}

func (f Fragment) IsHead(piece Move) bool {
	for _, head := range f.Heads {
		if head.Piece.Equals(piece) {
			return true
		}
	}
	return false
}

// TouchesBothBorders reports whether the fragment reaches both of the
// player's target borders on its own.
func (f Fragment) TouchesBothBorders() bool {
	if f.Player == PlayerX {
		return f.Borders.Top && f.Borders.Bottom
	}
	return f.Borders.Left && f.Borders.Right
}

type FragmentAnalyzer struct {
	board    *Board
	ledger   *DiagonalLedger
	registry *GapRegistry
	classes  PatternClasses
}

func NewFragmentAnalyzer(board *Board, ledger *DiagonalLedger, registry *GapRegistry, classes PatternClasses) (*FragmentAnalyzer, error) {
	if board == nil {
		return nil, fmt.Errorf("fragment analyzer: nil board")
	}
	if ledger == nil {
		return nil, fmt.Errorf("fragment analyzer: nil diagonal ledger")
	}
	if registry == nil {
		return nil, fmt.Errorf("fragment analyzer: nil gap registry")
	}
	return &FragmentAnalyzer{board: board, ledger: ledger, registry: registry, classes: classes}, nil
}

// AnalyzeFragments partitions the player's pieces into connected components
// and derives heads and metrics. Everything is rebuilt from the current
// board, ledger and pattern set; nothing persists across moves.
func (a *FragmentAnalyzer) AnalyzeFragments(player PlayerColor) []Fragment {
	pieces := a.board.Pieces(player)
	edges := a.buildEdges(player, pieces)

	visited := map[Move]bool{}
	fragments := []Fragment{}
	for _, piece := range pieces {
		if visited[piece] {
			continue
		}
		component := []Move{}
		queue := []Move{piece}
		visited[piece] = true
		for len(queue) > 0 {
			current := queue[0]
			queue = queue[1:]
			component = append(component, current)
			for _, next := range edges[current] {
				if !visited[next] {
					visited[next] = true
					queue = append(queue, next)
				}
			}
		}
		sort.Slice(component, func(i, j int) bool {
			if component[i].Row != component[j].Row {
				return component[i].Row < component[j].Row
			}
			return component[i].Col < component[j].Col
		})
		fragments = append(fragments, a.buildFragment(player, component, edges))
	}
	return fragments
}

// buildEdges assembles the undirected piece graph: lateral neighbors,
// diagonal neighbors the ledger has not locked, and pattern links regardless
// of gap-fill state.
func (a *FragmentAnalyzer) buildEdges(player PlayerColor, pieces []Move) map[Move][]Move {
	playerCell := CellFromPlayer(player)
	edges := map[Move][]Move{}
	addEdge := func(from, to Move) {
		for _, existing := range edges[from] {
			if existing.Equals(to) {
				return
			}
		}
		edges[from] = append(edges[from], to)
	}
	for _, piece := range pieces {
		if a.board.At(piece.Row, piece.Col) != playerCell {
			panic(fmt.Sprintf("fragment piece %v not owned by %v", piece, player))
		}
		for _, offset := range bfsNeighborOffsets {
			next := Move{Row: piece.Row + offset[0], Col: piece.Col + offset[1]}
			if !next.IsValid(a.board.Size()) || a.board.At(next.Row, next.Col) != playerCell {
				continue
			}
			if piece.DiagonallyAdjacent(next) && a.ledger.IsBlocked(piece, next, player) {
				continue
			}
			addEdge(piece, next)
		}
	}
	for _, tracked := range a.registry.ActivePatterns(player) {
		addEdge(tracked.A, tracked.B)
		addEdge(tracked.B, tracked.A)
	}
	return edges
}

func (a *FragmentAnalyzer) buildFragment(player PlayerColor, component []Move, edges map[Move][]Move) Fragment {
	size := a.board.Size()
	fragment := Fragment{Player: player, Pieces: component}

	covered := map[int]bool{}
	for _, piece := range component {
		covered[axisCoord(player, piece)] = true
		if piece.Row == 0 {
			fragment.Borders.Top = true
		}
		if piece.Row == size-1 {
			fragment.Borders.Bottom = true
		}
		if piece.Col == 0 {
			fragment.Borders.Left = true
		}
		if piece.Col == size-1 {
			fragment.Borders.Right = true
		}
	}
	fragment.AxisCoverage = len(covered)
	fragment.AxisCoveragePct = float64(len(covered)) / float64(size)

	minHead := a.selectHead(player, component, edges, HeadMin)
	fragment.Heads = append(fragment.Heads, minHead)
	maxHead := a.selectHead(player, component, edges, HeadMax)
	// A single-piece fragment has that piece as its only head.
	if !maxHead.Piece.Equals(minHead.Piece) {
		fragment.Heads = append(fragment.Heads, maxHead)
	}

	minDist := axisCoord(player, minHead.Piece)
	maxDist := size - 1 - axisCoord(player, maxHead.Piece)
	fragment.BorderDistance = minDist
	if maxDist < minDist {
		fragment.BorderDistance = maxDist
	}
	return fragment
}

// selectHead picks the extremal piece along the target axis. Ties prefer the
// piece with the fewest intra-fragment edges (the truest endpoint), then the
// smaller off-axis coordinate for determinism.
func (a *FragmentAnalyzer) selectHead(player PlayerColor, component []Move, edges map[Move][]Move, end HeadEnd) Head {
	best := component[0]
	for _, piece := range component[1:] {
		bestAxis := axisCoord(player, best)
		pieceAxis := axisCoord(player, piece)
		better := false
		switch {
		case pieceAxis != bestAxis:
			if end == HeadMin {
				better = pieceAxis < bestAxis
			} else {
				better = pieceAxis > bestAxis
			}
		case len(edges[piece]) != len(edges[best]):
			better = len(edges[piece]) < len(edges[best])
		default:
			better = offAxisCoord(player, piece) < offAxisCoord(player, best)
		}
		if better {
			best = piece
		}
	}
	head := Head{Piece: best, End: end, Type: classifyHead(axisCoord(player, best), a.board.Size())}
	head.ExtensionOptions = len(a.headDestinations(player, head))
	head.Blocked = head.ExtensionOptions == 0
	return head
}

func classifyHead(axis, size int) HeadType {
	if axis == 0 || axis == size-1 {
		return HeadFullyConnected
	}
	if axis == 1 || axis == size-2 {
		return HeadBorderConnection
	}
	return HeadActive
}

// headDestinations lists the empty cells at enabled pattern distance from the
// head that advance it toward its border.
func (a *FragmentAnalyzer) headDestinations(player PlayerColor, head Head) []Move {
	destinations := []Move{}
	for _, offset := range patternOffsets(a.classes) {
		next := Move{Row: head.Piece.Row + offset[0], Col: head.Piece.Col + offset[1]}
		if !a.board.IsEmpty(next.Row, next.Col) {
			continue
		}
		advance := axisCoord(player, next) - axisCoord(player, head.Piece)
		if head.End == HeadMin && advance >= 0 {
			continue
		}
		if head.End == HeadMax && advance <= 0 {
			continue
		}
		destinations = append(destinations, next)
	}
	return destinations
}

// HeadDestinations exposes the head's candidate pattern placements to the
// move-generation layer.
func (a *FragmentAnalyzer) HeadDestinations(player PlayerColor, head Head) []Move {
	return a.headDestinations(player, head)
}

func patternOffsets(classes PatternClasses) [][2]int {
	offsets := [][2]int{}
	if classes.L {
		offsets = append(offsets,
			[2]int{-2, -1}, [2]int{-2, 1}, [2]int{2, -1}, [2]int{2, 1},
			[2]int{-1, -2}, [2]int{-1, 2}, [2]int{1, -2}, [2]int{1, 2})
	}
	if classes.I {
		offsets = append(offsets,
			[2]int{-2, 0}, [2]int{2, 0}, [2]int{0, -2}, [2]int{0, 2})
	}
	if classes.Diagonal {
		offsets = append(offsets,
			[2]int{-2, -2}, [2]int{-2, 2}, [2]int{2, -2}, [2]int{2, 2})
	}
	return offsets
}

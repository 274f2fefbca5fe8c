package main

import "fmt"

const (
	WinReasonConnected     = "connected"
	WinReasonTooEarly      = "too_early"
	WinReasonNoStartBorder = "no_start_border_piece"
	WinReasonNoEndBorder   = "no_end_border_piece"
	WinReasonCoverage      = "incomplete_axis_coverage"
	WinReasonNoPath        = "no_path"
)

type WinResult struct {
	IsWin  bool   `json:"is_win"`
	Reason string `json:"reason"`
	Path   []Move `json:"path,omitempty"`
	// MissingIndices lists uncovered target-axis indices when Reason is
	// incomplete_axis_coverage.
	MissingIndices []int `json:"missing_indices,omitempty"`
}

// bfsNeighborOffsets fixes the visit order (N, S, W, E, NW, NE, SW, SE) so a
// given board state always reports the same path. Any one valid path
// suffices; the outcome never depends on which one is found.
var bfsNeighborOffsets = [8][2]int{
	{-1, 0}, {1, 0}, {0, -1}, {0, 1},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// WinChecker decides whether a player has a valid border-to-border chain.
// X must span row 0 to row 14, O col 0 to col 14. Edges are lateral adjacency
// (always valid) or diagonal adjacency not locked by the ledger.
type WinChecker struct {
	board    *Board
	ledger   *DiagonalLedger
	history  *MoveHistory
	minMoves int
}

func NewWinChecker(board *Board, ledger *DiagonalLedger, history *MoveHistory, minMoves int) (*WinChecker, error) {
	if board == nil {
		return nil, fmt.Errorf("win checker: nil board")
	}
	if ledger == nil {
		return nil, fmt.Errorf("win checker: nil diagonal ledger")
	}
	if history == nil {
		return nil, fmt.Errorf("win checker: nil history")
	}
	return &WinChecker{board: board, ledger: ledger, history: history, minMoves: minMoves}, nil
}

func (w *WinChecker) CheckWin(player PlayerColor) WinResult {
	if w.history.Size() < w.minMoves {
		return WinResult{Reason: WinReasonTooEarly}
	}
	size := w.board.Size()
	pieces := w.board.Pieces(player)

	hasStart := false
	hasEnd := false
	covered := make([]bool, size)
	for _, piece := range pieces {
		axis := axisCoord(player, piece)
		covered[axis] = true
		if axis == 0 {
			hasStart = true
		}
		if axis == size-1 {
			hasEnd = true
		}
	}
	if !hasStart {
		return WinResult{Reason: WinReasonNoStartBorder}
	}
	if !hasEnd {
		return WinResult{Reason: WinReasonNoEndBorder}
	}
	missing := []int{}
	for axis, ok := range covered {
		if !ok {
			missing = append(missing, axis)
		}
	}
	// Coverage is a necessary precondition, far cheaper than the path
	// search; it can pass while connectivity still fails.
	if len(missing) > 0 {
		return WinResult{Reason: WinReasonCoverage, MissingIndices: missing}
	}

	if path, ok := w.findPath(player, pieces); ok {
		return WinResult{IsWin: true, Reason: WinReasonConnected, Path: path}
	}
	return WinResult{Reason: WinReasonNoPath}
}

// findPath runs a BFS seeded with every start-border piece at once; reaching
// any end-border piece wins.
func (w *WinChecker) findPath(player PlayerColor, pieces []Move) ([]Move, bool) {
	size := w.board.Size()
	playerCell := CellFromPlayer(player)
	visited := map[Move]bool{}
	parent := map[Move]Move{}
	queue := []Move{}
	for _, piece := range pieces {
		if axisCoord(player, piece) == 0 {
			visited[piece] = true
			queue = append(queue, piece)
		}
	}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if axisCoord(player, current) == size-1 {
			return w.reconstructPath(parent, current), true
		}
		for _, offset := range bfsNeighborOffsets {
			next := Move{Row: current.Row + offset[0], Col: current.Col + offset[1]}
			if !next.IsValid(size) || visited[next] {
				continue
			}
			if w.board.At(next.Row, next.Col) != playerCell {
				continue
			}
			if current.DiagonallyAdjacent(next) && w.ledger.IsBlocked(current, next, player) {
				continue
			}
			visited[next] = true
			parent[next] = current
			queue = append(queue, next)
		}
	}
	return nil, false
}

func (w *WinChecker) reconstructPath(parent map[Move]Move, end Move) []Move {
	reversed := []Move{end}
	current := end
	for {
		prev, ok := parent[current]
		if !ok {
			break
		}
		reversed = append(reversed, prev)
		current = prev
	}
	path := make([]Move, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}

package main

type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewMove(row, col int) Move {
	return Move{Row: row, Col: col}
}

func (m Move) IsValid(boardSize int) bool {
	return m.Row >= 0 && m.Col >= 0 && m.Row < boardSize && m.Col < boardSize
}

func (m Move) Equals(other Move) bool {
	return m.Row == other.Row && m.Col == other.Col
}

// LaterallyAdjacent reports whether the two cells share an edge.
func (m Move) LaterallyAdjacent(other Move) bool {
	dr := absInt(m.Row - other.Row)
	dc := absInt(m.Col - other.Col)
	return dr+dc == 1
}

// DiagonallyAdjacent reports whether the two cells share only a corner.
func (m Move) DiagonallyAdjacent(other Move) bool {
	return absInt(m.Row-other.Row) == 1 && absInt(m.Col-other.Col) == 1
}

func (m Move) Chebyshev(other Move) int {
	dr := absInt(m.Row - other.Row)
	dc := absInt(m.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

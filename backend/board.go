package main

import "fmt"

type Cell int

const (
	CellEmpty Cell = iota
	CellX
	CellO
)

type Board struct {
	size  int
	cells []Cell
}

func NewBoard(boardSize int) Board {
	b := Board{}
	b.Reset(boardSize)
	return b
}

func (b *Board) Reset(boardSize int) {
	b.size = boardSize
	b.cells = make([]Cell, boardSize*boardSize)
}

func (b Board) At(row, col int) Cell {
	return b.cells[b.index(row, col)]
}

// Set places a piece. Cells are never cleared once occupied; callers must
// check IsEmpty first.
func (b *Board) Set(row, col int, value Cell) {
	b.cells[b.index(row, col)] = value
}

func (b Board) InBounds(row, col int) bool {
	return row >= 0 && col >= 0 && row < b.size && col < b.size
}

func (b Board) IsEmpty(row, col int) bool {
	return b.InBounds(row, col) && b.At(row, col) == CellEmpty
}

func (b Board) CountEmpty() int {
	count := 0
	for _, cell := range b.cells {
		if cell == CellEmpty {
			count++
		}
	}
	return count
}

func (b Board) Size() int {
	return b.size
}

// Pieces returns the player's pieces in row-major scan order.
func (b Board) Pieces(player PlayerColor) []Move {
	target := CellFromPlayer(player)
	pieces := []Move{}
	for row := 0; row < b.size; row++ {
		for col := 0; col < b.size; col++ {
			if b.At(row, col) == target {
				pieces = append(pieces, Move{Row: row, Col: col})
			}
		}
	}
	return pieces
}

func (b Board) Clone() Board {
	clone := Board{size: b.size}
	clone.cells = make([]Cell, len(b.cells))
	copy(clone.cells, b.cells)
	return clone
}

func (b Board) index(row, col int) int {
	return row*b.size + col
}

func (c Cell) String() string {
	switch c {
	case CellX:
		return "X"
	case CellO:
		return "O"
	default:
		return "Empty"
	}
}

func CellFromPlayer(player PlayerColor) Cell {
	if player == PlayerX {
		return CellX
	}
	return CellO
}

func PlayerFromCell(cell Cell) (PlayerColor, error) {
	switch cell {
	case CellX:
		return PlayerX, nil
	case CellO:
		return PlayerO, nil
	default:
		return PlayerX, fmt.Errorf("empty cell has no player")
	}
}

package main

import "fmt"

type Rules struct {
	settings GameSettings
}

func NewRules(settings GameSettings) Rules {
	return Rules{settings: settings}
}

// IsLegal validates a candidate placement without mutating anything. Expected
// rejections come back as (false, reason); they are never errors.
func (r Rules) IsLegal(state GameState, move Move, player PlayerColor) (bool, string) {
	if state.Status == StatusNotStarted {
		return false, "game not started"
	}
	if state.Status != StatusRunning {
		return false, "game already over"
	}
	if !move.IsValid(r.settings.BoardSize) {
		return false, "out of bounds"
	}
	if player != state.ToMove {
		return false, "not your turn"
	}
	if !state.Board.IsEmpty(move.Row, move.Col) {
		return false, "occupied"
	}
	return true, ""
}

func (r Rules) IsLegalDefault(state GameState, move Move) (bool, string) {
	return r.IsLegal(state, move, state.ToMove)
}

func (r Rules) IsDraw(board Board) bool {
	return board.CountEmpty() == 0
}

func (r Rules) BoardSize() int {
	return r.settings.BoardSize
}

func (r Rules) MinMovesForWinCheck() int {
	return r.settings.MinMovesForWinCheck
}

func (r Rules) String() string {
	return fmt.Sprintf("Rules{size=%d, minWinMove=%d}", r.settings.BoardSize, r.settings.MinMovesForWinCheck)
}

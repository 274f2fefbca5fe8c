package main

type PlayerColor int

type GameStatus int

const (
	PlayerX PlayerColor = iota
	PlayerO
)

const (
	StatusNotStarted GameStatus = iota
	StatusRunning
	StatusXWon
	StatusOWon
	StatusDraw
)

type GameState struct {
	Board       Board
	ToMove      PlayerColor
	Status      GameStatus
	HasLastMove bool
	LastMove    Move
	// Generation advances once per applied move. Derived components stamp
	// their cached results with it and recompute only when it moves on.
	Generation  uint64
	LastMessage string
	WinReason   string
	WinningPath []Move
}

func DefaultGameState(settings GameSettings) GameState {
	state := GameState{}
	state.Reset(settings)
	return state
}

func (s *GameState) Reset(settings GameSettings) {
	s.Board = NewBoard(settings.BoardSize)
	if settings.XStarts {
		s.ToMove = PlayerX
	} else {
		s.ToMove = PlayerO
	}
	s.Status = StatusNotStarted
	s.HasLastMove = false
	s.LastMove = Move{Row: -1, Col: -1}
	s.Generation = 0
	s.LastMessage = ""
	s.WinReason = ""
	s.WinningPath = nil
}

func (s GameState) Clone() GameState {
	clone := s
	clone.Board = s.Board.Clone()
	clone.WinningPath = append([]Move(nil), s.WinningPath...)
	return clone
}

func otherPlayer(player PlayerColor) PlayerColor {
	if player == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (p PlayerColor) String() string {
	if p == PlayerX {
		return "X"
	}
	return "O"
}

// axisCoord projects a cell onto the player's target axis: rows for X
// (top-to-bottom chain), columns for O (left-to-right chain).
func axisCoord(player PlayerColor, m Move) int {
	if player == PlayerX {
		return m.Row
	}
	return m.Col
}

func offAxisCoord(player PlayerColor, m Move) int {
	if player == PlayerX {
		return m.Col
	}
	return m.Row
}

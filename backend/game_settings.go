package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAI
)

type GameSettings struct {
	BoardSize int `json:"board_size"`
	// MinMovesForWinCheck is the earliest global move count at which win
	// checks run. 29 is the first move on which one side can own 15 stones.
	MinMovesForWinCheck    int        `json:"min_moves_for_win_check"`
	XType                  PlayerType `json:"-"`
	OType                  PlayerType `json:"-"`
	XStarts                bool       `json:"x_starts"`
	EnableLPatterns        bool       `json:"enable_l_patterns"`
	EnableIPatterns        bool       `json:"enable_i_patterns"`
	EnableDiagonalPatterns bool       `json:"enable_diagonal_patterns"`
}

func DefaultGameSettings() GameSettings {
	return GameSettings{
		BoardSize:              15,
		MinMovesForWinCheck:    29,
		XType:                  PlayerHuman,
		OType:                  PlayerAI,
		XStarts:                true,
		EnableLPatterns:        true,
		EnableIPatterns:        true,
		EnableDiagonalPatterns: false,
	}
}

func (s GameSettings) PatternClasses() PatternClasses {
	return PatternClasses{
		L:        s.EnableLPatterns,
		I:        s.EnableIPatterns,
		Diagonal: s.EnableDiagonalPatterns,
	}
}

package main

type IPlayer interface {
	IsHuman() bool
	ChooseMove(state GameState, analyzer *Analyzer) Move
}

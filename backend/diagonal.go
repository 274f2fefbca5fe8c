package main

import "fmt"

// DiagonalConnection is an unordered pair of diagonally adjacent same-player
// pieces. A is always the upper piece (smaller row). EstablishedAt is the
// sequence number of the later of the two placements.
type DiagonalConnection struct {
	A             Move        `json:"a"`
	B             Move        `json:"b"`
	Player        PlayerColor `json:"player"`
	EstablishedAt int         `json:"established_at"`
	Blocked       bool        `json:"blocked"`
}

type diagonalKey struct {
	a, b Move
}

// DiagonalLedger tracks which diagonal adjacencies are locked. Two diagonal
// connections cross when they occupy perpendicular diagonals of the same 2x2
// block; when both belong to opposite players, the later-established one is
// invalid ("first lock wins"). The ledger is recomputed from board + history
// after every move: a single placement can complete a diagonal and decide a
// timing conflict at once.
type DiagonalLedger struct {
	board       *Board
	history     *MoveHistory
	connections map[PlayerColor][]DiagonalConnection
	byPair      map[diagonalKey]*DiagonalConnection
}

func NewDiagonalLedger(board *Board, history *MoveHistory) (*DiagonalLedger, error) {
	if board == nil {
		return nil, fmt.Errorf("diagonal ledger: nil board")
	}
	if history == nil {
		return nil, fmt.Errorf("diagonal ledger: nil history")
	}
	ledger := &DiagonalLedger{board: board, history: history}
	ledger.Update()
	return ledger, nil
}

func (l *DiagonalLedger) Update() {
	l.connections = map[PlayerColor][]DiagonalConnection{
		PlayerX: {},
		PlayerO: {},
	}
	l.byPair = make(map[diagonalKey]*DiagonalConnection)
	size := l.board.Size()
	// Scan downward diagonals only so every pair is seen exactly once, with
	// A as the upper piece.
	offsets := [2][2]int{{1, 1}, {1, -1}}
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			cell := l.board.At(row, col)
			if cell == CellEmpty {
				continue
			}
			player, err := PlayerFromCell(cell)
			if err != nil {
				continue
			}
			for _, offset := range offsets {
				nr := row + offset[0]
				nc := col + offset[1]
				if !l.board.InBounds(nr, nc) || l.board.At(nr, nc) != cell {
					continue
				}
				a := Move{Row: row, Col: col}
				b := Move{Row: nr, Col: nc}
				conn := DiagonalConnection{
					A:             a,
					B:             b,
					Player:        player,
					EstablishedAt: l.establishedAt(a, b),
				}
				conn.Blocked = l.isCrossedEarlier(conn)
				l.connections[player] = append(l.connections[player], conn)
				stored := &l.connections[player][len(l.connections[player])-1]
				l.byPair[pairKey(a, b)] = stored
			}
		}
	}
}

// Connections returns every diagonal connection of the player, blocked ones
// included (Blocked marks them).
func (l *DiagonalLedger) Connections(player PlayerColor) []DiagonalConnection {
	return append([]DiagonalConnection(nil), l.connections[player]...)
}

// ActiveConnections returns only the currently valid (non-blocked) diagonal
// connections; this is the set the presentation layer renders as lock lines.
func (l *DiagonalLedger) ActiveConnections(player PlayerColor) []DiagonalConnection {
	active := []DiagonalConnection{}
	for _, conn := range l.connections[player] {
		if !conn.Blocked {
			active = append(active, conn)
		}
	}
	return active
}

// IsBlocked reports whether the diagonal step a-b is unusable for the mover.
// Non-diagonal pairs and pairs the mover does not own both ends of are never
// blocked here; callers only ask about edges they are considering.
func (l *DiagonalLedger) IsBlocked(a, b Move, mover PlayerColor) bool {
	conn, ok := l.byPair[pairKey(a, b)]
	if !ok || conn.Player != mover {
		return false
	}
	return conn.Blocked
}

// establishedAt is the sequence of the later of the two placements. Pieces
// missing from the history count as sequence 0 (not yet placed).
func (l *DiagonalLedger) establishedAt(a, b Move) int {
	seqA, _ := l.history.SequenceOf(a)
	seqB, _ := l.history.SequenceOf(b)
	if seqA > seqB {
		return seqA
	}
	return seqB
}

// isCrossedEarlier checks the two off-diagonal corners of the connection's
// 2x2 block. Only when both are opponent pieces forming an earlier-established
// connection is this one invalid. One or zero opponent corners, or any corner
// missing from the history, leaves the connection valid (open state defaults
// to unblocked).
func (l *DiagonalLedger) isCrossedEarlier(conn DiagonalConnection) bool {
	crossA := Move{Row: conn.A.Row, Col: conn.B.Col}
	crossB := Move{Row: conn.B.Row, Col: conn.A.Col}
	opponentCell := CellFromPlayer(otherPlayer(conn.Player))
	if l.board.At(crossA.Row, crossA.Col) != opponentCell {
		return false
	}
	if l.board.At(crossB.Row, crossB.Col) != opponentCell {
		return false
	}
	seqA, okA := l.history.SequenceOf(crossA)
	seqB, okB := l.history.SequenceOf(crossB)
	if !okA || !okB {
		return false
	}
	opponentEstablished := seqA
	if seqB > opponentEstablished {
		opponentEstablished = seqB
	}
	ownEstablished := conn.EstablishedAt
	if ownEstablished == 0 {
		return false
	}
	return opponentEstablished < ownEstablished
}

func pairKey(a, b Move) diagonalKey {
	if b.Row < a.Row || (b.Row == a.Row && b.Col < a.Col) {
		a, b = b, a
	}
	return diagonalKey{a: a, b: b}
}

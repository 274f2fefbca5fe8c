package main

type HistoryEntry struct {
	Move      Move
	Player    PlayerColor
	Sequence  int // global 1-based move count
	ElapsedMs float64
	IsAi      bool
}

// MoveHistory is append-only. Sequence numbers are assigned on Push and never
// reordered; the diagonal lock ledger relies on them to decide which of two
// crossing connections was established first.
type MoveHistory struct {
	entries []HistoryEntry
	byCell  map[Move]int
}

func (h *MoveHistory) Clear() {
	h.entries = nil
	h.byCell = nil
}

func (h *MoveHistory) Push(entry HistoryEntry) HistoryEntry {
	entry.Sequence = len(h.entries) + 1
	h.entries = append(h.entries, entry)
	if h.byCell == nil {
		h.byCell = make(map[Move]int)
	}
	h.byCell[entry.Move] = entry.Sequence
	return entry
}

func (h MoveHistory) Size() int {
	return len(h.entries)
}

func (h MoveHistory) All() []HistoryEntry {
	return append([]HistoryEntry(nil), h.entries...)
}

// SequenceOf returns the move count at which the cell was filled. Cells placed
// outside the history (never the case in a live game) report ok=false and are
// treated as not yet placed by the lock ledger.
func (h MoveHistory) SequenceOf(cell Move) (int, bool) {
	seq, ok := h.byCell[cell]
	return seq, ok
}

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/google/uuid"
)

// recordsBaseDir overrides the xdg data dir when non-empty (tests point it at
// a temp dir).
var recordsBaseDir = ""

type recordMove struct {
	Row       int     `json:"row"`
	Col       int     `json:"col"`
	Player    int     `json:"player"`
	Sequence  int     `json:"sequence"`
	ElapsedMs float64 `json:"elapsed_ms"`
	IsAi      bool    `json:"is_ai"`
}

type MatchRecord struct {
	ID          string       `json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	BoardSize   int          `json:"board_size"`
	Settings    GameSettings `json:"settings"`
	Winner      int          `json:"winner"`
	WinReason   string       `json:"win_reason"`
	WinningPath []Move       `json:"winning_path,omitempty"`
	Moves       []recordMove `json:"moves"`
}

type MatchRecordSummary struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Winner    int       `json:"winner"`
	WinReason string    `json:"win_reason"`
	MoveCount int       `json:"move_count"`
}

func newMatchRecord(state GameState, settings GameSettings, history MoveHistory) MatchRecord {
	record := MatchRecord{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		BoardSize:   settings.BoardSize,
		Settings:    settings,
		Winner:      winnerFromStatus(state.Status),
		WinReason:   state.WinReason,
		WinningPath: append([]Move(nil), state.WinningPath...),
	}
	for _, entry := range history.All() {
		record.Moves = append(record.Moves, recordMove{
			Row:       entry.Move.Row,
			Col:       entry.Move.Col,
			Player:    playerToInt(entry.Player),
			Sequence:  entry.Sequence,
			ElapsedMs: entry.ElapsedMs,
			IsAi:      entry.IsAi,
		})
	}
	return record
}

func recordsDir() string {
	if recordsBaseDir != "" {
		return recordsBaseDir
	}
	return filepath.Join(xdg.DataHome, "line-game", "records")
}

func saveMatchRecord(record MatchRecord) error {
	dir := recordsDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create records dir %s: %w", dir, err)
	}
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("encode match record %s: %w", record.ID, err)
	}
	path := filepath.Join(dir, record.ID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write match record %s: %w", path, err)
	}
	log.Printf("[records] stored match record %s (%d moves)", record.ID, len(record.Moves))
	return nil
}

func loadMatchRecord(id string) (MatchRecord, error) {
	record := MatchRecord{}
	// ids are uuids; parsing rejects anything that could escape the dir.
	if _, err := uuid.Parse(id); err != nil {
		return record, fmt.Errorf("invalid record id %q", id)
	}
	path := filepath.Join(recordsDir(), id+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return record, fmt.Errorf("read match record %s: %w", id, err)
	}
	if err := json.Unmarshal(data, &record); err != nil {
		return record, fmt.Errorf("decode match record %s: %w", id, err)
	}
	return record, nil
}

func listMatchRecords() ([]MatchRecordSummary, error) {
	dir := recordsDir()
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return []MatchRecordSummary{}, nil
		}
		return nil, fmt.Errorf("read records dir %s: %w", dir, err)
	}
	summaries := []MatchRecordSummary{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		record, err := loadMatchRecord(id)
		if err != nil {
			log.Printf("[records] skipping unreadable record %s: %v", entry.Name(), err)
			continue
		}
		summaries = append(summaries, MatchRecordSummary{
			ID:        record.ID,
			CreatedAt: record.CreatedAt,
			Winner:    record.Winner,
			WinReason: record.WinReason,
			MoveCount: len(record.Moves),
		})
	}
	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})
	return summaries, nil
}

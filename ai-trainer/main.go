package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"
)

// Drives the backend through full ai_vs_ai games over its HTTP API and
// tallies the outcomes. Useful for smoke-testing heuristic changes.

type statusResponse struct {
	Status    string `json:"status"`
	Winner    int    `json:"winner"`
	WinReason string `json:"win_reason"`
	History   []struct {
		Sequence int `json:"sequence"`
	} `json:"history"`
}

type trainerStats struct {
	xWins     int
	oWins     int
	draws     int
	totalMove int
}

func main() {
	addr := flag.String("addr", "http://localhost:8080", "backend base url")
	games := flag.Int("games", 10, "number of self-play games")
	timeout := flag.Duration("timeout", 5*time.Minute, "per-game timeout")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}
	stats := trainerStats{}

	for i := 0; i < *games; i++ {
		result, err := playGame(client, *addr, *timeout)
		if err != nil {
			log.Fatalf("game %d failed: %v", i+1, err)
		}
		switch result.Winner {
		case 1:
			stats.xWins++
		case 2:
			stats.oWins++
		default:
			stats.draws++
		}
		stats.totalMove += len(result.History)
		log.Printf("game %d/%d: status=%s winner=%d reason=%s moves=%d",
			i+1, *games, result.Status, result.Winner, result.WinReason, len(result.History))
	}

	avgMoves := 0.0
	if *games > 0 {
		avgMoves = float64(stats.totalMove) / float64(*games)
	}
	log.Printf("done: x=%d o=%d draws=%d avg_moves=%.1f", stats.xWins, stats.oWins, stats.draws, avgMoves)
}

func playGame(client *http.Client, addr string, timeout time.Duration) (statusResponse, error) {
	startBody := map[string]any{
		"settings": map[string]any{"mode": "ai_vs_ai"},
	}
	if err := postJSON(client, addr+"/api/start", startBody); err != nil {
		return statusResponse{}, fmt.Errorf("start game: %w", err)
	}

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		time.Sleep(200 * time.Millisecond)
		status, err := fetchStatus(client, addr)
		if err != nil {
			return statusResponse{}, err
		}
		switch status.Status {
		case "x_won", "o_won", "draw":
			return status, nil
		}
	}
	return statusResponse{}, fmt.Errorf("game did not finish within %s", timeout)
}

func fetchStatus(client *http.Client, addr string) (statusResponse, error) {
	resp, err := client.Get(addr + "/api/status")
	if err != nil {
		return statusResponse{}, fmt.Errorf("fetch status: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return statusResponse{}, fmt.Errorf("status endpoint returned %d", resp.StatusCode)
	}
	var status statusResponse
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return statusResponse{}, fmt.Errorf("decode status: %w", err)
	}
	return status, nil
}

func postJSON(client *http.Client, url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned %d", url, resp.StatusCode)
	}
	return nil
}

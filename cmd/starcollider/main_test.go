package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/vovakirdan/star-collider/internal/config"
	"github.com/vovakirdan/star-collider/internal/games/starcollider"
	"github.com/vovakirdan/star-collider/internal/storage"
)

func TestFitCells(t *testing.T) {
	tests := []struct {
		name       string
		cols, rows int
		changed    bool
		cellW      int
		cellH      int
	}{
		{"big terminal", 200, 80, false, 8, 16},
		{"exact fit", 60, 41, false, 8, 16},
		{"narrow", 40, 80, true, 12, 16},
		{"short", 80, 25, true, 8, 28},
		{"unknown size", 0, 0, false, 8, 16},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			if got := fitCells(&cfg, tc.cols, tc.rows); got != tc.changed {
				t.Errorf("fitCells() = %v, want %v", got, tc.changed)
			}
			if cfg.Terminal.CellWidth != tc.cellW || cfg.Terminal.CellHeight != tc.cellH {
				t.Errorf("cells = %dx%d, want %dx%d", cfg.Terminal.CellWidth, cfg.Terminal.CellHeight, tc.cellW, tc.cellH)
			}
			if cfg.Terminal.CellHeight%2 != 0 {
				t.Error("cell height is odd")
			}
		})
	}
}

func TestWriteScores(t *testing.T) {
	runs := []storage.Run{
		{Player: "ace", Outcome: starcollider.OutcomeWin, Score: 250, ElapsedMillis: 95_500, Stage: 3},
	}
	stats := &storage.Stats{Runs: 4, Wins: 1, Losses: 2, Quits: 1, HighScore: 250, FastestWin: 95_500 * time.Millisecond}

	var buf bytes.Buffer
	writeScores(&buf, runs, stats, false)
	out := buf.String()
	for _, want := range []string{"High Scores", "ace", "1:35.5", "Best: 250", "wins 1, losses 2, quits 1", "Fastest win: 1:35.5"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteScoresEmpty(t *testing.T) {
	var buf bytes.Buffer
	writeScores(&buf, nil, nil, true)
	if !strings.Contains(buf.String(), "No runs recorded yet.") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestPortOf(t *testing.T) {
	tests := map[string]string{
		":23234":         "23234",
		"0.0.0.0:2222":   "2222",
		"[::1]:22":       "22",
		"no-port-at-all": "no-port-at-all",
	}
	for addr, want := range tests {
		if got := portOf(addr); got != want {
			t.Errorf("portOf(%q) = %q, want %q", addr, got, want)
		}
	}
}

func TestMenuFrontendsSkipsSim(t *testing.T) {
	for _, f := range menuFrontends() {
		if f.ID == "sim" {
			t.Error("menu offers the headless autopilot")
		}
	}
	if len(menuFrontends()) == 0 {
		t.Error("no frontends registered")
	}
}

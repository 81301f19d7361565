package runstore

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aalvaropc/digitprobe/internal/domain"
)

func TestSaveReport_CreatesJSONFile(t *testing.T) {
	tmp := t.TempDir()

	store := NewJSONStore(tmp, domain.DefaultConfig())

	start := time.Date(2026, 2, 3, 10, 11, 12, 0, time.UTC)
	label := 2
	report := domain.Report{
		Index:      77,
		URL:        "http://150.162.235.79/predict",
		StartedAt:  start,
		EndedAt:    start.Add(300 * time.Millisecond),
		Label:      &label,
		Predicted:  "8",
		Confidence: 0.87,
		Response:   map[string]any{"predicted_digit": float64(8), "confidence": 0.87},
		Verdict:    domain.VerdictMismatch,
	}

	id, err := store.SaveReport(report)
	if err != nil {
		t.Fatalf("SaveReport error: %v", err)
	}

	wantFile := filepath.Join(tmp, "runs", "20260203T101112Z_150-162-235-79_idx77.json")
	if _, err := os.Stat(wantFile); err != nil {
		t.Fatalf("expected file at %s, stat err=%v (id=%s)", wantFile, err, id)
	}
	if id != "20260203T101112Z_150-162-235-79_idx77" {
		t.Fatalf("unexpected id %q", id)
	}

	b, err := os.ReadFile(wantFile)
	if err != nil {
		t.Fatalf("read file: %v", err)
	}

	var decoded domain.Report
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded.Label == nil || *decoded.Label != 2 {
		t.Fatalf("expected label 2, got %v", decoded.Label)
	}
	if decoded.Predicted != "8" || decoded.Verdict != domain.VerdictMismatch {
		t.Fatalf("unexpected decoded report %+v", decoded)
	}
}

func TestSaveReport_WritesIndexAndUsesNow(t *testing.T) {
	tmp := t.TempDir()
	cfg := domain.DefaultConfig()
	cfg.Output.RunsDir = "history"

	fixed := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := NewJSONStore(tmp, cfg, WithIndex(true), WithNow(func() time.Time { return fixed }))

	for i := 0; i < 2; i++ {
		if _, err := store.SaveReport(domain.Report{Index: i, URL: "http://esp.local/predict", Verdict: domain.VerdictIncomplete}); err != nil {
			t.Fatalf("SaveReport error: %v", err)
		}
	}

	f, err := os.Open(filepath.Join(tmp, "history", "index.jsonl"))
	if err != nil {
		t.Fatalf("open index: %v", err)
	}
	defer f.Close()

	var lines int
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		var rec map[string]any
		if err := json.Unmarshal(sc.Bytes(), &rec); err != nil {
			t.Fatalf("index line is not JSON: %v", err)
		}
		if rec["verdict"] != "incomplete" {
			t.Fatalf("unexpected verdict in index: %v", rec)
		}
		lines++
	}
	if lines != 2 {
		t.Fatalf("expected 2 index lines, got %d", lines)
	}

	if _, err := os.Stat(filepath.Join(tmp, "history", "20260101T000000Z_esp-local_idx0.json")); err != nil {
		t.Fatalf("expected report named from now(): %v", err)
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"150.162.235.79":   "150-162-235-79",
		"ESP.local:8080":   "esp-local-8080",
		"  --weird__name ": "weird-name",
		"":                 "",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Errorf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}

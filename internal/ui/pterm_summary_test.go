package ui

import (
	"testing"
	"time"
)

func TestFormatSummaryLine_Plain(t *testing.T) {
	line := formatSummaryLine("Sync", 1200*time.Millisecond,
		Metric{Label: "added", Count: 5},
		Metric{Label: "removed", Count: 2},
		Metric{Label: "skipped", Count: 0},
	)
	want := "Sync complete: 5 added, 2 removed, 0 skipped (1.2s)"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
}

func TestFormatSummaryLine_NoDuration(t *testing.T) {
	line := formatSummaryLine("Mark", 0, Metric{Label: "marked", Count: 3})
	want := "Mark complete: 3 marked"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
}

func TestFormatSummaryLine_NoMetrics(t *testing.T) {
	line := formatSummaryLine("Rename", 500*time.Millisecond)
	want := "Rename complete (0.5s)"
	if line != want {
		t.Fatalf("got %q, want %q", line, want)
	}
}

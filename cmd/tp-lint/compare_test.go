package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/yeager/tp-lint/internal/cache"
	"github.com/yeager/tp-lint/internal/model"
)

// TestNewCompareCmd tests the compare command creation.
func TestNewCompareCmd(t *testing.T) {
	t.Parallel()

	cmd := NewCompareCmd()

	t.Run("takes no arguments", func(t *testing.T) {
		t.Parallel()
		if err := cmd.Args(cmd, []string{"extra"}); err == nil {
			t.Error("expected error for unexpected argument")
		}
	})

	t.Run("has expected flags", func(t *testing.T) {
		t.Parallel()
		for _, name := range []string{"json", "no-fetch"} {
			if cmd.Flags().Lookup(name) == nil {
				t.Errorf("expected %q flag", name)
			}
		}
	})
}

func testSnapshots() (older, newer *cache.Snapshot) {
	older = &cache.Snapshot{
		ID:        1,
		Timestamp: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	newer = &cache.Snapshot{
		ID:        2,
		Timestamp: time.Date(2025, 6, 8, 12, 0, 0, 0, time.UTC),
	}
	return older, newer
}

// TestOutputDiffText tests the human-readable comparison output.
func TestOutputDiffText(t *testing.T) {
	t.Parallel()

	older, newer := testSnapshots()

	t.Run("reports no changes for an empty diff", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		outputDiffText(&buf, older, newer, &model.MatrixDiff{})

		out := buf.String()
		if !strings.Contains(out, "No changes between snapshots.") {
			t.Errorf("expected no-changes message, got: %s", out)
		}
		if !strings.Contains(out, "2025-06-01 12:00") || !strings.Contains(out, "2025-06-08 12:00") {
			t.Errorf("expected snapshot timestamps in header, got: %s", out)
		}
	})

	t.Run("prints all sections", func(t *testing.T) {
		t.Parallel()

		diff := &model.MatrixDiff{
			AddedLanguages:   []string{"oc"},
			RemovedLanguages: []string{"tlh"},
			LanguageChanges: []model.LanguageChange{
				{Code: "sv", Old: 82, New: 84},
			},
			AddedDomains:   []string{"wget2"},
			RemovedDomains: []string{"hello"},
			DomainChanges: []model.DomainChange{
				{Domain: "coreutils", Old: 40, New: 39},
			},
		}

		var buf bytes.Buffer
		outputDiffText(&buf, older, newer, diff)

		out := buf.String()
		for _, want := range []string{
			"New languages:",
			"  + oc",
			"Removed languages:",
			"  - tlh",
			"Coverage changes:",
			"82% ->  84% (+2)",
			"New packages:",
			"  + wget2",
			"Removed packages:",
			"  - hello",
			"Translation count changes:",
			"40 ->  39 (-1)",
		} {
			if !strings.Contains(out, want) {
				t.Errorf("output missing %q:\n%s", want, out)
			}
		}
	})
}

// TestOutputDiffJSON tests the machine-readable comparison output.
func TestOutputDiffJSON(t *testing.T) {
	t.Parallel()

	older, newer := testSnapshots()
	diff := &model.MatrixDiff{
		AddedLanguages: []string{"oc"},
	}

	var buf bytes.Buffer
	if err := outputDiffJSON(&buf, older, newer, diff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var decoded diffEnvelope
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if !decoded.Older.Equal(older.Timestamp) || !decoded.Newer.Equal(newer.Timestamp) {
		t.Errorf("timestamps = %v / %v, expected snapshot times", decoded.Older, decoded.Newer)
	}
	if decoded.Diff == nil || len(decoded.Diff.AddedLanguages) != 1 {
		t.Errorf("expected diff with one added language, got %+v", decoded.Diff)
	}
}

// TestFormatDelta tests signed difference rendering.
func TestFormatDelta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		delta int
		want  string
	}{
		{delta: 2, want: "+2"},
		{delta: -1, want: "-1"},
		{delta: 0, want: "0"},
	}
	for _, tt := range tests {
		if got := formatDelta(tt.delta); got != tt.want {
			t.Errorf("formatDelta(%d) = %q, expected %q", tt.delta, got, tt.want)
		}
	}
}

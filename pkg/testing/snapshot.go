package testing

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-drift/wave/pkg/animation"
)

// UpdateSnapshotsEnv names the environment variable that makes MatchesFile
// rewrite golden files instead of comparing against them.
const UpdateSnapshotsEnv = "WAVE_UPDATE_SNAPSHOTS"

// TestingT is the subset of *testing.T used by MatchesFile, allowing
// test doubles to intercept failures.
type TestingT interface {
	Helper()
	Fatalf(format string, args ...any)
	Errorf(format string, args ...any)
	Name() string
}

// Snapshot captures the per-frame output of one or more animations.
type Snapshot struct {
	Traces []*Trace `json:"traces"`
}

// Trace records what an animation reported, frame by frame. Samples are
// the animatable data of each reported value, rounded to four decimals so
// that golden files survive harmless floating point drift.
type Trace struct {
	Name    string      `json:"name"`
	Samples [][]float64 `json:"samples"`
	Events  []string    `json:"events,omitempty"`
}

// Observe returns an observer that appends to tr.
func Observe[T any](tr *Trace, data animation.Converter[T]) animation.Observer[T] {
	return animation.ObserverFuncs[T]{
		OnValue: func(v T) {
			tr.Samples = append(tr.Samples, round4(data.Encode(v)))
		},
		OnComplete: func(e animation.Event[T]) {
			tr.Events = append(tr.Events, describeEvent(len(tr.Samples), e, data))
		},
	}
}

// Last returns the most recent sample, or nil.
func (tr *Trace) Last() []float64 {
	if len(tr.Samples) == 0 {
		return nil
	}
	return tr.Samples[len(tr.Samples)-1]
}

func describeEvent[T any](frame int, e animation.Event[T], data animation.Converter[T]) string {
	if e.IsFinished() {
		return fmt.Sprintf("finished@%d %v", frame, round4(data.Encode(e.Value)))
	}
	return fmt.Sprintf("retargeted@%d %v -> %v", frame, round4(data.Encode(e.From)), round4(data.Encode(e.To)))
}

// MatchesFile compares this snapshot against a golden file. On mismatch it
// reports a diff and instructions for updating. When WAVE_UPDATE_SNAPSHOTS=1
// is set, the file is silently updated instead.
func (s *Snapshot) MatchesFile(t TestingT, path string) {
	t.Helper()

	if os.Getenv(UpdateSnapshotsEnv) == "1" {
		if err := s.UpdateFile(path); err != nil {
			t.Fatalf("failed to update snapshot: %v", err)
		}
		return
	}

	expected, err := loadSnapshot(path)
	if err != nil {
		if os.IsNotExist(err) {
			t.Fatalf("snapshot file missing: %s\n\nTo create: %s=1 go test -run %s", path, UpdateSnapshotsEnv, t.Name())
			return
		}
		t.Fatalf("failed to load snapshot: %v", err)
		return
	}

	if diff := s.Diff(expected); diff != "" {
		t.Errorf("snapshot mismatch: %s\n%s\n\nTo update: %s=1 go test -run %s", path, diff, UpdateSnapshotsEnv, t.Name())
	}
}

// UpdateFile writes this snapshot to the given path, creating directories
// as needed.
func (s *Snapshot) UpdateFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := marshalSnapshot(s)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Diff returns a line diff between this snapshot and other. Returns the
// empty string if equal.
func (s *Snapshot) Diff(other *Snapshot) string {
	a, _ := marshalSnapshot(s)
	b, _ := marshalSnapshot(other)
	if bytes.Equal(a, b) {
		return ""
	}
	return unifiedDiff(string(b), string(a))
}

func round4(v animation.Vector) []float64 {
	out := make([]float64, len(v))
	for i, c := range v {
		r := math.Round(c*1e4) / 1e4
		if r == 0 {
			r = 0 // normalize -0
		}
		out[i] = r
	}
	return out
}

func loadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("invalid snapshot JSON: %w", err)
	}
	return &snap, nil
}

func marshalSnapshot(s *Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// unifiedDiff produces a simple line-oriented diff.
func unifiedDiff(expected, actual string) string {
	expectedLines := strings.Split(expected, "\n")
	actualLines := strings.Split(actual, "\n")

	var buf strings.Builder
	buf.WriteString("--- expected\n+++ actual\n")

	for i := 0; i < max(len(expectedLines), len(actualLines)); i++ {
		var e, a string
		if i < len(expectedLines) {
			e = expectedLines[i]
		}
		if i < len(actualLines) {
			a = actualLines[i]
		}
		if e == a {
			continue
		}
		if i < len(expectedLines) {
			fmt.Fprintf(&buf, "-%s\n", e)
		}
		if i < len(actualLines) {
			fmt.Fprintf(&buf, "+%s\n", a)
		}
	}

	return buf.String()
}

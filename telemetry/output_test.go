package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("disabled output errored: %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	// Nil receiver must be safe.
	if err := om.WriteWindow(WindowStats{}); err != nil {
		t.Errorf("nil WriteWindow: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("nil Close: %v", err)
	}
}

func TestOutputManagerWritesCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteWindow(WindowStats{WindowEnd: 600, Bots: 40, Kills: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteWindow(WindowStats{WindowEnd: 1200, Bots: 38, Kills: 1}); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "telemetry.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header + 2 records", len(lines))
	}
	if !strings.Contains(lines[0], "window_end") || !strings.Contains(lines[0], "kills") {
		t.Errorf("header missing expected columns: %q", lines[0])
	}
	if !strings.Contains(lines[1], "600") {
		t.Errorf("first record missing window end: %q", lines[1])
	}
}

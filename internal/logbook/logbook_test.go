package logbook

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestAppendAndTail(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "logs", "shiftboard.log"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	lb.Info("first")
	lb.Warn("second")
	lb.Error("third")

	lines := lb.Tail(2)
	if len(lines) != 2 {
		t.Fatalf("Tail(2) returned %d lines", len(lines))
	}
	if !strings.Contains(lines[0], "WARN") || !strings.Contains(lines[1], "ERROR") {
		t.Fatalf("unexpected tail: %v", lines)
	}
}

func TestNilLogbookIsSafe(t *testing.T) {
	var lb *Logbook
	lb.Info("ignored")
	if lines := lb.Tail(5); lines != nil {
		t.Fatalf("nil Tail = %v", lines)
	}
	tr := lb.BeginTrace("run")
	tr.Step("still fine")
	tr.Done("ok")
}

func TestTraceGroupsEntries(t *testing.T) {
	lb, err := New(filepath.Join(t.TempDir(), "shiftboard.log"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tr := lb.BeginTrace("distribute fri")
	tr.Step("assigned [ON] Truck Unload to Jane Smith")
	tr.Done("14 tasks, 5 staff")

	lines := lb.Tail(10)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[1], "assigned [ON]") {
		t.Fatalf("step missing: %v", lines)
	}
}

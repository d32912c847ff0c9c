package pipeline

import (
	"testing"
	"time"
)

func TestProcStats_Snapshot(t *testing.T) {
	s := NewProcStats(time.Hour)
	for _, ms := range []int64{10, 20, 30, 40, 100} {
		s.Record(ms)
	}

	snap := s.Snapshot()
	if snap.Count != 5 {
		t.Errorf("count: expected 5, got %d", snap.Count)
	}
	if snap.MinMs != 10 || snap.MaxMs != 100 {
		t.Errorf("min/max: expected 10/100, got %d/%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 40 {
		t.Errorf("avg: expected 40, got %v", snap.AvgMs)
	}
	if snap.P50Ms != 30 {
		t.Errorf("p50: expected 30, got %v", snap.P50Ms)
	}
	if snap.P95Ms < snap.P50Ms || snap.P95Ms > float64(snap.MaxMs) {
		t.Errorf("p95 out of range: %v", snap.P95Ms)
	}
}

func TestProcStats_EmptySnapshot(t *testing.T) {
	s := NewProcStats(time.Hour)
	if snap := s.Snapshot(); snap.Count != 0 || snap.MaxMs != 0 {
		t.Errorf("expected zero snapshot, got %+v", snap)
	}
}

func TestProcStats_NegativeClampedToZero(t *testing.T) {
	s := NewProcStats(time.Hour)
	s.Record(-5)
	if snap := s.Snapshot(); snap.MinMs != 0 {
		t.Errorf("expected clamped 0, got %d", snap.MinMs)
	}
}

func TestProcStats_WindowPrunesOldSamples(t *testing.T) {
	s := NewProcStats(50 * time.Millisecond)
	s.Record(10)
	time.Sleep(80 * time.Millisecond)
	s.Record(20)

	snap := s.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected 1 sample after pruning, got %d", snap.Count)
	}
	if snap.MinMs != 20 {
		t.Errorf("expected surviving sample 20, got %d", snap.MinMs)
	}
}

package pipeline

import (
	"errors"
	"testing"
	"time"
)

func TestJobLifecycle(t *testing.T) {
	job := NewJob("job-1", "invoice.edi", []byte("data"), "")
	if job.Status != StatusQueued {
		t.Errorf("new job: expected %s, got %s", StatusQueued, job.Status)
	}

	job.SetStatus(StatusProcessing)
	if snap := job.Snapshot(); snap.Status != StatusProcessing {
		t.Errorf("expected %s, got %s", StatusProcessing, snap.Status)
	}

	job.Complete(&Outcome{FileID: 7, Status: StatusValid})
	snap := job.Snapshot()
	if snap.Status != StatusCompleted {
		t.Errorf("expected %s, got %s", StatusCompleted, snap.Status)
	}
	if snap.Outcome == nil || snap.Outcome.FileID != 7 {
		t.Errorf("outcome missing from snapshot: %+v", snap)
	}
}

func TestJobFail(t *testing.T) {
	job := NewJob("job-2", "bad.xml", nil, "")
	job.Fail(errors.New("broken markup"))

	snap := job.Snapshot()
	if snap.Status != StatusFailed {
		t.Errorf("expected %s, got %s", StatusFailed, snap.Status)
	}
	if snap.Error != "broken markup" {
		t.Errorf("expected failure message, got %q", snap.Error)
	}
}

func TestJobStore_PutGet(t *testing.T) {
	s := NewJobStore(time.Hour)
	job := NewJob("job-3", "a.edi", nil, "")
	s.Put(job)

	if got := s.Get("job-3"); got != job {
		t.Error("stored job not returned")
	}
	if got := s.Get("absent"); got != nil {
		t.Errorf("expected nil for unknown id, got %+v", got)
	}
}

func TestJobStore_CleanupEvictsExpired(t *testing.T) {
	s := NewJobStore(time.Minute)

	fresh := NewJob("fresh", "a.edi", nil, "")
	stale := NewJob("stale", "b.edi", nil, "")
	stale.UpdatedAt = time.Now().Add(-2 * time.Minute)
	s.Put(fresh)
	s.Put(stale)

	s.Cleanup()

	if s.Get("fresh") == nil {
		t.Error("fresh job evicted")
	}
	if s.Get("stale") != nil {
		t.Error("stale job not evicted")
	}
}

package extract

import (
	"sync"
	"testing"
	"time"
)

func TestTimingsSnapshotPercentiles(t *testing.T) {
	stats := NewTimings()
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record(time.Duration(ms) * time.Millisecond)
	}

	snap := stats.Snapshot()
	if snap.Count != 5 {
		t.Fatalf("expected count=5, got %d", snap.Count)
	}
	if snap.MinMs != 100 {
		t.Fatalf("expected min=100, got %d", snap.MinMs)
	}
	if snap.MaxMs != 500 {
		t.Fatalf("expected max=500, got %d", snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if snap.P95Ms != 480 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
}

func TestTimingsEmpty(t *testing.T) {
	if snap := NewTimings().Snapshot(); snap.Count != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected zero snapshot, got %+v", snap)
	}
}

func TestTimingsRecordClampsNegativeDuration(t *testing.T) {
	stats := NewTimings()
	stats.Record(-25 * time.Millisecond)

	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Fatalf("expected count=1, got %d", snap.Count)
	}
	if snap.MinMs != 0 || snap.MaxMs != 0 {
		t.Fatalf("expected clamped min=max=0, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
}

func TestTimingsConcurrentRecord(t *testing.T) {
	stats := NewTimings()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				stats.Record(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	if got := stats.Snapshot().Count; got != 400 {
		t.Fatalf("expected 400 samples, got %d", got)
	}
}

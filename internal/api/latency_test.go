package api

import (
	"math"
	"testing"
	"time"
)

func TestLatency_SnapshotPercentiles(t *testing.T) {
	l := NewLatency(time.Hour)
	for i, ms := range []int{100, 200, 300, 400, 500} {
		l.Record(time.Duration(ms)*time.Millisecond, 2, i)
	}

	snap := l.Snapshot()
	if snap.Searches != 5 {
		t.Fatalf("expected 5 searches, got %d", snap.Searches)
	}
	if snap.MinMs != 100 || snap.MaxMs != 500 {
		t.Fatalf("expected min=100 max=500, got min=%d max=%d", snap.MinMs, snap.MaxMs)
	}
	if snap.AvgMs != 300 {
		t.Fatalf("expected avg=300, got %f", snap.AvgMs)
	}
	if snap.P50Ms != 300 {
		t.Fatalf("expected p50=300, got %f", snap.P50Ms)
	}
	if math.Abs(snap.P95Ms-480) > 1e-9 {
		t.Fatalf("expected p95=480, got %f", snap.P95Ms)
	}
	if snap.Files != 10 || snap.Matches != 10 {
		t.Fatalf("expected files=10 matches=10, got files=%d matches=%d", snap.Files, snap.Matches)
	}
}

func TestLatency_PrunesOldSamples(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewLatency(time.Minute)
	l.now = func() time.Time { return now }

	l.Record(100*time.Millisecond, 1, 1)
	now = now.Add(2 * time.Minute)

	if snap := l.Snapshot(); snap.Searches != 0 {
		t.Fatalf("expected expired sample pruned, got %d", snap.Searches)
	}

	l.Record(200*time.Millisecond, 1, 0)
	snap := l.Snapshot()
	if snap.Searches != 1 || snap.MinMs != 200 {
		t.Fatalf("expected one fresh sample of 200ms, got %+v", snap)
	}
}

func TestLatency_ClampsNegativeDuration(t *testing.T) {
	l := NewLatency(time.Hour)
	l.Record(-time.Second, 0, 0)
	if snap := l.Snapshot(); snap.MaxMs != 0 {
		t.Fatalf("expected clamped duration 0, got %d", snap.MaxMs)
	}
}

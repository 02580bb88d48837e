package api

import (
	"slices"
	"sync"
	"time"
)

type searchSample struct {
	at       time.Time
	duration time.Duration
	files    int
	matches  int
}

// LatencySnapshot aggregates recent searches.
type LatencySnapshot struct {
	Searches int     `json:"searches"`
	Files    int     `json:"files"`
	Matches  int     `json:"matches"`
	MinMs    int64   `json:"min_ms"`
	MaxMs    int64   `json:"max_ms"`
	AvgMs    float64 `json:"avg_ms"`
	P50Ms    float64 `json:"p50_ms"`
	P95Ms    float64 `json:"p95_ms"`
}

// Latency keeps search timings within a rolling window.
type Latency struct {
	mu      sync.Mutex
	samples []searchSample
	window  time.Duration
	now     func() time.Time
}

func NewLatency(window time.Duration) *Latency {
	if window <= 0 {
		window = time.Hour
	}
	return &Latency{
		samples: make([]searchSample, 0, 256),
		window:  window,
		now:     time.Now,
	}
}

func (l *Latency) Record(d time.Duration, files, matches int) {
	if d < 0 {
		d = 0
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	l.pruneLocked(now)
	l.samples = append(l.samples, searchSample{at: now, duration: d, files: files, matches: matches})
}

func (l *Latency) Snapshot() LatencySnapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.pruneLocked(l.now())
	if len(l.samples) == 0 {
		return LatencySnapshot{}
	}

	snap := LatencySnapshot{Searches: len(l.samples)}
	ms := make([]int64, 0, len(l.samples))
	var sum int64
	for _, s := range l.samples {
		v := s.duration.Milliseconds()
		ms = append(ms, v)
		sum += v
		snap.Files += s.files
		snap.Matches += s.matches
	}
	slices.Sort(ms)

	snap.MinMs = ms[0]
	snap.MaxMs = ms[len(ms)-1]
	snap.AvgMs = float64(sum) / float64(len(ms))
	snap.P50Ms = percentile(ms, 50)
	snap.P95Ms = percentile(ms, 95)
	return snap
}

// pruneLocked drops samples older than the window, in place.
func (l *Latency) pruneLocked(now time.Time) {
	cutoff := now.Add(-l.window)
	kept := l.samples[:0]
	for _, s := range l.samples {
		if !s.at.Before(cutoff) {
			kept = append(kept, s)
		}
	}
	l.samples = kept
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	if pct <= 0 {
		return float64(sorted[0])
	}
	if pct >= 100 {
		return float64(sorted[len(sorted)-1])
	}

	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	weight := index - float64(lower)
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*weight
}

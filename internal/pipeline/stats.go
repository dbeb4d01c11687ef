package pipeline

import (
	"slices"
	"sync"
	"time"

	"github.com/dgallion1/contentkit/internal/tabs"
)

// render is one successful render kept for the rolling window.
type render struct {
	at        time.Time
	source    string
	took      int64
	tabGroups int
	tabs      int
	small     int
}

// Latency summarises render durations in milliseconds.
type Latency struct {
	Count int     `json:"count"`
	MinMs int64   `json:"min_ms"`
	MaxMs int64   `json:"max_ms"`
	AvgMs float64 `json:"avg_ms"`
	P50Ms float64 `json:"p50_ms"`
	P95Ms float64 `json:"p95_ms"`
}

// StatsSnapshot describes the renders inside the window: latency overall and
// per source (preview, job, content), and how much tab markup they produced.
type StatsSnapshot struct {
	Renders         int                `json:"renders"`
	Latency         Latency            `json:"latency"`
	BySource        map[string]Latency `json:"by_source"`
	RendersWithTabs int                `json:"renders_with_tabs"`
	TabGroups       int                `json:"tab_groups"`
	Tabs            int                `json:"tabs"`
	SmallTabGroups  int                `json:"small_tab_groups"`
}

// RenderStats keeps successful renders for a rolling window.
type RenderStats struct {
	mu      sync.Mutex
	renders []render
	window  time.Duration
}

// NewRenderStats keeps renders for window; zero or less means an hour.
func NewRenderStats(window time.Duration) *RenderStats {
	if window <= 0 {
		window = time.Hour
	}
	return &RenderStats{
		renders: make([]render, 0, 256),
		window:  window,
	}
}

// Record adds a successful render of source that took d and produced groups.
func (s *RenderStats) Record(source string, d time.Duration, groups []tabs.TabGroup) {
	r := render{
		at:        time.Now(),
		source:    source,
		took:      max(d.Milliseconds(), 0),
		tabGroups: len(groups),
	}
	for _, g := range groups {
		r.tabs += len(g.Tabs)
		if g.IsSmall {
			r.small++
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(r.at)
	s.renders = append(s.renders, r)
}

func (s *RenderStats) Snapshot() StatsSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(time.Now())

	snap := StatsSnapshot{
		Renders:  len(s.renders),
		BySource: map[string]Latency{},
	}
	all := make([]int64, 0, len(s.renders))
	perSource := map[string][]int64{}
	for _, r := range s.renders {
		all = append(all, r.took)
		perSource[r.source] = append(perSource[r.source], r.took)
		if r.tabGroups > 0 {
			snap.RendersWithTabs++
		}
		snap.TabGroups += r.tabGroups
		snap.Tabs += r.tabs
		snap.SmallTabGroups += r.small
	}
	snap.Latency = summarise(all)
	for src, ms := range perSource {
		snap.BySource[src] = summarise(ms)
	}
	return snap
}

func (s *RenderStats) pruneLocked(now time.Time) {
	cutoff := now.Add(-s.window)
	keep := s.renders[:0]
	for _, r := range s.renders {
		if !r.at.Before(cutoff) {
			keep = append(keep, r)
		}
	}
	s.renders = keep
}

func summarise(ms []int64) Latency {
	if len(ms) == 0 {
		return Latency{}
	}
	slices.Sort(ms)
	var sum int64
	for _, v := range ms {
		sum += v
	}
	return Latency{
		Count: len(ms),
		MinMs: ms[0],
		MaxMs: ms[len(ms)-1],
		AvgMs: float64(sum) / float64(len(ms)),
		P50Ms: percentile(ms, 50),
		P95Ms: percentile(ms, 95),
	}
}

// percentile interpolates linearly between the closest ranks.
func percentile(sorted []int64, pct float64) float64 {
	switch {
	case len(sorted) == 0:
		return 0
	case pct <= 0:
		return float64(sorted[0])
	case pct >= 100:
		return float64(sorted[len(sorted)-1])
	}

	index := float64(len(sorted)-1) * pct / 100
	lower := int(index)
	if lower+1 >= len(sorted) {
		return float64(sorted[lower])
	}
	lo, hi := float64(sorted[lower]), float64(sorted[lower+1])
	return lo + (hi-lo)*(index-float64(lower))
}

package pipeline

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentkit/internal/tabs"
)

func groupOf(small bool, names ...string) tabs.TabGroup {
	g := tabs.TabGroup{IsSmall: small}
	for _, n := range names {
		g.Tabs = append(g.Tabs, tabs.TabInfo{Slug: n, Name: n})
	}
	return g
}

func TestRenderStatsLatencyPercentiles(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	for _, ms := range []int64{100, 200, 300, 400, 500} {
		stats.Record("preview", time.Duration(ms)*time.Millisecond, nil)
	}

	snap := stats.Snapshot()
	assert.Equal(t, 5, snap.Renders)
	assert.Equal(t, 5, snap.Latency.Count)
	assert.Equal(t, int64(100), snap.Latency.MinMs)
	assert.Equal(t, int64(500), snap.Latency.MaxMs)
	assert.Equal(t, 300.0, snap.Latency.AvgMs)
	assert.Equal(t, 300.0, snap.Latency.P50Ms)
	assert.InDelta(t, 480.0, snap.Latency.P95Ms, 1e-9)
	assert.Zero(t, snap.RendersWithTabs)
}

func TestRenderStatsPerSourceAndTabCounts(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	stats.Record("preview", 10*time.Millisecond, []tabs.TabGroup{groupOf(true, "npm", "yarn")})
	stats.Record("job", 30*time.Millisecond, []tabs.TabGroup{groupOf(false, "a", "b", "c"), groupOf(true, "x")})
	stats.Record("content", 50*time.Millisecond, nil)
	stats.Record("job", 70*time.Millisecond, nil)

	snap := stats.Snapshot()
	assert.Equal(t, 4, snap.Renders)
	require.Len(t, snap.BySource, 3)
	assert.Equal(t, 1, snap.BySource["preview"].Count)
	assert.Equal(t, 2, snap.BySource["job"].Count)
	assert.Equal(t, int64(30), snap.BySource["job"].MinMs)
	assert.Equal(t, 50.0, snap.BySource["job"].AvgMs)
	assert.Equal(t, int64(50), snap.BySource["content"].MaxMs)

	assert.Equal(t, 2, snap.RendersWithTabs)
	assert.Equal(t, 3, snap.TabGroups)
	assert.Equal(t, 6, snap.Tabs)
	assert.Equal(t, 2, snap.SmallTabGroups)
}

func TestRenderStatsPrunesExpiredRenders(t *testing.T) {
	stats := NewRenderStats(10 * time.Millisecond)
	stats.Record("preview", 100*time.Millisecond, []tabs.TabGroup{groupOf(false, "a")})
	time.Sleep(25 * time.Millisecond)

	snap := stats.Snapshot()
	assert.Zero(t, snap.Renders)
	assert.Zero(t, snap.TabGroups)
	assert.Empty(t, snap.BySource)

	stats.Record("job", 200*time.Millisecond, nil)
	snap = stats.Snapshot()
	assert.Equal(t, 1, snap.Renders)
	assert.Equal(t, int64(200), snap.BySource["job"].MinMs)
}

func TestRenderStatsClampsNegativeDuration(t *testing.T) {
	stats := NewRenderStats(time.Hour)
	stats.Record("preview", -10*time.Millisecond, nil)
	snap := stats.Snapshot()
	assert.Equal(t, 1, snap.Latency.Count)
	assert.Zero(t, snap.Latency.MinMs)
}

func TestPercentileEdges(t *testing.T) {
	assert.Zero(t, percentile(nil, 50))
	assert.Equal(t, 7.0, percentile([]int64{7}, 99))
	assert.Equal(t, 1.0, percentile([]int64{1, 9}, 0))
	assert.Equal(t, 9.0, percentile([]int64{1, 9}, 100))
}

package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dgallion1/contentkit/internal/config"
)

func testConfig(workers, queue int) config.Config {
	return config.Config{WorkerCount: workers, MaxQueueSize: queue, JobTTL: time.Hour}
}

func waitDone(t *testing.T, job *Job) JobSnapshot {
	t.Helper()
	require.Eventually(t, func() bool {
		return job.Snapshot().Status.Done()
	}, 5*time.Second, 10*time.Millisecond)
	return job.Snapshot()
}

func TestOrchestrator_ProcessesJobs(t *testing.T) {
	rec := &fakeRecorder{}
	o := NewOrchestrator(testConfig(2, 10), NewRenderer(false, rec, nil, nil), rec, nil)
	o.Start(context.Background())
	defer o.Stop()

	ok := NewJob("post.md", []byte(tabbedPost), false)
	bad := NewJob("open.md", []byte("<!-- tabs:start -->\n\n# A\n"), true)
	require.NoError(t, o.Submit(ok))
	require.NoError(t, o.Submit(bad))

	snap := waitDone(t, ok)
	assert.Equal(t, StatusCompleted, snap.Status)
	assert.Equal(t, 1, snap.TabGroups)
	require.NotNil(t, ok.Result())
	assert.Contains(t, ok.Result().HTML, `role="tablist"`)
	assert.Same(t, ok, o.GetJob(ok.ID))

	snap = waitDone(t, bad)
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, string(StatusTransforming), snap.Phase)
	require.Len(t, snap.Errors, 1)
	assert.Contains(t, snap.Errors[0], "start marker without end")
	assert.Nil(t, bad.Result())

	_, renders, outcomes := rec.snapshot()
	assert.ElementsMatch(t, []string{"completed", "failed"}, outcomes)
	for _, r := range renders {
		assert.Equal(t, "job", r.source)
	}
}

func TestOrchestrator_QueueFull(t *testing.T) {
	rec := &fakeRecorder{}
	// not started: nothing drains the queue
	o := NewOrchestrator(testConfig(1, 1), NewRenderer(false, nil, nil, nil), rec, nil)

	first := NewJob("a.md", []byte("# A"), false)
	second := NewJob("b.md", []byte("# B"), false)
	require.NoError(t, o.Submit(first))
	assert.Equal(t, 1, o.QueueDepth())

	err := o.Submit(second)
	require.Error(t, err)
	snap := second.Snapshot()
	assert.Equal(t, StatusFailed, snap.Status)
	assert.Equal(t, []string{"queue_full"}, snap.Errors)
	assert.Same(t, second, o.GetJob(second.ID))

	_, _, outcomes := rec.snapshot()
	assert.Equal(t, []string{"failed"}, outcomes)
	o.Stop()
}

func TestOrchestrator_UnknownJob(t *testing.T) {
	o := NewOrchestrator(testConfig(1, 1), NewRenderer(false, nil, nil, nil), nil, nil)
	assert.Nil(t, o.GetJob("missing"))
	assert.NotNil(t, o.Renderer())
}

func TestCleanupInterval(t *testing.T) {
	assert.Equal(t, 5*time.Minute, cleanupInterval(0))
	assert.Equal(t, 5*time.Minute, cleanupInterval(time.Hour))
	assert.Equal(t, time.Minute, cleanupInterval(time.Minute))
}

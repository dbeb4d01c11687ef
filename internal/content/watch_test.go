package content

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_ReloadsOnChange(t *testing.T) {
	s, dir := loadedStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Watch(ctx, s, nil) }()
	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Error("watch did not stop")
		}
	})

	// give the watcher time to register directories
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, BlogDir, "fresh-post", "index.md"), post("Fresh Post", "2025-01-01", "crutchcorn"))

	require.Eventually(t, func() bool {
		_, err := s.Post("fresh-post")
		return err == nil
	}, 5*time.Second, 50*time.Millisecond)
	assert.Equal(t, "fresh-post", s.Posts()[0].Fields.Slug)
}

func TestWatch_MissingDir(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "nope"), &stubRenderer{}, StoreOptions{})
	err := Watch(context.Background(), s, nil)
	assert.Error(t, err)
}

func TestIgnoreEvent(t *testing.T) {
	tests := []struct {
		ev   fsnotify.Event
		want bool
	}{
		{fsnotify.Event{Name: "blog/a/index.md", Op: fsnotify.Write}, false},
		{fsnotify.Event{Name: "blog/a/index.md", Op: fsnotify.Chmod}, true},
		{fsnotify.Event{Name: "blog/a/.index.md.swp", Op: fsnotify.Write}, true},
		{fsnotify.Event{Name: "blog/a/index.md~", Op: fsnotify.Create}, true},
		{fsnotify.Event{Name: "blog/a/#index.md#", Op: fsnotify.Create}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ignoreEvent(tt.ev), tt.ev.String())
	}
}

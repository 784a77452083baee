package cssjit

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnoreWatchPath(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"ui/marker.go", false},
		{"Pages/Index.razor", false},
		{"ui/cssjit_api.gen.go", true},
		{"ui/.marker.go.swp", true},
		{"ui/marker.go~", true},
		{"ui/.#marker.go", true},
		{".DS_Store", true},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, shouldIgnoreWatchPath(tt.path))
		})
	}
}

func TestShouldSkipWatchDir(t *testing.T) {
	assert.True(t, shouldSkipWatchDir(".git"))
	assert.True(t, shouldSkipWatchDir("node_modules"))
	assert.True(t, shouldSkipWatchDir("vendor"))
	assert.False(t, shouldSkipWatchDir("ui"))
}

func TestWatchRegeneratesOnChange(t *testing.T) {
	root := writeTree(t, map[string]string{"ui/marker.go": markerSource})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	results := make(chan *GenerateResult, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{Root: root}, WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnResult: func(r *GenerateResult, err error) {
				if err == nil {
					results <- r
				}
			},
		})
	}()

	next := func() *GenerateResult {
		t.Helper()
		select {
		case r := <-results:
			return r
		case <-time.After(10 * time.Second):
			t.Fatal("timed out waiting for a generation pass")
			return nil
		}
	}

	first := next()
	assert.Equal(t, 2, first.Classes)

	require.NoError(t, os.WriteFile(filepath.Join(root, "ui", "Index.razor"), []byte(`<b class="new">`), 0o644))

	var second *GenerateResult
	for second == nil || second.Classes != 3 {
		second = next()
	}
	assert.Positive(t, second.CacheHits)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchWaitsForRunningPass(t *testing.T) {
	root := writeTree(t, map[string]string{"ui/marker.go": markerSource})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var calls atomic.Int32
	reporting := make(chan struct{})
	release := make(chan struct{})
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, Config{Root: root}, WatchOptions{
			Debounce: 20 * time.Millisecond,
			OnResult: func(*GenerateResult, error) {
				if calls.Add(1) == 2 {
					close(reporting)
					<-release
				}
			},
		})
	}()

	require.Eventually(t, func() bool { return calls.Load() >= 1 }, 10*time.Second, 10*time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(root, "ui", "Index.razor"), []byte(`<b class="new">`), 0o644))

	select {
	case <-reporting:
	case <-time.After(10 * time.Second):
		t.Fatal("timed out waiting for the second pass")
	}

	cancel()
	select {
	case <-done:
		t.Fatal("watch returned while a pass was still reporting")
	case <-time.After(100 * time.Millisecond):
	}

	close(release)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(10 * time.Second):
		t.Fatal("watch did not stop")
	}

	after := calls.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, calls.Load())
}

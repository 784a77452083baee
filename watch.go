package cssjit

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bep/debounce"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce coalesces bursts of file events into one pass
const DefaultDebounce = 250 * time.Millisecond

// WatchOptions configures Watch
type WatchOptions struct {
	Debounce time.Duration
	// OnResult receives the outcome of every pass, including the first.
	OnResult func(*GenerateResult, error)
}

// Watch runs Generate once, then again after every debounced change below
// config.Root until ctx is done. A cache is created when config.Cache is
// nil so unchanged units are not rescanned. OnResult is never called after
// Watch has returned.
func Watch(ctx context.Context, config Config, opts WatchOptions) error {
	if config.Cache == nil {
		cache, err := NewCache(0)
		if err != nil {
			return err
		}
		config.Cache = cache
	}
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.OnResult == nil {
		opts.OnResult = func(*GenerateResult, error) {}
	}
	ec, err := config.Resolve()
	if err != nil {
		return err
	}
	log := ec.Logger

	root := config.Root
	if root == "" {
		root = "."
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := addWatchRecursive(watcher, absRoot); err != nil {
		return err
	}

	// mu serializes passes; stopped is set under mu when Watch returns so a
	// pass still pending in the debouncer never reports afterwards.
	var (
		mu      sync.Mutex
		stopped bool
	)
	run := func() {
		mu.Lock()
		defer mu.Unlock()
		if stopped || ctx.Err() != nil {
			return
		}
		opts.OnResult(Generate(ctx, config))
	}
	defer func() {
		mu.Lock()
		stopped = true
		mu.Unlock()
	}()
	run()

	debounced := debounce.New(opts.Debounce)
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			path := filepath.Clean(event.Name)
			if shouldIgnoreWatchPath(path) {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
					_ = addWatchRecursive(watcher, path)
				}
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.Debug().Str("path", path).Stringer("op", event.Op).Msg("change detected")
			debounced(run)

		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}

func addWatchRecursive(watcher *fsnotify.Watcher, root string) error {
	root = filepath.Clean(root)
	return filepath.WalkDir(root, func(path string, entry os.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !entry.IsDir() {
			return nil
		}
		if path != root && shouldSkipWatchDir(entry.Name()) {
			return filepath.SkipDir
		}
		return watcher.Add(path)
	})
}

func shouldSkipWatchDir(name string) bool {
	if name == "node_modules" || name == "vendor" {
		return true
	}
	return strings.HasPrefix(name, ".")
}

// shouldIgnoreWatchPath drops editor noise and our own output.
func shouldIgnoreWatchPath(path string) bool {
	base := filepath.Base(path)
	if base == ".DS_Store" || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swx") || strings.HasPrefix(base, ".#") || strings.HasSuffix(base, "~") {
		return true
	}
	return isGeneratedArtifact(path)
}

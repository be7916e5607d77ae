// Package watch re-runs the generation pipeline when annotated sources
// change. Used by `rglue watch`.
package watch

import (
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/rglue/rglue/errors"
	"github.com/rglue/rglue/logger"
)

// RegenerateFunc is invoked (debounced) after source changes.
type RegenerateFunc func() error

// SourceWatcher watches a package's src/ directory and triggers regeneration
// on C++ source changes. Events for the generated shim file itself are
// ignored: regeneration writes into the watched directory, and reacting to
// our own output would loop forever.
type SourceWatcher struct {
	srcDir         string
	watcher        *fsnotify.Watcher
	regenerate     RegenerateFunc
	mu             sync.Mutex
	debounceTimer  *time.Timer
	debouncePeriod time.Duration
	done           chan struct{}
}

// NewSourceWatcher creates a watcher over <pkgDir>/src.
func NewSourceWatcher(pkgDir string, regenerate RegenerateFunc) (*SourceWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "failed to create fsnotify watcher")
	}

	srcDir := filepath.Join(pkgDir, "src")
	if err := watcher.Add(srcDir); err != nil {
		watcher.Close()
		return nil, errors.Wrapf(err, "failed to watch source directory %s", srcDir)
	}

	return &SourceWatcher{
		srcDir:         srcDir,
		watcher:        watcher,
		regenerate:     regenerate,
		debouncePeriod: 500 * time.Millisecond, // editors fire bursts of events per save
		done:           make(chan struct{}),
	}, nil
}

// Start begins watching in a background goroutine.
func (w *SourceWatcher) Start() {
	go w.watchLoop()
}

// Stop ends watching and cancels any pending regeneration.
func (w *SourceWatcher) Stop() {
	close(w.done)
	w.watcher.Close()

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
}

func (w *SourceWatcher) watchLoop() {
	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if !isSourceFile(event.Name) {
				continue
			}
			logger.Infow("source change detected",
				logger.FieldFile, event.Name,
				"op", event.Op.String())
			w.scheduleRegenerate()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			logger.Errorw("watcher error", logger.FieldError, err)

		case <-w.done:
			return
		}
	}
}

// scheduleRegenerate debounces rapid change bursts into one run.
func (w *SourceWatcher) scheduleRegenerate() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(w.debouncePeriod, func() {
		if err := w.regenerate(); err != nil {
			logger.Errorw("regeneration failed", logger.FieldError, err)
		}
	})
}

// isSourceFile reports whether a changed path is an input we care about:
// a scannable C++ file that is not our own generated output or an editor
// backup.
func isSourceFile(path string) bool {
	name := filepath.Base(path)
	if name == "RglueExports.cpp" {
		return false
	}
	if strings.HasSuffix(name, "~") || strings.HasPrefix(name, ".#") {
		return false
	}
	return strings.HasSuffix(name, ".cpp") || strings.HasSuffix(name, ".cc")
}

// Package watch reruns a rebuild whenever a directory tree changes.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"git.home.luguber.info/inful/docpress/internal/logfields"
)

const defaultDebounce = 300 * time.Millisecond

// Watcher watches Root recursively and calls Rebuild after changes settle.
// Rebuilds never overlap: changes arriving during a rebuild queue exactly one
// follow-up run.
type Watcher struct {
	Root string
	// Debounce is the quiet period after the last event before rebuilding.
	Debounce time.Duration
	// Resync, when positive, also rebuilds on this interval.
	Resync time.Duration
	// Rebuild errors are logged; they do not stop the watcher.
	Rebuild func(ctx context.Context) error
	// Ignore optionally drops additional paths.
	Ignore func(path string) bool
}

// Run watches until ctx is done. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	if w.Rebuild == nil {
		return errors.New("watch: Rebuild is required")
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = fsw.Close() }()

	if err := w.addDirsRecursive(fsw, w.Root); err != nil {
		return err
	}

	requests := make(chan string, 1)
	request := func(reason string) {
		select {
		case requests <- reason:
		default:
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	d := newDebouncer(debounce, func() { request("change") })
	defer d.stop()

	if w.Resync > 0 {
		sched, err := NewScheduler()
		if err != nil {
			return err
		}
		if err := sched.Every(w.Resync, "resync", func() { request("resync") }); err != nil {
			return err
		}
		sched.Start()
		defer func() {
			if err := sched.Stop(); err != nil {
				slog.Warn("Scheduler shutdown failed", logfields.Error(err))
			}
		}()
	}

	workerCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		w.worker(workerCtx, requests)
	}()
	defer func() {
		cancel()
		wg.Wait()
	}()

	slog.Info("Watching for changes", logfields.Path(w.Root), slog.Duration("debounce", debounce))
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			w.handleEvent(fsw, ev, d.trigger)
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Watcher error", logfields.Error(err))
		}
	}
}

// worker runs one rebuild at a time; the buffered request channel holds at
// most one pending run.
func (w *Watcher) worker(ctx context.Context, requests <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case reason := <-requests:
			start := time.Now()
			slog.Info("Rebuilding", logfields.Trigger(reason))
			if err := w.Rebuild(ctx); err != nil {
				slog.Warn("Rebuild failed", logfields.Trigger(reason), logfields.Error(err))
				continue
			}
			slog.Debug("Rebuild finished", logfields.Trigger(reason),
				logfields.Elapsed(time.Since(start)))
		}
	}
}

func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, ev fsnotify.Event, trigger func()) {
	if w.ignored(ev.Name) {
		return
	}
	if ev.Has(fsnotify.Create) {
		if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
			_ = w.addDirsRecursive(fsw, ev.Name)
		}
	}
	slog.Debug("File change detected", logfields.Path(ev.Name), logfields.Op(ev.Op.String()))
	trigger()
}

func (w *Watcher) addDirsRecursive(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return fmt.Errorf("watch %s: %w", root, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && w.ignored(p) {
			return filepath.SkipDir
		}
		if err := fsw.Add(p); err != nil {
			slog.Warn("Watch add failed", logfields.Path(p), logfields.Error(err))
		}
		return nil
	})
}

func (w *Watcher) ignored(p string) bool {
	if shouldIgnore(p) {
		return true
	}
	return w.Ignore != nil && w.Ignore(p)
}

// shouldIgnore reports hidden files and editor scratch files.
func shouldIgnore(p string) bool {
	base := filepath.Base(p)
	switch {
	case strings.HasPrefix(base, "."),
		strings.HasSuffix(base, "~"),
		strings.HasSuffix(base, ".swp"),
		strings.HasSuffix(base, ".swx"),
		strings.HasSuffix(base, ".tmp"),
		strings.HasPrefix(base, "#") && strings.HasSuffix(base, "#"):
		return true
	}
	return false
}

type debouncer struct {
	mu    sync.Mutex
	delay time.Duration
	fire  func()
	timer *time.Timer
}

func newDebouncer(delay time.Duration, fire func()) *debouncer {
	return &debouncer{delay: delay, fire: fire}
}

func (d *debouncer) trigger() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.delay, d.fire)
}

func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
}

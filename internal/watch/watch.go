// Package watch signals when another process changed a jj repository.
//
// jj records every operation by replacing the file under
// .jj/repo/op_heads/heads, so watching that directory is enough to notice
// commits, bookmark moves and fetches made from any terminal.
package watch

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// DefaultDebounce groups the bursts of events a single jj operation produces
const DefaultDebounce = 150 * time.Millisecond

// OpHeadsDir returns the directory jj rewrites on every operation
func OpHeadsDir(repoPath string) string {
	return filepath.Join(repoPath, ".jj", "repo", "op_heads", "heads")
}

// Watcher emits on Changes after the repository's operation log moves
type Watcher struct {
	watcher  *fsnotify.Watcher
	changes  chan struct{}
	done     chan struct{}
	debounce time.Duration
	logger   zerolog.Logger
	closeMu  sync.Once
	wg       sync.WaitGroup
}

// New starts watching the repository at repoPath
func New(repoPath string, debounce time.Duration, logger zerolog.Logger) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	dir := OpHeadsDir(repoPath)
	if err := fsw.Add(dir); err != nil {
		_ = fsw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		watcher:  fsw,
		changes:  make(chan struct{}, 1),
		done:     make(chan struct{}),
		debounce: debounce,
		logger:   logger,
	}

	w.wg.Add(1)
	go w.loop()
	return w, nil
}

// Changes delivers at most one pending signal at a time
func (w *Watcher) Changes() <-chan struct{} {
	return w.changes
}

// Close stops the watcher. It is safe to call more than once.
func (w *Watcher) Close() error {
	var err error
	w.closeMu.Do(func() {
		close(w.done)
		err = w.watcher.Close()
		w.wg.Wait()
	})
	return err
}

func (w *Watcher) loop() {
	defer w.wg.Done()

	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Trace().Str("path", event.Name).Stringer("op", event.Op).Msg("op heads changed")
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			fire = timer.C

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Debug().Err(err).Msg("watch error")

		case <-fire:
			fire = nil
			select {
			case w.changes <- struct{}{}:
			default:
			}
		}
	}
}

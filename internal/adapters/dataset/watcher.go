package dataset

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/okian/critiq/pkg/logger"
)

// defaultDebounce coalesces bursts of file events into one reload.
const defaultDebounce = 500 * time.Millisecond

// ReloadFunc is invoked after the watched dataset file changes.
type ReloadFunc func(ctx context.Context) error

// WatcherOption applies a configuration option to the Watcher.
type WatcherOption func(*Watcher)

// WithDebounce sets the quiet period before a change triggers a reload.
func WithDebounce(d time.Duration) WatcherOption {
	return func(w *Watcher) {
		if d > 0 {
			w.debounce = d
		}
	}
}

// WithWatcherLogger sets a custom logger for the watcher.
func WithWatcherLogger(l logger.Logger) WatcherOption {
	return func(w *Watcher) {
		if l != nil {
			w.logger = l
		}
	}
}

// Watcher reloads the reference table when the dataset file changes.
// The directory is watched rather than the file itself so that
// rename-into-place updates (the common atomic write pattern) are seen.
type Watcher struct {
	path     string
	reload   ReloadFunc
	debounce time.Duration
	logger   logger.Logger

	fsw  *fsnotify.Watcher
	done chan struct{}
}

// NewWatcher creates a watcher for path that calls reload on changes.
func NewWatcher(path string, reload ReloadFunc, opts ...WatcherOption) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}

	w := &Watcher{
		path:     filepath.Clean(path),
		reload:   reload,
		debounce: defaultDebounce,
		fsw:      fsw,
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start begins watching. It returns once the watch is registered; events
// are handled on a background goroutine until Close or ctx cancellation.
func (w *Watcher) Start(ctx context.Context) error {
	if w.logger == nil {
		w.logger = logger.Get()
	}
	if err := w.fsw.Add(filepath.Dir(w.path)); err != nil {
		return fmt.Errorf("%w: %w", ErrOpenDataset, err)
	}
	go w.run(ctx)
	w.logger.Info(ctx, "watching dataset for changes", logger.String("path", w.path))
	return nil
}

// Close stops the watcher and releases the underlying fsnotify resources.
func (w *Watcher) Close() error {
	select {
	case <-w.done:
	default:
		close(w.done)
	}
	if err := w.fsw.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	var timer *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			// Restart the debounce window on every relevant event.
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})
		case <-pending:
			start := time.Now()
			if err := w.reload(ctx); err != nil {
				w.logger.Error(ctx, "dataset reload failed",
					logger.String("path", w.path),
					logger.Error(err),
				)
				continue
			}
			w.logger.Info(ctx, "dataset reloaded",
				logger.String("path", w.path),
				logger.Duration("took", time.Since(start)),
			)
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.logger.Warn(ctx, "dataset watcher error", logger.Error(err))
		}
	}
}

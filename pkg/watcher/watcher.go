// Package watcher monitors a content overlay directory for changes,
// using fsnotify with a polling fallback for filesystems where inotify
// is unreliable.
package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Defaults for debounce and polling. Overlay edits usually arrive as a
// burst of writes from an editor; the debounce collapses them into one
// reload.
const (
	DefaultDebounceDuration = 200 * time.Millisecond
	DefaultPollInterval     = 2 * time.Second
)

// Common errors.
var (
	ErrDirRemoved     = errors.New("watched directory was removed")
	ErrPermission     = errors.New("permission denied")
	ErrAlreadyStarted = errors.New("watcher already started")
)

// Option configures a Watcher.
type Option func(*Watcher)

// WithDebounceDuration sets the debounce duration.
func WithDebounceDuration(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounceDuration = d
	}
}

// WithPollInterval sets the polling interval for fallback mode.
func WithPollInterval(d time.Duration) Option {
	return func(w *Watcher) {
		w.pollInterval = d
	}
}

// WithOnChange sets the callback invoked when overlay files change.
func WithOnChange(fn func()) Option {
	return func(w *Watcher) {
		w.onChange = fn
	}
}

// WithOnError sets the callback invoked on errors.
func WithOnError(fn func(error)) Option {
	return func(w *Watcher) {
		w.onError = fn
	}
}

// WithForcePoll forces polling mode even if fsnotify is available.
func WithForcePoll(force bool) Option {
	return func(w *Watcher) {
		w.forcePoll = force
	}
}

// Watcher monitors a directory's YAML files using fsnotify with polling
// fallback.
type Watcher struct {
	dir              string
	debounceDuration time.Duration
	pollInterval     time.Duration
	onChange         func()
	onError          func(error)
	forcePoll        bool

	fsWatcher   *fsnotify.Watcher
	debounce    *time.Timer
	useFallback bool
	// lastState maps overlay filename to mtime+size for poll comparisons.
	lastState map[string]fileState

	ctx      context.Context
	cancel   context.CancelFunc
	started  bool
	mu       sync.RWMutex
	changeCh chan struct{}
}

type fileState struct {
	mtime time.Time
	size  int64
}

// New creates a watcher for the overlay directory at dir.
func New(dir string, opts ...Option) (*Watcher, error) {
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		dir:              absDir,
		debounceDuration: DefaultDebounceDuration,
		pollInterval:     DefaultPollInterval,
		onChange:         func() {},
		onError:          func(error) {},
		changeCh:         make(chan struct{}, 1),
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Start begins watching the directory for overlay changes.
func (w *Watcher) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.started {
		return ErrAlreadyStarted
	}

	w.ctx, w.cancel = context.WithCancel(context.Background())
	w.useFallback = w.forcePoll || envBool("COURSEDECK_FORCE_POLL")

	state, err := snapshotDir(w.dir)
	if err != nil {
		if os.IsPermission(err) {
			return ErrPermission
		}
		// Directory might not exist yet, that's okay.
		state = map[string]fileState{}
	}
	w.lastState = state

	if !w.useFallback {
		fsw, err := fsnotify.NewWatcher()
		if err == nil {
			if err := fsw.Add(w.dir); err != nil {
				fsw.Close()
				w.useFallback = true
			} else {
				w.fsWatcher = fsw
				go w.watchFsnotify()
			}
		} else {
			w.useFallback = true
		}
	}

	if w.useFallback {
		go w.watchPolling()
	}

	w.started = true
	return nil
}

// Stop stops watching. The change channel is intentionally not closed:
// closing would race with notifyChange, and Stop is only called at
// program exit where process termination cleans up any blocked reader.
func (w *Watcher) Stop() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if !w.started {
		return
	}

	if w.cancel != nil {
		w.cancel()
	}

	if w.fsWatcher != nil {
		w.fsWatcher.Close()
		w.fsWatcher = nil
	}

	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.started = false
}

// IsPolling returns true if the watcher is using polling mode.
func (w *Watcher) IsPolling() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.useFallback
}

// IsStarted returns true if the watcher is running.
func (w *Watcher) IsStarted() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.started
}

// Changed returns a channel that receives when overlay files change.
// This is an alternative to using the OnChange callback.
func (w *Watcher) Changed() <-chan struct{} {
	return w.changeCh
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

func envBool(name string) bool {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return false
	}
	switch strings.ToLower(v) {
	case "1", "true", "yes", "y", "on":
		return true
	default:
		return false
	}
}

// isOverlayFile reports whether name looks like an overlay document.
func isOverlayFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}

func snapshotDir(dir string) (map[string]fileState, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	state := make(map[string]fileState)
	for _, e := range entries {
		if e.IsDir() || !isOverlayFile(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		state[e.Name()] = fileState{mtime: info.ModTime(), size: info.Size()}
	}
	return state, nil
}

// watchFsnotify monitors using fsnotify events.
func (w *Watcher) watchFsnotify() {
	w.mu.RLock()
	if w.fsWatcher == nil {
		w.mu.RUnlock()
		return
	}
	events := w.fsWatcher.Events
	errs := w.fsWatcher.Errors
	w.mu.RUnlock()

	for {
		select {
		case <-w.ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}

			if event.Name == w.dir && event.Op&fsnotify.Remove != 0 {
				w.onError(ErrDirRemoved)
				continue
			}
			if !isOverlayFile(event.Name) {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename|fsnotify.Remove) != 0 {
				w.trigger()
			}

		case err, ok := <-errs:
			if !ok {
				return
			}
			w.onError(err)
		}
	}
}

// watchPolling monitors using periodic directory snapshots.
func (w *Watcher) watchPolling() {
	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return

		case <-ticker.C:
			state, err := snapshotDir(w.dir)
			if err != nil {
				if os.IsNotExist(err) {
					w.mu.RLock()
					hadFiles := len(w.lastState) > 0
					w.mu.RUnlock()
					if hadFiles {
						w.onError(ErrDirRemoved)
					}
				} else if os.IsPermission(err) {
					w.onError(ErrPermission)
				} else {
					w.onError(err)
				}
				continue
			}

			w.mu.Lock()
			changed := len(state) != len(w.lastState)
			if !changed {
				for name, fs := range state {
					prev, ok := w.lastState[name]
					if !ok || fs.mtime.After(prev.mtime) || fs.size != prev.size {
						changed = true
						break
					}
				}
			}
			if changed {
				w.lastState = state
			}
			w.mu.Unlock()

			if changed {
				w.trigger()
			}
		}
	}
}

// trigger schedules a debounced change notification.
func (w *Watcher) trigger() {
	w.mu.Lock()
	if w.debounce != nil {
		w.debounce.Stop()
	}
	w.debounce = time.AfterFunc(w.debounceDuration, w.notifyChange)
	w.mu.Unlock()
}

// notifyChange invokes the onChange callback and signals the change
// channel.
func (w *Watcher) notifyChange() {
	w.mu.RLock()
	started := w.started
	w.mu.RUnlock()

	// Best-effort guard against firing after Stop; callbacks are
	// idempotent so the remaining race window is harmless.
	if !started {
		return
	}

	w.onChange()

	select {
	case w.changeCh <- struct{}{}:
	default:
	}
}

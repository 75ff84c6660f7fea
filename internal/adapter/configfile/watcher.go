package configfile

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/fsnotify/fsnotify"

	"wardmind/internal/app/heal"
)

// Snapshot is the health view of the directive artifact.
type Snapshot struct {
	Path          string    `json:"path"`
	LoadedAt      time.Time `json:"loaded_at"`
	Lines         int       `json:"lines"`
	ActiveLines   int       `json:"active_lines"`
	DisabledLines int       `json:"disabled_lines"`
	LoadError     string    `json:"load_error,omitempty"`
}

// Watcher keeps a cached Snapshot of the artifact, refreshed when anything
// rewrites the file: our own heal pipeline or an operator's editor. The
// directory is watched, not the file, so rename-based writes stay visible.
type Watcher struct {
	store *Store

	mu   sync.RWMutex
	snap Snapshot

	fs      *fsnotify.Watcher
	stopCh  chan struct{}
	doneCh  chan struct{}
	pending *time.Timer

	debounce time.Duration
}

func NewWatcher(store *Store) (*Watcher, error) {
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	w := &Watcher{
		store:    store,
		fs:       fs,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		debounce: 200 * time.Millisecond,
	}
	w.Refresh()

	if err := fs.Add(filepath.Dir(store.Path())); err != nil {
		fs.Close()
		return nil, err
	}
	go w.run()
	return w, nil
}

func (w *Watcher) run() {
	defer close(w.doneCh)
	for {
		select {
		case <-w.stopCh:
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != filepath.Clean(w.store.Path()) {
				continue
			}
			w.scheduleRefresh()
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			hlog.Warnf("directive watcher: %v", err)
		}
	}
}

// scheduleRefresh coalesces the event bursts editors and atomic writes emit.
func (w *Watcher) scheduleRefresh() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.pending = time.AfterFunc(w.debounce, w.Refresh)
}

// Refresh re-reads the artifact and rebuilds the cached snapshot.
func (w *Watcher) Refresh() {
	snap := Snapshot{Path: w.store.Path(), LoadedAt: time.Now()}
	text, err := w.store.Load(context.Background())
	if err != nil {
		snap.LoadError = err.Error()
	} else {
		for _, line := range strings.Split(text, "\n") {
			trimmed := strings.TrimSpace(line)
			if trimmed == "" {
				continue
			}
			snap.Lines++
			switch {
			case strings.HasPrefix(trimmed, heal.DisabledMarker):
				snap.DisabledLines++
			case strings.HasPrefix(trimmed, "#"):
			default:
				snap.ActiveLines++
			}
		}
	}

	w.mu.Lock()
	w.snap = snap
	w.mu.Unlock()
}

func (w *Watcher) Snapshot() Snapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.snap
}

func (w *Watcher) Close() {
	close(w.stopCh)
	w.fs.Close()
	<-w.doneCh

	w.mu.Lock()
	if w.pending != nil {
		w.pending.Stop()
	}
	w.mu.Unlock()
}

package seed

import (
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/lixenwraith/glyph-rain/engine"
)

// reloadDelay coalesces bursts of editor writes into one reload
const reloadDelay = 50 * time.Millisecond

// LoadFile reads a scratch file, a missing file yields empty text
func LoadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", errors.Wrapf(err, "read seed file %s", path)
	}
	return StripBOM(string(data)), nil
}

// Watcher reloads a scratch file into a callback whenever it changes
// The parent directory is watched so editors that replace the file by rename are followed
type Watcher struct {
	path   string
	onLoad func(string)
	logger *slog.Logger

	watcher *fsnotify.Watcher

	mu      sync.Mutex
	timer   *time.Timer
	closed  bool
	closeCh chan struct{}
	done    chan struct{}
}

// NewWatcher starts watching path, onLoad runs on the watcher goroutine
func NewWatcher(path string, onLoad func(string), logger *slog.Logger) (*Watcher, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve seed file %s", path)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, "create file watcher")
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		_ = fsw.Close()
		return nil, errors.Wrapf(err, "watch %s", filepath.Dir(abs))
	}

	w := &Watcher{
		path:    abs,
		onLoad:  onLoad,
		logger:  logger,
		watcher: fsw,
		closeCh: make(chan struct{}),
		done:    make(chan struct{}),
	}
	engine.Go(w.processLoop)
	return w, nil
}

// Close stops the watcher and waits for its goroutine
func (w *Watcher) Close() error {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return nil
	}
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.closeCh)
	w.mu.Unlock()

	<-w.done
	return w.watcher.Close()
}

func (w *Watcher) processLoop() {
	defer close(w.done)

	for {
		select {
		case <-w.closeCh:
			return

		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(ev)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("seed watcher error", "path", w.path, "error", err)
		}
	}
}

func (w *Watcher) handleEvent(ev fsnotify.Event) {
	if filepath.Clean(ev.Name) != w.path {
		return
	}
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
		return
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDelay, w.reload)
}

func (w *Watcher) reload() {
	w.mu.Lock()
	closed := w.closed
	w.mu.Unlock()
	if closed {
		return
	}

	text, err := LoadFile(w.path)
	if err != nil {
		w.logger.Warn("seed reload failed", "error", err)
		return
	}
	w.logger.Debug("seed reloaded", "path", w.path, "bytes", len(text))
	w.onLoad(text)
}

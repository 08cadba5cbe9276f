package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// watchDebounce coalesces the burst of events editors emit on save.
const watchDebounce = 150 * time.Millisecond

// fileWatcher reports changes to a single file. The parent directory is
// watched so atomic saves (write to temp file, rename over) are seen.
type fileWatcher struct {
	path    string
	fsw     *fsnotify.Watcher
	changes chan struct{}
	errs    chan error

	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	closeErr  error
}

func newFileWatcher(path string) (*fileWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	w := &fileWatcher{
		path:    abs,
		fsw:     fsw,
		changes: make(chan struct{}, 1),
		errs:    make(chan error, 1),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	go w.run()
	return w, nil
}

// run owns the debounce timer, so a change pending when Close is called
// is dropped instead of firing later.
func (w *fileWatcher) run() {
	defer close(w.stopped)
	target := filepath.Base(w.path)
	var (
		debounce *time.Timer
		fire     <-chan time.Time
	)
	stop := func() {
		if debounce != nil {
			debounce.Stop()
		}
		fire = nil
	}
	defer stop()
	for {
		select {
		case <-w.done:
			return
		case <-fire:
			fire = nil
			w.notify()
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			stop()
			debounce = time.NewTimer(watchDebounce)
			fire = debounce.C
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			select {
			case w.errs <- err:
			default:
			}
		}
	}
}

func (w *fileWatcher) notify() {
	select {
	case w.changes <- struct{}{}:
	default:
	}
}

// wait blocks until the file changes or the watcher fails. It returns nil
// once ctx ends or the watcher is closed.
func (w *fileWatcher) wait(ctx context.Context) tea.Msg {
	select {
	case <-w.done:
		return nil
	case <-w.changes:
		return fileChangedMsg{}
	case err := <-w.errs:
		return watchErrMsg{err: err}
	case <-ctx.Done():
		return nil
	}
}

// Close stops the watcher and waits for its goroutine to exit. It is safe
// to call more than once.
func (w *fileWatcher) Close() error {
	w.closeOnce.Do(func() {
		close(w.done)
		<-w.stopped
		w.closeErr = w.fsw.Close()
	})
	return w.closeErr
}

// fileChangedMsg is sent when the explored document changed on disk.
type fileChangedMsg struct{}

type watchErrMsg struct{ err error }

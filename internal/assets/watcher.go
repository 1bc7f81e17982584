package assets

import (
	"path/filepath"
	"strings"
	"sync"

	"cubescene/internal/logging"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// pending bounds the number of unconsumed change notifications.
const pending = 16

// ShaderWatcher reports shader programs whose sources change on disk. It
// never touches the graphics context; the render loop drains Changes between
// frames.
type ShaderWatcher struct {
	stop      func() error
	changes   chan string
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once
	log       *log.Logger
}

// NewShaderWatcher starts watching dir for .vert and .frag writes.
func NewShaderWatcher(dir string) (*ShaderWatcher, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsWatch.Add(dir); err != nil {
		fsWatch.Close()
		return nil, err
	}

	w := newShaderWatcher(fsWatch.Close)
	go w.run(fsWatch.Events, fsWatch.Errors)
	w.log.Info("watching shaders", "dir", dir)
	return w, nil
}

func newShaderWatcher(stop func() error) *ShaderWatcher {
	return &ShaderWatcher{
		stop:    stop,
		changes: make(chan string, pending),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
		log:     logging.For("assets"),
	}
}

// Changes delivers program names, e.g. "default" after default.frag was saved.
// It is closed once the watcher stops.
func (w *ShaderWatcher) Changes() <-chan string {
	return w.changes
}

// Close stops the watcher and waits for its goroutine to exit.
func (w *ShaderWatcher) Close() error {
	w.closeOnce.Do(func() { close(w.done) })
	<-w.stopped
	return nil
}

func (w *ShaderWatcher) run(events <-chan fsnotify.Event, errs <-chan error) {
	defer close(w.stopped)
	for {
		select {
		case e, ok := <-events:
			if !ok {
				close(w.changes)
				return
			}
			// editors that save by rename show up as Create
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			name, ok := ProgramName(e.Name)
			if !ok {
				continue
			}
			select {
			case w.changes <- name:
				w.log.Debug("shader changed", "program", name, "path", e.Name)
			default:
				w.log.Warn("dropping shader change, reload queue full", "program", name)
			}

		case err, ok := <-errs:
			if !ok {
				w.log.Warn("shader watcher error channel closed")
				// a nil channel never becomes ready again
				errs = nil
				continue
			}
			w.log.Error("shader watcher", "err", err)

		case <-w.done:
			w.stop()
			close(w.changes)
			return
		}
	}
}

// ProgramName maps a shader file path to the program it belongs to.
func ProgramName(path string) (string, bool) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if ext != ".vert" && ext != ".frag" {
		return "", false
	}
	name := strings.TrimSuffix(base, ext)
	if name == "" {
		return "", false
	}
	return name, true
}

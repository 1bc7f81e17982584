package assets

import "github.com/fsnotify/fsnotify"

// StartWatcher runs a watcher over the given event streams instead of a
// real fsnotify watcher.
func StartWatcher(events <-chan fsnotify.Event, errs <-chan error) *ShaderWatcher {
	w := newShaderWatcher(func() error { return nil })
	go w.run(events, errs)
	return w
}

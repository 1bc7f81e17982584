package main

import (
	"runtime"
	"sync"

	"cubescene/internal/logging"

	"github.com/xlab/closer"
)

func init() {
	// GLFW and OpenGL calls must stay on the main thread
	runtime.LockOSThread()
}

func main() {
	quit := make(chan struct{})
	done := make(chan struct{})
	var quitOnce sync.Once

	// On SIGINT/SIGTERM closer runs this from its own goroutine: ask the
	// render loop to stop, then wait until it has released the GPU resources
	// and the window on the main thread.
	closer.Bind(func() {
		quitOnce.Do(func() { close(quit) })
		<-done
		logging.Logger().Info("bye")
	})

	if err := run(quit); err != nil {
		close(done)
		closer.Fatalln(err)
	}
	close(done)
	closer.Close()
}

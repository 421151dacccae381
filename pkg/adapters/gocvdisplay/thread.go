package gocvdisplay

import (
	"runtime"
	"sync"
)

// thread runs functions one at a time on a single locked OS thread.
// HighGUI backends keep per-thread window state, so every window call
// must come from the same thread.
type thread struct {
	once  sync.Once
	calls chan func()
	done  chan struct{}
	mu    sync.Mutex
	dead  bool
}

func newThread() *thread {
	return &thread{
		calls: make(chan func()),
		done:  make(chan struct{}),
	}
}

func (t *thread) start() {
	t.once.Do(func() {
		go func() {
			runtime.LockOSThread()
			defer runtime.UnlockOSThread()
			defer close(t.done)
			for fn := range t.calls {
				fn()
			}
		}()
	})
}

// run executes fn on the thread and waits for it. It reports false once
// the thread has stopped.
func (t *thread) run(fn func()) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead {
		return false
	}
	t.start()
	finished := make(chan struct{})
	t.calls <- func() {
		defer close(finished)
		fn()
	}
	<-finished
	return true
}

// stop ends the thread after pending calls return.
func (t *thread) stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.dead {
		return
	}
	t.dead = true
	t.start()
	close(t.calls)
	<-t.done
}

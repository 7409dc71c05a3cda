package playback

import (
	"context"
	"sync"
)

// Loop is the single goroutine that owns a Service. Caller commands and
// backend events are applied one at a time, in arrival order.
type Loop struct {
	svc     *Service
	cmds    chan func(*Service)
	done    chan struct{}
	started sync.Once
}

// NewLoop creates a loop for svc. Call Run to start it.
func NewLoop(svc *Service) *Loop {
	return &Loop{
		svc:  svc,
		cmds: make(chan func(*Service)),
		done: make(chan struct{}),
	}
}

// Run processes commands and backend events until ctx is canceled.
// It may be called only once.
func (l *Loop) Run(ctx context.Context) error {
	ran := false
	l.started.Do(func() { ran = true })
	if !ran {
		return errLoopStarted
	}
	defer close(l.done)

	events := l.svc.backend.Events()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.cmds:
			fn(l.svc)
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			l.svc.HandleEvent(ev)
		}
	}
}

// Do runs fn on the loop goroutine and waits until it has been picked up.
// It returns false if the loop has stopped.
func (l *Loop) Do(fn func(*Service)) bool {
	select {
	case l.cmds <- fn:
		return true
	case <-l.done:
		return false
	}
}

// Done is closed when Run returns.
func (l *Loop) Done() <-chan struct{} { return l.done }

// Call runs fn on the loop goroutine and returns its result. ok is false if
// the loop has stopped.
func Call[T any](l *Loop, fn func(*Service) T) (T, bool) {
	res := make(chan T, 1)
	if !l.Do(func(s *Service) { res <- fn(s) }) {
		var zero T
		return zero, false
	}
	// fn runs synchronously once received, so the result is already sent or
	// about to be.
	return <-res, true
}

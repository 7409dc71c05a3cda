package playback

const eventBufferSize = 64

// Subscription delivers events in publish order.
type Subscription struct {
	Events <-chan Event
	Done   <-chan struct{}

	eventsCh chan Event
	doneCh   chan struct{}
}

// newSubscription creates a new subscription with a buffered channel.
func newSubscription() *Subscription {
	s := &Subscription{
		eventsCh: make(chan Event, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.Events = s.eventsCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	close(s.doneCh)
}

// send delivers e without blocking. Events are dropped when the buffer is
// full so a slow subscriber cannot stall the loop.
func (s *Subscription) send(e Event) bool {
	select {
	case s.eventsCh <- e:
		return true
	default:
		return false
	}
}

package eventbus

import (
	"context"
	"sync"

	"pkt.systems/envforge/schema"
	"pkt.systems/pslog"
)

// EventType identifies the event payload.
type EventType string

const (
	// EventOutput carries one line of job output.
	EventOutput EventType = "output"
	// EventJobDone carries the terminal event of a job.
	EventJobDone EventType = "job_done"
	// EventLog carries a leveled console message.
	EventLog EventType = "log"
)

// Event represents a UI-facing event emitted by the core service.
type Event struct {
	Type   EventType
	Output schema.OutputEvent
	Job    schema.JobEvent
	Log    schema.LogEvent
}

// Bus fans events out to subscribers. It implements core.EventSink.
type Bus struct {
	mu    sync.Mutex
	subs  map[*subscriber]struct{}
	log   pslog.Logger
	depth int
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		subs:  make(map[*subscriber]struct{}),
		log:   logger,
		depth: 256,
	}
}

// subscriber decouples publishers from the delivery channel: publishers only
// append to the queue, and a single pump goroutine owns every send on ch and
// its close. Cancelling can therefore never race a publish into a send on a
// closed channel.
type subscriber struct {
	mu    sync.Mutex
	queue []Event
	wake  chan struct{}
	done  chan struct{}
	stop  sync.Once
	ch    chan Event
}

// Subscribe registers a subscriber and returns its channel plus a cancel func.
// The channel is closed once cancel is called and the pump has stopped; cancel
// is safe to call more than once.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	if b == nil {
		return nil, func() {}
	}
	sub := &subscriber{
		wake: make(chan struct{}, 1),
		done: make(chan struct{}),
		ch:   make(chan Event, b.depth),
	}
	b.mu.Lock()
	b.subs[sub] = struct{}{}
	count := len(b.subs)
	b.mu.Unlock()
	go sub.run()
	if b.log != nil {
		b.log.Debug("eventbus subscribe", "subs", count)
	}
	return sub.ch, func() {
		b.mu.Lock()
		delete(b.subs, sub)
		b.mu.Unlock()
		sub.stop.Do(func() { close(sub.done) })
	}
}

// OnOutput publishes an output line.
func (b *Bus) OnOutput(event schema.OutputEvent) {
	b.publish(Event{Type: EventOutput, Output: event})
}

// OnJobDone publishes a job's terminal event.
func (b *Bus) OnJobDone(event schema.JobEvent) {
	b.publish(Event{Type: EventJobDone, Job: event})
}

// OnLog publishes a console message.
func (b *Bus) OnLog(event schema.LogEvent) {
	b.publish(Event{Type: EventLog, Log: event})
}

func (b *Bus) publish(event Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	subs := make([]*subscriber, 0, len(b.subs))
	for sub := range b.subs {
		subs = append(subs, sub)
	}
	b.mu.Unlock()
	dropped := 0
	for _, sub := range subs {
		if !sub.enqueue(event, b.depth) {
			dropped++
		}
	}
	if dropped > 0 && b.log != nil {
		b.log.Trace("eventbus dropped", "count", dropped)
	}
}

// enqueue appends the event to the subscriber's queue. A job's terminal event
// is the one signal correlating a result to its request, so it is always
// queued; output and log events give way once the queue is full.
func (s *subscriber) enqueue(event Event, depth int) bool {
	s.mu.Lock()
	if event.Type != EventJobDone && len(s.queue) >= depth {
		s.mu.Unlock()
		return false
	}
	s.queue = append(s.queue, event)
	s.mu.Unlock()
	select {
	case s.wake <- struct{}{}:
	default:
	}
	return true
}

func (s *subscriber) next() (Event, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return Event{}, false
	}
	event := s.queue[0]
	s.queue = s.queue[1:]
	return event, true
}

// run moves queued events onto the delivery channel in order until cancelled.
func (s *subscriber) run() {
	defer close(s.ch)
	for {
		event, ok := s.next()
		if !ok {
			select {
			case <-s.wake:
				continue
			case <-s.done:
				return
			}
		}
		select {
		case s.ch <- event:
		case <-s.done:
			return
		}
	}
}

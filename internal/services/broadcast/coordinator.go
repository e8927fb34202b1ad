package broadcast

import (
	"errors"
	"log"
	"sync"

	"github.com/tastevin-app/tastevin/internal/models"
)

const (
	// hubQueueSize bounds the per-session event queue; Publish never blocks
	// the mutating call, so a pathologically lagging session drops instead
	hubQueueSize = 256

	// subscriberBuffer is the per-subscriber channel buffer
	subscriberBuffer = 32

	// sinkQueueSize bounds the queue in front of the external sink
	sinkQueueSize = 1024
)

// ErrCoordinatorClosed is returned when subscribing after shutdown
var ErrCoordinatorClosed = errors.New("broadcast coordinator is closed")

// Sink observes every published event, independent of session subscribers.
// Delivery is asynchronous and must tolerate being called from one goroutine.
type Sink interface {
	Deliver(event *models.Event)
}

// Config holds configuration for the broadcast coordinator
type Config struct {
	// Sink optionally receives a copy of every event (nil to disable)
	Sink Sink
}

// Coordinator fans out session events to subscribers. Each session gets its
// own hub goroutine draining an ordered queue, so delivery order within a
// session matches publish order and a slow session never delays another.
type Coordinator struct {
	mu     sync.Mutex
	hubs   map[string]*hub
	closed bool

	sink   Sink
	sinkCh chan *models.Event
	done   chan struct{}
	wg     sync.WaitGroup
}

// Subscription is a live handle on a session's event stream. Events arrives on
// C until Close is called or the coordinator shuts down.
type Subscription struct {
	// C receives the session's events in publish order
	C <-chan *models.Event

	sessionID string
	ch        chan *models.Event
	done      chan struct{}
	once      sync.Once
	coord     *Coordinator
}

type hub struct {
	sessionID string
	events    chan *models.Event
	done      chan struct{}

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

// New creates a broadcast coordinator
func New(cfg *Config) (*Coordinator, error) {
	c := &Coordinator{
		hubs: make(map[string]*hub),
		done: make(chan struct{}),
	}

	if cfg != nil && cfg.Sink != nil {
		c.sink = cfg.Sink
		c.sinkCh = make(chan *models.Event, sinkQueueSize)
		c.wg.Add(1)
		go c.runSink()
	}

	return c, nil
}

// Publish fans an event out to the session's subscribers and the sink.
// It never blocks and never fails; delivery is asynchronous.
func (c *Coordinator) Publish(event *models.Event) {
	if event == nil || event.SessionID == "" {
		return
	}

	c.mu.Lock()
	h := c.hubs[event.SessionID]
	closed := c.closed
	c.mu.Unlock()

	if closed {
		return
	}

	if h != nil {
		select {
		case h.events <- event:
		default:
			log.Printf("broadcast: dropping %s event for session %s: hub queue full", event.Type, event.SessionID)
		}
	}

	if c.sinkCh != nil {
		select {
		case c.sinkCh <- event:
		default:
			log.Printf("broadcast: dropping %s event for session %s: sink queue full", event.Type, event.SessionID)
		}
	}
}

// Subscribe registers a new subscriber for a session's events
func (c *Coordinator) Subscribe(sessionID string) (*Subscription, error) {
	if sessionID == "" {
		return nil, errors.New("session ID cannot be empty")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil, ErrCoordinatorClosed
	}

	h := c.hubs[sessionID]
	if h == nil {
		h = &hub{
			sessionID: sessionID,
			events:    make(chan *models.Event, hubQueueSize),
			done:      make(chan struct{}),
			subs:      make(map[*Subscription]struct{}),
		}
		c.hubs[sessionID] = h
		c.wg.Add(1)
		go c.runHub(h)
	}

	ch := make(chan *models.Event, subscriberBuffer)
	sub := &Subscription{
		C:         ch,
		sessionID: sessionID,
		ch:        ch,
		done:      make(chan struct{}),
		coord:     c,
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	return sub, nil
}

// Unsubscribe stops delivery to the subscription immediately and permanently.
// The last subscriber leaving tears the session's hub down, so sustained
// subscribe/unsubscribe churn holds memory steady.
func (c *Coordinator) Unsubscribe(sub *Subscription) {
	if sub == nil {
		return
	}

	sub.once.Do(func() {
		close(sub.done)

		c.mu.Lock()
		h := c.hubs[sub.sessionID]
		if h != nil {
			h.mu.Lock()
			delete(h.subs, sub)
			empty := len(h.subs) == 0
			h.mu.Unlock()

			if empty {
				delete(c.hubs, sub.sessionID)
				close(h.done)
			}
		}
		c.mu.Unlock()
	})
}

// Close stops delivery everywhere. All subscriptions stop receiving; further
// subscribes fail with ErrCoordinatorClosed.
func (c *Coordinator) Close() {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	c.closed = true
	for id, h := range c.hubs {
		delete(c.hubs, id)
		close(h.done)
	}
	c.mu.Unlock()

	close(c.done)
	c.wg.Wait()
}

// Close releases the subscription, equivalent to Coordinator.Unsubscribe.
func (s *Subscription) Close() {
	s.coord.Unsubscribe(s)
}

// SubscriberCount reports the number of live subscribers for a session
func (c *Coordinator) SubscriberCount(sessionID string) int {
	c.mu.Lock()
	h := c.hubs[sessionID]
	c.mu.Unlock()

	if h == nil {
		return 0
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

func (c *Coordinator) runHub(h *hub) {
	defer c.wg.Done()

	for {
		select {
		case event := <-h.events:
			h.deliver(event)
		case <-h.done:
			return
		}
	}
}

func (h *hub) deliver(event *models.Event) {
	h.mu.Lock()
	subs := make([]*Subscription, 0, len(h.subs))
	for sub := range h.subs {
		subs = append(subs, sub)
	}
	h.mu.Unlock()

	for _, sub := range subs {
		// Blocking send raced against the subscription's done channel, so a
		// closed subscription can never wedge the hub
		select {
		case sub.ch <- event:
		case <-sub.done:
		}
	}
}

func (c *Coordinator) runSink() {
	defer c.wg.Done()

	for {
		select {
		case event := <-c.sinkCh:
			c.sink.Deliver(event)
		case <-c.done:
			return
		}
	}
}

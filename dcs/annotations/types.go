// Package annotations provides a low-overhead event system for tracing how
// a DCS tree is grounded: which nodes were resolved, which relations fired
// and how large every intermediate denotation was.
package annotations

import (
	"sync"
	"time"
)

// Event name constants following hierarchical naming pattern
const (
	// Grounding lifecycle
	GroundBegin    = "ground/begin"
	GroundComplete = "ground/complete"

	// Node resolution
	NodeBase     = "node/base"
	NodeGrounded = "node/grounded"

	// Relation operations
	RelationJoin      = "relation/join"
	RelationAggregate = "relation/aggregate"
	RelationMark      = "relation/mark"
	RelationExecute   = "relation/execute"

	// Errors
	ErrorGrounding = "error/grounding"
)

// Event represents a single annotation event during grounding.
type Event struct {
	Name    string                 // Event name using hierarchical constants above
	Start   time.Time              // Start timestamp
	End     time.Time              // End timestamp
	Latency time.Duration          // Duration (End - Start)
	Data    map[string]interface{} // Additional event-specific data
}

// Handler processes annotation events as they occur.
type Handler func(event Event)

// Collector accumulates events during grounding.
type Collector struct {
	enabled bool
	handler Handler
	events  []Event
	mu      sync.Mutex
}

// NewCollector creates a new annotation collector. A nil handler still
// records events but nothing is printed.
func NewCollector(handler Handler) *Collector {
	return &Collector{
		enabled: true,
		handler: handler,
		events:  make([]Event, 0, 64),
	}
}

// Add records a new event.
func (c *Collector) Add(event Event) {
	if c == nil || !c.enabled {
		return
	}

	c.mu.Lock()
	c.events = append(c.events, event)
	c.mu.Unlock()

	// Call handler outside the lock to avoid deadlocks
	if c.handler != nil {
		c.handler(event)
	}
}

// AddTiming records an event that started at start and ends now.
func (c *Collector) AddTiming(name string, start time.Time, data map[string]interface{}) {
	if c == nil || !c.enabled {
		return
	}

	end := time.Now()
	c.Add(Event{
		Name:    name,
		Start:   start,
		End:     end,
		Latency: end.Sub(start),
		Data:    data,
	})
}

// Events returns all collected events.
func (c *Collector) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	eventsCopy := make([]Event, len(c.events))
	copy(eventsCopy, c.events)
	return eventsCopy
}

// Named returns the collected events with the given name, in order.
func (c *Collector) Named(name string) []Event {
	var out []Event
	for _, e := range c.Events() {
		if e.Name == name {
			out = append(out, e)
		}
	}
	return out
}

// Reset clears the collector for reuse.
func (c *Collector) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = c.events[:0]
}

// Tee fans one event out to several handlers.
func Tee(handlers ...Handler) Handler {
	return func(event Event) {
		for _, h := range handlers {
			if h != nil {
				h(event)
			}
		}
	}
}

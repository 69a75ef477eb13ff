// Package notify fans generation progress events out to per-job
// subscribers.
package notify

import (
	"sync"
	"time"
)

const (
	finishedJobRetention = 30 * time.Second
	channelBuffer        = 32
)

// Event is one status update for a job.
type Event struct {
	Type     string    `json:"type"`
	JobID    string    `json:"job_id"`
	Status   string    `json:"status"`
	Progress int       `json:"progress"`
	Stage    string    `json:"stage"`
	Error    string    `json:"error,omitempty"`
	At       time.Time `json:"at"`
}

const (
	EventStatus    = "status"
	EventCompleted = "completed"
	EventError     = "error"
)

// Broker manages per-job event channels. Delivery is best-effort: with no
// channel or a full buffer the event is dropped, never blocking the
// pipeline.
type Broker struct {
	mu     sync.RWMutex
	events map[string]chan Event
}

func NewBroker() *Broker {
	return &Broker{events: make(map[string]chan Event)}
}

// Allocate registers an event channel for a job. Called once at submit.
func (b *Broker) Allocate(jobID string) {
	b.mu.Lock()
	b.events[jobID] = make(chan Event, channelBuffer)
	b.mu.Unlock()
}

// Publish delivers an event to the job's channel if one exists and has
// buffer space.
func (b *Broker) Publish(jobID string, ev Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ch, ok := b.events[jobID]
	if !ok {
		return
	}
	select {
	case ch <- ev:
	default:
	}
}

// Subscribe attaches to a job's event stream. The subscriber gets a fresh
// channel carrying the snapshot followed by events published from this
// point on; anything buffered before the subscription is discarded. A
// re-subscribe closes the prior subscriber's channel (newest wins). ok is
// false once the job's retention window has passed.
func (b *Broker) Subscribe(jobID string, snapshot Event) (<-chan Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	old, ok := b.events[jobID]
	if !ok {
		return nil, false
	}
	close(old)
	ch := make(chan Event, channelBuffer)
	ch <- snapshot
	b.events[jobID] = ch
	return ch, true
}

// Unsubscribe stops event forwarding for a job. The job itself keeps
// running; later Publish calls become no-ops.
func (b *Broker) Unsubscribe(jobID string) {
	b.mu.Lock()
	if ch, ok := b.events[jobID]; ok {
		delete(b.events, jobID)
		close(ch)
	}
	b.mu.Unlock()
}

// Finish publishes the final event, then closes and removes the job's
// channel after a retention period so late subscribers still catch the
// outcome.
func (b *Broker) Finish(jobID string, final Event) {
	b.Publish(jobID, final)
	time.AfterFunc(finishedJobRetention, func() {
		b.mu.Lock()
		if ch, ok := b.events[jobID]; ok {
			delete(b.events, jobID)
			close(ch)
		}
		b.mu.Unlock()
	})
}

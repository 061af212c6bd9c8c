package notify

import (
	"sync"
	"time"
)

// Kind classifies a banner message.
type Kind string

const (
	KindError   Kind = "error"
	KindSuccess Kind = "success"
	KindInfo    Kind = "info"
)

// Message is one transient banner. It stays visible for its TTL and is
// dropped on the first read after that.
type Message struct {
	Kind     Kind
	Text     string
	postedAt time.Time
	ttl      time.Duration
}

// Center collects transient messages the way the web client stacked toast
// banners: push on mutation outcomes, auto-dismiss after a fixed delay.
type Center struct {
	mu       sync.Mutex
	now      func() time.Time
	messages []Message
}

// NewCenter builds a message center on the wall clock.
func NewCenter() *Center {
	return NewCenterWithClock(time.Now)
}

// NewCenterWithClock injects the clock, for tests.
func NewCenterWithClock(now func() time.Time) *Center {
	return &Center{now: now}
}

// Post adds a message that expires after ttl. A non-positive ttl means the
// message never auto-dismisses and survives until Dismiss.
func (c *Center) Post(kind Kind, text string, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, Message{
		Kind:     kind,
		Text:     text,
		postedAt: c.now(),
		ttl:      ttl,
	})
}

// Active returns the messages still within their TTL, oldest first, and
// drops the expired ones.
func (c *Center) Active() []Message {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	kept := c.messages[:0]
	for _, m := range c.messages {
		if m.ttl <= 0 || now.Sub(m.postedAt) < m.ttl {
			kept = append(kept, m)
		}
	}
	c.messages = kept

	out := make([]Message, len(kept))
	copy(out, kept)
	return out
}

// Dismiss drops every pending message.
func (c *Center) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = nil
}

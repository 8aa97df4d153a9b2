// Package notify holds transient user-facing notifications: non-blocking
// toasts with a severity and a message. Nothing here retries or prompts; the
// user resubmits manually.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Severity categorizes a notification.
type Severity string

const (
	Success Severity = "success"
	Info    Severity = "info"
	Error   Severity = "error"
)

// keep bounds the in-memory backlog.
const keep = 50

// Notification is a single transient message.
type Notification struct {
	ID       string    `json:"id"`
	Severity Severity  `json:"severity"`
	Summary  string    `json:"summary"`
	Detail   string    `json:"detail,omitempty"`
	Time     time.Time `json:"time"`
}

// Center collects notifications and fans them out to subscribers.
type Center struct {
	mu      sync.Mutex
	entries []Notification
	subs    map[int]func(Notification)
	nextSub int
}

// NewCenter creates an empty Center.
func NewCenter() *Center {
	return &Center{subs: make(map[int]func(Notification))}
}

// Push records a notification and delivers it to all subscribers.
func (c *Center) Push(sev Severity, summary, detail string) Notification {
	n := Notification{
		ID:       uuid.New().String(),
		Severity: sev,
		Summary:  summary,
		Detail:   detail,
		Time:     time.Now(),
	}

	c.mu.Lock()
	c.entries = append(c.entries, n)
	if len(c.entries) > keep {
		c.entries = c.entries[len(c.entries)-keep:]
	}
	fns := make([]func(Notification), 0, len(c.subs))
	for _, fn := range c.subs {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(n)
	}
	return n
}

// Recent returns up to n notifications, newest first.
func (c *Center) Recent(n int) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	if n <= 0 || n > len(c.entries) {
		n = len(c.entries)
	}
	out := make([]Notification, 0, n)
	for i := len(c.entries) - 1; i >= len(c.entries)-n; i-- {
		out = append(out, c.entries[i])
	}
	return out
}

// Subscribe registers fn for future notifications. The returned function
// removes the subscription.
func (c *Center) Subscribe(fn func(Notification)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextSub
	c.nextSub++
	c.subs[id] = fn
	c.mu.Unlock()

	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}

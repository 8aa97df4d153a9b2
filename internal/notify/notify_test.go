package notify

import (
	"fmt"
	"testing"
)

func TestPushAndRecent(t *testing.T) {
	c := NewCenter()
	c.Push(Success, "Logged in", "")
	c.Push(Error, "Search failed", "timeout")

	recent := c.Recent(10)
	if len(recent) != 2 {
		t.Fatalf("expected 2 notifications, got %d", len(recent))
	}
	if recent[0].Summary != "Search failed" {
		t.Errorf("newest first: got %q", recent[0].Summary)
	}
	if recent[0].ID == "" || recent[0].ID == recent[1].ID {
		t.Error("notifications must carry distinct IDs")
	}
}

func TestRecentLimit(t *testing.T) {
	c := NewCenter()
	for i := 0; i < 5; i++ {
		c.Push(Info, fmt.Sprintf("n%d", i), "")
	}
	if got := len(c.Recent(3)); got != 3 {
		t.Errorf("Recent(3) returned %d entries", got)
	}
	if got := c.Recent(3)[0].Summary; got != "n4" {
		t.Errorf("newest first: got %q", got)
	}
}

func TestBacklogBounded(t *testing.T) {
	c := NewCenter()
	for i := 0; i < keep+10; i++ {
		c.Push(Info, fmt.Sprintf("n%d", i), "")
	}
	if got := len(c.Recent(0)); got != keep {
		t.Errorf("backlog should cap at %d, got %d", keep, got)
	}
}

func TestSubscribe(t *testing.T) {
	c := NewCenter()
	var seen []string
	unsub := c.Subscribe(func(n Notification) { seen = append(seen, n.Summary) })

	c.Push(Success, "first", "")
	unsub()
	c.Push(Success, "second", "")

	if len(seen) != 1 || seen[0] != "first" {
		t.Errorf("subscriber deliveries: got %v", seen)
	}
}

package history

import (
	"context"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewStore(db)
}

func TestRecordAndList(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, Entry{Action: ActionLogin, Actor: "a"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if err := s.Record(ctx, Entry{Action: ActionSearch, Actor: "a", Subject: "catan"}); err != nil {
		t.Fatalf("Record failed: %v", err)
	}

	entries, err := s.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	// Newest first.
	if entries[0].Action != ActionSearch {
		t.Errorf("order: got %q first", entries[0].Action)
	}
	if entries[0].Subject != "catan" {
		t.Errorf("subject: got %q", entries[0].Subject)
	}
	if entries[0].ID == "" {
		t.Error("entries must get generated IDs")
	}
	if entries[0].Timestamp.IsZero() {
		t.Error("entries must carry timestamps")
	}
}

func TestListFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Record(ctx, Entry{Action: ActionLogin, Actor: "a"})
	s.Record(ctx, Entry{Action: ActionSearch, Actor: "a", Subject: "catan"})
	s.Record(ctx, Entry{Action: ActionSearch, Actor: "b", Subject: "azul"})

	byAction, err := s.List(ctx, Filter{Action: ActionSearch})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byAction) != 2 {
		t.Errorf("action filter: expected 2, got %d", len(byAction))
	}

	byActor, err := s.List(ctx, Filter{Actor: "b"})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(byActor) != 1 || byActor[0].Subject != "azul" {
		t.Errorf("actor filter: got %+v", byActor)
	}

	limited, err := s.List(ctx, Filter{Limit: 1})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(limited) != 1 {
		t.Errorf("limit: expected 1, got %d", len(limited))
	}
}

func TestPrune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	s.Record(ctx, Entry{Action: ActionLogin, Actor: "a"})
	s.Record(ctx, Entry{Action: ActionLogout, Actor: "a"})

	// Nothing is older than an hour ago.
	n, err := s.Prune(ctx, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 0 {
		t.Errorf("expected 0 pruned, got %d", n)
	}

	// Everything is older than an hour from now.
	n, err = s.Prune(ctx, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("Prune failed: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 pruned, got %d", n)
	}

	entries, err := s.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty log after prune, got %d entries", len(entries))
	}
}

package history

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Action identifies what kind of activity an entry records.
type Action string

const (
	ActionLogin          Action = "login"
	ActionLogout         Action = "logout"
	ActionRegister       Action = "register"
	ActionPasswordChange Action = "password_change"
	ActionSearch         Action = "search"
	ActionGameView       Action = "game_view"
	ActionWishlistAdd    Action = "wishlist_add"
	ActionWishlistRemove Action = "wishlist_remove"
)

// Entry is one recorded activity.
type Entry struct {
	ID        string
	Timestamp time.Time
	Action    Action
	Actor     string // username at the time of the action, "" when anonymous
	Subject   string // query text, game id, etc.
	Detail    string
}

// Store provides access to the activity log.
type Store struct {
	db *DB
}

// NewStore creates a Store backed by the given database.
func NewStore(db *DB) *Store {
	return &Store{db: db}
}

// Record inserts a new activity entry. If entry.ID is empty a UUID is
// generated.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activity_entries (id, action, actor, subject, detail)
		VALUES (?, ?, ?, ?, ?)`,
		entry.ID,
		string(entry.Action),
		entry.Actor,
		entry.Subject,
		entry.Detail,
	)
	if err != nil {
		return fmt.Errorf("inserting activity entry: %w", err)
	}
	return nil
}

// Filter controls which entries List returns.
type Filter struct {
	Action Action
	Actor  string
	Since  *time.Time
	Limit  int
}

// List returns activity entries matching the filter, newest first.
func (s *Store) List(ctx context.Context, filter Filter) ([]Entry, error) {
	var (
		clauses []string
		args    []any
	)

	if filter.Action != "" {
		clauses = append(clauses, "action = ?")
		args = append(args, string(filter.Action))
	}
	if filter.Actor != "" {
		clauses = append(clauses, "actor = ?")
		args = append(args, filter.Actor)
	}
	if filter.Since != nil {
		clauses = append(clauses, "timestamp >= ?")
		args = append(args, filter.Since.UTC().Format(time.DateTime))
	}

	query := "SELECT id, timestamp, action, actor, subject, detail FROM activity_entries"
	if len(clauses) > 0 {
		query += " WHERE " + strings.Join(clauses, " AND ")
	}
	query += " ORDER BY timestamp DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying activity entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e      Entry
			action string
			ts     string
		)
		if err := rows.Scan(&e.ID, &ts, &action, &e.Actor, &e.Subject, &e.Detail); err != nil {
			return nil, err
		}
		e.Action = Action(action)
		if t, parseErr := time.Parse(time.DateTime, ts); parseErr == nil {
			e.Timestamp = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Prune removes all entries older than the given time. Returns the number of
// deleted rows.
func (s *Store) Prune(ctx context.Context, before time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM activity_entries WHERE timestamp < ?",
		before.UTC().Format(time.DateTime),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning activity entries: %w", err)
	}
	return res.RowsAffected()
}

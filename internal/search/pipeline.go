// Package search turns raw, high-frequency text input into a debounced,
// deduplicated sequence of catalog search requests. Only the most recently
// dispatched request may update the visible state: earlier requests that
// resolve late are discarded silently.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
)

const (
	// DefaultDebounce is the input-silence window before a query is sent.
	DefaultDebounce = 300 * time.Millisecond
	// DefaultPageSize caps the dropdown result list.
	DefaultPageSize = 5
)

// Searcher is the catalog search dependency. *api.Client satisfies it.
type Searcher interface {
	SearchGames(ctx context.Context, query string, page, size int) (*api.GameSearchPage, error)
}

// State is the visible output of the pipeline: the result list plus the
// loading and dropdown-visibility flags.
type State struct {
	Query   string // last dispatched normalized query
	Results []api.BoardGame
	Loading bool
	Open    bool // dropdown visibility
}

// Config tunes a Pipeline. Zero values fall back to the defaults above.
type Config struct {
	Debounce time.Duration
	PageSize int
	// OnChange is invoked after every state transition, in order, with the
	// pipeline's internal lock held. It must not call back into the
	// pipeline.
	OnChange func(State)
	Logger   *zap.Logger
}

// Pipeline is a per-view search state machine. It is safe for concurrent
// use; all mutations are serialized on an internal lock.
type Pipeline struct {
	searcher Searcher
	debounce time.Duration
	pageSize int
	onChange func(State)
	log      *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	mu             sync.Mutex
	timer          *time.Timer
	lastDispatched string
	gen            uint64 // bumped on every dispatch and reset; stale responses compare against it
	state          State
	closed         bool
}

// New creates a Pipeline over the given searcher.
func New(searcher Searcher, cfg Config) *Pipeline {
	if cfg.Debounce <= 0 {
		cfg.Debounce = DefaultDebounce
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = DefaultPageSize
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		searcher: searcher,
		debounce: cfg.Debounce,
		pageSize: cfg.PageSize,
		onChange: cfg.OnChange,
		log:      cfg.Logger,
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Input feeds one raw text value (one keystroke/edit) into the pipeline.
// Whitespace is trimmed; an empty result is a clear signal and resets the
// state immediately, superseding any in-flight request.
func (p *Pipeline) Input(text string) {
	q := strings.TrimSpace(text)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}

	if q == "" {
		p.resetLocked()
		return
	}

	p.timer = time.AfterFunc(p.debounce, func() { p.dispatch(q) })
}

// Clear resets the result set, loading flag and dropdown immediately and
// invalidates any in-flight request.
func (p *Pipeline) Clear() {
	p.Input("")
}

// Snapshot returns the current visible state.
func (p *Pipeline) Snapshot() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Close releases the debounce timer and aborts any in-flight request. No
// state mutation or callback happens after Close returns.
func (p *Pipeline) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
	p.gen++
	p.mu.Unlock()

	p.cancel()
}

// resetLocked clears the visible state and marks every outstanding request
// stale. The empty query also resets duplicate detection, so retyping the
// previous query after a clear searches again.
func (p *Pipeline) resetLocked() {
	p.gen++
	p.lastDispatched = ""
	p.state = State{}
	p.notifyLocked()
}

// dispatch runs when the debounce window elapses for a non-empty query.
func (p *Pipeline) dispatch(query string) {
	p.mu.Lock()
	if p.closed || query == p.lastDispatched {
		p.mu.Unlock()
		return
	}
	p.lastDispatched = query
	p.gen++
	gen := p.gen
	p.state.Query = query
	p.state.Loading = true
	p.notifyLocked()
	p.mu.Unlock()

	go func() {
		page, err := p.searcher.SearchGames(p.ctx, query, 0, p.pageSize)

		p.mu.Lock()
		defer p.mu.Unlock()
		if p.closed || gen != p.gen {
			// A newer request or a clear superseded this one.
			return
		}
		if err != nil {
			// A failed search means "no results"; it is logged, never
			// surfaced.
			p.log.Warn("catalog search failed", zap.String("query", query), zap.Error(err))
			p.state = State{Query: query}
		} else {
			p.state = State{Query: query, Results: page.Content, Open: true}
		}
		p.notifyLocked()
	}()
}

func (p *Pipeline) notifyLocked() {
	if p.onChange != nil {
		p.onChange(p.state)
	}
}

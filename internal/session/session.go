// Package session is the single source of truth for the client's
// authentication state. A Manager holds the current token and user record,
// persists them across runs, and notifies subscribers (navigation UI, route
// guards) on every transition.
package session

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
)

// Snapshot is a point-in-time read of the session state.
type Snapshot struct {
	LoggedIn bool
	User     *api.AuthResponse
}

// Manager owns the session state. All mutations go through it; consumers
// read via Snapshot or Subscribe. loggedIn is true iff a token is held.
type Manager struct {
	api   *api.Client
	store *Store
	log   *zap.Logger

	mu       sync.RWMutex
	loggedIn bool
	user     *api.AuthResponse
	token    string
	subs     map[int]func(Snapshot)
	nextSub  int
}

// NewManager creates a Manager over the given API client and store. A nil
// logger disables logging. Call Initialize before first use.
func NewManager(client *api.Client, store *Store, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		api:   client,
		store: store,
		log:   logger,
		subs:  make(map[int]func(Snapshot)),
	}
}

// Initialize restores the session from the store. A missing, partial or
// unparseable record leaves the manager anonymous and wipes the stored
// state. No network call is made.
func (m *Manager) Initialize() {
	rec, err := m.store.Load()
	if err != nil {
		m.log.Warn("discarding unreadable session file", zap.Error(err))
		m.clearState()
		return
	}
	if rec.AccessToken == "" || rec.User == nil {
		if rec.AccessToken != "" || rec.User != nil {
			// Half a session is no session.
			m.clearState()
		}
		return
	}

	m.mu.Lock()
	m.loggedIn = true
	m.user = rec.User
	m.token = rec.AccessToken
	m.mu.Unlock()
	m.notify()
}

// Snapshot returns the current session state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{LoggedIn: m.loggedIn, User: m.user}
}

// Token returns the current bearer token, or "" when anonymous.
func (m *Manager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token
}

// Subscribe registers fn to be called after every state transition. The
// returned function removes the subscription.
func (m *Manager) Subscribe(fn func(Snapshot)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextSub
	m.nextSub++
	m.subs[id] = fn
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		delete(m.subs, id)
		m.mu.Unlock()
	}
}

// Login authenticates against the remote API. On success the token and user
// record are persisted and the manager transitions to authenticated. Any
// failure leaves the state untouched.
func (m *Manager) Login(ctx context.Context, identity, password string) (*api.AuthResponse, error) {
	resp, err := m.api.Login(ctx, identity, password)
	if err != nil {
		return nil, err
	}

	if err := m.store.Save(&Record{AccessToken: resp.Token, User: resp}); err != nil {
		m.log.Warn("persisting session failed", zap.Error(err))
	}

	m.mu.Lock()
	m.loggedIn = true
	m.user = resp
	m.token = resp.Token
	m.mu.Unlock()
	m.notify()

	m.log.Info("logged in", zap.String("username", resp.Username))
	return resp, nil
}

// Logout signs the user out. Local state is cleared unconditionally; the
// remote call only happens when a token is held, and its failure is reported
// to the caller after the local sign-out has already taken effect.
func (m *Manager) Logout(ctx context.Context) (*api.MessageResponse, error) {
	token := m.Token()
	if token == "" {
		m.clearState()
		return &api.MessageResponse{Message: "Token not found"}, nil
	}

	resp, err := m.api.Logout(ctx, token)
	m.clearState()
	if err != nil {
		m.log.Warn("remote logout failed, local session cleared anyway", zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// Register creates a new account. The session state is untouched: the
// account must verify its email and then log in.
func (m *Manager) Register(ctx context.Context, email, username, password string) (*api.RegisterResponse, error) {
	return m.api.Register(ctx, email, username, password)
}

// ChangePassword changes the authenticated user's password. The server
// invalidates the session on success, so local state is cleared and the user
// has to log in again.
func (m *Manager) ChangePassword(ctx context.Context, currentPassword, newPassword string) (*api.MessageResponse, error) {
	token := m.Token()
	if token == "" {
		return nil, api.ErrNotAuthenticated
	}

	resp, err := m.api.ChangePassword(ctx, token, currentPassword, newPassword)
	if err != nil {
		return nil, err
	}
	m.clearState()
	return resp, nil
}

// SendPasswordResetEmail triggers the forgot-password email. Stateless.
func (m *Manager) SendPasswordResetEmail(ctx context.Context, email string) (*api.MessageResponse, error) {
	return m.api.ForgotPassword(ctx, email)
}

// ResetPassword redeems a password reset token. Stateless.
func (m *Manager) ResetPassword(ctx context.Context, token, newPassword string) (*api.MessageResponse, error) {
	return m.api.ResetPassword(ctx, token, newPassword)
}

// VerifyEmail redeems an email verification token. Stateless.
func (m *Manager) VerifyEmail(ctx context.Context, token string) (*api.MessageResponse, error) {
	return m.api.VerifyEmail(ctx, token)
}

// Invalidate clears the session when a protected call failed because the
// stored token is no longer accepted. Other failures are ignored.
func (m *Manager) Invalidate(err error) {
	if api.CategoryOf(err) != api.Unauthenticated {
		return
	}
	if m.Token() == "" {
		return
	}
	m.log.Info("stored token rejected by server, signing out")
	m.clearState()
}

// clearState wipes the persisted record and transitions to anonymous.
func (m *Manager) clearState() {
	if err := m.store.Clear(); err != nil {
		m.log.Warn("clearing session file failed", zap.Error(err))
	}

	m.mu.Lock()
	m.loggedIn = false
	m.user = nil
	m.token = ""
	m.mu.Unlock()
	m.notify()
}

// notify delivers the current snapshot to all subscribers. Callbacks run
// outside the state lock and must not assume the snapshot is still current.
func (m *Manager) notify() {
	m.mu.RLock()
	snap := Snapshot{LoggedIn: m.loggedIn, User: m.user}
	fns := make([]func(Snapshot), 0, len(m.subs))
	for _, fn := range m.subs {
		fns = append(fns, fn)
	}
	m.mu.RUnlock()

	for _, fn := range fns {
		fn(snap)
	}
}

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/lovelace-project/lovelace-cli/internal/api"
)

func newTestManager(t *testing.T, handler http.Handler) (*Manager, string) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	path := filepath.Join(t.TempDir(), "session.json")
	m := NewManager(api.New(srv.URL, nil), NewStore(path), nil)
	return m, path
}

func loginHandler(token string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"` + token + `","type":"Bearer","username":"a","email":"a@b.com","roles":["USER"]}`))
		case "/auth/logout":
			w.Write([]byte(`{"message":"ok"}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestLoginTransitionsToAuthenticated(t *testing.T) {
	m, path := newTestManager(t, loginHandler("t"))
	m.Initialize()

	resp, err := m.Login(context.Background(), "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "t" {
		t.Errorf("token: got %q, want %q", resp.Token, "t")
	}

	snap := m.Snapshot()
	if !snap.LoggedIn {
		t.Error("expected logged-in state after login")
	}
	if snap.User == nil || snap.User.Username != "a" {
		t.Errorf("user: got %+v", snap.User)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading session file: %v", err)
	}
	if !strings.Contains(string(data), `"t"`) {
		t.Errorf("session file should contain the token, got: %s", data)
	}
}

func TestLoginFailureLeavesStateUnchanged(t *testing.T) {
	m, path := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	m.Initialize()

	if _, err := m.Login(context.Background(), "a@b.com", "wrong"); err == nil {
		t.Fatal("expected login to fail")
	}
	if m.Snapshot().LoggedIn {
		t.Error("failed login must not change state")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("failed login must not persist a session")
	}
}

func TestLoginThenImmediateLogout(t *testing.T) {
	m, path := newTestManager(t, loginHandler("t"))
	m.Initialize()

	if _, err := m.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}

	if m.Snapshot().LoggedIn {
		t.Error("expected anonymous state after logout")
	}
	if m.Token() != "" {
		t.Error("token must be empty after logout")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file must be removed after logout")
	}
}

func TestLogoutWithoutToken(t *testing.T) {
	calls := 0
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	m.Initialize()

	resp, err := m.Logout(context.Background())
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if resp.Message != "Token not found" {
		t.Errorf("message: got %q", resp.Message)
	}
	if calls != 0 {
		t.Errorf("expected no HTTP calls, got %d", calls)
	}
}

func TestLogoutServerErrorStillClearsSession(t *testing.T) {
	m, path := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/auth/login" {
			w.Write([]byte(`{"token":"t","type":"Bearer","username":"a","email":"a@b.com","roles":[]}`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message":"boom"}`))
	}))
	m.Initialize()

	if _, err := m.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if _, err := m.Logout(context.Background()); err == nil {
		t.Fatal("expected logout error to propagate")
	}

	if m.Snapshot().LoggedIn {
		t.Error("local session must be cleared even when remote logout fails")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("session file must be removed even when remote logout fails")
	}
}

func TestChangePasswordSuccessClearsSession(t *testing.T) {
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			w.Write([]byte(`{"token":"t","type":"Bearer","username":"a","email":"a@b.com","roles":[]}`))
		case "/auth/change-password":
			w.Write([]byte(`{"message":"password changed"}`))
		}
	}))
	m.Initialize()

	if _, err := m.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	resp, err := m.ChangePassword(context.Background(), "secret123", "newsecret1")
	if err != nil {
		t.Fatalf("ChangePassword failed: %v", err)
	}
	if resp.Message != "password changed" {
		t.Errorf("message: got %q", resp.Message)
	}
	if m.Snapshot().LoggedIn {
		t.Error("session must be cleared after a successful password change")
	}
}

func TestChangePasswordWithoutToken(t *testing.T) {
	calls := 0
	m, _ := newTestManager(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	m.Initialize()

	_, err := m.ChangePassword(context.Background(), "a", "b")
	if err == nil {
		t.Fatal("expected error")
	}
	if api.CategoryOf(err) != api.Unauthenticated {
		t.Errorf("category: got %q", api.CategoryOf(err))
	}
	if calls != 0 {
		t.Errorf("expected no HTTP calls, got %d", calls)
	}
}

func TestInitializeFromStoredSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	err := store.Save(&Record{
		AccessToken: "stored-token",
		User:        &api.AuthResponse{Token: "stored-token", Username: "a", Email: "a@b.com"},
	})
	if err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	m := NewManager(api.New("http://127.0.0.1:0", nil), store, nil)
	m.Initialize()

	snap := m.Snapshot()
	if !snap.LoggedIn {
		t.Error("expected logged-in state from stored session")
	}
	if m.Token() != "stored-token" {
		t.Errorf("token: got %q", m.Token())
	}
}

func TestInitializeCorruptFileClearsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0600); err != nil {
		t.Fatal(err)
	}

	m := NewManager(api.New("http://127.0.0.1:0", nil), NewStore(path), nil)
	m.Initialize()

	if m.Snapshot().LoggedIn {
		t.Error("corrupt session file must leave the manager anonymous")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("corrupt session file must be removed")
	}
}

func TestInitializePartialRecordClearsState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewStore(path)
	if err := store.Save(&Record{AccessToken: "orphan-token"}); err != nil {
		t.Fatal(err)
	}

	m := NewManager(api.New("http://127.0.0.1:0", nil), store, nil)
	m.Initialize()

	if m.Snapshot().LoggedIn {
		t.Error("token without user record must not count as a session")
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("partial session file must be removed")
	}
}

func TestSubscribeAndUnsubscribe(t *testing.T) {
	m, _ := newTestManager(t, loginHandler("t"))
	m.Initialize()

	var seen []bool
	unsub := m.Subscribe(func(s Snapshot) { seen = append(seen, s.LoggedIn) })

	if _, err := m.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if len(seen) != 1 || !seen[0] {
		t.Fatalf("expected one logged-in notification, got %v", seen)
	}

	unsub()
	if _, err := m.Logout(context.Background()); err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if len(seen) != 1 {
		t.Errorf("expected no notifications after unsubscribe, got %v", seen)
	}
}

func TestInvalidateOnRejectedToken(t *testing.T) {
	m, _ := newTestManager(t, loginHandler("t"))
	m.Initialize()

	if _, err := m.Login(context.Background(), "a@b.com", "secret123"); err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	m.Invalidate(&api.Error{Category: api.Unauthenticated, Status: 401, Message: "Token expired"})
	if m.Snapshot().LoggedIn {
		t.Error("rejected token must clear the session")
	}
}

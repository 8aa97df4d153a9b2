package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type: got %q", ct)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"t","type":"Bearer","username":"a","email":"a@b.com","roles":["USER"]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Login(context.Background(), "a@b.com", "secret123")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	if resp.Token != "t" {
		t.Errorf("token: got %q, want %q", resp.Token, "t")
	}
	if resp.Username != "a" {
		t.Errorf("username: got %q, want %q", resp.Username, "a")
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Invalid credentials"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "a@b.com", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := CategoryOf(err); got != ServerRejected {
		t.Errorf("category: got %q, want %q", got, ServerRejected)
	}
	apiErr := err.(*Error)
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("message: got %q", apiErr.Message)
	}
}

func TestLoginEmailUnverified(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"message":"Email not verified"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.Login(context.Background(), "a@b.com", "secret123")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := CategoryOf(err); got != EmailUnverified {
		t.Errorf("category: got %q, want %q", got, EmailUnverified)
	}
}

func TestLogoutSendsBearerToken(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"message":"logged out"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	resp, err := c.Logout(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("Logout failed: %v", err)
	}
	if gotAuth != "Bearer tok-1" {
		t.Errorf("authorization header: got %q", gotAuth)
	}
	if resp.Message != "logged out" {
		t.Errorf("message: got %q", resp.Message)
	}
}

func TestSearchGames(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/games/search" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		q := r.URL.Query()
		if q.Get("query") != "catan" || q.Get("page") != "0" || q.Get("size") != "5" {
			t.Errorf("query params: got %v", q)
		}
		w.Write([]byte(`{"content":[{"id":"1","name":"Catan","yearPublished":1995,"isExpansion":false}],"totalElements":1,"totalPages":1,"number":0,"size":5}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	page, err := c.SearchGames(context.Background(), "catan", 0, 5)
	if err != nil {
		t.Fatalf("SearchGames failed: %v", err)
	}
	if len(page.Content) != 1 {
		t.Fatalf("content length: got %d, want 1", len(page.Content))
	}
	if page.Content[0].Name != "Catan" {
		t.Errorf("name: got %q", page.Content[0].Name)
	}
}

func TestGetWishlistWithoutToken(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetWishlist(context.Background(), "", 0, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := CategoryOf(err); got != Unauthenticated {
		t.Errorf("category: got %q, want %q", got, Unauthenticated)
	}
	if err.Error() != "User not authenticated" {
		t.Errorf("message: got %q", err.Error())
	}
	if calls != 0 {
		t.Errorf("expected no HTTP calls, got %d", calls)
	}
}

func TestExpiredTokenOnProtectedCall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	_, err := c.GetWishlist(context.Background(), "stale", 0, 10)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := CategoryOf(err); got != Unauthenticated {
		t.Errorf("category: got %q, want %q", got, Unauthenticated)
	}
}

func TestNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	c := New(srv.URL, nil)
	_, err := c.SearchGames(context.Background(), "catan", 0, 5)
	if err == nil {
		t.Fatal("expected error")
	}
	if got := CategoryOf(err); got != NetworkUnavailable {
		t.Errorf("category: got %q, want %q", got, NetworkUnavailable)
	}
}

func TestAddAndRemoveWishlist(t *testing.T) {
	var gotMethod, gotPath, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		buf := make([]byte, r.ContentLength)
		r.Body.Read(buf)
		gotBody = string(buf)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	c := New(srv.URL, nil)
	if err := c.AddToWishlist(context.Background(), "tok", "game-9"); err != nil {
		t.Fatalf("AddToWishlist failed: %v", err)
	}
	if gotMethod != http.MethodPost || gotPath != "/wishlist" {
		t.Errorf("add request: %s %s", gotMethod, gotPath)
	}
	if gotBody != `{"gameId":"game-9"}` {
		t.Errorf("add body: got %q", gotBody)
	}

	if err := c.RemoveFromWishlist(context.Background(), "tok", "game-9"); err != nil {
		t.Fatalf("RemoveFromWishlist failed: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/wishlist/game-9" {
		t.Errorf("remove request: %s %s", gotMethod, gotPath)
	}
}

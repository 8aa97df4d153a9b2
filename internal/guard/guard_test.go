package guard

import "testing"

func TestAuth(t *testing.T) {
	if d := Auth(true, "/wishlist"); !d.Allow {
		t.Error("authenticated visitor must reach protected pages")
	}
	d := Auth(false, "/wishlist")
	if d.Allow {
		t.Error("anonymous visitor must not reach protected pages")
	}
	if d.RedirectTo != "/login" {
		t.Errorf("redirect: got %q, want /login", d.RedirectTo)
	}
}

func TestGuest(t *testing.T) {
	if d := Guest(false, "/login"); !d.Allow {
		t.Error("anonymous visitor must reach auth pages")
	}
	d := Guest(true, "/login")
	if d.Allow {
		t.Error("authenticated visitor must be sent away from auth pages")
	}
	if d.RedirectTo != "/" {
		t.Errorf("redirect: got %q, want /", d.RedirectTo)
	}
}

func TestTable(t *testing.T) {
	tbl := NewTable()
	tbl.Add("/wishlist", Auth)
	tbl.Add("/profile", Auth)
	tbl.Add("/login", Guest)
	tbl.Add("/register", Guest)

	tests := []struct {
		loggedIn bool
		path     string
		allow    bool
		redirect string
	}{
		{false, "/", true, ""},
		{false, "/game/catan", true, ""},
		{false, "/wishlist", false, "/login"},
		{false, "/wishlist/page/2", false, "/login"},
		{false, "/wishlist?page=2", false, "/login"},
		{false, "/login", true, ""},
		{true, "/wishlist", true, ""},
		{true, "/login", false, "/"},
		{true, "/register#form", false, "/"},
		{true, "/profile", true, ""},
		{false, "", true, ""},
	}
	for _, tt := range tests {
		d := tbl.Check(tt.loggedIn, tt.path)
		if d.Allow != tt.allow {
			t.Errorf("Check(%v, %q).Allow = %v, want %v", tt.loggedIn, tt.path, d.Allow, tt.allow)
		}
		if d.RedirectTo != tt.redirect {
			t.Errorf("Check(%v, %q).RedirectTo = %q, want %q", tt.loggedIn, tt.path, d.RedirectTo, tt.redirect)
		}
	}
}

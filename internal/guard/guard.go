// Package guard holds the navigation predicates: pure functions deciding
// whether a path may be visited given the current authentication state.
package guard

import "strings"

// Decision is the outcome of a guard check. When Allow is false, RedirectTo
// names the path the visitor should be sent to instead.
type Decision struct {
	Allow      bool
	RedirectTo string
}

// Rule decides whether navigation to a path is allowed for the given
// authentication state.
type Rule func(loggedIn bool, path string) Decision

// Auth gates pages that require an authenticated session. Anonymous visitors
// are redirected to the login page.
func Auth(loggedIn bool, path string) Decision {
	if loggedIn {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: "/login"}
}

// Guest gates pages meant for anonymous visitors (login, register).
// Authenticated users are sent home.
func Guest(loggedIn bool, path string) Decision {
	if !loggedIn {
		return Decision{Allow: true}
	}
	return Decision{RedirectTo: "/"}
}

// Table maps paths to rules. Unlisted paths are always allowed. A rule on
// "/wishlist" also covers "/wishlist/anything".
type Table struct {
	rules map[string]Rule
}

// NewTable creates an empty guard table.
func NewTable() *Table {
	return &Table{rules: make(map[string]Rule)}
}

// Add registers a rule for a path and its subpaths.
func (t *Table) Add(path string, rule Rule) {
	t.rules[normalize(path)] = rule
}

// Check evaluates the rule guarding path, if any. Query strings and
// fragments are ignored.
func (t *Table) Check(loggedIn bool, path string) Decision {
	p := normalize(path)
	for guarded, rule := range t.rules {
		if p == guarded || strings.HasPrefix(p, guarded+"/") {
			return rule(loggedIn, p)
		}
	}
	return Decision{Allow: true}
}

// normalize strips query string and fragment, defaulting to "/".
func normalize(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return "/"
	}
	return path
}

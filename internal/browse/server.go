// Package browse serves the local browse dashboard: a small single-page UI
// over the marketplace API with live search, login and wishlist management.
package browse

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/guard"
	"github.com/lovelace-project/lovelace-cli/internal/history"
	"github.com/lovelace-project/lovelace-cli/internal/notify"
	"github.com/lovelace-project/lovelace-cli/internal/session"
)

// Config holds dashboard server configuration.
type Config struct {
	Port            int
	AllowAllOrigins bool // allow all CORS origins (dev mode)
	Debounce        time.Duration
	DropdownSize    int // live search page size
	PageSize        int // wishlist page size
}

// Server is the local browse dashboard server.
type Server struct {
	cfg        Config
	sessions   *session.Manager
	client     *api.Client
	center     *notify.Center
	activity   *history.Store // may be nil
	log        *zap.Logger
	guards     *guard.Table
	router     chi.Router
	httpServer *http.Server
}

// New creates a dashboard server. The activity store is optional.
func New(cfg Config, sessions *session.Manager, client *api.Client, center *notify.Center, activity *history.Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Debounce <= 0 {
		cfg.Debounce = 300 * time.Millisecond
	}
	if cfg.DropdownSize <= 0 {
		cfg.DropdownSize = 5
	}
	if cfg.PageSize <= 0 {
		cfg.PageSize = 10
	}

	s := &Server{
		cfg:      cfg,
		sessions: sessions,
		client:   client,
		center:   center,
		activity: activity,
		log:      logger,
		guards:   buildGuards(),
	}
	s.router = s.buildRouter()
	return s
}

// buildGuards wires the navigation rules: the wishlist and profile pages
// require a session, the auth pages are for anonymous visitors.
func buildGuards() *guard.Table {
	t := guard.NewTable()
	t.Add("/wishlist", guard.Auth)
	t.Add("/profile", guard.Auth)
	t.Add("/login", guard.Guest)
	t.Add("/register", guard.Guest)
	return t
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// CORS
	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.AllowAllOrigins {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	// Health check
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Pages. Every page serves the same shell; the guard table decides
	// whether the visitor may stay on the requested path.
	for _, page := range []string{"/", "/login", "/register", "/wishlist", "/profile", "/game/{id}"} {
		r.Get(page, s.servePage)
	}

	// JSON API
	r.Get("/api/state", s.handleState)
	r.Post("/api/login", s.handleLogin)
	r.Post("/api/logout", s.handleLogout)
	r.Get("/api/games/{id}", s.handleGameDetails)
	r.Get("/api/wishlist", s.handleWishlist)
	r.Post("/api/wishlist", s.handleWishlistAdd)
	r.Delete("/api/wishlist/{gameID}", s.handleWishlistRemove)
	r.Get("/api/notifications", s.handleNotifications)

	// Live search
	r.Get("/ws/search", s.handleSearchSocket)

	return r
}

// servePage applies the route guards and serves the dashboard shell.
func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	d := s.guards.Check(s.sessions.Snapshot().LoggedIn, r.URL.Path)
	if !d.Allow {
		http.Redirect(w, r, d.RedirectTo, http.StatusFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(pageHTML))
}

// Router returns the chi router, mainly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf("127.0.0.1:%d", s.cfg.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("browse dashboard listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer != nil {
		return s.httpServer.Shutdown(ctx)
	}
	return nil
}

// record stores an activity entry when a history store is attached.
func (s *Server) record(ctx context.Context, action history.Action, subject, detail string) {
	if s.activity == nil {
		return
	}
	actor := ""
	if snap := s.sessions.Snapshot(); snap.User != nil {
		actor = snap.User.Username
	}
	err := s.activity.Record(ctx, history.Entry{
		Action:  action,
		Actor:   actor,
		Subject: subject,
		Detail:  detail,
	})
	if err != nil {
		s.log.Warn("recording activity failed", zap.Error(err))
	}
}

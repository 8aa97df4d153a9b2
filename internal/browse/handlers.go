package browse

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/lovelace-project/lovelace-cli/internal/api"
	"github.com/lovelace-project/lovelace-cli/internal/history"
	"github.com/lovelace-project/lovelace-cli/internal/notify"
	"github.com/lovelace-project/lovelace-cli/internal/validate"
)

// stateResponse is the JSON shape of the session state endpoint.
type stateResponse struct {
	LoggedIn bool              `json:"loggedIn"`
	User     *api.AuthResponse `json:"user,omitempty"`
}

type loginRequest struct {
	Identity string `json:"identity"`
	Password string `json:"password"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeAPIError maps an API failure onto an HTTP response for the dashboard.
func writeAPIError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	switch api.CategoryOf(err) {
	case api.Unauthenticated:
		status = http.StatusUnauthorized
	case api.EmailUnverified:
		status = http.StatusForbidden
	case api.ServerRejected:
		status = http.StatusBadGateway
	case api.NetworkUnavailable:
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Category: string(api.CategoryOf(err))})
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	snap := s.sessions.Snapshot()
	writeJSON(w, http.StatusOK, stateResponse{LoggedIn: snap.LoggedIn, User: snap.User})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	form := validate.LoginForm{Identity: req.Identity, Password: req.Password}
	if err := form.Validate(); err != nil {
		// Validation failures never reach the network.
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error(), Category: "validation_failed"})
		return
	}

	user, err := s.sessions.Login(r.Context(), req.Identity, req.Password)
	if err != nil {
		s.center.Push(notify.Error, "Login failed", err.Error())
		writeAPIError(w, err)
		return
	}

	s.record(r.Context(), history.ActionLogin, user.Username, "")
	s.center.Push(notify.Success, "Logged in", "Welcome back, "+user.Username)
	writeJSON(w, http.StatusOK, stateResponse{LoggedIn: true, User: user})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	// Record before the session is cleared so the entry keeps its actor.
	s.record(r.Context(), history.ActionLogout, "", "")

	resp, err := s.sessions.Logout(r.Context())
	if err != nil {
		// Local state is already cleared; the caller still learns that the
		// server-side logout failed.
		s.center.Push(notify.Error, "Logout failed on the server", err.Error())
		writeAPIError(w, err)
		return
	}
	s.center.Push(notify.Info, "Logged out", "")
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleGameDetails(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	details, err := s.client.GetGame(r.Context(), id)
	if err != nil {
		writeAPIError(w, err)
		return
	}
	s.record(r.Context(), history.ActionGameView, id, details.Name)
	writeJSON(w, http.StatusOK, details)
}

func (s *Server) handleWishlist(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	size, err := strconv.Atoi(r.URL.Query().Get("size"))
	if err != nil || size < 1 {
		size = s.cfg.PageSize
	}

	items, err := s.client.GetWishlist(r.Context(), s.sessions.Token(), page, size)
	if err != nil {
		s.sessions.Invalidate(err)
		writeAPIError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) handleWishlistAdd(w http.ResponseWriter, r *http.Request) {
	var req struct {
		GameID string `json:"gameId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.GameID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "gameId is required"})
		return
	}

	if err := s.client.AddToWishlist(r.Context(), s.sessions.Token(), req.GameID); err != nil {
		s.sessions.Invalidate(err)
		s.center.Push(notify.Error, "Could not add to wishlist", err.Error())
		writeAPIError(w, err)
		return
	}
	s.record(r.Context(), history.ActionWishlistAdd, req.GameID, "")
	s.center.Push(notify.Success, "Added to wishlist", "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleWishlistRemove(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if err := s.client.RemoveFromWishlist(r.Context(), s.sessions.Token(), gameID); err != nil {
		s.sessions.Invalidate(err)
		s.center.Push(notify.Error, "Could not remove from wishlist", err.Error())
		writeAPIError(w, err)
		return
	}
	s.record(r.Context(), history.ActionWishlistRemove, gameID, "")
	s.center.Push(notify.Success, "Removed from wishlist", "")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleNotifications(w http.ResponseWriter, r *http.Request) {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if n < 1 {
		n = 10
	}
	writeJSON(w, http.StatusOK, s.center.Recent(n))
}

package server

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

const contentTypeJSON = "application/json; charset=utf-8"

// sessionView is the JSON rendering of the widget affordance: a logout
// control with a display name, or a login prompt.
type sessionView struct {
	LoggedIn    bool   `json:"loggedIn"`
	DisplayName string `json:"displayName,omitempty"`
}

// SessionHandler reports the current display state.
func (s *Server) SessionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view := s.runtime.View()
		w.Header().Set("Content-Type", contentTypeJSON)
		if err := json.NewEncoder(w).Encode(sessionView{
			LoggedIn:    view.LoggedIn,
			DisplayName: view.DisplayName,
		}); err != nil {
			log.Error().Err(err).Msg("failed to encode session view")
		}
	}
}

// LoginHandler queues a login request. The machine decides whether a
// redirect is needed; an already-valid session makes this a no-op.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.runtime.Login()
		w.WriteHeader(http.StatusAccepted)
	}
}

// LogoutHandler queues a logout request.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.runtime.Logout()
		w.WriteHeader(http.StatusAccepted)
	}
}

func (s *Server) HealthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}
}

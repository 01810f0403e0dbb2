package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/jrsteele09/rental-portal/auth"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/rs/zerolog"
)

// LoginPageData contains data for rendering the login page
type LoginPageData struct {
	Email string // Preserve email on error
	Next  string
}

// HealthzHandler reports liveness
func (s *Server) HealthzHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// LoginPageHandler displays the login page (GET /login). Signed-in users are
// sent on to where they were going.
func (s *Server) LoginPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		state := auth.StateFromContext(r.Context())
		if state.IsAuthenticated {
			redirectSuccess(w, r, safeNext(q.Get("next"), homeFor(*state.User)))
			return
		}
		s.render(w, r, "login.html", "Sign in", LoginPageData{
			Email: q.Get("email"),
			Next:  safeNext(q.Get("next"), ""),
		})
	}
}

// LoginSubmissionHandler exchanges the submitted credentials for a session
func (s *Server) LoginSubmissionHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logger := zerolog.Ctx(r.Context())
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		email := strings.TrimSpace(r.FormValue("email"))
		password := r.FormValue("password")
		data := LoginPageData{Email: email, Next: safeNext(r.FormValue("next"), "")}

		if email == "" || password == "" {
			s.renderLoginError(w, r, http.StatusBadRequest, data, "Email and password are required")
			return
		}

		tokens, err := s.api.Auth().Login(r.Context(), email, password)
		switch {
		case perrors.Is(err, perrors.ErrUnauthorized), perrors.Is(err, perrors.ErrValidation), perrors.Is(err, perrors.ErrNotFound):
			logger.Info().Str("email", email).Msg("Login rejected")
			s.renderLoginError(w, r, http.StatusUnauthorized, data, "Invalid email or password")
			return
		case err != nil:
			logger.Err(err).Msg("Login failed")
			s.renderLoginError(w, r, http.StatusBadGateway, data, auth.MessageLoginFailed)
			return
		}

		user, err := s.decoder.Decode(tokens.AccessToken)
		if err != nil {
			logger.Warn().Err(err).Msg("Login returned a token with unusable claims")
			s.renderLoginError(w, r, http.StatusBadGateway, data, auth.MessageLoginFailed)
			return
		}

		rs := s.session(w, r)
		state, err := rs.provider.Login(user, tokens)
		if err != nil {
			logger.Err(err).Msg("Failed to start session")
			s.renderLoginError(w, r, http.StatusInternalServerError, data, auth.MessageLoginFailed)
			return
		}
		logger.Info().Str("user_id", state.User.ID).Msg("Signed in")
		redirectSuccess(w, r, safeNext(data.Next, homeFor(*state.User)))
	}
}

func (s *Server) renderLoginError(w http.ResponseWriter, r *http.Request, status int, data LoginPageData, message string) {
	s.renderPage(w, r, status, "login.html", PageData{Title: "Sign in", Error: message, Data: data})
}

// LogoutHandler clears the session and returns to the login page. The backend
// is told in the background.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.session(w, r).provider.Logout(r.Context())
		s.redirectWithFlash(w, r, RouteLogin, "You have been signed out")
	}
}

// RefreshHandler rotates the token pair on request. There is no automatic
// refresh: a page that finds the session expired sends the user to sign in.
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, err := s.refresher.Refresh(r.Context(), s.session(w, r).store); err != nil {
			zerolog.Ctx(r.Context()).Info().Err(err).Msg("Session refresh failed")
			if wantsJSON(r) {
				writeJSON(w, http.StatusUnauthorized, map[string]string{"error": auth.MessageSessionExpired})
				return
			}
			s.redirectToLogin(w, r, auth.MessageSessionExpired)
			return
		}
		if wantsJSON(r) {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		redirectSuccess(w, r, safeNext(r.FormValue("next"), RouteAdminDashboard))
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package server

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/auth"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/rs/zerolog"
)

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func (s *Server) redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	redirectSuccess(w, r, withQuery(path, queryError, s.sealMessage(r, queryError, errorMsg)))
}

func (s *Server) redirectWithFlash(w http.ResponseWriter, r *http.Request, path, message string) {
	redirectSuccess(w, r, withQuery(path, queryFlash, s.sealMessage(r, queryFlash, message)))
}

// Page messages travel sealed in the query string. Anything that does not
// open is dropped, so a link from elsewhere cannot put text on a page.
const (
	queryFlash = "flash"
	queryError = "error"
)

func (s *Server) sealMessage(r *http.Request, kind, message string) string {
	if message == "" {
		return ""
	}
	sealed, err := s.cookies.Sealer().Seal("message:"+kind, message)
	if err != nil {
		zerolog.Ctx(r.Context()).Err(err).Msg("Failed to seal page message")
		return ""
	}
	return sealed
}

func (s *Server) openMessage(r *http.Request, kind string) string {
	sealed := r.URL.Query().Get(kind)
	if sealed == "" {
		return ""
	}
	message, err := s.cookies.Sealer().Open("message:"+kind, sealed)
	if err != nil {
		zerolog.Ctx(r.Context()).Debug().Str("param", kind).Msg("Ignoring unsealed page message")
		return ""
	}
	return message
}

func withQuery(path, key, value string) string {
	if value == "" {
		return path
	}
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + key + "=" + url.QueryEscape(value)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// redirectToLogin sends the browser to the login page, remembering where it was going
func (s *Server) redirectToLogin(w http.ResponseWriter, r *http.Request, message string) {
	target := RouteLogin
	if next := returnPath(r); next != "" {
		target = withQuery(target, "next", next)
	}
	s.redirectWithError(w, r, target, message)
}

// returnPath is the page to come back to after signing in. Only GET pages are
// remembered; a form post is replayed from its referring page instead.
func returnPath(r *http.Request) string {
	if r.Method == http.MethodGet {
		return safeNext(r.URL.RequestURI(), "")
	}
	if ref, err := url.Parse(r.Referer()); err == nil && ref.Host == r.Host {
		return safeNext(ref.RequestURI(), "")
	}
	return ""
}

// safeNext only accepts local absolute paths so the login form cannot be used
// as an open redirect
func safeNext(next, fallback string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") || strings.HasPrefix(next, "/\\") {
		return fallback
	}
	if strings.HasPrefix(next, RouteLogin) || strings.HasPrefix(next, "/auth/") {
		return fallback
	}
	return next
}

// homeFor is where a user lands after signing in without a return path
func homeFor(u users.User) string {
	if u.IsAdmin() {
		return RouteAdminDashboard
	}
	return RouteAdminProfile
}

// handleBackendError reports a failed backend call. A 401 means the backend no
// longer accepts the session, so the cookies are dropped and the user is sent
// to sign in again. Everything else returns to fallback with a message.
func (s *Server) handleBackendError(w http.ResponseWriter, r *http.Request, err error, fallback, message string) {
	logger := zerolog.Ctx(r.Context())
	if perrors.Is(err, perrors.ErrUnauthorized) {
		logger.Info().Err(err).Msg("Backend rejected the session")
		if clearErr := s.session(w, r).store.Clear(); clearErr != nil {
			logger.Err(clearErr).Msg("Failed to clear session cookies")
		}
		s.redirectToLogin(w, r, auth.MessageSessionExpired)
		return
	}
	logger.Err(err).Msg(message)
	s.redirectWithError(w, r, fallback, userMessage(err, message))
}

// userMessage prefers the backend's own validation message
func userMessage(err error, fallback string) string {
	var apiErr *api.Error
	switch {
	case perrors.Is(err, perrors.ErrValidation) && perrors.As(err, &apiErr) && apiErr.Message != "":
		return apiErr.Message
	case perrors.Is(err, perrors.ErrForbidden):
		return "You are not allowed to do that"
	case perrors.Is(err, perrors.ErrNotFound):
		return "That item no longer exists"
	default:
		return fallback
	}
}

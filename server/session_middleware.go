package server

import (
	"context"
	"net/http"
	"strconv"

	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/auth"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/rs/zerolog"
)

// placeholderRetryAfter is how long a client should wait before retrying a page
// whose session could not be settled
const placeholderRetryAfter = 1

type sessionKey struct{}

// decisionStatus is the status a JSON client receives for a refused request
var decisionStatus = map[auth.Decision]int{
	auth.DecisionPlaceholder: http.StatusServiceUnavailable,
	auth.DecisionRedirect:    http.StatusUnauthorized,
	auth.DecisionForbidden:   http.StatusForbidden,
}

// requestSession is the hydrated session of one request
type requestSession struct {
	provider *auth.Provider
	store    *sessions.CookieStore
}

func withSession(ctx context.Context, rs *requestSession) context.Context {
	return auth.NewContext(context.WithValue(ctx, sessionKey{}, rs), rs.provider)
}

func sessionFrom(ctx context.Context) (*requestSession, bool) {
	rs, ok := ctx.Value(sessionKey{}).(*requestSession)
	return rs, ok && rs != nil
}

// hydrate builds a fresh provider over the request's cookies and settles it
func (s *Server) hydrate(w http.ResponseWriter, r *http.Request) (*http.Request, auth.State) {
	rs := s.bindSession(w, r)
	state := rs.provider.Hydrate(r.Context())
	zerolog.Ctx(r.Context()).Debug().
		Str("phase", state.Phase.String()).
		Bool("authenticated", state.IsAuthenticated).
		Msg("Session hydrated")
	return r.WithContext(withSession(r.Context(), rs)), state
}

func (s *Server) bindSession(w http.ResponseWriter, r *http.Request) *requestSession {
	store := s.cookies.Bind(w, r)
	return &requestSession{provider: s.newProvider(store), store: store}
}

// RequireSession hydrates the session and only lets settled, authenticated
// requests through. authorize may be nil to admit every signed-in user.
func (s *Server) RequireSession(authorize auth.Authorizer) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			r, state := s.hydrate(w, r)
			decision := auth.DecideFor(state, authorize)
			if decision != auth.DecisionAllow && wantsJSON(r) {
				writeJSON(w, decisionStatus[decision], map[string]string{"error": decision.String()})
				return
			}
			switch decision {
			case auth.DecisionAllow:
				next(w, r)
			case auth.DecisionRedirect:
				s.redirectToLogin(w, r, state.Error)
			case auth.DecisionForbidden:
				s.renderStatus(w, r, http.StatusForbidden, "forbidden.html", "Access denied", nil)
			default:
				w.Header().Set("Retry-After", strconv.Itoa(placeholderRetryAfter))
				s.renderStatus(w, r, http.StatusServiceUnavailable, "placeholder.html", "Loading", nil)
			}
		}
	}
}

// OptionalSession hydrates the session for pages that render for everyone
func (s *Server) OptionalSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r, _ = s.hydrate(w, r)
		next(w, r)
	}
}

// session returns the request's session, binding an unhydrated one when no
// middleware has done so
func (s *Server) session(w http.ResponseWriter, r *http.Request) *requestSession {
	if rs, ok := sessionFrom(r.Context()); ok {
		return rs
	}
	return s.bindSession(w, r)
}

// backendFor returns an api client carrying the request's access token
func (s *Server) backendFor(w http.ResponseWriter, r *http.Request) *api.Client {
	tokens, err := s.session(w, r).store.Get()
	if err != nil || tokens == nil {
		return s.api
	}
	return s.api.WithTokens(r.Context(), *tokens)
}

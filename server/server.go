package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/auth"
	"github.com/jrsteele09/rental-portal/internal/config"
	"github.com/jrsteele09/rental-portal/listing"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/jrsteele09/rental-portal/token"
	"github.com/rs/zerolog/log"
)

// Backend bundles the collaborators the server talks to
type Backend struct {
	API     *api.Client
	Content *api.ContentService
	Cookies *sessions.Cookies
	Decoder *token.Decoder
	Drafts  listing.DraftStore
}

type Server struct {
	env    string // Environment (e.g., "DEV", "PROD")
	mux    *http.ServeMux
	routes []string
	config config.Config
	pages  pages

	api       *api.Client
	content   *api.ContentService
	cookies   *sessions.Cookies
	decoder   *token.Decoder
	wizard    *listing.Wizard
	refresher *token.Refresher
}

func New(config config.Config, backend Backend) (*Server, error) {
	pages, err := parsePages()
	if err != nil {
		return nil, fmt.Errorf("[Server New] failed to parse templates: %w", err)
	}
	if backend.API == nil || backend.Cookies == nil {
		return nil, fmt.Errorf("[Server New] api client and cookies are required")
	}
	if backend.Decoder == nil {
		backend.Decoder = token.NewDecoder()
	}
	if backend.Drafts == nil {
		backend.Drafts = listing.NewMemoryDraftStore()
	}

	s := &Server{
		env:       config.GetEnv(),
		mux:       http.NewServeMux(),
		config:    config,
		pages:     pages,
		api:       backend.API,
		content:   backend.Content,
		cookies:   backend.Cookies,
		decoder:   backend.Decoder,
		wizard:    listing.NewWizard(backend.Drafts),
		refresher: token.NewRefresher(backend.API.Auth()),
	}

	s.initRoutes()
	s.logRoutes()

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

func (s *Server) RegisterRouteHandler(pattern string, handler http.Handler) {
	s.routes = append(s.routes, pattern)
	s.mux.Handle(pattern, handler)
}

func (s *Server) RegisterRouteFunc(pattern string, handler func(http.ResponseWriter, *http.Request)) {
	s.routes = append(s.routes, pattern)
	s.mux.HandleFunc(pattern, handler)
}

// newProvider builds the auth provider for one request
func (s *Server) newProvider(store sessions.Store) *auth.Provider {
	authService := s.api.Auth()
	opts := []auth.ProviderOption{auth.WithRemoteLogout(authService, s.config.GetRemoteLogoutTimeout())}
	if s.config.GetRetainOnNetworkError() {
		opts = append(opts, auth.WithRetainOnNetworkError())
	}
	return auth.NewProvider(auth.NewContainer(), store, authService, s.decoder, opts...)
}

func (s *Server) logRoutes() {
	if s.env != "DEV" {
		return // Skip logging in non-development environments
	}
	for _, route := range s.routes {
		parts := strings.SplitN(route, " ", 2)

		if len(parts) > 1 {
			logRoute(parts[0], parts[1])
		} else {
			logRoute("", parts[0])
		}
	}
}

func logRoute(method, path string) {
	log.Info().Msgf("[%s] %s", colouredMethod(method), path)
}

func logError(method, path, error string) {
	log.Error().Msgf("[%s] %s %s", colouredMethod(method), path, Red+error+ResetColor)
}

func colouredMethod(method string) string {
	paddedMethod := fmt.Sprintf(" %-7s", method)
	if color, ok := methodColors[method]; ok {
		return color + paddedMethod + ResetColor
	}
	return Gray + paddedMethod + ResetColor
}

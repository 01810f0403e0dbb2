package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/rental-portal/auth"
)

func (s *Server) initRoutes() {
	s.RegisterRouteFunc("GET "+RouteHealthz, s.HealthzHandler())
	s.RegisterRouteHandler("GET "+RouteIndex, ChainMiddleware(s.IndexHandler(), s.HTMLMiddleWare(s.OptionalSession)...))

	// LOGIN
	s.RegisterRouteHandler("GET "+RouteLogin, ChainMiddleware(s.LoginPageHandler(), s.HTMLMiddleWare(s.OptionalSession)...))
	s.RegisterRouteHandler("POST "+RouteAuthLogin, ChainMiddleware(s.LoginSubmissionHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthLogout, ChainMiddleware(s.LogoutHandler(), s.HTMLMiddleWare()...))
	s.RegisterRouteHandler("POST "+RouteAuthRefresh, ChainMiddleware(s.RefreshHandler(), s.HTMLMiddleWare()...))

	// Admin routes
	admin := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, s.HTMLMiddleWare(s.RequireSession(auth.AdminsOnly))...)
	}
	s.RegisterRouteHandler("GET "+RouteAdminDashboard, admin(s.AdminDashboardHandler()))

	s.RegisterRouteHandler("GET "+RouteAdminListings, admin(s.AdminListingsHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminListingNew, admin(s.ListingNewHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminListingDelete, admin(s.ListingDeleteHandler()))
	s.RegisterRouteHandler("GET "+RouteAdminDraft, admin(s.DraftPageHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminDraftStep, admin(s.DraftStepHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminDraftPublish, admin(s.DraftPublishHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminDraftDiscard, admin(s.DraftDiscardHandler()))

	s.RegisterRouteHandler("GET "+RouteAdminUsers, admin(s.AdminUsersHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminUserDelete, admin(s.AdminUserDeleteHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminUserBlock, admin(s.AdminUserBlockHandler()))

	s.RegisterRouteHandler("GET "+RouteAdminNews, admin(s.AdminNewsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminNews, admin(s.AdminNewsCreateHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminNewsDelete, admin(s.AdminNewsDeleteHandler()))

	s.RegisterRouteHandler("GET "+RouteAdminMemberships, admin(s.AdminMembershipsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminMemberships, admin(s.AdminMembershipAssignHandler()))

	s.RegisterRouteHandler("GET "+RouteAdminReports, admin(s.AdminReportsHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminReportResolve, admin(s.AdminReportResolveHandler()))

	// Profile is open to every signed-in user
	profile := func(h http.HandlerFunc) http.HandlerFunc {
		return ChainMiddleware(h, s.HTMLMiddleWare(s.RequireSession(nil))...)
	}
	s.RegisterRouteHandler("GET "+RouteAdminProfile, profile(s.ProfilePageHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminProfile, profile(s.ProfileUpdateHandler()))
	s.RegisterRouteHandler("POST "+RouteAdminProfilePassword, profile(s.PasswordChangeHandler()))

	// API routes
	s.RegisterRouteHandler("POST "+RouteAPIContentDescription, ChainMiddleware(s.ContentDescriptionHandler(), s.APIMiddleware(s.RequireSession(auth.AdminsOnly))...))
	s.RegisterRouteHandler("OPTIONS "+RouteAPIContentDescription, ChainMiddleware(http.NotFound, s.APIMiddleware()...))

	s.RegisterRouteHandler("GET "+RouteStaticCSS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteStaticJS, ChainMiddleware(s.serveFileHandler(), s.StaticMiddleware()...))
}

func (s *Server) serveFileHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filePath := strings.TrimPrefix(r.URL.Path, "/")
		if filePath == "" {
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
			return
		}
		if err := StreamFile(w, r, filePath); err != nil {
			logError(r.Method, filePath, err.Error())
			http.Error(w, "404 - Page Not Found", http.StatusNotFound)
		}
	}
}

package server

// Route path constants
const (
	RouteIndex   = "/{$}"
	RouteHealthz = "/healthz"

	// Auth
	RouteLogin       = "/login"
	RouteAuthLogin   = "/auth/login"
	RouteAuthLogout  = "/auth/logout"
	RouteAuthRefresh = "/auth/refresh"

	// Admin area
	RouteAdminDashboard       = "/admin/dashboard"
	RouteAdminListings        = "/admin/listings"
	RouteAdminListingNew      = "/admin/listings/new"
	RouteAdminListingDelete   = "/admin/listings/{id}/delete"
	RouteAdminDraft           = "/admin/listings/drafts/{id}"
	RouteAdminDraftStep       = "/admin/listings/drafts/{id}/{step}"
	RouteAdminDraftPublish    = "/admin/listings/drafts/{id}/publish"
	RouteAdminDraftDiscard    = "/admin/listings/drafts/{id}/discard"
	RouteAdminUsers           = "/admin/users"
	RouteAdminUserDelete      = "/admin/users/{id}/delete"
	RouteAdminUserBlock       = "/admin/users/{id}/block"
	RouteAdminNews            = "/admin/news"
	RouteAdminNewsDelete      = "/admin/news/{id}/delete"
	RouteAdminMemberships     = "/admin/memberships"
	RouteAdminReports         = "/admin/reports"
	RouteAdminReportResolve   = "/admin/reports/{id}/resolve"
	RouteAdminProfile         = "/admin/profile"
	RouteAdminProfilePassword = "/admin/profile/password"

	// JSON endpoints used by htmx/fetch from admin pages
	RouteAPIContentDescription = "/api/content/description"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
	RouteStaticJS  = "/js/{file}"
)

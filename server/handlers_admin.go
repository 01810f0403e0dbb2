package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/rental-portal/api"
	"github.com/jrsteele09/rental-portal/auth"
	"github.com/jrsteele09/rental-portal/listing"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/rs/zerolog"
)

const (
	adminPageSize  = 20
	publicPageSize = 12
)

// IndexPageData is the public listing page
type IndexPageData struct {
	Listings api.Page[api.Listing]
	City     string
	Type     string
	Pages    Pager
}

// DashboardData summarises the platform for admins
type DashboardData struct {
	ListingCount int
	UserCount    int
	OpenReports  int
	Drafts       []*listing.Draft
	Unavailable  bool
}

type UsersPageData struct {
	Users  api.Page[api.AdminUser]
	Search string
	Pages  Pager
}

type NewsPageData struct {
	Articles api.Page[api.NewsArticle]
	Pages    Pager
}

type MembershipsPageData struct {
	Tiers  []api.MembershipTier
	UserID string
}

type ReportsPageData struct {
	Reports []api.Report
	Status  string
}

// Pager drives the previous/next links under a list
type Pager struct {
	Page    int
	PrevURL string
	NextURL string
}

func newPager(r *http.Request, page, pageSize, total, shown int) Pager {
	q := url.Values{}
	for k, v := range r.URL.Query() {
		if k != "flash" && k != "error" {
			q[k] = v
		}
	}
	link := func(p int) string {
		q.Set("page", strconv.Itoa(p))
		return "?" + q.Encode()
	}

	pager := Pager{Page: page}
	if page > 1 {
		pager.PrevURL = link(page - 1)
	}
	hasNext := shown == pageSize
	if total > 0 {
		hasNext = page*pageSize < total
	}
	if hasNext {
		pager.NextURL = link(page + 1)
	}
	return pager
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func currentUser(r *http.Request) users.User {
	if u := auth.StateFromContext(r.Context()).User; u != nil {
		return *u
	}
	return users.User{}
}

// IndexHandler renders the public listing search
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := pageParam(r)
		query := api.ListingQuery{
			Page:        page,
			PageSize:    publicPageSize,
			City:        strings.TrimSpace(q.Get("city")),
			ListingType: q.Get("type"),
			Status:      "active",
		}
		data := IndexPageData{City: query.City, Type: query.ListingType}

		listings, err := s.api.Listings().List(r.Context(), query)
		if err != nil {
			zerolog.Ctx(r.Context()).Err(err).Msg("Failed to load public listings")
			s.renderPage(w, r, http.StatusOK, "index.html", PageData{Title: "Find a home", Error: "Listings are unavailable right now", Data: data})
			return
		}
		data.Listings = listings
		data.Pages = newPager(r, page, publicPageSize, listings.Total, len(listings.Items))
		s.render(w, r, "index.html", "Find a home", data)
	}
}

// AdminDashboardHandler renders the admin dashboard. Counts that cannot be
// loaded are left at zero and the page says so.
func (s *Server) AdminDashboardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		logger := zerolog.Ctx(ctx)
		backend := s.backendFor(w, r)
		data := DashboardData{}

		if listings, err := backend.Listings().List(ctx, api.ListingQuery{Page: 1, PageSize: 1}); err == nil {
			data.ListingCount = listings.Total
		} else {
			logger.Warn().Err(err).Msg("Dashboard: listings unavailable")
			data.Unavailable = true
		}
		if accounts, err := backend.AdminUsers().List(ctx, 1, 1, ""); err == nil {
			data.UserCount = accounts.Total
		} else {
			logger.Warn().Err(err).Msg("Dashboard: users unavailable")
			data.Unavailable = true
		}
		if reports, err := backend.Reports().List(ctx, "open"); err == nil {
			data.OpenReports = len(reports)
		} else {
			logger.Warn().Err(err).Msg("Dashboard: reports unavailable")
			data.Unavailable = true
		}
		if drafts, err := s.wizard.Drafts(ctx, currentUser(r).ID); err == nil {
			data.Drafts = drafts
		} else {
			logger.Warn().Err(err).Msg("Dashboard: drafts unavailable")
		}

		s.render(w, r, "dashboard.html", "Dashboard", data)
	}
}

func (s *Server) AdminUsersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pageParam(r)
		search := strings.TrimSpace(r.URL.Query().Get("search"))
		accounts, err := s.backendFor(w, r).AdminUsers().List(r.Context(), page, adminPageSize, search)
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminDashboard, "Unable to load users")
			return
		}
		s.render(w, r, "users.html", "Users", UsersPageData{
			Users:  accounts,
			Search: search,
			Pages:  newPager(r, page, adminPageSize, accounts.Total, len(accounts.Items)),
		})
	}
}

func (s *Server) AdminUserDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == currentUser(r).ID {
			s.redirectWithError(w, r, RouteAdminUsers, "You cannot delete your own account")
			return
		}
		if err := s.backendFor(w, r).AdminUsers().Delete(r.Context(), id); err != nil {
			s.handleBackendError(w, r, err, RouteAdminUsers, "Unable to delete user")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminUsers, "User deleted")
	}
}

// AdminUserBlockHandler sets or clears the blocked flag from the "blocked" form value
func (s *Server) AdminUserBlockHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		blocked, err := strconv.ParseBool(r.FormValue("blocked"))
		if err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		id := r.PathValue("id")
		if _, err := s.backendFor(w, r).AdminUsers().Update(r.Context(), id, api.AdminUserInput{Blocked: &blocked}); err != nil {
			s.handleBackendError(w, r, err, RouteAdminUsers, "Unable to update user")
			return
		}
		message := "User unblocked"
		if blocked {
			message = "User blocked"
		}
		s.redirectWithFlash(w, r, RouteAdminUsers, message)
	}
}

func (s *Server) AdminNewsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page := pageParam(r)
		articles, err := s.backendFor(w, r).News().List(r.Context(), page, adminPageSize)
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminDashboard, "Unable to load news")
			return
		}
		s.render(w, r, "news.html", "News", NewsPageData{
			Articles: articles,
			Pages:    newPager(r, page, adminPageSize, articles.Total, len(articles.Items)),
		})
	}
}

func (s *Server) AdminNewsCreateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		in := api.NewsInput{
			Title:     strings.TrimSpace(r.FormValue("title")),
			Summary:   strings.TrimSpace(r.FormValue("summary")),
			Body:      strings.TrimSpace(r.FormValue("body")),
			Published: r.FormValue("published") == "on" || r.FormValue("published") == "true",
		}
		if in.Title == "" || in.Body == "" {
			s.redirectWithError(w, r, RouteAdminNews, "Title and body are required")
			return
		}
		if _, err := s.backendFor(w, r).News().Create(r.Context(), in); err != nil {
			s.handleBackendError(w, r, err, RouteAdminNews, "Unable to save article")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminNews, "Article saved")
	}
}

func (s *Server) AdminNewsDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.backendFor(w, r).News().Delete(r.Context(), r.PathValue("id")); err != nil {
			s.handleBackendError(w, r, err, RouteAdminNews, "Unable to delete article")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminNews, "Article deleted")
	}
}

func (s *Server) AdminMembershipsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tiers, err := s.backendFor(w, r).Memberships().Tiers(r.Context())
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminDashboard, "Unable to load membership tiers")
			return
		}
		s.render(w, r, "memberships.html", "Memberships", MembershipsPageData{
			Tiers:  tiers,
			UserID: r.URL.Query().Get("user"),
		})
	}
}

func (s *Server) AdminMembershipAssignHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.FormValue("userId"))
		tierID := r.FormValue("tierId")
		if userID == "" || tierID == "" {
			s.redirectWithError(w, r, RouteAdminMemberships, "Choose a user and a tier")
			return
		}
		m, err := s.backendFor(w, r).Memberships().Assign(r.Context(), userID, tierID)
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminMemberships, "Unable to assign membership")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminMemberships, "Membership active until "+m.ExpiresAt.Format("2 Jan 2006"))
	}
}

func (s *Server) AdminReportsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := r.URL.Query().Get("status")
		if status == "" {
			status = "open"
		}
		if status == "all" {
			status = ""
		}
		reports, err := s.backendFor(w, r).Reports().List(r.Context(), status)
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminDashboard, "Unable to load reports")
			return
		}
		s.render(w, r, "reports.html", "Reports", ReportsPageData{Reports: reports, Status: status})
	}
}

func (s *Server) AdminReportResolveHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		note := strings.TrimSpace(r.FormValue("note"))
		if _, err := s.backendFor(w, r).Reports().Resolve(r.Context(), r.PathValue("id"), note); err != nil {
			s.handleBackendError(w, r, err, RouteAdminReports, "Unable to resolve report")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminReports, "Report resolved")
	}
}

package server

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/jrsteele09/rental-portal/api"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/listing"
	"github.com/rs/zerolog"
)

type ListingsPageData struct {
	Listings api.Page[api.Listing]
	Drafts   []*listing.Draft
	City     string
	Status   string
	Pages    Pager
}

// WizardPageData renders one step of a draft
type WizardPageData struct {
	Draft   *listing.Draft
	Step    listing.Step
	Steps   []listing.Step
	Missing []listing.Step
	Errors  listing.FieldErrors
	Form    url.Values
	Preview api.ListingInput
}

// Value returns the value shown in the form for field
func (d WizardPageData) Value(field string) string {
	return d.Form.Get(field)
}

// formField is one labelled input of a wizard step
type formField struct {
	Name  string
	Label string
	Type  string
	Value string
	Error string
}

func fieldOf(d WizardPageData, name, label, inputType string) formField {
	return formField{Name: name, Label: label, Type: inputType, Value: d.Value(name), Error: d.Errors[name]}
}

func draftPath(id string) string {
	return "/admin/listings/drafts/" + url.PathEscape(id)
}

func draftStepPath(id string, step listing.Step) string {
	return draftPath(id) + "?step=" + url.QueryEscape(string(step))
}

func (s *Server) AdminListingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		page := pageParam(r)
		query := api.ListingQuery{
			Page:     page,
			PageSize: adminPageSize,
			City:     strings.TrimSpace(q.Get("city")),
			Status:   q.Get("status"),
		}
		listings, err := s.backendFor(w, r).Listings().List(r.Context(), query)
		if err != nil {
			s.handleBackendError(w, r, err, RouteAdminDashboard, "Unable to load listings")
			return
		}
		drafts, err := s.wizard.Drafts(r.Context(), currentUser(r).ID)
		if err != nil {
			zerolog.Ctx(r.Context()).Warn().Err(err).Msg("Failed to load drafts")
		}
		s.render(w, r, "listings.html", "Listings", ListingsPageData{
			Listings: listings,
			Drafts:   drafts,
			City:     query.City,
			Status:   query.Status,
			Pages:    newPager(r, page, adminPageSize, listings.Total, len(listings.Items)),
		})
	}
}

// ListingNewHandler opens a fresh draft and sends the user to its first step
func (s *Server) ListingNewHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, err := s.wizard.Start(r.Context(), currentUser(r).ID)
		if err != nil {
			zerolog.Ctx(r.Context()).Err(err).Msg("Failed to start draft")
			s.redirectWithError(w, r, RouteAdminListings, "Unable to start a new listing")
			return
		}
		redirectSuccess(w, r, draftPath(d.ID))
	}
}

func (s *Server) ListingDeleteHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.backendFor(w, r).Listings().Delete(r.Context(), r.PathValue("id")); err != nil {
			s.handleBackendError(w, r, err, RouteAdminListings, "Unable to delete listing")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminListings, "Listing deleted")
	}
}

// loadDraft resolves the {id} path value for the current user, answering the
// request itself when the draft cannot be loaded
func (s *Server) loadDraft(w http.ResponseWriter, r *http.Request) (*listing.Draft, bool) {
	d, err := s.wizard.Load(r.Context(), currentUser(r).ID, r.PathValue("id"))
	if err == nil {
		return d, true
	}
	if perrors.Is(err, perrors.ErrDraftNotFound) {
		s.redirectWithError(w, r, RouteAdminListings, "That draft has expired or does not exist")
		return nil, false
	}
	zerolog.Ctx(r.Context()).Err(err).Msg("Failed to load draft")
	s.redirectWithError(w, r, RouteAdminListings, "Drafts are unavailable right now")
	return nil, false
}

func (s *Server) DraftPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d, ok := s.loadDraft(w, r)
		if !ok {
			return
		}
		step := d.Step
		if raw := r.URL.Query().Get("step"); raw != "" {
			if parsed, err := listing.ParseStep(raw); err == nil {
				step = parsed
			} else if raw == string(listing.StepReview) {
				step = listing.StepReview
			}
		}
		s.renderWizard(w, r, http.StatusOK, d, step, nil, d.Values(step))
	}
}

func (s *Server) renderWizard(w http.ResponseWriter, r *http.Request, status int, d *listing.Draft, step listing.Step, fe listing.FieldErrors, form url.Values) {
	s.renderStatus(w, r, status, "listing_wizard.html", "New listing", WizardPageData{
		Draft:   d,
		Step:    step,
		Steps:   listing.Steps,
		Missing: d.Missing(),
		Errors:  fe,
		Form:    form,
		Preview: d.ToListing(),
	})
}

// DraftStepHandler saves one step. Invalid input re-renders the step with the
// submitted values and per-field messages.
func (s *Server) DraftStepHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		step, err := listing.ParseStep(r.PathValue("step"))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		id := r.PathValue("id")
		d, fe, err := s.wizard.Submit(r.Context(), currentUser(r).ID, id, step, r.PostForm)
		switch {
		case perrors.Is(err, perrors.ErrDraftNotFound):
			s.redirectWithError(w, r, RouteAdminListings, "That draft has expired or does not exist")
			return
		case err != nil:
			zerolog.Ctx(r.Context()).Err(err).Msg("Failed to save draft step")
			s.redirectWithError(w, r, draftStepPath(id, step), "Unable to save this step")
			return
		}
		if len(fe) > 0 {
			s.renderWizard(w, r, http.StatusUnprocessableEntity, d, step, fe, r.PostForm)
			return
		}
		redirectSuccess(w, r, draftStepPath(d.ID, step.Next()))
	}
}

func (s *Server) DraftPublishHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		created, err := s.wizard.Publish(r.Context(), currentUser(r).ID, id, s.backendFor(w, r).Listings())
		switch {
		case err == nil:
			s.redirectWithFlash(w, r, RouteAdminListings, "Published "+strconv.Quote(created.Title))
		case perrors.Is(err, perrors.ErrDraftNotFound):
			s.redirectWithError(w, r, RouteAdminListings, "That draft has expired or does not exist")
		case perrors.Is(err, perrors.ErrDraftIncomplete):
			s.redirectWithError(w, r, draftStepPath(id, listing.StepReview), "Complete every step before publishing")
		default:
			s.handleBackendError(w, r, err, draftStepPath(id, listing.StepReview), "Unable to publish listing")
		}
	}
}

func (s *Server) DraftDiscardHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.wizard.Discard(r.Context(), currentUser(r).ID, r.PathValue("id")); err != nil && !perrors.Is(err, perrors.ErrDraftNotFound) {
			zerolog.Ctx(r.Context()).Err(err).Msg("Failed to discard draft")
			s.redirectWithError(w, r, RouteAdminListings, "Unable to discard draft")
			return
		}
		s.redirectWithFlash(w, r, RouteAdminListings, "Draft discarded")
	}
}

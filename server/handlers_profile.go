package server

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/rental-portal/internal/utils"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/rs/zerolog"
)

const (
	messageProfileFailed  = "Unable to update your profile"
	messagePasswordFailed = "Unable to change your password"
)

func (s *Server) ProfilePageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.render(w, r, "profile.html", "Profile", nil)
	}
}

// ProfileUpdateHandler sends the changed fields to the backend and, once it
// accepts them, merges them into the session's user. The page is rendered
// directly so the merged user is what the user sees.
func (s *Server) ProfileUpdateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		patch := profilePatch(currentUser(r), r)
		if patch.IsEmpty() {
			s.renderPage(w, r, http.StatusOK, "profile.html", PageData{Title: "Profile", Flash: "Nothing to update"})
			return
		}

		if _, ok := s.backendFor(w, r).Profile().Update(r.Context(), patch); !ok {
			s.renderPage(w, r, http.StatusBadGateway, "profile.html", PageData{Title: "Profile", Error: messageProfileFailed})
			return
		}
		if _, ok := s.session(w, r).provider.UpdateUser(patch); !ok {
			zerolog.Ctx(r.Context()).Warn().Msg("Profile updated without a signed-in user")
		}
		s.renderPage(w, r, http.StatusOK, "profile.html", PageData{Title: "Profile", Flash: "Profile updated"})
	}
}

// profilePatch keeps only the fields that differ from the current user
func profilePatch(current users.User, r *http.Request) users.Patch {
	var patch users.Patch
	changed := func(field, was string) *string {
		if _, ok := r.PostForm[field]; !ok {
			return nil
		}
		v := strings.TrimSpace(r.PostForm.Get(field))
		if v == was || v == "" {
			return nil
		}
		return utils.Ptr(v)
	}
	patch.FirstName = changed("firstName", current.FirstName)
	patch.LastName = changed("lastName", current.LastName)
	patch.Email = changed("email", current.Email)
	return patch
}

func (s *Server) PasswordChangeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		current := r.FormValue("currentPassword")
		next := r.FormValue("newPassword")
		fail := func(status int, message string) {
			s.renderPage(w, r, status, "profile.html", PageData{Title: "Profile", Error: message})
		}

		switch {
		case current == "" || next == "":
			fail(http.StatusBadRequest, "Enter your current and new password")
			return
		case next != r.FormValue("confirmPassword"):
			fail(http.StatusBadRequest, "The new passwords do not match")
			return
		case next == current:
			fail(http.StatusBadRequest, "The new password must be different")
			return
		}
		if err := users.ValidatePasswordStrength(next); err != nil {
			fail(http.StatusBadRequest, strings.ToUpper(err.Error()[:1])+err.Error()[1:])
			return
		}
		if !s.backendFor(w, r).Profile().ChangePassword(r.Context(), current, next) {
			fail(http.StatusBadGateway, messagePasswordFailed)
			return
		}
		s.renderPage(w, r, http.StatusOK, "profile.html", PageData{Title: "Profile", Flash: "Password changed"})
	}
}

package api

import (
	"context"
	"net/http"

	"github.com/jrsteele09/rental-portal/users"
	"github.com/rs/zerolog/log"
)

const (
	pathProfile         = "/v1/users/me"
	pathProfilePassword = "/v1/users/me/password"
)

// ProfileService reads and updates the signed-in user's profile.
// Mutations report success as a flag; failures are logged here and never returned.
type ProfileService struct {
	c *Client
}

func (s *ProfileService) Get(ctx context.Context) (users.User, error) {
	var u users.User
	err := s.c.do(ctx, http.MethodGet, pathProfile, nil, nil, &u)
	return u, err
}

// Update sends patch and returns the backend's view of the user
func (s *ProfileService) Update(ctx context.Context, patch users.Patch) (users.User, bool) {
	var u users.User
	if err := s.c.do(ctx, http.MethodPatch, pathProfile, nil, patch, &u); err != nil {
		log.Err(err).Msg("Profile update failed")
		return users.User{}, false
	}
	return u, true
}

type passwordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

func (s *ProfileService) ChangePassword(ctx context.Context, current, next string) bool {
	if err := s.c.do(ctx, http.MethodPost, pathProfilePassword, nil, passwordChange{CurrentPassword: current, NewPassword: next}, nil); err != nil {
		log.Err(err).Msg("Password change failed")
		return false
	}
	return true
}

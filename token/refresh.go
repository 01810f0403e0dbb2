package token

import (
	"context"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/rs/zerolog/log"
)

// Exchanger trades a refresh token for a new token pair
type Exchanger interface {
	Refresh(ctx context.Context, refreshToken string) (sessions.Tokens, error)
}

// Refresher rotates the stored token pair on explicit request.
// A failed exchange clears the store.
type Refresher struct {
	exchanger Exchanger
}

func NewRefresher(exchanger Exchanger) *Refresher {
	return &Refresher{exchanger: exchanger}
}

func (r *Refresher) Refresh(ctx context.Context, store sessions.Store) (sessions.Tokens, error) {
	current, err := store.Get()
	if err != nil {
		return sessions.Tokens{}, perrors.Wrapf(err, "[Refresher Refresh] read tokens")
	}
	if current == nil || current.RefreshToken == "" {
		return sessions.Tokens{}, perrors.ErrNoSession
	}

	next, err := r.exchanger.Refresh(ctx, current.RefreshToken)
	if err != nil {
		if clearErr := store.Clear(); clearErr != nil {
			log.Err(clearErr).Msg("Failed to clear tokens after refresh failure")
		}
		return sessions.Tokens{}, perrors.Wrapf(err, "[Refresher Refresh] exchange")
	}
	// Backends that do not rotate refresh tokens only return a new access token
	if next.RefreshToken == "" {
		next.RefreshToken = current.RefreshToken
	}
	if err := store.Set(next); err != nil {
		return sessions.Tokens{}, perrors.Wrapf(err, "[Refresher Refresh] persist tokens")
	}
	return next, nil
}

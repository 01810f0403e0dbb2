package api

import (
	"context"
	"net/http"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/jrsteele09/rental-portal/token"
)

const (
	pathAuth         = "/v1/auth"
	pathAuthLogout   = "/v1/auth/logout"
	pathAuthRefresh  = "/v1/auth/refresh"
	pathAuthValidate = "/v1/auth/validate"
)

var (
	_ token.Validator = (*AuthService)(nil)
	_ token.Exchanger = (*AuthService)(nil)
)

// AuthService wraps the backend's session endpoints
type AuthService struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type validateRequest struct {
	Token string `json:"token"`
}

// Login exchanges credentials for a token pair
func (s *AuthService) Login(ctx context.Context, email, password string) (sessions.Tokens, error) {
	var tokens sessions.Tokens
	if err := s.c.do(ctx, http.MethodPost, pathAuth, nil, loginRequest{Email: email, Password: password}, &tokens); err != nil {
		return sessions.Tokens{}, err
	}
	if tokens.Empty() {
		return sessions.Tokens{}, perrors.Wrapf(perrors.ErrBackend, "login returned no access token")
	}
	return tokens, nil
}

// Logout invalidates the pair on the backend
func (s *AuthService) Logout(ctx context.Context, tokens sessions.Tokens) error {
	return s.c.WithTokens(ctx, tokens).do(ctx, http.MethodPost, pathAuthLogout, nil, refreshRequest{RefreshToken: tokens.RefreshToken}, nil)
}

// Refresh mints a new pair from a refresh token
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (sessions.Tokens, error) {
	var tokens sessions.Tokens
	if err := s.c.do(ctx, http.MethodPost, pathAuthRefresh, nil, refreshRequest{RefreshToken: refreshToken}, &tokens); err != nil {
		return sessions.Tokens{}, err
	}
	if tokens.Empty() {
		return sessions.Tokens{}, perrors.Wrapf(perrors.ErrBackend, "refresh returned no access token")
	}
	return tokens, nil
}

// Validate asks the backend to introspect an access token. A 401 or 403 is a
// rejection rather than a failure.
func (s *AuthService) Validate(ctx context.Context, accessToken string) (token.Introspection, error) {
	result, err := s.c.raw(ctx, http.MethodPost, pathAuthValidate, validateRequest{Token: accessToken})
	if err != nil {
		if perrors.Is(err, perrors.ErrUnauthorized) || perrors.Is(err, perrors.ErrForbidden) {
			return token.Introspection{Valid: false}, nil
		}
		return token.Introspection{}, err
	}
	return token.Introspection{Valid: result.Get("valid").Bool()}, nil
}

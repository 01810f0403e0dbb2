package auth

import (
	"context"
	"time"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/jrsteele09/rental-portal/token"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/rs/zerolog/log"
)

const (
	// MessageSessionExpired is shown for every failed hydration; callers never learn why
	MessageSessionExpired = "Your session has expired, please sign in again"
	MessageLoginFailed    = "Unable to sign in"

	defaultLogoutTimeout = 5 * time.Second
)

// ClaimsDecoder turns a validated access token into the user it was issued to
type ClaimsDecoder interface {
	Decode(accessToken string) (users.User, error)
}

// RemoteLogout notifies the backend that a token pair is no longer in use
type RemoteLogout interface {
	Logout(ctx context.Context, tokens sessions.Tokens) error
}

// Provider drives a Container through hydration, login, logout and profile updates
type Provider struct {
	state     *Container
	store     sessions.Store
	validator token.Validator
	decoder   ClaimsDecoder

	remote               RemoteLogout
	logoutTimeout        time.Duration
	retainOnNetworkError bool
}

type ProviderOption func(*Provider)

// WithRemoteLogout fires a best-effort backend logout after the local state is cleared
func WithRemoteLogout(remote RemoteLogout, timeout time.Duration) ProviderOption {
	return func(p *Provider) {
		p.remote = remote
		if timeout > 0 {
			p.logoutTimeout = timeout
		}
	}
}

// WithRetainOnNetworkError keeps the stored tokens when the validator cannot be
// reached, so a later load can retry. The request itself is still unauthenticated.
func WithRetainOnNetworkError() ProviderOption {
	return func(p *Provider) {
		p.retainOnNetworkError = true
	}
}

func NewProvider(state *Container, store sessions.Store, validator token.Validator, decoder ClaimsDecoder, opts ...ProviderOption) *Provider {
	p := &Provider{
		state:         state,
		store:         store,
		validator:     validator,
		decoder:       decoder,
		logoutTimeout: defaultLogoutTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) State() State {
	return p.state.State()
}

// Hydrate rebuilds the state from the stored tokens. It runs once per Container;
// later calls return the current state. Failures never escape: they leave the
// state unauthenticated. A cancelled ctx discards the validation result.
func (p *Provider) Hydrate(ctx context.Context) State {
	if current := p.state.State(); current.Phase != PhaseUnknown {
		return current
	}
	p.state.beginLoading(PhaseHydrating)

	tokens, err := p.store.Get()
	if err != nil {
		log.Err(err).Msg("Hydrate: failed to read stored tokens")
		return p.state.unauthenticated("")
	}
	if tokens == nil || tokens.Empty() {
		return p.state.unauthenticated("")
	}

	result, err := p.validator.Validate(ctx, tokens.AccessToken)
	if ctx.Err() != nil {
		log.Debug().Msg("Hydrate: request went away, discarding validation result")
		return p.state.State()
	}

	switch {
	case err != nil:
		if p.retainOnNetworkError && isTransient(err) {
			log.Warn().Err(err).Msg("Hydrate: validator unreachable, keeping tokens for retry")
			return p.state.unauthenticated(MessageSessionExpired)
		}
		log.Info().Err(perrors.Wrapf(err, "validate")).Msg("Hydrate: session validation failed")
		return p.failClosed()
	case !result.Valid:
		log.Info().Err(perrors.ErrInvalidSession).Msg("Hydrate: session rejected by backend")
		return p.failClosed()
	}

	user, err := p.decoder.Decode(tokens.AccessToken)
	if err != nil {
		log.Warn().Err(err).Msg("Hydrate: access token claims rejected")
		return p.failClosed()
	}
	return p.state.authenticated(user)
}

// Login records a session obtained by the caller. No validation round trip is made.
func (p *Provider) Login(user users.User, tokens sessions.Tokens) (State, error) {
	p.state.beginLoading(p.state.State().Phase)
	if err := p.store.Set(tokens); err != nil {
		log.Err(err).Msg("Login: failed to persist tokens")
		return p.state.unauthenticated(MessageLoginFailed), perrors.Wrapf(err, "[Provider Login] persist tokens")
	}
	return p.state.authenticated(user), nil
}

// Logout clears the local session first; that transition is authoritative.
// The backend is then told in the background and its answer is only logged,
// so for a short window the backend may still accept the old tokens.
func (p *Provider) Logout(ctx context.Context) State {
	tokens, err := p.store.Get()
	if err != nil {
		log.Err(err).Msg("Logout: failed to read stored tokens")
	}

	p.state.beginLoading(p.state.State().Phase)
	if err := p.store.Clear(); err != nil {
		log.Err(err).Msg("Logout: failed to clear stored tokens")
	}
	state := p.state.unauthenticated("")

	if p.remote != nil && tokens != nil && !tokens.Empty() {
		go p.notifyLogout(context.WithoutCancel(ctx), *tokens)
	}
	return state
}

func (p *Provider) notifyLogout(ctx context.Context, tokens sessions.Tokens) {
	ctx, cancel := context.WithTimeout(ctx, p.logoutTimeout)
	defer cancel()
	if err := p.remote.Logout(ctx, tokens); err != nil {
		log.Warn().Err(err).Msg("Logout: backend notification failed")
	}
}

// UpdateUser shallow-merges patch into the current user. Tokens are not touched.
// It reports false when there is no authenticated user to update.
func (p *Provider) UpdateUser(patch users.Patch) (State, bool) {
	current := p.state.State()
	if current.User == nil {
		return current, false
	}
	return p.state.authenticated(current.User.Apply(patch)), true
}

func (p *Provider) failClosed() State {
	if err := p.store.Clear(); err != nil {
		log.Err(err).Msg("Hydrate: failed to clear stored tokens")
	}
	return p.state.unauthenticated(MessageSessionExpired)
}

func isTransient(err error) bool {
	return perrors.Is(err, perrors.ErrNetwork) || perrors.Is(err, perrors.ErrBackend)
}

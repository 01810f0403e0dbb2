package auth

import "context"

type providerKey struct{}

// NewContext attaches the request's Provider
func NewContext(ctx context.Context, p *Provider) context.Context {
	return context.WithValue(ctx, providerKey{}, p)
}

// FromContext returns the Provider attached by the session middleware
func FromContext(ctx context.Context) (*Provider, bool) {
	p, ok := ctx.Value(providerKey{}).(*Provider)
	return p, ok && p != nil
}

// StateFromContext returns the current state, or an unknown state when no Provider is attached
func StateFromContext(ctx context.Context) State {
	if p, ok := FromContext(ctx); ok {
		return p.State()
	}
	return State{Phase: PhaseUnknown}
}

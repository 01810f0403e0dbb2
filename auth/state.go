package auth

import (
	"slices"
	"sync"

	"github.com/jrsteele09/rental-portal/users"
)

// Phase is the position of a session in its lifecycle:
// Unknown -> Hydrating -> Authenticated | Unauthenticated
type Phase int

const (
	PhaseUnknown Phase = iota
	PhaseHydrating
	PhaseAuthenticated
	PhaseUnauthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseHydrating:
		return "hydrating"
	case PhaseAuthenticated:
		return "authenticated"
	case PhaseUnauthenticated:
		return "unauthenticated"
	default:
		return "unknown"
	}
}

// State is a snapshot of the auth state. IsAuthenticated always equals User != nil.
type State struct {
	User            *users.User
	IsAuthenticated bool
	IsLoading       bool
	Error           string
	Phase           Phase
}

// Settled reports whether hydration has finished
func (s State) Settled() bool {
	return !s.IsLoading && (s.Phase == PhaseAuthenticated || s.Phase == PhaseUnauthenticated)
}

func (s State) clone() State {
	if s.User != nil {
		u := *s.User
		u.Roles = slices.Clone(u.Roles)
		s.User = &u
	}
	return s
}

// StateReader is the read side handed to views and guards
type StateReader interface {
	State() State
}

// Container holds the auth state of one browser session. It is only mutated
// through a Provider; readers always receive copies.
type Container struct {
	mu    sync.RWMutex
	state State
}

var _ StateReader = (*Container)(nil)

func NewContainer() *Container {
	return &Container{state: State{Phase: PhaseUnknown}}
}

func (c *Container) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state.clone()
}

func (c *Container) update(fn func(*State)) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(&c.state)
	c.state.IsAuthenticated = c.state.User != nil
	return c.state.clone()
}

func (c *Container) beginLoading(phase Phase) State {
	return c.update(func(s *State) {
		s.IsLoading = true
		s.Phase = phase
		s.Error = ""
	})
}

func (c *Container) authenticated(user users.User) State {
	user.Roles = slices.Clone(user.Roles)
	return c.update(func(s *State) {
		s.User = &user
		s.IsLoading = false
		s.Error = ""
		s.Phase = PhaseAuthenticated
	})
}

func (c *Container) unauthenticated(message string) State {
	return c.update(func(s *State) {
		s.User = nil
		s.IsLoading = false
		s.Error = message
		s.Phase = PhaseUnauthenticated
	})
}

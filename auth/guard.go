package auth

import "github.com/jrsteele09/rental-portal/users"

// Decision is what a protected view should do with the current state
type Decision int

const (
	// DecisionPlaceholder renders a skeleton while the state is not yet known
	DecisionPlaceholder Decision = iota
	DecisionAllow
	DecisionRedirect
	DecisionForbidden
)

func (d Decision) String() string {
	switch d {
	case DecisionAllow:
		return "allow"
	case DecisionRedirect:
		return "redirect"
	case DecisionForbidden:
		return "forbidden"
	default:
		return "placeholder"
	}
}

// Authorizer decides whether an authenticated user may see a view
type Authorizer func(users.User) bool

// AdminsOnly admits admin principals
func AdminsOnly(u users.User) bool {
	return u.IsAdmin()
}

// Decide never redirects while the state is loading or has not started loading
func Decide(s State) Decision {
	if !s.Settled() {
		return DecisionPlaceholder
	}
	if !s.IsAuthenticated {
		return DecisionRedirect
	}
	return DecisionAllow
}

// DecideFor is Decide followed by an authorization check on the user
func DecideFor(s State, authorize Authorizer) Decision {
	d := Decide(s)
	if d != DecisionAllow || authorize == nil {
		return d
	}
	if !authorize(*s.User) {
		return DecisionForbidden
	}
	return DecisionAllow
}

package auth_test

import (
	"testing"

	"github.com/jrsteele09/rental-portal/auth"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

func TestDecideNeverRedirectsWhileLoading(t *testing.T) {
	for _, authenticated := range []bool{true, false} {
		s := auth.State{IsLoading: true, IsAuthenticated: authenticated, Phase: auth.PhaseHydrating}
		if authenticated {
			s.User = &users.User{ID: "u1"}
		}
		require.Equal(t, auth.DecisionPlaceholder, auth.Decide(s))
		require.Equal(t, auth.DecisionPlaceholder, auth.DecideFor(s, auth.AdminsOnly))
	}
}

func TestDecideUnknownIsPlaceholder(t *testing.T) {
	require.Equal(t, auth.DecisionPlaceholder, auth.Decide(auth.State{}))
}

func TestSettled(t *testing.T) {
	require.False(t, auth.State{}.Settled())
	require.False(t, auth.State{Phase: auth.PhaseHydrating, IsLoading: true}.Settled())
	// a login or logout in flight keeps the previous phase while loading
	require.False(t, auth.State{Phase: auth.PhaseAuthenticated, IsLoading: true}.Settled())
	require.True(t, auth.State{Phase: auth.PhaseUnauthenticated}.Settled())
	require.True(t, auth.State{Phase: auth.PhaseAuthenticated}.Settled())
}

func TestDecideSettled(t *testing.T) {
	unauth := auth.State{Phase: auth.PhaseUnauthenticated}
	require.Equal(t, auth.DecisionRedirect, auth.Decide(unauth))

	member := auth.State{Phase: auth.PhaseAuthenticated, IsAuthenticated: true, User: &users.User{ID: "u1"}}
	require.Equal(t, auth.DecisionAllow, auth.Decide(member))
	require.Equal(t, auth.DecisionForbidden, auth.DecideFor(member, auth.AdminsOnly))
	require.Equal(t, auth.DecisionAllow, auth.DecideFor(member, nil))

	admin := auth.State{Phase: auth.PhaseAuthenticated, IsAuthenticated: true, User: &users.User{ID: "a1", Kind: users.KindAdmin}}
	require.Equal(t, auth.DecisionAllow, auth.DecideFor(admin, auth.AdminsOnly))
}

func TestDecisionString(t *testing.T) {
	require.Equal(t, "redirect", auth.DecisionRedirect.String())
	require.Equal(t, "placeholder", auth.DecisionPlaceholder.String())
	require.Equal(t, "hydrating", auth.PhaseHydrating.String())
}

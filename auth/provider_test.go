package auth_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jrsteele09/rental-portal/auth"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/internal/utils"
	"github.com/jrsteele09/rental-portal/sessions"
	"github.com/jrsteele09/rental-portal/token"
	"github.com/jrsteele09/rental-portal/token/tokentest"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

type fakeValidator struct {
	mu     sync.Mutex
	result token.Introspection
	err    error
	calls  []string
	before func()
}

func (f *fakeValidator) Validate(_ context.Context, accessToken string) (token.Introspection, error) {
	f.mu.Lock()
	f.calls = append(f.calls, accessToken)
	f.mu.Unlock()
	if f.before != nil {
		f.before()
	}
	return f.result, f.err
}

func (f *fakeValidator) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type fakeRemote struct {
	mu    sync.Mutex
	calls []sessions.Tokens
	err   error
}

func (f *fakeRemote) Logout(ctx context.Context, tokens sessions.Tokens) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, tokens)
	return f.err
}

func (f *fakeRemote) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

// testFixture holds a provider and its collaborators
type testFixture struct {
	store     *sessions.MemoryStore
	validator *fakeValidator
	remote    *fakeRemote
	provider  *auth.Provider
}

func setupTestFixture(t *testing.T, seed *sessions.Tokens, opts ...auth.ProviderOption) *testFixture {
	t.Helper()
	f := &testFixture{
		store:     sessions.NewMemoryStore(seed),
		validator: &fakeValidator{result: token.Introspection{Valid: true}},
		remote:    &fakeRemote{},
	}
	opts = append([]auth.ProviderOption{auth.WithRemoteLogout(f.remote, time.Second)}, opts...)
	f.provider = auth.NewProvider(auth.NewContainer(), f.store, f.validator, token.NewDecoder(), opts...)
	return f
}

func (f *testFixture) requireStoreEmpty(t *testing.T) {
	t.Helper()
	got, err := f.store.Get()
	require.NoError(t, err)
	require.Nil(t, got)
}

func requireInvariant(t *testing.T, s auth.State) {
	t.Helper()
	require.Equal(t, s.User != nil, s.IsAuthenticated)
}

func TestInitialStateIsUnknown(t *testing.T) {
	f := setupTestFixture(t, nil)
	s := f.provider.State()
	require.Equal(t, auth.PhaseUnknown, s.Phase)
	require.False(t, s.IsAuthenticated)
	require.Nil(t, s.User)
}

func TestHydrateWithoutTokensMakesNoCall(t *testing.T) {
	f := setupTestFixture(t, nil)

	s := f.provider.Hydrate(context.Background())

	require.Equal(t, 0, f.validator.callCount())
	require.Equal(t, auth.PhaseUnauthenticated, s.Phase)
	require.False(t, s.IsAuthenticated)
	require.False(t, s.IsLoading)
	require.Nil(t, s.User)
	require.Empty(t, s.Error)
	requireInvariant(t, s)
}

func TestHydrateValidSession(t *testing.T) {
	access := tokentest.UserToken(t)
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: access, RefreshToken: "def"})

	s := f.provider.Hydrate(context.Background())

	require.Equal(t, []string{access}, f.validator.calls)
	require.True(t, s.IsAuthenticated)
	require.False(t, s.IsLoading)
	require.Equal(t, auth.PhaseAuthenticated, s.Phase)
	require.Equal(t, "u1", s.User.ID)
	require.Equal(t, "A", s.User.FirstName)
	require.Equal(t, "B", s.User.LastName)
	require.Equal(t, "a@b.com", s.User.Email)
	requireInvariant(t, s)

	stored, _ := f.store.Get()
	require.Equal(t, access, stored.AccessToken)
}

func TestHydrateInvalidSessionClearsStore(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"})
	f.validator.result = token.Introspection{Valid: false}

	s := f.provider.Hydrate(context.Background())

	require.Equal(t, auth.PhaseUnauthenticated, s.Phase)
	require.False(t, s.IsAuthenticated)
	require.Equal(t, auth.MessageSessionExpired, s.Error)
	f.requireStoreEmpty(t)
	requireInvariant(t, s)
}

func TestHydrateValidatorErrorFailsClosed(t *testing.T) {
	for _, err := range []error{perrors.ErrNetwork, perrors.ErrUnauthorized, perrors.ErrBackend} {
		f := setupTestFixture(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"})
		f.validator.err = err

		s := f.provider.Hydrate(context.Background())

		require.Equal(t, auth.PhaseUnauthenticated, s.Phase, err)
		f.requireStoreEmpty(t)
	}
}

func TestHydrateMalformedClaimsFailsClosed(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: "not-a-jwt", RefreshToken: "def"})

	s := f.provider.Hydrate(context.Background())

	require.False(t, s.IsAuthenticated)
	f.requireStoreEmpty(t)
}

func TestHydrateRetainsTokensOnNetworkErrorWhenConfigured(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"}, auth.WithRetainOnNetworkError())
	f.validator.err = perrors.Wrapf(perrors.ErrNetwork, "dial")

	s := f.provider.Hydrate(context.Background())
	require.False(t, s.IsAuthenticated)
	stored, _ := f.store.Get()
	require.NotNil(t, stored)

	// A rejection is still fatal for the tokens
	f = setupTestFixture(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"}, auth.WithRetainOnNetworkError())
	f.validator.err = perrors.ErrUnauthorized
	f.provider.Hydrate(context.Background())
	f.requireStoreEmpty(t)
}

func TestHydrateCancelledDiscardsResult(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"})
	f.validator.result = token.Introspection{Valid: false}
	ctx, cancel := context.WithCancel(context.Background())
	f.validator.before = cancel

	s := f.provider.Hydrate(ctx)

	require.Equal(t, auth.PhaseHydrating, s.Phase)
	require.True(t, s.IsLoading)
	stored, _ := f.store.Get()
	require.NotNil(t, stored, "a discarded result must not clear tokens")
	require.Equal(t, auth.DecisionPlaceholder, auth.Decide(s))
}

func TestHydrateRunsOnce(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: tokentest.UserToken(t), RefreshToken: "def"})
	f.provider.Hydrate(context.Background())
	f.provider.Hydrate(context.Background())
	require.Equal(t, 1, f.validator.callCount())
}

func TestLoginIsSynchronousWithoutValidation(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.provider.Hydrate(context.Background())

	user := users.User{ID: "u1", FirstName: "A", LastName: "B", Email: "a@b.com"}
	s, err := f.provider.Login(user, sessions.Tokens{AccessToken: "abc", RefreshToken: "def"})
	require.NoError(t, err)

	require.Equal(t, 0, f.validator.callCount())
	require.True(t, s.IsAuthenticated)
	require.False(t, s.IsLoading)
	require.Equal(t, user, *s.User)
	stored, _ := f.store.Get()
	require.Equal(t, &sessions.Tokens{AccessToken: "abc", RefreshToken: "def"}, stored)
}

func TestLoginThenLogout(t *testing.T) {
	sequences := [][]string{
		{"login", "logout"},
		{"login", "login", "logout"},
		{"login", "logout", "login", "logout"},
		{"logout"},
	}
	for _, seq := range sequences {
		f := setupTestFixture(t, nil)
		f.provider.Hydrate(context.Background())
		for i, step := range seq {
			switch step {
			case "login":
				_, err := f.provider.Login(users.User{ID: "u1", Email: "a@b.com"},
					sessions.Tokens{AccessToken: "abc" + string(rune('0'+i)), RefreshToken: "def"})
				require.NoError(t, err)
			case "logout":
				f.provider.Logout(context.Background())
			}
		}

		s := f.provider.State()
		require.Nil(t, s.User, seq)
		require.False(t, s.IsAuthenticated, seq)
		require.False(t, s.IsLoading, seq)
		f.requireStoreEmpty(t)
	}
}

func TestLogoutIsLocalFirstAndNotifiesBackend(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: tokentest.UserToken(t), RefreshToken: "def"})
	f.remote.err = perrors.ErrNetwork
	f.provider.Hydrate(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	s := f.provider.Logout(ctx)
	cancel()

	require.False(t, s.IsAuthenticated)
	f.requireStoreEmpty(t)
	require.Eventually(t, func() bool { return f.remote.count() == 1 }, time.Second, 5*time.Millisecond)
	require.Equal(t, "def", f.remote.calls[0].RefreshToken)
}

func TestLogoutWithoutTokensSkipsBackend(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.provider.Logout(context.Background())
	time.Sleep(20 * time.Millisecond)
	require.Equal(t, 0, f.remote.count())
}

func TestUpdateUserChangesOnlyPatchedFields(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: tokentest.UserToken(t, "landlord"), RefreshToken: "def"})
	before := f.provider.Hydrate(context.Background())
	storedBefore, _ := f.store.Get()

	after, ok := f.provider.UpdateUser(users.Patch{FirstName: utils.Ptr("X")})
	require.True(t, ok)

	require.Equal(t, "X", after.User.FirstName)
	require.Equal(t, before.User.ID, after.User.ID)
	require.Equal(t, before.User.LastName, after.User.LastName)
	require.Equal(t, before.User.Email, after.User.Email)
	require.Equal(t, before.User.Roles, after.User.Roles)
	require.Equal(t, before.User.Kind, after.User.Kind)

	storedAfter, _ := f.store.Get()
	require.Equal(t, storedBefore, storedAfter)
}

func TestUpdateUserWhenUnauthenticated(t *testing.T) {
	f := setupTestFixture(t, nil)
	f.provider.Hydrate(context.Background())
	s, ok := f.provider.UpdateUser(users.Patch{FirstName: utils.Ptr("X")})
	require.False(t, ok)
	require.Nil(t, s.User)
}

func TestStateSnapshotsAreCopies(t *testing.T) {
	f := setupTestFixture(t, &sessions.Tokens{AccessToken: tokentest.UserToken(t, "agent"), RefreshToken: "def"})
	s := f.provider.Hydrate(context.Background())
	s.User.FirstName = "mutated"
	s.User.Roles[0] = users.RoleAdmin

	fresh := f.provider.State()
	require.Equal(t, "A", fresh.User.FirstName)
	require.Equal(t, users.RoleAgent, fresh.User.Roles[0])
}

func TestContextHelpers(t *testing.T) {
	require.Equal(t, auth.PhaseUnknown, auth.StateFromContext(context.Background()).Phase)

	f := setupTestFixture(t, nil)
	f.provider.Hydrate(context.Background())
	ctx := auth.NewContext(context.Background(), f.provider)
	p, ok := auth.FromContext(ctx)
	require.True(t, ok)
	require.Same(t, f.provider, p)
	require.Equal(t, auth.PhaseUnauthenticated, auth.StateFromContext(ctx).Phase)
}

package users_test

import (
	"testing"

	"github.com/jrsteele09/rental-portal/internal/utils"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

func testUser() users.User {
	return users.User{
		ID:        "u1",
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Roles:     []users.RoleType{users.RoleLandlord},
		Kind:      users.KindUser,
	}
}

func TestApplyFirstNameOnly(t *testing.T) {
	u := testUser()
	updated := u.Apply(users.Patch{FirstName: utils.Ptr("X")})

	require.Equal(t, "X", updated.FirstName)
	require.Equal(t, u.ID, updated.ID)
	require.Equal(t, u.LastName, updated.LastName)
	require.Equal(t, u.Email, updated.Email)
	require.Equal(t, u.Roles, updated.Roles)
	require.Equal(t, u.Kind, updated.Kind)
	require.Equal(t, "A", u.FirstName, "original must not change")
}

func TestApplyDoesNotAliasRoles(t *testing.T) {
	u := testUser()
	updated := u.Apply(users.Patch{})
	updated.Roles[0] = users.RoleAdmin

	require.Equal(t, users.RoleLandlord, u.Roles[0])
}

func TestPatchIsEmpty(t *testing.T) {
	require.True(t, users.Patch{}.IsEmpty())
	require.False(t, users.Patch{Email: utils.Ptr("x@y.com")}.IsEmpty())
}

func TestDisplayName(t *testing.T) {
	require.Equal(t, "A B", testUser().DisplayName())
	require.Equal(t, "a@b.com", users.User{Email: "a@b.com"}.DisplayName())
}

func TestAdminDetection(t *testing.T) {
	require.False(t, testUser().IsAdmin())
	require.True(t, users.User{Kind: users.KindAdmin}.IsAdmin())
	require.True(t, users.User{Roles: []users.RoleType{users.RoleAdmin}}.IsAdmin())

	require.Equal(t, users.KindAdmin, users.KindForRoles([]users.RoleType{users.RoleAgent, users.RoleAdmin}))
	require.Equal(t, users.KindUser, users.KindForRoles(nil))
}

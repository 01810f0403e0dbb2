package token_test

import (
	"testing"

	jwtlib "github.com/golang-jwt/jwt/v5"
	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/jrsteele09/rental-portal/token"
	"github.com/jrsteele09/rental-portal/token/tokentest"
	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

func TestDecodeTopLevelClaims(t *testing.T) {
	user, err := token.NewDecoder().Decode(tokentest.UserToken(t, "landlord"))
	require.NoError(t, err)
	require.Equal(t, users.User{
		ID:        "u1",
		FirstName: "A",
		LastName:  "B",
		Email:     "a@b.com",
		Roles:     []users.RoleType{users.RoleLandlord},
		Kind:      users.KindUser,
	}, user)
}

func TestDecodeNestedUserClaims(t *testing.T) {
	raw := tokentest.Sign(t, jwtlib.MapClaims{
		"sub": "ignored",
		"user": map[string]any{
			"id":        "admin-7",
			"firstName": "Root",
			"email":     "root@example.com",
			"kind":      "ADMIN",
		},
	})
	user, err := token.NewDecoder().Decode(raw)
	require.NoError(t, err)
	require.Equal(t, "admin-7", user.ID)
	require.Equal(t, users.KindAdmin, user.Kind)
	require.True(t, user.IsAdmin())
}

func TestDecodeDerivesKindFromRoles(t *testing.T) {
	user, err := token.NewDecoder().Decode(tokentest.UserToken(t, "Admin"))
	require.NoError(t, err)
	require.Equal(t, users.KindAdmin, user.Kind)
	require.Equal(t, []users.RoleType{users.RoleAdmin}, user.Roles)
}

func TestDecodeRejectsSchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		claims jwtlib.MapClaims
	}{
		{name: "missing id", claims: jwtlib.MapClaims{"email": "a@b.com"}},
		{name: "missing email", claims: jwtlib.MapClaims{"sub": "u1"}},
		{name: "bad email", claims: jwtlib.MapClaims{"sub": "u1", "email": "not-an-email"}},
		{name: "unknown kind", claims: jwtlib.MapClaims{"sub": "u1", "email": "a@b.com", "kind": "robot"}},
		{name: "empty role", claims: jwtlib.MapClaims{"sub": "u1", "email": "a@b.com", "roles": []any{""}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := token.NewDecoder().Decode(tokentest.Sign(t, tt.claims))
			require.ErrorIs(t, err, perrors.ErrInvalidClaims)
		})
	}
}

func TestDecodeRejectsMalformedTokens(t *testing.T) {
	for _, raw := range []string{"", "   ", "abc", "a.b.c"} {
		_, err := token.NewDecoder().Decode(raw)
		require.ErrorIs(t, err, perrors.ErrInvalidClaims, raw)
	}
}

// Package tokentest builds access tokens for tests.
package tokentest

import (
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

// Sign returns an HS256 token over claims. The key is irrelevant to the portal,
// which never verifies signatures itself.
func Sign(t *testing.T, claims jwtlib.MapClaims) string {
	t.Helper()
	raw, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return raw
}

// UserToken is a token for the u1 user used across tests
func UserToken(t *testing.T, roles ...string) string {
	t.Helper()
	r := make([]any, 0, len(roles))
	for _, role := range roles {
		r = append(r, role)
	}
	return Sign(t, jwtlib.MapClaims{
		"sub":       "u1",
		"firstName": "A",
		"lastName":  "B",
		"email":     "a@b.com",
		"roles":     r,
		"exp":       time.Now().Add(time.Hour).Unix(),
	})
}

package errors_test

import (
	"testing"

	perrors "github.com/jrsteele09/rental-portal/internal/errors"
	"github.com/stretchr/testify/require"
)

func TestWrapf(t *testing.T) {
	require.NoError(t, perrors.Wrapf(nil, "validate %s", "token"))

	err := perrors.Wrapf(perrors.ErrNetwork, "validate %s", "token")
	require.EqualError(t, err, "validate token: network error")
	require.True(t, perrors.Is(err, perrors.ErrNetwork))
	require.False(t, perrors.Is(err, perrors.ErrInvalidSession))
}

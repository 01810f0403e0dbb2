package users_test

import (
	"testing"

	"github.com/jrsteele09/rental-portal/users"
	"github.com/stretchr/testify/require"
)

func TestValidatePasswordStrength(t *testing.T) {
	tests := []struct {
		password string
		problems []string
	}{
		{"Passw0rd", nil},
		{"short1A", []string{"at least 8 characters"}},
		{"alllowercase1", []string{"an uppercase letter"}},
		{"ALLUPPERCASE1", []string{"a lowercase letter"}},
		{"NoNumbersHere", []string{"a number"}},
		{"", []string{"at least 8 characters", "an uppercase letter", "a lowercase letter", "a number"}},
	}
	for _, tt := range tests {
		t.Run(tt.password, func(t *testing.T) {
			require.Equal(t, tt.problems, users.PasswordProblems(tt.password))
			if tt.problems == nil {
				require.NoError(t, users.ValidatePasswordStrength(tt.password))
			} else {
				require.Error(t, users.ValidatePasswordStrength(tt.password))
			}
		})
	}
}

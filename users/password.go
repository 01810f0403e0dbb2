package users

import (
	"errors"
	"strings"
	"unicode"
)

const MinPasswordLength = 8

// PasswordProblems lists every rule the password breaks, in a fixed order.
// An empty result means the password is acceptable.
func PasswordProblems(password string) []string {
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}

	var problems []string
	if len([]rune(password)) < MinPasswordLength {
		problems = append(problems, "at least 8 characters")
	}
	if !upper {
		problems = append(problems, "an uppercase letter")
	}
	if !lower {
		problems = append(problems, "a lowercase letter")
	}
	if !digit {
		problems = append(problems, "a number")
	}
	return problems
}

// ValidatePasswordStrength checks a new password before it is sent to the backend
func ValidatePasswordStrength(password string) error {
	if problems := PasswordProblems(password); len(problems) > 0 {
		return errors.New("password needs " + strings.Join(problems, ", "))
	}
	return nil
}

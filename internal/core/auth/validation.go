package auth

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrValidation wraps form errors caught before any state change.
var ErrValidation = errors.New("validation failed")

const minPasswordLength = 6

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

func invalid(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

// ValidateLogin checks the login form
func ValidateLogin(req LoginRequest) error {
	if req.Email == "" || req.Password == "" {
		return invalid("please fill in all fields")
	}
	if !emailPattern.MatchString(req.Email) {
		return invalid("please enter a valid email")
	}
	return nil
}

// ValidateRegistration checks the registration form
func ValidateRegistration(req RegisterRequest) error {
	if req.Name == "" || req.Email == "" || req.Password == "" || req.ConfirmPassword == "" {
		return invalid("please fill in all fields")
	}
	if !emailPattern.MatchString(req.Email) {
		return invalid("please enter a valid email")
	}
	if len(req.Password) < minPasswordLength {
		return invalid(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if req.Password != req.ConfirmPassword {
		return invalid("passwords do not match")
	}
	return nil
}

package auth

import (
	"fmt"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// Demo account accepted by Login and Register.
const (
	DemoEmail    = "test@gmail.com"
	demoPassword = "test1234"
	demoUserID   = "1"
	demoUserName = "Test User"
)

// HashPassword hashes a plaintext password using bcrypt
func HashPassword(password string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashedBytes), nil
}

// VerifyPassword checks if a plaintext password matches the hashed password
func VerifyPassword(hashedPassword, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
}

// Credentials is the single email/password pair the dashboard accepts.
type Credentials struct {
	Email        string
	PasswordHash string
}

// Matches reports whether email and password are the accepted pair
func (c Credentials) Matches(email, password string) bool {
	if c.Email == "" || email != c.Email {
		return false
	}
	return VerifyPassword(c.PasswordHash, password) == nil
}

var (
	demoOnce  sync.Once
	demoCreds Credentials
)

// DemoCredentials returns the built-in demo pair. The hash is computed once
// per process.
func DemoCredentials() Credentials {
	demoOnce.Do(func() {
		hash, err := HashPassword(demoPassword)
		if err != nil {
			panic(err) // bcrypt only fails for passwords over 72 bytes
		}
		demoCreds = Credentials{Email: DemoEmail, PasswordHash: hash}
	})
	return demoCreds
}

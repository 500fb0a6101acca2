package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/clarity-dashboard/internal/core/session"
)

var (
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrRegistrationRejected = errors.New("registration is limited to the demo account")
	ErrNoActiveUser         = errors.New("no active user")
	ErrUnknownRole          = errors.New("unknown role")
)

// State is the in-memory reflection of the user persisted in a session
// store. Every mutation writes the full user record before returning.
type State struct {
	store       *session.Store
	credentials Credentials
	user        *User
}

// NewState rehydrates the user from store. A malformed record is dropped and
// the session starts signed out; an unknown role is cleared so the user picks
// one again.
func NewState(ctx context.Context, store *session.Store, creds Credentials) (*State, error) {
	s := &State{store: store, credentials: creds}

	var user User
	ok, err := store.Load(ctx, session.KeyUser, &user)
	switch {
	case errors.Is(err, session.ErrMalformedState):
		log.Warn().Err(err).Str("session", store.Namespace()).Msg("⚠️ Discarding unreadable user record")
	case err != nil:
		return nil, fmt.Errorf("failed to load user: %w", err)
	case ok:
		if user.HasRole() {
			if _, err := ParseRole(string(user.Role)); err != nil {
				log.Warn().Err(err).Str("session", store.Namespace()).Msg("⚠️ Clearing unknown stored role")
				user.Role = ""
			}
		}
		s.user = &user
	}

	return s, nil
}

// User returns a copy of the active user, or nil when signed out
func (s *State) User() *User {
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// HasUser reports whether someone is signed in, with or without a role
func (s *State) HasUser() bool {
	return s.user != nil
}

// IsAuthenticated reports whether a user exists and has selected a role
func (s *State) IsAuthenticated() bool {
	return s.user != nil && s.user.HasRole()
}

// Login authenticates with the demo credentials
func (s *State) Login(ctx context.Context, email, password string) (User, error) {
	if !s.credentials.Matches(email, password) {
		return User{}, ErrInvalidCredentials
	}

	user := User{ID: demoUserID, Email: email, Name: demoUserName}
	if err := s.persist(ctx, user); err != nil {
		return User{}, err
	}

	log.Info().Str("email", email).Str("session", s.store.Namespace()).Msg("✅ User logged in")
	return user, nil
}

// Register creates the demo account under the given display name
func (s *State) Register(ctx context.Context, email, password, name string) (User, error) {
	if !s.credentials.Matches(email, password) {
		return User{}, ErrRegistrationRejected
	}

	user := User{ID: demoUserID, Email: email, Name: name}
	if err := s.persist(ctx, user); err != nil {
		return User{}, err
	}

	log.Info().Str("email", email).Str("session", s.store.Namespace()).Msg("✅ User registered")
	return user, nil
}

// SelectRole sets the role of the active user
func (s *State) SelectRole(ctx context.Context, role Role) (User, error) {
	if s.user == nil {
		return User{}, ErrNoActiveUser
	}
	if _, err := ParseRole(string(role)); err != nil {
		return User{}, err
	}

	user := *s.user
	user.Role = role
	if err := s.persist(ctx, user); err != nil {
		return User{}, err
	}

	log.Info().Str("email", user.Email).Str("role", string(role)).Msg("🎭 Role selected")
	return user, nil
}

// Logout clears the in-memory and persisted user
func (s *State) Logout(ctx context.Context) error {
	if err := s.store.Delete(ctx, session.KeyUser); err != nil {
		return fmt.Errorf("failed to clear user: %w", err)
	}
	if s.user != nil {
		log.Info().Str("email", s.user.Email).Msg("👋 User logged out")
	}
	s.user = nil
	return nil
}

func (s *State) persist(ctx context.Context, user User) error {
	if err := s.store.Save(ctx, session.KeyUser, user); err != nil {
		return fmt.Errorf("failed to persist user: %w", err)
	}
	s.user = &user
	return nil
}

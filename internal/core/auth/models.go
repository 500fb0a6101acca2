package auth

import (
	"encoding/json"
	"fmt"
)

// Role is the persona a user picks after signing in.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleManager Role = "manager"
	RoleAnalyst Role = "analyst"
)

// Roles lists the selectable roles in display order.
var Roles = []Role{RoleAdmin, RoleManager, RoleAnalyst}

var roleTitles = map[Role]string{
	RoleAdmin:   "Administrator",
	RoleManager: "Manager",
	RoleAnalyst: "Analyst",
}

// ParseRole validates a role name
func ParseRole(s string) (Role, error) {
	r := Role(s)
	if _, ok := roleTitles[r]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
	return r, nil
}

// Title returns the display name of the role
func (r Role) Title() string {
	if t, ok := roleTitles[r]; ok {
		return t
	}
	return string(r)
}

// MarshalJSON encodes the unset role as null.
func (r Role) MarshalJSON() ([]byte, error) {
	if r == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(r))
}

func (r *Role) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*r = ""
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	*r = Role(s)
	return nil
}

// User is the signed-in account. Role stays empty until role selection.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

// HasRole reports whether a role has been selected
func (u User) HasRole() bool {
	return u.Role != ""
}

// LoginRequest represents login request payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest represents registration request payload
type RegisterRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

// RoleRequest represents role selection payload
type RoleRequest struct {
	Role string `json:"role"`
}

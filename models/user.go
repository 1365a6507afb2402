package models

import "time"

// User represents an account entity used for authentication and ownership.
// Sensitive fields are never exposed via JSON.
type User struct {
	// ID is the internal unique identifier of the user.
	ID int64 `json:"id"`

	// Username is the unique login identifier.
	Username string `json:"username"`

	// Email is unique across users and may be used instead of Username to log in.
	Email string `json:"email"`

	// PasswordHash stores the bcrypt hash of the password. Never plaintext.
	PasswordHash string `json:"-"`

	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`

	// IsActive is false for disabled accounts; disabled users cannot log in
	// and their tokens are rejected.
	IsActive bool `json:"-"`

	// DateJoined is the timestamp when the account was created.
	DateJoined time.Time `json:"date_joined"`

	// ProjectsCount is derived on read from the projects owned by the user.
	ProjectsCount int64 `json:"projects_count"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterRequest is the payload of the registration endpoint.
type RegisterRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
}

// LoginRequest is the payload of the login endpoint.
// Username may hold either a username or an email address.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// ChangePasswordRequest is the payload of the change-password endpoint.
type ChangePasswordRequest struct {
	OldPassword        string `json:"old_password"`
	NewPassword        string `json:"new_password"`
	NewPasswordConfirm string `json:"new_password_confirm"`
}

// ProfileUpdateRequest carries editable profile fields. Absent fields are
// left untouched on partial updates.
type ProfileUpdateRequest struct {
	Email     Nullable[string] `json:"email,omitzero"`
	FirstName Nullable[string] `json:"first_name,omitzero"`
	LastName  Nullable[string] `json:"last_name,omitzero"`
}

// AuthResponse is returned by register, login, profile update and
// verify-token.
type AuthResponse struct {
	Message string `json:"message"`
	User    *User  `json:"user,omitempty"`
	Token   string `json:"token,omitempty"`
}

// MessageResponse is a bare informational reply.
type MessageResponse struct {
	Message string `json:"message"`
}

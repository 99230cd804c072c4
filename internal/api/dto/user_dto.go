package dto

import "time"

// RegisterRequest creates a directory entry.
type RegisterRequest struct {
	Name           string  `json:"name"`
	Surname        string  `json:"surname"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	Password       string  `json:"password"`
	Role           string  `json:"role"`
	PositionID     *string `json:"position_id,omitempty"`
	MunicipalityID *string `json:"municipality_id,omitempty"`
}

// LoginRequest authenticates a user.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest is a partial update; absent fields stay untouched.
type UpdateUserRequest struct {
	Name           *string `json:"name,omitempty"`
	Surname        *string `json:"surname,omitempty"`
	Email          *string `json:"email,omitempty"`
	Phone          *string `json:"phone,omitempty"`
	Role           *string `json:"role,omitempty"`
	PositionID     *string `json:"position_id,omitempty"`
	MunicipalityID *string `json:"municipality_id,omitempty"`
	Password       *string `json:"password,omitempty"`
}

// SetActiveRequest toggles the account flag.
type SetActiveRequest struct {
	Active bool `json:"active"`
}

// UserResponse is the directory entry with joined display names.
type UserResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Surname        string    `json:"surname"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone"`
	Role           string    `json:"role"`
	PositionID     *string   `json:"position_id,omitempty"`
	Position       string    `json:"position,omitempty"`
	MunicipalityID *string   `json:"municipality_id,omitempty"`
	Municipality   string    `json:"municipality,omitempty"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
}

// SessionResponse is the login payload; the token also travels in the
// HttpOnly cookie.
type SessionResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      UserResponse `json:"user"`
}

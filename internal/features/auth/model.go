package auth

import "greenbasket/internal/features/user"

type RegisterRequest struct {
	Name     string        `json:"name"`
	Email    string        `json:"email"`
	Password string        `json:"password"`
	Phone    string        `json:"phone"`
	Address  *user.Address `json:"address"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UpdateProfileRequest struct {
	Name    *string       `json:"name"`
	Phone   *string       `json:"phone"`
	Address *user.Address `json:"address"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// AuthResponse is returned by register and login: the signed token plus the
// profile the storefront needs to render the session.
type AuthResponse struct {
	Token string   `json:"token"`
	User  *Profile `json:"user"`
}

// Profile is the caller-facing view of their own account. The effective
// permission slugs let clients hide controls the account cannot use.
type Profile struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	Address       *user.Address `json:"address,omitempty"`
	Role          string        `json:"role,omitempty"`
	IsAdmin       bool          `json:"is_admin"`
	LoyaltyPoints int           `json:"loyalty_points"`
	Permissions   []string      `json:"permissions"`
}

package dto

// UserResponse represents a user in API responses. The password hash
// and LINE id never leave the service.
type UserResponse struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Username        *string `json:"username"`
	HouseNumber     *string `json:"house_number"`
	Phone           *string `json:"phone"`
	Address         *string `json:"address"`
	Role            string  `json:"role"`
	IsActive        bool    `json:"is_active"`
	Email           *string `json:"email"`
	Image           *string `json:"image"`
	ProfileComplete bool    `json:"profile_complete"`
	CreatedAt       string  `json:"created_at"`
	LastLoginAt     *string `json:"last_login_at,omitempty"`
}

// AuthResponse is returned by register/login/complete-profile. The
// session token itself travels in the auth-token cookie; it is echoed
// here for non-browser clients.
type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expires_in"`
	User      UserResponse `json:"user"`
}

// MeResponse wraps the current user summary.
type MeResponse struct {
	User UserResponse `json:"user"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

package domain

import "time"

// Role determines coarse-grained route access.
type Role string

const (
	RoleCustomer Role = "CUSTOMER"
	RoleVendor   Role = "VENDOR"
	RoleAdmin    Role = "ADMIN"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleVendor, RoleAdmin:
		return true
	}
	return false
}

// User represents a marketplace account. Username and HouseNumber are
// nullable because a freshly created LINE account has neither until the
// profile-completion step; both are unique when present, and by
// convention username equals the house number.
type User struct {
	ID              string     `json:"id" db:"id"`
	Name            string     `json:"name" db:"name"`
	Username        *string    `json:"username" db:"username"`
	HouseNumber     *string    `json:"house_number" db:"house_number"`
	Phone           *string    `json:"phone" db:"phone"`
	Address         *string    `json:"address" db:"address"`
	Role            Role       `json:"role" db:"role"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	PasswordHash    *string    `json:"-" db:"password_hash"`
	LineID          *string    `json:"-" db:"line_id"`
	Email           *string    `json:"email" db:"email"`
	Image           *string    `json:"image" db:"image"`
	ProfileComplete bool       `json:"profile_complete" db:"profile_complete"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
	LastLoginAt     *time.Time `json:"last_login_at" db:"last_login_at"`
}

// LineProfile is the transient profile fetched from LINE during the
// OAuth callback. It is never persisted as-is; it only seeds or
// refreshes a User.
type LineProfile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName"`
	PictureURL  string `json:"pictureUrl"`
}

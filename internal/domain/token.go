package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionClaims is the signed user snapshot carried in the auth-token
// cookie. The snapshot reflects the user row at issue time; it is not
// refreshed until the token is reissued (login or profile completion).
type SessionClaims struct {
	UserID          string  `json:"user_id"`
	Name            string  `json:"name"`
	Username        *string `json:"username"`
	HouseNumber     *string `json:"house_number"`
	Role            Role    `json:"role"`
	Phone           *string `json:"phone,omitempty"`
	Address         *string `json:"address,omitempty"`
	LineID          *string `json:"line_id,omitempty"`
	Email           *string `json:"email,omitempty"`
	Image           *string `json:"image,omitempty"`
	ProfileComplete bool    `json:"profile_complete"`
	jwt.RegisteredClaims
}

// IsExpired checks if the token is expired
func (c SessionClaims) IsExpired() bool {
	return c.ExpiresAt != nil && time.Now().After(c.ExpiresAt.Time)
}

// SnapshotOf builds claims (without registered fields) from a user row.
func SnapshotOf(u *User) SessionClaims {
	return SessionClaims{
		UserID:          u.ID,
		Name:            u.Name,
		Username:        u.Username,
		HouseNumber:     u.HouseNumber,
		Role:            u.Role,
		Phone:           u.Phone,
		Address:         u.Address,
		LineID:          u.LineID,
		Email:           u.Email,
		Image:           u.Image,
		ProfileComplete: u.ProfileComplete,
	}
}

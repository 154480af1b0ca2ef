package service

import (
	"github.com/CoolVinz/village-shop-sub001/internal/domain"
)

// Identity is the read-only authenticated context the session resolver
// hands to downstream handlers. A nil *Identity means unauthenticated.
type Identity struct {
	UserID          string
	Name            string
	Username        *string
	HouseNumber     *string
	Role            domain.Role
	ProfileComplete bool
}

// IdentityOf derives the request identity from a live user row.
func IdentityOf(u *domain.User) *Identity {
	return &Identity{
		UserID:          u.ID,
		Name:            u.Name,
		Username:        u.Username,
		HouseNumber:     u.HouseNumber,
		Role:            u.Role,
		ProfileComplete: u.ProfileComplete,
	}
}

// Authorize is the single authorization gate. Rules, in order:
// a nil identity is denied; a non-empty role list requires membership;
// a non-empty ownerID requires identity.UserID == ownerID unless the
// actor is ADMIN. ownerID == "" skips the ownership rule.
func Authorize(identity *Identity, required []domain.Role, ownerID string) error {
	if identity == nil {
		return Deny(DenyUnauthenticated)
	}

	if len(required) > 0 && !roleIn(identity.Role, required) {
		return Deny(DenyInsufficientRole)
	}

	if ownerID != "" && identity.UserID != ownerID && identity.Role != domain.RoleAdmin {
		return Deny(DenyNotOwner)
	}

	return nil
}

func roleIn(role domain.Role, set []domain.Role) bool {
	for _, r := range set {
		if r == role {
			return true
		}
	}
	return false
}

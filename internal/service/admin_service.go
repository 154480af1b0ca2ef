package service

import (
	"context"
	"fmt"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
)

// adminService implements AdminService
type adminService struct {
	userRepo repository.UserRepository
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

// ListUsers returns all users
func (s *adminService) ListUsers(ctx context.Context) ([]*dto.UserResponse, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	responses := make([]*dto.UserResponse, 0, len(users))
	for _, user := range users {
		resp := UserResponseOf(user)
		responses = append(responses, &resp)
	}

	return responses, nil
}

// SetUserRole changes a user's role
func (s *adminService) SetUserRole(ctx context.Context, userID string, role domain.Role) error {
	if !role.Valid() {
		return fmt.Errorf("%w: invalid role", ErrValidation)
	}

	return s.userRepo.SetRole(ctx, userID, role)
}

// DeactivateUser disables an account. Accounts are never hard-deleted
// through this surface; ADMIN accounts included, deletion degrades to
// deactivation.
func (s *adminService) DeactivateUser(ctx context.Context, userID string) error {
	return s.userRepo.SetActive(ctx, userID, false)
}

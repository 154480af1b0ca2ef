package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
	"github.com/CoolVinz/village-shop-sub001/internal/utils"
)

// authService implements AuthService interface
type authService struct {
	userRepo   repository.UserRepository
	tokens     *utils.SessionTokenManager
	bcryptCost int
	logger     *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo repository.UserRepository,
	tokens *utils.SessionTokenManager,
	bcryptCost int,
	logger *zap.Logger,
) AuthService {
	return &authService{
		userRepo:   userRepo,
		tokens:     tokens,
		bcryptCost: bcryptCost,
		logger:     logger,
	}
}

// Register creates a password account. The username/house-number
// uniqueness comes from the database constraint; there is deliberately
// no existence pre-check, so two concurrent registrations race at
// INSERT and exactly one wins.
func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*AuthResult, error) {
	username := utils.SanitizeUsername(req.Username)
	houseNumber := utils.SanitizeUsername(req.HouseNumber)

	if username != houseNumber {
		return nil, fmt.Errorf("%w: username must equal house number", ErrValidation)
	}
	if !utils.ValidateHouseNumber(houseNumber) {
		return nil, fmt.Errorf("%w: invalid house number", ErrValidation)
	}
	if !utils.ValidatePassword(req.Password) {
		return nil, fmt.Errorf("%w: password must be at least 6 characters with a letter and a number", ErrValidation)
	}

	role := domain.RoleCustomer
	if req.Role != "" {
		role = domain.Role(req.Role)
		if !role.Valid() || role == domain.RoleAdmin {
			return nil, fmt.Errorf("%w: invalid role", ErrValidation)
		}
	}

	passwordHash, err := utils.HashPassword(req.Password, s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &domain.User{
		Name:            req.Name,
		Username:        &username,
		HouseNumber:     &houseNumber,
		Phone:           optional(req.Phone),
		Address:         optional(req.Address),
		Role:            role,
		IsActive:        true,
		PasswordHash:    &passwordHash,
		ProfileComplete: true,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) || errors.Is(err, repository.ErrDuplicateHouseNumber) {
			return nil, fmt.Errorf("%w: username or house number already taken", ErrConflict)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return s.issueFor(user)
}

// Login authenticates a user by username and password
func (s *authService) Login(ctx context.Context, req *dto.LoginRequest) (*AuthResult, error) {
	user, err := s.userRepo.GetByUsername(ctx, utils.SanitizeUsername(req.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	return s.issueFor(user)
}

// CompleteProfile finishes a LINE-created account: records the house
// number (which becomes the username) and contact details, marks the
// profile complete and reissues the session token with a fresh
// snapshot and expiry.
func (s *authService) CompleteProfile(ctx context.Context, userID string, req *dto.CompleteProfileRequest) (*AuthResult, error) {
	houseNumber := utils.SanitizeUsername(req.HouseNumber)
	if houseNumber == "" {
		return nil, fmt.Errorf("%w: house number is required", ErrValidation)
	}
	if !utils.ValidateHouseNumber(houseNumber) {
		return nil, fmt.Errorf("%w: invalid house number", ErrValidation)
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	user.Username = &houseNumber
	user.HouseNumber = &houseNumber
	if req.Phone != "" {
		user.Phone = &req.Phone
	}
	if req.Address != "" {
		user.Address = &req.Address
	}
	if req.Role != "" {
		role := domain.Role(req.Role)
		if !role.Valid() || role == domain.RoleAdmin {
			return nil, fmt.Errorf("%w: invalid role", ErrValidation)
		}
		user.Role = role
	}
	user.ProfileComplete = true

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateUsername) || errors.Is(err, repository.ErrDuplicateHouseNumber) {
			return nil, fmt.Errorf("%w: house number already registered", ErrConflict)
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return s.issueFor(user)
}

// GetUser gets user information
func (s *authService) GetUser(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	resp := UserResponseOf(user)
	return &resp, nil
}

// ResolveSession turns a raw cookie token into a request identity.
// The token snapshot is only trusted for identity; the activation flag
// is re-read from the store so deactivation takes effect immediately.
func (s *authService) ResolveSession(ctx context.Context, token string) (*Identity, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnauthenticated, err)
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%w: unknown user", ErrUnauthenticated)
		}
		return nil, fmt.Errorf("failed to resolve session user: %w", err)
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return IdentityOf(user), nil
}

func (s *authService) issueFor(user *domain.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, fmt.Errorf("failed to issue session token: %w", err)
	}

	return &AuthResult{
		Token:     token,
		ExpiresIn: s.tokens.ExpirySeconds(),
		User:      user,
	}, nil
}

// UserResponseOf maps a user row to its API representation.
func UserResponseOf(user *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		ID:              user.ID,
		Name:            user.Name,
		Username:        user.Username,
		HouseNumber:     user.HouseNumber,
		Phone:           user.Phone,
		Address:         user.Address,
		Role:            string(user.Role),
		IsActive:        user.IsActive,
		Email:           user.Email,
		Image:           user.Image,
		ProfileComplete: user.ProfileComplete,
		CreatedAt:       user.CreatedAt.Format(time.RFC3339),
	}

	if user.LastLoginAt != nil {
		lastLogin := user.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &lastLogin
	}

	return resp
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

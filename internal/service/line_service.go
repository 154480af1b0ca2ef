package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/CoolVinz/village-shop-sub001/internal/config"
	"github.com/CoolVinz/village-shop-sub001/internal/domain"
	"github.com/CoolVinz/village-shop-sub001/internal/repository"
	"github.com/CoolVinz/village-shop-sub001/internal/utils"
)

// Callback error codes surfaced to the browser via the error-page
// redirect.
const (
	CallbackErrNoCode        = "no_code"
	CallbackErrStateMismatch = "state_mismatch"
	CallbackErrConfig        = "config"
	CallbackErrTokenExchange = "token_exchange"
	CallbackErrProfileFetch  = "profile_fetch"
	CallbackErrUserCreation  = "user_creation"
	CallbackErrGeneric       = "callback_error"
)

// CallbackError is a LINE login failure with the machine-readable code
// the browser flow redirects with. Provider detail stays in the wrapped
// error and the logs; it never reaches the end user.
type CallbackError struct {
	Code string
	err  error
}

func (e *CallbackError) Error() string {
	return fmt.Sprintf("line callback failed (%s)", e.Code)
}

func (e *CallbackError) Unwrap() error {
	return e.err
}

type lineTokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
	IDToken     string `json:"id_token"`
}

// lineService implements LineService: authorization-code exchange,
// profile fetch and find-or-create of the local user.
type lineService struct {
	cfg      config.LineConfig
	client   *resty.Client
	userRepo repository.UserRepository
	tokens   *utils.SessionTokenManager
	states   StateStore
	logger   *zap.Logger
}

// NewLineService creates a new LINE identity bridge
func NewLineService(
	cfg config.LineConfig,
	userRepo repository.UserRepository,
	tokens *utils.SessionTokenManager,
	states StateStore,
	logger *zap.Logger,
) LineService {
	client := resty.New().
		SetTimeout(10 * time.Second).
		SetHeader("Accept", "application/json")

	return &lineService{
		cfg:      cfg,
		client:   client,
		userRepo: userRepo,
		tokens:   tokens,
		states:   states,
		logger:   logger,
	}
}

// AuthURL issues a state nonce and builds the LINE authorize redirect
func (s *lineService) AuthURL(ctx context.Context) (string, error) {
	if !s.cfg.Configured() {
		return "", &CallbackError{Code: CallbackErrConfig, err: errors.New("line channel not configured")}
	}

	state, err := s.states.Issue(ctx)
	if err != nil {
		return "", &CallbackError{Code: CallbackErrGeneric, err: err}
	}

	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", s.cfg.ChannelID)
	q.Set("redirect_uri", s.cfg.RedirectURL)
	q.Set("state", state)
	q.Set("scope", "profile openid")

	return s.cfg.AuthorizeURL + "?" + q.Encode(), nil
}

// HandleCallback runs the full bridge: state check, code exchange,
// profile fetch, find-or-create. Every failure comes back as a
// *CallbackError with a distinguishable code.
func (s *lineService) HandleCallback(ctx context.Context, code, state string) (*AuthResult, error) {
	if code == "" {
		return nil, &CallbackError{Code: CallbackErrNoCode, err: errors.New("missing authorization code")}
	}
	if !s.cfg.Configured() {
		return nil, &CallbackError{Code: CallbackErrConfig, err: errors.New("line channel not configured")}
	}

	ok, err := s.states.Consume(ctx, state)
	if err != nil {
		return nil, &CallbackError{Code: CallbackErrGeneric, err: err}
	}
	if !ok {
		return nil, &CallbackError{Code: CallbackErrStateMismatch, err: errors.New("unknown or replayed state")}
	}

	accessToken, err := s.exchangeCode(ctx, code)
	if err != nil {
		s.logger.Warn("line token exchange failed", zap.Error(err))
		return nil, &CallbackError{Code: CallbackErrTokenExchange, err: err}
	}

	profile, err := s.fetchProfile(ctx, accessToken)
	if err != nil {
		s.logger.Warn("line profile fetch failed", zap.Error(err))
		return nil, &CallbackError{Code: CallbackErrProfileFetch, err: err}
	}

	user, err := s.findOrCreateUser(ctx, profile)
	if err != nil {
		s.logger.Error("line user creation failed", zap.Error(err))
		return nil, &CallbackError{Code: CallbackErrUserCreation, err: err}
	}

	if err := s.userRepo.UpdateLastLogin(ctx, user.ID); err != nil {
		s.logger.Warn("failed to update last login", zap.String("user_id", user.ID), zap.Error(err))
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, &CallbackError{Code: CallbackErrGeneric, err: err}
	}

	return &AuthResult{
		Token:     token,
		ExpiresIn: s.tokens.ExpirySeconds(),
		User:      user,
	}, nil
}

// exchangeCode swaps the authorization code for an access token
func (s *lineService) exchangeCode(ctx context.Context, code string) (string, error) {
	var tokenResp lineTokenResponse

	resp, err := s.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"grant_type":    "authorization_code",
			"code":          code,
			"redirect_uri":  s.cfg.RedirectURL,
			"client_id":     s.cfg.ChannelID,
			"client_secret": s.cfg.ChannelSecret,
		}).
		SetResult(&tokenResp).
		Post(s.cfg.TokenURL)
	if err != nil {
		return "", fmt.Errorf("token endpoint request failed: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("token endpoint returned %d", resp.StatusCode())
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token endpoint returned no access token")
	}

	return tokenResp.AccessToken, nil
}

// fetchProfile loads the LINE profile for an access token
func (s *lineService) fetchProfile(ctx context.Context, accessToken string) (*domain.LineProfile, error) {
	var profile domain.LineProfile

	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetResult(&profile).
		Get(s.cfg.ProfileURL)
	if err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("profile endpoint returned %d", resp.StatusCode())
	}
	if profile.UserID == "" {
		return nil, errors.New("profile response missing userId")
	}

	return &profile, nil
}

// findOrCreateUser maps a LINE profile to a local user. A new user
// starts as CUSTOMER with profileComplete=false; an existing one only
// gets name and picture refreshed. Role and profileComplete are local
// authorization state and are never overwritten by provider data.
func (s *lineService) findOrCreateUser(ctx context.Context, profile *domain.LineProfile) (*domain.User, error) {
	user, err := s.userRepo.GetByLineID(ctx, profile.UserID)
	if err == nil {
		if !user.IsActive {
			return nil, ErrAccountDisabled
		}
		user.Name = profile.DisplayName
		if profile.PictureURL != "" {
			user.Image = &profile.PictureURL
		}
		if err := s.userRepo.Update(ctx, user); err != nil {
			return nil, fmt.Errorf("failed to refresh user from profile: %w", err)
		}
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up line user: %w", err)
	}

	lineID := profile.UserID
	user = &domain.User{
		Name:            profile.DisplayName,
		Role:            domain.RoleCustomer,
		IsActive:        true,
		LineID:          &lineID,
		Image:           optional(profile.PictureURL),
		ProfileComplete: false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// Lost a race with a concurrent callback for the same LINE id.
		if errors.Is(err, repository.ErrDuplicateLineID) {
			return s.userRepo.GetByLineID(ctx, profile.UserID)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

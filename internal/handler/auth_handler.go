package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/CoolVinz/village-shop-sub001/internal/dto"
	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

// AuthHandler handles authentication requests
type AuthHandler struct {
	authService service.AuthService
	cookies     *CookieWriter
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService service.AuthService, cookies *CookieWriter) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cookies:     cookies,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register with username equal to the house number
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Register(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.Set(c, result.Token, result.ExpiresIn)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      service.UserResponseOf(result.User),
	})
}

// Login handles user login
// @Summary Login user
// @Description Authenticate with username and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.Login(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.Set(c, result.Token, result.ExpiresIn)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      service.UserResponseOf(result.User),
	})
}

// Me returns the current user summary
// @Summary Get current user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.MeResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "missing session",
		})
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), identity.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MeResponse{User: *user})
}

// CompleteProfile finishes a LINE-created account and reissues the cookie
// @Summary Complete profile after first LINE login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.CompleteProfileRequest true "Profile data"
// @Success 200 {object} dto.AuthResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /auth/complete-profile [post]
func (h *AuthHandler) CompleteProfile(c *gin.Context) {
	identity := identityFrom(c)
	if identity == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{
			Error:   "Unauthorized",
			Message: "missing session",
		})
		return
	}

	var req dto.CompleteProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:   "Validation failed",
			Message: err.Error(),
		})
		return
	}

	result, err := h.authService.CompleteProfile(c.Request.Context(), identity.UserID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	h.cookies.Set(c, result.Token, result.ExpiresIn)

	c.JSON(http.StatusOK, dto.AuthResponse{
		Token:     result.Token,
		ExpiresIn: result.ExpiresIn,
		User:      service.UserResponseOf(result.User),
	})
}

// Logout clears the session cookie. The token itself stays valid until
// expiry; there is no server-side revocation.
// @Summary Logout user
// @Tags auth
// @Produce json
// @Success 200 {object} dto.SuccessResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	h.cookies.Clear(c)

	c.JSON(http.StatusOK, dto.SuccessResponse{
		Message: "Logged out successfully",
	})
}

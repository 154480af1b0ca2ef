package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/CoolVinz/village-shop-sub001/internal/service"
)

// LineHandler handles the LINE login browser flow. Failures never show
// provider detail; they redirect to the frontend error page with a
// machine-readable code in the query string.
type LineHandler struct {
	lineService service.LineService
	cookies     *CookieWriter
	frontendURL string
	logger      *zap.Logger
}

// NewLineHandler creates a new LINE login handler
func NewLineHandler(lineService service.LineService, cookies *CookieWriter, frontendURL string, logger *zap.Logger) *LineHandler {
	return &LineHandler{
		lineService: lineService,
		cookies:     cookies,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// Login redirects the browser to the LINE authorize endpoint
// @Summary Start LINE login
// @Tags auth
// @Success 302
// @Router /auth/line/login [get]
func (h *LineHandler) Login(c *gin.Context) {
	authURL, err := h.lineService.AuthURL(c.Request.Context())
	if err != nil {
		h.redirectError(c, err)
		return
	}

	c.Redirect(http.StatusFound, authURL)
}

// Callback is the LINE OAuth redirect target
// @Summary LINE login callback
// @Tags auth
// @Param code query string false "Authorization code"
// @Param state query string false "State nonce"
// @Success 302
// @Router /auth/line/callback [get]
func (h *LineHandler) Callback(c *gin.Context) {
	code := c.Query("code")
	state := c.Query("state")

	result, err := h.lineService.HandleCallback(c.Request.Context(), code, state)
	if err != nil {
		h.redirectError(c, err)
		return
	}

	h.cookies.Set(c, result.Token, result.ExpiresIn)

	target := h.frontendURL + "/"
	if !result.User.ProfileComplete {
		target = h.frontendURL + "/auth/complete-profile"
	}

	c.Redirect(http.StatusFound, target)
}

func (h *LineHandler) redirectError(c *gin.Context, err error) {
	code := service.CallbackErrGeneric
	var cbErr *service.CallbackError
	if errors.As(err, &cbErr) {
		code = cbErr.Code
	}

	h.logger.Warn("line login failed",
		zap.String("code", code),
		zap.Error(err),
	)

	c.Redirect(http.StatusFound, fmt.Sprintf("%s/auth/error?error=%s", h.frontendURL, url.QueryEscape(code)))
}

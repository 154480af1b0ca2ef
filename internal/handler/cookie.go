package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieWriter sets and clears the auth-token session cookie with the
// fixed attributes: httpOnly, sameSite=lax, path=/, secure outside
// development.
type CookieWriter struct {
	Name   string
	Secure bool
}

// NewCookieWriter creates a cookie writer for the session token
func NewCookieWriter(name string, secure bool) *CookieWriter {
	return &CookieWriter{Name: name, Secure: secure}
}

// Set writes the session token cookie with the given max age in seconds
func (w *CookieWriter) Set(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(w.Name, token, maxAge, "/", "", w.Secure, true)
}

// Clear expires the session token cookie
func (w *CookieWriter) Clear(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(w.Name, "", -1, "/", "", w.Secure, true)
}

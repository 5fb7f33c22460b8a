package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/qdrive/internal/common"
	"github.com/dmitrijs2005/qdrive/internal/server/auth"
	"github.com/dmitrijs2005/qdrive/internal/server/models"
	"github.com/gin-gonic/gin"
)

var publicPaths = map[string]struct{}{
	"/":                     {},
	"/login":                {},
	"/register":             {},
	"/registration-success": {},
	"/api/auth/login":       {},
	"/api/auth/register":    {},
	"/favicon.ico":          {},
	"/robots.txt":           {},
	"/health":               {},
}

var publicPrefixes = []string{"/static/", "/_next/", "/assets/"}

// IsPublicPath reports whether path may be served without a session.
func IsPublicPath(path string) bool {
	if _, ok := publicPaths[path]; ok {
		return true
	}
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

func isAPIPath(path string) bool {
	return strings.HasPrefix(path, "/api/")
}

// Gatekeeper admits public paths and requests with a valid session cookie.
// Denied API calls get 401 JSON; denied pages are redirected to /login.
func (h *Handler) Gatekeeper() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if IsPublicPath(path) {
			c.Next()
			return
		}

		token, err := c.Cookie(common.AuthCookieName)
		if err != nil || token == "" {
			h.deny(c)
			return
		}

		claims, err := h.auth.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorInternal) {
				h.log.Error(c.Request.Context(), "session check failed", "path", path, "error", err)
			} else {
				h.log.Debug(c.Request.Context(), "session rejected", "path", path, "error", err)
			}
			h.deny(c)
			return
		}

		c.Request = c.Request.WithContext(auth.WithClaims(c.Request.Context(), claims))
		c.Next()
	}
}

func (h *Handler) deny(c *gin.Context) {
	if isAPIPath(c.Request.URL.Path) {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		return
	}
	c.Redirect(http.StatusTemporaryRedirect, "/login")
	c.Abort()
}

// RequireRole rejects requests whose session role differs from role.
func (h *Handler) RequireRole(role models.Role, forbidden string) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := auth.RequireRole(auth.ClaimsFromContext(c.Request.Context()), role)
		switch {
		case err == nil:
			c.Next()
		case errors.Is(err, common.ErrForbidden):
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": forbidden})
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msgUnauthorized})
		}
	}
}

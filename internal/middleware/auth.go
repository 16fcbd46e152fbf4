package middleware

import (
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	apierrors "github.com/yukikurage/disaster-relief-api/internal/errors"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

// RequireAuth checks that the request carries a valid session token.
// Browsers are redirected to loginPath; API clients get a 401.
func RequireAuth(provider *session.Provider, loginPath string) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, err := provider.RequireAuthenticated(c.Request)
		if err != nil {
			if wantsHTML(c) {
				target := loginPath + "?returnUrl=" + url.QueryEscape(c.Request.URL.RequestURI())
				c.Redirect(http.StatusFound, target)
			} else {
				apierrors.Unauthorized(c, "")
			}
			c.Abort()
			return
		}

		// Sliding expiry: past half its lifetime the token is reissued.
		renewed, err := provider.Refresh(c.Request)
		if err != nil {
			logging.FromContext(c).WithError(err).Warn("Failed to renew session")
		} else if renewed != nil {
			provider.WriteCookie(c.Writer, renewed)
		}

		// Store the identity in context for easy access in handlers
		c.Set(constants.ContextKeyIdentity, identity)
		c.Next()
	}
}

// GetIdentity retrieves the caller's identity from context. It returns
// session.Anonymous when RequireAuth did not run.
func GetIdentity(c *gin.Context) session.Identity {
	value, exists := c.Get(constants.ContextKeyIdentity)
	if !exists {
		return session.Anonymous
	}

	identity, ok := value.(session.Identity)
	if !ok {
		return session.Anonymous
	}
	return identity
}

func wantsHTML(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEJSON, gin.MIMEHTML) == gin.MIMEHTML
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

// HomeHandler serves the public landing summary.
type HomeHandler struct {
	provider *session.Provider
}

func NewHomeHandler(provider *session.Provider) *HomeHandler {
	return &HomeHandler{provider: provider}
}

// Index describes the API and whether the caller is signed in.
func (h *HomeHandler) Index(c *gin.Context) {
	identity := h.provider.CurrentIdentity(c.Request)

	response := gin.H{
		"name":          "Disaster Relief Coordination API",
		"authenticated": identity.IsAuthenticated(),
		"links": gin.H{
			"register":   "/api/auth/register",
			"login":      "/api/auth/login",
			"incidents":  "/api/incidents",
			"donations":  "/api/donations",
			"volunteers": "/api/volunteers",
		},
		"messages": takeFlashes(c),
	}
	if identity.IsAuthenticated() {
		response["user"] = identity
	}

	c.JSON(http.StatusOK, response)
}

package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/disaster-relief-api/internal/dto"
	apierrors "github.com/yukikurage/disaster-relief-api/internal/errors"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

const (
	flashSuccess = "success"
	flashError   = "error"
)

// respondServiceError maps a service error to its HTTP response. input is
// echoed back on validation and internal failures so forms can be refilled; it
// must never contain a password.
func respondServiceError(c *gin.Context, err error, input interface{}) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		apierrors.ValidationFailed(c, verr.Fields, input)
	case errors.Is(err, session.ErrUnauthenticated):
		apierrors.Unauthorized(c, "")
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.InvalidCredentials(c)
	case errors.Is(err, services.ErrDuplicateUsername):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateUsername, "username", "Username already exists.")
	case errors.Is(err, services.ErrDuplicateEmail):
		apierrors.Conflict(c, apierrors.ErrCodeDuplicateEmail, "email", "Email already exists.")
	case errors.Is(err, services.ErrNotFound), errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, "")
	default:
		logging.FromContext(c).WithError(err).Error("Request failed")
		apierrors.InternalError(c, "", input)
	}
}

// parseID reads the :id path parameter.
func parseID(c *gin.Context) (uint64, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		apierrors.BadRequest(c, "Invalid id")
		return 0, false
	}
	return id, true
}

// addFlash queues a message for the next response that reads flashes. It must
// run before the response body is written.
func addFlash(c *gin.Context, kind, message string) {
	s := sessions.Default(c)
	s.AddFlash(message, kind)
	if err := s.Save(); err != nil {
		logging.FromContext(c).WithError(err).Warn("Failed to save flash message")
	}
}

// takeFlashes returns and clears the pending flash messages.
func takeFlashes(c *gin.Context) []dto.FlashMessage {
	s := sessions.Default(c)

	var messages []dto.FlashMessage
	for _, kind := range []string{flashSuccess, flashError} {
		for _, f := range s.Flashes(kind) {
			if text, ok := f.(string); ok {
				messages = append(messages, dto.FlashMessage{Kind: kind, Message: text})
			}
		}
	}
	if len(messages) == 0 {
		return nil
	}

	if err := s.Save(); err != nil {
		logging.FromContext(c).WithError(err).Warn("Failed to clear flash messages")
	}
	return messages
}

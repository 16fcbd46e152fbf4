// Package logging builds the process logger and the per-request log entries.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

// New creates a logger with the given level ("debug", "info", ...) and format
// ("text" or "json").
func New(level, format string) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	log.SetLevel(lvl)

	switch format {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	return log, nil
}

// Discard returns a logger that drops everything. Tests use it.
func Discard() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// RequestLogger assigns each request an id, exposes a request-scoped entry to
// handlers, and logs the outcome once the handler chain returns.
func RequestLogger(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(constants.RequestIDHeader)
		if _, err := uuid.Parse(requestID); err != nil {
			requestID = uuid.NewString()
		}
		c.Header(constants.RequestIDHeader, requestID)
		c.Set(constants.ContextKeyRequestID, requestID)

		entry := log.WithFields(logrus.Fields{
			"request_id": requestID,
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
		})
		c.Set(constants.ContextKeyLogger, entry)

		c.Next()

		fields := logrus.Fields{
			"status":    c.Writer.Status(),
			"latency":   time.Since(start).String(),
			"client_ip": c.ClientIP(),
		}
		if identity, ok := c.Get(constants.ContextKeyIdentity); ok {
			if id, ok := identity.(session.Identity); ok && id.IsAuthenticated() {
				fields["user_id"] = id.UserID
			}
		}
		if len(c.Errors) > 0 {
			fields["errors"] = c.Errors.String()
		}

		entry = entry.WithFields(fields)
		switch status := c.Writer.Status(); {
		case status >= 500:
			entry.Error("request failed")
		case status >= 400:
			entry.Warn("request rejected")
		default:
			entry.Info("request completed")
		}
	}
}

// FromContext returns the request-scoped entry, or a bare entry on the standard
// logger when RequestLogger is not installed.
func FromContext(c *gin.Context) *logrus.Entry {
	if v, ok := c.Get(constants.ContextKeyLogger); ok {
		if entry, ok := v.(*logrus.Entry); ok {
			return entry
		}
	}
	return logrus.NewEntry(logrus.StandardLogger())
}

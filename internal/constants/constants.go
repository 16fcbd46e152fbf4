package constants

import "time"

const (
	// ContextKeyIdentity holds the caller's session.Identity in the gin context.
	ContextKeyIdentity = "identity"
	// ContextKeyRequestID holds the request id assigned by the logging middleware.
	ContextKeyRequestID = "request_id"
	// ContextKeyLogger holds the request-scoped *logrus.Entry.
	ContextKeyLogger = "logger"

	SessionCookieName = "relief_session"
	FlashSessionName  = "relief_flash"
	RequestIDHeader   = "X-Request-ID"

	DefaultSessionTTL = 7 * 24 * time.Hour

	MinPageSize     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
	// MaxPage keeps (page-1)*limit well inside int range.
	MaxPage = 100000
)

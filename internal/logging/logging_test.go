package logging

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

func TestNew(t *testing.T) {
	log, err := New("debug", "json")
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	_, err = New("loud", "text")
	assert.Error(t, err)

	_, err = New("info", "xml")
	assert.Error(t, err)
}

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)
	log.SetFormatter(&logrus.JSONFormatter{})

	r := gin.New()
	r.Use(RequestLogger(log))
	r.GET("/api/incidents", func(c *gin.Context) {
		c.Set(constants.ContextKeyIdentity, session.Identity{UserID: 42, Username: "alice"})
		FromContext(c).Info("listing")
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/incidents", nil))

	requestID := w.Header().Get(constants.RequestIDHeader)
	_, err := uuid.Parse(requestID)
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)

	var handlerLine, summary map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[0], &handlerLine))
	require.NoError(t, json.Unmarshal(lines[1], &summary))

	assert.Equal(t, requestID, handlerLine["request_id"])
	assert.Equal(t, "listing", handlerLine["msg"])
	assert.Equal(t, requestID, summary["request_id"])
	assert.Equal(t, float64(200), summary["status"])
	assert.Equal(t, float64(42), summary["user_id"])
}

func TestRequestLoggerKeepsValidIncomingID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestLogger(Discard()))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	incoming := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, incoming)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, incoming, w.Header().Get(constants.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(constants.RequestIDHeader, "not-a-uuid\r\nX-Evil: 1")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "not-a-uuid\r\nX-Evil: 1", w.Header().Get(constants.RequestIDHeader))
}

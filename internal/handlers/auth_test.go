package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/dto"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	provider    *session.Provider
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.GormConfig(logger.Silent))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db, logging.Discard()))

	userRepo := repository.NewUserRepository(db)
	authService := services.NewAuthService(userRepo)
	provider := session.NewProvider(
		authService,
		session.NewTokenManager([]byte("secret"), time.Hour),
		session.CookieOptions{Name: constants.SessionCookieName},
	)

	return authTestEnv{
		db:          db,
		handler:     NewAuthHandler(authService, provider),
		authService: authService,
		provider:    provider,
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.FlashSessionName, store))
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newTestRouter()
	r.POST("/api/auth/register", env.handler.Register)

	payload := map[string]string{
		"username": "newuser",
		"email":    "new@x.com",
		"password": "supersecret",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var response struct {
		Message string         `json:"message"`
		User    dto.ProfileDTO `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["username"], response.User.Username)
	require.True(t, response.User.IsActive)
	require.NotContains(t, w.Body.String(), "supersecret")
}

func TestAuthHandler_RegisterForm(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newTestRouter()
	r.POST("/api/auth/register", env.handler.Register)

	form := "username=formuser&email=form%40x.com&password=pw123"
	req := httptest.NewRequest(http.MethodPost, "/api/auth/register", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
}

func TestAuthHandler_Login(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Register(context.Background(), services.RegisterInput{
		Username: "existing",
		Email:    "existing@x.com",
		Password: "supersecret",
	})
	require.NoError(t, err)

	r := newTestRouter()
	r.POST("/api/auth/login", env.handler.Login)

	payload := map[string]string{
		"username":   "existing",
		"password":   "supersecret",
		"return_url": "//evil.example.com",
	}
	body, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response struct {
		User  session.Identity `json:"user"`
		Token string           `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, payload["username"], response.User.Username)
	require.NotEmpty(t, response.Token)
	require.NotContains(t, w.Body.String(), "return_url")

	var sessionCookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == constants.SessionCookieName {
			sessionCookie = c
		}
	}
	require.NotNil(t, sessionCookie)
	require.Equal(t, response.Token, sessionCookie.Value)
}

func TestAuthHandler_LoginMissingFields(t *testing.T) {
	env := setupAuthTestEnv(t)

	r := newTestRouter()
	r.POST("/api/auth/login", env.handler.Login)

	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", bytes.NewBufferString(`{"username":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_GetCurrentUser(t *testing.T) {
	env := setupAuthTestEnv(t)

	user, err := env.authService.Register(context.Background(), services.RegisterInput{
		Username:  "maya",
		Email:     "maya@x.com",
		Password:  "supersecret",
		FirstName: "Maya",
	})
	require.NoError(t, err)

	sess, err := env.provider.Login(context.Background(), "maya", "supersecret")
	require.NoError(t, err)

	r := newTestRouter()
	r.GET("/api/auth/me", middleware.RequireAuth(env.provider, "/login"), env.handler.GetCurrentUser)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.Header.Set("Authorization", "Bearer "+sess.Token)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response dto.ProfileDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, user.ID, response.ID)
	require.Equal(t, "Maya", response.FirstName)
	require.Equal(t, "maya@x.com", response.Email)
	require.Equal(t, "maya", response.Username)
}

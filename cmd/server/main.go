package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/disaster-relief-api/internal/config"
	"github.com/yukikurage/disaster-relief-api/internal/database"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/router"
	"github.com/yukikurage/disaster-relief-api/internal/session"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}

	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		logrus.Fatalf("Failed to configure logging: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg, log); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(database.GetDB(), log); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	store, err := newFlashStore(cfg, log)
	if err != nil {
		log.Fatalf("Failed to create flash store: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRateLimit, cfg.LoginRateBurst)
	loginLimiter.StartCleanup(ctx, 10*time.Minute)

	r := router.New(router.Options{
		DB:                 database.GetDB(),
		Logger:             log,
		FlashStore:         store,
		Tokens:             session.NewTokenManager([]byte(cfg.SessionSecret), cfg.SessionTTL),
		SecureCookies:      cfg.IsProduction(),
		LoginPath:          cfg.LoginPath,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		LoginLimiter:       loginLimiter,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start server
	go func() {
		log.WithField("addr", srv.Addr).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// newFlashStore keeps flash messages in redis when REDIS_HOST is set and in a
// signed cookie otherwise.
func newFlashStore(cfg *config.Config, log *logrus.Logger) (sessions.Store, error) {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(
			10,    // Redis pool size
			"tcp", // network type
			addr,
			"", // username (empty for default user)
			"", // password (empty = no password)
			[]byte(cfg.SessionSecret),
		)
		if err != nil {
			return nil, err
		}
		log.WithField("addr", addr).Info("Using redis flash store")
		store = rs
	} else {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(router.FlashOptions(cfg.IsProduction()))
	return store, nil
}

// Package router assembles the gin engine: middleware, handlers, and routes.
package router

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/disaster-relief-api/internal/constants"
	"github.com/yukikurage/disaster-relief-api/internal/handlers"
	"github.com/yukikurage/disaster-relief-api/internal/logging"
	"github.com/yukikurage/disaster-relief-api/internal/metrics"
	"github.com/yukikurage/disaster-relief-api/internal/middleware"
	"github.com/yukikurage/disaster-relief-api/internal/repository"
	"github.com/yukikurage/disaster-relief-api/internal/services"
	"github.com/yukikurage/disaster-relief-api/internal/session"
	"gorm.io/gorm"
)

// Options carries everything New needs from main.
type Options struct {
	DB                 *gorm.DB
	Logger             *logrus.Logger
	FlashStore         sessions.Store
	Tokens             *session.TokenManager
	SecureCookies      bool
	LoginPath          string
	CORSAllowedOrigins []string
	LoginLimiter       *middleware.RateLimiter
}

// FlashOptions are the cookie settings for the flash message store. Cookies are
// Secure only when served over HTTPS.
func FlashOptions(secure bool) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// New wires repositories, services, and handlers into a gin engine.
func New(opts Options) *gin.Engine {
	// Repositories
	userRepo := repository.NewUserRepository(opts.DB)
	incidentRepo := repository.NewIncidentRepository(opts.DB)
	donationRepo := repository.NewDonationRepository(opts.DB)
	volunteerRepo := repository.NewVolunteerRepository(opts.DB)

	// Services
	authService := services.NewAuthService(userRepo)
	incidentService := services.NewIncidentService(incidentRepo)
	donationService := services.NewDonationService(donationRepo)
	volunteerService := services.NewVolunteerService(volunteerRepo)

	provider := session.NewProvider(authService, opts.Tokens, session.CookieOptions{
		Name:   constants.SessionCookieName,
		Path:   "/",
		Secure: opts.SecureCookies,
	})

	// Handlers
	homeHandler := handlers.NewHomeHandler(provider)
	authHandler := handlers.NewAuthHandler(authService, provider)
	incidentHandler := handlers.NewIncidentHandler(incidentService)
	donationHandler := handlers.NewDonationHandler(donationService)
	volunteerHandler := handlers.NewVolunteerHandler(volunteerService)

	r := gin.New()
	r.Use(
		gin.Recovery(),
		logging.RequestLogger(opts.Logger),
		metrics.Instrument(),
		middleware.CORS(opts.CORSAllowedOrigins),
		sessions.Sessions(constants.FlashSessionName, opts.FlashStore),
	)

	requireAuth := middleware.RequireAuth(provider, opts.LoginPath)

	loginGuards := []gin.HandlerFunc{}
	if opts.LoginLimiter != nil {
		loginGuards = append(loginGuards, opts.LoginLimiter.Handler())
	}

	r.GET("/", homeHandler.Index)

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		sqlDB, err := opts.DB.DB()
		if err == nil {
			err = sqlDB.PingContext(c.Request.Context())
		}
		if err != nil {
			logging.FromContext(c).WithError(err).Error("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unavailable",
				"message": "Database is unreachable",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Disaster Relief API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// API routes
	api := r.Group("/api")
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", append(loginGuards, authHandler.Login)...)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.GetCurrentUser)
		}

		// Incident routes (protected)
		incidents := api.Group("/incidents")
		incidents.Use(requireAuth)
		{
			incidents.GET("", incidentHandler.ListIncidents)
			incidents.POST("", incidentHandler.CreateIncident)
			incidents.GET("/:id", incidentHandler.GetIncident)
		}

		// Donation routes (protected)
		donations := api.Group("/donations")
		donations.Use(requireAuth)
		{
			donations.GET("", donationHandler.ListMyDonations)
			donations.POST("", donationHandler.CreateDonation)
			donations.GET("/all", donationHandler.ListAllDonations)
			donations.GET("/:id", donationHandler.GetDonation)
		}

		// Volunteer routes (protected)
		volunteers := api.Group("/volunteers")
		volunteers.Use(requireAuth)
		{
			volunteers.GET("", volunteerHandler.ListMyVolunteering)
			volunteers.POST("", volunteerHandler.RegisterVolunteer)
			volunteers.GET("/all", volunteerHandler.ListActiveVolunteers)
			volunteers.GET("/me", volunteerHandler.GetMyRegistration)
			volunteers.GET("/:id", volunteerHandler.GetVolunteer)
		}
	}

	return r
}

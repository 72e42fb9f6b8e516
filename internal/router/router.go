package router

import (
	"net/http"
	"time"

	"moodyme/backend/internal/auth"
	"moodyme/backend/internal/database"
	"moodyme/backend/internal/handlers"
	mmmiddleware "moodyme/backend/internal/middleware"
	mmlog "moodyme/backend/pkg/log"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// SetupRouter configures and returns the Gin engine with all routes wired.
func SetupRouter(log *zap.Logger) *gin.Engine {
	router := gin.New()

	router.Use(mmmiddleware.Metrics())
	router.Use(mmmiddleware.GinZap(log, time.RFC3339, true))
	router.Use(mmmiddleware.GinRecovery(log, time.RFC3339, true, true))

	// Prometheus metrics endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	router.GET("/health", healthCheckHandler)

	setupPublicRoutes(router)
	setupAuthRoutes(router)
	setupAdminRoutes(router)

	return router
}

func healthCheckHandler(c *gin.Context) {
	sqlDB, err := database.DB.DB()
	if err != nil {
		mmlog.L.Error("Failed to get DB instance for health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database instance error"})
		return
	}

	if err := sqlDB.Ping(); err != nil {
		mmlog.L.Error("Database ping failed during health check", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "error", "message": "database ping failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"database": "connected",
	})
}

// setupPublicRoutes registers the unauthenticated routes consumed by the
// mobile app.
func setupPublicRoutes(r *gin.Engine) {
	publicApi := r.Group("/api")
	{
		publicApi.GET("/banners", handlers.ListPublicBannersHandler)
		publicApi.GET("/content", handlers.ListPublicContentHandler)
	}
}

func setupAuthRoutes(r *gin.Engine) {
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/signup", handlers.SignupHandler)
		authRoutes.POST("/login", handlers.LoginHandler)

		// The password reset endpoints are rate-limited per source IP to slow
		// down enumeration and code guessing.
		resetRoutes := authRoutes.Group("")
		resetRoutes.Use(mmmiddleware.RateLimit(1))
		{
			resetRoutes.POST("/forgot-password", handlers.ForgotPasswordHandler)
			resetRoutes.POST("/reset-password", handlers.ResetPasswordHandler)
		}
	}
}

// setupAdminRoutes registers the back-office API. Every route requires a
// valid JWT with the admin role.
func setupAdminRoutes(r *gin.Engine) {
	admin := r.Group("/api/admin")
	admin.Use(auth.AuthMiddleware(), auth.AdminRequired())
	{
		admin.GET("/me", func(c *gin.Context) {
			userID, _ := c.Get("userID")
			userEmail, _ := c.Get("userEmail")
			userRole, _ := c.Get("userRole")
			c.JSON(http.StatusOK, gin.H{
				"user_id": userID,
				"email":   userEmail,
				"role":    userRole,
			})
		})

		bannerRoutes := admin.Group("/banners")
		{
			bannerRoutes.POST("", handlers.CreateBannerHandler)
			bannerRoutes.GET("", handlers.ListBannersHandler)
			bannerRoutes.GET("/:bannerId", handlers.GetBannerHandler)
			bannerRoutes.PUT("/:bannerId", handlers.UpdateBannerHandler)
			bannerRoutes.DELETE("/:bannerId", handlers.DeleteBannerHandler)
		}

		contentRoutes := admin.Group("/content")
		{
			contentRoutes.POST("", handlers.CreateContentHandler)
			contentRoutes.GET("", handlers.ListContentHandler)
			contentRoutes.GET("/:contentId", handlers.GetContentHandler)
			contentRoutes.PUT("/:contentId", handlers.UpdateContentHandler)
			contentRoutes.DELETE("/:contentId", handlers.DeleteContentHandler)
		}

		userRoutes := admin.Group("/users")
		{
			userRoutes.GET("", handlers.ListUsersHandler)
			userRoutes.GET("/:userId", handlers.GetUserHandler)
			userRoutes.PUT("/:userId", handlers.UpdateUserHandler)
			userRoutes.DELETE("/:userId", handlers.DeleteUserHandler)
		}
	}
}

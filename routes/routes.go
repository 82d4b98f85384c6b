package routes

import (
	"time"

	"checkfree/handlers"
	"checkfree/middleware"
	"checkfree/models"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers the Google sign-in endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.GET("/google/login", hb.Auth.GoogleLoginHandler)
		api.GET("/google/callback", hb.Auth.GoogleCallbackHandler)
		api.POST("/logout", hb.Auth.LogoutHandler)
	}
}

// RegisterUserRoutes registers role management and the seller directory.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.AuthService))
		api.GET("/user/check", hb.User.CheckUserHandler)
		api.POST("/user/role", hb.User.SetRoleHandler)
		api.GET("/sellers", hb.User.ListSellersHandler)
	}
}

// RegisterBookingRoutes registers availability and appointment endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api")
	{
		api.Use(middleware.SessionAuthMiddleware(hb.AuthService))
		api.GET("/availability", hb.Availability.GetAvailabilityHandler)
		api.GET("/appointments", hb.Appointment.ListAppointmentsHandler)
		api.GET("/appointments/history", hb.Appointment.AppointmentHistoryHandler)
		api.POST("/appointments",
			middleware.RequireRole(hb.UserService, models.RoleBuyer),
			hb.Appointment.CreateAppointmentHandler,
		)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", handlers.HealthHandler)
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle, allowedOrigins []string) {
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type", "X-Request-Id"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || (len(allowedOrigins) == 1 && allowedOrigins[0] == "*") {
		// Any origin may call the API, but only with bearer tokens.
		corsCfg.AllowAllOrigins = true
		corsCfg.AllowCredentials = false
	} else {
		corsCfg.AllowOrigins = allowedOrigins
	}
	r.Use(cors.New(corsCfg))

	r.HandleMethodNotAllowed = true
	r.NoMethod(handlers.MethodNotAllowedHandler)
	r.NoRoute(handlers.NotFoundHandler)

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterHealthRoute(r)
}

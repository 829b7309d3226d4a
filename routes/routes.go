package routes

import (
	"net/http"
	"time"

	"localbooker/handlers"
	"localbooker/middleware"
	"localbooker/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration and sign-in.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.Auth.RegisterHandler)
		api.POST("/login", hb.Auth.LoginHandler)
	}
}

// RegisterUserRoutes registers the signed-in user's profile and feedback
// endpoints.
func RegisterUserRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/users")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.GET("/me", hb.Users.ProfileHandler)
		api.PUT("/me", hb.Users.UpdateProfileHandler)
		api.PUT("/me/password", hb.Users.UpdatePasswordHandler)
		api.GET("/me/activity", hb.Users.ActivityHandler)
	}

	feedback := r.Group("/api/feedback")
	{
		feedback.Use(middleware.JWTAuthUserMiddleware())
		feedback.POST("", hb.Users.SubmitFeedbackHandler)
		feedback.GET("", hb.Users.MyFeedbackHandler)
	}
}

// RegisterServiceRoutes registers the public catalog.
func RegisterServiceRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/services")
	{
		api.GET("", hb.Services.ListServicesHandler)
		api.GET("/id/:id", hb.Services.GetServiceHandler)
	}
}

// RegisterBookingRoutes registers the booking lifecycle endpoints.
func RegisterBookingRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/bookings")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Bookings.CreateBookingHandler)
		api.GET("", hb.Bookings.MyBookingsHandler)
		api.POST("/cancel/:id", hb.Bookings.CancelBookingHandler)
		api.POST("/checkout", hb.Payments.CheckoutHandler)
	}

	// Stripe calls this; authentication is the signature header.
	r.POST("/api/payments/webhook", hb.Payments.WebhookHandler)
}

// RegisterAdminRoutes registers the admin console.
func RegisterAdminRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/admin")
	{
		api.Use(middleware.JWTAuthAdminMiddleware())
		api.GET("/dashboard", hb.Admin.DashboardHandler)

		api.GET("/bookings", hb.Admin.ListBookingsHandler)
		api.POST("/bookings", hb.Admin.ManualBookingHandler)
		api.PUT("/bookings/bulk-status", hb.Admin.BulkUpdateBookingStatusHandler)
		api.PUT("/bookings/status/:id", hb.Admin.UpdateBookingStatusHandler)
		api.PUT("/bookings/reschedule/:id", hb.Admin.RescheduleBookingHandler)
		api.POST("/bookings/cancel/:id", hb.Bookings.CancelBookingHandler)
		api.POST("/bookings/delete", hb.Admin.DeleteBookingsHandler)
		api.DELETE("/bookings/delete/:id", hb.Admin.DeleteBookingHandler)

		api.POST("/services", hb.Services.CreateServiceHandler)
		api.PUT("/services/update/:id", hb.Services.UpdateServiceHandler)
		api.DELETE("/services/delete/:id", hb.Services.DeleteServiceHandler)

		api.GET("/users", hb.Admin.ListUsersHandler)
		api.PUT("/users/status/:id", hb.Admin.SetUserStatusHandler)
		api.PUT("/users/role/:id", hb.Admin.SetUserRoleHandler)
		api.DELETE("/users/delete/:id", hb.Admin.DeleteUserHandler)

		api.GET("/settings", hb.Admin.GetSettingsHandler)
		api.PUT("/settings", hb.Admin.UpdateSettingsHandler)

		api.GET("/feedback", hb.Admin.ListFeedbackHandler)
		api.POST("/feedback/reply/:id", hb.Admin.ReplyFeedbackHandler)

		api.POST("/sweep", hb.Admin.RunSweepHandler)
		api.DELETE("/uploads/:id", hb.Storage.DeleteUploadHandler)
	}
}

// RegisterUploadRoutes registers media uploads for signed-in users.
func RegisterUploadRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/uploads")
	{
		api.Use(middleware.JWTAuthUserMiddleware())
		api.POST("", hb.Storage.UploadHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint serving the latest
// dependency health snapshot.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "dependencies": utils.GetHealthStatus()})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	RegisterAuthRoutes(r, hb)
	RegisterUserRoutes(r, hb)
	RegisterServiceRoutes(r, hb)
	RegisterBookingRoutes(r, hb)
	RegisterUploadRoutes(r, hb)
	RegisterAdminRoutes(r, hb)
	RegisterHealthRoute(r)
}

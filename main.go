// File: localbooker/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"localbooker/config"
	"localbooker/cron"
	"localbooker/database"
	bookingRepoPkg "localbooker/database/repository/booking"
	feedbackRepoPkg "localbooker/database/repository/feedback"
	serviceRepoPkg "localbooker/database/repository/service"
	settingsRepoPkg "localbooker/database/repository/settings"
	userRepoPkg "localbooker/database/repository/user"
	"localbooker/handlers"
	"localbooker/middleware"
	"localbooker/routes"
	"localbooker/services/admin"
	"localbooker/services/booking"
	"localbooker/services/catalog"
	"localbooker/services/feedback"
	"localbooker/services/notification"
	"localbooker/services/payment"
	"localbooker/services/user"
	"localbooker/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stripe/stripe-go/v76"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()

	cloudinaryStorageService, err := utils.Cloudinary()
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary storage service: %v", err)
	}

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())
	stripe.Key = config.AppConfig.StripeKey

	// repositories.
	bookingRepo := bookingRepoPkg.NewMongoBookingRepo()
	serviceRepo := serviceRepoPkg.NewMongoServiceRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()
	feedbackRepo := feedbackRepoPkg.NewMongoFeedbackRepo()
	settingsRepo := settingsRepoPkg.NewMongoSettingsRepo()

	// services.
	notificationService, err := notification.NewDefaultNotificationService(
		userRepo,
		serviceRepo,
		notification.NewSMTPMailer(),
		config.AppConfig.AdminEmail,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize notification service: %v", err)
	}

	engine := booking.NewEngine(bookingRepo, serviceRepo, notificationService)

	userService := &user.DefaultUserService{
		Repo:     userRepo,
		Bookings: bookingRepo,
	}
	catalogService := &catalog.DefaultCatalogService{
		Repo:     serviceRepo,
		Bookings: bookingRepo,
	}
	feedbackService := &feedback.DefaultFeedbackService{
		Repo:     feedbackRepo,
		Notifier: notificationService,
	}
	adminService := &admin.DefaultAdminService{
		Bookings: bookingRepo,
		Services: serviceRepo,
		Users:    userRepo,
		Settings: settingsRepo,
	}
	paymentService := &payment.DefaultPaymentService{
		Services: serviceRepo,
		Engine:   engine,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		Auth:  &handlers.AuthHandler{UserService: userService},
		Users: &handlers.UserHandler{UserService: userService, FeedbackService: feedbackService},
		Bookings: &handlers.BookingHandler{
			Engine:   engine,
			Bookings: bookingRepo,
		},
		Services: &handlers.ServiceHandler{Catalog: catalogService},
		Payments: &handlers.PaymentHandler{Payments: paymentService},
		Admin: &handlers.AdminHandler{
			AdminService:    adminService,
			Engine:          engine,
			UserService:     userService,
			FeedbackService: feedbackService,
		},
		Storage: &handlers.StorageHandler{Storage: cloudinaryStorageService},
	}

	routes.RegisterRoutes(router, handlerBundle)

	// Background availability sweep and dependency health monitor.
	cron.InitSweepWorker(engine)
	utils.StartHealthMonitor([]*redis.Client{utils.GetCacheClient()}, database.MongoClient)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"checkfree/config"
	"checkfree/database"
	appointmentRepoPkg "checkfree/database/repository/appointment"
	userRepoPkg "checkfree/database/repository/user"
	"checkfree/handlers"
	"checkfree/middleware"
	"checkfree/routes"
	"checkfree/services/appointment"
	"checkfree/services/auth"
	"checkfree/services/availability"
	"checkfree/services/calendar"
	"checkfree/services/user"
	"checkfree/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	cfg := config.AppConfig
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.InitDB(ctx); err != nil {
		logger.Fatal("main: failed to connect to MongoDB", zap.Error(err))
	}
	if err := utils.InitAuthCache(ctx); err != nil {
		logger.Fatal("main: failed to connect to Redis", zap.Error(err))
	}
	utils.StartHealthMonitor(ctx, utils.GetAuthCacheClient(), database.MongoClient)

	cipher, err := utils.NewTokenCipher(cfg.RefreshTokenSecret)
	if err != nil {
		logger.Fatal("main: failed to initialize token cipher", zap.Error(err))
	}

	// repositories.
	userRepo := userRepoPkg.NewMongoUserRepo()
	appointmentRepo := appointmentRepoPkg.NewMongoAppointmentRepo()

	// services.
	oauthCfg := auth.NewOAuthConfig(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.GoogleRedirectURL)
	calendarClient := calendar.NewGoogleClient(oauthCfg)
	redisStore := auth.NewRedisStore(utils.GetAuthCacheClient())

	userService := &user.DefaultUserService{
		Repo:   userRepo,
		Cipher: cipher,
	}
	authService := &auth.DefaultAuthService{
		Identity:   &auth.GoogleIdentity{Config: oauthCfg},
		States:     redisStore,
		Sessions:   redisStore,
		Users:      userService,
		JWTSecret:  []byte(cfg.JWTSecret),
		SessionTTL: cfg.SessionTTL(),
	}
	availabilityService := &availability.DefaultAvailabilityService{
		Users:      userRepo,
		Calendar:   calendarClient,
		Cipher:     cipher,
		Location:   cfg.Location(),
		StartHour:  cfg.WorkdayStartHour,
		EndHour:    cfg.WorkdayEndHour,
		SlotLength: time.Duration(cfg.SlotMinutes) * time.Minute,
	}
	appointmentService := &appointment.DefaultAppointmentService{
		Users:        userRepo,
		Appointments: appointmentRepo,
		Calendar:     calendarClient,
		Cipher:       cipher,
		Lookahead:    time.Duration(cfg.AppointmentLookaheadDays) * 24 * time.Hour,
		HistoryLimit: 100,
	}

	// Assemble the handler bundle.
	handlerBundle := &handlers.HandlerBundle{
		AuthService:  authService,
		UserService:  userService,
		Auth:         handlers.NewAuthHandler(authService, cfg.FrontendURL, cfg.SessionTTL(), cfg.IsProduction()),
		User:         handlers.NewUserHandler(userService),
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService),
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin))
	routes.RegisterRoutes(router, handlerBundle, cfg.AllowedOrigins())

	srv := &http.Server{
		Addr:              "0.0.0.0:" + cfg.AppPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("main: server forced to shutdown", zap.Error(err))
	}
	if err := database.Close(shutdownCtx); err != nil {
		logger.Error("main: failed to disconnect MongoDB", zap.Error(err))
	}
	if err := utils.GetAuthCacheClient().Close(); err != nil {
		logger.Error("main: failed to close Redis", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

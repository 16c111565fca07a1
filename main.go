package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"schoolhealth/config"
	"schoolhealth/cron"
	"schoolhealth/database"
	appointmentRepo "schoolhealth/database/repository/appointment"
	"schoolhealth/handlers"
	"schoolhealth/middleware"
	"schoolhealth/routes"
	"schoolhealth/services/appointment"
	"schoolhealth/services/tasks"
	"schoolhealth/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()
	defer func() { _ = logger.Sync() }()

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	database.InitDB()
	cache := utils.GetCacheClient()

	monitorCtx, stopMonitor := context.WithCancel(context.Background())
	defer stopMonitor()
	utils.StartHealthMonitor(monitorCtx, cache, database.MongoClient)

	validator, err := appointment.NewValidatorFromConfig(config.AppConfig)
	if err != nil {
		logger.Fatal("main: invalid schedule configuration", zap.Error(err))
	}

	// repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	if err := apptRepo.EnsureIndexes(); err != nil {
		logger.Fatal("main: failed to ensure appointment indexes", zap.Error(err))
	}

	// reminders.
	reminderClient := cron.NewReminderClient()
	defer reminderClient.Close()
	reminderWorker := cron.InitReminderWorker(apptRepo, logger)

	reminders := &tasks.AsynqReminderScheduler{
		Client: reminderClient,
		Lead:   time.Duration(config.AppConfig.ReminderLeadMinutes) * time.Minute,
	}

	// services.
	appointmentService := &appointment.DefaultAppointmentService{
		Repo:      apptRepo,
		Validator: validator,
		Reminders: reminders,
		Messages:  appointment.Messages(config.AppConfig.ScheduleLocale),
		Logger:    logger,
	}

	appointmentHandler := handlers.NewAppointmentHandler(appointmentService, cache, logger)
	handlerBundle := handlers.NewHandlerBundle(appointmentHandler, middleware.JWTAuthParentMiddleware())

	// Create the Gin router.
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.RateLimitMiddleware(config.AppConfig.MaxRequestsPerMin))

	routes.RegisterRoutes(router, handlerBundle)

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
		logger.Sugar().Errorf("main: server forced to shutdown: %v", err)
	}
	reminderWorker.Shutdown()
	if err := database.Close(ctx); err != nil {
		logger.Warn("main: failed to disconnect MongoDB", zap.Error(err))
	}

	logger.Sugar().Info("main: server stopped gracefully")
}

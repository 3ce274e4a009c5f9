package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hibiken/asynq"

	"github.com/vvladislovv/buitifal/config"
	"github.com/vvladislovv/buitifal/cron"
	"github.com/vvladislovv/buitifal/database"
	clientRepoPkg "github.com/vvladislovv/buitifal/database/repository/client"
	reservationRepoPkg "github.com/vvladislovv/buitifal/database/repository/reservation"
	"github.com/vvladislovv/buitifal/handlers"
	"github.com/vvladislovv/buitifal/middleware"
	"github.com/vvladislovv/buitifal/routes"
	"github.com/vvladislovv/buitifal/services/booking"
	"github.com/vvladislovv/buitifal/services/catalog"
	"github.com/vvladislovv/buitifal/services/loyalty"
	"github.com/vvladislovv/buitifal/services/tasks"
	"github.com/vvladislovv/buitifal/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitSessionCache()

	// Repositories.
	reservationRepo := reservationRepoPkg.NewMongoReservationRepo()
	clientRepo := clientRepoPkg.NewMongoClientRepo()

	// Services.
	loyaltyService := &loyalty.DefaultLoyaltyService{
		Clients: clientRepo,
	}

	asynqClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer asynqClient.Close()

	scheduler := &tasks.AsynqScheduler{
		Client:       asynqClient,
		ReminderLead: time.Duration(config.AppConfig.ReminderLeadMin) * time.Minute,
	}

	sessionStore := booking.NewRedisSessionStore(
		utils.GetSessionCacheClient(),
		time.Duration(config.AppConfig.SessionTTLMin)*time.Minute,
	)

	bookingService := &booking.DefaultBookingSessionService{
		Catalog:      catalog.DefaultFeed(),
		Reservations: reservationRepo,
		Loyalty:      loyaltyService,
		Sessions:     sessionStore,
		Scheduler:    scheduler,
		Hours: booking.WorkingHours{
			StartHour: config.AppConfig.WorkDayStartHour,
			EndHour:   config.AppConfig.WorkDayEndHour,
		},
		SlotMinutes: config.AppConfig.SlotMinutes,
	}

	// Background worker for reservation follow-ups.
	cron.InitReservationWorker(reservationRepo)

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	bookingHandler := handlers.NewBookingHandler(bookingService, logger)
	catalogHandler := handlers.NewCatalogHandler(bookingService.Catalog)
	loyaltyHandler := handlers.NewLoyaltyHandler(loyaltyService, logger)
	routes.SetupRoutes(router, bookingHandler, catalogHandler, loyaltyHandler)

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

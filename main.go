// File: viacampo/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"viacampo/config"
	"viacampo/cron"
	"viacampo/database"
	directoryRepoPkg "viacampo/database/repository/directory"
	reportRepoPkg "viacampo/database/repository/reports"
	trayRepoPkg "viacampo/database/repository/tray"
	tripRepoPkg "viacampo/database/repository/trip"
	"viacampo/handlers"
	"viacampo/middleware"
	"viacampo/routes"
	"viacampo/services/directory"
	"viacampo/services/notification"
	"viacampo/services/tray"
	"viacampo/services/trip"
	"viacampo/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	database.InitFirestore()
	utils.InitRedis()
	utils.FirebaseInit()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// repositories.
	trayRepo := trayRepoPkg.NewFirestoreTrayRepo()
	tripRepo := tripRepoPkg.NewFirestoreTripRepo()
	dirRepo := directoryRepoPkg.NewFirestoreDirectoryRepo()
	reportRepo := reportRepoPkg.NewMongoReportRepo(database.MongoClient)

	// background queue client.
	queueClient := asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer queueClient.Close()

	// services.
	trayService := &tray.DefaultTrayService{Repo: trayRepo}
	tripService := &trip.DefaultTripService{
		Trips:   tripRepo,
		Tray:    trayRepo,
		Reports: reportRepo,
		Queue:   queueClient,
		Logger:  logger,
	}
	directoryService := &directory.DefaultDirectoryService{
		Repo:      dirRepo,
		AuthCache: utils.GetAuthCacheClient(),
		Logger:    logger,
	}
	notificationService := &notification.FCMNotificationService{}

	// handlers.
	handlerBundle := &handlers.HandlerBundle{
		DirectoryRepo: dirRepo,
		Auth:          handlers.NewAuthHandler(directoryService),
		Tray:          handlers.NewTrayHandler(trayService),
		Trip:          handlers.NewTripHandler(tripService),
		Reports:       handlers.NewReportHandler(reportRepo),
		Admin:         handlers.NewAdminHandler(directoryService),
	}

	routes.RegisterRoutes(router, handlerBundle)

	// background report delivery worker.
	cron.InitReportWorker(notificationService)

	utils.StartHealthMonitor(
		database.FirestoreClient,
		database.MongoClient,
		[]*redis.Client{utils.GetCacheClient(), utils.GetAuthCacheClient()},
	)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	go func() {
		logger.Sugar().Infof("Starting server on %s...", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server error: %v", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Errorf("main: forced shutdown: %v", err)
	}
	if err := database.FirestoreClient.Close(); err != nil {
		logger.Sugar().Errorf("main: failed to close Firestore client: %v", err)
	}
	if err := database.MongoClient.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("main: failed to disconnect MongoDB: %v", err)
	}
}

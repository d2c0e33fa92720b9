package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"main/config"
	"main/handler"
	"main/middleware"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	expo "github.com/oliveroneill/exponent-server-sdk-golang/sdk"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/joho/godotenv"
)

// dailyJobTimeout bounds one scheduled run. Users not reached before the
// deadline are simply not processed that day.
const dailyJobTimeout = 5 * time.Minute

func init() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil && os.Getenv("GO_ENV") != "test" {
		log.Printf("No .env file loaded: %v", err)
	}

	// Check required environment variables
	requiredEnvVars := []string{
		"MONGO_URI",
		"MONGO_DB",
		"USERS_COLLECTION",
		"ACTIVITIES_COLLECTION",
		"JWT_SECRET_KEY",
		"NOTIFY_TRIGGER_SECRET",
		"PORT",
	}

	for _, envVar := range requiredEnvVars {
		if os.Getenv(envVar) == "" && os.Getenv("GO_ENV") != "test" {
			log.Fatalf("Required environment variable %s is not set", envVar)
		}
	}

	utils.InitJWT()
}

func setupRouter(notifyHandler *handler.NotificationHandler, healthHandler *handler.HealthHandler, triggerSecret string) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestSizeLimiter(1 << 20))

	router.GET("/health", healthHandler.GetHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Callable surface for the authenticated admin panel
	protected := router.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/notifications/send", notifyHandler.SendNotification)
	}

	// Plain HTTP trigger surface, guarded by the static secret
	trigger := router.Group("/api")
	trigger.Use(middleware.TriggerAuthMiddleware(triggerSecret))
	{
		trigger.POST("/notifications/trigger", notifyHandler.TriggerNotification)
		trigger.POST("/notifications/run-daily", notifyHandler.RunDailyCheck)
	}

	return router
}

func main() {
	dbCfg := config.LoadDatabaseConfig()
	notifyCfg := config.LoadNotifierConfig()

	loc, err := notifyCfg.Location()
	if err != nil {
		log.Fatalf("Failed to load notifier time zone: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	mongoClient, err := config.ConnectMongo(ctx, dbCfg)
	cancel()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()

	userRepo := repository.GetUserRepo(mongoClient, dbCfg)
	activityRepo := repository.GetActivityRepo(mongoClient, dbCfg)

	notifier := &usecase.NotifierService{
		Users:      userRepo,
		Activities: activityRepo,
		Progress:   usecase.NewProgressService(),
		Dispatcher: usecase.NewDispatcher(expo.NewPushClient(nil)),
		Location:   loc,
	}

	// Daily goal check on the configured schedule, evaluated in the
	// configured zone
	scheduler := cron.New(cron.WithLocation(loc))
	if _, err := scheduler.AddFunc(notifyCfg.CronSpec, func() {
		jobCtx, jobCancel := context.WithTimeout(context.Background(), dailyJobTimeout)
		defer jobCancel()
		if _, err := notifier.RunDailyCheck(jobCtx); err != nil {
			log.Printf("Scheduled daily check failed: %v", err)
		}
	}); err != nil {
		log.Fatalf("Invalid NOTIFY_CRON expression %q: %v", notifyCfg.CronSpec, err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	notifyHandler := handler.NewNotificationHandler(notifier)
	healthHandler := handler.NewHealthHandler(mongoClient)
	router := setupRouter(notifyHandler, healthHandler, notifyCfg.TriggerSecret)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	serverAddr := fmt.Sprintf(":%s", port)
	log.Printf("Server starting on %s", serverAddr)
	if err := router.Run(serverAddr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

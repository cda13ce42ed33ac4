package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"pharmatrack/internal/caching"
	"pharmatrack/internal/config"
	"pharmatrack/internal/handlers"
	"pharmatrack/internal/jobs"
	"pharmatrack/internal/jobs/background"
	"pharmatrack/internal/notifier"
	"pharmatrack/internal/reports"
	"pharmatrack/internal/repositories"
	"pharmatrack/internal/services"
	"pharmatrack/pkg/database"
)

const version = "1.0.0"

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL environment variable is required")
	}

	pool, err := database.NewPool(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	// Redis configuration
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := 0
	if raw := os.Getenv("REDIS_DB"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			redisDB = parsed
		}
	}

	// Notifier gateway configuration; missing file means log-only delivery
	notifierConfig := config.DefaultNotifierConfig()
	if path := os.Getenv("NOTIFIER_CONFIG"); path != "" {
		loaded, err := config.LoadNotifierConfig(path)
		if err != nil {
			log.Printf("Failed to load notifier config from %s, running log-only: %v", path, err)
		} else {
			notifierConfig = loaded
		}
	}

	// Create repositories
	patientRepo := repositories.NewPatientRepository(pool)
	productRepo := repositories.NewProductRepository(pool)
	stockRepo := repositories.NewStockRepository(pool)
	movementRepo := repositories.NewStockMovementRepository(pool)
	medicationRepo := repositories.NewMedicationRepository(pool)
	prescriptionRepo := repositories.NewPrescriptionRepository(pool)
	notificationRepo := repositories.NewNotificationRepository(pool)
	settingsRepo := repositories.NewSettingsRepository(pool)

	// Create cache service
	cacheSvc := caching.NewRedisCacheService(redisAddr, redisPassword, redisDB)

	// Create notifier
	gatewayNotifier := notifier.NewGatewayNotifier(notifierConfig)

	// Create services
	settingsSvc := services.NewSettingsService(settingsRepo, cacheSvc)
	stockSvc := services.NewStockService(stockRepo, movementRepo, productRepo, settingsSvc, cacheSvc)
	medicationSvc := services.NewMedicationService(medicationRepo, patientRepo, productRepo, settingsSvc)
	prescriptionSvc := services.NewPrescriptionService(prescriptionRepo, patientRepo)
	notificationSvc := services.NewNotificationService(notificationRepo, gatewayNotifier, cacheSvc)

	alertSvc := jobs.NewExpiryAlertService(
		medicationRepo,
		prescriptionRepo,
		stockRepo,
		productRepo,
		patientRepo,
		notificationRepo,
		settingsSvc,
		gatewayNotifier,
		notifierConfig.Admin,
	)

	// Create handlers
	patientHandlers := handlers.NewPatientHandlers(patientRepo)
	productHandlers := handlers.NewProductHandlers(productRepo)
	stockHandlers := handlers.NewStockHandlers(stockSvc)
	medicationHandlers := handlers.NewMedicationHandlers(medicationSvc)
	prescriptionHandlers := handlers.NewPrescriptionHandlers(prescriptionSvc)
	notificationHandlers := handlers.NewNotificationHandlers(notificationSvc)
	settingsHandlers := handlers.NewSettingsHandlers(settingsSvc)
	demoHandlers := handlers.NewDemoHandlers(alertSvc)
	reportSvc := reports.NewReportService(stockSvc, medicationSvc, notificationSvc, notificationRepo)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background scheduler: daily sweep at the configured notification time
	scheduler := background.NewJobScheduler(alertSvc, settingsSvc, stockSvc, cacheSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer func() {
		if err := scheduler.Stop(); err != nil {
			log.Printf("Failed to stop scheduler: %v", err)
		}
	}()

	// Create Echo instance
	e := echo.New()

	// Global middleware
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	// Health endpoints
	e.GET("/health", healthHandlers.HealthCheck)
	e.GET("/health/ready", healthHandlers.ReadinessCheck)

	api := e.Group("/api")

	// Patient routes
	api.GET("/patients", patientHandlers.ListPatients)
	api.POST("/patients", patientHandlers.CreatePatient)
	api.GET("/patients/:id", patientHandlers.GetPatient)
	api.PUT("/patients/:id", patientHandlers.UpdatePatient)
	api.DELETE("/patients/:id", patientHandlers.DeletePatient)

	// Product routes
	api.GET("/products", productHandlers.ListProducts)
	api.POST("/products", productHandlers.CreateProduct)
	api.GET("/products/:id", productHandlers.GetProduct)

	// Stock routes
	api.GET("/stocks", stockHandlers.ListStocks)
	api.POST("/stocks", stockHandlers.CreateStock)
	api.GET("/stocks/summary", stockHandlers.GetStockSummary)
	api.GET("/stocks/count", stockHandlers.GetStockCount)
	api.GET("/stocks/alerts/low", stockHandlers.GetLowStockAlerts)
	api.GET("/stocks/alerts/expiring", stockHandlers.GetExpiringStocks)
	api.GET("/stocks/alerts/expired", stockHandlers.GetExpiredStocks)
	api.GET("/stocks/status/:status", stockHandlers.GetStocksByStatus)
	api.GET("/stocks/:id", stockHandlers.GetStock)
	api.PUT("/stocks/:id", stockHandlers.UpdateStock)
	api.DELETE("/stocks/:id", stockHandlers.DeleteStock)
	api.PATCH("/stocks/:id/add", stockHandlers.AddStockQuantity)
	api.PATCH("/stocks/:id/deduct", stockHandlers.DeductStockQuantity)
	api.GET("/stocks/:id/movements", stockHandlers.GetStockMovements)

	// Medication routes
	api.GET("/medications", medicationHandlers.ListMedications)
	api.POST("/medications", medicationHandlers.CreateMedication)
	api.GET("/medications/summary", medicationHandlers.GetMedicationSummary)
	api.GET("/medications/refill-needed", medicationHandlers.GetRefillNeeded)
	api.GET("/medications/patient/:id", medicationHandlers.GetMedicationsByPatient)
	api.GET("/medications/status/:status", medicationHandlers.GetMedicationsByStatus)
	api.GET("/medications/:id", medicationHandlers.GetMedication)
	api.PUT("/medications/:id", medicationHandlers.UpdateMedication)
	api.DELETE("/medications/:id", medicationHandlers.DeleteMedication)

	// Prescription routes
	api.GET("/prescriptions", prescriptionHandlers.ListPrescriptions)
	api.POST("/prescriptions", prescriptionHandlers.CreatePrescription)
	api.GET("/prescriptions/status/:status", prescriptionHandlers.GetPrescriptionsByStatus)
	api.GET("/prescriptions/:id", prescriptionHandlers.GetPrescription)
	api.PUT("/prescriptions/:id", prescriptionHandlers.UpdatePrescription)
	api.DELETE("/prescriptions/:id", prescriptionHandlers.DeletePrescription)

	// Notification routes
	api.GET("/notifications", notificationHandlers.ListNotifications)
	api.GET("/notifications/count", notificationHandlers.GetNotificationCounts)
	api.GET("/notifications/status/:status", notificationHandlers.GetNotificationsByStatus)
	api.GET("/notifications/:id", notificationHandlers.GetNotification)
	api.PATCH("/notifications/:id/retry", notificationHandlers.RetryNotification)

	// Settings routes
	api.GET("/settings", settingsHandlers.GetSettings)
	api.PUT("/settings", settingsHandlers.UpdateSettings)
	api.POST("/settings/reset", settingsHandlers.ResetSettings)

	// Demo routes: run the sweeps on demand
	api.GET("/demo/check-medications", demoHandlers.CheckMedications)
	api.GET("/demo/check-all", demoHandlers.CheckAll)

	// Report routes
	api.GET("/reports/overview", reportHandlers.GetOverview)
	api.GET("/reports/top-patients", reportHandlers.GetTopPatients)

	// Start server
	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}

	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Fatalf("Invalid port %s: %v", portStr, err)
	}

	log.Printf("PharmaTrack server v%s starting on port %d", version, port)

	e.Logger.Fatal(e.Start(fmt.Sprintf(":%d", port)))
}

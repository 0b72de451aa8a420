package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"waterbill-backend-go/internal/api"
	"waterbill-backend-go/internal/config"
	"waterbill-backend-go/internal/core"
	"waterbill-backend-go/internal/db"
	"waterbill-backend-go/internal/middleware"
	"waterbill-backend-go/internal/scheduler"
)

func main() {
	// .env is a local development convenience; in deployment the environment
	// is supplied by the runtime.
	_ = godotenv.Load()

	appConfig, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load application configuration: %v", err)
	}

	var zapLogger *zap.Logger
	if strings.ToLower(appConfig.GinMode) == "release" {
		zapLogger, err = zap.NewProduction()
	} else {
		zapLogger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	// --- Firebase Admin SDK (Firestore + Auth) ---
	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	if err := db.InitFirestore(initCtx, appConfig); err != nil {
		zapLogger.Fatal("Failed to initialize Firebase Admin SDK", zap.Error(err))
	}

	firestoreClient := db.GetFirestoreClient()
	if firestoreClient == nil {
		zapLogger.Fatal("Firestore client is nil after initialization")
	}
	defer firestoreClient.Close()
	if db.GetFirebaseAuthClient() == nil {
		zapLogger.Fatal("Firebase Auth client is nil after initialization")
	}
	zapLogger.Info("Firebase Admin SDK initialized")

	// --- Repositories ---
	customerRepo := db.NewFirestoreCustomerRepository(firestoreClient)
	staffRepo := db.NewFirestoreStaffRepository(firestoreClient)
	billRepo := db.NewFirestoreBillRepository(firestoreClient)
	settingsRepo := db.NewFirestoreSettingsRepository(firestoreClient)

	// --- Read-side snapshot cache ---
	cacheCtx, cancelCache := context.WithCancel(context.Background())
	defer cancelCache()
	snapshotCache := db.NewSnapshotCache(firestoreClient, zapLogger)
	snapshotCache.Start(cacheCtx)

	// --- Core services ---
	billingService := core.NewBillingService(billRepo, customerRepo, settingsRepo, zapLogger)
	assignmentService := core.NewAssignmentService(customerRepo, staffRepo, zapLogger)
	customerService := core.NewCustomerService(customerRepo, zapLogger)
	staffService := core.NewStaffService(staffRepo, zapLogger)
	reportService := core.NewReportService(snapshotCache, zapLogger)
	zapLogger.Info("Core services initialized")

	// --- Bill generation scheduler ---
	billScheduler, err := scheduler.New(appConfig.BillGenerationCron, billingService, zapLogger)
	if err != nil {
		zapLogger.Fatal("Invalid bill generation cron expression",
			zap.String("cron", appConfig.BillGenerationCron), zap.Error(err))
	}
	billScheduler.Start()

	// --- Gin HTTP engine ---
	if strings.ToLower(appConfig.GinMode) == "release" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}
	router := gin.New()

	router.Use(middleware.RequestLogger(zapLogger))
	router.Use(middleware.RecoveryMiddleware(zapLogger))
	if appConfig.ClientURL != "" {
		router.Use(middleware.CORSMiddleware(appConfig))
		zapLogger.Info("CORS middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS middleware skipped: CLIENT_URL is not configured")
	}

	api.SetupRoutes(
		router,
		appConfig,
		zapLogger,
		billingService,
		assignmentService,
		customerService,
		staffService,
		reportService,
	)

	// --- HTTP server with graceful shutdown ---
	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	billScheduler.Stop()
	cancelCache()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully")
}

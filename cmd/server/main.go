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

	"commdesk-backend-go/internal/api"
	"commdesk-backend-go/internal/cache"
	"commdesk-backend-go/internal/config"
	"commdesk-backend-go/internal/core"
	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/middleware"
)

func main() {
	// .env is optional; in deployed environments config comes from the environment.
	_ = godotenv.Load()

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("CRITICAL_ERROR: Failed to initialize Zap logger: %v", err)
	}
	defer zapLogger.Sync()

	appConfig, err := config.LoadConfig()
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to load application configuration", zap.Error(err))
	}
	zapLogger.Info("Application configuration loaded successfully.")

	initCtx, cancelInitCtx := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelInitCtx()
	clients, err := db.NewClients(initCtx, appConfig, zapLogger)
	if err != nil {
		zapLogger.Fatal("CRITICAL_ERROR: Failed to initialize Firebase Admin SDK", zap.Error(err))
	}
	defer clients.Close()
	zapLogger.Info("Firebase Admin SDK (Firestore, Auth) initialized successfully.")

	// Redis is optional; a nil cache disables caching without branching at call sites.
	var listingCache *cache.Cache
	if appConfig.RedisAddr != "" {
		listingCache, err = cache.New(initCtx, appConfig.RedisAddr)
		if err != nil {
			zapLogger.Warn("Redis unavailable; continuing without cache", zap.Error(err))
			listingCache = nil
		} else {
			defer listingCache.Close()
			zapLogger.Info("Redis cache connected", zap.String("addr", appConfig.RedisAddr))
		}
	}

	// --- Repositories ---
	userRepo := db.NewFirestoreUserRepository(clients.Firestore)
	tenantRepo := db.NewFirestoreTenantRepository(clients.Firestore)
	convRepo := db.NewFirestoreConversationRepository(clients.Firestore)
	authProvider := db.NewFirebaseAuthProvider(clients.Auth)
	zapLogger.Info("Repositories initialized successfully.")

	// --- Services ---
	userService := core.NewUserService(userRepo, authProvider, zapLogger)
	tenantService := core.NewTenantService(tenantRepo, zapLogger)
	directoryService := core.NewDirectoryService(convRepo, userRepo, listingCache, zapLogger)
	billingService := core.NewBillingService(appConfig, zapLogger)

	verifier := core.NewPaymentVerifier()
	resolver := core.NewIdentityResolver(userRepo, tenantRepo, zapLogger)
	tierWriter := core.NewTierWriter(userRepo, tenantRepo, zapLogger)
	reconciler := core.NewReconciler(verifier, resolver, tierWriter, zapLogger)
	zapLogger.Info("Core services initialized successfully.")

	// --- Gin ---
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
		zapLogger.Info("CORS Middleware enabled", zap.String("clientURL", appConfig.ClientURL))
	} else {
		zapLogger.Warn("CORS Middleware SKIPPED: CLIENT_URL is not configured. API might not be accessible from a web frontend.")
	}

	api.SetupRoutes(
		router,
		clients,
		zapLogger,
		userService,
		tenantService,
		directoryService,
		billingService,
		verifier,
		reconciler,
	)

	serverAddr := fmt.Sprintf(":%s", appConfig.Port)
	httpServer := &http.Server{
		Addr:    serverAddr,
		Handler: router,
	}

	zapLogger.Info("Starting HTTP server...", zap.String("address", serverAddr), zap.String("ginMode", gin.Mode()))
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start HTTP server", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quitChannel := make(chan os.Signal, 1)
	signal.Notify(quitChannel, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quitChannel
	zapLogger.Info("Received shutdown signal", zap.String("signal", sig.String()))

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLogger.Fatal("Server forced to shutdown due to error during graceful shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exiting gracefully.")
}

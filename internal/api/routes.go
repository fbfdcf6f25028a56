package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/core"
	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/middleware"
)

// SetupRoutes configures all the application routes with their handlers and middleware.
// Global middleware (logging, recovery, CORS) are applied to the router before this
// function is called, in main.go.
func SetupRoutes(
	router *gin.Engine,
	clients *db.Clients,
	logger *zap.Logger,
	userService core.UserService,
	tenantService core.TenantService,
	directoryService core.DirectoryService,
	billingService core.BillingService,
	verifier *core.PaymentVerifier,
	reconciler *core.Reconciler,
) {
	authMW := middleware.NewAuthMiddleware(clients.Auth, logger)

	userHandler := NewUserHandler(userService, logger)
	tenantHandler := NewTenantHandler(tenantService, logger)
	directoryHandler := NewDirectoryHandler(directoryService, logger)
	billingHandler := NewBillingHandler(billingService, verifier, reconciler, logger)

	apiV1 := router.Group("/api/v1")
	{
		// --- User Endpoints ---
		usersGroup := apiV1.Group("/users")
		{
			// POST /api/v1/users - provisioning; called before the client has a token.
			usersGroup.POST("", userHandler.CreateUser)
			usersGroup.GET("/me", authMW.VerifyToken(), userHandler.GetCurrentUserProfile)
		}

		// --- Tenant Endpoints ---
		tenantsGroup := apiV1.Group("/tenants")
		{
			tenantsGroup.POST("", authMW.VerifyToken(), tenantHandler.CreateTenant)
			tenantsGroup.GET("/:tenantId", authMW.VerifyToken(), tenantHandler.GetTenant)

			// Data-retrieval endpoints, all tenant-scoped and authenticated.
			tenantsGroup.GET("/:tenantId/conversations", authMW.VerifyToken(), directoryHandler.ListConversations)
			tenantsGroup.GET("/:tenantId/conversations/:conversationId/threads", authMW.VerifyToken(), directoryHandler.ListThreads)
			tenantsGroup.GET("/:tenantId/visitors", authMW.VerifyToken(), directoryHandler.ListVisitorLogs)
			tenantsGroup.GET("/:tenantId/members", authMW.VerifyToken(), directoryHandler.ListMembers)
		}

		// --- Billing Endpoints ---
		billingGroup := apiV1.Group("/billing", authMW.VerifyToken())
		{
			billingGroup.POST("/create-checkout-session", billingHandler.CreateCheckoutSession)
			billingGroup.POST("/verify-payments", billingHandler.VerifyPayments)
			billingGroup.POST("/reconcile", billingHandler.Reconcile)
		}
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "Commdesk backend is healthy."})
	})

	logger.Info("API routes configured successfully under /api/v1 and /health.")
}

package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/core"
	"commdesk-backend-go/internal/models"
)

// BillingHandler handles checkout, payment verification and reconciliation endpoints.
type BillingHandler struct {
	billingService core.BillingService
	verifier       *core.PaymentVerifier
	reconciler     *core.Reconciler
	logger         *zap.Logger
}

// NewBillingHandler creates a new BillingHandler.
func NewBillingHandler(bs core.BillingService, verifier *core.PaymentVerifier, reconciler *core.Reconciler, logger *zap.Logger) *BillingHandler {
	return &BillingHandler{
		billingService: bs,
		verifier:       verifier,
		reconciler:     reconciler,
		logger:         logger,
	}
}

// CreateCheckoutSession handles POST /api/v1/billing/create-checkout-session.
func (h *BillingHandler) CreateCheckoutSession(c *gin.Context) {
	var req models.CreateCheckoutSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	checkoutSession, err := h.billingService.CreateCheckoutSession(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, core.ErrPaymentProvider) {
			// 503 points at the upstream processor, not this service.
			h.logger.Error("payment provider error during checkout", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Payment provider error"})
			return
		}
		h.logger.Error("checkout session creation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create checkout session", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, checkoutSession)
}

// VerifyPayments handles POST /api/v1/billing/verify-payments. Classification only,
// no state is mutated.
func (h *BillingHandler) VerifyPayments(c *gin.Context) {
	var req models.VerifyPaymentsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	verdicts := h.verifier.VerifyBatch(req.Payments)
	c.JSON(http.StatusOK, gin.H{"total": len(verdicts), "verdicts": verdicts})
}

// Reconcile handles POST /api/v1/billing/reconcile. When the request carries no payment
// records, recent payments are pulled from the processor instead.
func (h *BillingHandler) Reconcile(c *gin.Context) {
	var req models.ReconcileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	payments := req.Payments
	if len(payments) == 0 {
		fetched, err := h.billingService.ListRecentPayments(c.Request.Context(), req.Limit)
		if err != nil {
			h.logger.Error("failed to list payments from processor", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Payment provider error", Details: err.Error()})
			return
		}
		payments = fetched
	}

	report := h.reconciler.Reconcile(c.Request.Context(), payments)
	c.JSON(http.StatusOK, report)
}

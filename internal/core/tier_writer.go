package core

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

// ErrNoTenantMembership is returned when the resolved user carries no tenant
// association; neither the user nor the tenant record is written in that case.
var ErrNoTenantMembership = errors.New("user has no tenant membership")

// ErrPartialTierWrite is returned when the tenant-scoped write fails after the
// user-scoped write already succeeded, leaving the two records diverged.
var ErrPartialTierWrite = errors.New("tenant subscription write failed after user write succeeded")

// subscriptionTierWriter implements TierWriter over the user and tenant repositories.
// The two writes use merge semantics and are not linked by any transaction.
type subscriptionTierWriter struct {
	userRepo   db.UserRepository
	tenantRepo db.TenantRepository
	logger     *zap.Logger
	now        func() time.Time
}

// NewTierWriter creates the writer backed by the user and tenant repositories.
func NewTierWriter(userRepo db.UserRepository, tenantRepo db.TenantRepository, logger *zap.Logger) TierWriter {
	return &subscriptionTierWriter{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
		now:        time.Now,
	}
}

// Apply sets the tier on both the user's and the tenant's subscription record. The
// tenant ID comes from the user's membership field, never from payment metadata. If it
// cannot be determined, the operation aborts before any write.
func (w *subscriptionTierWriter) Apply(ctx context.Context, userID string, payment models.PaymentRecord, successful bool) error {
	user, err := w.userRepo.GetByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load user '%s' for tier update: %w", userID, err)
	}

	tenantID := user.PrimaryTenantID()
	if tenantID == "" {
		return fmt.Errorf("%w: user '%s'", ErrNoTenantMembership, userID)
	}

	fields := w.subscriptionFields(payment, successful)

	if err := w.userRepo.SetSubscription(ctx, userID, fields); err != nil {
		return fmt.Errorf("user subscription write failed for '%s': %w", userID, err)
	}
	if err := w.tenantRepo.SetSubscription(ctx, tenantID, fields); err != nil {
		w.logger.Error("tier records diverged between user and tenant",
			zap.String("userId", userID),
			zap.String("tenantId", tenantID),
			zap.Error(err))
		return fmt.Errorf("%w: tenant '%s': %v", ErrPartialTierWrite, tenantID, err)
	}

	w.logger.Info("subscription tier written",
		zap.String("userId", userID),
		zap.String("tenantId", tenantID),
		zap.String("tier", fields["tier"].(string)),
		zap.String("paymentId", payment.ID))
	return nil
}

// subscriptionFields builds the merge payload. On the failure path only the
// last-failed-payment fields change, so a prior successful payment's fields survive.
func (w *subscriptionTierWriter) subscriptionFields(payment models.PaymentRecord, successful bool) map[string]interface{} {
	paidAt := payment.CreatedAt
	if paidAt.IsZero() {
		paidAt = w.now().UTC()
	}

	var amount int64
	if payment.Amount != nil {
		amount = *payment.Amount
	}

	if successful {
		fields := map[string]interface{}{
			"tier":              models.TierPaid,
			"lastPaymentId":     payment.ID,
			"lastPaymentAmount": amount,
			"currency":          payment.Currency,
			"paymentMethod":     payment.PaymentMethod,
			"lastPaymentDate":   paidAt,
			"updatedAt":         w.now().UTC(),
		}
		if payment.Metadata.Tier != "" {
			fields["planName"] = payment.Metadata.Tier
		}
		return fields
	}

	return map[string]interface{}{
		"tier":                    models.TierFree,
		"lastFailedPaymentId":     payment.ID,
		"lastFailedPaymentAmount": amount,
		"lastFailedPaymentDate":   paidAt,
		"updatedAt":               w.now().UTC(),
	}
}

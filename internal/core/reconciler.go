package core

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"commdesk-backend-go/internal/models"
)

// reconcileConcurrency bounds the per-payment fan-out within one batch.
const reconcileConcurrency = 8

// PaymentDetail is the per-payment entry of a reconciliation report.
type PaymentDetail struct {
	PaymentID    string   `json:"paymentId"`
	Successful   bool     `json:"successful"`
	Reasons      []string `json:"reasons,omitempty"`
	UserID       string   `json:"userId,omitempty"`
	TierUpdated  bool     `json:"tierUpdated"`
	Tier         string   `json:"tier,omitempty"`
	Error        string   `json:"error,omitempty"`
	PartialWrite bool     `json:"partialWrite,omitempty"`
}

// ReconciliationReport aggregates a reconciliation run. Details mirror the input order
// of the payment batch regardless of completion order.
type ReconciliationReport struct {
	Total        int             `json:"total"`
	Successful   int             `json:"successful"`
	Failed       int             `json:"failed"`
	UsersUpdated int             `json:"usersUpdated"`
	Details      []PaymentDetail `json:"details"`
}

// Reconciler runs classification, identity resolution and tier writing over a batch of
// payment records. Items are independent; one item's failure never aborts the batch.
type Reconciler struct {
	verifier *PaymentVerifier
	resolver IdentityResolver
	writer   TierWriter
	logger   *zap.Logger
}

// NewReconciler creates the orchestrator.
func NewReconciler(verifier *PaymentVerifier, resolver IdentityResolver, writer TierWriter, logger *zap.Logger) *Reconciler {
	return &Reconciler{
		verifier: verifier,
		resolver: resolver,
		writer:   writer,
		logger:   logger,
	}
}

// Reconcile processes the batch with bounded concurrency. Each goroutine owns exactly
// one index of the details slice, so results land in input order without locking.
func (r *Reconciler) Reconcile(ctx context.Context, payments []models.PaymentRecord) *ReconciliationReport {
	report := &ReconciliationReport{
		Total:   len(payments),
		Details: make([]PaymentDetail, len(payments)),
	}

	g := new(errgroup.Group)
	g.SetLimit(reconcileConcurrency)
	for i, payment := range payments {
		g.Go(func() error {
			report.Details[i] = r.processOne(ctx, payment)
			return nil
		})
	}
	_ = g.Wait() // goroutines never return errors; failures live in the details

	for _, d := range report.Details {
		if d.Successful {
			report.Successful++
		} else {
			report.Failed++
		}
		if d.TierUpdated {
			report.UsersUpdated++
		}
	}

	r.logger.Info("reconciliation run complete",
		zap.Int("total", report.Total),
		zap.Int("successful", report.Successful),
		zap.Int("failed", report.Failed),
		zap.Int("usersUpdated", report.UsersUpdated))
	return report
}

func (r *Reconciler) processOne(ctx context.Context, payment models.PaymentRecord) PaymentDetail {
	verdict := r.verifier.Verify(payment)
	detail := PaymentDetail{
		PaymentID:  payment.ID,
		Successful: verdict.Successful,
		Reasons:    verdict.Reasons,
	}

	userID, err := r.resolver.Resolve(ctx, payment.Metadata, verdict.CustomerEmail)
	if err != nil {
		// External-service errors are converted into a per-item failure reason.
		detail.Error = err.Error()
		return detail
	}
	if userID == "" {
		detail.Error = "no user identity resolved for payment; skipped"
		return detail
	}
	detail.UserID = userID

	if err := r.writer.Apply(ctx, userID, payment, verdict.Successful); err != nil {
		detail.Error = err.Error()
		detail.PartialWrite = errors.Is(err, ErrPartialTierWrite)
		return detail
	}

	detail.TierUpdated = true
	if verdict.Successful {
		detail.Tier = models.TierPaid
	} else {
		detail.Tier = models.TierFree
	}
	return detail
}

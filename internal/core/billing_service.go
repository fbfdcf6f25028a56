package core

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stripe/stripe-go/v83"
	"github.com/stripe/stripe-go/v83/charge"
	"github.com/stripe/stripe-go/v83/checkout/session"
	"github.com/stripe/stripe-go/v83/paymentintent"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/config"
	"commdesk-backend-go/internal/models"
)

// ErrPaymentProvider is the generic wrapper for failed calls to the payment processor.
var ErrPaymentProvider = errors.New("payment provider operation failed")

const defaultPaymentListLimit = 25

// stripeBillingService implements BillingService against the Stripe API.
type stripeBillingService struct {
	appConfig *config.Config
	logger    *zap.Logger
}

// NewBillingService creates the Stripe-backed BillingService. The Stripe secret key is
// installed globally; there is one processor account per deployment.
func NewBillingService(appConfig *config.Config, logger *zap.Logger) BillingService {
	stripe.Key = appConfig.StripeSecretKey
	return &stripeBillingService{
		appConfig: appConfig,
		logger:    logger,
	}
}

// CreateCheckoutSession creates a one-off payment checkout session. The metadata bag is
// attached to the resulting payment intent so reconciliation can resolve the payer later.
func (s *stripeBillingService) CreateCheckoutSession(ctx context.Context, req models.CreateCheckoutSessionRequest) (*CheckoutSession, error) {
	currency := strings.ToLower(req.Currency)
	if currency == "" {
		currency = s.appConfig.DefaultCurrency
	}
	description := req.Description
	if description == "" {
		description = "Commdesk subscription"
	}

	metadata := map[string]string{
		"admin_email": req.AdminEmail,
	}
	if req.TenantID != "" {
		metadata["tenant_id"] = req.TenantID
	}
	if req.Tier != "" {
		metadata["tier"] = req.Tier
	}
	if req.ExtraAgents > 0 {
		metadata["extra_agents"] = strconv.FormatInt(req.ExtraAgents, 10)
	}
	if req.ExtraLines > 0 {
		metadata["extra_lines"] = strconv.FormatInt(req.ExtraLines, 10)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:          stripe.String(string(stripe.CheckoutSessionModePayment)),
		CustomerEmail: stripe.String(req.AdminEmail),
		SuccessURL:    stripe.String(s.appConfig.CheckoutSuccessURL),
		CancelURL:     stripe.String(s.appConfig.CheckoutCancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(currency),
					UnitAmount: stripe.Int64(req.Amount),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(description),
					},
				},
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: metadata,
		},
	}
	params.Context = ctx

	checkoutSession, err := session.New(params)
	if err != nil {
		s.logger.Error("stripe checkout session creation failed",
			zap.String("adminEmail", req.AdminEmail), zap.Error(err))
		return nil, fmt.Errorf("%w: create checkout session: %v", ErrPaymentProvider, err)
	}

	s.logger.Info("checkout session created",
		zap.String("sessionId", checkoutSession.ID),
		zap.String("adminEmail", req.AdminEmail),
		zap.Int64("amount", req.Amount))
	return &CheckoutSession{ID: checkoutSession.ID, URL: checkoutSession.URL}, nil
}

// ListRecentPayments pulls recent payment intents with their latest charge expanded and
// maps them into internal payment records for the classifier.
func (s *stripeBillingService) ListRecentPayments(ctx context.Context, limit int64) ([]models.PaymentRecord, error) {
	if limit <= 0 {
		limit = defaultPaymentListLimit
	}

	params := &stripe.PaymentIntentListParams{}
	params.Context = ctx
	params.Limit = stripe.Int64(limit)
	params.AddExpand("data.latest_charge")

	var records []models.PaymentRecord
	iter := paymentintent.List(params)
	for iter.Next() {
		record := paymentRecordFromIntent(iter.PaymentIntent())
		if record.ChargeStatus == "" {
			// Expansion can be silently dropped on older API versions; fall back to a
			// direct charge lookup so the classifier sees the charge status.
			ch, err := s.chargeForIntent(ctx, record.ID)
			if err != nil {
				return nil, err
			}
			applyCharge(&record, ch)
		}
		records = append(records, record)
		if int64(len(records)) >= limit {
			break
		}
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: list payment intents: %v", ErrPaymentProvider, err)
	}
	return records, nil
}

// chargeForIntent looks up the newest charge for a payment intent. Used when the
// intent's latest charge was not expanded by the caller.
func (s *stripeBillingService) chargeForIntent(ctx context.Context, paymentIntentID string) (*stripe.Charge, error) {
	params := &stripe.ChargeListParams{
		PaymentIntent: stripe.String(paymentIntentID),
	}
	params.Context = ctx
	params.Limit = stripe.Int64(1)

	iter := charge.List(params)
	if iter.Next() {
		return iter.Charge(), nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: list charges for '%s': %v", ErrPaymentProvider, paymentIntentID, err)
	}
	return nil, nil
}

func paymentRecordFromIntent(pi *stripe.PaymentIntent) models.PaymentRecord {
	amount := pi.Amount
	record := models.PaymentRecord{
		ID:            pi.ID,
		Amount:        &amount,
		Currency:      string(pi.Currency),
		Status:        string(pi.Status),
		CustomerEmail: pi.ReceiptEmail,
		Metadata:      paymentMetadataFromStripe(pi.Metadata),
		CreatedAt:     time.Unix(pi.Created, 0).UTC(),
	}

	applyCharge(&record, pi.LatestCharge)
	return record
}

func applyCharge(record *models.PaymentRecord, ch *stripe.Charge) {
	if ch == nil {
		return
	}
	record.ChargeStatus = string(ch.Status)
	record.AmountCaptured = ch.AmountCaptured
	if ch.Outcome != nil {
		record.Outcome = &models.PaymentOutcome{
			Type:          string(ch.Outcome.Type),
			NetworkStatus: string(ch.Outcome.NetworkStatus),
		}
	}
	if ch.PaymentMethodDetails != nil {
		record.PaymentMethod = string(ch.PaymentMethodDetails.Type)
	}
	if record.CustomerEmail == "" && ch.BillingDetails != nil {
		record.CustomerEmail = ch.BillingDetails.Email
	}
}

func paymentMetadataFromStripe(md map[string]string) models.PaymentMetadata {
	meta := models.PaymentMetadata{
		AdminEmail: md["admin_email"],
		TenantID:   md["tenant_id"],
		Tier:       md["tier"],
	}
	if v, err := strconv.ParseInt(md["extra_agents"], 10, 64); err == nil {
		meta.ExtraAgents = v
	}
	if v, err := strconv.ParseInt(md["extra_lines"], 10, 64); err == nil {
		meta.ExtraLines = v
	}
	return meta
}

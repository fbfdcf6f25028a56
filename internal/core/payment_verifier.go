package core

import (
	"fmt"

	"commdesk-backend-go/internal/models"
)

// Failure reason messages produced by the verifier. ReasonMissingEmail is recorded but
// never flips the verdict; identity resolution has its own fallback chain.
const (
	ReasonBadPaymentStatus  = "payment status is not 'succeeded' or 'processing'"
	ReasonBadChargeStatus   = "charge status is not 'succeeded'"
	ReasonBadAmount         = "payment amount is missing or not positive"
	ReasonNotCaptured       = "captured amount is not positive"
	ReasonBadOutcome        = "charge outcome is not authorized and approved by network"
	ReasonMissingEmail      = "no customer email on payment"
)

// PaymentVerdict is the classification result for a single payment record.
type PaymentVerdict struct {
	PaymentID     string   `json:"paymentId"`
	Successful    bool     `json:"successful"`
	Reasons       []string `json:"reasons,omitempty"`
	CustomerEmail string   `json:"customerEmail,omitempty"`
}

// PaymentVerifier classifies payment records as successful or failed. It holds no state
// and never mutates its input; the tier is always derived here, not trusted from callers.
type PaymentVerifier struct{}

// NewPaymentVerifier creates a PaymentVerifier.
func NewPaymentVerifier() *PaymentVerifier {
	return &PaymentVerifier{}
}

// Verify evaluates every criterion independently so all failure reasons are collected;
// any single failing criterion marks the payment failed.
func (v *PaymentVerifier) Verify(p models.PaymentRecord) PaymentVerdict {
	verdict := PaymentVerdict{PaymentID: p.ID, Successful: true}

	if p.Status != "succeeded" && p.Status != "processing" {
		verdict.Successful = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("%s (got %q)", ReasonBadPaymentStatus, p.Status))
	}
	if p.ChargeStatus != "succeeded" {
		verdict.Successful = false
		verdict.Reasons = append(verdict.Reasons, fmt.Sprintf("%s (got %q)", ReasonBadChargeStatus, p.ChargeStatus))
	}
	if p.Amount == nil || *p.Amount <= 0 {
		verdict.Successful = false
		verdict.Reasons = append(verdict.Reasons, ReasonBadAmount)
	}
	if p.AmountCaptured <= 0 {
		verdict.Successful = false
		verdict.Reasons = append(verdict.Reasons, ReasonNotCaptured)
	}
	// Absence of an outcome descriptor is not itself a failure.
	if p.Outcome != nil {
		if p.Outcome.Type != "authorized" || p.Outcome.NetworkStatus != "approved_by_network" {
			verdict.Successful = false
			verdict.Reasons = append(verdict.Reasons,
				fmt.Sprintf("%s (type %q, network status %q)", ReasonBadOutcome, p.Outcome.Type, p.Outcome.NetworkStatus))
		}
	}

	// Resolved email prefers the metadata-provided admin email over the
	// processor-reported one.
	verdict.CustomerEmail = p.Metadata.AdminEmail
	if verdict.CustomerEmail == "" {
		verdict.CustomerEmail = p.CustomerEmail
	}
	if verdict.CustomerEmail == "" {
		verdict.Reasons = append(verdict.Reasons, ReasonMissingEmail)
	}

	return verdict
}

// VerifyBatch applies Verify to each record independently; output order matches input.
func (v *PaymentVerifier) VerifyBatch(payments []models.PaymentRecord) []PaymentVerdict {
	verdicts := make([]PaymentVerdict, len(payments))
	for i, p := range payments {
		verdicts[i] = v.Verify(p)
	}
	return verdicts
}

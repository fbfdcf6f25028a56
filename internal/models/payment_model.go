package models

import "time"

// PaymentOutcome mirrors the processor's outcome descriptor on a charge.
type PaymentOutcome struct {
	Type          string `json:"type"`          // expected "authorized"
	NetworkStatus string `json:"networkStatus"` // expected "approved_by_network"
}

// PaymentMetadata is the metadata bag attached to a checkout session / payment intent.
type PaymentMetadata struct {
	AdminEmail  string `json:"adminEmail,omitempty"`
	TenantID    string `json:"tenantId,omitempty"`
	Tier        string `json:"tier,omitempty"` // plan name selected at checkout
	ExtraAgents int64  `json:"extraAgents,omitempty"`
	ExtraLines  int64  `json:"extraLines,omitempty"`
}

// PaymentRecord is the internal view of a processor payment, as submitted to the
// reconciliation endpoint or mapped from the processor's payment-intent list.
// Amount is a pointer so "absent" and "zero" stay distinguishable.
type PaymentRecord struct {
	ID             string          `json:"id"`
	Amount         *int64          `json:"amount,omitempty"` // smallest currency unit
	Currency       string          `json:"currency,omitempty"`
	Status         string          `json:"status,omitempty"`       // e.g., "succeeded", "processing"
	ChargeStatus   string          `json:"chargeStatus,omitempty"` // status of the underlying charge
	AmountCaptured int64           `json:"amountCaptured,omitempty"`
	PaymentMethod  string          `json:"paymentMethod,omitempty"`
	CustomerEmail  string          `json:"customerEmail,omitempty"` // processor-reported receipt email
	Outcome        *PaymentOutcome `json:"outcome,omitempty"`
	Metadata       PaymentMetadata `json:"metadata"`
	CreatedAt      time.Time       `json:"createdAt,omitempty"`
}

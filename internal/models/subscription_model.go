package models

import "time"

// Subscription tier labels. A specific paid-plan name from payment metadata is stored
// alongside the tier in PlanName; the tier itself is always derived, never caller-supplied.
const (
	TierFree = "free"
	TierPaid = "paid"
)

// SubscriptionDocID is the fixed document ID the subscription record is stored under,
// both in the user's and the tenant's payments subcollection.
const SubscriptionDocID = "subscriptions"

// SubscriptionRecord is the tier state nested under both a user and a tenant.
// The two copies are kept eventually consistent by the tier writer; there is no
// transactional guarantee linking them.
type SubscriptionRecord struct {
	Tier     string `json:"tier" firestore:"tier"`
	PlanName string `json:"planName,omitempty" firestore:"planName,omitempty"`

	LastPaymentID     string    `json:"lastPaymentId,omitempty" firestore:"lastPaymentId,omitempty"`
	LastPaymentAmount int64     `json:"lastPaymentAmount,omitempty" firestore:"lastPaymentAmount,omitempty"`
	Currency          string    `json:"currency,omitempty" firestore:"currency,omitempty"`
	PaymentMethod     string    `json:"paymentMethod,omitempty" firestore:"paymentMethod,omitempty"`
	LastPaymentDate   time.Time `json:"lastPaymentDate,omitempty" firestore:"lastPaymentDate,omitempty"`

	LastFailedPaymentID     string    `json:"lastFailedPaymentId,omitempty" firestore:"lastFailedPaymentId,omitempty"`
	LastFailedPaymentAmount int64     `json:"lastFailedPaymentAmount,omitempty" firestore:"lastFailedPaymentAmount,omitempty"`
	LastFailedPaymentDate   time.Time `json:"lastFailedPaymentDate,omitempty" firestore:"lastFailedPaymentDate,omitempty"`

	UpdatedAt time.Time `json:"updatedAt" firestore:"updatedAt"`
}

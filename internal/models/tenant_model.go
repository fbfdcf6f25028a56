package models

import "time"

// Tenant represents an organization (company workspace). One admin email per tenant;
// the subscription tier lives in a fixed sub-document (see SubscriptionRecord).
type Tenant struct {
	ID          string    `json:"id" firestore:"-"` // Document ID, generated at creation
	AdminEmail  string    `json:"adminEmail" firestore:"adminEmail"`
	CompanyName string    `json:"companyName" firestore:"companyName"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

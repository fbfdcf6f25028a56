package core

import (
	"context"

	"commdesk-backend-go/internal/models"
)

// UserService defines the interface for user provisioning and lookup.
type UserService interface {
	// CreateUser registers the account with the identity provider and mirrors a profile
	// document into Firestore. Duplicate emails are rejected before any side effect.
	CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error)
	GetByID(ctx context.Context, userID string) (*models.User, error)
}

// TenantService defines the interface for tenant provisioning and lookup.
type TenantService interface {
	CreateTenant(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error)
	GetByID(ctx context.Context, tenantID string) (*models.Tenant, error)
}

// DirectoryService defines the interface for the simple data-retrieval endpoints.
type DirectoryService interface {
	ListConversations(ctx context.Context, tenantID string, limit int) ([]*models.Conversation, error)
	ListThreads(ctx context.Context, conversationID string, limit int) ([]*models.Thread, error)
	ListVisitorLogs(ctx context.Context, tenantID string, limit int) ([]*models.VisitorLog, error)
	ListMembers(ctx context.Context, tenantID string) ([]*models.User, error)
}

// BillingService defines the interface to the payment processor.
type BillingService interface {
	CreateCheckoutSession(ctx context.Context, req models.CreateCheckoutSessionRequest) (*CheckoutSession, error)
	// ListRecentPayments pulls recent payment intents (with their latest charge) from the
	// processor and maps them into internal payment records.
	ListRecentPayments(ctx context.Context, limit int64) ([]models.PaymentRecord, error)
}

// IdentityResolver maps a payment's metadata and resolved customer email to at most one
// user ID. An empty ID with a nil error means "no identity found" and is a non-fatal skip.
type IdentityResolver interface {
	Resolve(ctx context.Context, meta models.PaymentMetadata, customerEmail string) (string, error)
}

// TierWriter idempotently applies the derived subscription tier to both the user's and
// the associated tenant's subscription record.
type TierWriter interface {
	Apply(ctx context.Context, userID string, payment models.PaymentRecord, successful bool) error
}

// CheckoutSession is the result of creating a processor checkout session.
type CheckoutSession struct {
	ID  string `json:"sessionId"`
	URL string `json:"url"`
}

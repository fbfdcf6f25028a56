package db

import (
	"context"

	"commdesk-backend-go/internal/models"
)

// UserRepository defines the interface for user data storage operations.
type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	// FindByEmail returns all users whose email matches exactly. Email is not a
	// storage-enforced unique key, so more than one document may come back.
	FindByEmail(ctx context.Context, email string) ([]*models.User, error)
	// ListAll returns every user document. Used as the case-insensitive fallback scan
	// when an exact email match comes up empty.
	ListAll(ctx context.Context) ([]*models.User, error)
	// ListByTenant returns users whose tenant-membership array contains tenantID.
	ListByTenant(ctx context.Context, tenantID string) ([]*models.User, error)
	// SetSubscription merge-writes the subscription record under the user document,
	// preserving unrelated existing fields.
	SetSubscription(ctx context.Context, userID string, fields map[string]interface{}) error
}

// TenantRepository defines the interface for tenant data storage operations.
type TenantRepository interface {
	GetByID(ctx context.Context, tenantID string) (*models.Tenant, error)
	Create(ctx context.Context, tenant *models.Tenant) error
	// SetSubscription merge-writes the subscription record under the tenant document.
	SetSubscription(ctx context.Context, tenantID string, fields map[string]interface{}) error
}

// ConversationRepository defines the interface for conversation, thread and visitor-log
// retrieval.
type ConversationRepository interface {
	ListByTenant(ctx context.Context, tenantID string, limit int) ([]*models.Conversation, error)
	ListThreads(ctx context.Context, conversationID string, limit int) ([]*models.Thread, error)
	ListVisitorLogs(ctx context.Context, tenantID string, limit int) ([]*models.VisitorLog, error)
}

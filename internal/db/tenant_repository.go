package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"commdesk-backend-go/internal/models"
)

const tenantsCollection = "tenants"

// firestoreTenantRepository implements TenantRepository using Firestore.
type firestoreTenantRepository struct {
	client *firestore.Client
}

// NewFirestoreTenantRepository creates a new Firestore-backed TenantRepository.
func NewFirestoreTenantRepository(client *firestore.Client) TenantRepository {
	return &firestoreTenantRepository{client: client}
}

// Create adds a new tenant document. The tenant.ID is generated by the service layer.
func (r *firestoreTenantRepository) Create(ctx context.Context, tenant *models.Tenant) error {
	if tenant.ID == "" {
		return errors.New("tenant ID cannot be empty for Create operation")
	}
	_, err := r.client.Collection(tenantsCollection).Doc(tenant.ID).Create(ctx, tenant)
	if err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return fmt.Errorf("tenant with ID '%s': %w", tenant.ID, ErrAlreadyExists)
		}
		return fmt.Errorf("failed to create tenant with ID '%s': %w", tenant.ID, err)
	}
	return nil
}

// GetByID retrieves a tenant document by ID.
func (r *firestoreTenantRepository) GetByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	if tenantID == "" {
		return nil, errors.New("tenantID cannot be empty for GetByID operation")
	}
	docSnap, err := r.client.Collection(tenantsCollection).Doc(tenantID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, fmt.Errorf("tenant with ID '%s' not found: %w", tenantID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get tenant with ID '%s': %w", tenantID, err)
	}

	var tenant models.Tenant
	if err := docSnap.DataTo(&tenant); err != nil {
		return nil, fmt.Errorf("failed to decode tenant data for ID '%s': %w", tenantID, err)
	}
	tenant.ID = docSnap.Ref.ID
	return &tenant, nil
}

// SetSubscription merge-writes the subscription record under
// tenants/{tenantID}/payments/subscriptions.
func (r *firestoreTenantRepository) SetSubscription(ctx context.Context, tenantID string, fields map[string]interface{}) error {
	if tenantID == "" {
		return errors.New("tenantID cannot be empty for SetSubscription operation")
	}
	_, err := r.client.Collection(tenantsCollection).Doc(tenantID).
		Collection(paymentsCollection).Doc(models.SubscriptionDocID).
		Set(ctx, fields, firestore.MergeAll)
	if err != nil {
		return fmt.Errorf("failed to set subscription for tenant '%s': %w", tenantID, err)
	}
	return nil
}

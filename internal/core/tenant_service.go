package core

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

// ErrTenantNotFound is returned when a tenant is not found.
var ErrTenantNotFound = errors.New("tenant not found")

// tenantService implements the TenantService interface.
type tenantService struct {
	tenantRepo db.TenantRepository
	logger     *zap.Logger
}

// NewTenantService creates a new TenantService instance.
func NewTenantService(tenantRepo db.TenantRepository, logger *zap.Logger) TenantService {
	return &tenantService{
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

// CreateTenant creates the organization record with a generated ID.
func (s *tenantService) CreateTenant(ctx context.Context, req models.CreateTenantRequest) (*models.Tenant, error) {
	tenant := &models.Tenant{
		ID:          uuid.NewString(),
		AdminEmail:  strings.TrimSpace(strings.ToLower(req.AdminEmail)),
		CompanyName: strings.TrimSpace(req.CompanyName),
		CreatedAt:   time.Now().UTC(),
		UpdatedAt:   time.Now().UTC(),
	}
	if err := s.tenantRepo.Create(ctx, tenant); err != nil {
		return nil, fmt.Errorf("failed to create tenant '%s': %w", tenant.CompanyName, err)
	}

	s.logger.Info("tenant provisioned",
		zap.String("tenantId", tenant.ID),
		zap.String("adminEmail", tenant.AdminEmail))
	return tenant, nil
}

// GetByID retrieves a tenant by ID.
func (s *tenantService) GetByID(ctx context.Context, tenantID string) (*models.Tenant, error) {
	tenant, err := s.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: tenant with ID '%s'", ErrTenantNotFound, tenantID)
		}
		return nil, fmt.Errorf("failed to get tenant by ID '%s' from repository: %w", tenantID, err)
	}
	return tenant, nil
}

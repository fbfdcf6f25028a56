package core

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

// emailIdentityResolver implements IdentityResolver as an ordered list of strategies.
// The first applicable strategy decides the outcome; there is no merging across
// strategies and no fall-through once a strategy applies.
type emailIdentityResolver struct {
	userRepo   db.UserRepository
	tenantRepo db.TenantRepository
	logger     *zap.Logger
}

// resolveStrategy is one step of the chain. applies reports whether the strategy is
// selected by the payment's metadata; run performs the actual lookup.
type resolveStrategy struct {
	name    string
	applies func(meta models.PaymentMetadata, customerEmail string) bool
	run     func(ctx context.Context, meta models.PaymentMetadata, customerEmail string) (string, error)
}

// NewIdentityResolver creates the resolver backed by the user and tenant repositories.
func NewIdentityResolver(userRepo db.UserRepository, tenantRepo db.TenantRepository, logger *zap.Logger) IdentityResolver {
	return &emailIdentityResolver{
		userRepo:   userRepo,
		tenantRepo: tenantRepo,
		logger:     logger,
	}
}

func (r *emailIdentityResolver) strategies() []resolveStrategy {
	return []resolveStrategy{
		{
			name: "metadata_admin_email",
			applies: func(meta models.PaymentMetadata, _ string) bool {
				return meta.AdminEmail != ""
			},
			run: func(ctx context.Context, meta models.PaymentMetadata, _ string) (string, error) {
				return r.findUserByEmail(ctx, meta.AdminEmail)
			},
		},
		{
			name: "tenant_admin_email",
			applies: func(meta models.PaymentMetadata, _ string) bool {
				return meta.TenantID != ""
			},
			run: func(ctx context.Context, meta models.PaymentMetadata, _ string) (string, error) {
				tenant, err := r.tenantRepo.GetByID(ctx, meta.TenantID)
				if err != nil {
					return "", fmt.Errorf("failed to load tenant '%s' for identity resolution: %w", meta.TenantID, err)
				}
				if tenant.AdminEmail == "" {
					return "", nil
				}
				return r.findUserByEmail(ctx, tenant.AdminEmail)
			},
		},
		{
			name: "customer_email",
			applies: func(_ models.PaymentMetadata, customerEmail string) bool {
				return customerEmail != ""
			},
			run: func(ctx context.Context, _ models.PaymentMetadata, customerEmail string) (string, error) {
				return r.findUserByEmail(ctx, customerEmail)
			},
		},
	}
}

// Resolve walks the strategy list in order and returns the result of the first
// applicable strategy. An empty ID with a nil error means no identity was found;
// callers treat that as a skip, not an error.
func (r *emailIdentityResolver) Resolve(ctx context.Context, meta models.PaymentMetadata, customerEmail string) (string, error) {
	for _, strategy := range r.strategies() {
		if !strategy.applies(meta, customerEmail) {
			continue
		}
		userID, err := strategy.run(ctx, meta, customerEmail)
		if err != nil {
			return "", err
		}
		if userID == "" {
			r.logger.Debug("identity resolution strategy found no user",
				zap.String("strategy", strategy.name))
		}
		return userID, nil
	}
	return "", nil
}

// findUserByEmail searches by exact match first and falls back to a case-insensitive
// scan of all users. When several users share the email, the one with the latest
// creation timestamp wins; documents lacking a timestamp sort as earliest.
func (r *emailIdentityResolver) findUserByEmail(ctx context.Context, email string) (string, error) {
	users, err := r.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("exact email search failed for '%s': %w", email, err)
	}

	if len(users) == 0 {
		all, err := r.userRepo.ListAll(ctx)
		if err != nil {
			return "", fmt.Errorf("fallback email scan failed for '%s': %w", email, err)
		}
		for _, u := range all {
			if strings.EqualFold(u.Email, email) {
				users = append(users, u)
			}
		}
	}

	if len(users) == 0 {
		return "", nil
	}

	latest := users[0]
	for _, u := range users[1:] {
		if u.CreatedAt.After(latest.CreatedAt) {
			latest = u
		}
	}
	return latest.ID, nil
}

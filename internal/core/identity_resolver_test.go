package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/models"
)

func TestResolveByMetadataAdminEmail(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1", Email: "admin@acme.com"})
	resolver := NewIdentityResolver(users, newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{AdminEmail: "admin@acme.com"}, "other@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
}

func TestResolveAdminEmailPathIsExclusive(t *testing.T) {
	// The tenant path would find u2, but a present admin email means the admin-email
	// strategy decides the outcome, even when it finds nobody.
	users := newFakeUserRepo(&models.User{ID: "u2", Email: "owner@acme.com"})
	tenants := newFakeTenantRepo(&models.Tenant{ID: "t1", AdminEmail: "owner@acme.com"})
	resolver := NewIdentityResolver(users, tenants, zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{AdminEmail: "nobody@acme.com", TenantID: "t1"}, "")

	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestResolveViaTenantAdminEmail(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u3", Email: "owner@acme.com"})
	tenants := newFakeTenantRepo(&models.Tenant{ID: "t1", AdminEmail: "owner@acme.com"})
	resolver := NewIdentityResolver(users, tenants, zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{TenantID: "t1"}, "")

	require.NoError(t, err)
	assert.Equal(t, "u3", userID)
}

func TestResolveViaCustomerEmailFallback(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u4", Email: "buyer@example.com"})
	resolver := NewIdentityResolver(users, newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{}, "buyer@example.com")

	require.NoError(t, err)
	assert.Equal(t, "u4", userID)
}

func TestResolveCaseInsensitiveScanFallback(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u5", Email: "Admin@Acme.com"})
	resolver := NewIdentityResolver(users, newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{AdminEmail: "admin@acme.com"}, "")

	require.NoError(t, err)
	assert.Equal(t, "u5", userID)
}

func TestResolveDuplicateEmailPicksLatestCreated(t *testing.T) {
	older := &models.User{ID: "u-old", Email: "dup@acme.com",
		CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)}
	newer := &models.User{ID: "u-new", Email: "dup@acme.com",
		CreatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)}
	// No timestamp sorts as earliest.
	untimed := &models.User{ID: "u-untimed", Email: "dup@acme.com"}

	users := newFakeUserRepo(older, newer, untimed)
	resolver := NewIdentityResolver(users, newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{AdminEmail: "dup@acme.com"}, "")

	require.NoError(t, err)
	assert.Equal(t, "u-new", userID)
}

func TestResolveNoStrategyApplies(t *testing.T) {
	resolver := NewIdentityResolver(newFakeUserRepo(), newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(), models.PaymentMetadata{}, "")

	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	resolver := NewIdentityResolver(newFakeUserRepo(), newFakeTenantRepo(), zap.NewNop())

	userID, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{}, "stranger@example.com")

	require.NoError(t, err)
	assert.Empty(t, userID)
}

func TestResolveTenantLookupErrorIsSurfaced(t *testing.T) {
	tenants := newFakeTenantRepo()
	tenants.getErr = errors.New("firestore unavailable")
	resolver := NewIdentityResolver(newFakeUserRepo(), tenants, zap.NewNop())

	_, err := resolver.Resolve(context.Background(),
		models.PaymentMetadata{TenantID: "t1"}, "")

	assert.Error(t, err)
}

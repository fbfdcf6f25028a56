package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/models"
)

func newTestReconciler(users *fakeUserRepo, tenants *fakeTenantRepo) *Reconciler {
	verifier := NewPaymentVerifier()
	resolver := NewIdentityResolver(users, tenants, zap.NewNop())
	writer := NewTierWriter(users, tenants, zap.NewNop())
	return NewReconciler(verifier, resolver, writer, zap.NewNop())
}

func TestReconcileBatchOfThree(t *testing.T) {
	users := newFakeUserRepo(
		&models.User{ID: "u1", Email: "one@acme.com", TenantIDs: []string{"t1"}},
		&models.User{ID: "u2", Email: "two@acme.com", TenantIDs: []string{"t2"}},
		&models.User{ID: "u3", Email: "three@acme.com", TenantIDs: []string{"t3"}},
	)
	tenants := newFakeTenantRepo(
		&models.Tenant{ID: "t1"}, &models.Tenant{ID: "t2"}, &models.Tenant{ID: "t3"},
	)
	r := newTestReconciler(users, tenants)

	success := goodPayment()
	success.ID = "pi_1"
	success.AmountCaptured = 2500
	success.Metadata.AdminEmail = "one@acme.com"

	chargeFailed := goodPayment()
	chargeFailed.ID = "pi_2"
	chargeFailed.ChargeStatus = "failed"
	chargeFailed.Metadata.AdminEmail = "two@acme.com"

	zeroAmount := goodPayment()
	zeroAmount.ID = "pi_3"
	zeroAmount.Amount = int64Ptr(0)
	zeroAmount.Metadata.AdminEmail = "three@acme.com"

	report := r.Reconcile(context.Background(), []models.PaymentRecord{success, chargeFailed, zeroAmount})

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 1, report.Successful)
	assert.Equal(t, 2, report.Failed)
	assert.Equal(t, 3, report.UsersUpdated)

	// Detail order mirrors input order regardless of completion order.
	require.Len(t, report.Details, 3)
	assert.Equal(t, "pi_1", report.Details[0].PaymentID)
	assert.Equal(t, "pi_2", report.Details[1].PaymentID)
	assert.Equal(t, "pi_3", report.Details[2].PaymentID)

	// Exactly one tier write marked "paid".
	paid := 0
	for _, state := range users.subState {
		if state["tier"] == models.TierPaid {
			paid++
		}
	}
	assert.Equal(t, 1, paid)
	assert.Equal(t, models.TierPaid, users.subState["u1"]["tier"])
	assert.Equal(t, models.TierFree, users.subState["u2"]["tier"])
	assert.Equal(t, models.TierFree, users.subState["u3"]["tier"])
}

func TestReconcileUnresolvedIdentityIsSkippedNotFatal(t *testing.T) {
	r := newTestReconciler(newFakeUserRepo(), newFakeTenantRepo())

	p := goodPayment()
	p.Metadata.AdminEmail = "nobody@acme.com"

	report := r.Reconcile(context.Background(), []models.PaymentRecord{p})

	assert.Equal(t, 1, report.Total)
	assert.Equal(t, 1, report.Successful) // classification still succeeded
	assert.Equal(t, 0, report.UsersUpdated)
	require.Len(t, report.Details, 1)
	assert.False(t, report.Details[0].TierUpdated)
	assert.Contains(t, report.Details[0].Error, "no user identity resolved")
}

func TestReconcileOneItemErrorDoesNotAbortBatch(t *testing.T) {
	users := newFakeUserRepo(
		// u-lone has no tenant membership; its tier write must abort.
		&models.User{ID: "u-lone", Email: "lone@acme.com"},
		&models.User{ID: "u-ok", Email: "ok@acme.com", TenantIDs: []string{"t1"}},
	)
	tenants := newFakeTenantRepo(&models.Tenant{ID: "t1"})
	r := newTestReconciler(users, tenants)

	lone := goodPayment()
	lone.ID = "pi_lone"
	lone.Metadata.AdminEmail = "lone@acme.com"
	ok := goodPayment()
	ok.ID = "pi_ok"
	ok.Metadata.AdminEmail = "ok@acme.com"

	report := r.Reconcile(context.Background(), []models.PaymentRecord{lone, ok})

	require.Len(t, report.Details, 2)
	assert.Contains(t, report.Details[0].Error, "tenant membership")
	assert.False(t, report.Details[0].TierUpdated)
	assert.True(t, report.Details[1].TierUpdated)
	assert.Equal(t, 1, report.UsersUpdated)
}

func TestReconcilePartialWriteIsFlagged(t *testing.T) {
	users := newFakeUserRepo(&models.User{ID: "u1", Email: "one@acme.com", TenantIDs: []string{"t1"}})
	tenants := newFakeTenantRepo(&models.Tenant{ID: "t1"})
	tenants.setSubErr = assert.AnError
	r := newTestReconciler(users, tenants)

	p := goodPayment()
	p.Metadata.AdminEmail = "one@acme.com"

	report := r.Reconcile(context.Background(), []models.PaymentRecord{p})

	require.Len(t, report.Details, 1)
	assert.True(t, report.Details[0].PartialWrite)
	assert.False(t, report.Details[0].TierUpdated)
	assert.Equal(t, 0, report.UsersUpdated)
}

func TestReconcileEmptyBatch(t *testing.T) {
	r := newTestReconciler(newFakeUserRepo(), newFakeTenantRepo())

	report := r.Reconcile(context.Background(), nil)

	assert.Equal(t, 0, report.Total)
	assert.Empty(t, report.Details)
}

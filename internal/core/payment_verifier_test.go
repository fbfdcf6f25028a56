package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"commdesk-backend-go/internal/models"
)

func int64Ptr(v int64) *int64 { return &v }

func goodPayment() models.PaymentRecord {
	return models.PaymentRecord{
		ID:             "pi_good",
		Amount:         int64Ptr(2500),
		Currency:       "usd",
		Status:         "succeeded",
		ChargeStatus:   "succeeded",
		AmountCaptured: 2500,
		CustomerEmail:  "buyer@example.com",
		Outcome: &models.PaymentOutcome{
			Type:          "authorized",
			NetworkStatus: "approved_by_network",
		},
	}
}

func TestVerifyFullySuccessfulPayment(t *testing.T) {
	v := NewPaymentVerifier()

	verdict := v.Verify(goodPayment())

	assert.True(t, verdict.Successful)
	assert.Empty(t, verdict.Reasons)
	assert.Equal(t, "buyer@example.com", verdict.CustomerEmail)
}

func TestVerifySingleCriterionFailures(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*models.PaymentRecord)
		wantReason string
	}{
		{
			name:       "payment status canceled",
			mutate:     func(p *models.PaymentRecord) { p.Status = "canceled" },
			wantReason: ReasonBadPaymentStatus,
		},
		{
			name:       "charge status failed",
			mutate:     func(p *models.PaymentRecord) { p.ChargeStatus = "failed" },
			wantReason: ReasonBadChargeStatus,
		},
		{
			name:       "missing amount",
			mutate:     func(p *models.PaymentRecord) { p.Amount = nil },
			wantReason: ReasonBadAmount,
		},
		{
			name:       "zero amount",
			mutate:     func(p *models.PaymentRecord) { p.Amount = int64Ptr(0) },
			wantReason: ReasonBadAmount,
		},
		{
			name:       "nothing captured",
			mutate:     func(p *models.PaymentRecord) { p.AmountCaptured = 0 },
			wantReason: ReasonNotCaptured,
		},
		{
			name: "outcome not authorized",
			mutate: func(p *models.PaymentRecord) {
				p.Outcome = &models.PaymentOutcome{Type: "issuer_declined", NetworkStatus: "declined_by_network"}
			},
			wantReason: ReasonBadOutcome,
		},
	}

	v := NewPaymentVerifier()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := goodPayment()
			tt.mutate(&p)

			verdict := v.Verify(p)

			assert.False(t, verdict.Successful)
			require.NotEmpty(t, verdict.Reasons)
			found := false
			for _, r := range verdict.Reasons {
				if strings.HasPrefix(r, tt.wantReason) {
					found = true
				}
			}
			assert.True(t, found, "expected a reason starting with %q, got %v", tt.wantReason, verdict.Reasons)
		})
	}
}

func TestVerifyProcessingStatusIsSuccessful(t *testing.T) {
	v := NewPaymentVerifier()
	p := goodPayment()
	p.Status = "processing"

	verdict := v.Verify(p)

	assert.True(t, verdict.Successful)
	assert.Empty(t, verdict.Reasons)
}

func TestVerifyMissingOutcomeIsNotAFailure(t *testing.T) {
	v := NewPaymentVerifier()
	p := goodPayment()
	p.Outcome = nil

	verdict := v.Verify(p)

	assert.True(t, verdict.Successful)
	assert.Empty(t, verdict.Reasons)
}

func TestVerifyMissingEmailIsRecordedButNonFatal(t *testing.T) {
	v := NewPaymentVerifier()
	p := goodPayment()
	p.CustomerEmail = ""

	verdict := v.Verify(p)

	assert.True(t, verdict.Successful)
	assert.Equal(t, []string{ReasonMissingEmail}, verdict.Reasons)
	assert.Empty(t, verdict.CustomerEmail)
}

func TestVerifyCollectsAllFailureReasons(t *testing.T) {
	v := NewPaymentVerifier()
	p := goodPayment()
	p.Status = "canceled"
	p.ChargeStatus = "failed"
	p.Amount = nil
	p.AmountCaptured = 0

	verdict := v.Verify(p)

	assert.False(t, verdict.Successful)
	assert.Len(t, verdict.Reasons, 4)
}

func TestVerifyPrefersMetadataAdminEmail(t *testing.T) {
	v := NewPaymentVerifier()
	p := goodPayment()
	p.Metadata.AdminEmail = "admin@acme.com"

	verdict := v.Verify(p)

	assert.Equal(t, "admin@acme.com", verdict.CustomerEmail)
}

func TestVerifyBatchPreservesOrder(t *testing.T) {
	v := NewPaymentVerifier()
	a := goodPayment()
	a.ID = "pi_a"
	b := goodPayment()
	b.ID = "pi_b"
	b.ChargeStatus = "failed"
	c := goodPayment()
	c.ID = "pi_c"

	verdicts := v.VerifyBatch([]models.PaymentRecord{a, b, c})

	require.Len(t, verdicts, 3)
	assert.Equal(t, "pi_a", verdicts[0].PaymentID)
	assert.Equal(t, "pi_b", verdicts[1].PaymentID)
	assert.Equal(t, "pi_c", verdicts[2].PaymentID)
	assert.True(t, verdicts[0].Successful)
	assert.False(t, verdicts[1].Successful)
	assert.True(t, verdicts[2].Successful)
}

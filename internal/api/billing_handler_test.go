package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/core"
	"commdesk-backend-go/internal/models"
)

func newVerifyRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewBillingHandler(nil, core.NewPaymentVerifier(), nil, zap.NewNop())
	router := gin.New()
	router.POST("/verify-payments", handler.VerifyPayments)
	return router
}

func TestVerifyPaymentsEndpoint(t *testing.T) {
	router := newVerifyRouter()

	amount := int64(2500)
	body, err := json.Marshal(models.VerifyPaymentsRequest{
		Payments: []models.PaymentRecord{
			{
				ID: "pi_1", Amount: &amount, Status: "succeeded",
				ChargeStatus: "succeeded", AmountCaptured: 2500,
				CustomerEmail: "buyer@example.com",
			},
			{ID: "pi_2", Status: "canceled"},
		},
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify-payments", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Total    int                   `json:"total"`
		Verdicts []core.PaymentVerdict `json:"verdicts"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Total)
	require.Len(t, resp.Verdicts, 2)
	assert.True(t, resp.Verdicts[0].Successful)
	assert.False(t, resp.Verdicts[1].Successful)
	assert.NotEmpty(t, resp.Verdicts[1].Reasons)
}

func TestVerifyPaymentsRejectsInvalidPayload(t *testing.T) {
	router := newVerifyRouter()

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/verify-payments", bytes.NewBufferString(`{"payments": "nope"}`))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

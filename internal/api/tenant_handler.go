package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/core"
	"commdesk-backend-go/internal/models"
)

// TenantHandler handles tenant provisioning and lookup endpoints.
type TenantHandler struct {
	tenantService core.TenantService
	logger        *zap.Logger
}

// NewTenantHandler creates a new TenantHandler.
func NewTenantHandler(ts core.TenantService, logger *zap.Logger) *TenantHandler {
	return &TenantHandler{tenantService: ts, logger: logger}
}

// CreateTenant handles POST /api/v1/tenants.
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	var req models.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request payload", Details: err.Error()})
		return
	}

	tenant, err := h.tenantService.CreateTenant(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("tenant provisioning failed", zap.String("companyName", req.CompanyName), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to create tenant", Details: err.Error()})
		return
	}

	c.JSON(http.StatusCreated, tenant)
}

// GetTenant handles GET /api/v1/tenants/:tenantId.
func (h *TenantHandler) GetTenant(c *gin.Context) {
	tenantID := c.Param("tenantId")
	tenant, err := h.tenantService.GetByID(c.Request.Context(), tenantID)
	if err != nil {
		if errors.Is(err, core.ErrTenantNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Tenant not found"})
			return
		}
		h.logger.Error("failed to load tenant", zap.String("tenantId", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to retrieve tenant", Details: err.Error()})
		return
	}

	c.JSON(http.StatusOK, tenant)
}

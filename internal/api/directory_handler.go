package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"commdesk-backend-go/internal/core"
)

const defaultListLimit = 50

// DirectoryHandler handles the simple data-retrieval endpoints: conversations,
// threads, visitor logs and company members.
type DirectoryHandler struct {
	directoryService core.DirectoryService
	logger           *zap.Logger
}

// NewDirectoryHandler creates a new DirectoryHandler.
func NewDirectoryHandler(ds core.DirectoryService, logger *zap.Logger) *DirectoryHandler {
	return &DirectoryHandler{directoryService: ds, logger: logger}
}

func listLimit(c *gin.Context) int {
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return defaultListLimit
}

// ListConversations handles GET /api/v1/tenants/:tenantId/conversations.
func (h *DirectoryHandler) ListConversations(c *gin.Context) {
	tenantID := c.Param("tenantId")
	conversations, err := h.directoryService.ListConversations(c.Request.Context(), tenantID, listLimit(c))
	if err != nil {
		h.logger.Error("failed to list conversations", zap.String("tenantId", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list conversations", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": conversations})
}

// ListThreads handles GET /api/v1/tenants/:tenantId/conversations/:conversationId/threads.
func (h *DirectoryHandler) ListThreads(c *gin.Context) {
	conversationID := c.Param("conversationId")
	threads, err := h.directoryService.ListThreads(c.Request.Context(), conversationID, listLimit(c))
	if err != nil {
		h.logger.Error("failed to list threads", zap.String("conversationId", conversationID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list threads", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"threads": threads})
}

// ListVisitorLogs handles GET /api/v1/tenants/:tenantId/visitors.
func (h *DirectoryHandler) ListVisitorLogs(c *gin.Context) {
	tenantID := c.Param("tenantId")
	logs, err := h.directoryService.ListVisitorLogs(c.Request.Context(), tenantID, listLimit(c))
	if err != nil {
		h.logger.Error("failed to list visitor logs", zap.String("tenantId", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list visitor logs", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"visitors": logs})
}

// ListMembers handles GET /api/v1/tenants/:tenantId/members.
func (h *DirectoryHandler) ListMembers(c *gin.Context) {
	tenantID := c.Param("tenantId")
	members, err := h.directoryService.ListMembers(c.Request.Context(), tenantID)
	if err != nil {
		h.logger.Error("failed to list members", zap.String("tenantId", tenantID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to list members", Details: err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

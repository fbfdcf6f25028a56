package core

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"commdesk-backend-go/internal/cache"
	"commdesk-backend-go/internal/db"
	"commdesk-backend-go/internal/models"
)

const conversationCacheTTL = 30 * time.Second

// directoryService implements the DirectoryService interface. The conversation listing
// is read-through cached; the cache may be nil, which disables caching entirely.
type directoryService struct {
	convRepo db.ConversationRepository
	userRepo db.UserRepository
	cache    *cache.Cache
	logger   *zap.Logger
}

// NewDirectoryService creates a new DirectoryService instance.
func NewDirectoryService(convRepo db.ConversationRepository, userRepo db.UserRepository, c *cache.Cache, logger *zap.Logger) DirectoryService {
	return &directoryService{
		convRepo: convRepo,
		userRepo: userRepo,
		cache:    c,
		logger:   logger,
	}
}

// ListConversations returns the tenant's conversations, newest activity first.
func (s *directoryService) ListConversations(ctx context.Context, tenantID string, limit int) ([]*models.Conversation, error) {
	key := fmt.Sprintf("conversations:%s:%d", tenantID, limit)

	var cached []*models.Conversation
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	conversations, err := s.convRepo.ListByTenant(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations for tenant '%s': %w", tenantID, err)
	}

	if err := s.cache.Set(ctx, key, conversations, conversationCacheTTL); err != nil {
		s.logger.Warn("failed to cache conversation listing", zap.String("key", key), zap.Error(err))
	}
	return conversations, nil
}

// ListThreads returns a conversation's messages in chronological order.
func (s *directoryService) ListThreads(ctx context.Context, conversationID string, limit int) ([]*models.Thread, error) {
	threads, err := s.convRepo.ListThreads(ctx, conversationID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list threads for conversation '%s': %w", conversationID, err)
	}
	return threads, nil
}

// ListVisitorLogs returns the tenant's visitor logs, newest first.
func (s *directoryService) ListVisitorLogs(ctx context.Context, tenantID string, limit int) ([]*models.VisitorLog, error) {
	logs, err := s.convRepo.ListVisitorLogs(ctx, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list visitor logs for tenant '%s': %w", tenantID, err)
	}
	return logs, nil
}

// ListMembers returns the users whose tenant-membership array contains the tenant.
func (s *directoryService) ListMembers(ctx context.Context, tenantID string) ([]*models.User, error) {
	members, err := s.userRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list members for tenant '%s': %w", tenantID, err)
	}
	return members, nil
}

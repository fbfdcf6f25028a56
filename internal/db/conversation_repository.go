package db

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"

	"commdesk-backend-go/internal/models"
)

const (
	conversationsCollection = "conversations"
	threadsCollection       = "threads"
	visitorLogsCollection   = "visitorLogs"
)

// firestoreConversationRepository implements ConversationRepository using Firestore.
type firestoreConversationRepository struct {
	client *firestore.Client
}

// NewFirestoreConversationRepository creates a new Firestore-backed ConversationRepository.
func NewFirestoreConversationRepository(client *firestore.Client) ConversationRepository {
	return &firestoreConversationRepository{client: client}
}

// ListByTenant returns the tenant's conversations, most recently updated first.
func (r *firestoreConversationRepository) ListByTenant(ctx context.Context, tenantID string, limit int) ([]*models.Conversation, error) {
	if tenantID == "" {
		return nil, errors.New("tenantID cannot be empty for ListByTenant operation")
	}
	q := r.client.Collection(conversationsCollection).
		Where("tenantId", "==", tenantID).
		OrderBy("updatedAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	var conversations []*models.Conversation
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate conversations for tenant '%s': %w", tenantID, err)
		}
		var conv models.Conversation
		if err := docSnap.DataTo(&conv); err != nil {
			return nil, fmt.Errorf("failed to decode conversation '%s': %w", docSnap.Ref.ID, err)
		}
		conv.ID = docSnap.Ref.ID
		conversations = append(conversations, &conv)
	}
	return conversations, nil
}

// ListThreads returns a conversation's messages in chronological order.
func (r *firestoreConversationRepository) ListThreads(ctx context.Context, conversationID string, limit int) ([]*models.Thread, error) {
	if conversationID == "" {
		return nil, errors.New("conversationID cannot be empty for ListThreads operation")
	}
	q := r.client.Collection(threadsCollection).
		Where("conversationId", "==", conversationID).
		OrderBy("createdAt", firestore.Asc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	var threads []*models.Thread
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate threads for conversation '%s': %w", conversationID, err)
		}
		var thread models.Thread
		if err := docSnap.DataTo(&thread); err != nil {
			return nil, fmt.Errorf("failed to decode thread '%s': %w", docSnap.Ref.ID, err)
		}
		thread.ID = docSnap.Ref.ID
		threads = append(threads, &thread)
	}
	return threads, nil
}

// ListVisitorLogs returns the tenant's visitor logs, newest first.
func (r *firestoreConversationRepository) ListVisitorLogs(ctx context.Context, tenantID string, limit int) ([]*models.VisitorLog, error) {
	if tenantID == "" {
		return nil, errors.New("tenantID cannot be empty for ListVisitorLogs operation")
	}
	q := r.client.Collection(visitorLogsCollection).
		Where("tenantId", "==", tenantID).
		OrderBy("createdAt", firestore.Desc)
	if limit > 0 {
		q = q.Limit(limit)
	}

	iter := q.Documents(ctx)
	defer iter.Stop()
	var logs []*models.VisitorLog
	for {
		docSnap, err := iter.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate visitor logs for tenant '%s': %w", tenantID, err)
		}
		var entry models.VisitorLog
		if err := docSnap.DataTo(&entry); err != nil {
			return nil, fmt.Errorf("failed to decode visitor log '%s': %w", docSnap.Ref.ID, err)
		}
		entry.ID = docSnap.Ref.ID
		logs = append(logs, &entry)
	}
	return logs, nil
}

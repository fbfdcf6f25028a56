package models

import "time"

// Conversation is a customer conversation belonging to a tenant.
type Conversation struct {
	ID          string    `json:"id" firestore:"-"`
	TenantID    string    `json:"tenantId" firestore:"tenantId"`
	VisitorID   string    `json:"visitorId,omitempty" firestore:"visitorId,omitempty"`
	Channel     string    `json:"channel,omitempty" firestore:"channel,omitempty"` // e.g., "chat", "sms", "email"
	Subject     string    `json:"subject,omitempty" firestore:"subject,omitempty"`
	LastMessage string    `json:"lastMessage,omitempty" firestore:"lastMessage,omitempty"`
	Open        bool      `json:"open" firestore:"open"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}

// Thread is a single message within a conversation.
type Thread struct {
	ID             string    `json:"id" firestore:"-"`
	ConversationID string    `json:"conversationId" firestore:"conversationId"`
	AuthorID       string    `json:"authorId,omitempty" firestore:"authorId,omitempty"`
	AuthorType     string    `json:"authorType,omitempty" firestore:"authorType,omitempty"` // "agent" or "visitor"
	Body           string    `json:"body" firestore:"body"`
	CreatedAt      time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

// VisitorLog records a visitor session on a tenant's widget.
type VisitorLog struct {
	ID        string    `json:"id" firestore:"-"`
	TenantID  string    `json:"tenantId" firestore:"tenantId"`
	VisitorID string    `json:"visitorId" firestore:"visitorId"`
	Email     string    `json:"email,omitempty" firestore:"email,omitempty"`
	PageURL   string    `json:"pageUrl,omitempty" firestore:"pageUrl,omitempty"`
	UserAgent string    `json:"userAgent,omitempty" firestore:"userAgent,omitempty"`
	IPAddress string    `json:"ipAddress,omitempty" firestore:"ipAddress,omitempty"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}

package services

import (
	"context"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// CaseRepo is the storage contract of CaseService. Implementations exist over
// GORM (repo package, adapted in the router) and in memory (store.Cases).
type CaseRepo interface {
	// ListCases returns all cases, newest first.
	ListCases(ctx context.Context) ([]domain.SupportCase, error)
	// GetCase accepts the primary key or the case number.
	GetCase(ctx context.Context, ref string) (*domain.SupportCase, error)
	CountCases(ctx context.Context) (int64, error)
	CreateCase(ctx context.Context, c *domain.SupportCase) error
	// UpdateCase applies fn to the stored case atomically.
	UpdateCase(ctx context.Context, ref string, fn func(*domain.SupportCase) error) (*domain.SupportCase, error)
	CreateCaseMessage(ctx context.Context, m *domain.CaseMessage) error
	ListCaseMessages(ctx context.Context, caseID string) ([]domain.CaseMessage, error)
	CreateCaseAttachment(ctx context.Context, a *domain.CaseAttachment) error
	ListCaseAttachments(ctx context.Context, caseID string) ([]domain.CaseAttachment, error)
	CasesStats(ctx context.Context) (int64, *time.Time, error)
}

// ConversationRepo is the storage contract of ConversationService.
type ConversationRepo interface {
	ListConversations(ctx context.Context) ([]domain.Conversation, error)
	GetConversation(ctx context.Context, id string) (*domain.Conversation, error)
	CreateConversation(ctx context.Context, c *domain.Conversation) error
	UpdateConversation(ctx context.Context, id string, fn func(*domain.Conversation) error) (*domain.Conversation, error)
	CreateMessage(ctx context.Context, m *domain.Message) error
	ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error)
	GetMessage(ctx context.Context, id string) (*domain.Message, error)
	ConversationsStats(ctx context.Context) (int64, *time.Time, error)
}

// KVRepo stores serialized documents by key.
type KVRepo interface {
	GetValue(ctx context.Context, key string) (string, error)
	PutValue(ctx context.Context, key, value string) error
}

// IdempotencyRepo records the outcome of create requests for safe retries.
type IdempotencyRepo interface {
	GetIdempotency(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
}

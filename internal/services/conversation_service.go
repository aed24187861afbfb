// Package services – ConversationService
//
// ConversationService owns the inbox: listing threads through the query
// engine, reading message history, appending messages and marking threads
// read. Storage never maintains a thread's last-message preview, so
// SendMessage syncs it after every append.
package services

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
)

// ConversationService coordinates inbox reads and writes.
type ConversationService struct {
	Repo ConversationRepo
	Now  func() time.Time

	// MaxContentRunes caps message bodies; zero disables the check.
	MaxContentRunes int
}

// NewConversationService returns a service with default limits.
func NewConversationService(r ConversationRepo) *ConversationService {
	return &ConversationService{Repo: r, MaxContentRunes: 4000}
}

// List runs an inbox query.
func (s *ConversationService) List(ctx context.Context, req query.Request) (query.Page[domain.Conversation], error) {
	all, err := s.Repo.ListConversations(ctx)
	if err != nil {
		return query.Page[domain.Conversation]{}, err
	}
	return runQuery(ctx, ConversationSchema, all, req, nowOr(s.Now))
}

// Get returns a conversation or ErrConversationNotFound.
func (s *ConversationService) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	c, err := s.Repo.GetConversation(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	return c, err
}

// Messages returns a thread oldest first. A known conversation without
// messages yields an empty slice.
func (s *ConversationService) Messages(ctx context.Context, id string) ([]domain.Message, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	return s.Repo.ListMessages(ctx, id)
}

// Message fetches one message of a conversation.
func (s *ConversationService) Message(ctx context.Context, conversationID, messageID string) (*domain.Message, error) {
	m, err := s.Repo.GetMessage(ctx, messageID)
	if errors.Is(err, repo.ErrNotFound) || (err == nil && m.ConversationID != conversationID) {
		return nil, ErrConversationNotFound
	}
	return m, err
}

// SendMessage appends a message and syncs the conversation's last-message
// preview and UpdatedAt. The sender's own message never raises UnreadCount.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID, senderID, content string, attachments []string) (*domain.Message, error) {
	ctx, span := otel.Tracer("services/ConversationService").Start(ctx, "SendMessage",
		trace.WithAttributes(
			attribute.String("conversation.id", conversationID),
			attribute.String("sender.id", senderID),
		),
	)
	defer span.End()

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxContentRunes > 0 && utf8.RuneCountInString(content) > s.MaxContentRunes {
		return nil, ErrTooLong
	}
	if _, err := s.Get(ctx, conversationID); err != nil {
		return nil, err
	}

	now := nowOr(s.Now)
	msg := &domain.Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
		Attachments:    nonEmpty(attachments),
		Timestamp:      now,
	}
	if err := s.Repo.CreateMessage(ctx, msg); err != nil {
		span.RecordError(err)
		return nil, err
	}

	_, err := s.Repo.UpdateConversation(ctx, conversationID, func(c *domain.Conversation) error {
		c.LastMessage = domain.LastMessage{SenderID: senderID, Content: content, Timestamp: now}
		c.UpdatedAt = now
		return nil
	})
	if err != nil {
		// The message is stored; only the preview is stale.
		log.Ctx(ctx).Warn().Err(err).Str("conversation_id", conversationID).Msg("last message sync failed")
	}
	return msg, nil
}

// MarkRead zeroes the unread counter and touches UpdatedAt so list ETags
// change. Calling it again is a no-op.
func (s *ConversationService) MarkRead(ctx context.Context, id string) (*domain.Conversation, error) {
	ctx, span := otel.Tracer("services/ConversationService").Start(ctx, "MarkRead",
		trace.WithAttributes(attribute.String("conversation.id", id)))
	defer span.End()

	c, err := s.Repo.UpdateConversation(ctx, id, func(c *domain.Conversation) error {
		if c.UnreadCount == 0 {
			return nil
		}
		c.UnreadCount = 0
		c.UpdatedAt = nowOr(s.Now)
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrConversationNotFound
	}
	return c, err
}

// Stats feeds list ETags.
func (s *ConversationService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.ConversationsStats(ctx)
}

func nonEmpty(in []string) []string {
	var out []string
	for _, v := range in {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

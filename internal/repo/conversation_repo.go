// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for inbox
// conversations and their messages.
//
// The conversation row carries a LastMessage preview and an UnreadCount.
// Neither is maintained here: CreateMessage only appends. The service that
// sends a message is responsible for syncing the preview through
// UpdateConversation.
package repo

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// CreateConversation inserts c. An empty ID is filled with a UUID.
func CreateConversation(ctx context.Context, db *gorm.DB, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if err := db.WithContext(ctx).Create(c).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// ListConversations returns every conversation in creation order.
func ListConversations(ctx context.Context, db *gorm.DB) ([]domain.Conversation, error) {
	var out []domain.Conversation
	err := db.WithContext(ctx).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetConversation fetches a conversation by ID, or ErrNotFound.
func GetConversation(ctx context.Context, db *gorm.DB, id string) (*domain.Conversation, error) {
	var c domain.Conversation
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateConversation loads the conversation, applies fn and saves it in one
// transaction. If fn returns an error nothing is written.
func UpdateConversation(ctx context.Context, db *gorm.DB, id string, fn func(*domain.Conversation) error) (*domain.Conversation, error) {
	var out *domain.Conversation
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := GetConversation(ctx, tx, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := tx.Save(c).Error; err != nil {
			return err
		}
		out = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateMessage appends a message to a conversation. An empty ID is filled
// with a UUID.
func CreateMessage(ctx context.Context, db *gorm.DB, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(m).Error
}

// ListMessages returns a conversation's messages ordered deterministically
// (Timestamp ASC, ID ASC). An empty thread yields an empty, non-nil slice.
func ListMessages(ctx context.Context, db *gorm.DB, conversationID string) ([]domain.Message, error) {
	out := []domain.Message{}
	err := db.WithContext(ctx).
		Where("conversation_id = ?", conversationID).
		Order("timestamp ASC, id ASC").
		Find(&out).Error
	return out, err
}

// GetMessage fetches a message by ID.
func GetMessage(ctx context.Context, db *gorm.DB, id string) (*domain.Message, error) {
	var m domain.Message
	if err := db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for support cases
// and their message and attachment threads.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions or connection-scoped operations.
// They follow the "thin repository" approach: no business logic, only CRUD
// persistence and query composition. Workflow rules (status transitions,
// case numbering) live in services.CaseService.
//
// Error semantics:
//   - When a case is not found, functions return gorm.ErrRecordNotFound
//     (also exported here as ErrNotFound for convenience).
//   - A second case with an existing case number returns ErrDuplicate.
//   - On other DB errors the raw gorm error is propagated.
package repo

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// ErrDuplicate indicates that a unique key (case number, idempotency tuple,
// record id) is already taken.
var ErrDuplicate = errors.New("duplicate")

// isUniqueViolation reports whether err is a UNIQUE constraint failure.
// glebarez/sqlite often returns plain-text errors for UNIQUE violations.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	low := strings.ToLower(err.Error())
	return strings.Contains(low, "unique constraint failed") ||
		strings.Contains(low, "constraint failed: unique")
}

// CreateCase inserts c. An empty ID is filled with a UUID. Timestamps are
// stored as given.
func CreateCase(ctx context.Context, db *gorm.DB, c *domain.SupportCase) error {
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

// ListCases returns every case, newest first by insertion sequence.
func ListCases(ctx context.Context, db *gorm.DB) ([]domain.SupportCase, error) {
	var out []domain.SupportCase
	err := db.WithContext(ctx).
		Order("seq DESC").
		Find(&out).Error
	return out, err
}

// CountCases returns the total number of cases.
func CountCases(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.SupportCase{}).
		Count(&total).Error
	return total, err
}

// GetCase fetches a case by primary key or by case number (CASE-00001).
func GetCase(ctx context.Context, db *gorm.DB, ref string) (*domain.SupportCase, error) {
	var c domain.SupportCase
	err := db.WithContext(ctx).
		Where("id = ? OR case_id = ?", ref, ref).
		First(&c).Error
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// UpdateCase loads the case, applies fn and saves the result in one
// transaction. If fn returns an error nothing is written.
func UpdateCase(ctx context.Context, db *gorm.DB, ref string, fn func(*domain.SupportCase) error) (*domain.SupportCase, error) {
	var out *domain.SupportCase
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		c, err := GetCase(ctx, tx, ref)
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

// CreateCaseMessage appends a message to a case thread.
func CreateCaseMessage(ctx context.Context, db *gorm.DB, m *domain.CaseMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(m).Error
}

// ListCaseMessages returns a case thread ordered deterministically (CreatedAt ASC, ID ASC).
func ListCaseMessages(ctx context.Context, db *gorm.DB, caseID string) ([]domain.CaseMessage, error) {
	out := []domain.CaseMessage{}
	err := db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// CreateCaseAttachment records an attachment on a case.
func CreateCaseAttachment(ctx context.Context, db *gorm.DB, a *domain.CaseAttachment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return db.WithContext(ctx).Create(a).Error
}

// ListCaseAttachments returns a case's attachments in upload order.
func ListCaseAttachments(ctx context.Context, db *gorm.DB, caseID string) ([]domain.CaseAttachment, error) {
	out := []domain.CaseAttachment{}
	err := db.WithContext(ctx).
		Where("case_id = ?", caseID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer. Each function is context-aware and safe to call from services or
// handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// latest runs a count and a "newest value of col" query over q, where col is
// updated_at or timestamp. When q matches no rows the count is 0 and the
// timestamp is nil.
func latest(q *gorm.DB, col string) (count int64, maxTS *time.Time, err error) {
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Order+limit instead of MAX(), which SQLite returns as TEXT.
	var row struct {
		UpdatedAt time.Time
		Timestamp time.Time
	}
	if err = q.Select(col).Order(col + " DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	ts := row.UpdatedAt
	if col == "timestamp" {
		ts = row.Timestamp
	}
	return count, &ts, nil
}

// CasesStats returns the number of support cases and the greatest UpdatedAt.
//
// Return values:
//   - count:        total cases
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func CasesStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	return latest(db.WithContext(ctx).Model(&domain.SupportCase{}), "updated_at")
}

// ConversationsStats returns the number of conversations and the greatest
// UpdatedAt among them.
func ConversationsStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	return latest(db.WithContext(ctx).Model(&domain.Conversation{}), "updated_at")
}

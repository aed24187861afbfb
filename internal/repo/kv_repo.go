// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides a small key-value table used for
// documents the dashboard keeps as serialized text: maker profiles and
// payout methods.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// GetValue returns the text stored under key, or ErrNotFound.
func GetValue(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var e domain.KVEntry
	if err := db.WithContext(ctx).Where("key = ?", key).First(&e).Error; err != nil {
		return "", err
	}
	return e.Value, nil
}

// PutValue stores value under key, replacing any previous value.
func PutValue(ctx context.Context, db *gorm.DB, key, value string) error {
	e := domain.KVEntry{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&e).Error
}

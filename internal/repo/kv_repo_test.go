package repo

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

func TestKV_PutOverwritesAndGet(t *testing.T) {
	db := newTestDB(t, &domain.KVEntry{})
	ctx := context.Background()

	if _, err := GetValue(ctx, db, "profile:u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := PutValue(ctx, db, "profile:u1", `{"display_name":"A"}`); err != nil {
		t.Fatalf("PutValue: %v", err)
	}
	if err := PutValue(ctx, db, "profile:u1", `{"display_name":"B"}`); err != nil {
		t.Fatalf("PutValue overwrite: %v", err)
	}
	v, err := GetValue(ctx, db, "profile:u1")
	if err != nil || v != `{"display_name":"B"}` {
		t.Fatalf("GetValue = %q, %v", v, err)
	}

	var n int64
	db.Model(&domain.KVEntry{}).Count(&n)
	if n != 1 {
		t.Fatalf("upsert must keep one row, got %d", n)
	}
}

// Package services – record queries
//
// Royalty transactions, payout transactions and product ideas are generated
// once at startup and never change afterwards, so they are served straight
// from an in-memory RecordSet through the query engine.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/query"
)

// RecordSet is a read-only view over a fixed list of records.
// store.Collection satisfies it.
type RecordSet[T any] interface {
	List() []T
	Get(id string) (T, bool)
}

// runQuery executes req over recs, records metrics and classifies request
// errors as ErrInvalidQuery.
func runQuery[T any](ctx context.Context, s *query.Schema[T], recs []T, req query.Request, now time.Time) (query.Page[T], error) {
	_, span := otel.Tracer("services/query").Start(ctx, "Run",
		trace.WithAttributes(
			attribute.String("query.entity", s.Entity),
			attribute.String("query.sort", req.Sort.Key),
			attribute.Int("query.page", req.Page),
		),
	)
	defer span.End()

	start := time.Now()
	page, err := query.Run(recs, s, req, now)
	if err != nil {
		span.RecordError(err)
		if errors.Is(err, query.ErrUnknownField) || errors.Is(err, query.ErrUnknownSort) {
			return query.Page[T]{}, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		return query.Page[T]{}, err
	}
	observeQuery(s.Entity, start, page.Total)
	span.SetAttributes(attribute.Int("query.total", page.Total))
	return page, nil
}

func nowOr(fn func() time.Time) time.Time {
	if fn != nil {
		return fn().UTC()
	}
	return time.Now().UTC()
}

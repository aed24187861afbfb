package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
)

// RoyaltyService serves the designer royalty ledger.
type RoyaltyService struct {
	Records RecordSet[domain.RoyaltyTransaction]
	Now     func() time.Time
}

// Summary totals royalties per status. Amounts are summed in decimal and
// rounded to cents.
type Summary struct {
	WindowDays int     `json:"window_days"`
	Count      int     `json:"count"`
	Units      int     `json:"units"`
	Pending    float64 `json:"pending"`
	Available  float64 `json:"available"`
	Paid       float64 `json:"paid"`
	Total      float64 `json:"total"`
}

// List runs a royalty query.
func (s *RoyaltyService) List(ctx context.Context, req query.Request) (query.Page[domain.RoyaltyTransaction], error) {
	return runQuery(ctx, RoyaltySchema, s.Records.List(), req, nowOr(s.Now))
}

// Get returns one transaction or ErrTransactionNotFound.
func (s *RoyaltyService) Get(ctx context.Context, id string) (*domain.RoyaltyTransaction, error) {
	_, span := otel.Tracer("services/RoyaltyService").Start(ctx, "Get",
		trace.WithAttributes(attribute.String("royalty.id", id)))
	defer span.End()

	tx, ok := s.Records.Get(id)
	if !ok {
		return nil, ErrTransactionNotFound
	}
	return &tx, nil
}

// Summary totals transactions dated within the last windowDays days. A
// non-positive window covers the whole ledger.
func (s *RoyaltyService) Summary(ctx context.Context, windowDays int) (Summary, error) {
	_, span := otel.Tracer("services/RoyaltyService").Start(ctx, "Summary",
		trace.WithAttributes(attribute.Int("window.days", windowDays)))
	defer span.End()

	items, err := query.Execute(s.Records.List(), RoyaltySchema,
		query.FilterSpec{WithinDays: windowDays}, query.SortSpec{}, nowOr(s.Now))
	if err != nil {
		return Summary{}, err
	}

	var pending, available, paid decimal.Decimal
	out := Summary{WindowDays: windowDays, Count: len(items)}
	for _, tx := range items {
		amt := decimal.NewFromFloat(tx.Amount)
		switch tx.Status {
		case domain.RoyaltyPending:
			pending = pending.Add(amt)
		case domain.RoyaltyAvailable:
			available = available.Add(amt)
		case domain.RoyaltyPaid:
			paid = paid.Add(amt)
		}
		out.Units += tx.Qty
	}
	out.Pending = pending.Round(2).InexactFloat64()
	out.Available = available.Round(2).InexactFloat64()
	out.Paid = paid.Round(2).InexactFloat64()
	out.Total = pending.Add(available).Add(paid).Round(2).InexactFloat64()
	return out, nil
}

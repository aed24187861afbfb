package services

import (
	"context"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
)

// IdeaService lists trend-based product ideas for makers.
type IdeaService struct {
	Records RecordSet[domain.ProductIdea]
	Now     func() time.Time
}

// List runs an idea query. Sorting by competition fails with
// query.ErrUnknownOrdinal if the catalog holds a level outside Low/Medium/High.
func (s *IdeaService) List(ctx context.Context, req query.Request) (query.Page[domain.ProductIdea], error) {
	return runQuery(ctx, IdeaSchema, s.Records.List(), req, nowOr(s.Now))
}

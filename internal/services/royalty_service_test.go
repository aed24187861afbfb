package services

import (
	"context"
	"errors"
	"testing"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/fixtures"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

func royaltySet(txs ...domain.RoyaltyTransaction) *RoyaltyService {
	return &RoyaltyService{
		Records: store.NewCollection(func(r domain.RoyaltyTransaction) string { return r.ID }, txs...),
		Now:     fixedNow,
	}
}

func TestRoyalties_ThirtyDayWindowNewestFirst(t *testing.T) {
	s := royaltySet(
		domain.RoyaltyTransaction{ID: "RT-0003", Date: testNow.AddDate(0, 0, -40), Amount: 1},
		domain.RoyaltyTransaction{ID: "RT-0001", Date: testNow, Amount: 1},
		domain.RoyaltyTransaction{ID: "RT-0002", Date: testNow.AddDate(0, 0, -10), Amount: 1},
	)
	page, err := s.List(context.Background(), query.Request{
		Filter: query.FilterSpec{WithinDays: 30},
		Sort:   query.SortSpec{Key: "newest"},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 2 || page.Items[0].ID != "RT-0001" || page.Items[1].ID != "RT-0002" {
		t.Fatalf("items = %+v", page.Items)
	}
}

func TestRoyalties_GetAndSummary(t *testing.T) {
	s := royaltySet(
		domain.RoyaltyTransaction{ID: "a", Date: testNow, Qty: 2, Amount: 0.1, Status: domain.RoyaltyPending},
		domain.RoyaltyTransaction{ID: "b", Date: testNow, Qty: 1, Amount: 0.2, Status: domain.RoyaltyPending},
		domain.RoyaltyTransaction{ID: "c", Date: testNow.AddDate(0, 0, -20), Qty: 3, Amount: 5.55, Status: domain.RoyaltyAvailable},
		domain.RoyaltyTransaction{ID: "d", Date: testNow.AddDate(0, 0, -80), Qty: 4, Amount: 12, Status: domain.RoyaltyPaid},
	)
	ctx := context.Background()

	if tx, err := s.Get(ctx, "c"); err != nil || tx.Amount != 5.55 {
		t.Fatalf("Get: %v %+v", err, tx)
	}
	if _, err := s.Get(ctx, "zzz"); !errors.Is(err, ErrTransactionNotFound) {
		t.Fatalf("err = %v", err)
	}

	sum, err := s.Summary(ctx, 30)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if sum.Count != 3 || sum.Units != 6 || sum.Pending != 0.3 || sum.Available != 5.55 || sum.Paid != 0 || sum.Total != 5.85 {
		t.Fatalf("summary = %+v", sum)
	}
	all, _ := s.Summary(ctx, 0)
	if all.Count != 4 || all.Paid != 12 || all.Total != 17.85 {
		t.Fatalf("summary(all) = %+v", all)
	}
}

func TestRoyalties_GeneratedLedgerQueries(t *testing.T) {
	cat, err := fixtures.LoadCatalog("")
	if err != nil {
		t.Fatalf("LoadCatalog: %v", err)
	}
	set := fixtures.Generate(cat, fixtures.Options{Now: testNow})
	s := royaltySet(set.Royalties...)

	page, err := s.List(context.Background(), query.Request{
		Filter:   query.FilterSpec{Equals: map[string]string{"status": "paid"}},
		Sort:     query.SortSpec{Key: "amount_desc"},
		PageSize: 500,
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.PageSize != query.MaxPageSize {
		t.Fatalf("page size not capped: %d", page.PageSize)
	}
	for i, tx := range page.Items {
		if tx.Status != domain.RoyaltyPaid {
			t.Fatalf("non-paid row %+v", tx)
		}
		if i > 0 && page.Items[i-1].Amount < tx.Amount {
			t.Fatalf("not sorted by amount at %d", i)
		}
	}
}

func TestIdeas_DerivedSorts(t *testing.T) {
	s := &IdeaService{Records: store.NewCollection(func(i domain.ProductIdea) string { return i.ID },
		domain.ProductIdea{ID: "i1", DemandScore: 70, Competition: domain.CompetitionHigh, Margin: "20-30%", TimeToMarket: "2 weeks"},
		domain.ProductIdea{ID: "i2", DemandScore: 90, Competition: domain.CompetitionLow, Margin: "45-60%", TimeToMarket: "10 days"},
		domain.ProductIdea{ID: "i3", DemandScore: 80, Competition: domain.CompetitionMedium, Margin: "32-45%", TimeToMarket: "3 days"},
	)}
	ctx := context.Background()
	cases := map[string][]string{
		"":               {"i2", "i3", "i1"},
		"demand":         {"i2", "i3", "i1"},
		"competition":    {"i2", "i3", "i1"},
		"time_to_market": {"i3", "i2", "i1"},
		"margin":         {"i2", "i3", "i1"},
	}
	for key, want := range cases {
		page, err := s.List(ctx, query.Request{Sort: query.SortSpec{Key: key}})
		if err != nil {
			t.Fatalf("%s: %v", key, err)
		}
		for i, id := range want {
			if page.Items[i].ID != id {
				t.Fatalf("%s: got %v at %d, want %s", key, page.Items[i].ID, i, id)
			}
		}
	}

	bad := &IdeaService{Records: store.NewCollection(func(i domain.ProductIdea) string { return i.ID },
		domain.ProductIdea{ID: "x", Competition: "Extreme"}, domain.ProductIdea{ID: "y", Competition: domain.CompetitionLow})}
	if _, err := bad.List(ctx, query.Request{Sort: query.SortSpec{Key: "competition"}}); !errors.Is(err, query.ErrUnknownOrdinal) {
		t.Fatalf("err = %v, want ErrUnknownOrdinal", err)
	}
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

func newPayoutSvc(t *testing.T, txs ...domain.PayoutTransaction) *PayoutService {
	t.Helper()
	return &PayoutService{
		Records:       store.NewCollection(func(p domain.PayoutTransaction) string { return p.ID }, txs...),
		KV:            store.NewKV(),
		Sim:           sim.Instant(),
		DefaultMethod: "Bank Transfer ****4821",
		Now:           fixedNow,
	}
}

func TestUpdateDesignerMethod_MissingHolderKeepsPrevious(t *testing.T) {
	s := newPayoutSvc(t)
	ctx := context.Background()

	ok, err := s.UpdateDesignerMethod(ctx, "d1", DesignerMethodInput{Type: "PayPal", AccountHolder: "Dana", AccountDetails: "dana-000012345678"})
	if err != nil || !ok.Success || ok.Masked != "PayPal ****5678" {
		t.Fatalf("first update: %v %+v", err, ok)
	}

	res, err := s.UpdateDesignerMethod(ctx, "d1", DesignerMethodInput{Type: "Wise", AccountHolder: "", AccountDetails: "GB00 1111 2222"})
	if err != nil {
		t.Fatalf("validation must not be an error: %v", err)
	}
	want := Result{Success: false, Message: "Account holder and details are required"}
	if res != want {
		t.Fatalf("result = %+v, want %+v", res, want)
	}

	m, err := s.GetMethod(ctx, "d1", RoleDesigner)
	if err != nil || m.Type != "PayPal" || m.Masked != "PayPal ****5678" || m.AccountHolder != "Dana" {
		t.Fatalf("stored method changed: %v %+v", err, m)
	}
}

func TestUpdateSellerMethod(t *testing.T) {
	s := newPayoutSvc(t)
	ctx := context.Background()

	res, _ := s.UpdateSellerMethod(ctx, "s1", SellerMethodInput{PayoutType: "ACH"})
	if res.Success || res.Message != "Payout type and account number are required" {
		t.Fatalf("result = %+v", res)
	}
	if _, err := s.GetMethod(ctx, "s1", RoleSeller); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("seller without method: %v", err)
	}

	res, err := s.UpdateSellerMethod(ctx, "s1", SellerMethodInput{
		PayoutType: "ACH", AccountNumber: "000123456789", Line1: "1 Main St", City: "Austin", PostalCode: "78701", Country: "US",
	})
	if err != nil || !res.Success || res.Masked != "ACH ****6789" {
		t.Fatalf("update: %v %+v", err, res)
	}
	m, _ := s.GetMethod(ctx, "s1", RoleSeller)
	if m.Address == nil || m.Address.City != "Austin" || !m.UpdatedAt.Equal(testNow) {
		t.Fatalf("method = %+v", m)
	}
}

func TestUpdateMethod_SimulatedFailureStoresNothing(t *testing.T) {
	s := newPayoutSvc(t)
	s.Sim = sim.AlwaysFail()
	_, err := s.UpdateDesignerMethod(context.Background(), "d1", DesignerMethodInput{AccountHolder: "A", AccountDetails: "12345678"})
	if !errors.Is(err, ErrSimulatedFailure) {
		t.Fatalf("err = %v", err)
	}
	m, err := s.GetMethod(context.Background(), "d1", RoleDesigner)
	if err != nil || m.Masked != "Bank Transfer ****4821" {
		t.Fatalf("default method expected, got %v %+v", err, m)
	}
}

func TestUpdateMethod_CancelledCallerNeverApplies(t *testing.T) {
	s := newPayoutSvc(t)
	s.Sim = sim.New(time.Hour, time.Hour, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := s.UpdateDesignerMethod(ctx, "d1", DesignerMethodInput{AccountHolder: "A", AccountDetails: "12345678"}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.KV.GetValue(context.Background(), methodKey(RoleDesigner, "d1")); !errors.Is(err, repo.ErrNotFound) {
		t.Fatalf("cancelled update was stored: %v", err)
	}
}

func TestMask(t *testing.T) {
	cases := []struct{ typ, acct, want string }{
		{"Bank Transfer", "DE89 3704 0044 0532 0130 00", "Bank Transfer ****3000"},
		{"PayPal", "me@example.com", "PayPal ****.com"},
		{"Card", "12", "Card ****12"},
	}
	for _, c := range cases {
		if got := Mask(c.typ, c.acct); got != c.want {
			t.Fatalf("Mask(%q, %q) = %q, want %q", c.typ, c.acct, got, c.want)
		}
	}
}

func TestNextPayout(t *testing.T) {
	s := newPayoutSvc(t)
	next, err := s.NextPayout(testNow)
	if err != nil {
		t.Fatalf("NextPayout: %v", err)
	}
	want := time.Date(2025, 4, 1, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("next = %v, want %v", next, want)
	}
	s.Schedule = "not a cron"
	if _, err := s.NextPayout(testNow); !errors.Is(err, ErrInvalidSchedule) {
		t.Fatalf("err = %v", err)
	}
}

func TestListTransactions_WindowAndAmountSort(t *testing.T) {
	s := newPayoutSvc(t,
		domain.PayoutTransaction{ID: "PT-0001", Date: testNow.AddDate(0, 0, -2), Amount: 10, Status: domain.PayoutProcessing},
		domain.PayoutTransaction{ID: "PT-0002", Date: testNow.AddDate(0, 0, -20), Amount: 50, Status: domain.PayoutCompleted},
		domain.PayoutTransaction{ID: "PT-0003", Date: testNow.AddDate(0, 0, -60), Amount: 99, Status: domain.PayoutCompleted},
	)
	page, err := s.ListTransactions(context.Background(), query.Request{
		Filter: query.FilterSpec{WithinDays: 30},
		Sort:   query.SortSpec{Key: "amount_desc"},
	})
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if page.Total != 2 || page.Items[0].ID != "PT-0002" || page.Items[1].ID != "PT-0001" {
		t.Fatalf("items = %+v", page.Items)
	}
}

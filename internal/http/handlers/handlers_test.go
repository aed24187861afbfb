package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/fixtures"
	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/services"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

const base = "/api/v1"

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

type testApp struct {
	r     *gin.Engine
	set   fixtures.Set
	clock time.Time
}

// newTestApp wires real services over the in-memory store, seeded from the
// embedded catalog. backend drives the simulated payout and profile calls.
func newTestApp(t *testing.T, backend *sim.Simulator) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	ctx := context.Background()

	cat, err := fixtures.LoadCatalog("")
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	set := fixtures.Generate(cat, fixtures.Options{Seed: fixtures.DefaultSeed, Now: testNow})

	caseRepo, convRepo := store.NewCases(), store.NewConversations()
	if err := services.Seed(ctx, caseRepo, convRepo, set); err != nil {
		t.Fatalf("seed: %v", err)
	}
	app := &testApp{set: set, clock: testNow}
	now := func() time.Time { return app.clock }

	convs := services.NewConversationService(convRepo)
	convs.Now = now
	cases := services.NewCaseService(caseRepo, search.Default())
	cases.Now = now
	idem := store.NewIdempotency()

	h := New(Deps{
		Royalties: &services.RoyaltyService{
			Records: store.NewCollection(func(r domain.RoyaltyTransaction) string { return r.ID }, set.Royalties...),
			Now:     now,
		},
		Ideas: &services.IdeaService{
			Records: store.NewCollection(func(i domain.ProductIdea) string { return i.ID }, set.Ideas...),
			Now:     now,
		},
		Payouts: &services.PayoutService{
			Records:       store.NewCollection(func(p domain.PayoutTransaction) string { return p.ID }, set.Payouts...),
			KV:            store.NewKV(),
			Sim:           backend,
			DefaultMethod: cat.PayoutMethod,
			Now:           now,
		},
		Conversations: convs,
		Cases:         cases,
		Profiles:      &services.ProfileService{KV: store.NewKV(), Sim: backend},
		Idempotency:   idem,
		Now:           now,
	})

	r := gin.New()
	r.Use(middleware.RequestID(), middleware.Identity())
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{Scope: IdempotencyScope(base)},
		func(ctx context.Context, userID, scope, key string, now time.Time) (bool, error) {
			rec, err := idem.GetIdempotency(ctx, userID, scope, key, now)
			if err != nil {
				return false, err
			}
			return rec != nil, nil
		}))

	g := r.Group(base)
	g.GET("/royalties", h.ListRoyalties)
	g.GET("/royalties/summary", h.RoyaltySummary)
	g.GET("/royalties/:id", h.GetRoyalty)
	g.GET("/ideas", h.ListIdeas)
	g.GET("/payouts", h.ListPayouts)
	g.GET("/payouts/method", h.GetPayoutMethod)
	g.PUT("/payouts/method/designer", h.UpdateDesignerMethod)
	g.PUT("/payouts/method/seller", h.UpdateSellerMethod)
	g.GET("/payouts/next", h.NextPayout)
	g.GET("/conversations", h.ListConversations)
	g.GET("/conversations/:id", h.GetConversation)
	g.GET("/conversations/:id/messages", h.ListConversationMessages)
	g.POST("/conversations/:id/messages", h.SendMessage)
	g.POST("/conversations/:id/read", h.MarkConversationRead)
	g.GET("/cases", h.ListCases)
	g.POST("/cases", h.CreateCase)
	g.GET("/cases/:id", h.GetCase)
	g.POST("/cases/:id/status", h.TransitionCase)
	g.POST("/cases/:id/assign", h.AssignCase)
	g.GET("/cases/:id/messages", h.ListCaseMessages)
	g.POST("/cases/:id/messages", h.AddCaseMessage)
	g.GET("/cases/:id/attachments", h.ListCaseAttachments)
	g.POST("/cases/:id/attachments", h.AddCaseAttachment)
	g.GET("/support/articles", h.SuggestArticles)
	g.GET("/profile", h.GetProfile)
	g.PUT("/profile", h.SaveProfile)

	app.r = r
	return app
}

func (a *testApp) do(t *testing.T, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var rdr *bytes.Reader
	switch b := body.(type) {
	case nil:
		rdr = bytes.NewReader(nil)
	case string:
		rdr = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		rdr = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, base+path, rdr)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %T: %v; body=%s", v, err, w.Body.String())
	}
	return v
}

func wantStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	if w.Code != status {
		t.Fatalf("status=%d want %d; body=%s", w.Code, status, w.Body.String())
	}
}

func wantError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) ErrorResponse {
	t.Helper()
	wantStatus(t, w, status)
	er := decode[ErrorResponse](t, w)
	if er.Code != code {
		t.Fatalf("code=%q want %q (%+v)", er.Code, code, er)
	}
	if er.RequestID == "" {
		t.Fatalf("missing request_id in %+v", er)
	}
	return er
}

func TestListRoyalties_FilterSortPage(t *testing.T) {
	a := newTestApp(t, sim.Instant())

	w := a.do(t, http.MethodGet, "/royalties?status=all&sort=amount_desc&page=1&page_size=5", nil)
	wantStatus(t, w, http.StatusOK)
	page := decode[RoyaltyPage](t, w)
	if page.Total != len(a.set.Royalties) {
		t.Fatalf("total=%d want %d", page.Total, len(a.set.Royalties))
	}
	if len(page.Items) != 5 || page.PageSize != 5 || !page.HasNext {
		t.Fatalf("unexpected page meta: %+v items=%d", page.PageMeta, len(page.Items))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].Amount < page.Items[i].Amount {
			t.Fatalf("not sorted by amount desc at %d", i)
		}
	}

	w = a.do(t, http.MethodGet, "/royalties?status=paid&page_size=100", nil)
	wantStatus(t, w, http.StatusOK)
	for _, tx := range decode[RoyaltyPage](t, w).Items {
		if tx.Status != domain.RoyaltyPaid {
			t.Fatalf("status filter leaked %q", tx.Status)
		}
	}
}

func TestListRoyalties_UnknownSortIs400(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/royalties?sort=nope", nil)
	wantError(t, w, http.StatusBadRequest, ErrCodeInvalidQuery)
}

func TestGetRoyalty_FoundAndMissing(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	id := a.set.Royalties[0].ID

	w := a.do(t, http.MethodGet, "/royalties/"+id, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.RoyaltyTransaction](t, w); got.ID != id {
		t.Fatalf("got %q want %q", got.ID, id)
	}

	w = a.do(t, http.MethodGet, "/royalties/RT-missing", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestRoyaltySummary_AllTime(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/royalties/summary?days=0", nil)
	wantStatus(t, w, http.StatusOK)
	sum := decode[services.Summary](t, w)
	if sum.Count != len(a.set.Royalties) {
		t.Fatalf("count=%d want %d", sum.Count, len(a.set.Royalties))
	}
	if sum.Total <= 0 {
		t.Fatalf("expected positive total, got %v", sum.Total)
	}
}

func TestListIdeas_CategoryAndDemandOrder(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/ideas?category=All", nil)
	wantStatus(t, w, http.StatusOK)
	page := decode[IdeaPage](t, w)
	if page.Total != len(a.set.Ideas) {
		t.Fatalf("total=%d want %d", page.Total, len(a.set.Ideas))
	}
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i-1].DemandScore < page.Items[i].DemandScore {
			t.Fatalf("default order is not demand desc at %d", i)
		}
	}
}

func TestListRequest_ParsesParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet,
		"/x?q=mug&days=7&type=Request&ignored=1&unread=true&sort=priority&order=DESC&page=3&page_size=500", nil)

	req := listRequest(c, listParams{equals: []string{"type", "priority"}, toggles: []string{"unread"}})
	if req.Filter.Search != "mug" || req.Filter.WithinDays != 7 {
		t.Fatalf("filter: %+v", req.Filter)
	}
	if len(req.Filter.Equals) != 1 || req.Filter.Equals["type"] != "Request" {
		t.Fatalf("equals: %+v", req.Filter.Equals)
	}
	if !req.Filter.Toggles["unread"] {
		t.Fatalf("toggles: %+v", req.Filter.Toggles)
	}
	if req.Sort.Key != "priority" || !req.Sort.Desc {
		t.Fatalf("sort: %+v", req.Sort)
	}
	if req.Page != 3 || req.PageSize != 100 {
		t.Fatalf("page=%d size=%d", req.Page, req.PageSize)
	}
}

func TestListRequest_SortForms(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cases := map[string]query.SortSpec{
		"sort=-amount":           {Key: "amount", Desc: true},
		"sort=amount:desc":       {Key: "amount", Desc: true},
		"sort=-amount&order=asc": {Key: "amount"},
		"sort=amount&order=desc": {Key: "amount", Desc: true},
		"sort=newest":            {Key: "newest"},
		"":                       {},
	}
	for raw, want := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/x?"+raw, nil)
		if got := listRequest(c, listParams{}).Sort; got != want {
			t.Errorf("%q: sort = %+v; want %+v", raw, got, want)
		}
	}
}

func TestListRoyalties_PrefixedSortDescends(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/royalties?sort=-amount&page_size=100", nil)
	wantStatus(t, w, http.StatusOK)
	items := decode[RoyaltyPage](t, w).Items
	for i := 1; i < len(items); i++ {
		if items[i-1].Amount < items[i].Amount {
			t.Fatalf("not sorted by amount desc at %d", i)
		}
	}
}

func TestListRoyalties_ExtremeParams(t *testing.T) {
	a := newTestApp(t, sim.Instant())

	w := a.do(t, http.MethodGet, "/royalties?page=922337203685477581&page_size=20", nil)
	wantStatus(t, w, http.StatusOK)
	page := decode[RoyaltyPage](t, w)
	if len(page.Items) != 0 || page.Total != len(a.set.Royalties) || page.HasNext {
		t.Fatalf("huge page: %+v items=%d", page.PageMeta, len(page.Items))
	}

	w = a.do(t, http.MethodGet, "/royalties?days=200000&page_size=99999999999", nil)
	wantStatus(t, w, http.StatusOK)
	page = decode[RoyaltyPage](t, w)
	if page.Total != len(a.set.Royalties) || page.PageSize != query.MaxPageSize {
		t.Fatalf("huge window/size: %+v", page.PageMeta)
	}

	w = a.do(t, http.MethodGet, "/royalties/summary?days=200000", nil)
	wantStatus(t, w, http.StatusOK)
	if sum := decode[services.Summary](t, w); sum.Count != len(a.set.Royalties) {
		t.Fatalf("summary count=%d want %d", sum.Count, len(a.set.Royalties))
	}
}

func TestNotModified_StatsErrorSkipsETag(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	hit := notModified(c, "x", func(context.Context) (int64, *time.Time, error) {
		return 0, nil, errors.New("db down")
	})
	if hit || w.Header().Get("ETag") != "" {
		t.Fatalf("expected no etag on stats error")
	}
}

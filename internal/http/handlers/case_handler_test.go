package handlers

import (
	"net/http"
	"testing"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
)

func TestCreateCase_NextNumberAndOpen(t *testing.T) {
	a := newTestApp(t, sim.Instant())

	w := a.do(t, http.MethodPost, "/cases", CreateCaseRequest{
		Title:    "  Mug arrived   cracked ",
		Type:     "Quality",
		Priority: "high",
		LinkedTo: "ORD-10293",
	}, middleware.HeaderUserID, "seller-9")
	wantStatus(t, w, http.StatusCreated)

	sc := decode[domain.SupportCase](t, w)
	if sc.CaseID != domain.CaseNumber(int64(len(a.set.Cases)+1)) {
		t.Fatalf("case number %q after %d seeded cases", sc.CaseID, len(a.set.Cases))
	}
	if sc.Status != domain.CaseOpen || sc.Priority != domain.PriorityHigh || sc.CreatedBy != "seller-9" {
		t.Fatalf("unexpected case: %+v", sc)
	}
	if sc.Title != "Mug arrived cracked" {
		t.Fatalf("title not normalized: %q", sc.Title)
	}

	w = a.do(t, http.MethodGet, "/cases/"+sc.CaseID, nil)
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.SupportCase](t, w); got.ID != sc.ID {
		t.Fatalf("lookup by number returned %q want %q", got.ID, sc.ID)
	}
}

func TestCreateCase_Validation(t *testing.T) {
	a := newTestApp(t, sim.Instant())

	w := a.do(t, http.MethodPost, "/cases", `{"title":`)
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	w = a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "x", Type: "Nonsense"})
	wantError(t, w, http.StatusUnprocessableEntity, ErrCodeValidation)

	w = a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "x", Priority: "Critical"})
	wantError(t, w, http.StatusUnprocessableEntity, ErrCodeValidation)
}

func TestCreateCase_IdempotentReplay(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	body := CreateCaseRequest{Title: "Payout never arrived", Type: "Payment"}

	first := a.do(t, http.MethodPost, "/cases", body, middleware.HeaderIdempotencyKey, "k-123", middleware.HeaderUserID, "u1")
	wantStatus(t, first, http.StatusCreated)
	created := decode[domain.SupportCase](t, first)

	again := a.do(t, http.MethodPost, "/cases", body, middleware.HeaderIdempotencyKey, "k-123", middleware.HeaderUserID, "u1")
	wantStatus(t, again, http.StatusCreated)
	if again.Header().Get("Idempotent-Replay") != "true" {
		t.Fatalf("expected replay header")
	}
	if got := decode[domain.SupportCase](t, again); got.ID != created.ID || got.CaseID != created.CaseID {
		t.Fatalf("replay returned %s/%s want %s/%s", got.ID, got.CaseID, created.ID, created.CaseID)
	}

	// The key is per user.
	other := a.do(t, http.MethodPost, "/cases", body, middleware.HeaderIdempotencyKey, "k-123", middleware.HeaderUserID, "u2")
	wantStatus(t, other, http.StatusCreated)
	if got := decode[domain.SupportCase](t, other); got.ID == created.ID {
		t.Fatalf("different user must not replay")
	}

	w := a.do(t, http.MethodGet, "/cases?page_size=100", nil)
	wantStatus(t, w, http.StatusOK)
	if total := decode[CasePage](t, w).Total; total != len(a.set.Cases)+2 {
		t.Fatalf("total=%d want %d", total, len(a.set.Cases)+2)
	}
}

func TestCreateCase_BadIdempotencyKey(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "x"}, middleware.HeaderIdempotencyKey, "has space")
	wantError(t, w, http.StatusBadRequest, "bad_idempotency_key")
}

func TestListCases_ETagRoundTrip(t *testing.T) {
	a := newTestApp(t, sim.Instant())

	w := a.do(t, http.MethodGet, "/cases", nil)
	wantStatus(t, w, http.StatusOK)
	etag := w.Header().Get("ETag")
	if etag == "" {
		t.Fatalf("missing ETag")
	}

	w = a.do(t, http.MethodGet, "/cases", nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusNotModified)

	// A different filter is a different representation.
	w = a.do(t, http.MethodGet, "/cases?status=Open", nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusOK)

	wantStatus(t, a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "New one"}), http.StatusCreated)

	w = a.do(t, http.MethodGet, "/cases", nil, "If-None-Match", etag)
	wantStatus(t, w, http.StatusOK)
	if w.Header().Get("ETag") == etag {
		t.Fatalf("ETag did not change after create")
	}
}

func TestListCases_PriorityFirst(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/cases?status=All&page_size=100", nil)
	wantStatus(t, w, http.StatusOK)
	items := decode[CasePage](t, w).Items
	if len(items) != len(a.set.Cases) {
		t.Fatalf("items=%d want %d", len(items), len(a.set.Cases))
	}
	prev := -1
	for _, c := range items {
		r, err := c.Priority.Rank()
		if err != nil {
			t.Fatalf("rank %q: %v", c.Priority, err)
		}
		if prev >= 0 && r > prev {
			t.Fatalf("priority order broken at %s", c.CaseID)
		}
		prev = r
	}
}

func TestTransitionCase_WorkflowEdges(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "Wrong size"})
	wantStatus(t, w, http.StatusCreated)
	id := decode[domain.SupportCase](t, w).ID

	w = a.do(t, http.MethodPost, "/cases/"+id+"/status", TransitionRequest{Status: "Resolved"})
	wantError(t, w, http.StatusConflict, ErrCodeInvalidTransition)

	w = a.do(t, http.MethodPost, "/cases/"+id+"/status", TransitionRequest{Status: "Escalated"})
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)

	w = a.do(t, http.MethodPost, "/cases/"+id+"/status", TransitionRequest{Status: "  in progress "})
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.SupportCase](t, w); got.Status != domain.CaseInProgress {
		t.Fatalf("status=%q", got.Status)
	}

	w = a.do(t, http.MethodPost, "/cases/"+id+"/status", TransitionRequest{Status: "Resolved"})
	wantStatus(t, w, http.StatusOK)

	w = a.do(t, http.MethodPost, "/cases/CASE-99999/status", TransitionRequest{Status: "Closed"})
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)

	w = a.do(t, http.MethodPost, "/cases/"+id+"/status", `{}`)
	wantError(t, w, http.StatusBadRequest, ErrCodeBadRequest)
}

func TestAssignCase_SetAndClear(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "Assign me"})
	id := decode[domain.SupportCase](t, w).ID

	w = a.do(t, http.MethodPost, "/cases/"+id+"/assign", AssignRequest{AssignedTo: "agent-4"})
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.SupportCase](t, w); got.AssignedTo != "agent-4" {
		t.Fatalf("assigned_to=%q", got.AssignedTo)
	}

	w = a.do(t, http.MethodPost, "/cases/"+id+"/assign", AssignRequest{})
	wantStatus(t, w, http.StatusOK)
	if got := decode[domain.SupportCase](t, w); got.AssignedTo != "" {
		t.Fatalf("expected unassigned, got %q", got.AssignedTo)
	}
}

func TestCaseThread_MessagesAndAttachments(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodPost, "/cases", CreateCaseRequest{Title: "Thread"})
	number := decode[domain.SupportCase](t, w).CaseID

	w = a.do(t, http.MethodPost, "/cases/"+number+"/messages", CaseMessageRequest{Message: "  "})
	wantError(t, w, http.StatusUnprocessableEntity, ErrCodeValidation)

	w = a.do(t, http.MethodPost, "/cases/"+number+"/messages",
		CaseMessageRequest{Message: "Replacement shipped", Internal: true}, middleware.HeaderUserID, "agent-1")
	wantStatus(t, w, http.StatusCreated)
	if m := decode[domain.CaseMessage](t, w); m.Author != "agent-1" || !m.Internal {
		t.Fatalf("unexpected message: %+v", m)
	}

	w = a.do(t, http.MethodGet, "/cases/"+number+"/messages", nil)
	wantStatus(t, w, http.StatusOK)
	if msgs := decode[[]domain.CaseMessage](t, w); len(msgs) != 1 {
		t.Fatalf("messages=%d", len(msgs))
	}

	w = a.do(t, http.MethodPost, "/cases/"+number+"/attachments", AttachmentRequest{Name: "photo.jpg", Type: "image/jpeg", SizeBytes: 1024})
	wantStatus(t, w, http.StatusCreated)

	w = a.do(t, http.MethodGet, "/cases/"+number+"/attachments", nil)
	wantStatus(t, w, http.StatusOK)
	atts := decode[[]domain.CaseAttachment](t, w)
	if len(atts) != 1 || atts[0].Name != "photo.jpg" || atts[0].SizeBytes != 1024 {
		t.Fatalf("attachments: %+v", atts)
	}

	w = a.do(t, http.MethodGet, "/cases/nope/messages", nil)
	wantError(t, w, http.StatusNotFound, ErrCodeNotFound)
}

func TestSuggestArticles_CapsK(t *testing.T) {
	a := newTestApp(t, sim.Instant())
	w := a.do(t, http.MethodGet, "/support/articles?q=payout+missing&k=50", nil)
	wantStatus(t, w, http.StatusOK)
	if res := decode[[]search.Result](t, w); len(res) > maxSuggestions {
		t.Fatalf("got %d results, cap is %d", len(res), maxSuggestions)
	}

	w = a.do(t, http.MethodGet, "/support/articles?q=payout+missing", nil)
	wantStatus(t, w, http.StatusOK)
	if res := decode[[]search.Result](t, w); len(res) > defaultSuggestions {
		t.Fatalf("got %d results, default is %d", len(res), defaultSuggestions)
	}
}

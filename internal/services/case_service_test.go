package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

var testNow = time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func newCaseSvc(t *testing.T) *CaseService {
	t.Helper()
	s := NewCaseService(store.NewCases(), search.Default())
	s.Now = fixedNow
	return s
}

func mustCreate(t *testing.T, s *CaseService, in NewCase) *domain.SupportCase {
	t.Helper()
	c, err := s.Create(context.Background(), "seller-1", in)
	if err != nil {
		t.Fatalf("Create(%q): %v", in.Title, err)
	}
	return c
}

func TestCreate_SequentialNumbersAllOpen(t *testing.T) {
	s := newCaseSvc(t)
	prev := 0
	for i := 0; i < 5; i++ {
		c := mustCreate(t, s, NewCase{Title: "Case " + strconv.Itoa(i), Type: domain.CaseTypeShipping})
		if c.Status != domain.CaseOpen {
			t.Fatalf("status = %q, want Open", c.Status)
		}
		if !c.CreatedAt.Equal(c.UpdatedAt) {
			t.Fatalf("created %v != updated %v", c.CreatedAt, c.UpdatedAt)
		}
		n, err := strconv.Atoi(strings.TrimPrefix(c.CaseID, "CASE-"))
		if err != nil || n <= prev {
			t.Fatalf("case number %q not increasing after %d", c.CaseID, prev)
		}
		prev = n
	}
	if prev != 5 {
		t.Fatalf("last case number = %d, want 5", prev)
	}
}

func TestCreate_DefaultsAndValidation(t *testing.T) {
	s := newCaseSvc(t)
	c := mustCreate(t, s, NewCase{Title: "  Broken   hinge  "})
	if c.Title != "Broken hinge" || c.Type != domain.CaseTypeOther || c.Priority != domain.PriorityMedium {
		t.Fatalf("defaults not applied: %+v", c)
	}
	if c.CreatedBy != "seller-1" {
		t.Fatalf("CreatedBy = %q", c.CreatedBy)
	}

	bad := []NewCase{
		{Title: "   "},
		{Title: "x", Type: "Refund"},
		{Title: "x", Priority: "Critical"},
	}
	for _, in := range bad {
		if _, err := s.Create(context.Background(), "u", in); !errors.Is(err, ErrInvalidCase) {
			t.Fatalf("Create(%+v) err = %v, want ErrInvalidCase", in, err)
		}
	}
}

func TestList_MugSearchWithAllFilters(t *testing.T) {
	s := newCaseSvc(t)
	mustCreate(t, s, NewCase{Title: "Cracked MUG handle", Type: domain.CaseTypeQuality})
	mustCreate(t, s, NewCase{Title: "Late parcel", Type: domain.CaseTypeShipping})
	mustCreate(t, s, NewCase{Title: "Wrong color vase", Type: domain.CaseTypeOrder})

	page, err := s.List(context.Background(), query.Request{Filter: query.FilterSpec{
		Search: "mug",
		Equals: map[string]string{"status": "All", "type": "All", "priority": "all"},
	}})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if page.Total != 1 || page.Items[0].Title != "Cracked MUG handle" {
		t.Fatalf("want exactly the mug case, got %+v", page.Items)
	}
}

func TestList_PriorityThenNewestFirst(t *testing.T) {
	s := newCaseSvc(t)
	mustCreate(t, s, NewCase{Title: "old high", Priority: domain.PriorityHigh})
	mustCreate(t, s, NewCase{Title: "low", Priority: domain.PriorityLow})
	mustCreate(t, s, NewCase{Title: "new high", Priority: domain.PriorityHigh})

	page, err := s.List(context.Background(), query.Request{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var got []string
	for _, c := range page.Items {
		got = append(got, c.Title)
	}
	want := []string{"new high", "old high", "low"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("order = %v, want %v", got, want)
	}
}

func TestList_UnknownFilterIsInvalidQuery(t *testing.T) {
	s := newCaseSvc(t)
	mustCreate(t, s, NewCase{Title: "x"})
	_, err := s.List(context.Background(), query.Request{Filter: query.FilterSpec{Equals: map[string]string{"colour": "red"}}})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("err = %v, want ErrInvalidQuery", err)
	}
	_, err = s.List(context.Background(), query.Request{Sort: query.SortSpec{Key: "nope"}})
	if !errors.Is(err, ErrInvalidQuery) {
		t.Fatalf("sort err = %v, want ErrInvalidQuery", err)
	}
}

func TestTransition_Workflow(t *testing.T) {
	s := newCaseSvc(t)
	c := mustCreate(t, s, NewCase{Title: "x"})
	ctx := context.Background()

	later := testNow.Add(time.Hour)
	s.Now = func() time.Time { return later }

	got, err := s.Transition(ctx, c.CaseID, domain.CaseInProgress)
	if err != nil || got.Status != domain.CaseInProgress || !got.UpdatedAt.Equal(later) {
		t.Fatalf("Transition: %v %+v", err, got)
	}
	if _, err := s.Transition(ctx, c.ID, domain.CaseOpen); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("In Progress -> Open err = %v", err)
	}
	cur, _ := s.Get(ctx, c.ID)
	if cur.Status != domain.CaseInProgress {
		t.Fatalf("rejected transition changed status to %q", cur.Status)
	}

	// Same status is a no-op and does not touch UpdatedAt.
	s.Now = func() time.Time { return later.Add(time.Hour) }
	got, err = s.Transition(ctx, c.ID, domain.CaseInProgress)
	if err != nil || !got.UpdatedAt.Equal(later) {
		t.Fatalf("no-op transition: %v %+v", err, got)
	}

	for _, next := range []domain.CaseStatus{domain.CaseResolved, domain.CaseOpen, domain.CaseClosed, domain.CaseOpen} {
		if _, err := s.Transition(ctx, c.ID, next); err != nil {
			t.Fatalf("-> %s: %v", next, err)
		}
	}
	if _, err := s.Transition(ctx, c.ID, "Escalated"); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("unknown status err = %v", err)
	}
	if _, err := s.Transition(ctx, "CASE-99999", domain.CaseClosed); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("missing case err = %v", err)
	}
}

func TestAssign(t *testing.T) {
	s := newCaseSvc(t)
	c := mustCreate(t, s, NewCase{Title: "x"})
	got, err := s.Assign(context.Background(), c.ID, "  agent-7 ")
	if err != nil || got.AssignedTo != "agent-7" {
		t.Fatalf("Assign: %v %+v", err, got)
	}
	if _, err := s.Assign(context.Background(), "missing", "a"); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestThread_MessagesAndAttachments(t *testing.T) {
	s := newCaseSvc(t)
	c := mustCreate(t, s, NewCase{Title: "x"})
	ctx := context.Background()

	if _, err := s.AddMessage(ctx, c.ID, "seller-1", "   ", false); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("blank message err = %v", err)
	}
	s.MaxMessageRunes = 5
	if _, err := s.AddMessage(ctx, c.ID, "seller-1", "too long", false); !errors.Is(err, ErrTooLong) {
		t.Fatalf("long message err = %v", err)
	}
	s.MaxMessageRunes = 0

	empty, err := s.Messages(ctx, c.CaseID)
	if err != nil || empty == nil || len(empty) != 0 {
		t.Fatalf("empty thread: %v %#v", err, empty)
	}
	m, err := s.AddMessage(ctx, c.CaseID, "agent", "Looking into it", true)
	if err != nil || m.ID == "" || m.CaseID != c.ID || !m.Internal {
		t.Fatalf("AddMessage: %v %+v", err, m)
	}
	if _, err := s.AddAttachment(ctx, c.ID, "photo.jpg", "image/jpeg", 2048); err != nil {
		t.Fatalf("AddAttachment: %v", err)
	}
	if _, err := s.AddAttachment(ctx, c.ID, " ", "", 0); !errors.Is(err, ErrInvalidCase) {
		t.Fatalf("nameless attachment err = %v", err)
	}

	msgs, _ := s.Messages(ctx, c.ID)
	atts, _ := s.Attachments(ctx, c.ID)
	if len(msgs) != 1 || len(atts) != 1 || atts[0].Name != "photo.jpg" {
		t.Fatalf("thread = %+v / %+v", msgs, atts)
	}
	if _, err := s.Messages(ctx, "missing"); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.AddMessage(ctx, "missing", "a", "hi", false); !errors.Is(err, ErrCaseNotFound) {
		t.Fatalf("err = %v", err)
	}
}

// failingChildren stores cases but refuses every message and attachment.
type failingChildren struct {
	*store.Cases
}

var errChildWrite = errors.New("child write failed")

func (failingChildren) CreateCaseMessage(context.Context, *domain.CaseMessage) error {
	return errChildWrite
}

func (failingChildren) CreateCaseAttachment(context.Context, *domain.CaseAttachment) error {
	return errChildWrite
}

func TestThread_FailedChildLeavesCaseUntouched(t *testing.T) {
	s := NewCaseService(failingChildren{store.NewCases()}, search.Default())
	s.Now = fixedNow
	c := mustCreate(t, s, NewCase{Title: "x"})
	ctx := context.Background()

	later := testNow.Add(time.Hour)
	s.Now = func() time.Time { return later }

	if _, err := s.AddMessage(ctx, c.ID, "agent", "hello", false); !errors.Is(err, errChildWrite) {
		t.Fatalf("AddMessage err = %v", err)
	}
	if _, err := s.AddAttachment(ctx, c.ID, "photo.jpg", "image/jpeg", 10); !errors.Is(err, errChildWrite) {
		t.Fatalf("AddAttachment err = %v", err)
	}
	got, err := s.Get(ctx, c.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.UpdatedAt.Equal(testNow) {
		t.Fatalf("UpdatedAt = %v, want %v", got.UpdatedAt, testNow)
	}
}

func TestThread_ChildTouchesCase(t *testing.T) {
	s := newCaseSvc(t)
	c := mustCreate(t, s, NewCase{Title: "x"})
	later := testNow.Add(time.Hour)
	s.Now = func() time.Time { return later }

	if _, err := s.AddMessage(context.Background(), c.CaseID, "agent", "hello", false); err != nil {
		t.Fatalf("AddMessage: %v", err)
	}
	got, _ := s.Get(context.Background(), c.ID)
	if !got.UpdatedAt.Equal(later) {
		t.Fatalf("UpdatedAt = %v, want %v", got.UpdatedAt, later)
	}
}

func TestSuggestArticles(t *testing.T) {
	s := newCaseSvc(t)
	res := s.SuggestArticles(context.Background(), "package lost late", 2)
	if len(res) == 0 || res[0].Article != "Package is late or lost" {
		t.Fatalf("suggestions = %+v", res)
	}
	if got := s.SuggestArticles(context.Background(), "", 2); got == nil || len(got) != 0 {
		t.Fatalf("blank query must yield an empty slice, got %#v", got)
	}
	s.Index = nil
	if got := s.SuggestArticles(context.Background(), "lost", 2); got == nil {
		t.Fatalf("nil index must yield an empty slice")
	}
}

package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

func newConvSvc(t *testing.T, convs ...domain.Conversation) *ConversationService {
	t.Helper()
	r := store.NewConversations()
	for i := range convs {
		if err := r.CreateConversation(context.Background(), &convs[i]); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	s := NewConversationService(r)
	s.Now = fixedNow
	return s
}

func TestMarkRead_Idempotent(t *testing.T) {
	s := newConvSvc(t, domain.Conversation{ID: "c1", Type: domain.ConversationRequest, Priority: domain.PriorityHigh, UnreadCount: 3})
	ctx := context.Background()

	first, err := s.MarkRead(ctx, "c1")
	if err != nil || first.UnreadCount != 0 {
		t.Fatalf("first MarkRead: %v %+v", err, first)
	}
	second, err := s.MarkRead(ctx, "c1")
	if err != nil {
		t.Fatalf("second MarkRead: %v", err)
	}
	if second.UnreadCount != 0 || !second.UpdatedAt.Equal(first.UpdatedAt) || second.LastMessage != first.LastMessage {
		t.Fatalf("second call changed state: %+v vs %+v", second, first)
	}
	if _, err := s.MarkRead(ctx, "missing"); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestSendMessage_FirstMessageSyncsPreview(t *testing.T) {
	s := newConvSvc(t, domain.Conversation{ID: "c1", Type: domain.ConversationSupport, Priority: domain.PriorityLow})
	ctx := context.Background()

	before, err := s.Messages(ctx, "c1")
	if err != nil || len(before) != 0 {
		t.Fatalf("Messages before: %v %+v", err, before)
	}
	m, err := s.SendMessage(ctx, "c1", "maker-1", "  Print is on the bed  ", []string{"", "photo.jpg"})
	if err != nil {
		t.Fatalf("SendMessage: %v", err)
	}
	if m.ID == "" || m.Content != "Print is on the bed" || len(m.Attachments) != 1 {
		t.Fatalf("message = %+v", m)
	}
	if _, err := time.Parse(time.RFC3339, m.Timestamp.Format(time.RFC3339)); err != nil || m.Timestamp.IsZero() {
		t.Fatalf("timestamp not a valid instant: %v", m.Timestamp)
	}

	m2, _ := s.SendMessage(ctx, "c1", "maker-1", "second", nil)
	if m2.ID == m.ID {
		t.Fatalf("message ids must be unique")
	}

	c, _ := s.Get(ctx, "c1")
	if c.LastMessage.Content != "second" || c.LastMessage.SenderID != "maker-1" || !c.UpdatedAt.Equal(testNow) {
		t.Fatalf("preview not synced: %+v", c)
	}
	thread, _ := s.Messages(ctx, "c1")
	if len(thread) != 2 {
		t.Fatalf("thread len = %d", len(thread))
	}
	got, err := s.Message(ctx, "c1", m.ID)
	if err != nil || got.Content != m.Content {
		t.Fatalf("Message: %v %+v", err, got)
	}
	if _, err := s.Message(ctx, "other", m.ID); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("foreign message err = %v", err)
	}
}

func TestSendMessage_Validation(t *testing.T) {
	s := newConvSvc(t, domain.Conversation{ID: "c1", Type: domain.ConversationSystem, Priority: domain.PriorityLow})
	ctx := context.Background()
	if _, err := s.SendMessage(ctx, "c1", "u", " \n ", nil); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("err = %v", err)
	}
	s.MaxContentRunes = 3
	if _, err := s.SendMessage(ctx, "c1", "u", "abcd", nil); !errors.Is(err, ErrTooLong) {
		t.Fatalf("err = %v", err)
	}
	if _, err := s.SendMessage(ctx, "missing", "u", "abc", nil); !errors.Is(err, ErrConversationNotFound) {
		t.Fatalf("err = %v", err)
	}
}

func TestList_UnreadToggleAndSearch(t *testing.T) {
	s := newConvSvc(t,
		domain.Conversation{ID: "c1", Type: domain.ConversationRequest, Priority: domain.PriorityHigh, UnreadCount: 2,
			Participants: []domain.Participant{{ID: "s1", Name: "Ava Seller"}},
			LastMessage:  domain.LastMessage{Content: "Can you print 20 planters?", Timestamp: testNow.Add(-time.Hour)}},
		domain.Conversation{ID: "c2", Type: domain.ConversationSupport, Priority: domain.PriorityLow,
			Participants: []domain.Participant{{ID: "sup", Name: "Support"}},
			LastMessage:  domain.LastMessage{Content: "Ticket closed", Timestamp: testNow}},
	)
	ctx := context.Background()

	page, err := s.List(ctx, query.Request{})
	if err != nil || len(page.Items) != 2 || page.Items[0].ID != "c2" {
		t.Fatalf("default recent sort: %v %+v", err, page.Items)
	}
	page, _ = s.List(ctx, query.Request{Filter: query.FilterSpec{Toggles: map[string]bool{"unread": true}}})
	if page.Total != 1 || page.Items[0].ID != "c1" {
		t.Fatalf("unread filter: %+v", page.Items)
	}
	page, _ = s.List(ctx, query.Request{Filter: query.FilterSpec{Search: "ava"}})
	if page.Total != 1 || page.Items[0].ID != "c1" {
		t.Fatalf("participant search: %+v", page.Items)
	}
	page, _ = s.List(ctx, query.Request{Sort: query.SortSpec{Key: "priority"}})
	if page.Items[0].ID != "c1" {
		t.Fatalf("priority sort: %+v", page.Items)
	}
	page, _ = s.List(ctx, query.Request{Filter: query.FilterSpec{Equals: map[string]string{"type": "support"}}})
	if page.Total != 1 || !strings.EqualFold(string(page.Items[0].Type), "Support") {
		t.Fatalf("type filter: %+v", page.Items)
	}
}

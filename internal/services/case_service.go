// Package services – CaseService
//
// CaseService runs the support case workflow: listing through the query
// engine, opening cases with sequential case numbers, moving cases along the
// status workflow, assignment, and the per-case thread of messages and
// attachments. It also suggests help-center articles for a draft case.
//
// Case numbers are derived from the number of stored cases. A service-level
// mutex serializes Create so two callers in one process never draw the same
// number; the unique index on case_id rejects anything that slips past it.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/search"
)

// NewCase is the input of Create. Status is always Open on creation.
type NewCase struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        domain.CaseType `json:"type"`
	Priority    domain.Priority `json:"priority"`
	LinkedTo    string          `json:"linked_to,omitempty"`
	AssignedTo  string          `json:"assigned_to,omitempty"`
}

// CaseService coordinates support case reads and writes.
type CaseService struct {
	Repo  CaseRepo
	Index search.Index
	Now   func() time.Time

	// TitleMaxLen caps stored titles by rune length.
	TitleMaxLen int
	// MaxMessageRunes caps thread messages; zero disables the check.
	MaxMessageRunes int

	mu sync.Mutex
}

// NewCaseService constructs a CaseService with default limits.
func NewCaseService(r CaseRepo, idx search.Index) *CaseService {
	return &CaseService{
		Repo:            r,
		Index:           idx,
		TitleMaxLen:     120,
		MaxMessageRunes: 4000,
	}
}

func (s *CaseService) tracer() trace.Tracer { return otel.Tracer("services/CaseService") }

// List runs a case query over all cases, newest first before sorting.
func (s *CaseService) List(ctx context.Context, req query.Request) (query.Page[domain.SupportCase], error) {
	all, err := s.Repo.ListCases(ctx)
	if err != nil {
		return query.Page[domain.SupportCase]{}, err
	}
	return runQuery(ctx, CaseSchema, all, req, nowOr(s.Now))
}

// Get resolves a case by id or case number.
func (s *CaseService) Get(ctx context.Context, ref string) (*domain.SupportCase, error) {
	c, err := s.Repo.GetCase(ctx, ref)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return c, err
}

// Create opens a case as createdBy. The case number is CASE-%05d of the
// current case count plus one and CreatedAt equals UpdatedAt.
func (s *CaseService) Create(ctx context.Context, createdBy string, in NewCase) (*domain.SupportCase, error) {
	ctx, span := s.tracer().Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", createdBy)))
	defer span.End()

	title := normalizeTitle(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidCase)
	}
	if s.TitleMaxLen > 0 && utf8.RuneCountInString(title) > s.TitleMaxLen {
		title = string([]rune(title)[:s.TitleMaxLen])
	}
	if in.Type == "" {
		in.Type = domain.CaseTypeOther
	}
	if !in.Type.Valid() {
		return nil, fmt.Errorf("%w: type %q", ErrInvalidCase, in.Type)
	}
	if in.Priority == "" {
		in.Priority = domain.PriorityMedium
	}
	p, err := domain.ParsePriority(string(in.Priority))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCase, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	n, err := s.Repo.CountCases(ctx)
	if err != nil {
		return nil, err
	}
	now := nowOr(s.Now)
	c := &domain.SupportCase{
		ID:          uuid.NewString(),
		CaseID:      domain.CaseNumber(n + 1),
		Seq:         n + 1,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Type:        in.Type,
		Status:      domain.CaseOpen,
		Priority:    p,
		LinkedTo:    strings.TrimSpace(in.LinkedTo),
		AssignedTo:  strings.TrimSpace(in.AssignedTo),
		CreatedBy:   createdBy,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.Repo.CreateCase(ctx, c); err != nil {
		span.RecordError(err)
		return nil, err
	}
	span.SetAttributes(attribute.String("case.id", c.CaseID))
	log.Ctx(ctx).Info().Str("case_id", c.CaseID).Str("priority", string(c.Priority)).Msg("case opened")
	return c, nil
}

// Transition moves a case to next. Writing the current status is a no-op;
// any other move must be an edge of the workflow or ErrInvalidTransition is
// returned and the case is left as it was.
func (s *CaseService) Transition(ctx context.Context, ref string, next domain.CaseStatus) (*domain.SupportCase, error) {
	ctx, span := s.tracer().Start(ctx, "Transition",
		trace.WithAttributes(attribute.String("case.ref", ref), attribute.String("case.status", string(next))))
	defer span.End()

	if !next.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidTransition, next)
	}
	c, err := s.Repo.UpdateCase(ctx, ref, func(c *domain.SupportCase) error {
		if c.Status == next {
			return nil
		}
		if !c.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, c.Status, next)
		}
		c.Status = next
		c.UpdatedAt = nowOr(s.Now)
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return c, err
}

// Assign sets the assignee; an empty assignee unassigns the case.
func (s *CaseService) Assign(ctx context.Context, ref, assignee string) (*domain.SupportCase, error) {
	ctx, span := s.tracer().Start(ctx, "Assign",
		trace.WithAttributes(attribute.String("case.ref", ref)))
	defer span.End()

	assignee = strings.TrimSpace(assignee)
	c, err := s.Repo.UpdateCase(ctx, ref, func(c *domain.SupportCase) error {
		if c.AssignedTo == assignee {
			return nil
		}
		c.AssignedTo = assignee
		c.UpdatedAt = nowOr(s.Now)
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return c, err
}

// AddMessage appends to a case thread and touches the case.
func (s *CaseService) AddMessage(ctx context.Context, ref, author, message string, internal bool) (*domain.CaseMessage, error) {
	ctx, span := s.tracer().Start(ctx, "AddMessage",
		trace.WithAttributes(attribute.String("case.ref", ref)))
	defer span.End()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyContent
	}
	if s.MaxMessageRunes > 0 && utf8.RuneCountInString(message) > s.MaxMessageRunes {
		return nil, ErrTooLong
	}
	c, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	now := nowOr(s.Now)
	m := &domain.CaseMessage{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		Author:    author,
		Message:   message,
		Internal:  internal,
		CreatedAt: now,
	}
	if err := s.Repo.CreateCaseMessage(ctx, m); err != nil {
		span.RecordError(err)
		return nil, err
	}
	if _, err := s.touch(ctx, c.ID, now); err != nil {
		span.RecordError(err)
		return nil, err
	}
	return m, nil
}

// AddAttachment records a file reference on a case.
func (s *CaseService) AddAttachment(ctx context.Context, ref, name, typ string, size int64) (*domain.CaseAttachment, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: attachment name is required", ErrInvalidCase)
	}
	c, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	now := nowOr(s.Now)
	a := &domain.CaseAttachment{
		ID:        uuid.NewString(),
		CaseID:    c.ID,
		Name:      name,
		Type:      strings.TrimSpace(typ),
		SizeBytes: size,
		CreatedAt: now,
	}
	if err := s.Repo.CreateCaseAttachment(ctx, a); err != nil {
		return nil, err
	}
	if _, err := s.touch(ctx, c.ID, now); err != nil {
		return nil, err
	}
	return a, nil
}

// Messages returns a case thread, oldest first.
func (s *CaseService) Messages(ctx context.Context, ref string) ([]domain.CaseMessage, error) {
	c, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListCaseMessages(ctx, c.ID)
}

// Attachments returns the files attached to a case.
func (s *CaseService) Attachments(ctx context.Context, ref string) ([]domain.CaseAttachment, error) {
	c, err := s.Get(ctx, ref)
	if err != nil {
		return nil, err
	}
	return s.Repo.ListCaseAttachments(ctx, c.ID)
}

// SuggestArticles returns help-center articles matching a draft case.
func (s *CaseService) SuggestArticles(ctx context.Context, q string, k int) []search.Result {
	_, span := s.tracer().Start(ctx, "SuggestArticles")
	defer span.End()

	if s.Index == nil {
		return []search.Result{}
	}
	res := s.Index.TopK(q, k)
	if res == nil {
		return []search.Result{}
	}
	return res
}

// Stats feeds list ETags.
func (s *CaseService) Stats(ctx context.Context) (int64, *time.Time, error) {
	return s.Repo.CasesStats(ctx)
}

func (s *CaseService) touch(ctx context.Context, ref string, now time.Time) (*domain.SupportCase, error) {
	c, err := s.Repo.UpdateCase(ctx, ref, func(c *domain.SupportCase) error {
		c.UpdatedAt = now
		return nil
	})
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrCaseNotFound
	}
	return c, err
}

// normalizeTitle trims whitespace and collapses runs of it to one space.
func normalizeTitle(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

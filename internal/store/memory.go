package store

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
)

// Cases is the in-memory support case repository. Cases are kept
// newest-first, matching the ORDER BY seq DESC of the SQL repository.
type Cases struct {
	cases       *Collection[domain.SupportCase]
	messages    *Buckets[domain.CaseMessage]
	attachments *Buckets[domain.CaseAttachment]
}

// NewCases returns an empty case repository.
func NewCases() *Cases {
	return &Cases{
		cases:       NewCollection(func(c domain.SupportCase) string { return c.ID }),
		messages:    NewBuckets[domain.CaseMessage](),
		attachments: NewBuckets[domain.CaseAttachment](),
	}
}

func (s *Cases) ListCases(_ context.Context) ([]domain.SupportCase, error) {
	return s.cases.List(), nil
}

// GetCase accepts either the primary key or the case number.
func (s *Cases) GetCase(_ context.Context, ref string) (*domain.SupportCase, error) {
	c, ok := s.cases.Find(func(c domain.SupportCase) bool { return c.ID == ref || c.CaseID == ref })
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *Cases) CountCases(_ context.Context) (int64, error) {
	return int64(s.cases.Len()), nil
}

func (s *Cases) CreateCase(_ context.Context, c *domain.SupportCase) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, dup := s.cases.Find(func(x domain.SupportCase) bool { return x.ID == c.ID || x.CaseID == c.CaseID }); dup {
		return repo.ErrDuplicate
	}
	s.cases.Prepend(*c)
	return nil
}

func (s *Cases) UpdateCase(ctx context.Context, ref string, fn func(*domain.SupportCase) error) (*domain.SupportCase, error) {
	cur, err := s.GetCase(ctx, ref)
	if err != nil {
		return nil, err
	}
	out, err := s.cases.Patch(cur.ID, fn)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Cases) CreateCaseMessage(_ context.Context, m *domain.CaseMessage) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.messages.Append(m.CaseID, *m)
	return nil
}

func (s *Cases) ListCaseMessages(_ context.Context, caseID string) ([]domain.CaseMessage, error) {
	return s.messages.List(caseID), nil
}

func (s *Cases) CreateCaseAttachment(_ context.Context, a *domain.CaseAttachment) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	s.attachments.Append(a.CaseID, *a)
	return nil
}

func (s *Cases) ListCaseAttachments(_ context.Context, caseID string) ([]domain.CaseAttachment, error) {
	return s.attachments.List(caseID), nil
}

// CasesStats mirrors repo.CasesStats for ETag generation.
func (s *Cases) CasesStats(_ context.Context) (int64, *time.Time, error) {
	all := s.cases.List()
	if len(all) == 0 {
		return 0, nil, nil
	}
	latest := all[0].UpdatedAt
	for _, c := range all[1:] {
		if c.UpdatedAt.After(latest) {
			latest = c.UpdatedAt
		}
	}
	return int64(len(all)), &latest, nil
}

// Conversations is the in-memory inbox repository.
type Conversations struct {
	convs    *Collection[domain.Conversation]
	messages *Buckets[domain.Message]

	mu    sync.RWMutex
	index map[string]domain.Message
}

// NewConversations returns an empty conversation repository.
func NewConversations() *Conversations {
	return &Conversations{
		convs:    NewCollection(func(c domain.Conversation) string { return c.ID }),
		messages: NewBuckets[domain.Message](),
		index:    map[string]domain.Message{},
	}
}

func (s *Conversations) ListConversations(_ context.Context) ([]domain.Conversation, error) {
	return s.convs.List(), nil
}

func (s *Conversations) GetConversation(_ context.Context, id string) (*domain.Conversation, error) {
	c, ok := s.convs.Get(id)
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (s *Conversations) CreateConversation(_ context.Context, c *domain.Conversation) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if _, dup := s.convs.Get(c.ID); dup {
		return repo.ErrDuplicate
	}
	s.convs.Append(*c)
	return nil
}

func (s *Conversations) UpdateConversation(_ context.Context, id string, fn func(*domain.Conversation) error) (*domain.Conversation, error) {
	out, err := s.convs.Patch(id, fn)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *Conversations) CreateMessage(_ context.Context, m *domain.Message) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	s.messages.Append(m.ConversationID, *m)
	s.mu.Lock()
	s.index[m.ID] = *m
	s.mu.Unlock()
	return nil
}

func (s *Conversations) ListMessages(_ context.Context, conversationID string) ([]domain.Message, error) {
	return s.messages.List(conversationID), nil
}

func (s *Conversations) GetMessage(_ context.Context, id string) (*domain.Message, error) {
	s.mu.RLock()
	m, ok := s.index[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	return &m, nil
}

// ConversationsStats mirrors repo.ConversationsStats for ETag generation.
func (s *Conversations) ConversationsStats(_ context.Context) (int64, *time.Time, error) {
	all := s.convs.List()
	if len(all) == 0 {
		return 0, nil, nil
	}
	latest := all[0].UpdatedAt
	for _, c := range all[1:] {
		if c.UpdatedAt.After(latest) {
			latest = c.UpdatedAt
		}
	}
	return int64(len(all)), &latest, nil
}

// KV is an in-memory key-value store holding serialized documents.
type KV struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewKV returns an empty store.
func NewKV() *KV { return &KV{m: map[string]string{}} }

func (s *KV) GetValue(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (s *KV) PutValue(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

// Idempotency keeps idempotency records in memory with the same expiry and
// duplicate semantics as the SQL repository.
type Idempotency struct {
	mu  sync.Mutex
	m   map[string]domain.Idempotency
	now func() time.Time
}

// NewIdempotency returns an empty idempotency store.
func NewIdempotency() *Idempotency {
	return &Idempotency{m: map[string]domain.Idempotency{}, now: time.Now}
}

func idemKey(userID, scope, key string) string { return userID + "\x00" + scope + "\x00" + key }

func (s *Idempotency) GetIdempotency(_ context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.m[idemKey(userID, scope, key)]
	if !ok || rec.Expired(now) {
		return nil, ErrNotFound
	}
	return &rec, nil
}

func (s *Idempotency) CreateIdempotency(_ context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().UTC()
	k := idemKey(userID, scope, key)
	if cur, ok := s.m[k]; ok && !cur.Expired(now) {
		return nil, repo.ErrDuplicate
	}
	rec := domain.Idempotency{
		ID:         uuid.NewString(),
		UserID:     userID,
		Scope:      scope,
		Key:        key,
		ResourceID: resourceID,
		Status:     status,
		CreatedAt:  now,
		ExpiresAt:  now.Add(ttl),
	}
	s.m[k] = rec
	return &rec, nil
}

package httpapi

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/fixtures"
	"github.com/tbourn/go-marketplace-backend/internal/http/handlers"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/services"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
	"github.com/tbourn/go-marketplace-backend/internal/store"
)

// Stores bundles the mutable repositories behind the services.
type Stores struct {
	Cases         services.CaseRepo
	Conversations services.ConversationRepo
	KV            services.KVRepo
	Idempotency   services.IdempotencyRepo
}

// NewStores returns GORM-backed repositories over db, or in-memory ones when
// db is nil.
func NewStores(db *gorm.DB) Stores {
	if db == nil {
		return Stores{
			Cases:         store.NewCases(),
			Conversations: store.NewConversations(),
			KV:            store.NewKV(),
			Idempotency:   store.NewIdempotency(),
		}
	}
	return Stores{
		Cases:         caseRepoShim{db},
		Conversations: conversationRepoShim{db},
		KV:            kvRepoShim{db},
		Idempotency:   idempotencyRepoShim{db},
	}
}

// Deps is everything RegisterRoutes needs to build the services.
type Deps struct {
	Stores  Stores
	Records fixtures.Set
	Index   search.Index
	Backend *sim.Simulator
	// DefaultPayoutMethod is shown to designers who never saved one.
	DefaultPayoutMethod string
	Now                 func() time.Time
}

// newHandlers builds the services over d and binds them to handlers.
func newHandlers(d Deps, payoutCron string, idemTTL time.Duration) *handlers.Handlers {
	backend := d.Backend
	if backend == nil {
		backend = sim.Instant()
	}
	idx := d.Index
	if idx == nil {
		idx = search.Default()
	}

	convs := services.NewConversationService(d.Stores.Conversations)
	convs.Now = d.Now
	cases := services.NewCaseService(d.Stores.Cases, idx)
	cases.Now = d.Now

	return handlers.New(handlers.Deps{
		Royalties: &services.RoyaltyService{
			Records: store.NewCollection(func(r domain.RoyaltyTransaction) string { return r.ID }, d.Records.Royalties...),
			Now:     d.Now,
		},
		Ideas: &services.IdeaService{
			Records: store.NewCollection(func(i domain.ProductIdea) string { return i.ID }, d.Records.Ideas...),
			Now:     d.Now,
		},
		Payouts: &services.PayoutService{
			Records:       store.NewCollection(func(p domain.PayoutTransaction) string { return p.ID }, d.Records.Payouts...),
			KV:            d.Stores.KV,
			Sim:           backend,
			Schedule:      payoutCron,
			DefaultMethod: d.DefaultPayoutMethod,
			Now:           d.Now,
		},
		Conversations:  convs,
		Cases:          cases,
		Profiles:       &services.ProfileService{KV: d.Stores.KV, Sim: backend},
		Idempotency:    d.Stores.Idempotency,
		IdempotencyTTL: idemTTL,
		Now:            d.Now,
	})
}

//
// GORM shims: the repo package exposes free functions taking *gorm.DB; these
// bind a handle so they satisfy the service repository interfaces.
//

type caseRepoShim struct{ db *gorm.DB }

func (s caseRepoShim) ListCases(ctx context.Context) ([]domain.SupportCase, error) {
	return repo.ListCases(ctx, s.db)
}

func (s caseRepoShim) GetCase(ctx context.Context, ref string) (*domain.SupportCase, error) {
	return repo.GetCase(ctx, s.db, ref)
}

func (s caseRepoShim) CountCases(ctx context.Context) (int64, error) {
	return repo.CountCases(ctx, s.db)
}

func (s caseRepoShim) CreateCase(ctx context.Context, c *domain.SupportCase) error {
	return repo.CreateCase(ctx, s.db, c)
}

func (s caseRepoShim) UpdateCase(ctx context.Context, ref string, fn func(*domain.SupportCase) error) (*domain.SupportCase, error) {
	return repo.UpdateCase(ctx, s.db, ref, fn)
}

func (s caseRepoShim) CreateCaseMessage(ctx context.Context, m *domain.CaseMessage) error {
	return repo.CreateCaseMessage(ctx, s.db, m)
}

func (s caseRepoShim) ListCaseMessages(ctx context.Context, caseID string) ([]domain.CaseMessage, error) {
	return repo.ListCaseMessages(ctx, s.db, caseID)
}

func (s caseRepoShim) CreateCaseAttachment(ctx context.Context, a *domain.CaseAttachment) error {
	return repo.CreateCaseAttachment(ctx, s.db, a)
}

func (s caseRepoShim) ListCaseAttachments(ctx context.Context, caseID string) ([]domain.CaseAttachment, error) {
	return repo.ListCaseAttachments(ctx, s.db, caseID)
}

func (s caseRepoShim) CasesStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.CasesStats(ctx, s.db)
}

type conversationRepoShim struct{ db *gorm.DB }

func (s conversationRepoShim) ListConversations(ctx context.Context) ([]domain.Conversation, error) {
	return repo.ListConversations(ctx, s.db)
}

func (s conversationRepoShim) GetConversation(ctx context.Context, id string) (*domain.Conversation, error) {
	return repo.GetConversation(ctx, s.db, id)
}

func (s conversationRepoShim) CreateConversation(ctx context.Context, c *domain.Conversation) error {
	return repo.CreateConversation(ctx, s.db, c)
}

func (s conversationRepoShim) UpdateConversation(ctx context.Context, id string, fn func(*domain.Conversation) error) (*domain.Conversation, error) {
	return repo.UpdateConversation(ctx, s.db, id, fn)
}

func (s conversationRepoShim) CreateMessage(ctx context.Context, m *domain.Message) error {
	return repo.CreateMessage(ctx, s.db, m)
}

func (s conversationRepoShim) ListMessages(ctx context.Context, conversationID string) ([]domain.Message, error) {
	return repo.ListMessages(ctx, s.db, conversationID)
}

func (s conversationRepoShim) GetMessage(ctx context.Context, id string) (*domain.Message, error) {
	return repo.GetMessage(ctx, s.db, id)
}

func (s conversationRepoShim) ConversationsStats(ctx context.Context) (int64, *time.Time, error) {
	return repo.ConversationsStats(ctx, s.db)
}

type kvRepoShim struct{ db *gorm.DB }

func (s kvRepoShim) GetValue(ctx context.Context, key string) (string, error) {
	return repo.GetValue(ctx, s.db, key)
}

func (s kvRepoShim) PutValue(ctx context.Context, key, value string) error {
	return repo.PutValue(ctx, s.db, key, value)
}

type idempotencyRepoShim struct{ db *gorm.DB }

func (s idempotencyRepoShim) GetIdempotency(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error) {
	return repo.GetIdempotency(ctx, s.db, userID, scope, key, now)
}

func (s idempotencyRepoShim) CreateIdempotency(ctx context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error) {
	return repo.CreateIdempotency(ctx, s.db, userID, scope, key, resourceID, status, ttl)
}

// Package handlers – wiring and shared request parsing.
//
// Handlers are transport-thin: they parse the request, call a service, and
// translate the result. Services are consumed through the narrow interfaces
// below so tests can substitute fakes.
package handlers

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/http/middleware"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/search"
	"github.com/tbourn/go-marketplace-backend/internal/services"
	"github.com/tbourn/go-marketplace-backend/internal/utils"
)

//
// Service contracts
//

// RoyaltyService reads the royalty ledger.
type RoyaltyService interface {
	List(ctx context.Context, req query.Request) (query.Page[domain.RoyaltyTransaction], error)
	Get(ctx context.Context, id string) (*domain.RoyaltyTransaction, error)
	Summary(ctx context.Context, windowDays int) (services.Summary, error)
}

// IdeaService reads the product idea catalog.
type IdeaService interface {
	List(ctx context.Context, req query.Request) (query.Page[domain.ProductIdea], error)
}

// PayoutService reads payouts and manages payout methods.
type PayoutService interface {
	ListTransactions(ctx context.Context, req query.Request) (query.Page[domain.PayoutTransaction], error)
	GetMethod(ctx context.Context, userID, role string) (*domain.PayoutMethod, error)
	UpdateDesignerMethod(ctx context.Context, userID string, in services.DesignerMethodInput) (services.Result, error)
	UpdateSellerMethod(ctx context.Context, userID string, in services.SellerMethodInput) (services.Result, error)
	NextPayout(now time.Time) (time.Time, error)
}

// ConversationService runs the messaging inbox.
type ConversationService interface {
	List(ctx context.Context, req query.Request) (query.Page[domain.Conversation], error)
	Get(ctx context.Context, id string) (*domain.Conversation, error)
	Messages(ctx context.Context, id string) ([]domain.Message, error)
	Message(ctx context.Context, conversationID, messageID string) (*domain.Message, error)
	SendMessage(ctx context.Context, conversationID, senderID, content string, attachments []string) (*domain.Message, error)
	MarkRead(ctx context.Context, id string) (*domain.Conversation, error)
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// CaseService runs the support case workflow.
type CaseService interface {
	List(ctx context.Context, req query.Request) (query.Page[domain.SupportCase], error)
	Get(ctx context.Context, ref string) (*domain.SupportCase, error)
	Create(ctx context.Context, createdBy string, in services.NewCase) (*domain.SupportCase, error)
	Transition(ctx context.Context, ref string, next domain.CaseStatus) (*domain.SupportCase, error)
	Assign(ctx context.Context, ref, assignee string) (*domain.SupportCase, error)
	AddMessage(ctx context.Context, ref, author, message string, internal bool) (*domain.CaseMessage, error)
	AddAttachment(ctx context.Context, ref, name, typ string, size int64) (*domain.CaseAttachment, error)
	Messages(ctx context.Context, ref string) ([]domain.CaseMessage, error)
	Attachments(ctx context.Context, ref string) ([]domain.CaseAttachment, error)
	SuggestArticles(ctx context.Context, q string, k int) []search.Result
	Stats(ctx context.Context) (int64, *time.Time, error)
}

// ProfileService loads and saves maker profiles.
type ProfileService interface {
	Load(ctx context.Context, userID string) (domain.ProfileData, error)
	Save(ctx context.Context, userID string, p domain.ProfileData) (services.Notice, error)
}

// IdempotencyStore persists create outcomes for replay.
type IdempotencyStore interface {
	GetIdempotency(ctx context.Context, userID, scope, key string, now time.Time) (*domain.Idempotency, error)
	CreateIdempotency(ctx context.Context, userID, scope, key, resourceID string, status int, ttl time.Duration) (*domain.Idempotency, error)
}

//
// Handler wiring
//

// Deps lists what Handlers needs. Idempotency may be nil to disable replays.
type Deps struct {
	Royalties     RoyaltyService
	Ideas         IdeaService
	Payouts       PayoutService
	Conversations ConversationService
	Cases         CaseService
	Profiles      ProfileService

	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration
	Now            func() time.Time
}

// Handlers groups every dashboard endpoint.
type Handlers struct {
	royalties RoyaltyService
	ideas     IdeaService
	payouts   PayoutService
	convs     ConversationService
	cases     CaseService
	profiles  ProfileService

	idem    IdempotencyStore
	idemTTL time.Duration
	now     func() time.Time
}

// New binds the handlers to their services.
func New(d Deps) *Handlers {
	now := d.Now
	if now == nil {
		now = time.Now
	}
	ttl := d.IdempotencyTTL
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Handlers{
		royalties: d.Royalties,
		ideas:     d.Ideas,
		payouts:   d.Payouts,
		convs:     d.Conversations,
		cases:     d.Cases,
		profiles:  d.Profiles,
		idem:      d.Idempotency,
		idemTTL:   ttl,
		now:       func() time.Time { return now().UTC() },
	}
}

func userID(c *gin.Context) string { return middleware.UserID(c) }

//
// List parsing
//

// listParams names the query parameters an endpoint forwards to the query
// engine. Anything else in the query string is ignored.
type listParams struct {
	equals  []string
	toggles []string
}

// listRequest reads q, days, sort, order, page, page_size plus the
// endpoint's equality filters and toggles. sort accepts "-field" and
// "field:desc"; an explicit order overrides that direction.
func listRequest(c *gin.Context, p listParams) query.Request {
	f := query.FilterSpec{
		Search:     c.Query("q"),
		WithinDays: utils.AtoiDefault(c.Query("days"), 0),
	}
	for _, name := range p.equals {
		if v, ok := c.GetQuery(name); ok {
			if f.Equals == nil {
				f.Equals = make(map[string]string, len(p.equals))
			}
			f.Equals[name] = v
		}
	}
	for _, name := range p.toggles {
		if v, ok := c.GetQuery(name); ok && utils.ParseBool(v) {
			if f.Toggles == nil {
				f.Toggles = make(map[string]bool, len(p.toggles))
			}
			f.Toggles[name] = true
		}
	}
	spec := query.ParseSort(c.Query("sort"))
	if order := strings.TrimSpace(c.Query("order")); order != "" {
		spec.Desc = strings.EqualFold(order, "desc")
	}
	page, size := utils.PageParams(c.Query("page"), c.Query("page_size"), query.DefaultPageSize, query.MaxPageSize)
	return query.Request{
		Filter:   f,
		Sort:     spec,
		Page:     page,
		PageSize: size,
	}
}

// notModified sets a weak ETag derived from (count, newest update, query
// string) and answers 304 when the client already holds it. Stats errors skip
// caching.
func notModified(c *gin.Context, kind string, stats func(context.Context) (int64, *time.Time, error)) bool {
	count, maxTS, err := stats(c.Request.Context())
	if err != nil {
		return false
	}
	var ts int64
	if maxTS != nil {
		ts = maxTS.UnixNano()
	}
	q := fnv.New32a()
	_, _ = q.Write([]byte(c.Request.URL.RawQuery))
	etag := fmt.Sprintf(`W/"%s:%d:%d:%x"`, kind, count, ts, q.Sum32())
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

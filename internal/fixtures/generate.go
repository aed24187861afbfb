package fixtures

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
)

// Options controls the synthesized part of the seed data.
type Options struct {
	Seed         uint64
	Count        int
	LookbackDays int
	Now          time.Time
}

const (
	DefaultSeed         = 42
	DefaultCount        = 60
	DefaultLookbackDays = 90
)

func (o Options) withDefaults() Options {
	if o.Count <= 0 {
		o.Count = DefaultCount
	}
	if o.LookbackDays <= 0 {
		o.LookbackDays = DefaultLookbackDays
	}
	if o.Now.IsZero() {
		o.Now = time.Now()
	}
	o.Now = o.Now.UTC()
	return o
}

// Set is the full seed data for one run.
type Set struct {
	Royalties     []domain.RoyaltyTransaction
	Payouts       []domain.PayoutTransaction
	Ideas         []domain.ProductIdea
	Conversations []domain.Conversation
	Messages      map[string][]domain.Message
	// Cases are oldest first; Seq and CaseID follow that order.
	Cases        []domain.SupportCase
	CaseMessages map[string][]domain.CaseMessage
}

// Amount is qty*rate rounded half away from zero to cents.
func Amount(qty int, rate float64) float64 {
	return decimal.NewFromInt(int64(qty)).Mul(decimal.NewFromFloat(rate)).Round(2).InexactFloat64()
}

func cents(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Generate builds the seed set for cat. The same Seed and Now always yield
// the same records.
func Generate(cat *Catalog, opts Options) Set {
	opts = opts.withDefaults()
	r := rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15))

	royalties := Royalties(r, cat, opts.Count, opts.LookbackDays, opts.Now)
	set := Set{
		Royalties:    royalties,
		Payouts:      Payouts(royalties, cat.PayoutMethod, opts.LookbackDays, opts.Now),
		Ideas:        append([]domain.ProductIdea(nil), cat.Ideas...),
		Messages:     map[string][]domain.Message{},
		CaseMessages: map[string][]domain.CaseMessage{},
	}
	set.Conversations, set.Messages = conversations(cat.Conversations, opts.Now)
	set.Cases, set.CaseMessages = cases(cat.Cases, opts.Now)
	return set
}

// Royalties synthesizes n transactions dated within the last lookbackDays,
// newest first, with ids RT-0001.. in that order.
func Royalties(r *rand.Rand, cat *Catalog, n, lookbackDays int, now time.Time) []domain.RoyaltyTransaction {
	window := time.Duration(lookbackDays) * 24 * time.Hour
	out := make([]domain.RoyaltyTransaction, 0, n)
	for i := 0; i < n; i++ {
		d := cat.Designs[r.IntN(len(cat.Designs))]
		// Rates drift +/-10% around the design's base and are kept to cents.
		rate := cents(d.Rate * (0.9 + 0.2*r.Float64()))
		if rate <= 0 {
			rate = d.Rate
		}
		qty := 1 + r.IntN(25)
		age := time.Duration(r.Int64N(int64(window)))
		date := now.Add(-age).Truncate(time.Minute)

		out = append(out, domain.RoyaltyTransaction{
			Date:     date,
			Design:   d.Name,
			DesignID: d.ID,
			Source:   cat.Sources[r.IntN(len(cat.Sources))],
			Qty:      qty,
			Rate:     rate,
			Amount:   Amount(qty, rate),
			Status:   royaltyStatus(now.Sub(date)),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	for i := range out {
		out[i].ID = fmt.Sprintf("RT-%04d", i+1)
	}
	return out
}

// royaltyStatus settles earnings by age: two weeks pending, then available
// until the next monthly payout sweeps them.
func royaltyStatus(age time.Duration) domain.RoyaltyStatus {
	switch {
	case age < 14*24*time.Hour:
		return domain.RoyaltyPending
	case age < 45*24*time.Hour:
		return domain.RoyaltyAvailable
	default:
		return domain.RoyaltyPaid
	}
}

// Payouts derives one payout per month start inside the window, paying out
// the Paid royalties dated in the preceding month. Newest first.
func Payouts(royalties []domain.RoyaltyTransaction, method string, lookbackDays int, now time.Time) []domain.PayoutTransaction {
	from := now.AddDate(0, 0, -lookbackDays)
	var out []domain.PayoutTransaction
	for m := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0); !m.After(now); m = m.AddDate(0, 1, 0) {
		prev := m.AddDate(0, -1, 0)
		total := decimal.Zero
		for _, rt := range royalties {
			if rt.Status == domain.RoyaltyPaid && !rt.Date.Before(prev) && rt.Date.Before(m) {
				total = total.Add(decimal.NewFromFloat(rt.Amount))
			}
		}
		if total.IsZero() {
			continue
		}
		status := domain.PayoutCompleted
		if now.Sub(m) < 3*24*time.Hour {
			status = domain.PayoutProcessing
		}
		out = append(out, domain.PayoutTransaction{
			Date:      m,
			Amount:    total.Round(2).InexactFloat64(),
			Method:    method,
			Reference: fmt.Sprintf("PO-%s", m.Format("200601")),
			Status:    status,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	for i := range out {
		out[i].ID = fmt.Sprintf("PT-%04d", i+1)
	}
	return out
}

func conversations(seeds []ConversationSeed, now time.Time) ([]domain.Conversation, map[string][]domain.Message) {
	convs := make([]domain.Conversation, 0, len(seeds))
	msgs := make(map[string][]domain.Message, len(seeds))
	for _, s := range seeds {
		c := domain.Conversation{
			ID:            s.ID,
			Type:          domain.ConversationType(s.Type),
			Priority:      domain.Priority(s.Priority),
			Subject:       s.Subject,
			Participants:  append([]domain.Participant{}, s.Participants...),
			UnreadCount:   s.Unread,
			RequestID:     s.RequestID,
			RequestStatus: s.RequestStatus,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		thread := make([]domain.Message, 0, len(s.Messages))
		for i, m := range s.Messages {
			ts := now.Add(-time.Duration(m.HoursAgo) * time.Hour).Truncate(time.Second)
			thread = append(thread, domain.Message{
				ID:             fmt.Sprintf("%s-m%d", s.ID, i+1),
				ConversationID: s.ID,
				SenderID:       m.Sender,
				Content:        m.Content,
				Attachments:    m.Attachments,
				Timestamp:      ts,
			})
		}
		if n := len(thread); n > 0 {
			last := thread[n-1]
			c.LastMessage = domain.LastMessage{SenderID: last.SenderID, Content: last.Content, Timestamp: last.Timestamp}
			c.CreatedAt = thread[0].Timestamp
			c.UpdatedAt = last.Timestamp
		}
		convs = append(convs, c)
		msgs[s.ID] = thread
	}
	return convs, msgs
}

func cases(seeds []CaseSeed, now time.Time) ([]domain.SupportCase, map[string][]domain.CaseMessage) {
	out := make([]domain.SupportCase, 0, len(seeds))
	threads := make(map[string][]domain.CaseMessage, len(seeds))
	for i, s := range seeds {
		seq := int64(i + 1)
		created := now.AddDate(0, 0, -s.DaysAgo).Truncate(time.Second)
		updated := created
		status := domain.CaseStatus(s.Status)
		if status != domain.CaseOpen {
			updated = created.Add(6 * time.Hour)
		}
		c := domain.SupportCase{
			ID:          fmt.Sprintf("case-%05d", seq),
			CaseID:      domain.CaseNumber(seq),
			Seq:         seq,
			Title:       s.Title,
			Description: s.Description,
			Type:        domain.CaseType(s.Type),
			Status:      status,
			Priority:    domain.Priority(s.Priority),
			LinkedTo:    s.LinkedTo,
			AssignedTo:  s.AssignedTo,
			CreatedBy:   s.CreatedBy,
			CreatedAt:   created,
			UpdatedAt:   updated,
		}
		thread := make([]domain.CaseMessage, 0, len(s.Messages))
		for j, m := range s.Messages {
			thread = append(thread, domain.CaseMessage{
				ID:        fmt.Sprintf("%s-m%d", c.ID, j+1),
				CaseID:    c.ID,
				Author:    m.Author,
				Message:   m.Message,
				Internal:  m.Internal,
				CreatedAt: created.Add(time.Duration(j+1) * time.Hour),
			})
		}
		out = append(out, c)
		threads[c.ID] = thread
	}
	return out, threads
}

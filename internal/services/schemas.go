package services

import (
	"strings"
	"time"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
)

// Query schemas, one per listable entity. Field names double as the query
// parameter names accepted by the list endpoints.

// dateSorts declares the newest/oldest/amount sorts shared by transaction lists.
func dateSorts[T any](s *query.Schema[T], date func(T) time.Time, amount func(T) float64) *query.Schema[T] {
	return s.
		Derive("newest", true, func(r T) (query.Value, error) { return query.Time(date(r)), nil }).
		Derive("oldest", false, func(r T) (query.Value, error) { return query.Time(date(r)), nil }).
		Derive("amount_desc", true, func(r T) (query.Value, error) { return query.Number(amount(r)), nil }).
		Derive("amount_asc", false, func(r T) (query.Value, error) { return query.Number(amount(r)), nil }).
		DefaultSort(query.SortSpec{Key: "newest"})
}

func priorityKey(p domain.Priority) (query.Value, error) {
	r, err := p.Rank()
	if err != nil {
		return query.Absent, err
	}
	return query.Int(r), nil
}

// RoyaltySchema filters royalty transactions by status, source and date window.
var RoyaltySchema = dateSorts(
	query.NewSchema[domain.RoyaltyTransaction]("royalties").
		Field("id", func(r domain.RoyaltyTransaction) query.Value { return query.String(r.ID) }).
		Field("design", func(r domain.RoyaltyTransaction) query.Value { return query.String(r.Design) }).
		Field("design_id", func(r domain.RoyaltyTransaction) query.Value { return query.String(r.DesignID) }).
		Field("source", func(r domain.RoyaltyTransaction) query.Value { return query.String(r.Source) }).
		Field("status", func(r domain.RoyaltyTransaction) query.Value { return query.String(string(r.Status)) }).
		Field("date", func(r domain.RoyaltyTransaction) query.Value { return query.Time(r.Date) }).
		Field("qty", func(r domain.RoyaltyTransaction) query.Value { return query.Int(r.Qty) }).
		Field("amount", func(r domain.RoyaltyTransaction) query.Value { return query.Number(r.Amount) }).
		Search("design", "design_id", "id", "source").
		Date("date"),
	func(r domain.RoyaltyTransaction) time.Time { return r.Date },
	func(r domain.RoyaltyTransaction) float64 { return r.Amount },
)

// PayoutSchema filters payout transactions by status and date window.
var PayoutSchema = dateSorts(
	query.NewSchema[domain.PayoutTransaction]("payouts").
		Field("id", func(p domain.PayoutTransaction) query.Value { return query.String(p.ID) }).
		Field("reference", func(p domain.PayoutTransaction) query.Value { return query.String(p.Reference) }).
		Field("method", func(p domain.PayoutTransaction) query.Value { return query.String(p.Method) }).
		Field("status", func(p domain.PayoutTransaction) query.Value { return query.String(string(p.Status)) }).
		Field("date", func(p domain.PayoutTransaction) query.Value { return query.Time(p.Date) }).
		Field("amount", func(p domain.PayoutTransaction) query.Value { return query.Number(p.Amount) }).
		Search("id", "reference", "method").
		Date("date"),
	func(p domain.PayoutTransaction) time.Time { return p.Date },
	func(p domain.PayoutTransaction) float64 { return p.Amount },
)

// IdeaSchema orders product ideas by demand, competition, time to market or
// margin. Margin and time to market are parsed out of their display strings.
var IdeaSchema = query.NewSchema[domain.ProductIdea]("ideas").
	Field("title", func(i domain.ProductIdea) query.Value { return query.String(i.Title) }).
	Field("category", func(i domain.ProductIdea) query.Value { return query.String(i.Category) }).
	Field("description", func(i domain.ProductIdea) query.Value { return query.String(i.Description) }).
	Field("competition", func(i domain.ProductIdea) query.Value { return query.String(string(i.Competition)) }).
	Field("tags", func(i domain.ProductIdea) query.Value { return query.String(strings.Join(i.Tags, " ")) }).
	Search("title", "category", "description", "tags").
	Derive("demand", true, func(i domain.ProductIdea) (query.Value, error) {
		return query.Int(i.DemandScore), nil
	}).
	Derive("competition", false, func(i domain.ProductIdea) (query.Value, error) {
		r, err := query.Competition.Rank(string(i.Competition))
		if err != nil {
			return query.Absent, err
		}
		return query.Int(r), nil
	}).
	Derive("time_to_market", false, func(i domain.ProductIdea) (query.Value, error) {
		return query.Int(query.DurationDays(i.TimeToMarket)), nil
	}).
	Derive("margin", true, func(i domain.ProductIdea) (query.Value, error) {
		return query.Int(query.LeadingInt(i.Margin)), nil
	}).
	DefaultSort(query.SortSpec{Key: "demand"})

// ConversationSchema backs the inbox list and its "unread only" toggle.
var ConversationSchema = query.NewSchema[domain.Conversation]("conversations").
	Field("type", func(c domain.Conversation) query.Value { return query.String(string(c.Type)) }).
	Field("priority", func(c domain.Conversation) query.Value { return query.String(string(c.Priority)) }).
	Field("request_status", func(c domain.Conversation) query.Value { return query.String(c.RequestStatus) }).
	Field("request_id", func(c domain.Conversation) query.Value { return query.String(c.RequestID) }).
	Field("subject", func(c domain.Conversation) query.Value { return query.String(c.Subject) }).
	Field("last_message", func(c domain.Conversation) query.Value { return query.String(c.LastMessage.Content) }).
	Field("participants", func(c domain.Conversation) query.Value {
		names := make([]string, 0, len(c.Participants))
		for _, p := range c.Participants {
			names = append(names, p.Name)
		}
		return query.String(strings.Join(names, ", "))
	}).
	Field("updated_at", func(c domain.Conversation) query.Value { return query.Time(c.UpdatedAt) }).
	Search("participants", "last_message", "request_id", "subject").
	Date("updated_at").
	Toggle("unread", func(c domain.Conversation) bool { return c.UnreadCount > 0 }).
	Derive("recent", true, func(c domain.Conversation) (query.Value, error) {
		return query.Time(c.LastMessage.Timestamp), nil
	}).
	Derive("priority", true, func(c domain.Conversation) (query.Value, error) {
		return priorityKey(c.Priority)
	}).
	DefaultSort(query.SortSpec{Key: "recent"})

// CaseSchema backs the support case list. The default priority sort is
// stable, so among equal priorities the newest case stays first.
var CaseSchema = query.NewSchema[domain.SupportCase]("cases").
	Field("case_id", func(c domain.SupportCase) query.Value { return query.String(c.CaseID) }).
	Field("title", func(c domain.SupportCase) query.Value { return query.String(c.Title) }).
	Field("description", func(c domain.SupportCase) query.Value { return query.String(c.Description) }).
	Field("linked_to", func(c domain.SupportCase) query.Value { return query.String(c.LinkedTo) }).
	Field("status", func(c domain.SupportCase) query.Value { return query.String(string(c.Status)) }).
	Field("type", func(c domain.SupportCase) query.Value { return query.String(string(c.Type)) }).
	Field("priority", func(c domain.SupportCase) query.Value { return query.String(string(c.Priority)) }).
	Field("assigned_to", func(c domain.SupportCase) query.Value { return query.String(c.AssignedTo) }).
	Field("created_at", func(c domain.SupportCase) query.Value { return query.Time(c.CreatedAt) }).
	Field("updated_at", func(c domain.SupportCase) query.Value { return query.Time(c.UpdatedAt) }).
	Search("title", "case_id", "description", "linked_to").
	Date("created_at").
	Derive("priority", true, func(c domain.SupportCase) (query.Value, error) {
		return priorityKey(c.Priority)
	}).
	Derive("newest", true, func(c domain.SupportCase) (query.Value, error) {
		return query.Time(c.CreatedAt), nil
	}).
	Derive("recent", true, func(c domain.SupportCase) (query.Value, error) {
		return query.Time(c.UpdatedAt), nil
	}).
	DefaultSort(query.SortSpec{Key: "priority"})

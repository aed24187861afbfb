package handlers

import "github.com/tbourn/go-marketplace-backend/internal/domain"

// The list endpoints return query.Page[T]. Swag cannot name an instantiated
// generic reliably, so the documented shapes are spelled out here.

// PageMeta is the pagination block of every list response.
type PageMeta struct {
	Page       int  `json:"page"`
	PageSize   int  `json:"page_size"`
	Total      int  `json:"total"`
	TotalPages int  `json:"total_pages"`
	HasNext    bool `json:"has_next"`
}

// RoyaltyPage documents GET /royalties.
type RoyaltyPage struct {
	Items []domain.RoyaltyTransaction `json:"items"`
	PageMeta
}

// PayoutPage documents GET /payouts.
type PayoutPage struct {
	Items []domain.PayoutTransaction `json:"items"`
	PageMeta
}

// IdeaPage documents GET /ideas.
type IdeaPage struct {
	Items []domain.ProductIdea `json:"items"`
	PageMeta
}

// ConversationPage documents GET /conversations.
type ConversationPage struct {
	Items []domain.Conversation `json:"items"`
	PageMeta
}

// CasePage documents GET /cases.
type CasePage struct {
	Items []domain.SupportCase `json:"items"`
	PageMeta
}

// Package domain defines the records served by the marketplace dashboard:
// support cases and their threads, conversations and messages, royalty and
// payout transactions, product ideas, payout methods and maker profiles.
//
// Enumerations are closed string types. Every enum exposes Valid(), and the
// ones used for ordering expose a total Rank() so no lookup can fall through
// to an undefined value.
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidEnum is returned when a string does not name a known enum value.
var ErrInvalidEnum = errors.New("invalid enum value")

// CaseStatus is the lifecycle state of a support case.
type CaseStatus string

const (
	CaseOpen            CaseStatus = "Open"
	CaseInProgress      CaseStatus = "In Progress"
	CaseWaitingOnSeller CaseStatus = "Waiting on Seller"
	CaseWaitingOnMaker  CaseStatus = "Waiting on Maker"
	CaseResolved        CaseStatus = "Resolved"
	CaseClosed          CaseStatus = "Closed"
)

// CaseStatuses lists every status in workflow order.
var CaseStatuses = []CaseStatus{
	CaseOpen, CaseInProgress, CaseWaitingOnSeller, CaseWaitingOnMaker, CaseResolved, CaseClosed,
}

// caseTransitions is the allowed edge set of the support case workflow.
// Resolved and Closed cases may be reopened.
var caseTransitions = map[CaseStatus][]CaseStatus{
	CaseOpen:            {CaseInProgress, CaseClosed},
	CaseInProgress:      {CaseWaitingOnSeller, CaseWaitingOnMaker, CaseResolved, CaseClosed},
	CaseWaitingOnSeller: {CaseInProgress, CaseResolved, CaseClosed},
	CaseWaitingOnMaker:  {CaseInProgress, CaseResolved, CaseClosed},
	CaseResolved:        {CaseOpen, CaseClosed},
	CaseClosed:          {CaseOpen},
}

// Valid reports whether s is a known status.
func (s CaseStatus) Valid() bool {
	_, ok := caseTransitions[s]
	return ok
}

// CanTransitionTo reports whether the workflow allows moving from s to next.
func (s CaseStatus) CanTransitionTo(next CaseStatus) bool {
	for _, n := range caseTransitions[s] {
		if n == next {
			return true
		}
	}
	return false
}

// ParseCaseStatus maps a case-insensitive name to a CaseStatus.
func ParseCaseStatus(v string) (CaseStatus, error) {
	for _, s := range CaseStatuses {
		if strings.EqualFold(strings.TrimSpace(v), string(s)) {
			return s, nil
		}
	}
	return "", fmt.Errorf("%w: case status %q", ErrInvalidEnum, v)
}

// Priority is shared by support cases and conversations.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
	PriorityUrgent Priority = "Urgent"
)

var priorityRank = map[Priority]int{
	PriorityLow:    1,
	PriorityMedium: 2,
	PriorityHigh:   3,
	PriorityUrgent: 4,
}

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	_, ok := priorityRank[p]
	return ok
}

// Rank returns the ordinal of p (Low=1 … Urgent=4), or an error for unknown values.
func (p Priority) Rank() (int, error) {
	if r, ok := priorityRank[p]; ok {
		return r, nil
	}
	return 0, fmt.Errorf("%w: priority %q", ErrInvalidEnum, string(p))
}

// ParsePriority maps a case-insensitive name to a Priority.
func ParsePriority(v string) (Priority, error) {
	for p := range priorityRank {
		if strings.EqualFold(strings.TrimSpace(v), string(p)) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: priority %q", ErrInvalidEnum, v)
}

// CaseType classifies a support case.
type CaseType string

const (
	CaseTypeOrder    CaseType = "Order Issue"
	CaseTypeQuality  CaseType = "Quality"
	CaseTypeShipping CaseType = "Shipping"
	CaseTypePayment  CaseType = "Payment"
	CaseTypeAccount  CaseType = "Account"
	CaseTypeOther    CaseType = "Other"
)

// CaseTypes lists every case type.
var CaseTypes = []CaseType{
	CaseTypeOrder, CaseTypeQuality, CaseTypeShipping, CaseTypePayment, CaseTypeAccount, CaseTypeOther,
}

// Valid reports whether t is a known case type.
func (t CaseType) Valid() bool {
	for _, k := range CaseTypes {
		if k == t {
			return true
		}
	}
	return false
}

// ConversationType classifies an inbox conversation.
type ConversationType string

const (
	ConversationRequest ConversationType = "Request"
	ConversationSupport ConversationType = "Support"
	ConversationSystem  ConversationType = "System"
)

// Valid reports whether t is a known conversation type.
func (t ConversationType) Valid() bool {
	switch t {
	case ConversationRequest, ConversationSupport, ConversationSystem:
		return true
	}
	return false
}

// RoyaltyStatus is the settlement state of a royalty transaction.
type RoyaltyStatus string

const (
	RoyaltyPending   RoyaltyStatus = "Pending"
	RoyaltyAvailable RoyaltyStatus = "Available"
	RoyaltyPaid      RoyaltyStatus = "Paid"
)

// PayoutStatus is the state of a payout transfer.
type PayoutStatus string

const (
	PayoutPending    PayoutStatus = "Pending"
	PayoutProcessing PayoutStatus = "Processing"
	PayoutCompleted  PayoutStatus = "Completed"
	PayoutFailed     PayoutStatus = "Failed"
)

// Competition is the market saturation level of a product idea.
type Competition string

const (
	CompetitionLow    Competition = "Low"
	CompetitionMedium Competition = "Medium"
	CompetitionHigh   Competition = "High"
)

// Valid reports whether c is a known competition level.
func (c Competition) Valid() bool {
	switch c {
	case CompetitionLow, CompetitionMedium, CompetitionHigh:
		return true
	}
	return false
}

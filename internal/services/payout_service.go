// Package services – PayoutService
//
// PayoutService lists payout transactions, reports the next scheduled payout
// and stores the payout method of designers and sellers. Method updates go
// through the simulated backend and are persisted as JSON in the key-value
// store. Missing required fields are reported in the returned Result, not as
// an error, and leave the stored method untouched.
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/adhocore/gronx"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/query"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
)

const (
	RoleDesigner = "designer"
	RoleSeller   = "seller"

	// DefaultPayoutCron pays out on the first day of each month at 09:00.
	DefaultPayoutCron = "0 9 1 * *"

	msgDesignerRequired = "Account holder and details are required"
	msgSellerRequired   = "Payout type and account number are required"
)

// ErrInvalidSchedule is returned by NextPayout for a malformed cron expression.
var ErrInvalidSchedule = errors.New("invalid payout schedule")

// Result is the outcome of a payout method update.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Masked  string `json:"masked,omitempty"`
}

// DesignerMethodInput is the designer payout form.
type DesignerMethodInput struct {
	Type           string `json:"type"`
	AccountHolder  string `json:"accountHolder"`
	AccountDetails string `json:"accountDetails"`
}

// SellerMethodInput is the seller payout form.
type SellerMethodInput struct {
	PayoutType    string `json:"payoutType"`
	AccountNumber string `json:"accountNumber"`
	Line1         string `json:"line1"`
	Line2         string `json:"line2"`
	City          string `json:"city"`
	State         string `json:"state"`
	PostalCode    string `json:"postalCode"`
	Country       string `json:"country"`
}

// PayoutService manages payout transactions and methods.
type PayoutService struct {
	Records RecordSet[domain.PayoutTransaction]
	KV      KVRepo
	Sim     *sim.Simulator

	// Schedule is a five-field cron expression.
	Schedule string
	// DefaultMethod is reported to designers who never set a method.
	DefaultMethod string
	Now           func() time.Time
}

// ListTransactions runs a payout transaction query.
func (s *PayoutService) ListTransactions(ctx context.Context, req query.Request) (query.Page[domain.PayoutTransaction], error) {
	return runQuery(ctx, PayoutSchema, s.Records.List(), req, nowOr(s.Now))
}

// NextPayout returns the first scheduled payout strictly after now.
func (s *PayoutService) NextPayout(now time.Time) (time.Time, error) {
	expr := s.Schedule
	if expr == "" {
		expr = DefaultPayoutCron
	}
	if !gronx.IsValid(expr) {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidSchedule, expr)
	}
	return gronx.NextTickAfter(expr, now, false)
}

func methodKey(role, userID string) string {
	return "payout_method:" + role + ":" + userID
}

// GetMethod returns the stored method for role, or the default bank
// transfer for designers. A seller without a method gets ErrNotFound.
func (s *PayoutService) GetMethod(ctx context.Context, userID, role string) (*domain.PayoutMethod, error) {
	ctx, span := otel.Tracer("services/PayoutService").Start(ctx, "GetMethod",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("payout.role", role)))
	defer span.End()

	raw, err := s.KV.GetValue(ctx, methodKey(role, userID))
	if errors.Is(err, repo.ErrNotFound) {
		if role == RoleDesigner && s.DefaultMethod != "" {
			typ, _, _ := strings.Cut(s.DefaultMethod, " ****")
			return &domain.PayoutMethod{Role: role, Type: typ, Masked: s.DefaultMethod}, nil
		}
		return nil, repo.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var m domain.PayoutMethod
	if err := json.Unmarshal([]byte(raw), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// UpdateDesignerMethod validates and stores a designer payout method.
func (s *PayoutService) UpdateDesignerMethod(ctx context.Context, userID string, in DesignerMethodInput) (Result, error) {
	holder := strings.TrimSpace(in.AccountHolder)
	details := strings.TrimSpace(in.AccountDetails)
	if holder == "" || details == "" {
		return Result{Success: false, Message: msgDesignerRequired}, nil
	}
	typ := strings.TrimSpace(in.Type)
	if typ == "" {
		typ = "Bank Transfer"
	}
	m := domain.PayoutMethod{
		Role:          RoleDesigner,
		Type:          typ,
		AccountHolder: holder,
		Masked:        Mask(typ, details),
	}
	return s.save(ctx, userID, m)
}

// UpdateSellerMethod validates and stores a seller payout method.
func (s *PayoutService) UpdateSellerMethod(ctx context.Context, userID string, in SellerMethodInput) (Result, error) {
	typ := strings.TrimSpace(in.PayoutType)
	number := strings.TrimSpace(in.AccountNumber)
	if typ == "" || number == "" {
		return Result{Success: false, Message: msgSellerRequired}, nil
	}
	m := domain.PayoutMethod{
		Role:   RoleSeller,
		Type:   typ,
		Masked: Mask(typ, number),
	}
	if in.Line1 != "" || in.City != "" || in.PostalCode != "" || in.Country != "" {
		m.Address = &domain.Address{
			Line1:      strings.TrimSpace(in.Line1),
			Line2:      strings.TrimSpace(in.Line2),
			City:       strings.TrimSpace(in.City),
			State:      strings.TrimSpace(in.State),
			PostalCode: strings.TrimSpace(in.PostalCode),
			Country:    strings.TrimSpace(in.Country),
		}
	}
	return s.save(ctx, userID, m)
}

func (s *PayoutService) save(ctx context.Context, userID string, m domain.PayoutMethod) (Result, error) {
	ctx, span := otel.Tracer("services/PayoutService").Start(ctx, "UpdateMethod",
		trace.WithAttributes(attribute.String("user.id", userID), attribute.String("payout.role", m.Role)))
	defer span.End()

	m.UpdatedAt = nowOr(s.Now)
	body, err := json.Marshal(m)
	if err != nil {
		return Result{}, err
	}
	err = s.Sim.Do(ctx, func(ctx context.Context) error {
		return s.KV.PutValue(ctx, methodKey(m.Role, userID), string(body))
	})
	observeSim("payout_method", err)
	if err != nil {
		span.RecordError(err)
		log.Ctx(ctx).Warn().Err(err).Str("role", m.Role).Msg("payout method update failed")
		return Result{}, err
	}
	return Result{Success: true, Masked: m.Masked}, nil
}

// Mask renders an account as "<type> ****<last4>". The last four digits are
// used when there are at least four; otherwise the last four characters.
func Mask(typ, account string) string {
	var digits []rune
	for _, r := range account {
		if unicode.IsDigit(r) {
			digits = append(digits, r)
		}
	}
	tail := digits
	if len(digits) < 4 {
		tail = []rune(strings.TrimSpace(account))
	}
	if len(tail) > 4 {
		tail = tail[len(tail)-4:]
	}
	return typ + " ****" + string(tail)
}

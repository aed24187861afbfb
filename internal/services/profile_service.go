// Package services – ProfileService
//
// ProfileService keeps one maker profile per user as JSON text in the
// key-value store, behind the simulated backend. Saves are validated against
// the embedded profile schema first; a user who never saved gets the default
// profile.
package services

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/xeipuuv/gojsonschema"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/go-marketplace-backend/internal/domain"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
	"github.com/tbourn/go-marketplace-backend/internal/sim"
)

//go:embed profile.schema.json
var profileSchemaJSON []byte

var profileSchema = mustSchema(profileSchemaJSON)

func mustSchema(b []byte) *gojsonschema.Schema {
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(b))
	if err != nil {
		panic(fmt.Sprintf("profile schema: %v", err))
	}
	return s
}

// NoticeDismissAfter is how long a save notification stays on screen.
const NoticeDismissAfter = 3 * time.Second

// Notice is the transient banner shown after a save attempt.
type Notice struct {
	Level          string `json:"level"`
	Message        string `json:"message"`
	DismissAfterMS int64  `json:"dismiss_after_ms"`
}

func notice(level, msg string) Notice {
	return Notice{Level: level, Message: msg, DismissAfterMS: NoticeDismissAfter.Milliseconds()}
}

// ProfileService loads and saves maker profiles.
type ProfileService struct {
	KV  KVRepo
	Sim *sim.Simulator
}

func profileKey(userID string) string { return "profile:" + userID }

// Load returns the stored profile or the default one.
func (s *ProfileService) Load(ctx context.Context, userID string) (domain.ProfileData, error) {
	ctx, span := otel.Tracer("services/ProfileService").Start(ctx, "Load",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	p, err := sim.Call(ctx, s.Sim, func(ctx context.Context) (domain.ProfileData, error) {
		raw, err := s.KV.GetValue(ctx, profileKey(userID))
		if errors.Is(err, repo.ErrNotFound) {
			return domain.DefaultProfile(), nil
		}
		if err != nil {
			return domain.ProfileData{}, err
		}
		var p domain.ProfileData
		if err := json.Unmarshal([]byte(raw), &p); err != nil {
			return domain.ProfileData{}, err
		}
		return p, nil
	})
	observeSim("profile_load", err)
	if err != nil {
		span.RecordError(err)
		return domain.ProfileData{}, err
	}
	return p, nil
}

// Save validates p and stores it. The returned Notice describes the outcome
// for display; a validation or simulated failure also returns an error.
func (s *ProfileService) Save(ctx context.Context, userID string, p domain.ProfileData) (Notice, error) {
	ctx, span := otel.Tracer("services/ProfileService").Start(ctx, "Save",
		trace.WithAttributes(attribute.String("user.id", userID)))
	defer span.End()

	body, err := json.Marshal(p)
	if err != nil {
		return notice("error", "Profile could not be saved"), err
	}
	if err := ValidateProfile(body); err != nil {
		return notice("error", "Profile has invalid fields"), err
	}

	err = s.Sim.Do(ctx, func(ctx context.Context) error {
		return s.KV.PutValue(ctx, profileKey(userID), string(body))
	})
	observeSim("profile_save", err)
	if err != nil {
		span.RecordError(err)
		log.Ctx(ctx).Warn().Err(err).Msg("profile save failed")
		return notice("error", "Profile could not be saved. Please try again."), err
	}
	return notice("success", "Profile saved"), nil
}

// ValidateProfile checks a serialized profile against the profile schema.
func ValidateProfile(doc []byte) error {
	res, err := profileSchema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidProfile, strings.Join(msgs, "; "))
}

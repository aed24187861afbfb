package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-marketplace-backend/internal/fixtures"
	"github.com/tbourn/go-marketplace-backend/internal/repo"
)

// Seed loads the mutable fixture records (cases, conversations and their
// threads) into empty repositories. Repositories that already hold data are
// left alone so a persistent database keeps its state across restarts.
// Cases are created oldest first so the newest seeded case leads the list.
func Seed(ctx context.Context, cases CaseRepo, convs ConversationRepo, set fixtures.Set) error {
	n, err := cases.CountCases(ctx)
	if err != nil {
		return fmt.Errorf("seed cases: %w", err)
	}
	if n == 0 {
		for i := range set.Cases {
			c := set.Cases[i]
			if err := cases.CreateCase(ctx, &c); err != nil && !errors.Is(err, repo.ErrDuplicate) {
				return fmt.Errorf("seed case %s: %w", c.CaseID, err)
			}
			for j := range set.CaseMessages[c.ID] {
				m := set.CaseMessages[c.ID][j]
				if err := cases.CreateCaseMessage(ctx, &m); err != nil {
					return fmt.Errorf("seed case message %s: %w", m.ID, err)
				}
			}
		}
		log.Ctx(ctx).Info().Int("cases", len(set.Cases)).Msg("seeded support cases")
	}

	cn, _, err := convs.ConversationsStats(ctx)
	if err != nil {
		return fmt.Errorf("seed conversations: %w", err)
	}
	if cn == 0 {
		for i := range set.Conversations {
			c := set.Conversations[i]
			if err := convs.CreateConversation(ctx, &c); err != nil && !errors.Is(err, repo.ErrDuplicate) {
				return fmt.Errorf("seed conversation %s: %w", c.ID, err)
			}
			for j := range set.Messages[c.ID] {
				m := set.Messages[c.ID][j]
				if err := convs.CreateMessage(ctx, &m); err != nil {
					return fmt.Errorf("seed message %s: %w", m.ID, err)
				}
			}
		}
		log.Ctx(ctx).Info().Int("conversations", len(set.Conversations)).Msg("seeded conversations")
	}
	return nil
}

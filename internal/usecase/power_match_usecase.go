package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-match/internal/domain/powermatch"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrPowerMatchNotFound = errors.New("power match not found")
	ErrPowerMatchApplied  = errors.New("power match already applied")
)

type PowerMatchUsecase interface {
	MarkViewed(ctx context.Context, matchID, subscriberID uuid.UUID) (powermatch.PowerMatch, error)
}

type PowerMatches struct {
	matches repository.PowerMatchRepository
	now     func() time.Time
	log     *log.Logger
}

func NewPowerMatchUsecase(matches repository.PowerMatchRepository, logger *log.Logger) *PowerMatches {
	if logger == nil {
		logger = log.Default()
	}
	return &PowerMatches{matches: matches, now: time.Now, log: logger}
}

// MarkViewed records subscriber engagement with a generated match. Repeat
// calls on an already-viewed match are a no-op; applied matches are
// terminal.
func (u *PowerMatches) MarkViewed(ctx context.Context, matchID, subscriberID uuid.UUID) (powermatch.PowerMatch, error) {
	if subscriberID == uuid.Nil {
		return powermatch.PowerMatch{}, ErrUnauthorized
	}
	if matchID == uuid.Nil {
		return powermatch.PowerMatch{}, ErrPowerMatchNotFound
	}

	m, err := u.matches.FindByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repository.ErrPowerMatchNotFound) {
			return powermatch.PowerMatch{}, ErrPowerMatchNotFound
		}
		u.log.Printf("power match view error | match_id=%s err=%v", matchID, err)
		return powermatch.PowerMatch{}, ErrInternal
	}
	if m.SubscriberID != subscriberID {
		return powermatch.PowerMatch{}, ErrPowerMatchNotFound
	}
	if m.State == powermatch.StateViewed {
		return m, nil
	}

	if err := m.MarkViewed(u.now()); err != nil {
		if errors.Is(err, powermatch.ErrAlreadyApplied) {
			return powermatch.PowerMatch{}, ErrPowerMatchApplied
		}
		return powermatch.PowerMatch{}, ErrInternal
	}

	if err := u.matches.MarkViewed(ctx, m.ID, subscriberID, *m.ViewedAt); err != nil {
		if errors.Is(err, repository.ErrNoRowsUpdated) {
			// Raced with auto-apply or another viewer; re-read for the
			// authoritative state.
			return powermatch.PowerMatch{}, ErrPowerMatchApplied
		}
		u.log.Printf("power match view error | match_id=%s err=%v", matchID, err)
		return powermatch.PowerMatch{}, ErrInternal
	}

	return m, nil
}

var _ PowerMatchUsecase = (*PowerMatches)(nil)

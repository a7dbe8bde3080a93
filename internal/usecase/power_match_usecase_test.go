package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"talent-match/internal/domain/powermatch"
	"talent-match/internal/repository"

	"github.com/google/uuid"
)

type stubPowerMatchRepo struct {
	m       powermatch.PowerMatch
	findErr error
	viewErr error

	viewCalls int
}

func (r *stubPowerMatchRepo) Insert(context.Context, powermatch.PowerMatch) error { return nil }

func (r *stubPowerMatchRepo) FindByID(_ context.Context, id uuid.UUID) (powermatch.PowerMatch, error) {
	if r.findErr != nil {
		return powermatch.PowerMatch{}, r.findErr
	}
	if r.m.ID != id {
		return powermatch.PowerMatch{}, repository.ErrPowerMatchNotFound
	}
	return r.m, nil
}

func (r *stubPowerMatchRepo) ListAutoApplyCandidates(context.Context, int) ([]powermatch.PowerMatch, error) {
	return nil, nil
}

func (r *stubPowerMatchRepo) MarkApplied(context.Context, uuid.UUID, uuid.UUID, *float64, time.Time) error {
	return nil
}

func (r *stubPowerMatchRepo) MarkViewed(_ context.Context, id, subscriberID uuid.UUID, viewedAt time.Time) error {
	r.viewCalls++
	if r.viewErr != nil {
		return r.viewErr
	}
	if r.m.ID != id || r.m.SubscriberID != subscriberID || r.m.State != powermatch.StateGenerated {
		return repository.ErrNoRowsUpdated
	}
	at := viewedAt.UTC()
	r.m.State = powermatch.StateViewed
	r.m.ViewedAt = &at
	return nil
}

func storedMatch(subscriberID uuid.UUID, state powermatch.State) powermatch.PowerMatch {
	return powermatch.PowerMatch{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		JobID:        uuid.New(),
		State:        state,
		CreatedAt:    time.Now().UTC().Add(-time.Hour),
	}
}

func TestPowerMatchMarkViewed(t *testing.T) {
	subscriber := uuid.New()
	repo := &stubPowerMatchRepo{m: storedMatch(subscriber, powermatch.StateGenerated)}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	out, err := uc.MarkViewed(context.Background(), repo.m.ID, subscriber)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if out.State != powermatch.StateViewed {
		t.Fatalf("state = %s, want viewed", out.State)
	}
	if out.ViewedAt == nil {
		t.Fatalf("viewed_at not set")
	}
	if repo.m.State != powermatch.StateViewed {
		t.Fatalf("persisted state = %s, want viewed", repo.m.State)
	}
}

func TestPowerMatchMarkViewed_RepeatIsNoOp(t *testing.T) {
	subscriber := uuid.New()
	viewedAt := time.Now().UTC().Add(-time.Minute)
	m := storedMatch(subscriber, powermatch.StateViewed)
	m.ViewedAt = &viewedAt

	repo := &stubPowerMatchRepo{m: m}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	out, err := uc.MarkViewed(context.Background(), m.ID, subscriber)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !out.ViewedAt.Equal(viewedAt) {
		t.Fatalf("viewed_at changed on repeat call")
	}
	if repo.viewCalls != 0 {
		t.Fatalf("repeat view must not write")
	}
}

func TestPowerMatchMarkViewed_AppliedIsTerminal(t *testing.T) {
	subscriber := uuid.New()
	repo := &stubPowerMatchRepo{m: storedMatch(subscriber, powermatch.StateApplied)}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	if _, err := uc.MarkViewed(context.Background(), repo.m.ID, subscriber); !errors.Is(err, ErrPowerMatchApplied) {
		t.Fatalf("err = %v, want ErrPowerMatchApplied", err)
	}
}

// Another subscriber's match reads as not found, never as forbidden, so the
// endpoint does not leak row existence.
func TestPowerMatchMarkViewed_WrongSubscriber(t *testing.T) {
	repo := &stubPowerMatchRepo{m: storedMatch(uuid.New(), powermatch.StateGenerated)}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	if _, err := uc.MarkViewed(context.Background(), repo.m.ID, uuid.New()); !errors.Is(err, ErrPowerMatchNotFound) {
		t.Fatalf("err = %v, want ErrPowerMatchNotFound", err)
	}
	if repo.viewCalls != 0 {
		t.Fatalf("foreign match must not be written")
	}
}

func TestPowerMatchMarkViewed_NotFound(t *testing.T) {
	repo := &stubPowerMatchRepo{m: storedMatch(uuid.New(), powermatch.StateGenerated)}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	if _, err := uc.MarkViewed(context.Background(), uuid.New(), repo.m.SubscriberID); !errors.Is(err, ErrPowerMatchNotFound) {
		t.Fatalf("err = %v, want ErrPowerMatchNotFound", err)
	}
}

func TestPowerMatchMarkViewed_RaceWithAutoApply(t *testing.T) {
	subscriber := uuid.New()
	repo := &stubPowerMatchRepo{
		m:       storedMatch(subscriber, powermatch.StateGenerated),
		viewErr: repository.ErrNoRowsUpdated,
	}
	uc := NewPowerMatchUsecase(repo, quietLogger())

	if _, err := uc.MarkViewed(context.Background(), repo.m.ID, subscriber); !errors.Is(err, ErrPowerMatchApplied) {
		t.Fatalf("err = %v, want ErrPowerMatchApplied", err)
	}
}

package powermatch

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func generated() PowerMatch {
	return PowerMatch{
		ID:           uuid.New(),
		SubscriberID: uuid.New(),
		JobID:        uuid.New(),
		State:        StateGenerated,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestMarkViewed(t *testing.T) {
	m := generated()
	at := time.Now()

	if err := m.MarkViewed(at); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.State != StateViewed {
		t.Fatalf("state = %s, want viewed", m.State)
	}
	if m.ViewedAt == nil || !m.ViewedAt.Equal(at.UTC()) {
		t.Fatalf("viewed_at = %v, want %v", m.ViewedAt, at.UTC())
	}
}

func TestMarkViewed_AppliedIsTerminal(t *testing.T) {
	m := generated()
	if err := m.MarkApplied(uuid.New(), nil, time.Now()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := m.MarkViewed(time.Now()); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("err = %v, want ErrAlreadyApplied", err)
	}
	if m.State != StateApplied {
		t.Fatalf("state mutated to %s", m.State)
	}
}

func TestMarkApplied_SetsLinkAtomically(t *testing.T) {
	m := generated()
	appID := uuid.New()
	score := 87.5
	at := time.Now()

	if err := m.MarkApplied(appID, &score, at); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if m.State != StateApplied {
		t.Fatalf("state = %s, want applied", m.State)
	}
	if m.ApplicationID == nil || *m.ApplicationID != appID {
		t.Fatalf("application_id not linked")
	}
	if m.AppliedAt == nil || !m.AppliedAt.Equal(at.UTC()) {
		t.Fatalf("applied_at not stamped")
	}
	if m.MatchScore == nil || *m.MatchScore != score {
		t.Fatalf("score not carried")
	}
}

func TestMarkApplied_FromViewed(t *testing.T) {
	m := generated()
	if err := m.MarkViewed(time.Now()); err != nil {
		t.Fatalf("view: %v", err)
	}
	if err := m.MarkApplied(uuid.New(), nil, time.Now()); err != nil {
		t.Fatalf("apply from viewed: %v", err)
	}
}

func TestMarkApplied_Twice(t *testing.T) {
	m := generated()
	first := uuid.New()
	if err := m.MarkApplied(first, nil, time.Now()); err != nil {
		t.Fatalf("apply: %v", err)
	}
	if err := m.MarkApplied(uuid.New(), nil, time.Now()); !errors.Is(err, ErrAlreadyApplied) {
		t.Fatalf("err = %v, want ErrAlreadyApplied", err)
	}
	if *m.ApplicationID != first {
		t.Fatalf("application link overwritten")
	}
}

func TestMarkApplied_RequiresApplicationID(t *testing.T) {
	m := generated()
	if err := m.MarkApplied(uuid.Nil, nil, time.Now()); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
	if m.State != StateGenerated {
		t.Fatalf("state mutated on rejected transition")
	}
}

func TestCanAutoApply(t *testing.T) {
	m := generated()
	if !m.CanAutoApply() {
		t.Fatalf("generated match must be auto-appliable")
	}

	if err := m.MarkViewed(time.Now()); err != nil {
		t.Fatalf("view: %v", err)
	}
	if m.CanAutoApply() {
		t.Fatalf("viewed match must not be auto-applied")
	}
}

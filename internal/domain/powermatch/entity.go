package powermatch

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// State is the explicit lifecycle position of a power match. Timestamps are
// payload; the state column is authoritative.
type State string

const (
	StateGenerated State = "generated"
	StateViewed    State = "viewed"
	StateApplied   State = "applied"
)

var (
	ErrAlreadyApplied    = errors.New("power match already applied")
	ErrInvalidTransition = errors.New("invalid power match transition")
)

type PowerMatch struct {
	ID            uuid.UUID
	SubscriberID  uuid.UUID
	JobID         uuid.UUID
	State         State
	MatchScore    *float64
	ApplicationID *uuid.UUID
	CreatedAt     time.Time
	ViewedAt      *time.Time
	AppliedAt     *time.Time
}

func ValidState(s State) bool {
	switch s {
	case StateGenerated, StateViewed, StateApplied:
		return true
	default:
		return false
	}
}

// CanAutoApply reports whether the auto-apply executor may pick this match
// up. Policy: only matches the subscriber has not engaged with at all.
func (m PowerMatch) CanAutoApply() bool {
	return m.State == StateGenerated
}

// MarkViewed transitions generated -> viewed.
func (m *PowerMatch) MarkViewed(at time.Time) error {
	if m == nil {
		return ErrInvalidTransition
	}
	switch m.State {
	case StateGenerated:
	case StateApplied:
		return ErrAlreadyApplied
	default:
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.State, StateViewed)
	}

	at = at.UTC()
	m.State = StateViewed
	m.ViewedAt = &at
	return nil
}

// MarkApplied transitions generated|viewed -> applied and links the created
// application. Applied is terminal: applied_at and application_id are set
// together, exactly once.
func (m *PowerMatch) MarkApplied(applicationID uuid.UUID, score *float64, at time.Time) error {
	if m == nil {
		return ErrInvalidTransition
	}
	if m.State == StateApplied {
		return ErrAlreadyApplied
	}
	if !ValidState(m.State) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, m.State, StateApplied)
	}
	if applicationID == uuid.Nil {
		return fmt.Errorf("%w: missing application id", ErrInvalidTransition)
	}

	at = at.UTC()
	m.State = StateApplied
	m.AppliedAt = &at
	m.ApplicationID = &applicationID
	m.MatchScore = score
	return nil
}

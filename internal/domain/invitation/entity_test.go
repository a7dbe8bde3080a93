package invitation

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func pending() Invitation {
	return Invitation{
		ID:          uuid.New(),
		JobID:       uuid.New(),
		CandidateID: uuid.New(),
		EmployerID:  uuid.New(),
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestRespond(t *testing.T) {
	inv := pending()
	at := time.Now()

	if err := inv.Respond(inv.CandidateID, StatusAccepted, at); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if inv.Status != StatusAccepted {
		t.Fatalf("status = %s, want accepted", inv.Status)
	}
	if inv.RespondedAt == nil || !inv.RespondedAt.Equal(at.UTC()) {
		t.Fatalf("responded_at = %v, want %v", inv.RespondedAt, at.UTC())
	}
}

func TestRespond_SingleShot(t *testing.T) {
	inv := pending()
	if err := inv.Respond(inv.CandidateID, StatusDeclined, time.Now()); err != nil {
		t.Fatalf("first respond: %v", err)
	}
	if err := inv.Respond(inv.CandidateID, StatusAccepted, time.Now()); !errors.Is(err, ErrNotPending) {
		t.Fatalf("err = %v, want ErrNotPending", err)
	}
	if inv.Status != StatusDeclined {
		t.Fatalf("terminal status overwritten: %s", inv.Status)
	}
}

func TestRespond_WrongResponder(t *testing.T) {
	inv := pending()
	if err := inv.Respond(uuid.New(), StatusAccepted, time.Now()); !errors.Is(err, ErrNotInvitee) {
		t.Fatalf("err = %v, want ErrNotInvitee", err)
	}
	if inv.Status != StatusPending || inv.RespondedAt != nil {
		t.Fatalf("entity mutated on rejected response")
	}
}

func TestRespond_BadDecision(t *testing.T) {
	inv := pending()
	if err := inv.Respond(inv.CandidateID, StatusPending, time.Now()); !errors.Is(err, ErrBadDecision) {
		t.Fatalf("err = %v, want ErrBadDecision", err)
	}
	if err := inv.Respond(inv.CandidateID, Status("maybe"), time.Now()); !errors.Is(err, ErrBadDecision) {
		t.Fatalf("err = %v, want ErrBadDecision", err)
	}
}

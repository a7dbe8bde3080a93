package ws

import (
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

type PowerMatchesUpdatedEvent struct {
	Type       string `json:"type"`
	NewMatches int    `json:"new_matches"`
	Timestamp  string `json:"timestamp"`
}

type InvitationRespondedEvent struct {
	Type         string    `json:"type"`
	InvitationID uuid.UUID `json:"invitation_id"`
	Status       string    `json:"status"`
	Timestamp    string    `json:"timestamp"`
}

var defaultHub atomic.Pointer[Hub]

func SetDefaultHub(h *Hub) {
	defaultHub.Store(h)
}

// NotifyPowerMatchesUpdated is advisory: listeners must reconcile with the
// persisted records on their next read.
func NotifyPowerMatchesUpdated(newMatches int) {
	h := defaultHub.Load()
	if h == nil || newMatches <= 0 {
		return
	}

	evt := PowerMatchesUpdatedEvent{
		Type:       "power_matches_updated",
		NewMatches: newMatches,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

func NotifyInvitationResponded(invitationID uuid.UUID, status string) {
	h := defaultHub.Load()
	if h == nil || invitationID == uuid.Nil {
		return
	}

	evt := InvitationRespondedEvent{
		Type:         "invitation_responded",
		InvitationID: invitationID,
		Status:       status,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	b, err := json.Marshal(evt)
	if err != nil {
		return
	}
	h.Broadcast(b)
}

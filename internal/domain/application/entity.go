package application

import (
	"time"

	"github.com/google/uuid"
)

type Stage string

const (
	StageApplied   Stage = "Applied"
	StageScreening Stage = "Screening"
	StageInterview Stage = "Interview"
	StageOffer     Stage = "Offer"
	StageRejected  Stage = "Rejected"
	StageWithdrawn Stage = "Withdrawn"
)

// StatusActive is the only status value this service writes. Other statuses
// belong to the employer-side flows.
const StatusActive = "active"

// AutoApplyCoverLetter is the fixed note attached to applications filed on
// the subscriber's behalf.
const AutoApplyCoverLetter = "This application was submitted automatically on your behalf based on a Power Match."

type Application struct {
	ID           uuid.UUID
	SubscriberID uuid.UUID
	JobID        uuid.UUID
	Status       string
	Stage        Stage
	CoverLetter  *string
	MatchScore   *float64
	CreatedAt    time.Time
}

// NewAutoApplied builds the application record the auto-apply executor files
// for a power match. Stage and status are fixed by contract.
func NewAutoApplied(subscriberID, jobID uuid.UUID, score *float64, now time.Time) Application {
	cover := AutoApplyCoverLetter
	return Application{
		ID:           uuid.New(),
		SubscriberID: subscriberID,
		JobID:        jobID,
		Status:       StatusActive,
		Stage:        StageApplied,
		CoverLetter:  &cover,
		MatchScore:   score,
		CreatedAt:    now.UTC(),
	}
}

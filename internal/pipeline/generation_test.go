package pipeline

import (
	"context"
	"errors"
	"io"
	"log"
	"sync"
	"testing"

	"talent-match/internal/matcher"

	"github.com/google/uuid"
)

type mockSubscriberRepo struct {
	ids []uuid.UUID
	err error
}

func (m mockSubscriberRepo) ListEligibleIDs(context.Context) ([]uuid.UUID, error) {
	return m.ids, m.err
}

type mockMatcherClient struct {
	mu        sync.Mutex
	triggerFn func(subscriberID uuid.UUID) (matcher.TriggerResult, error)
	scoreFn   func(subscriberID, jobID uuid.UUID) (*float64, error)
}

func (m *mockMatcherClient) TriggerUserPowerMatch(_ context.Context, subscriberID uuid.UUID) (matcher.TriggerResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.triggerFn == nil {
		return matcher.TriggerResult{Status: matcher.StatusSuccess}, nil
	}
	return m.triggerFn(subscriberID)
}

func (m *mockMatcherClient) CalculateMatchScore(_ context.Context, subscriberID, jobID uuid.UUID) (*float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scoreFn == nil {
		return nil, nil
	}
	return m.scoreFn(subscriberID, jobID)
}

func discardLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestGeneration_Run_PartialFailure(t *testing.T) {
	// Scenario: 5 eligible subscribers, trigger fails for 2.
	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
	}
	failing := map[uuid.UUID]bool{ids[1]: true, ids[3]: true}

	client := &mockMatcherClient{
		triggerFn: func(id uuid.UUID) (matcher.TriggerResult, error) {
			if failing[id] {
				return matcher.TriggerResult{}, errors.New("trigger transport error")
			}
			return matcher.TriggerResult{Status: matcher.StatusSuccess, NewMatchesFound: 2}, nil
		},
	}

	p := NewGeneration(mockSubscriberRepo{ids: ids}, client, 3, discardLogger())
	sum, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.UsersProcessed != 3 {
		t.Fatalf("expected users_processed=3, got %d", sum.UsersProcessed)
	}
	if sum.UsersFailed != 2 {
		t.Fatalf("expected users_failed=2, got %d", sum.UsersFailed)
	}
	if sum.TotalNewMatchesCreated != 6 {
		t.Fatalf("expected total_new_matches_created=6, got %d", sum.TotalNewMatchesCreated)
	}
}

func TestGeneration_Run_NonSuccessStatusCountsAsFailed(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	client := &mockMatcherClient{
		triggerFn: func(id uuid.UUID) (matcher.TriggerResult, error) {
			if id == ids[0] {
				return matcher.TriggerResult{Status: matcher.StatusError, Message: "subscriber no longer eligible"}, nil
			}
			return matcher.TriggerResult{Status: matcher.StatusSuccess, NewMatchesFound: 1}, nil
		},
	}

	p := NewGeneration(mockSubscriberRepo{ids: ids}, client, 2, discardLogger())
	sum, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if sum.UsersProcessed != 1 || sum.UsersFailed != 1 {
		t.Fatalf("expected 1 processed / 1 failed, got %d / %d", sum.UsersProcessed, sum.UsersFailed)
	}
	if sum.TotalNewMatchesCreated != 1 {
		t.Fatalf("expected total=1, got %d", sum.TotalNewMatchesCreated)
	}
}

func TestGeneration_Run_EligibilityQueryIsBatchFatal(t *testing.T) {
	p := NewGeneration(mockSubscriberRepo{err: errors.New("db down")}, &mockMatcherClient{}, 2, discardLogger())
	if _, err := p.Run(context.Background()); err == nil {
		t.Fatalf("expected error when eligibility query fails")
	}
}

func TestGeneration_Run_NoEligibleSubscribers(t *testing.T) {
	client := &mockMatcherClient{
		triggerFn: func(uuid.UUID) (matcher.TriggerResult, error) {
			t.Errorf("trigger must not be called with no eligible subscribers")
			return matcher.TriggerResult{}, nil
		},
	}

	p := NewGeneration(mockSubscriberRepo{}, client, 2, discardLogger())
	sum, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("empty eligible set is a normal outcome, got err: %v", err)
	}
	if sum != (GenerationSummary{}) {
		t.Fatalf("expected zero summary, got %+v", sum)
	}
}

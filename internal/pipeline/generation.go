package pipeline

import (
	"context"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"talent-match/internal/matcher"
	"talent-match/internal/repository"
)

type GenerationSummary struct {
	UsersProcessed         int `json:"users_processed"`
	UsersFailed            int `json:"users_failed"`
	TotalNewMatchesCreated int `json:"total_new_matches_created"`
}

// Generation is the power-match generation scheduler: one run-to-completion
// invocation over the currently eligible subscribers.
type Generation struct {
	subscribers repository.SubscriberRepository
	matcher     matcher.Client
	workers     int
	log         *log.Logger
}

func NewGeneration(subscribers repository.SubscriberRepository, client matcher.Client, workers int, logger *log.Logger) *Generation {
	if workers <= 0 {
		workers = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Generation{subscribers: subscribers, matcher: client, workers: workers, log: logger}
}

// Run triggers per-user match generation for every eligible subscriber.
// Only the eligibility query is batch-fatal; per-user failures are counted
// and the batch continues.
func (p *Generation) Run(ctx context.Context) (GenerationSummary, error) {
	start := time.Now()
	p.log.Printf("pipeline=generation status=started")

	ids, err := p.subscribers.ListEligibleIDs(ctx)
	if err != nil {
		p.log.Printf("pipeline=generation status=error step=eligibility err=%v", err)
		return GenerationSummary{}, err
	}
	if len(ids) == 0 {
		p.log.Printf("pipeline=generation status=finished eligible=0 duration=%s", time.Since(start))
		return GenerationSummary{}, nil
	}

	pool := NewWorkerPool(p.workers, p.workers*2)
	results := pool.Run(ctx)

	var newMatches atomic.Int64
	go func() {
		defer pool.Close()
		for _, id := range ids {
			id := id
			pool.Submit(func(ctx context.Context) Result {
				res, err := p.matcher.TriggerUserPowerMatch(ctx, id)
				if err != nil {
					p.log.Printf("pipeline=generation status=error subscriber_id=%s err=%v", id, err)
					return Result{Err: err}
				}
				if res.Status != matcher.StatusSuccess {
					p.log.Printf("pipeline=generation status=error subscriber_id=%s trigger_status=%s message=%q", id, res.Status, res.Message)
					return Result{Err: fmt.Errorf("trigger status=%s: %s", res.Status, res.Message)}
				}

				newMatches.Add(int64(res.NewMatchesFound))
				p.log.Printf("pipeline=generation status=ok subscriber_id=%s new_matches=%d", id, res.NewMatchesFound)
				return Result{}
			})
		}
	}()

	var processed, failed int
	for r := range results {
		if r.Err != nil {
			failed++
		} else {
			processed++
		}
	}

	summary := GenerationSummary{
		UsersProcessed:         processed,
		UsersFailed:            failed,
		TotalNewMatchesCreated: int(newMatches.Load()),
	}
	p.log.Printf("pipeline=generation status=finished users_processed=%d users_failed=%d new_matches=%d duration=%s",
		summary.UsersProcessed, summary.UsersFailed, summary.TotalNewMatchesCreated, time.Since(start))
	return summary, nil
}

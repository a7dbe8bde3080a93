package pipeline

import (
	"context"
	"log"
	"sync/atomic"
	"time"

	"talent-match/internal/domain/application"
	"talent-match/internal/matcher"
	"talent-match/internal/repository"
)

type AutoApplySummary struct {
	MatchesProcessed    int `json:"matches_processed"`
	ApplicationsCreated int `json:"applications_created"`
	ApplicationErrors   int `json:"application_errors"`
	UpdateErrors        int `json:"update_errors"`
}

// AutoApply converts unresolved power matches into filed applications.
// Create-then-link is two row-level writes; the store gives no cross-row
// transaction, so a failed link leaves a dangling application that is
// counted and logged for operator reconciliation.
type AutoApply struct {
	matches      repository.PowerMatchRepository
	applications repository.ApplicationRepository
	matcher      matcher.Client
	workers      int
	limit        int
	now          func() time.Time
	log          *log.Logger
}

func NewAutoApply(
	matches repository.PowerMatchRepository,
	applications repository.ApplicationRepository,
	client matcher.Client,
	workers int,
	logger *log.Logger,
) *AutoApply {
	if workers <= 0 {
		workers = 5
	}
	if logger == nil {
		logger = log.Default()
	}
	return &AutoApply{
		matches:      matches,
		applications: applications,
		matcher:      client,
		workers:      workers,
		limit:        500,
		now:          time.Now,
		log:          logger,
	}
}

// Run processes every selectable match once. Only the candidate selection
// query is batch-fatal; per-match failures land in one of two disjoint
// buckets and the batch continues.
func (p *AutoApply) Run(ctx context.Context) (AutoApplySummary, error) {
	start := time.Now()
	p.log.Printf("pipeline=auto_apply status=started")

	candidates, err := p.matches.ListAutoApplyCandidates(ctx, p.limit)
	if err != nil {
		p.log.Printf("pipeline=auto_apply status=error step=selection err=%v", err)
		return AutoApplySummary{}, err
	}
	if len(candidates) == 0 {
		p.log.Printf("pipeline=auto_apply status=finished candidates=0 duration=%s", time.Since(start))
		return AutoApplySummary{}, nil
	}

	pool := NewWorkerPool(p.workers, p.workers*2)
	results := pool.Run(ctx)

	var created, appErrs, updErrs atomic.Int64
	go func() {
		defer pool.Close()
		for _, m := range candidates {
			m := m
			pool.Submit(func(ctx context.Context) Result {
				if !m.CanAutoApply() {
					return Result{}
				}

				score, err := p.matcher.CalculateMatchScore(ctx, m.SubscriberID, m.JobID)
				if err != nil {
					appErrs.Add(1)
					p.log.Printf("pipeline=auto_apply status=error step=score match_id=%s subscriber_id=%s job_id=%s err=%v", m.ID, m.SubscriberID, m.JobID, err)
					return Result{Err: err}
				}

				app := application.NewAutoApplied(m.SubscriberID, m.JobID, score, p.now())
				if err := p.applications.Insert(ctx, app); err != nil {
					appErrs.Add(1)
					p.log.Printf("pipeline=auto_apply status=error step=create match_id=%s subscriber_id=%s job_id=%s err=%v", m.ID, m.SubscriberID, m.JobID, err)
					return Result{Err: err}
				}

				if err := p.matches.MarkApplied(ctx, m.ID, app.ID, score, p.now()); err != nil {
					updErrs.Add(1)
					// Dangling application: it exists but the match still points
					// nowhere, and the match will be re-selected next run. Needs
					// operator reconciliation, not a silent retry.
					p.log.Printf("pipeline=auto_apply status=error step=link match_id=%s application_id=%s subscriber_id=%s job_id=%s err=%v reconcile=manual", m.ID, app.ID, m.SubscriberID, m.JobID, err)
					return Result{Err: err}
				}

				created.Add(1)
				p.log.Printf("pipeline=auto_apply status=ok match_id=%s application_id=%s", m.ID, app.ID)
				return Result{}
			})
		}
	}()

	var processed int
	for range results {
		processed++
	}

	summary := AutoApplySummary{
		MatchesProcessed:    processed,
		ApplicationsCreated: int(created.Load()),
		ApplicationErrors:   int(appErrs.Load()),
		UpdateErrors:        int(updErrs.Load()),
	}
	p.log.Printf("pipeline=auto_apply status=finished matches_processed=%d applications_created=%d application_errors=%d update_errors=%d duration=%s",
		summary.MatchesProcessed, summary.ApplicationsCreated, summary.ApplicationErrors, summary.UpdateErrors, time.Since(start))
	return summary, nil
}

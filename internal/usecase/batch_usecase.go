package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"talent-match/internal/pipeline"
	"talent-match/internal/ws"
)

var (
	ErrInternal      = errors.New("internal error")
	ErrRunInProgress = errors.New("batch run already in progress")
)

const (
	generateLockKey  = "power_matches:lock:generate"
	autoApplyLockKey = "power_matches:lock:auto_apply"

	generateStatusKey  = "power_matches:last_run:generate"
	autoApplyStatusKey = "power_matches:last_run:auto_apply"

	statusTTL = 7 * 24 * time.Hour
)

// runCache is the slice of the redis wrapper the batch usecase needs. When
// redis is down the wrapper degrades to no locking and no status history.
type runCache interface {
	SetIfNotExists(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) error
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type GenerationRun struct {
	pipeline.GenerationSummary
	FinishedAt time.Time `json:"finished_at"`
}

type AutoApplyRun struct {
	pipeline.AutoApplySummary
	FinishedAt time.Time `json:"finished_at"`
}

type BatchStatus struct {
	LastGeneration *GenerationRun `json:"last_generation"`
	LastAutoApply  *AutoApplyRun  `json:"last_auto_apply"`
}

type BatchUsecase interface {
	GeneratePowerMatches(ctx context.Context) (pipeline.GenerationSummary, error)
	AutoApplyPowerMatches(ctx context.Context) (pipeline.AutoApplySummary, error)
	LastRunStatus(ctx context.Context) (BatchStatus, error)
}

type Batch struct {
	generation *pipeline.Generation
	autoApply  *pipeline.AutoApply
	cache      runCache
	lockTTL    time.Duration
	now        func() time.Time
	log        *log.Logger
}

func NewBatchUsecase(generation *pipeline.Generation, autoApply *pipeline.AutoApply, cache runCache, lockTTL time.Duration, logger *log.Logger) *Batch {
	if lockTTL <= 0 {
		lockTTL = 10 * time.Minute
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Batch{
		generation: generation,
		autoApply:  autoApply,
		cache:      cache,
		lockTTL:    lockTTL,
		now:        time.Now,
		log:        logger,
	}
}

func (u *Batch) GeneratePowerMatches(ctx context.Context) (pipeline.GenerationSummary, error) {
	unlock, err := u.acquire(ctx, generateLockKey)
	if err != nil {
		return pipeline.GenerationSummary{}, err
	}
	defer unlock()

	sum, err := u.generation.Run(ctx)
	if err != nil {
		return pipeline.GenerationSummary{}, err
	}

	u.storeStatus(ctx, generateStatusKey, GenerationRun{GenerationSummary: sum, FinishedAt: u.now().UTC()})
	if sum.TotalNewMatchesCreated > 0 {
		ws.NotifyPowerMatchesUpdated(sum.TotalNewMatchesCreated)
	}
	return sum, nil
}

func (u *Batch) AutoApplyPowerMatches(ctx context.Context) (pipeline.AutoApplySummary, error) {
	unlock, err := u.acquire(ctx, autoApplyLockKey)
	if err != nil {
		return pipeline.AutoApplySummary{}, err
	}
	defer unlock()

	sum, err := u.autoApply.Run(ctx)
	if err != nil {
		return pipeline.AutoApplySummary{}, err
	}

	u.storeStatus(ctx, autoApplyStatusKey, AutoApplyRun{AutoApplySummary: sum, FinishedAt: u.now().UTC()})
	return sum, nil
}

func (u *Batch) LastRunStatus(ctx context.Context) (BatchStatus, error) {
	var st BatchStatus
	if u.cache == nil {
		return st, nil
	}

	var gen GenerationRun
	if ok, err := u.cache.GetJSON(ctx, generateStatusKey, &gen); err == nil && ok {
		st.LastGeneration = &gen
	}
	var aa AutoApplyRun
	if ok, err := u.cache.GetJSON(ctx, autoApplyStatusKey, &aa); err == nil && ok {
		st.LastAutoApply = &aa
	}
	return st, nil
}

// acquire takes the per-batch advisory lock. With no cache configured (or
// redis unreachable) every caller wins; overlap protection is best-effort.
func (u *Batch) acquire(ctx context.Context, key string) (func(), error) {
	if u.cache == nil {
		return func() {}, nil
	}

	ok, err := u.cache.SetIfNotExists(ctx, key, u.now().UTC().Format(time.RFC3339), u.lockTTL)
	if err != nil {
		u.log.Printf("batch lock error | key=%s err=%v", key, err)
		return func() {}, nil
	}
	if !ok {
		return nil, ErrRunInProgress
	}
	return func() {
		if err := u.cache.Delete(context.WithoutCancel(ctx), key); err != nil {
			u.log.Printf("batch unlock error | key=%s err=%v", key, err)
		}
	}, nil
}

func (u *Batch) storeStatus(ctx context.Context, key string, v any) {
	if u.cache == nil {
		return
	}
	if err := u.cache.SetJSON(ctx, key, v, statusTTL); err != nil {
		u.log.Printf("batch status cache error | key=%s err=%v", key, err)
	}
}

var _ BatchUsecase = (*Batch)(nil)

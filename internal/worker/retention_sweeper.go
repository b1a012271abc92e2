package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/m-orlov/pairlist/internal/domain/model"
)

// RetentionFacade exposes the subset of application functionality required by the sweeper.
type RetentionFacade interface {
	RetentionCandidates(ctx context.Context, limit int) ([]model.RetentionCandidate, error)
	TrimHistory(ctx context.Context, userID int64, role model.Role) error
}

// RetentionSweeper periodically re-trims completed-order history. Trimming
// normally happens synchronously after each terminal transition; the sweeper
// catches rows left behind by trims that never ran.
type RetentionSweeper struct {
	facade        RetentionFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.RetentionCandidate
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewRetentionSweeper constructs retention sweeper worker pool.
func NewRetentionSweeper(facade RetentionFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *RetentionSweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &RetentionSweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.RetentionCandidate, batchSize*workers),
	}
}

// Start launches background sweeping.
func (s *RetentionSweeper) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel

	for i := 0; i < s.workers; i++ {
		s.wg.Add(1)
		go s.worker(runCtx)
	}

	s.wg.Add(1)
	go s.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (s *RetentionSweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *RetentionSweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndDispatch(ctx)
		}
	}
}

func (s *RetentionSweeper) fetchAndDispatch(ctx context.Context) {
	candidates, err := s.facade.RetentionCandidates(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("fetch retention candidates failed", slog.String("error", err.Error()))
		return
	}
	for _, candidate := range candidates {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- candidate:
		}
	}
}

func (s *RetentionSweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case candidate, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleCandidate(ctx, candidate)
		}
	}
}

func (s *RetentionSweeper) handleCandidate(ctx context.Context, candidate model.RetentionCandidate) {
	if err := s.facade.TrimHistory(ctx, candidate.UserID, candidate.Role); err != nil {
		s.logger.Error("history trim failed",
			slog.Int64("user_id", candidate.UserID),
			slog.String("role", string(candidate.Role)),
			slog.String("error", err.Error()),
		)
	}
}

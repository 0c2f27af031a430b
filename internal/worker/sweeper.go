package worker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/smartkart/smartkart/internal/domain/model"
)

// SettlementFacade exposes the subset of application functionality required
// by the sweeper.
type SettlementFacade interface {
	GroupsForSettlement(ctx context.Context, limit int) ([]model.OrderGroup, error)
	AnnounceGroupSettled(group model.OrderGroup)
}

// Sweeper periodically completes fully paid order groups and fans the
// announcements out over a worker pool.
type Sweeper struct {
	facade        SettlementFacade
	sweepInterval time.Duration
	batchSize     int
	workers       int
	logger        *slog.Logger

	jobs   chan model.OrderGroup
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewSweeper constructs the settlement sweeper worker pool.
func NewSweeper(facade SettlementFacade, sweepInterval time.Duration, batchSize, workers int, logger *slog.Logger) *Sweeper {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Sweeper{
		facade:        facade,
		sweepInterval: sweepInterval,
		batchSize:     batchSize,
		workers:       workers,
		logger:        logger,
		jobs:          make(chan model.OrderGroup, batchSize*workers),
	}
}

// Start launches background processing.
func (s *Sweeper) Start(ctx context.Context) {
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
func (s *Sweeper) Stop() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Sweeper) dispatch(ctx context.Context) {
	defer s.wg.Done()
	defer close(s.jobs)
	ticker := time.NewTicker(s.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepAndDispatch(ctx)
		}
	}
}

func (s *Sweeper) sweepAndDispatch(ctx context.Context) {
	groups, err := s.facade.GroupsForSettlement(ctx, s.batchSize)
	if err != nil {
		s.logger.Error("settlement sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, group := range groups {
		select {
		case <-ctx.Done():
			return
		case s.jobs <- group:
		}
	}
}

func (s *Sweeper) worker(ctx context.Context) {
	defer s.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case group, ok := <-s.jobs:
			if !ok {
				return
			}
			s.handleGroup(group)
		}
	}
}

func (s *Sweeper) handleGroup(group model.OrderGroup) {
	s.facade.AnnounceGroupSettled(group)
	s.logger.Info("order group settled",
		slog.String("group", group.ID.String()),
		slog.Int64("total_paid", int64(group.TotalPaidAmount)),
	)
}

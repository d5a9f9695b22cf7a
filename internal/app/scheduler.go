package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/riskibarqy/fpl-insights/internal/platform/logging"
	"github.com/riskibarqy/fpl-insights/internal/usecase"
)

const scheduledSyncTimeout = 10 * time.Minute

type snapshotSyncer interface {
	Sync(ctx context.Context, input usecase.SyncInput) (usecase.SyncResult, error)
}

// Scheduler runs the snapshot sync on a cron spec. An empty spec disables the schedule.
// Scheduled runs inherit a base context that Stop cancels.
type Scheduler struct {
	cron   *cron.Cron
	syncer snapshotSyncer
	logger *logging.Logger

	baseCtx context.Context
	cancel  context.CancelFunc
}

func NewScheduler(spec string, syncer snapshotSyncer, logger *logging.Logger) (*Scheduler, error) {
	logger = logging.OrDefault(logger)
	cronLog := cronLogger{logger: logger}
	baseCtx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		cron: cron.New(
			cron.WithLogger(cronLog),
			cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
		),
		syncer:  syncer,
		logger:  logger,
		baseCtx: baseCtx,
		cancel:  cancel,
	}
	if spec == "" {
		return s, nil
	}

	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(s.baseCtx) }); err != nil {
		cancel()
		return nil, fmt.Errorf("schedule snapshot sync %q: %w", spec, err)
	}
	s.logger.Info("snapshot sync scheduled", "cron", spec)
	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the schedule and cancels in-flight scheduled runs. The returned context is done once
// those runs return.
func (s *Scheduler) Stop() context.Context {
	s.cancel()
	return s.cron.Stop()
}

func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

// RunOnce performs a default sync. A sync already in flight is logged and skipped. The run ends
// early when either ctx or the scheduler is stopped.
func (s *Scheduler) RunOnce(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, scheduledSyncTimeout)
	defer cancel()
	stop := context.AfterFunc(s.baseCtx, cancel)
	defer stop()

	result, err := s.syncer.Sync(ctx, usecase.SyncInput{})
	switch {
	case errors.Is(err, usecase.ErrConflict):
		s.logger.InfoContext(ctx, "scheduled snapshot sync skipped", "reason", "already running")
	case err != nil && ctx.Err() != nil:
		s.logger.WarnContext(ctx, "scheduled snapshot sync interrupted", "error", err)
	case err != nil:
		s.logger.ErrorContext(ctx, "scheduled snapshot sync failed", "error", err)
	default:
		s.logger.InfoContext(ctx, "scheduled snapshot sync finished",
			"run_id", result.RunID,
			"success", result.SuccessCount,
			"failed", result.FailedCount,
		)
	}
}

// cronLogger adapts the service logger to cron's logr-style interface.
type cronLogger struct {
	logger *logging.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.logger.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}

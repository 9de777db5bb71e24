package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"queuectl/internal/logging"
	"queuectl/internal/queue"
)

// Pool coordinates a fixed set of worker loops against one store.
type Pool struct {
	store        *queue.Store
	runner       Runner
	logger       *slog.Logger
	count        int
	pollInterval time.Duration

	mu      sync.Mutex
	running bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewPool constructs a pool of count workers polling at pollInterval.
func NewPool(store *queue.Store, runner Runner, logger *slog.Logger, count int, pollInterval time.Duration) *Pool {
	if runner == nil {
		runner = ShellRunner{}
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	if count < 1 {
		count = 1
	}
	return &Pool{
		store:        store,
		runner:       runner,
		logger:       logger,
		count:        count,
		pollInterval: pollInterval,
	}
}

// Start spawns the worker loops. The loops run until ctx is cancelled or
// Stop is called.
func (p *Pool) Start(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return errors.New("worker pool already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel
	p.running = true

	p.wg.Add(p.count)
	for i := 0; i < p.count; i++ {
		workerID := fmt.Sprintf("worker-%d", i+1)
		go p.run(runCtx, workerID)
	}
	return nil
}

// Stop cancels the loops and waits for every worker to observe the
// cancellation and exit. An in-flight command delays this by however long it
// takes to finish.
func (p *Pool) Stop() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	cancel := p.cancel
	p.running = false
	p.cancel = nil
	p.mu.Unlock()

	cancel()
	p.wg.Wait()
}

// Wait blocks until all worker loops have exited.
func (p *Pool) Wait() {
	p.wg.Wait()
}

func (p *Pool) run(ctx context.Context, workerID string) {
	defer p.wg.Done()

	logger := logging.NewComponentLogger(p.logger, workerID)
	logger.Info("worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info("worker exiting")
			return
		default:
		}

		job, err := p.store.Claim(ctx, workerID)
		if err != nil {
			if ctx.Err() != nil {
				logger.Info("worker exiting")
				return
			}
			logger.Error("claim failed", logging.Args(logging.Error(err))...)
			p.sleep(ctx)
			continue
		}
		if job == nil {
			p.sleep(ctx)
			continue
		}

		logger.Info("job claimed",
			logging.Args(
				logging.String(logging.FieldJobID, job.ID),
				logging.String("command", job.Command),
			)...)

		// The claimed command always runs to completion and records its
		// outcome, even when shutdown was requested meanwhile.
		exitCode, output := p.runner.Run(context.Background(), job.Command)
		p.report(logger, job, exitCode, output)
	}
}

func (p *Pool) report(logger *slog.Logger, job *queue.Job, exitCode int, output string) {
	ctx := context.Background()

	if exitCode == 0 {
		if err := p.store.MarkCompleted(ctx, job.ID, output); err != nil {
			logger.Error("record completion failed",
				logging.Args(logging.String(logging.FieldJobID, job.ID), logging.Error(err))...)
			return
		}
		logger.Info("job completed", logging.Args(logging.String(logging.FieldJobID, job.ID))...)
		return
	}

	state, err := p.store.MarkFailed(ctx, job, exitCode, output)
	if err != nil {
		logger.Error("record failure failed",
			logging.Args(logging.String(logging.FieldJobID, job.ID), logging.Error(err))...)
		return
	}
	logger.Warn("job failed",
		logging.Args(
			logging.String(logging.FieldJobID, job.ID),
			logging.Int(logging.FieldExitCode, exitCode),
			logging.Int(logging.FieldAttempts, job.Attempts+1),
			logging.String(logging.FieldState, string(state)),
		)...)
}

func (p *Pool) sleep(ctx context.Context) {
	select {
	case <-ctx.Done():
	case <-time.After(p.pollInterval):
	}
}

package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio"
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"golang.org/x/sync/errgroup"
)

// State is the lifecycle phase of the refresh loop.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateSleeping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateSleeping:
		return "sleeping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Scheduler periodically refreshes the price of every active symbol and
// pushes each result through the ingest pipeline.
type Scheduler struct {
	portfolio portfolio.Usecase
	source    quotev1.Source
	ingest    ingest.Usecase
	logger    logger.Interface
	metrics   *metrics.Metrics

	interval    time.Duration
	concurrency int

	state atomic.Int32

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New creates a Scheduler in the Idle state.
func New(
	portfolio portfolio.Usecase,
	source quotev1.Source,
	ingest ingest.Usecase,
	cfg config.SchedulerConfig,
	logger logger.Interface,
	metrics *metrics.Metrics,
) *Scheduler {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = 1
	}

	return &Scheduler{
		portfolio:   portfolio,
		source:      source,
		ingest:      ingest,
		logger:      logger,
		metrics:     metrics,
		interval:    cfg.Interval,
		concurrency: concurrency,
	}
}

// State returns the current lifecycle phase.
func (s *Scheduler) State() State {
	return State(s.state.Load())
}

// Start launches the refresh loop. The first cycle runs immediately.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return errors.New(errors.GeneralBadRequestError, "scheduler already started")
	}
	s.started = true

	ctx, s.cancel = context.WithCancel(ctx)

	s.wg.Add(1)
	go s.run(ctx)

	s.logger.Info("Refresh scheduler started",
		logger.Field{Key: "interval", Value: s.interval.String()},
		logger.Field{Key: "concurrency", Value: s.concurrency},
	)
	return nil
}

// Stop cancels the loop and waits for the in-flight cycle to return, or
// for ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.state.Store(int32(StateStopped))
		s.logger.Info("Refresh scheduler stopped")
		return nil
	case <-ctx.Done():
		s.logger.Warn("Refresh scheduler stop timeout exceeded")
		return ctx.Err()
	}
}

func (s *Scheduler) run(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(0)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			if err := s.RunCycle(ctx); err != nil && ctx.Err() == nil {
				s.logger.Error(err, logger.Field{Key: "action", Value: "refresh_cycle"})
			}
			s.state.Store(int32(StateSleeping))
			timer.Reset(s.interval)
		}
	}
}

// RunCycle refreshes every active symbol once. Per-symbol failures are
// logged and counted; only failing to list the symbols is returned.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	s.state.Store(int32(StateRunning))
	ctx = util.WithRequestID(ctx, "")
	start := time.Now()

	symbols, err := s.portfolio.ActiveSymbols(ctx)
	if err != nil {
		s.metrics.RecordSymbolFailure(string(errors.CodeOf(err)))
		return err
	}

	s.logger.DebugContext(ctx, "Refresh cycle started", logger.Field{Key: "symbols", Value: len(symbols)})

	var g errgroup.Group
	g.SetLimit(s.concurrency)

	var failed atomic.Int64
	for _, symbol := range symbols {
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			if !s.refresh(ctx, symbol) {
				failed.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()

	took := time.Since(start)
	s.metrics.RecordCycle(took, len(symbols))
	s.logger.InfoContext(ctx, "Refresh cycle finished",
		logger.Field{Key: "symbols", Value: len(symbols)},
		logger.Field{Key: "failed", Value: failed.Load()},
		logger.Field{Key: "took", Value: took.String()},
	)
	return nil
}

func (s *Scheduler) refresh(ctx context.Context, symbol string) bool {
	quote, err := s.source.Fetch(ctx, symbol)
	if err != nil {
		s.fail(ctx, symbol, "fetch_quote", err)
		return false
	}

	if _, err := s.ingest.Process(ctx, ingest.SourcePoll, quote); err != nil {
		s.fail(ctx, symbol, "ingest_quote", err)
		return false
	}
	return true
}

// fail records a per-symbol failure. Throttling and transient upstream
// errors clear up by themselves and only warn; anything else is an error.
func (s *Scheduler) fail(ctx context.Context, symbol, action string, err error) {
	code := errors.CodeOf(err)
	s.metrics.RecordSymbolFailure(string(code))

	fields := []logger.Field{
		{Key: "action", Value: action},
		{Key: "symbol", Value: symbol},
		{Key: "code", Value: string(code)},
	}
	if errors.IsRetryable(err) {
		s.logger.WarnContext(ctx, "Symbol refresh failed, retrying next cycle",
			append(fields, logger.Field{Key: "error", Value: err.Error()})...,
		)
		return
	}
	s.logger.ErrorContext(ctx, err, fields...)
}

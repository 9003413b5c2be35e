package scheduler

import (
	"context"
	"testing"
	"time"

	ingestDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	ingestMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest/mock"
	portfolioMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio/mock"
	quoteMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1/mock"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	loggerMock "github.com/muhammadchandra19/stock-sentinel/pkg/logger/mock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func quoteOf(symbol, p string) *price.Quote {
	return &price.Quote{Symbol: symbol, Price: decimal.RequireFromString(p), ObservedAt: time.Now()}
}

func TestScheduler_RunCycle(t *testing.T) {
	testCases := []struct {
		name     string
		mockFn   func(p *portfolioMock.MockUsecase, s *quoteMock.MockSource, i *ingestMock.MockUsecase)
		assertFn func(t *testing.T, err error, m *metrics.Metrics)
	}{
		{
			name: "transient failure on one symbol does not stop the others",
			mockFn: func(p *portfolioMock.MockUsecase, s *quoteMock.MockSource, i *ingestMock.MockUsecase) {
				p.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL", "MSFT", "TSLA"}, nil)

				aapl, tsla := quoteOf("AAPL", "190.10"), quoteOf("TSLA", "201.00")
				s.EXPECT().Fetch(gomock.Any(), "AAPL").Return(aapl, nil)
				s.EXPECT().Fetch(gomock.Any(), "MSFT").Return(nil, errors.New(errors.QuoteTransient, "timeout"))
				s.EXPECT().Fetch(gomock.Any(), "TSLA").Return(tsla, nil)

				i.EXPECT().Process(gomock.Any(), ingestDomain.SourcePoll, aapl).Return(nil, nil)
				i.EXPECT().Process(gomock.Any(), ingestDomain.SourcePoll, tsla).Return(nil, nil)
			},
			assertFn: func(t *testing.T, err error, m *metrics.Metrics) {
				require.NoError(t, err)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshSymbolFailures.WithLabelValues("quote_transient")))
				assert.Equal(t, 3.0, testutil.ToFloat64(m.RefreshCycleSymbols))
			},
		},
		{
			name: "ingest failure is counted and skipped",
			mockFn: func(p *portfolioMock.MockUsecase, s *quoteMock.MockSource, i *ingestMock.MockUsecase) {
				p.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL", "NVDA"}, nil)

				aapl, nvda := quoteOf("AAPL", "190.10"), quoteOf("NVDA", "880.00")
				s.EXPECT().Fetch(gomock.Any(), "AAPL").Return(aapl, nil)
				s.EXPECT().Fetch(gomock.Any(), "NVDA").Return(nvda, nil)

				i.EXPECT().Process(gomock.Any(), ingestDomain.SourcePoll, aapl).
					Return(nil, errors.New(errors.StorageFailure, "upsert price"))
				i.EXPECT().Process(gomock.Any(), ingestDomain.SourcePoll, nvda).Return(nil, nil)
			},
			assertFn: func(t *testing.T, err error, m *metrics.Metrics) {
				require.NoError(t, err)
				assert.Equal(t, 1.0, testutil.ToFloat64(m.RefreshSymbolFailures.WithLabelValues("storage_failure")))
			},
		},
		{
			name: "listing active symbols fails",
			mockFn: func(p *portfolioMock.MockUsecase, s *quoteMock.MockSource, i *ingestMock.MockUsecase) {
				p.EXPECT().ActiveSymbols(gomock.Any()).Return(nil, errors.New(errors.StorageFailure, "list active symbols"))
			},
			assertFn: func(t *testing.T, err error, m *metrics.Metrics) {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.StorageFailure))
			},
		},
		{
			name: "no active symbols",
			mockFn: func(p *portfolioMock.MockUsecase, s *quoteMock.MockSource, i *ingestMock.MockUsecase) {
				p.EXPECT().ActiveSymbols(gomock.Any()).Return(nil, nil)
			},
			assertFn: func(t *testing.T, err error, m *metrics.Metrics) {
				require.NoError(t, err)
				assert.Equal(t, 0.0, testutil.ToFloat64(m.RefreshCycleSymbols))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			p := portfolioMock.NewMockUsecase(ctrl)
			s := quoteMock.NewMockSource(ctrl)
			i := ingestMock.NewMockUsecase(ctrl)
			m := metrics.New()

			tc.mockFn(p, s, i)

			sched := New(p, s, i, config.SchedulerConfig{Interval: time.Minute, Concurrency: 2}, logger.NewNop(), m)
			err := sched.RunCycle(context.Background())
			tc.assertFn(t, err, m)
		})
	}
}

func TestScheduler_FailureSeverity(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := portfolioMock.NewMockUsecase(ctrl)
	s := quoteMock.NewMockSource(ctrl)
	i := ingestMock.NewMockUsecase(ctrl)
	log := loggerMock.NewMockInterface(ctrl)

	p.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL", "ZZZZ"}, nil)
	s.EXPECT().Fetch(gomock.Any(), "AAPL").Return(nil, errors.New(errors.QuoteRateLimited, "slow down"))
	notFound := errors.New(errors.QuoteNotFound, "unknown symbol")
	s.EXPECT().Fetch(gomock.Any(), "ZZZZ").Return(nil, notFound)

	log.EXPECT().DebugContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().InfoContext(gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().WarnContext(gomock.Any(), "Symbol refresh failed, retrying next cycle", gomock.Any()).Times(1)
	log.EXPECT().ErrorContext(gomock.Any(), notFound, gomock.Any()).Times(1)

	sched := New(p, s, i, config.SchedulerConfig{Interval: time.Minute, Concurrency: 1}, log, nil)
	require.NoError(t, sched.RunCycle(context.Background()))
}

func TestScheduler_Lifecycle(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := portfolioMock.NewMockUsecase(ctrl)
	s := quoteMock.NewMockSource(ctrl)
	i := ingestMock.NewMockUsecase(ctrl)

	cycles := make(chan struct{}, 16)
	p.EXPECT().ActiveSymbols(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]string, error) {
		select {
		case cycles <- struct{}{}:
		default:
		}
		return nil, nil
	}).MinTimes(2)

	sched := New(p, s, i, config.SchedulerConfig{Interval: 10 * time.Millisecond, Concurrency: 1}, logger.NewNop(), nil)
	assert.Equal(t, StateIdle, sched.State())

	require.NoError(t, sched.Start(context.Background()))
	require.Error(t, sched.Start(context.Background()))

	for n := 0; n < 2; n++ {
		select {
		case <-cycles:
		case <-time.After(2 * time.Second):
			t.Fatal("refresh cycle did not run")
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, sched.Stop(stopCtx))
	assert.Equal(t, StateStopped, sched.State())
	assert.Equal(t, "stopped", sched.State().String())
}

func TestScheduler_StopInterruptsSleep(t *testing.T) {
	ctrl := gomock.NewController(t)
	p := portfolioMock.NewMockUsecase(ctrl)

	ran := make(chan struct{}, 1)
	p.EXPECT().ActiveSymbols(gomock.Any()).DoAndReturn(func(ctx context.Context) ([]string, error) {
		ran <- struct{}{}
		return nil, nil
	}).Times(1)

	sched := New(p, quoteMock.NewMockSource(ctrl), ingestMock.NewMockUsecase(ctrl),
		config.SchedulerConfig{Interval: time.Hour, Concurrency: 1}, logger.NewNop(), nil)
	require.NoError(t, sched.Start(context.Background()))
	<-ran

	stopCtx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	start := time.Now()
	require.NoError(t, sched.Stop(stopCtx))
	assert.Less(t, time.Since(start), time.Second)
}

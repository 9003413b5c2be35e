package price

import (
	"context"
	"errors"
	"testing"
	"time"

	ingestMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest/mock"
	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	quoteMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1/mock"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	priceMock "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price/mock"
	pkgErrors "github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

func quoteAged(age time.Duration, p string) *price.Quote {
	return &price.Quote{
		Symbol:     "AAPL",
		Price:      decimal.RequireFromString(p),
		Volume:     100,
		ObservedAt: now.Add(-age),
	}
}

type deps struct {
	prices *priceMock.MockPriceRepository
	source *quoteMock.MockSource
	ingest *ingestMock.MockUsecase
}

func newUsecase(t *testing.T) (*usecase, deps) {
	ctrl := gomock.NewController(t)
	d := deps{
		prices: priceMock.NewMockPriceRepository(ctrl),
		source: quoteMock.NewMockSource(ctrl),
		ingest: ingestMock.NewMockUsecase(ctrl),
	}
	u := NewUsecase(d.prices, d.source, d.ingest, Config{
		FreshnessWindow: time.Minute,
		StorageTimeout:  time.Second,
		Clock:           func() time.Time { return now },
	}, logger.NewNop(), nil)
	return u, d
}

func TestPrice_GetFresh(t *testing.T) {
	testCases := []struct {
		name    string
		stored  *price.Quote
		present bool
	}{
		{name: "59s old is fresh", stored: quoteAged(59*time.Second, "10"), present: true},
		{name: "exactly the window is fresh", stored: quoteAged(time.Minute, "10"), present: true},
		{name: "61s old is stale", stored: quoteAged(61*time.Second, "10"), present: false},
		{name: "absent", stored: nil, present: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, d := newUsecase(t)
			d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(tc.stored, nil)

			q, err := u.GetFresh(context.Background(), "aapl")
			require.NoError(t, err)
			if tc.present {
				assert.Equal(t, tc.stored, q)
			} else {
				assert.Nil(t, q)
			}
		})
	}
}

func TestPrice_GetQuote(t *testing.T) {
	ctx := context.Background()
	transient := pkgErrors.New(pkgErrors.QuoteTransient, "timeout")

	testCases := []struct {
		name     string
		symbol   string
		mockFn   func(d deps)
		assertFn func(t *testing.T, q *domainPrice.ServedQuote, err error)
	}{
		{
			name:   "invalid symbol",
			symbol: "NOT_A_TICKER",
			mockFn: func(d deps) {},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))
				assert.Nil(t, q)
			},
		},
		{
			name:   "fresh cache",
			symbol: "AAPL",
			mockFn: func(d deps) {
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(quoteAged(59*time.Second, "101"), nil)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				require.NoError(t, err)
				assert.Equal(t, domainPrice.OriginCache, q.Origin)
				assert.False(t, q.Stale)
				assert.True(t, q.Price.Equal(decimal.NewFromInt(101)))
			},
		},
		{
			name:   "stale cache refreshed live",
			symbol: "AAPL",
			mockFn: func(d deps) {
				live := quoteAged(0, "105")
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(quoteAged(61*time.Second, "101"), nil)
				d.source.EXPECT().Fetch(ctx, "AAPL").Return(live, nil)
				d.ingest.EXPECT().Process(ctx, "serve", live).Return(nil, nil)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				require.NoError(t, err)
				assert.Equal(t, domainPrice.OriginLive, q.Origin)
				assert.True(t, q.Price.Equal(decimal.NewFromInt(105)))
			},
		},
		{
			name:   "live quote served even if storing it fails",
			symbol: "AAPL",
			mockFn: func(d deps) {
				live := quoteAged(0, "105")
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(nil, pkgErrors.New(pkgErrors.StorageFailure, "down"))
				d.source.EXPECT().Fetch(ctx, "AAPL").Return(live, nil)
				d.ingest.EXPECT().Process(ctx, "serve", live).Return(nil, pkgErrors.New(pkgErrors.StorageFailure, "down"))
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				require.NoError(t, err)
				assert.Equal(t, domainPrice.OriginLive, q.Origin)
			},
		},
		{
			name:   "fetch failure falls back to stale",
			symbol: "AAPL",
			mockFn: func(d deps) {
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(quoteAged(10*time.Minute, "101"), nil).Times(2)
				d.source.EXPECT().Fetch(ctx, "AAPL").Return(nil, transient)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				require.NoError(t, err)
				assert.True(t, q.Stale)
				assert.Equal(t, domainPrice.OriginStale, q.Origin)
				assert.True(t, q.Price.Equal(decimal.NewFromInt(101)))
			},
		},
		{
			name:   "unknown symbol",
			symbol: "ZZZZ",
			mockFn: func(d deps) {
				d.prices.EXPECT().Get(gomock.Any(), "ZZZZ").Return(nil, nil).Times(2)
				d.source.EXPECT().Fetch(ctx, "ZZZZ").Return(nil, pkgErrors.New(pkgErrors.QuoteNotFound, "no such symbol"))
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				assert.Equal(t, pkgErrors.QuoteNotFound, pkgErrors.CodeOf(err))
				assert.Nil(t, q)
			},
		},
		{
			name:   "nothing cached and fetch failed",
			symbol: "AAPL",
			mockFn: func(d deps) {
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(nil, nil).Times(2)
				d.source.EXPECT().Fetch(ctx, "AAPL").Return(nil, transient)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				assert.Equal(t, pkgErrors.QuoteUnavailable, pkgErrors.CodeOf(err))
				assert.ErrorIs(t, err, transient)
				assert.Nil(t, q)
			},
		},
		{
			name:   "storage down and fetch failed",
			symbol: "AAPL",
			mockFn: func(d deps) {
				down := pkgErrors.Wrap(pkgErrors.StorageFailure, errors.New("connection refused"), "get price")
				d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(nil, down).Times(2)
				d.source.EXPECT().Fetch(ctx, "AAPL").Return(nil, transient)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				assert.Equal(t, pkgErrors.QuoteUnavailable, pkgErrors.CodeOf(err))
				assert.Nil(t, q)
			},
		},
		{
			name:   "stale value stored while the fetch was failing",
			symbol: "AAPL",
			mockFn: func(d deps) {
				gomock.InOrder(
					d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(nil, nil),
					d.source.EXPECT().Fetch(ctx, "AAPL").Return(nil, transient),
					d.prices.EXPECT().Get(gomock.Any(), "AAPL").Return(quoteAged(2*time.Minute, "99"), nil),
				)
			},
			assertFn: func(t *testing.T, q *domainPrice.ServedQuote, err error) {
				require.NoError(t, err)
				assert.Equal(t, domainPrice.OriginStale, q.Origin)
				assert.True(t, q.Price.Equal(decimal.NewFromInt(99)))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			u, d := newUsecase(t)
			tc.mockFn(d)

			q, err := u.GetQuote(ctx, tc.symbol)
			tc.assertFn(t, q, err)
		})
	}
}

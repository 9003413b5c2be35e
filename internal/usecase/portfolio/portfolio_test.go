package portfolio

import (
	"context"
	"testing"
	"time"

	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	priceMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/price/mock"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/memory"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
	holdingMock "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding/mock"
	priceInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	pkgErrors "github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func served(symbol, p string, stale bool) *domainPrice.ServedQuote {
	return &domainPrice.ServedQuote{
		Quote: priceInfra.Quote{Symbol: symbol, Price: decimal.RequireFromString(p), ObservedAt: now},
		Stale: stale,
	}
}

func TestPortfolio_Summary(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	ctx := context.Background()
	store := memory.NewHoldingStore()
	prices := priceMock.NewMockUsecase(ctrl)
	u := NewUsecase(store, prices, time.Second, clock, logger.NewNop())

	for _, p := range []holding.Position{
		{UserID: 1, Symbol: "AAPL", Shares: decimal.NewFromInt(10), PurchasePrice: decimal.NewFromInt(150)},
		{UserID: 1, Symbol: "AAPL", Shares: decimal.NewFromInt(5), PurchasePrice: decimal.NewFromInt(180)},
		{UserID: 1, Symbol: "MSFT", Shares: decimal.NewFromInt(2), PurchasePrice: decimal.NewFromInt(400)},
		{UserID: 1, Symbol: "ZZZZ", Shares: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(10)},
		{UserID: 2, Symbol: "TSLA", Shares: decimal.NewFromInt(1), PurchasePrice: decimal.NewFromInt(10)},
	} {
		position := p
		require.NoError(t, u.AddPosition(ctx, &position))
	}

	// one lookup per distinct symbol
	prices.EXPECT().GetQuote(ctx, "AAPL").Return(served("AAPL", "170", false), nil).Times(1)
	prices.EXPECT().GetQuote(ctx, "MSFT").Return(served("MSFT", "380", true), nil).Times(1)
	prices.EXPECT().GetQuote(ctx, "ZZZZ").Return(nil, pkgErrors.New(pkgErrors.QuoteNotFound, "unknown"))

	summary, err := u.Summary(ctx, 1)
	require.NoError(t, err)
	require.Len(t, summary.Positions, 4)

	aapl := summary.Positions[0]
	assert.Equal(t, "AAPL", aapl.Symbol)
	assert.True(t, aapl.CostBasis.Equal(decimal.NewFromInt(1500)))
	assert.True(t, aapl.MarketValue.Equal(decimal.NewFromInt(1700)))
	assert.True(t, aapl.GainLoss.Equal(decimal.NewFromInt(200)))
	assert.True(t, aapl.GainLossPct.Equal(decimal.RequireFromString("13.33")))

	msft := summary.Positions[2]
	assert.True(t, msft.Stale)
	assert.True(t, msft.GainLoss.Equal(decimal.NewFromInt(-40)))

	zzzz := summary.Positions[3]
	assert.Nil(t, zzzz.CurrentPrice)
	assert.Nil(t, zzzz.MarketValue)

	// 1700 + 850 + 760 against 1500 + 900 + 800
	assert.True(t, summary.TotalValue.Equal(decimal.NewFromInt(3310)), summary.TotalValue.String())
	assert.True(t, summary.TotalCost.Equal(decimal.NewFromInt(3200)), summary.TotalCost.String())
	assert.True(t, summary.TotalGainLoss.Equal(decimal.NewFromInt(110)))
	assert.True(t, summary.TotalGainLossPct.Equal(decimal.RequireFromString("3.44")), summary.TotalGainLossPct.String())
}

func TestPortfolio_AddPositionValidation(t *testing.T) {
	u := NewUsecase(memory.NewHoldingStore(), nil, time.Second, clock, logger.NewNop())

	err := u.AddPosition(context.Background(), &holding.Position{UserID: 1, Symbol: "AAPL", Shares: decimal.Zero, PurchasePrice: decimal.NewFromInt(-1)})
	require.Error(t, err)
	assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))
	assert.Contains(t, err.Error(), "shares")
	assert.Contains(t, err.Error(), "purchasePrice")
}

func TestPortfolio_Watchlist(t *testing.T) {
	ctx := context.Background()
	u := NewUsecase(memory.NewHoldingStore(), nil, time.Second, clock, logger.NewNop())

	item, err := u.AddWatch(ctx, 1, " nvda ")
	require.NoError(t, err)
	assert.Equal(t, "NVDA", item.Symbol)
	assert.Equal(t, now, item.AddedAt)

	again, err := u.AddWatch(ctx, 1, "NVDA")
	require.NoError(t, err)
	assert.Equal(t, item.ID, again.ID)

	_, err = u.AddWatch(ctx, 1, "N V D A")
	assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))

	symbols, err := u.ActiveSymbols(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"NVDA"}, symbols)

	require.NoError(t, u.RemoveWatch(ctx, 1, "nvda"))
	assert.True(t, pkgErrors.HasCode(u.RemoveWatch(ctx, 1, "NVDA"), pkgErrors.GeneralNotFoundError))

	items, err := u.ListWatchlist(ctx, 1)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestPortfolio_ActiveSymbolsStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := holdingMock.NewMockHoldingRepository(ctrl)
	repo.EXPECT().ActiveSymbols(gomock.Any()).Return(nil, pkgErrors.New(pkgErrors.StorageFailure, "down"))

	u := NewUsecase(repo, nil, time.Second, clock, logger.NewNop())
	_, err := u.ActiveSymbols(context.Background())
	assert.True(t, pkgErrors.HasCode(err, pkgErrors.StorageFailure))
}

package portfolio

import (
	"context"
	"fmt"
	"time"

	domainPortfolio "github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio"
	domainPrice "github.com/muhammadchandra19/stock-sentinel/internal/domain/price"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

type usecase struct {
	holdingRepository holding.HoldingRepository
	prices            domainPrice.Usecase
	storageTimeout    time.Duration
	clock             util.Clock
	logger            logger.Interface
}

// NewUsecase creates a new portfolio usecase.
func NewUsecase(
	holdingRepository holding.HoldingRepository,
	prices domainPrice.Usecase,
	storageTimeout time.Duration,
	clock util.Clock,
	logger logger.Interface,
) *usecase {
	if clock == nil {
		clock = util.SystemClock
	}
	return &usecase{
		holdingRepository: holdingRepository,
		prices:            prices,
		storageTimeout:    storageTimeout,
		clock:             clock,
		logger:            logger,
	}
}

func (u *usecase) AddWatch(ctx context.Context, userID int64, symbol string) (*holding.WatchlistItem, error) {
	symbol, ok := util.NormalizeSymbol(symbol)
	if !ok {
		return nil, invalid(fmt.Sprintf("invalid symbol %q", symbol), "symbol")
	}

	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	item := &holding.WatchlistItem{UserID: userID, Symbol: symbol, AddedAt: u.clock()}
	if err := u.holdingRepository.AddWatch(ctx, item); err != nil {
		return nil, errors.TracerFromError(err)
	}
	return item, nil
}

func (u *usecase) RemoveWatch(ctx context.Context, userID int64, symbol string) error {
	symbol, ok := util.NormalizeSymbol(symbol)
	if !ok {
		return invalid(fmt.Sprintf("invalid symbol %q", symbol), "symbol")
	}

	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	removed, err := u.holdingRepository.RemoveWatch(ctx, userID, symbol)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if !removed {
		return errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("%s is not on the watchlist", symbol), errors.GeneralNotFoundError, "symbol"))
	}
	return nil
}

func (u *usecase) ListWatchlist(ctx context.Context, userID int64) ([]*holding.WatchlistItem, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	items, err := u.holdingRepository.ListWatchlist(ctx, userID)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return items, nil
}

// AddPosition validates and records a simulated purchase.
func (u *usecase) AddPosition(ctx context.Context, position *holding.Position) error {
	validation := errors.NewBaseError()

	symbol, ok := util.NormalizeSymbol(position.Symbol)
	if !ok {
		validation.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("invalid symbol %q", position.Symbol), errors.InvalidInput, "symbol"))
	}
	if !position.Shares.GreaterThan(decimal.Zero) {
		validation.AddErrorDetails(errors.NewErrorDetails("shares must be greater than zero", errors.InvalidInput, "shares"))
	}
	if !position.PurchasePrice.GreaterThan(decimal.Zero) {
		validation.AddErrorDetails(errors.NewErrorDetails("purchase price must be greater than zero", errors.InvalidInput, "purchasePrice"))
	}
	if validation.HasDetails() {
		return errors.TracerFromError(validation)
	}

	position.Symbol = symbol
	if position.PurchasedAt.IsZero() {
		position.PurchasedAt = u.clock()
	}

	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	if err := u.holdingRepository.AddPosition(ctx, position); err != nil {
		return errors.TracerFromError(err)
	}
	return nil
}

// Summary values every position at its served quote. Positions whose quote
// cannot be obtained are listed unpriced and left out of the totals.
func (u *usecase) Summary(ctx context.Context, userID int64) (*domainPortfolio.Summary, error) {
	listCtx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	positions, err := u.holdingRepository.ListPositions(listCtx, userID)
	cancel()
	if err != nil {
		return nil, errors.TracerFromError(err)
	}

	summary := &domainPortfolio.Summary{
		Positions:     make([]*domainPortfolio.Valuation, 0, len(positions)),
		TotalValue:    decimal.Zero,
		TotalCost:     decimal.Zero,
		TotalGainLoss: decimal.Zero,
	}

	quotes := make(map[string]*domainPrice.ServedQuote)
	for _, p := range positions {
		v := &domainPortfolio.Valuation{Position: *p, CostBasis: p.CostBasis()}
		summary.Positions = append(summary.Positions, v)

		q, seen := quotes[p.Symbol]
		if !seen {
			q, err = u.prices.GetQuote(ctx, p.Symbol)
			if err != nil {
				u.logger.WarnContext(ctx, "Position left unpriced",
					logger.Field{Key: "symbol", Value: p.Symbol},
					logger.Field{Key: "error", Value: err.Error()},
				)
				q = nil
			}
			quotes[p.Symbol] = q
		}
		if q == nil {
			continue
		}

		current := q.Price
		value := p.Shares.Mul(current)
		gain := value.Sub(v.CostBasis)
		v.CurrentPrice = &current
		v.MarketValue = &value
		v.GainLoss = &gain
		v.Stale = q.Stale
		if v.CostBasis.IsPositive() {
			pct := gain.Div(v.CostBasis).Mul(hundred).Round(2)
			v.GainLossPct = &pct
		}

		summary.TotalValue = summary.TotalValue.Add(value)
		summary.TotalCost = summary.TotalCost.Add(v.CostBasis)
		summary.TotalGainLoss = summary.TotalGainLoss.Add(gain)
	}

	if summary.TotalCost.IsPositive() {
		summary.TotalGainLossPct = summary.TotalGainLoss.Div(summary.TotalCost).Mul(hundred).Round(2)
	}

	return summary, nil
}

// ActiveSymbols returns every symbol referenced by any watchlist or portfolio.
func (u *usecase) ActiveSymbols(ctx context.Context) ([]string, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	symbols, err := u.holdingRepository.ActiveSymbols(ctx)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return symbols, nil
}

func invalid(message, field string) error {
	return errors.TracerFromError(errors.NewErrorDetails(message, errors.InvalidInput, field))
}

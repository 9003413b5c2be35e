package alert

import (
	"context"
	"fmt"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"github.com/shopspring/decimal"
)

type usecase struct {
	alertRepository alert.AlertRepository
	storageTimeout  time.Duration
	clock           util.Clock
	logger          logger.Interface
}

// NewUsecase creates a new alert usecase.
func NewUsecase(alertRepository alert.AlertRepository, storageTimeout time.Duration, clock util.Clock, logger logger.Interface) *usecase {
	if clock == nil {
		clock = util.SystemClock
	}
	return &usecase{
		alertRepository: alertRepository,
		storageTimeout:  storageTimeout,
		clock:           clock,
		logger:          logger,
	}
}

// Create validates and stores a new alert. Every invalid field is reported.
func (u *usecase) Create(ctx context.Context, a *alert.Alert) error {
	validation := errors.NewBaseError()

	if a.UserID <= 0 {
		validation.AddErrorDetails(errors.NewErrorDetails("user id is required", errors.InvalidInput, "userId"))
	}

	symbol, ok := util.NormalizeSymbol(a.Symbol)
	if !ok {
		validation.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("invalid symbol %q", a.Symbol), errors.InvalidInput, "symbol"))
	}

	if !a.TargetPrice.GreaterThan(decimal.Zero) {
		validation.AddErrorDetails(errors.NewErrorDetails("target price must be greater than zero", errors.InvalidInput, "targetPrice"))
	}

	if !a.Direction.IsValid() {
		validation.AddErrorDetails(errors.NewErrorDetails(fmt.Sprintf("direction must be %q or %q", alert.DirectionAbove, alert.DirectionBelow), errors.InvalidInput, "direction"))
	}

	if validation.HasDetails() {
		return errors.TracerFromError(validation)
	}

	a.Symbol = symbol
	a.Triggered = false
	a.TriggeredAt = nil
	a.CreatedAt = u.clock()

	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	if err := u.alertRepository.Create(ctx, a); err != nil {
		u.logger.ErrorContext(ctx, err, logger.Field{Key: "action", Value: "create alert"})
		return errors.TracerFromError(err)
	}

	u.logger.InfoContext(ctx, "Alert created",
		logger.Field{Key: "alertId", Value: a.ID},
		logger.Field{Key: "symbol", Value: a.Symbol},
		logger.Field{Key: "direction", Value: a.Direction},
		logger.Field{Key: "target", Value: a.TargetPrice.String()},
	)
	return nil
}

// ListFor returns the user's alerts, newest first.
func (u *usecase) ListFor(ctx context.Context, filter alert.Filter) ([]*alert.Alert, error) {
	if filter.Symbol != "" {
		symbol, ok := util.NormalizeSymbol(filter.Symbol)
		if !ok {
			return nil, errors.TracerFromError(errors.NewErrorDetails(
				fmt.Sprintf("invalid symbol %q", filter.Symbol), errors.InvalidInput, "symbol"))
		}
		filter.Symbol = symbol
	}

	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	alerts, err := u.alertRepository.ListFor(ctx, filter)
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return alerts, nil
}

// Evaluate triggers every pending alert on symbol crossed by price. It
// returns only the alerts flipped by this call.
func (u *usecase) Evaluate(ctx context.Context, symbol string, price decimal.Decimal) ([]*alert.Alert, error) {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	triggered, err := u.alertRepository.Evaluate(ctx, symbol, price, u.clock())
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	return triggered, nil
}

// Delete removes one of the user's alerts.
func (u *usecase) Delete(ctx context.Context, userID, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, u.storageTimeout)
	defer cancel()

	deleted, err := u.alertRepository.Delete(ctx, userID, id)
	if err != nil {
		return errors.TracerFromError(err)
	}
	if !deleted {
		return errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("alert %d not found", id), errors.GeneralNotFoundError, "id"))
	}
	return nil
}

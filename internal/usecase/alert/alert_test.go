package alert

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/memory"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	alertMock "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert/mock"
	pkgErrors "github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var now = time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

func clock() time.Time { return now }

func TestAlert_Create(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name     string
		input    alert.Alert
		mockFn   func(repo *alertMock.MockAlertRepository)
		assertFn func(t *testing.T, a *alert.Alert, err error)
	}{
		{
			name:  "valid",
			input: alert.Alert{UserID: 1, Symbol: "brk.b", TargetPrice: decimal.RequireFromString("410.5"), Direction: alert.DirectionBelow},
			mockFn: func(repo *alertMock.MockAlertRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, a *alert.Alert) error {
					a.ID = 9
					return nil
				})
			},
			assertFn: func(t *testing.T, a *alert.Alert, err error) {
				require.NoError(t, err)
				assert.Equal(t, int64(9), a.ID)
				assert.Equal(t, "BRK.B", a.Symbol)
				assert.Equal(t, now, a.CreatedAt)
				assert.False(t, a.Triggered)
			},
		},
		{
			name:   "zero target",
			input:  alert.Alert{UserID: 1, Symbol: "AAPL", TargetPrice: decimal.Zero, Direction: alert.DirectionAbove},
			mockFn: func(repo *alertMock.MockAlertRepository) {},
			assertFn: func(t *testing.T, a *alert.Alert, err error) {
				require.Error(t, err)
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))
				assert.Contains(t, err.Error(), "targetPrice")
			},
		},
		{
			name:   "negative target",
			input:  alert.Alert{UserID: 1, Symbol: "AAPL", TargetPrice: decimal.NewFromInt(-5), Direction: alert.DirectionAbove},
			mockFn: func(repo *alertMock.MockAlertRepository) {},
			assertFn: func(t *testing.T, a *alert.Alert, err error) {
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))
			},
		},
		{
			name:   "every invalid field reported",
			input:  alert.Alert{Symbol: "toolong", TargetPrice: decimal.NewFromInt(1), Direction: "sideways"},
			mockFn: func(repo *alertMock.MockAlertRepository) {},
			assertFn: func(t *testing.T, a *alert.Alert, err error) {
				var base *pkgErrors.BaseError
				require.True(t, stderrors.As(err, &base))
				require.Len(t, base.GetDetails(), 3)
				for _, d := range base.GetDetails() {
					assert.Equal(t, pkgErrors.InvalidInput.String(), d.Code)
				}
			},
		},
		{
			name:  "storage failure",
			input: alert.Alert{UserID: 1, Symbol: "AAPL", TargetPrice: decimal.NewFromInt(1), Direction: alert.DirectionAbove},
			mockFn: func(repo *alertMock.MockAlertRepository) {
				repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return(pkgErrors.New(pkgErrors.StorageFailure, "insert"))
			},
			assertFn: func(t *testing.T, a *alert.Alert, err error) {
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.StorageFailure))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := alertMock.NewMockAlertRepository(ctrl)
			tc.mockFn(repo)

			u := NewUsecase(repo, time.Second, clock, logger.NewNop())
			a := tc.input
			err := u.Create(ctx, &a)
			tc.assertFn(t, &a, err)
		})
	}
}

func TestAlert_EvaluateTwiceTriggersOnce(t *testing.T) {
	ctx := context.Background()
	u := NewUsecase(memory.NewAlertStore(), time.Second, clock, logger.NewNop())

	for _, target := range []int64{90, 95, 120} {
		require.NoError(t, u.Create(ctx, &alert.Alert{UserID: 1, Symbol: "AAPL", TargetPrice: decimal.NewFromInt(target), Direction: alert.DirectionAbove}))
	}

	first, err := u.Evaluate(ctx, "AAPL", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Len(t, first, 2)

	second, err := u.Evaluate(ctx, "AAPL", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Empty(t, second)

	// a later drop never reverts a trigger
	_, err = u.Evaluate(ctx, "AAPL", decimal.NewFromInt(50))
	require.NoError(t, err)

	alerts, err := u.ListFor(ctx, alert.Filter{UserID: 1, Symbol: "aapl"})
	require.NoError(t, err)
	triggered := 0
	for _, a := range alerts {
		if a.Triggered {
			triggered++
		}
	}
	assert.Equal(t, 2, triggered)
}

func TestAlert_Delete(t *testing.T) {
	ctx := context.Background()
	u := NewUsecase(memory.NewAlertStore(), time.Second, clock, logger.NewNop())

	a := &alert.Alert{UserID: 1, Symbol: "AAPL", TargetPrice: decimal.NewFromInt(1), Direction: alert.DirectionAbove}
	require.NoError(t, u.Create(ctx, a))

	err := u.Delete(ctx, 2, a.ID)
	assert.True(t, pkgErrors.HasCode(err, pkgErrors.GeneralNotFoundError))

	require.NoError(t, u.Delete(ctx, 1, a.ID))
	assert.True(t, pkgErrors.HasCode(u.Delete(ctx, 1, a.ID), pkgErrors.GeneralNotFoundError))
}

func TestAlert_ListForRejectsBadSymbol(t *testing.T) {
	u := NewUsecase(memory.NewAlertStore(), time.Second, clock, logger.NewNop())
	_, err := u.ListFor(context.Background(), alert.Filter{UserID: 1, Symbol: "12"})
	assert.True(t, pkgErrors.HasCode(err, pkgErrors.InvalidInput))
}

package alert

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	pkgErrors "github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	mockLogger "github.com/muhammadchandra19/stock-sentinel/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/stock-sentinel/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var scanArgs = []any{
	gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
	gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(),
}

func expectAlertRow(rows *mockPg.MockRowsInterface, a Alert) {
	rows.EXPECT().Next().Return(true)
	rows.EXPECT().Scan(scanArgs...).DoAndReturn(func(dest ...any) error {
		*dest[0].(*int64) = a.ID
		*dest[1].(*int64) = a.UserID
		*dest[2].(*string) = a.Symbol
		*dest[3].(*decimal.Decimal) = a.TargetPrice
		*dest[4].(*Direction) = a.Direction
		*dest[5].(*bool) = a.Triggered
		*dest[6].(*time.Time) = a.CreatedAt
		*dest[7].(**time.Time) = a.TriggeredAt
		return nil
	})
}

func TestAlert_Evaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	p := decimal.RequireFromString("100.01")

	testCases := []struct {
		name     string
		mockFn   func(pg *mockPg.MockPostgreSQLClient, rows *mockPg.MockRowsInterface, log *mockLogger.MockInterface)
		assertFn func(t *testing.T, triggered []*Alert, err error)
	}{
		{
			name: "flips matching alerts",
			mockFn: func(pg *mockPg.MockPostgreSQLClient, rows *mockPg.MockRowsInterface, log *mockLogger.MockInterface) {
				pg.EXPECT().Query(ctx, evaluateQuery, "AAPL", p, now).Return(rows, nil)
				expectAlertRow(rows, Alert{
					ID:          7,
					UserID:      1,
					Symbol:      "AAPL",
					TargetPrice: decimal.NewFromInt(100),
					Direction:   DirectionAbove,
					Triggered:   true,
					CreatedAt:   now.Add(-time.Hour),
					TriggeredAt: &now,
				})
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
				log.EXPECT().InfoContext(ctx, "Triggered alerts",
					logger.Field{Key: "symbol", Value: "AAPL"},
					logger.Field{Key: "price", Value: "100.01"},
					logger.Field{Key: "count", Value: 1},
				)
			},
			assertFn: func(t *testing.T, triggered []*Alert, err error) {
				require.NoError(t, err)
				require.Len(t, triggered, 1)
				assert.Equal(t, int64(7), triggered[0].ID)
				assert.True(t, triggered[0].Triggered)
				assert.Equal(t, now, *triggered[0].TriggeredAt)
			},
		},
		{
			name: "nothing eligible",
			mockFn: func(pg *mockPg.MockPostgreSQLClient, rows *mockPg.MockRowsInterface, log *mockLogger.MockInterface) {
				pg.EXPECT().Query(ctx, evaluateQuery, "AAPL", p, now).Return(rows, nil)
				rows.EXPECT().Next().Return(false)
				rows.EXPECT().Err().Return(nil)
				rows.EXPECT().Close()
			},
			assertFn: func(t *testing.T, triggered []*Alert, err error) {
				require.NoError(t, err)
				assert.Empty(t, triggered)
			},
		},
		{
			name: "storage failure",
			mockFn: func(pg *mockPg.MockPostgreSQLClient, rows *mockPg.MockRowsInterface, log *mockLogger.MockInterface) {
				pg.EXPECT().Query(ctx, evaluateQuery, "AAPL", p, now).Return(nil, errors.New("deadlock detected"))
			},
			assertFn: func(t *testing.T, triggered []*Alert, err error) {
				assert.Nil(t, triggered)
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.StorageFailure))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			rows := mockPg.NewMockRowsInterface(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			tc.mockFn(pg, rows, log)

			triggered, err := NewRepository(pg, log).Evaluate(ctx, "AAPL", p, now)
			tc.assertFn(t, triggered, err)
		})
	}
}

func TestAlert_ListFor(t *testing.T) {
	ctx := context.Background()

	testCases := []struct {
		name   string
		filter Filter
		query  string
		args   []any
	}{
		{
			name:   "all symbols",
			filter: Filter{UserID: 3},
			query:  "SELECT " + columns + " FROM price_alerts WHERE user_id = $1 ORDER BY created_at DESC, id DESC",
			args:   []any{int64(3)},
		},
		{
			name:   "one symbol",
			filter: Filter{UserID: 3, Symbol: "TSLA"},
			query:  "SELECT " + columns + " FROM price_alerts WHERE user_id = $1 AND symbol = $2 ORDER BY created_at DESC, id DESC",
			args:   []any{int64(3), "TSLA"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			rows := mockPg.NewMockRowsInterface(ctrl)

			pg.EXPECT().Query(ctx, tc.query, tc.args...).Return(rows, nil)
			rows.EXPECT().Next().Return(false)
			rows.EXPECT().Err().Return(nil)
			rows.EXPECT().Close()

			alerts, err := NewRepository(pg, mockLogger.NewMockInterface(ctrl)).ListFor(ctx, tc.filter)
			require.NoError(t, err)
			assert.Empty(t, alerts)
		})
	}
}

func TestAlert_Delete(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pg := mockPg.NewMockPostgreSQLClient(ctrl)
	repo := NewRepository(pg, mockLogger.NewMockInterface(ctrl))

	pg.EXPECT().Exec(ctx, deleteQuery, int64(9), int64(1)).Return(pgconn.NewCommandTag("DELETE 1"), nil)
	pg.EXPECT().Exec(ctx, deleteQuery, int64(10), int64(1)).Return(pgconn.NewCommandTag("DELETE 0"), nil)

	deleted, err := repo.Delete(ctx, 1, 9)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = repo.Delete(ctx, 1, 10)
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestDirection_Crossed(t *testing.T) {
	target := decimal.NewFromInt(100)

	testCases := []struct {
		name      string
		direction Direction
		price     string
		want      bool
	}{
		{name: "above, below target", direction: DirectionAbove, price: "99", want: false},
		{name: "above, equal target", direction: DirectionAbove, price: "100", want: false},
		{name: "above, just over", direction: DirectionAbove, price: "100.01", want: true},
		{name: "below, just under", direction: DirectionBelow, price: "99.99", want: true},
		{name: "below, equal target", direction: DirectionBelow, price: "100.00", want: false},
		{name: "unknown direction", direction: "sideways", price: "1", want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.direction.Crossed(decimal.RequireFromString(tc.price), target))
		})
	}
}

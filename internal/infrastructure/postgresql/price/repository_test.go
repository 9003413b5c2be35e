package price

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgErrors "github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	mockLogger "github.com/muhammadchandra19/stock-sentinel/pkg/logger/mock"
	mockPg "github.com/muhammadchandra19/stock-sentinel/pkg/postgresql/mock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
)

func TestPrice_Upsert(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(pg *mockPg.MockPostgreSQLClient, log *mockLogger.MockInterface, q *Quote)
		assertFn func(t *testing.T, err error)
	}{
		{
			name: "success",
			mockFn: func(pg *mockPg.MockPostgreSQLClient, log *mockLogger.MockInterface, q *Quote) {
				pg.EXPECT().
					Exec(ctx, upsertQuery, q.Symbol, q.Price, q.Volume, q.ObservedAt).
					Return(pgconn.CommandTag{}, nil)

				log.EXPECT().DebugContext(ctx, "Upserted price",
					logger.Field{Key: "symbol", Value: "AAPL"},
					logger.Field{Key: "commandTag", Value: ""},
				)
			},
			assertFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name: "storage failure",
			mockFn: func(pg *mockPg.MockPostgreSQLClient, log *mockLogger.MockInterface, q *Quote) {
				pg.EXPECT().
					Exec(ctx, upsertQuery, q.Symbol, q.Price, q.Volume, q.ObservedAt).
					Return(pgconn.CommandTag{}, errors.New("connection reset"))
			},
			assertFn: func(t *testing.T, err error) {
				assert.Error(t, err)
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.StorageFailure))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			log := mockLogger.NewMockInterface(ctrl)
			repo := NewRepository(pg, log)

			q := &Quote{
				Symbol:     "AAPL",
				Price:      decimal.RequireFromString("189.25"),
				Volume:     1200,
				ObservedAt: now,
			}
			tc.mockFn(pg, log, q)

			tc.assertFn(t, repo.Upsert(ctx, q))
		})
	}
}

func TestPrice_Get(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		mockFn   func(row *mockPg.MockRow)
		assertFn func(t *testing.T, q *Quote, err error)
	}{
		{
			name: "found",
			mockFn: func(row *mockPg.MockRow) {
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(dest ...any) error {
						*dest[0].(*string) = "MSFT"
						*dest[1].(*decimal.Decimal) = decimal.RequireFromString("410.5")
						*dest[2].(*int64) = 300
						*dest[3].(*time.Time) = now
						return nil
					})
			},
			assertFn: func(t *testing.T, q *Quote, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "MSFT", q.Symbol)
				assert.True(t, q.Price.Equal(decimal.RequireFromString("410.50")))
				assert.Equal(t, int64(300), q.Volume)
				assert.Equal(t, now, q.ObservedAt)
			},
		},
		{
			name: "absent",
			mockFn: func(row *mockPg.MockRow) {
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(pgx.ErrNoRows)
			},
			assertFn: func(t *testing.T, q *Quote, err error) {
				assert.NoError(t, err)
				assert.Nil(t, q)
			},
		},
		{
			name: "storage failure",
			mockFn: func(row *mockPg.MockRow) {
				row.EXPECT().
					Scan(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
					Return(errors.New("timeout"))
			},
			assertFn: func(t *testing.T, q *Quote, err error) {
				assert.Nil(t, q)
				assert.True(t, pkgErrors.HasCode(err, pkgErrors.StorageFailure))
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			pg := mockPg.NewMockPostgreSQLClient(ctrl)
			row := mockPg.NewMockRow(ctrl)
			repo := NewRepository(pg, mockLogger.NewMockInterface(ctrl))

			pg.EXPECT().QueryRow(ctx, getQuery, "MSFT").Return(row)
			tc.mockFn(row)

			q, err := repo.Get(ctx, "MSFT")
			tc.assertFn(t, q, err)
		})
	}
}

func TestQuote_IsFresh(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC)
	window := 60 * time.Second

	testCases := []struct {
		name string
		age  time.Duration
		want bool
	}{
		{name: "just written", age: 0, want: true},
		{name: "59 seconds old", age: 59 * time.Second, want: true},
		{name: "exactly at window", age: 60 * time.Second, want: true},
		{name: "61 seconds old", age: 61 * time.Second, want: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &Quote{Symbol: "AAPL", ObservedAt: now.Add(-tc.age)}
			assert.Equal(t, tc.want, q.IsFresh(now, window))
		})
	}
}

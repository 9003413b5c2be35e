package interval

import (
	"testing"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetInterval(t *testing.T) {
	testCases := []struct {
		name    string
		want    Interval
		wantErr bool
	}{
		{name: "1d", want: Interval1d},
		{name: "1w", want: Interval1w},
		{name: "", want: Interval1d},
		{name: "5m", wantErr: true},
		{name: "3d", wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := GetInterval(tc.name)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.InvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCalculateBucketTime(t *testing.T) {
	ts := time.Date(2024, 3, 7, 14, 37, 12, 0, time.UTC) // Thursday

	testCases := []struct {
		interval Interval
		want     time.Time
	}{
		{Interval1d, time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)},
		{Interval1w, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)},
	}

	for _, tc := range testCases {
		t.Run(tc.interval.Name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.interval.CalculateBucketTime(ts))
		})
	}
}

func TestCalculateBucketTime_SundayBelongsToPreviousWeek(t *testing.T) {
	sunday := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC), Interval1w.CalculateBucketTime(sunday))
	assert.True(t, Interval1w.IsInBucket(sunday, time.Date(2024, 3, 4, 16, 0, 0, 0, time.UTC)))
	assert.False(t, Interval1w.IsInBucket(sunday, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC)))
}

func TestResample(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 3, d, 0, 0, 0, 0, time.UTC) }
	daily := []Bar{
		{Timestamp: day(6), Open: 10, High: 12, Low: 9, Close: 11, Volume: 100}, // Wednesday
		{Timestamp: day(7), Open: 11, High: 13, Low: 10, Close: 12, Volume: 50},
		{Timestamp: day(8), Open: 12, High: 12.5, Low: 8, Close: 9, Volume: 70},
		{Timestamp: day(11), Open: 9, High: 10, Low: 8.5, Close: 9.5, Volume: 30}, // next Monday
	}

	weekly := Interval1w.Resample(daily)
	require.Len(t, weekly, 2)
	assert.Equal(t, Bar{Timestamp: day(4), Open: 10, High: 13, Low: 8, Close: 9, Volume: 220}, weekly[0])
	assert.Equal(t, Bar{Timestamp: day(11), Open: 9, High: 10, Low: 8.5, Close: 9.5, Volume: 30}, weekly[1])
	assert.Equal(t, day(6), daily[0].Timestamp, "input must not change")

	assert.Equal(t, daily, Interval1d.Resample(daily))
	assert.Empty(t, Interval1w.Resample(nil))
}

func TestMerge(t *testing.T) {
	day := time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC)
	bars := []Bar{
		{Timestamp: day.AddDate(0, 0, -1), Open: 10, High: 12, Low: 9, Close: 11, Volume: 100},
		{Timestamp: day, Open: 11, High: 11.5, Low: 10.5, Close: 11.2, Volume: 50},
	}

	t.Run("same bucket updates last bar", func(t *testing.T) {
		merged := Interval1d.Merge(bars, Tick{Timestamp: day.Add(15 * time.Hour), Price: 12.5, Volume: 80})
		require.Len(t, merged, 2)
		assert.Equal(t, 12.5, merged[1].Close)
		assert.Equal(t, 12.5, merged[1].High)
		assert.Equal(t, 10.5, merged[1].Low)
		assert.Equal(t, int64(80), merged[1].Volume)
		assert.Equal(t, 11.2, bars[1].Close, "input must not change")
	})

	t.Run("later bucket appends", func(t *testing.T) {
		merged := Interval1d.Merge(bars, Tick{Timestamp: day.Add(26 * time.Hour), Price: 13, Volume: 5})
		require.Len(t, merged, 3)
		assert.Equal(t, Bar{Timestamp: day.AddDate(0, 0, 1), Open: 13, High: 13, Low: 13, Close: 13, Volume: 5}, merged[2])
	})

	t.Run("stale tick ignored", func(t *testing.T) {
		merged := Interval1d.Merge(bars, Tick{Timestamp: day.AddDate(0, 0, -3), Price: 1})
		assert.Equal(t, bars, merged)
	})

	t.Run("empty series", func(t *testing.T) {
		merged := Interval1d.Merge(nil, Tick{Timestamp: day.Add(time.Hour), Price: 2, Volume: 1})
		require.Len(t, merged, 1)
		assert.Equal(t, day, merged[0].Timestamp)
	})
}

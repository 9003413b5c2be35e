package interval

import (
	"time"
)

// Tick is one observed trade or quote.
type Tick struct {
	Timestamp time.Time
	Price     float64
	Volume    int64
}

// Bar is one OHLCV row. Timestamp is the bucket start.
type Bar struct {
	Timestamp time.Time `json:"timestamp"`
	Open      float64   `json:"open"`
	High      float64   `json:"high"`
	Low       float64   `json:"low"`
	Close     float64   `json:"close"`
	Volume    int64     `json:"volume"`
}

// Aggregate folds ticks, assumed time ordered, into a single bar for bucketTime.
func (i Interval) Aggregate(ticks []Tick, bucketTime time.Time) Bar {
	if len(ticks) == 0 {
		return Bar{Timestamp: bucketTime}
	}

	bar := Bar{
		Timestamp: bucketTime,
		Open:      ticks[0].Price,
		High:      ticks[0].Price,
		Low:       ticks[0].Price,
		Close:     ticks[len(ticks)-1].Price,
	}

	for _, tick := range ticks {
		if tick.Price > bar.High {
			bar.High = tick.Price
		}
		if tick.Price < bar.Low {
			bar.Low = tick.Price
		}
		bar.Volume += tick.Volume
	}

	return bar
}

// Resample folds time-ordered bars into i's buckets and returns a new
// slice. Each output bar opens with the first input bar of its bucket and
// closes with the last.
func (i Interval) Resample(bars []Bar) []Bar {
	out := make([]Bar, 0, len(bars))
	for _, bar := range bars {
		if n := len(out); n > 0 && i.IsInBucket(out[n-1].Timestamp, bar.Timestamp) {
			last := &out[n-1]
			last.High = max(last.High, bar.High)
			last.Low = min(last.Low, bar.Low)
			last.Close = bar.Close
			last.Volume += bar.Volume
			continue
		}
		bar.Timestamp = i.CalculateBucketTime(bar.Timestamp)
		out = append(out, bar)
	}
	return out
}

// Merge folds a live tick into a time-ordered series and returns a new slice.
// A tick in the last bar's bucket updates that bar, a tick in a later bucket
// appends one, and an older tick is ignored.
func (i Interval) Merge(bars []Bar, tick Tick) []Bar {
	bucket := i.CalculateBucketTime(tick.Timestamp)

	out := make([]Bar, len(bars), len(bars)+1)
	copy(out, bars)

	if len(out) == 0 {
		return append(out, i.Aggregate([]Tick{tick}, bucket))
	}

	last := &out[len(out)-1]
	switch {
	case bucket.Equal(last.Timestamp):
		last.Close = tick.Price
		if tick.Price > last.High {
			last.High = tick.Price
		}
		if tick.Price < last.Low {
			last.Low = tick.Price
		}
		if tick.Volume > last.Volume {
			// live quotes report the cumulative session volume
			last.Volume = tick.Volume
		}
	case bucket.After(last.Timestamp):
		out = append(out, i.Aggregate([]Tick{tick}, bucket))
	}

	return out
}

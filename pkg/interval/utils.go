package interval

import (
	"fmt"

	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
)

// Interval represents a bar width for OHLCV series
type Interval struct {
	Name string
}

// Supported intervals. The market data source only serves daily history,
// so nothing finer than a day can be charted.
var (
	Interval1d = Interval{Name: "1d"}
	Interval1w = Interval{Name: "1w"}
)

// AllIntervals lists every supported interval.
var AllIntervals = []Interval{Interval1d, Interval1w}

var intervalRegistry = make(map[string]Interval)

func init() {
	for _, interval := range AllIntervals {
		intervalRegistry[interval.Name] = interval
	}
}

// GetInterval returns an interval by name. An empty name is the daily
// interval.
func GetInterval(name string) (Interval, error) {
	if name == "" {
		return Interval1d, nil
	}
	interval, exists := intervalRegistry[name]
	if !exists {
		return Interval{}, errors.TracerFromError(errors.NewErrorDetails(
			fmt.Sprintf("unsupported interval: %s", name), errors.InvalidInput, "interval",
		))
	}
	return interval, nil
}

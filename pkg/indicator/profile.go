package indicator

import "github.com/muhammadchandra19/stock-sentinel/pkg/interval"

// DefaultProfileBins is the number of price levels used when the caller
// does not ask for a specific resolution.
const DefaultProfileBins = 20

// VolumeLevel is one price band of a volume profile. A bar counts toward
// the band its close falls in, Low inclusive and High exclusive.
type VolumeLevel struct {
	Low    float64 `json:"low"`
	High   float64 `json:"high"`
	Volume int64   `json:"volume"`
}

// VolumeProfile splits the range from the lowest low to the highest high
// into bins equal-width bands and sums the volume of the bars closing in
// each. The top band also takes closes equal to the highest high. When
// every bar trades at one price a single band holds all the volume.
func VolumeProfile(bars []interval.Bar, bins int) []VolumeLevel {
	if len(bars) == 0 || bins <= 0 {
		return nil
	}

	low, high := bars[0].Low, bars[0].High
	for _, b := range bars[1:] {
		low = min(low, b.Low)
		high = max(high, b.High)
	}

	if high <= low {
		var total int64
		for _, b := range bars {
			total += b.Volume
		}
		return []VolumeLevel{{Low: low, High: high, Volume: total}}
	}

	width := (high - low) / float64(bins)
	levels := make([]VolumeLevel, bins)
	for i := range levels {
		levels[i].Low = low + float64(i)*width
		levels[i].High = low + float64(i+1)*width
	}
	levels[bins-1].High = high

	for _, b := range bars {
		if b.Close < low || b.Close > high {
			continue
		}
		i := int((b.Close - low) / width)
		if i >= bins {
			i = bins - 1
		}
		levels[i].Volume += b.Volume
	}
	return levels
}

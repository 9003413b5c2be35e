// Package indicator computes technical indicators over closing prices.
// Every function returns a slice aligned with its input; a nil element means
// the value is undefined at that index (warm-up period or zero range).
package indicator

import (
	"math"
)

// SMA is the simple moving average over window values.
func SMA(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 {
		return out
	}

	var sum float64
	for i, v := range values {
		sum += v
		if i >= window {
			sum -= values[i-window]
		}
		if i >= window-1 {
			out[i] = ptr(sum / float64(window))
		}
	}
	return out
}

// EMA is the recursive exponential moving average with alpha = 2/(span+1),
// seeded with the first value. It is defined at every index.
func EMA(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}

	alpha := 2 / (float64(span) + 1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}

// MACDResult holds the MACD line, its signal line and the histogram.
type MACDResult struct {
	MACD      []float64
	Signal    []float64
	Histogram []float64
}

// MACD computes EMA(fast) - EMA(slow) and its EMA(signal).
func MACD(values []float64, fast, slow, signal int) MACDResult {
	fastEMA := EMA(values, fast)
	slowEMA := EMA(values, slow)

	line := make([]float64, len(values))
	for i := range values {
		line[i] = fastEMA[i] - slowEMA[i]
	}

	signalLine := EMA(line, signal)
	hist := make([]float64, len(values))
	for i := range values {
		hist[i] = line[i] - signalLine[i]
	}

	return MACDResult{MACD: line, Signal: signalLine, Histogram: hist}
}

// BandsResult holds Bollinger bands.
type BandsResult struct {
	Upper  []*float64
	Middle []*float64
	Lower  []*float64
}

// Bollinger computes SMA(window) +/- k sample standard deviations.
func Bollinger(values []float64, window int, k float64) BandsResult {
	middle := SMA(values, window)
	res := BandsResult{
		Upper:  make([]*float64, len(values)),
		Middle: middle,
		Lower:  make([]*float64, len(values)),
	}
	if window < 2 {
		return res
	}

	for i := range values {
		if middle[i] == nil {
			continue
		}
		mean := *middle[i]
		var ss float64
		for _, v := range values[i-window+1 : i+1] {
			ss += (v - mean) * (v - mean)
		}
		std := math.Sqrt(ss / float64(window-1))
		res.Upper[i] = ptr(mean + k*std)
		res.Lower[i] = ptr(mean - k*std)
	}
	return res
}

// RSI is the relative strength index using simple rolling means of gains
// and losses over window price changes. A window without losses yields 100.
func RSI(values []float64, window int) []*float64 {
	out := make([]*float64, len(values))
	if window <= 0 {
		return out
	}

	for i := window; i < len(values); i++ {
		var gain, loss float64
		for j := i - window + 1; j <= i; j++ {
			delta := values[j] - values[j-1]
			if delta > 0 {
				gain += delta
			} else {
				loss -= delta
			}
		}
		if loss == 0 {
			out[i] = ptr(100)
			continue
		}
		rs := (gain / float64(window)) / (loss / float64(window))
		out[i] = ptr(100 - 100/(1+rs))
	}
	return out
}

// StochasticResult holds %K and its %D smoothing.
type StochasticResult struct {
	K []*float64
	D []*float64
}

// Stochastic computes %K over kWindow bars and %D as the SMA of %K over dWindow.
func Stochastic(high, low, closes []float64, kWindow, dWindow int) StochasticResult {
	n := len(closes)
	res := StochasticResult{K: make([]*float64, n), D: make([]*float64, n)}
	if kWindow <= 0 || len(high) != n || len(low) != n {
		return res
	}

	for i := kWindow - 1; i < n; i++ {
		hh, ll := high[i], low[i]
		for j := i - kWindow + 1; j < i; j++ {
			hh = math.Max(hh, high[j])
			ll = math.Min(ll, low[j])
		}
		if hh == ll {
			continue
		}
		res.K[i] = ptr(100 * (closes[i] - ll) / (hh - ll))
	}

	for i := range n {
		if i < dWindow-1 {
			continue
		}
		var sum float64
		defined := true
		for _, k := range res.K[i-dWindow+1 : i+1] {
			if k == nil {
				defined = false
				break
			}
			sum += *k
		}
		if defined {
			res.D[i] = ptr(sum / float64(dWindow))
		}
	}
	return res
}

func ptr(v float64) *float64 {
	return &v
}

package indicator

import "github.com/muhammadchandra19/stock-sentinel/pkg/interval"

// Row is one bar augmented with the dashboard's indicator set.
type Row struct {
	interval.Bar
	SMA20         *float64 `json:"sma20"`
	SMA50         *float64 `json:"sma50"`
	SMA200        *float64 `json:"sma200"`
	EMA12         float64  `json:"ema12"`
	EMA26         float64  `json:"ema26"`
	MACD          float64  `json:"macd"`
	MACDSignal    float64  `json:"macdSignal"`
	MACDHistogram float64  `json:"macdHistogram"`
	BBUpper       *float64 `json:"bbUpper"`
	BBMiddle      *float64 `json:"bbMiddle"`
	BBLower       *float64 `json:"bbLower"`
	RSI           *float64 `json:"rsi"`
	StochK        *float64 `json:"stochK"`
	StochD        *float64 `json:"stochD"`
}

// Compute augments time-ordered bars with SMA20/50/200, EMA12/26,
// MACD(12,26,9), Bollinger(20, 2), RSI14 and stochastic(14, 3).
func Compute(bars []interval.Bar) []Row {
	n := len(bars)
	closes := make([]float64, n)
	highs := make([]float64, n)
	lows := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
		highs[i] = b.High
		lows[i] = b.Low
	}

	sma20 := SMA(closes, 20)
	sma50 := SMA(closes, 50)
	sma200 := SMA(closes, 200)
	ema12 := EMA(closes, 12)
	ema26 := EMA(closes, 26)
	macd := MACD(closes, 12, 26, 9)
	bands := Bollinger(closes, 20, 2)
	rsi := RSI(closes, 14)
	stoch := Stochastic(highs, lows, closes, 14, 3)

	rows := make([]Row, n)
	for i, b := range bars {
		rows[i] = Row{
			Bar:           b,
			SMA20:         sma20[i],
			SMA50:         sma50[i],
			SMA200:        sma200[i],
			EMA12:         ema12[i],
			EMA26:         ema26[i],
			MACD:          macd.MACD[i],
			MACDSignal:    macd.Signal[i],
			MACDHistogram: macd.Histogram[i],
			BBUpper:       bands.Upper[i],
			BBMiddle:      bands.Middle[i],
			BBLower:       bands.Lower[i],
			RSI:           rsi[i],
			StochK:        stoch.K[i],
			StochD:        stoch.D[i],
		}
	}
	return rows
}

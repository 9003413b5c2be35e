package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/interval"
	"github.com/shopspring/decimal"
)

// envelope carries the provider's in-band failure messages, which arrive
// with HTTP 200.
type envelope struct {
	Note         string `json:"Note"`
	Information  string `json:"Information"`
	ErrorMessage string `json:"Error Message"`
}

func (e envelope) err(symbol string) error {
	switch {
	case e.Note != "":
		return errors.New(errors.QuoteRateLimited, e.Note)
	case e.Information != "":
		return errors.New(errors.QuoteRateLimited, e.Information)
	case e.ErrorMessage != "":
		return errors.New(errors.QuoteNotFound, fmt.Sprintf("symbol %s not found: %s", symbol, e.ErrorMessage))
	}
	return nil
}

type globalQuoteResponse struct {
	envelope
	GlobalQuote map[string]string `json:"Global Quote"`
}

type dailyResponse struct {
	envelope
	Series map[string]map[string]string `json:"Time Series (Daily)"`
}

// Fetch returns the latest quote for symbol, stamped with the fetch time.
func (c *Client) Fetch(ctx context.Context, symbol string) (q *price.Quote, err error) {
	defer func() { c.record(err) }()

	body, err := c.query(ctx, map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbol,
	})
	if err != nil {
		return nil, err
	}

	var payload globalQuoteResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(errors.QuoteUnknown, err, "decode global quote")
	}
	if err := payload.err(symbol); err != nil {
		return nil, err
	}

	raw := payload.GlobalQuote["05. price"]
	if raw == "" {
		return nil, errors.New(errors.QuoteNotFound, fmt.Sprintf("no quote for symbol %s", symbol))
	}

	p, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, errors.Wrap(errors.QuoteUnknown, err, "parse quote price")
	}

	var volume int64
	if v := payload.GlobalQuote["06. volume"]; v != "" {
		volume, err = strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, errors.Wrap(errors.QuoteUnknown, err, "parse quote volume")
		}
	}

	return &price.Quote{
		Symbol:     symbol,
		Price:      p,
		Volume:     volume,
		ObservedAt: c.clock(),
	}, nil
}

// History returns the full daily series for symbol, oldest first.
func (c *Client) History(ctx context.Context, symbol string) (bars []interval.Bar, err error) {
	defer func() { c.record(err) }()

	body, err := c.query(ctx, map[string]string{
		"function":   "TIME_SERIES_DAILY",
		"symbol":     symbol,
		"outputsize": "full",
	})
	if err != nil {
		return nil, err
	}

	var payload dailyResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(errors.QuoteUnknown, err, "decode daily series")
	}
	if err := payload.err(symbol); err != nil {
		return nil, err
	}
	if len(payload.Series) == 0 {
		return nil, errors.New(errors.QuoteNotFound, fmt.Sprintf("no history for symbol %s", symbol))
	}

	bars = make([]interval.Bar, 0, len(payload.Series))
	for day, row := range payload.Series {
		bar, err := parseDailyBar(day, row)
		if err != nil {
			return nil, errors.Wrap(errors.QuoteUnknown, err, "parse daily bar")
		}
		bars = append(bars, bar)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Timestamp.Before(bars[j].Timestamp) })
	return bars, nil
}

func parseDailyBar(day string, row map[string]string) (interval.Bar, error) {
	ts, err := time.Parse(time.DateOnly, day)
	if err != nil {
		return interval.Bar{}, err
	}

	bar := interval.Bar{Timestamp: ts}
	for key, dst := range map[string]*float64{
		"1. open":  &bar.Open,
		"2. high":  &bar.High,
		"3. low":   &bar.Low,
		"4. close": &bar.Close,
	} {
		*dst, err = strconv.ParseFloat(row[key], 64)
		if err != nil {
			return interval.Bar{}, fmt.Errorf("%s %s: %w", day, key, err)
		}
	}

	bar.Volume, err = strconv.ParseInt(row["5. volume"], 10, 64)
	if err != nil {
		return interval.Bar{}, fmt.Errorf("%s volume: %w", day, err)
	}
	return bar, nil
}

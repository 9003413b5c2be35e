package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
)

type overviewResponse struct {
	envelope
	Symbol        string `json:"Symbol"`
	Name          string `json:"Name"`
	Description   string `json:"Description"`
	Sector        string `json:"Sector"`
	Industry      string `json:"Industry"`
	MarketCap     string `json:"MarketCapitalization"`
	PERatio       string `json:"PERatio"`
	ForwardPE     string `json:"ForwardPE"`
	DividendYield string `json:"DividendYield"`
	Beta          string `json:"Beta"`
	High52Week    string `json:"52WeekHigh"`
	Low52Week     string `json:"52WeekLow"`
}

// Overview returns the company profile of symbol. The provider answers an
// unknown symbol with an empty object.
func (c *Client) Overview(ctx context.Context, symbol string) (o *quotev1.Overview, err error) {
	defer func() { c.record(err) }()

	body, err := c.query(ctx, map[string]string{
		"function": "OVERVIEW",
		"symbol":   symbol,
	})
	if err != nil {
		return nil, err
	}

	var payload overviewResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, errors.Wrap(errors.QuoteUnknown, err, "decode overview")
	}
	if err := payload.err(symbol); err != nil {
		return nil, err
	}
	if payload.Symbol == "" && payload.Name == "" {
		return nil, errors.New(errors.QuoteNotFound, fmt.Sprintf("no overview for symbol %s", symbol))
	}

	o = &quotev1.Overview{
		Symbol:      symbol,
		Name:        text(payload.Name),
		Description: text(payload.Description),
		Sector:      text(payload.Sector),
		Industry:    text(payload.Industry),
	}
	for dst, raw := range map[**float64]string{
		&o.PERatio:       payload.PERatio,
		&o.ForwardPE:     payload.ForwardPE,
		&o.DividendYield: payload.DividendYield,
		&o.Beta:          payload.Beta,
		&o.High52Week:    payload.High52Week,
		&o.Low52Week:     payload.Low52Week,
	} {
		*dst = optionalFloat(raw)
	}
	if v, ok := reported(payload.MarketCap); ok {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			o.MarketCap = &n
		}
	}
	return o, nil
}

// reported filters out the placeholders the provider uses for missing values.
func reported(raw string) (string, bool) {
	switch raw {
	case "", "None", "-", "N/A":
		return "", false
	}
	return raw, true
}

func text(raw string) string {
	v, _ := reported(raw)
	return v
}

func optionalFloat(raw string) *float64 {
	v, ok := reported(raw)
	if !ok {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil
	}
	return &f
}

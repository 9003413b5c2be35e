package pushfeed

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"github.com/shopspring/decimal"
)

// Frame types sent by the feed.
const (
	frameTrade = "trade"
	framePing  = "ping"
	frameError = "error"
)

// Trade is one execution reported by the feed.
type Trade struct {
	Symbol    string      `json:"s"`
	Price     json.Number `json:"p"`
	Volume    json.Number `json:"v"`
	Timestamp int64       `json:"t"` // unix millis
}

// Message is an inbound frame. Data stays raw so one bad trade cannot fail
// the rest of the frame.
type Message struct {
	Type string            `json:"type"`
	Data []json.RawMessage `json:"data"`
	Msg  string            `json:"msg,omitempty"`
}

var maxVolume = decimal.NewFromInt(math.MaxInt64)

type subscribeMessage struct {
	Type   string `json:"type"`
	Symbol string `json:"symbol"`
}

// decodeMessage parses one frame. Trades that cannot become a valid quote
// are skipped and counted in dropped; a frame that is not JSON at all is an
// error.
func decodeMessage(raw []byte, clock util.Clock) (msg Message, quotes []*price.Quote, dropped int, err error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&msg); err != nil {
		return msg, nil, 0, errors.Wrap(errors.InvalidInput, err, "malformed feed frame")
	}
	if msg.Type == "" {
		return msg, nil, 0, errors.New(errors.InvalidInput, "feed frame has no type")
	}
	if msg.Type != frameTrade {
		return msg, nil, 0, nil
	}

	for _, item := range msg.Data {
		t, err := decodeTrade(item)
		if err != nil {
			dropped++
			continue
		}
		q, ok := t.toQuote(clock)
		if !ok {
			dropped++
			continue
		}
		quotes = append(quotes, q)
	}
	return msg, quotes, dropped, nil
}

func decodeTrade(raw json.RawMessage) (Trade, error) {
	var t Trade
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	err := dec.Decode(&t)
	return t, err
}

func (t Trade) toQuote(clock util.Clock) (*price.Quote, bool) {
	symbol, ok := util.NormalizeSymbol(t.Symbol)
	if !ok {
		return nil, false
	}

	p, err := decimal.NewFromString(t.Price.String())
	if err != nil || !p.IsPositive() {
		return nil, false
	}

	var volume int64
	if t.Volume != "" {
		v, err := decimal.NewFromString(t.Volume.String())
		if err != nil || v.IsNegative() || v.GreaterThan(maxVolume) {
			return nil, false
		}
		volume = v.IntPart()
	}

	observedAt := clock()
	if t.Timestamp > 0 {
		observedAt = time.UnixMilli(t.Timestamp).UTC()
	}

	return &price.Quote{Symbol: symbol, Price: p, Volume: volume, ObservedAt: observedAt}, true
}

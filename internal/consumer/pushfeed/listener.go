package pushfeed

import (
	"context"
	"net/url"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	"github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

// Wildcard subscribes to every symbol the feed carries.
const Wildcard = "*"

const (
	writeTimeout        = 5 * time.Second
	defaultPingInterval = 20 * time.Second
)

// State is the connection phase of the listener.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateConnected
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// Listener keeps a websocket subscription to the trade feed open and feeds
// every trade into the ingest pipeline. It reconnects forever until stopped.
type Listener struct {
	cfg       config.FeedConfig
	portfolio portfolio.Usecase
	ingest    ingest.Usecase
	dialer    *websocket.Dialer
	backoff   *Backoff
	clock     util.Clock
	logger    logger.Interface
	metrics   *metrics.Metrics

	state atomic.Int32

	mu      sync.Mutex
	started bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// NewListener creates a Listener in the Disconnected state.
func NewListener(
	cfg config.FeedConfig,
	portfolio portfolio.Usecase,
	ingest ingest.Usecase,
	clock util.Clock,
	logger logger.Interface,
	metrics *metrics.Metrics,
) *Listener {
	if clock == nil {
		clock = util.SystemClock
	}

	return &Listener{
		cfg:       cfg,
		portfolio: portfolio,
		ingest:    ingest,
		dialer:    &websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout},
		backoff:   NewBackoff(cfg.ReconnectMinBackoff, cfg.ReconnectMaxBackoff),
		clock:     clock,
		logger:    logger,
		metrics:   metrics,
	}
}

// State returns the current connection phase.
func (l *Listener) State() State {
	return State(l.state.Load())
}

// Start launches the connect/read/reconnect loop.
func (l *Listener) Start(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.started {
		return errors.New(errors.GeneralBadRequestError, "push feed listener already started")
	}
	if l.cfg.URL == "" {
		return errors.New(errors.InvalidInput, "push feed url is empty")
	}
	l.started = true

	ctx, l.cancel = context.WithCancel(ctx)

	l.wg.Add(1)
	go l.run(ctx)

	l.logger.Info("Push feed listener started", logger.Field{Key: "url", Value: redact(l.cfg.URL)})
	return nil
}

// Stop closes the connection and waits for the loop to exit, or for ctx
// to expire.
func (l *Listener) Stop(ctx context.Context) error {
	l.mu.Lock()
	cancel := l.cancel
	l.mu.Unlock()

	if cancel != nil {
		cancel()
	}

	done := make(chan struct{})
	go func() {
		l.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		l.state.Store(int32(StateStopped))
		l.logger.Info("Push feed listener stopped")
		return nil
	case <-ctx.Done():
		l.logger.Warn("Push feed listener stop timeout exceeded")
		return ctx.Err()
	}
}

func (l *Listener) run(ctx context.Context) {
	defer l.wg.Done()

	for {
		l.state.Store(int32(StateConnecting))
		connected, err := l.session(ctx)
		l.state.Store(int32(StateDisconnected))

		if ctx.Err() != nil {
			return
		}
		if connected {
			l.backoff.Reset()
		}

		delay := l.backoff.Next()
		fields := []logger.Field{
			{Key: "attempt", Value: l.backoff.Attempt()},
			{Key: "delay", Value: delay.String()},
		}
		if err != nil {
			fields = append(fields, logger.Field{Key: "error", Value: err.Error()})
		}
		l.logger.Warn("Push feed disconnected, reconnecting", fields...)

		select {
		case <-ctx.Done():
			return
		case <-time.After(delay):
		}
	}
}

// session runs one connection until it drops. connected reports whether
// the handshake succeeded.
func (l *Listener) session(ctx context.Context) (connected bool, err error) {
	ctx = util.WithRequestID(ctx, "")

	target, err := l.endpoint()
	if err != nil {
		return false, err
	}

	conn, _, err := l.dialer.DialContext(ctx, target, nil)
	if err != nil {
		l.metrics.RecordFeedConnection("failed")
		return false, errors.Wrap(errors.QuoteTransient, err, "dial push feed")
	}
	defer conn.Close()

	l.metrics.RecordFeedConnection("connected")
	l.state.Store(int32(StateConnected))

	symbols, err := l.universe(ctx)
	if err != nil {
		l.logger.WarnContext(ctx, "Falling back to configured feed symbols",
			logger.Field{Key: "error", Value: err.Error()},
		)
	}
	subscribed := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		if err := send(conn, subscribeMessage{Type: "subscribe", Symbol: symbol}); err != nil {
			return true, errors.Wrap(errors.QuoteTransient, err, "subscribe")
		}
		subscribed[symbol] = struct{}{}
	}
	l.logger.InfoContext(ctx, "Push feed connected", logger.Field{Key: "symbols", Value: symbols})

	extend := func() {
		if l.cfg.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(l.cfg.ReadTimeout))
		}
	}
	extend()
	conn.SetPongHandler(func(string) error {
		extend()
		return nil
	})

	done := make(chan struct{})
	defer close(done)
	go l.keepalive(ctx, conn, subscribed, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return true, nil
			}
			return true, errors.Wrap(errors.QuoteTransient, err, "read push feed")
		}
		extend()
		l.handle(ctx, data)
	}
}

// keepalive pings the peer and periodically resubscribes until done. It
// closes conn when ctx is cancelled so a blocked read returns. After the
// initial subscription it is the only goroutine writing data frames.
func (l *Listener) keepalive(ctx context.Context, conn *websocket.Conn, subscribed map[string]struct{}, done <-chan struct{}) {
	interval := l.cfg.PingInterval
	if interval <= 0 {
		interval = defaultPingInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var resubscribe <-chan time.Time
	if l.cfg.ResubscribeInterval > 0 {
		resubscribeTicker := time.NewTicker(l.cfg.ResubscribeInterval)
		defer resubscribeTicker.Stop()
		resubscribe = resubscribeTicker.C
	}

	for {
		select {
		case <-done:
			return
		case <-resubscribe:
			if err := l.resubscribe(ctx, conn, subscribed); err != nil {
				l.logger.WarnContext(ctx, "Push feed resubscribe failed", logger.Field{Key: "error", Value: err.Error()})
			}
		case <-ctx.Done():
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(time.Second))
			_ = conn.Close()
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeTimeout)); err != nil {
				l.logger.DebugContext(ctx, "Push feed ping failed", logger.Field{Key: "error", Value: err.Error()})
			}
		}
	}
}

func (l *Listener) handle(ctx context.Context, data []byte) {
	msg, quotes, dropped, err := decodeMessage(data, l.clock)
	if err != nil {
		l.metrics.RecordFeedMessage("malformed")
		l.logger.WarnContext(ctx, "Dropping malformed feed frame", logger.Field{Key: "error", Value: err.Error()})
		return
	}

	switch msg.Type {
	case frameTrade:
	case framePing:
		return
	case frameError:
		l.logger.WarnContext(ctx, "Push feed reported an error", logger.Field{Key: "message", Value: msg.Msg})
		return
	default:
		l.logger.DebugContext(ctx, "Ignoring feed frame", logger.Field{Key: "type", Value: msg.Type})
		return
	}

	for range dropped {
		l.metrics.RecordFeedMessage("dropped")
	}
	if dropped > 0 {
		l.logger.WarnContext(ctx, "Dropped invalid trades", logger.Field{Key: "count", Value: dropped})
	}

	for _, q := range quotes {
		if _, err := l.ingest.Process(ctx, ingest.SourcePush, q); err != nil {
			l.metrics.RecordFeedMessage("ingest_failed")
			continue
		}
		l.metrics.RecordFeedMessage("ok")
	}
}

// resubscribe brings the live subscription in line with the current
// universe. The old set is kept when the active symbols cannot be listed.
func (l *Listener) resubscribe(ctx context.Context, conn *websocket.Conn, subscribed map[string]struct{}) error {
	symbols, err := l.universe(ctx)
	if err != nil {
		return err
	}

	want := make(map[string]struct{}, len(symbols))
	for _, symbol := range symbols {
		want[symbol] = struct{}{}
	}

	var removed, added []string
	for symbol := range subscribed {
		if _, ok := want[symbol]; !ok {
			removed = append(removed, symbol)
		}
	}
	for _, symbol := range symbols {
		if _, ok := subscribed[symbol]; !ok {
			added = append(added, symbol)
		}
	}
	sort.Strings(removed)

	for _, symbol := range removed {
		if err := send(conn, subscribeMessage{Type: "unsubscribe", Symbol: symbol}); err != nil {
			return errors.Wrap(errors.QuoteTransient, err, "unsubscribe")
		}
		delete(subscribed, symbol)
	}
	for _, symbol := range added {
		if err := send(conn, subscribeMessage{Type: "subscribe", Symbol: symbol}); err != nil {
			return errors.Wrap(errors.QuoteTransient, err, "subscribe")
		}
		subscribed[symbol] = struct{}{}
	}

	if len(added) > 0 || len(removed) > 0 {
		l.logger.InfoContext(ctx, "Push feed subscription updated",
			logger.Field{Key: "added", Value: added},
			logger.Field{Key: "removed", Value: removed},
		)
	}
	return nil
}

func send(conn *websocket.Conn, msg subscribeMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	return conn.WriteJSON(msg)
}

// universe is the set of symbols to subscribe to: every active symbol plus
// the configured ones, or the wildcard when both are empty. When listing
// the active symbols fails the configured ones are returned with the error.
func (l *Listener) universe(ctx context.Context) ([]string, error) {
	set := make(map[string]struct{})

	active, err := l.portfolio.ActiveSymbols(ctx)
	for _, list := range [][]string{active, l.cfg.Symbols} {
		for _, s := range list {
			if symbol, ok := util.NormalizeSymbol(s); ok {
				set[symbol] = struct{}{}
			}
		}
	}

	if len(set) == 0 {
		return []string{Wildcard}, err
	}

	symbols := make([]string, 0, len(set))
	for s := range set {
		symbols = append(symbols, s)
	}
	sort.Strings(symbols)
	return symbols, err
}

func (l *Listener) endpoint() (string, error) {
	u, err := url.Parse(l.cfg.URL)
	if err != nil {
		return "", errors.Wrap(errors.InvalidInput, err, "parse push feed url")
	}
	if l.cfg.Token != "" {
		q := u.Query()
		q.Set("token", l.cfg.Token)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// redact drops the query string so tokens never reach the logs.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	u.RawQuery = ""
	return u.String()
}

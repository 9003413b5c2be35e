package pushfeed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	ingestDomain "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest"
	ingestMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/ingest/mock"
	portfolioMock "github.com/muhammadchandra19/stock-sentinel/internal/domain/portfolio/mock"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// feedServer is a websocket peer that records subscriptions and runs
// script on every accepted connection.
type feedServer struct {
	*httptest.Server

	mu          sync.Mutex
	subscribed  [][]string
	tokens      []string
	connections atomic.Int32
}

func newFeedServer(t *testing.T, subscriptions int, script func(conn *websocket.Conn)) *feedServer {
	t.Helper()

	fs := &feedServer{}
	upgrader := websocket.Upgrader{}
	fs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		fs.connections.Add(1)

		var symbols []string
		for range subscriptions {
			var msg subscribeMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			symbols = append(symbols, msg.Symbol)
		}

		fs.mu.Lock()
		fs.subscribed = append(fs.subscribed, symbols)
		fs.tokens = append(fs.tokens, r.URL.Query().Get("token"))
		fs.mu.Unlock()

		script(conn)
	}))
	t.Cleanup(fs.Close)
	return fs
}

func (fs *feedServer) wsURL() string {
	return "ws" + strings.TrimPrefix(fs.URL, "http")
}

func (fs *feedServer) subscriptions() [][]string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([][]string(nil), fs.subscribed...)
}

func (fs *feedServer) tokensSeen() []string {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	return append([]string(nil), fs.tokens...)
}

// drain blocks until the client goes away.
func drain(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func feedConfig(url string) config.FeedConfig {
	return config.FeedConfig{
		URL:                 url,
		Token:               "secret",
		HandshakeTimeout:    time.Second,
		ReadTimeout:         5 * time.Second,
		PingInterval:        time.Second,
		ReconnectMinBackoff: 10 * time.Millisecond,
		ReconnectMaxBackoff: 50 * time.Millisecond,
	}
}

func stop(t *testing.T, l *Listener) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	require.NoError(t, l.Stop(ctx))
	assert.Equal(t, StateStopped, l.State())
}

func TestListener_IngestsTrades(t *testing.T) {
	ctrl := gomock.NewController(t)
	portfolio := portfolioMock.NewMockUsecase(ctrl)
	ingest := ingestMock.NewMockUsecase(ctrl)
	m := metrics.New()

	portfolio.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"MSFT", "AAPL"}, nil).AnyTimes()

	received := make(chan *price.Quote, 1)
	ingest.EXPECT().Process(gomock.Any(), ingestDomain.SourcePush, gomock.Any()).
		DoAndReturn(func(ctx context.Context, source string, q *price.Quote) ([]*alert.Alert, error) {
			received <- q
			return nil, nil
		}).Times(1)

	server := newFeedServer(t, 3, func(conn *websocket.Conn) {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"trade","data":`))
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"ping"}`))
		_ = conn.WriteMessage(websocket.TextMessage,
			[]byte(`{"type":"trade","data":[{"s":"","p":1},{"s":"AAPL","p":190.5,"v":100,"t":1709303400000}]}`))
		drain(conn)
	})

	cfg := feedConfig(server.wsURL())
	cfg.Symbols = []string{"aapl", "nvda"}

	l := NewListener(cfg, portfolio, ingest, fixedClock, logger.NewNop(), m)
	require.NoError(t, l.Start(context.Background()))

	select {
	case q := <-received:
		assert.Equal(t, "AAPL", q.Symbol)
		assert.True(t, q.Price.Equal(decimal.RequireFromString("190.5")))
		assert.Equal(t, int64(100), q.Volume)
		assert.Equal(t, time.UnixMilli(1709303400000).UTC(), q.ObservedAt)
	case <-time.After(3 * time.Second):
		t.Fatal("trade was not ingested")
	}

	assert.Equal(t, StateConnected, l.State())
	stop(t, l)

	assert.Equal(t, [][]string{{"AAPL", "MSFT", "NVDA"}}, server.subscriptions())
	assert.Equal(t, []string{"secret"}, server.tokensSeen())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedMessagesTotal.WithLabelValues("malformed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedMessagesTotal.WithLabelValues("dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedMessagesTotal.WithLabelValues("ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.FeedConnectionsTotal.WithLabelValues("connected")))
}

func TestListener_WildcardWhenNoSymbols(t *testing.T) {
	ctrl := gomock.NewController(t)
	portfolio := portfolioMock.NewMockUsecase(ctrl)
	portfolio.EXPECT().ActiveSymbols(gomock.Any()).
		Return(nil, errors.New(errors.StorageFailure, "list active symbols")).AnyTimes()

	subscribed := make(chan struct{})
	var once sync.Once
	server := newFeedServer(t, 1, func(conn *websocket.Conn) {
		once.Do(func() { close(subscribed) })
		drain(conn)
	})

	l := NewListener(feedConfig(server.wsURL()), portfolio, ingestMock.NewMockUsecase(ctrl), fixedClock, logger.NewNop(), nil)
	require.NoError(t, l.Start(context.Background()))

	select {
	case <-subscribed:
	case <-time.After(3 * time.Second):
		t.Fatal("listener did not subscribe")
	}
	stop(t, l)

	assert.Equal(t, [][]string{{Wildcard}}, server.subscriptions())
}

func TestListener_ResubscribesWhenUniverseChanges(t *testing.T) {
	ctrl := gomock.NewController(t)
	portfolio := portfolioMock.NewMockUsecase(ctrl)
	gomock.InOrder(
		portfolio.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL", "MSFT"}, nil),
		// a failed listing keeps the current subscription
		portfolio.EXPECT().ActiveSymbols(gomock.Any()).Return(nil, errors.New(errors.StorageFailure, "list active symbols")),
		portfolio.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL", "TSLA"}, nil).AnyTimes(),
	)

	updates := make(chan subscribeMessage, 8)
	server := newFeedServer(t, 2, func(conn *websocket.Conn) {
		for {
			var msg subscribeMessage
			if err := conn.ReadJSON(&msg); err != nil {
				return
			}
			updates <- msg
		}
	})

	cfg := feedConfig(server.wsURL())
	cfg.ResubscribeInterval = 50 * time.Millisecond

	l := NewListener(cfg, portfolio, ingestMock.NewMockUsecase(ctrl), fixedClock, logger.NewNop(), nil)
	require.NoError(t, l.Start(context.Background()))

	var got []subscribeMessage
	for len(got) < 2 {
		select {
		case msg := <-updates:
			got = append(got, msg)
		case <-time.After(3 * time.Second):
			t.Fatal("listener did not resubscribe")
		}
	}
	stop(t, l)

	assert.Equal(t, [][]string{{"AAPL", "MSFT"}}, server.subscriptions())
	assert.Equal(t, []subscribeMessage{
		{Type: "unsubscribe", Symbol: "MSFT"},
		{Type: "subscribe", Symbol: "TSLA"},
	}, got)
}

func TestListener_ReconnectsAfterDisconnect(t *testing.T) {
	ctrl := gomock.NewController(t)
	portfolio := portfolioMock.NewMockUsecase(ctrl)
	portfolio.EXPECT().ActiveSymbols(gomock.Any()).Return([]string{"AAPL"}, nil).AnyTimes()
	m := metrics.New()

	third := make(chan struct{})
	var once sync.Once
	var server *feedServer
	server = newFeedServer(t, 1, func(conn *websocket.Conn) {
		if server.connections.Load() >= 3 {
			once.Do(func() { close(third) })
			drain(conn)
			return
		}
		// hang up right after the subscription
	})

	l := NewListener(feedConfig(server.wsURL()), portfolio, ingestMock.NewMockUsecase(ctrl), fixedClock, logger.NewNop(), m)
	require.NoError(t, l.Start(context.Background()))

	select {
	case <-third:
	case <-time.After(5 * time.Second):
		t.Fatal("listener did not reconnect")
	}
	stop(t, l)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.FeedConnectionsTotal.WithLabelValues("connected")))
	assert.Len(t, server.subscriptions(), 3)
}

func TestListener_DialFailureKeepsRetrying(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := metrics.New()

	server := httptest.NewServer(http.NotFoundHandler())
	url := "ws" + strings.TrimPrefix(server.URL, "http")
	server.Close()

	l := NewListener(feedConfig(url), portfolioMock.NewMockUsecase(ctrl), ingestMock.NewMockUsecase(ctrl), fixedClock, logger.NewNop(), m)
	require.NoError(t, l.Start(context.Background()))

	require.Eventually(t, func() bool {
		return testutil.ToFloat64(m.FeedConnectionsTotal.WithLabelValues("failed")) >= 3
	}, 3*time.Second, 10*time.Millisecond)
	stop(t, l)
}

func TestListener_Start(t *testing.T) {
	ctrl := gomock.NewController(t)

	l := NewListener(config.FeedConfig{}, portfolioMock.NewMockUsecase(ctrl), ingestMock.NewMockUsecase(ctrl), nil, logger.NewNop(), nil)
	err := l.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.HasCode(err, errors.InvalidInput))
	assert.Equal(t, StateDisconnected, l.State())
}

func TestListener_Endpoint(t *testing.T) {
	cfg := config.FeedConfig{URL: "wss://ws.finnhub.io?format=json", Token: "abc"}
	l := &Listener{cfg: cfg}

	got, err := l.endpoint()
	require.NoError(t, err)
	assert.Equal(t, "wss://ws.finnhub.io?format=json&token=abc", got)
	assert.Equal(t, "wss://ws.finnhub.io", redact(got))
}

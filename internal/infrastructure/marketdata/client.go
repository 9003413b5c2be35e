// Package marketdata is an Alpha Vantage compatible REST quote source.
package marketdata

import (
	"context"
	stdErrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
	"golang.org/x/time/rate"
)

const queryPath = "/query"

// Client is safe for concurrent use. Every HTTP attempt, retries included,
// first waits on a shared token bucket so the process stays inside the
// provider's per-minute quota.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
	apiKey  string
	clock   util.Clock
	logger  logger.Interface
	metrics *metrics.Metrics
}

var _ quotev1.Source = (*Client)(nil)

// NewClient creates a market data client.
func NewClient(cfg config.MarketDataConfig, log logger.Interface, m *metrics.Metrics, clock util.Clock) *Client {
	if clock == nil {
		clock = util.SystemClock
	}

	perRequest := time.Minute / time.Duration(cfg.RequestsPerMinute)
	c := &Client{
		limiter: rate.NewLimiter(rate.Every(perRequest), 1),
		apiKey:  cfg.APIKey,
		clock:   clock,
		logger:  log,
		metrics: m,
	}

	c.http = resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(cfg.RetryWait).
		SetRetryMaxWaitTime(cfg.RetryMaxWait).
		SetHeader("Accept", "application/json").
		SetLogger(&restyLogger{log: log}).
		OnBeforeRequest(c.waitQuota).
		AddRetryCondition(shouldRetry)

	return c
}

// quotaError is returned when a request gives up waiting for a token.
type quotaError struct {
	err error
}

func (e *quotaError) Error() string {
	return "wait for market data quota: " + e.err.Error()
}

func (e *quotaError) Unwrap() error {
	return e.err
}

// waitQuota runs before every attempt resty makes.
func (c *Client) waitQuota(_ *resty.Client, req *resty.Request) error {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return &quotaError{err: err}
	}
	return nil
}

// shouldRetry retries transport failures, throttling and server errors.
// A 404 or other client error is final, and so is running out of time
// while waiting for quota.
func shouldRetry(resp *resty.Response, err error) bool {
	if err != nil {
		var quota *quotaError
		return !stdErrors.As(err, &quota)
	}
	if resp == nil {
		return false
	}
	code := resp.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

func (c *Client) query(ctx context.Context, params map[string]string) ([]byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetQueryParam("apikey", c.apiKey).
		Get(queryPath)
	if err != nil {
		return nil, errors.Wrap(errors.QuoteTransient, err, "market data request")
	}

	switch code := resp.StatusCode(); {
	case code == http.StatusTooManyRequests:
		return nil, errors.New(errors.QuoteRateLimited, "market data provider throttled the request")
	case code == http.StatusNotFound:
		return nil, errors.New(errors.QuoteNotFound, fmt.Sprintf("symbol %s not found", params["symbol"]))
	case code >= http.StatusInternalServerError:
		return nil, errors.New(errors.QuoteTransient, fmt.Sprintf("market data provider returned %d", code))
	case code >= http.StatusBadRequest:
		return nil, errors.New(errors.QuoteUnknown, fmt.Sprintf("market data provider returned %d", code))
	}

	return resp.Body(), nil
}

func (c *Client) record(err error) {
	if err == nil {
		c.metrics.RecordFetch("ok")
		return
	}
	c.metrics.RecordFetch(errors.CodeOf(err).String())
}

type restyLogger struct {
	log logger.Interface
}

func (l *restyLogger) Errorf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...), logger.Field{Key: "component", Value: "marketdata"})
}

func (l *restyLogger) Warnf(format string, v ...any) {
	l.log.Warn(fmt.Sprintf(format, v...), logger.Field{Key: "component", Value: "marketdata"})
}

func (l *restyLogger) Debugf(format string, v ...any) {
	l.log.Debug(fmt.Sprintf(format, v...), logger.Field{Key: "component", Value: "marketdata"})
}

package server

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/muhammadchandra19/stock-sentinel/internal/bootstrap"
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/marketdata"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/internal/rest"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/errors"
	"github.com/muhammadchandra19/stock-sentinel/pkg/httplib/healthcheck"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
	"github.com/muhammadchandra19/stock-sentinel/pkg/redis"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

const (
	healthTimeout = 2 * time.Second
	stopTimeout   = 5 * time.Second
)

// Server owns the HTTP listener, the background workers and every
// connection they share.
type Server struct {
	HTTP      *http.Server
	Bootstrap bootstrap.Bootstrap

	config *config.Config
	logger logger.Interface
	db     *postgresql.Client
	redis  redis.Client
}

// NewServer opens the connections required by cfg and wires the service.
func NewServer(ctx context.Context, cfg *config.Config) (*Server, error) {
	log, err := logger.NewLogger(
		logger.WithLoggingLevel(logger.ParseLevel(cfg.App.LogLevel)),
		logger.WithDevelopment(cfg.App.Environment == "development"),
		logger.WithService(cfg.App.Name),
	)
	if err != nil {
		return nil, err
	}

	s := &Server{config: cfg, logger: log}
	m := metrics.New()

	if err := s.initDB(ctx); err != nil {
		return nil, err
	}
	if err := s.initRedis(ctx); err != nil {
		s.closeDB()
		return nil, err
	}

	bootstrapConfig := bootstrap.BootstrapConfig{
		Config:  cfg,
		Logger:  log,
		Metrics: m,
		Clock:   util.SystemClock,
		Redis:   s.redis,
		Source:  marketdata.NewClient(cfg.MarketData, log, m, util.SystemClock),
	}
	if s.db != nil {
		bootstrapConfig.DB = s.db
	}
	s.Bootstrap = (&bootstrap.Bootstrap{}).Init(bootstrapConfig)

	if cfg.App.Environment != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := rest.NewRouter(s.Bootstrap.Handler.Handlers(), log, m)
	health := healthcheck.HealthCheck{Checks: s.healthChecks(), Timeout: healthTimeout}

	s.HTTP = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTP.Port),
		Handler:           health.Handler(router),
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
	}

	return s, nil
}

// Start launches the background workers and the HTTP listener. Listener
// errors other than a graceful close are sent on the returned channel.
func (s *Server) Start(ctx context.Context) (<-chan error, error) {
	sched := s.Bootstrap.Worker.Scheduler
	if sched != nil {
		if err := sched.Start(ctx); err != nil {
			return nil, err
		}
	}
	if listener := s.Bootstrap.Worker.Listener; listener != nil {
		if err := listener.Start(ctx); err != nil {
			if sched != nil {
				stopCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), stopTimeout)
				if stopErr := sched.Stop(stopCtx); stopErr != nil {
					s.logger.Error(errors.TracerFromError(stopErr), logger.Field{Key: "action", Value: "scheduler_stop"})
				}
				cancel()
			}
			return nil, err
		}
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", logger.Field{Key: "addr", Value: s.HTTP.Addr})
		if err := s.HTTP.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return errCh, nil
}

// Shutdown stops accepting requests, stops the workers and closes every
// connection, in that order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.HTTP.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("http shutdown: %w", err))
	}
	if listener := s.Bootstrap.Worker.Listener; listener != nil {
		if err := listener.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("push feed stop: %w", err))
		}
	}
	if sched := s.Bootstrap.Worker.Scheduler; sched != nil {
		if err := sched.Stop(ctx); err != nil {
			errs = append(errs, fmt.Errorf("scheduler stop: %w", err))
		}
	}
	if kafka := s.Bootstrap.Notifier.Kafka; kafka != nil {
		if err := kafka.Close(); err != nil {
			errs = append(errs, fmt.Errorf("kafka close: %w", err))
		}
	}
	if s.redis != nil {
		if err := s.redis.Disconnect(ctx); err != nil {
			errs = append(errs, fmt.Errorf("redis disconnect: %w", err))
		}
	}
	s.closeDB()

	_ = s.logger.Sync()
	return stderrors.Join(errs...)
}

func (s *Server) initDB(ctx context.Context) error {
	if s.config.App.StorageDriver != config.StoragePostgres {
		return nil
	}

	client, err := postgresql.NewClient(ctx, s.config.Postgres)
	if err != nil {
		return errors.Wrap(errors.StorageFailure, err, "connect postgresql")
	}
	s.db = client
	return nil
}

func (s *Server) closeDB() {
	if s.db != nil {
		s.db.Close()
	}
}

func (s *Server) initRedis(ctx context.Context) error {
	if !s.config.Redis.Enabled {
		return nil
	}

	if err := s.config.Redis.Validate(); err != nil {
		return err
	}

	client := redis.NewClient(s.logger, &s.config.Redis.Config)
	if err := client.Connect(ctx); err != nil {
		s.logger.Error(errors.TracerFromError(err), logger.Field{Key: "action", Value: "redis_connect"})
		if !client.Reconnect(ctx) {
			return err
		}
	}
	s.redis = client
	return nil
}

func (s *Server) healthChecks() map[string]healthcheck.Checker {
	checks := map[string]healthcheck.Checker{}

	if s.db != nil {
		db := s.db
		checks["postgres"] = func(ctx context.Context) error {
			if h := postgresql.CheckHealth(ctx, db); !h.IsHealthy() {
				return fmt.Errorf("postgres %s: %s", h.Status, h.Error)
			}
			return nil
		}
	}
	if s.redis != nil {
		checks["redis"] = s.redis.Ping
	}

	return checks
}

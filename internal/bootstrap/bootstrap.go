package bootstrap

import (
	quotev1 "github.com/muhammadchandra19/stock-sentinel/internal/domain/quote/v1"
	"github.com/muhammadchandra19/stock-sentinel/internal/metrics"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
	"github.com/muhammadchandra19/stock-sentinel/pkg/logger"
	"github.com/muhammadchandra19/stock-sentinel/pkg/postgresql"
	"github.com/muhammadchandra19/stock-sentinel/pkg/redis"
	"github.com/muhammadchandra19/stock-sentinel/pkg/util"
)

// Bootstrap holds every wired component of the service.
type Bootstrap struct {
	Config     *config.Config
	Logger     logger.Interface
	Metrics    *metrics.Metrics
	Clock      util.Clock
	Repository Repository
	Notifier   Notifier
	Usecase    Usecase
	Handler    Handler
	Worker     Worker

	DB     postgresql.PostgreSQLClient
	Redis  redis.Client
	Source quotev1.Source
}

// BootstrapConfig carries the already opened connections. DB is required for
// the postgres storage driver and Redis only when Redis notifications are
// enabled.
type BootstrapConfig struct {
	Config  *config.Config
	Logger  logger.Interface
	Metrics *metrics.Metrics
	Clock   util.Clock

	DB     postgresql.PostgreSQLClient
	Redis  redis.Client
	Source quotev1.Source
}

// Init wires repositories, notifiers, usecases, handlers and background workers.
func (b *Bootstrap) Init(config BootstrapConfig) Bootstrap {
	b.Config = config.Config
	b.Logger = config.Logger
	b.Metrics = config.Metrics
	b.Clock = config.Clock
	b.DB = config.DB
	b.Redis = config.Redis
	b.Source = config.Source

	if b.Clock == nil {
		b.Clock = util.SystemClock
	}

	b.registerRepository()
	b.registerNotifier()
	b.registerUsecase()
	b.registerHandler()
	b.registerWorker()

	return *b
}

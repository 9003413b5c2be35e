package bootstrap

import (
	"github.com/muhammadchandra19/stock-sentinel/internal/consumer/pushfeed"
	"github.com/muhammadchandra19/stock-sentinel/internal/scheduler"
)

// Worker holds the background ingestion loops. A nil field is disabled.
type Worker struct {
	Scheduler *scheduler.Scheduler
	Listener  *pushfeed.Listener
}

// registerWorker registers the refresh scheduler and the push feed listener.
func (b *Bootstrap) registerWorker() {
	if b.Config.Scheduler.Enabled {
		b.Worker.Scheduler = scheduler.New(
			b.Usecase.PortfolioUsecase,
			b.Source,
			b.Usecase.IngestUsecase,
			b.Config.Scheduler,
			b.Logger,
			b.Metrics,
		)
	}

	if b.Config.Feed.URL != "" {
		b.Worker.Listener = pushfeed.NewListener(
			b.Config.Feed,
			b.Usecase.PortfolioUsecase,
			b.Usecase.IngestUsecase,
			b.Clock,
			b.Logger,
			b.Metrics,
		)
	}
}

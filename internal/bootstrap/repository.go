package bootstrap

import (
	"github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/memory"
	alertInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/alert"
	holdingInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/holding"
	priceInfra "github.com/muhammadchandra19/stock-sentinel/internal/infrastructure/postgresql/price"
	"github.com/muhammadchandra19/stock-sentinel/pkg/config"
)

// Repository is the persistence layer.
type Repository struct {
	PriceRepository   priceInfra.PriceRepository
	AlertRepository   alertInfra.AlertRepository
	HoldingRepository holdingInfra.HoldingRepository
}

// registerRepository picks the store implementation for the configured driver.
func (b *Bootstrap) registerRepository() {
	if b.Config.App.StorageDriver == config.StorageMemory {
		b.Repository.PriceRepository = memory.NewPriceStore()
		b.Repository.AlertRepository = memory.NewAlertStore()
		b.Repository.HoldingRepository = memory.NewHoldingStore()
		return
	}

	b.Repository.PriceRepository = priceInfra.NewRepository(b.DB, b.Logger)
	b.Repository.AlertRepository = alertInfra.NewRepository(b.DB, b.Logger)
	b.Repository.HoldingRepository = holdingInfra.NewRepository(b.DB, b.Logger)
}

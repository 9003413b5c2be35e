package postgresql

import (
	"context"
	"fmt"
	"time"
)

// HealthCheck represents database health information
type HealthCheck struct {
	Status       string        `json:"status"`
	ResponseTime time.Duration `json:"response_time"`
	DatabaseName string        `json:"database_name"`
	TotalConns   int32         `json:"total_connections,omitempty"`
	IdleConns    int32         `json:"idle_connections,omitempty"`
	Error        string        `json:"error,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// CheckHealth pings the database and runs a trivial query.
func CheckHealth(ctx context.Context, db PostgreSQLClient) *HealthCheck {
	start := time.Now()
	health := &HealthCheck{DatabaseName: db.DatabaseName()}

	if stats := db.Stats(); stats != nil {
		health.TotalConns = stats.TotalConns()
		health.IdleConns = stats.IdleConns()
	}

	if err := db.Ping(ctx); err != nil {
		health.Status = statusUnhealthy
		health.Error = fmt.Sprintf("ping failed: %v", err)
		health.ResponseTime = time.Since(start)
		return health
	}

	var one int
	if err := db.QueryRow(ctx, "SELECT 1").Scan(&one); err != nil {
		health.Status = statusUnhealthy
		health.Error = fmt.Sprintf("probe query failed: %v", err)
		health.ResponseTime = time.Since(start)
		return health
	}

	health.Status = statusHealthy
	health.ResponseTime = time.Since(start)
	return health
}

// IsHealthy reports whether CheckHealth succeeded.
func (h *HealthCheck) IsHealthy() bool {
	return h.Status == statusHealthy
}

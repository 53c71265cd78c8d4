package dashboard

import (
	"context"
	"time"
)

type DashboardService interface {
	// GetStats reports counters for today in the service timezone.
	GetStats(ctx context.Context) (StatsResponse, error)
	GetStatsForDate(ctx context.Context, date time.Time) (StatsResponse, error)
}

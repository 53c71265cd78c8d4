package dashboard

import (
	"context"
	"log/slog"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type DashboardServiceImpl struct {
	dashboard.DashboardRepository
	clock    clock.Clock
	location *time.Location
}

func NewDashboardService(repo dashboard.DashboardRepository, clk clock.Clock, location *time.Location) dashboard.DashboardService {
	if clk == nil {
		clk = clock.Real()
	}
	if location == nil {
		location = time.UTC
	}
	return &DashboardServiceImpl{
		DashboardRepository: repo,
		clock:               clk,
		location:            location,
	}
}

func (s *DashboardServiceImpl) GetStats(ctx context.Context) (dashboard.StatsResponse, error) {
	return s.GetStatsForDate(ctx, clock.Today(s.clock, s.location))
}

// GetStatsForDate runs the four counts concurrently. They are independent
// reads, so the result is not a single snapshot.
func (s *DashboardServiceImpl) GetStatsForDate(ctx context.Context, date time.Time) (dashboard.StatsResponse, error) {
	stats := dashboard.StatsResponse{Date: date.Format(validator.DateLayout)}

	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		n, err := s.CountActiveEmployees(gCtx)
		stats.TotalEmployees = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountActiveDepartments(gCtx)
		stats.Departments = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAttendance(gCtx, date)
		stats.TodayAttendance = n
		return err
	})

	g.Go(func() error {
		n, err := s.CountAttendanceByStatus(gCtx, date, string(attendance.StatusPresent))
		stats.PresentToday = n
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to load dashboard stats", "date", stats.Date, "error", err)
		return dashboard.StatsResponse{}, database.WrapStoreError("dashboard stats", "error loading dashboard", err)
	}

	return stats, nil
}

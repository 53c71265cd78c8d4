package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/config"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/department"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/leave"
	appHTTP "github.com/cmlabs-hris/attendance-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/clock"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/metrics"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/postgresql"
	"github.com/cmlabs-hris/attendance-backend-go/internal/repository/sqlite"
	attendanceService "github.com/cmlabs-hris/attendance-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/attendance-backend-go/internal/service/dashboard"
	departmentService "github.com/cmlabs-hris/attendance-backend-go/internal/service/department"
	employeeService "github.com/cmlabs-hris/attendance-backend-go/internal/service/employee"
	leaveService "github.com/cmlabs-hris/attendance-backend-go/internal/service/leave"
	"github.com/go-chi/jwtauth/v5"
)

// store bundles the repositories of one backend.
type store struct {
	tx          database.Transactor
	departments department.DepartmentRepository
	employees   employee.EmployeeRepository
	attendance  attendance.AttendanceRepository
	leave       leave.LeaveRequestRepository
	dashboard   dashboard.DashboardRepository
	close       func()
}

func openStore(ctx context.Context, cfg *config.Config) (*store, error) {
	if cfg.Database.AutoMigrate {
		if err := database.RunMigration("up", cfg.Database.Driver, cfg.StoreDSN()); err != nil {
			return nil, fmt.Errorf("auto migrate: %w", err)
		}
		slog.Info("migrations applied", "driver", cfg.Database.Driver)
	}

	switch cfg.Database.Driver {
	case database.DriverSQLite:
		db, err := database.NewSQLiteDB(ctx, cfg.Database.SQLitePath)
		if err != nil {
			return nil, err
		}
		return &store{
			tx:          db,
			departments: sqlite.NewDepartmentRepository(db),
			employees:   sqlite.NewEmployeeRepository(db),
			attendance:  sqlite.NewAttendanceRepository(db),
			leave:       sqlite.NewLeaveRequestRepository(db),
			dashboard:   sqlite.NewDashboardRepository(db),
			close:       func() { _ = db.Close() },
		}, nil
	default:
		db, err := database.NewPostgreSQLDB(ctx, cfg.DatabaseURL(), database.PoolOptions{
			MaxConns:        int32(cfg.Database.MaxConns),
			MinConns:        int32(cfg.Database.MinConns),
			MaxConnLifetime: cfg.Database.ConnMaxLifetime,
			MaxConnIdleTime: cfg.Database.ConnMaxIdleTime,
		})
		if err != nil {
			return nil, err
		}
		return &store{
			tx:          db,
			departments: postgresql.NewDepartmentRepository(db),
			employees:   postgresql.NewEmployeeRepository(db),
			attendance:  postgresql.NewAttendanceRepository(db),
			leave:       postgresql.NewLeaveRequestRepository(db),
			dashboard:   postgresql.NewDashboardRepository(db),
			close:       db.Close,
		}, nil
	}
}

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(os.Stdout, cfg.App.SlogLevel(), cfg.App.Env)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer st.close()

	clk := clock.Real()
	location := cfg.App.Location()

	departmentSvc := departmentService.NewDepartmentService(st.departments)
	employeeSvc := employeeService.NewEmployeeService(st.tx, st.employees, st.departments, clk)
	attendanceSvc := attendanceService.NewAttendanceService(st.tx, st.attendance, st.employees, clk)
	leaveSvc := leaveService.NewLeaveService(st.tx, st.leave, st.employees, clk)
	dashboardSvc := dashboardService.NewDashboardService(st.dashboard, clk, location)

	var tokenAuth *jwtauth.JWTAuth
	if cfg.JWT.Secret != "" {
		tokenAuth = jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.TokenTTL()).JWTAuth()
	} else {
		slog.Warn("JWT_SECRET_KEY not set, bearer tokens are ignored", "default_actor", cfg.App.DefaultActor)
	}

	router := appHTTP.NewRouter(appHTTP.RouterConfig{
		Logger:         log,
		AllowedOrigins: cfg.App.CORSOrigins,
		TokenAuth:      tokenAuth,
		DefaultActor:   cfg.App.DefaultActor,
		Metrics:        metrics.New(),
	}, appHTTP.Handlers{
		Department: appHTTP.NewDepartmentHandler(departmentSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, clk, location),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Dashboard:  appHTTP.NewDashboardHandler(dashboardSvc),
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", server.Addr, "driver", cfg.Database.Driver)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	slog.Info("shutting down")
	return server.Shutdown(shutdownCtx)
}

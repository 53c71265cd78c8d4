package sqlite

import (
	"context"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/attendance-backend-go/internal/pkg/database"
)

type dashboardRepositoryImpl struct {
	db *database.SQLiteDB
}

func NewDashboardRepository(db *database.SQLiteDB) dashboard.DashboardRepository {
	return &dashboardRepositoryImpl{db: db}
}

func (r *dashboardRepositoryImpl) count(ctx context.Context, query string, args ...any) (int64, error) {
	var n int64
	err := GetQuerier(ctx, r.db).QueryRowContext(ctx, query, args...).Scan(&n)
	return n, err
}

func (r *dashboardRepositoryImpl) CountActiveEmployees(ctx context.Context) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM employees WHERE status = 'active'`)
}

func (r *dashboardRepositoryImpl) CountActiveDepartments(ctx context.Context) (int64, error) {
	return r.count(ctx, `
		SELECT COUNT(DISTINCT department_id)
		FROM employees
		WHERE status = 'active' AND department_id IS NOT NULL
	`)
}

func (r *dashboardRepositoryImpl) CountAttendance(ctx context.Context, date time.Time) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendance WHERE attendance_date = ?1`, formatDate(date))
}

func (r *dashboardRepositoryImpl) CountAttendanceByStatus(ctx context.Context, date time.Time, status string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM attendance WHERE attendance_date = ?1 AND status = ?2`, formatDate(date), status)
}

package attendance

import (
	"context"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	CountAbsentDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) CountAbsentDays(ctx context.Context, companyID, employeeID string, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Attendance{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusAbsent).
		Where("attendance_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Count(&count).Error
	return int(count), err
}

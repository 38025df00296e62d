package leave

import (
	"context"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=leave_repo.go -destination=mock/leave_repo_mock.go -package=mock
type Repository interface {
	FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Leave, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// FindApprovedUnpaidOverlapping returns the approved LOP and UNPAID leaves
// whose span touches [from, to]. Clipping to the payroll month is the
// caller's job.
func (r *repository) FindApprovedUnpaidOverlapping(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]Leave, error) {
	var rows []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApproved).
		Where("leave_type IN ?", []string{TypeLOP, TypeUnpaid}).
		Where("NOT (end_date < ? OR start_date > ?)", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("start_date ASC").
		Find(&rows).Error
	return rows, err
}

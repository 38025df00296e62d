package rbac

import (
	"context"
	"errors"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:generate mockgen -source=rbac_repo.go -destination=mock/rbac_repo_mock.go -package=mock
type Repository interface {
	GetRole(ctx context.Context, companyID, employeeID string) (string, error)
	GetAssignments(ctx context.Context, companyID string) ([]RoleAssignment, error)
	Upsert(ctx context.Context, assignment *RoleAssignment) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// GetRole returns the employee's function role, or "" when none is assigned.
func (r *repository) GetRole(ctx context.Context, companyID, employeeID string) (string, error) {
	var assignment RoleAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		First(&assignment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return assignment.Role, nil
}

func (r *repository) GetAssignments(ctx context.Context, companyID string) ([]RoleAssignment, error) {
	var rows []RoleAssignment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Find(&rows).Error
	return rows, err
}

// Upsert replaces the employee's role; an employee holds one role at a time.
func (r *repository) Upsert(ctx context.Context, assignment *RoleAssignment) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "company_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"role", "updated_at"}),
		}).
		Create(assignment).Error
}

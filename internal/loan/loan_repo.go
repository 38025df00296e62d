package loan

import (
	"context"
	"database/sql"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_repo.go -destination=mock/loan_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, loan *Loan) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Loan, error)
	FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error)
	FindDueUnlinked(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]EmiScheduleEntry, error)
	LinkToPayroll(ctx context.Context, companyID string, entryIDs []uuid.UUID, payrollRecordID uuid.UUID) error
	UnlinkPayroll(ctx context.Context, companyID, payrollRecordID string) error
	FindByPayrollRecord(ctx context.Context, companyID, payrollRecordID string) ([]EmiScheduleEntry, error)
}

type repository struct {
	db *gorm.DB
	tx *sql.Tx
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: r.db, tx: tx}
}

// conn binds the gorm session to the service-level transaction when present.
func (r *repository) conn(ctx context.Context) *gorm.DB {
	if r.tx == nil {
		return r.db.WithContext(ctx)
	}
	session := r.db.WithContext(ctx).Session(&gorm.Session{NewDB: true})
	session.Statement.ConnPool = r.tx
	return session
}

func (r *repository) Create(ctx context.Context, loan *Loan) error {
	return r.conn(ctx).Create(loan).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Loan, error) {
	var l Loan
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Schedule", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		First(&l, "id = ?", id).Error
	return &l, err
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]Loan, error) {
	var rows []Loan
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("created_at DESC").
		Find(&rows).Error
	return rows, err
}

// FindDueUnlinked returns still-unlinked installments of active loans whose
// due date falls inside [from, to].
func (r *repository) FindDueUnlinked(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]EmiScheduleEntry, error) {
	var rows []EmiScheduleEntry
	err := r.conn(ctx).
		Joins("JOIN loans ON loans.id = emi_schedule_entries.loan_id").
		Where("emi_schedule_entries.company_id = ?", companyID).
		Where("loans.employee_id = ?", employeeID).
		Where("loans.status = ?", StatusActive).
		Where("emi_schedule_entries.payroll_record_id IS NULL").
		Where("emi_schedule_entries.due_date BETWEEN ? AND ?", from.Format("2006-01-02"), to.Format("2006-01-02")).
		Order("emi_schedule_entries.due_date ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) LinkToPayroll(ctx context.Context, companyID string, entryIDs []uuid.UUID, payrollRecordID uuid.UUID) error {
	if len(entryIDs) == 0 {
		return nil
	}
	return r.conn(ctx).
		Model(&EmiScheduleEntry{}).
		Scopes(tenant.Scope(companyID)).
		Where("id IN ?", entryIDs).
		Update("payroll_record_id", payrollRecordID).Error
}

// UnlinkPayroll releases every installment linked to the record so a later
// run can pick them up again.
func (r *repository) UnlinkPayroll(ctx context.Context, companyID, payrollRecordID string) error {
	return r.conn(ctx).
		Model(&EmiScheduleEntry{}).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_record_id = ?", payrollRecordID).
		Update("payroll_record_id", nil).Error
}

func (r *repository) FindByPayrollRecord(ctx context.Context, companyID, payrollRecordID string) ([]EmiScheduleEntry, error) {
	var rows []EmiScheduleEntry
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_record_id = ?", payrollRecordID).
		Order("due_date ASC").
		Find(&rows).Error
	return rows, err
}

package payroll

import (
	"context"
	"database/sql"
	"errors"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/tenant"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, record *PayrollRecord) error
	Update(ctx context.Context, record *PayrollRecord) error
	AppendHistory(ctx context.Context, entry *ApprovalEntry) error
	ReplaceDetails(ctx context.Context, record *PayrollRecord, details []LoanDeductionDetail) error
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error)
	FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*PayrollRecord, error)
	FindAllByCompany(ctx context.Context, companyID string, month, year int) ([]PayrollRecord, error)
	Delete(ctx context.Context, companyID, id string) error
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

func (r *repository) Create(ctx context.Context, record *PayrollRecord) error {
	return r.conn(ctx).Omit("Details", "History").Create(record).Error
}

func (r *repository) Update(ctx context.Context, record *PayrollRecord) error {
	return r.conn(ctx).Omit("Details", "History").Save(record).Error
}

func (r *repository) AppendHistory(ctx context.Context, entry *ApprovalEntry) error {
	return r.conn(ctx).Create(entry).Error
}

// ReplaceDetails rewrites the record's loan detail rows. Details are only
// written while the record is DRAFT, so a delete-and-insert is safe.
func (r *repository) ReplaceDetails(ctx context.Context, record *PayrollRecord, details []LoanDeductionDetail) error {
	if err := r.conn(ctx).
		Where("payroll_record_id = ?", record.ID).
		Delete(&LoanDeductionDetail{}).Error; err != nil {
		return err
	}
	if len(details) == 0 {
		return nil
	}
	for i := range details {
		details[i].PayrollRecordID = record.ID
	}
	return r.conn(ctx).Create(&details).Error
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Preload("Details").
		Preload("History", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at ASC")
		}).
		First(&record, "id = ?", id).Error
	return &record, err
}

func (r *repository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*PayrollRecord, error) {
	var record PayrollRecord
	err := r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND pay_month = ? AND pay_year = ?", employeeID, month, year).
		First(&record).Error
	return &record, err
}

// FindAllByCompany lists a company's records, optionally narrowed to one
// period when month and year are non-zero.
func (r *repository) FindAllByCompany(ctx context.Context, companyID string, month, year int) ([]PayrollRecord, error) {
	q := r.conn(ctx).Scopes(tenant.Scope(companyID))
	if month > 0 && year > 0 {
		q = q.Where("pay_month = ? AND pay_year = ?", month, year)
	}
	var rows []PayrollRecord
	err := q.Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// Delete hard-deletes a record with its detail and history rows. The
// service only calls it for DRAFT records.
func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	if err := r.conn(ctx).
		Where("payroll_record_id = ?", id).
		Delete(&LoanDeductionDetail{}).Error; err != nil {
		return err
	}
	if err := r.conn(ctx).
		Where("payroll_record_id = ?", id).
		Delete(&ApprovalEntry{}).Error; err != nil {
		return err
	}
	return r.conn(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&PayrollRecord{}, "id = ?", id).Error
}

// IsDuplicateKey reports whether err is a unique-constraint violation, in
// both the translated-gorm and the raw-pgx form.
func IsDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

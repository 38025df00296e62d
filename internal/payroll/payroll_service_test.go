package payroll_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/employee"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/events"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/loan"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/messaging/kafka"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll"
	payrollerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type fakePayrollRepository struct {
	createFn                  func(ctx context.Context, record *payroll.PayrollRecord) error
	updateFn                  func(ctx context.Context, record *payroll.PayrollRecord) error
	appendHistoryFn           func(ctx context.Context, entry *payroll.ApprovalEntry) error
	replaceDetailsFn          func(ctx context.Context, record *payroll.PayrollRecord, details []payroll.LoanDeductionDetail) error
	findByIDAndCompanyFn      func(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error)
	findByEmployeeAndPeriodFn func(ctx context.Context, companyID, employeeID string, month, year int) (*payroll.PayrollRecord, error)
	findAllByCompanyFn        func(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error)
	deleteFn                  func(ctx context.Context, companyID, id string) error
}

func (f *fakePayrollRepository) WithTx(tx *sql.Tx) payroll.Repository { return f }

func (f *fakePayrollRepository) Create(ctx context.Context, record *payroll.PayrollRecord) error {
	if f.createFn != nil {
		return f.createFn(ctx, record)
	}
	return nil
}

func (f *fakePayrollRepository) Update(ctx context.Context, record *payroll.PayrollRecord) error {
	if f.updateFn != nil {
		return f.updateFn(ctx, record)
	}
	return nil
}

func (f *fakePayrollRepository) AppendHistory(ctx context.Context, entry *payroll.ApprovalEntry) error {
	if f.appendHistoryFn != nil {
		return f.appendHistoryFn(ctx, entry)
	}
	return nil
}

func (f *fakePayrollRepository) ReplaceDetails(ctx context.Context, record *payroll.PayrollRecord, details []payroll.LoanDeductionDetail) error {
	if f.replaceDetailsFn != nil {
		return f.replaceDetailsFn(ctx, record, details)
	}
	return nil
}

func (f *fakePayrollRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*payroll.PayrollRecord, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindByEmployeeAndPeriod(ctx context.Context, companyID, employeeID string, month, year int) (*payroll.PayrollRecord, error) {
	if f.findByEmployeeAndPeriodFn != nil {
		return f.findByEmployeeAndPeriodFn(ctx, companyID, employeeID, month, year)
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakePayrollRepository) FindAllByCompany(ctx context.Context, companyID string, month, year int) ([]payroll.PayrollRecord, error) {
	if f.findAllByCompanyFn != nil {
		return f.findAllByCompanyFn(ctx, companyID, month, year)
	}
	return nil, nil
}

func (f *fakePayrollRepository) Delete(ctx context.Context, companyID, id string) error {
	if f.deleteFn != nil {
		return f.deleteFn(ctx, companyID, id)
	}
	return nil
}

type fakeEmployeeRepository struct {
	findActiveByCompanyFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDAndCompanyFn  func(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

func (f *fakeEmployeeRepository) FindActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	if f.findActiveByCompanyFn != nil {
		return f.findActiveByCompanyFn(ctx, companyID)
	}
	return nil, nil
}

func (f *fakeEmployeeRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	if f.findByIDAndCompanyFn != nil {
		return f.findByIDAndCompanyFn(ctx, companyID, id)
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeLoanRepository struct {
	findDueUnlinkedFn     func(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]loan.EmiScheduleEntry, error)
	linkToPayrollFn       func(ctx context.Context, companyID string, entryIDs []uuid.UUID, payrollRecordID uuid.UUID) error
	unlinkPayrollFn       func(ctx context.Context, companyID, payrollRecordID string) error
	findByPayrollRecordFn func(ctx context.Context, companyID, payrollRecordID string) ([]loan.EmiScheduleEntry, error)
}

func (f *fakeLoanRepository) WithTx(tx *sql.Tx) loan.Repository { return f }

func (f *fakeLoanRepository) Create(ctx context.Context, l *loan.Loan) error { return nil }

func (f *fakeLoanRepository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*loan.Loan, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeLoanRepository) FindAllByCompany(ctx context.Context, companyID string) ([]loan.Loan, error) {
	return nil, nil
}

func (f *fakeLoanRepository) FindDueUnlinked(ctx context.Context, companyID, employeeID string, from, to time.Time) ([]loan.EmiScheduleEntry, error) {
	if f.findDueUnlinkedFn != nil {
		return f.findDueUnlinkedFn(ctx, companyID, employeeID, from, to)
	}
	return nil, nil
}

func (f *fakeLoanRepository) LinkToPayroll(ctx context.Context, companyID string, entryIDs []uuid.UUID, payrollRecordID uuid.UUID) error {
	if f.linkToPayrollFn != nil {
		return f.linkToPayrollFn(ctx, companyID, entryIDs, payrollRecordID)
	}
	return nil
}

func (f *fakeLoanRepository) UnlinkPayroll(ctx context.Context, companyID, payrollRecordID string) error {
	if f.unlinkPayrollFn != nil {
		return f.unlinkPayrollFn(ctx, companyID, payrollRecordID)
	}
	return nil
}

func (f *fakeLoanRepository) FindByPayrollRecord(ctx context.Context, companyID, payrollRecordID string) ([]loan.EmiScheduleEntry, error) {
	if f.findByPayrollRecordFn != nil {
		return f.findByPayrollRecordFn(ctx, companyID, payrollRecordID)
	}
	return nil, nil
}

type fakeRoleDirectory struct {
	roleOfFn func(ctx context.Context, companyID, employeeID string) (string, error)
}

func (f *fakeRoleDirectory) RoleOf(ctx context.Context, companyID, employeeID string) (string, error) {
	if f.roleOfFn != nil {
		return f.roleOfFn(ctx, companyID, employeeID)
	}
	return payroll.RoleMaker, nil
}

type fakeOutboxRepository struct {
	createFn func(ctx context.Context, event kafka.OutboxEvent) error
}

func (f *fakeOutboxRepository) WithTx(tx *sql.Tx) kafka.OutboxRepository { return f }

func (f *fakeOutboxRepository) Create(ctx context.Context, event kafka.OutboxEvent) error {
	if f.createFn != nil {
		return f.createFn(ctx, event)
	}
	return nil
}

func (f *fakeOutboxRepository) ListPending(ctx context.Context, limit int) ([]kafka.OutboxEvent, error) {
	return nil, nil
}

func (f *fakeOutboxRepository) MarkSent(ctx context.Context, id string) error { return nil }

func (f *fakeOutboxRepository) MarkFailed(ctx context.Context, id string, reason string) error {
	return nil
}

type payrollServiceDeps struct {
	db        *sql.DB
	sqlMock   sqlmock.Sqlmock
	service   payroll.Service
	repo      *fakePayrollRepository
	employees *fakeEmployeeRepository
	loans     *fakeLoanRepository
	roles     *fakeRoleDirectory
	outbox    *fakeOutboxRepository
}

func setupPayrollServiceTest(t *testing.T) *payrollServiceDeps {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)

	logger := zap.NewNop()
	repo := &fakePayrollRepository{}
	employees := &fakeEmployeeRepository{}
	loans := &fakeLoanRepository{}
	roles := &fakeRoleDirectory{}
	outbox := &fakeOutboxRepository{}

	svc := payroll.NewService(
		db,
		repo,
		employees,
		payroll.NewLopReconciler(&fakeAttendanceRepository{}, &fakeLeaveRepository{}, logger),
		payroll.NewLoanIntegrator(loans, logger),
		roles,
		outbox,
		nil,
		logger,
	)

	return &payrollServiceDeps{
		db:        db,
		sqlMock:   sqlMock,
		service:   svc,
		repo:      repo,
		employees: employees,
		loans:     loans,
		roles:     roles,
		outbox:    outbox,
	}
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func activeEmployee(companyID uuid.UUID, ctc float64, location string) *employee.Employee {
	return &employee.Employee{
		ID:           uuid.New(),
		CompanyID:    companyID,
		EmployeeCode: "EMP-000042",
		FullName:     "Asha Verma",
		Designation:  "Engineer",
		Location:     location,
		CTC:          ctc,
		Status:       employee.StatusActive,
	}
}

func TestPayrollService_Create(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := activeEmployee(companyID, 50000, "Mumbai")
	deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return emp, nil
	}

	loanID := uuid.New()
	dueEntry := loan.EmiScheduleEntry{
		ID:          uuid.New(),
		CompanyID:   companyID,
		LoanID:      loanID,
		Sequence:    3,
		DueDate:     time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Installment: decimal.NewFromInt(2000),
		Balance:     decimal.NewFromInt(8000),
	}
	deps.loans.findDueUnlinkedFn = func(ctx context.Context, cid, eid string, from, to time.Time) ([]loan.EmiScheduleEntry, error) {
		return []loan.EmiScheduleEntry{dueEntry}, nil
	}
	deps.loans.findByPayrollRecordFn = func(ctx context.Context, cid, rid string) ([]loan.EmiScheduleEntry, error) {
		return []loan.EmiScheduleEntry{dueEntry}, nil
	}

	var createdRecord *payroll.PayrollRecord
	deps.repo.createFn = func(ctx context.Context, record *payroll.PayrollRecord) error {
		createdRecord = record
		return nil
	}
	var historyActions []string
	deps.repo.appendHistoryFn = func(ctx context.Context, entry *payroll.ApprovalEntry) error {
		historyActions = append(historyActions, entry.Action)
		return nil
	}
	var stagedTopics []string
	deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
		stagedTopics = append(stagedTopics, event.Topic)
		return nil
	}

	expectTx(t, deps.sqlMock, true)

	resp, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
		EmployeeID: emp.ID.String(),
		Month:      2,
		Year:       2026,
	})

	assert.NoError(t, err)
	assert.NotNil(t, createdRecord)

	// 50000 CTC, Mumbai: basic 20000, DA 5000, HRA 10000 (metro), other 7500.
	assert.Equal(t, float64(20000), resp.BasicSalary)
	assert.Equal(t, float64(5000), resp.DearnessAllowance)
	assert.Equal(t, float64(10000), resp.HouseRentAllowance)
	assert.Equal(t, float64(7500), resp.OtherAllowances)
	assert.Equal(t, float64(42500), resp.GrossSalary)

	// PF on basic+DA; ESI zero above the ceiling; one month of slab tax.
	assert.Equal(t, float64(3000), resp.PfEmployee)
	assert.Equal(t, float64(3000), resp.PfEmployer)
	assert.Zero(t, resp.EsiEmployee)
	assert.Equal(t, float64(1208), resp.IncomeTax)
	assert.Equal(t, float64(200), resp.ProfTax)
	assert.Equal(t, float64(2000), resp.LoanDeduction)

	assert.Equal(t, float64(36092), resp.NetSalary)
	assert.Equal(t, payroll.StatusDraft, resp.Status)
	assert.Equal(t, actorID, resp.MakerID)

	assert.Equal(t, []string{payroll.ActionCreate}, historyActions)
	assert.Equal(t, []string{events.PayrollGeneratedTopic}, stagedTopics)
	assert.Len(t, resp.Details, 1)
	assert.Equal(t, loanID.String(), resp.Details[0].LoanID)

	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_AlreadyProcessed(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := activeEmployee(companyID, 50000, "Pune")
	deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return emp, nil
	}
	deps.repo.findByEmployeeAndPeriodFn = func(ctx context.Context, cid, eid string, month, year int) (*payroll.PayrollRecord, error) {
		return &payroll.PayrollRecord{ID: uuid.New(), EmployeeID: emp.ID}, nil
	}

	// The existence check fires before any transaction opens; no sqlmock
	// expectations are registered, so a stray Begin would fail the test.
	_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
		EmployeeID: emp.ID.String(),
		Month:      2,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_DuplicateRace(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := activeEmployee(companyID, 50000, "Pune")
	deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return emp, nil
	}
	// The existence check finds nothing, but a concurrent writer wins the
	// insert; the unique constraint maps to the same benign outcome.
	deps.repo.createFn = func(ctx context.Context, record *payroll.PayrollRecord) error {
		return gorm.ErrDuplicatedKey
	}

	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
		EmployeeID: emp.ID.String(),
		Month:      2,
		Year:       2026,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrPayrollExists)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_LoanLinkFailure(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := activeEmployee(companyID, 50000, "Mumbai")
	deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return emp, nil
	}

	dueEntry := loan.EmiScheduleEntry{
		ID:          uuid.New(),
		CompanyID:   companyID,
		LoanID:      uuid.New(),
		Sequence:    1,
		DueDate:     time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		Installment: decimal.NewFromInt(2000),
		Balance:     decimal.NewFromInt(10000),
	}
	deps.loans.findDueUnlinkedFn = func(ctx context.Context, cid, eid string, from, to time.Time) ([]loan.EmiScheduleEntry, error) {
		return []loan.EmiScheduleEntry{dueEntry}, nil
	}
	linkErr := errors.New("emi schedule update failed")
	deps.loans.linkToPayrollFn = func(ctx context.Context, cid string, entryIDs []uuid.UUID, recordID uuid.UUID) error {
		return linkErr
	}

	// A failed link pass aborts the employee's unit of work and rolls the
	// transaction back; nothing is kept from the first pass.
	expectTx(t, deps.sqlMock, false)

	_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
		EmployeeID: emp.ID.String(),
		Month:      2,
		Year:       2026,
	})

	assert.ErrorIs(t, err, linkErr)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Create_Guards(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	actorID := uuid.New().String()

	t.Run("only maker may create", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return payroll.RoleChecker, nil
		}

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: uuid.New().String(),
			Month:      2,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrRoleViolation)
	})

	t.Run("actor without role", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return "", nil
		}

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: uuid.New().String(),
			Month:      2,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrRoleViolation)
	})

	t.Run("inactive employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(companyID, 50000, "Pune")
		emp.Status = employee.StatusResigned
		deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return emp, nil
		}

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: emp.ID.String(),
			Month:      2,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotActive)
	})

	t.Run("missing compensation", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		emp := activeEmployee(companyID, 0, "Pune")
		deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
			return emp, nil
		}

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: emp.ID.String(),
			Month:      2,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrMissingCompensation)
	})

	t.Run("unknown employee", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: uuid.New().String(),
			Month:      2,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrEmployeeNotFound)
	})

	t.Run("invalid period", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Create(ctx, companyID.String(), actorID, payroll.CreatePayrollRequest{
			EmployeeID: uuid.New().String(),
			Month:      13,
			Year:       2026,
		})
		assert.ErrorIs(t, err, payrollerrors.ErrInvalidPeriod)
	})
}

func draftRecord(companyID, makerID uuid.UUID) *payroll.PayrollRecord {
	return &payroll.PayrollRecord{
		ID:          uuid.New(),
		CompanyID:   companyID,
		EmployeeID:  uuid.New(),
		PayMonth:    2,
		PayYear:     2026,
		BasicSalary: 20000,
		GrossSalary: 42500,
		NetSalary:   36092,
		Status:      payroll.StatusDraft,
		MakerID:     makerID,
	}
}

func TestPayrollService_Lifecycle(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	makerID := uuid.New()
	checkerID := uuid.New()
	financeID := uuid.New()

	t.Run("maker submits draft", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Submit(ctx, companyID.String(), makerID.String(), record.ID.String(), payroll.TransitionRequest{})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusSubmitted, resp.Status)
		assert.NotNil(t, resp.SubmittedAt)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("checker approves and is recorded", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		record.Status = payroll.StatusSubmitted
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}
		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return payroll.RoleChecker, nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Approve(ctx, companyID.String(), checkerID.String(), record.ID.String(), payroll.TransitionRequest{Comment: "ok"})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusApproved, resp.Status)
		assert.NotNil(t, resp.CheckerID)
		assert.Equal(t, checkerID.String(), *resp.CheckerID)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("maker cannot approve own record even as checker", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		record.Status = payroll.StatusSubmitted
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}
		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return payroll.RoleChecker, nil
		}

		expectTx(t, deps.sqlMock, false)

		_, err := deps.service.Approve(ctx, companyID.String(), makerID.String(), record.ID.String(), payroll.TransitionRequest{})

		assert.ErrorIs(t, err, payrollerrors.ErrSelfApprovalForbidden)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("reject requires a reason", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		_, err := deps.service.Reject(ctx, companyID.String(), checkerID.String(), uuid.New().String(), payroll.RejectRequest{Reason: "   "})

		assert.ErrorIs(t, err, payrollerrors.ErrRejectionReasonRequired)
	})

	t.Run("reject releases loan installments", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		record.Status = payroll.StatusSubmitted
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}
		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return payroll.RoleChecker, nil
		}
		var released string
		deps.loans.unlinkPayrollFn = func(ctx context.Context, cid, rid string) error {
			released = rid
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		resp, err := deps.service.Reject(ctx, companyID.String(), checkerID.String(), record.ID.String(), payroll.RejectRequest{Reason: "numbers look off"})

		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusRejected, resp.Status)
		assert.NotNil(t, resp.RejectionReason)
		assert.Equal(t, "numbers look off", *resp.RejectionReason)
		assert.Equal(t, record.ID.String(), released)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("finance processes and marks paid stages event", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		record.Status = payroll.StatusApproved
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}
		deps.roles.roleOfFn = func(ctx context.Context, cid, eid string) (string, error) {
			return payroll.RoleFinance, nil
		}
		var stagedTopics []string
		deps.outbox.createFn = func(ctx context.Context, event kafka.OutboxEvent) error {
			stagedTopics = append(stagedTopics, event.Topic)
			return nil
		}

		expectTx(t, deps.sqlMock, true)
		resp, err := deps.service.Process(ctx, companyID.String(), financeID.String(), record.ID.String(), payroll.TransitionRequest{})
		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusProcessed, resp.Status)

		expectTx(t, deps.sqlMock, true)
		resp, err = deps.service.MarkPaid(ctx, companyID.String(), financeID.String(), record.ID.String(), payroll.TransitionRequest{})
		assert.NoError(t, err)
		assert.Equal(t, payroll.StatusPaid, resp.Status)
		assert.NotNil(t, resp.PaidAt)

		assert.Equal(t, []string{events.PayrollPaidTopic}, stagedTopics)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestPayrollService_Update_OnlyDraft(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	makerID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	record := draftRecord(companyID, makerID)
	record.Status = payroll.StatusProcessed
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
		return record, nil
	}

	expectTx(t, deps.sqlMock, false)

	other := 9000.0
	_, err := deps.service.Update(ctx, companyID.String(), makerID.String(), record.ID.String(), payroll.UpdatePayrollRequest{
		OtherAllowances: &other,
	})

	assert.ErrorIs(t, err, payrollerrors.ErrRecordImmutable)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Update_RecomputesDerived(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	makerID := uuid.New()

	deps := setupPayrollServiceTest(t)
	defer deps.db.Close()

	emp := activeEmployee(companyID, 50000, "Mumbai")
	record := &payroll.PayrollRecord{
		ID:                 uuid.New(),
		CompanyID:          companyID,
		EmployeeID:         emp.ID,
		PayMonth:           2,
		PayYear:            2026,
		BasicSalary:        20000,
		DearnessAllowance:  5000,
		HouseRentAllowance: 10000,
		OtherAllowances:    7500,
		GrossSalary:        42500,
		PfEmployee:         3000,
		PfEmployer:         3000,
		IncomeTax:          1208,
		ProfTax:            200,
		NetSalary:          38092,
		Status:             payroll.StatusDraft,
		MakerID:            makerID,
	}
	deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
		return record, nil
	}
	deps.employees.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*employee.Employee, error) {
		return emp, nil
	}

	expectTx(t, deps.sqlMock, true)

	lopDays := 3
	resp, err := deps.service.Update(ctx, companyID.String(), makerID.String(), record.ID.String(), payroll.UpdatePayrollRequest{
		LopDays: &lopDays,
	})

	assert.NoError(t, err)
	assert.Equal(t, 3, resp.LopDays)
	// 3 days at 42500/30 per day.
	assert.Equal(t, float64(4250), resp.LopDeduction)
	assert.Equal(t, float64(42500), resp.GrossSalary)
	assert.Equal(t, float64(33842), resp.NetSalary)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestPayrollService_Delete(t *testing.T) {
	ctx := context.Background()
	companyID := uuid.New()
	makerID := uuid.New()

	t.Run("draft delete releases loans", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}
		var released, deleted string
		deps.loans.unlinkPayrollFn = func(ctx context.Context, cid, rid string) error {
			released = rid
			return nil
		}
		deps.repo.deleteFn = func(ctx context.Context, cid, id string) error {
			deleted = id
			return nil
		}

		expectTx(t, deps.sqlMock, true)

		err := deps.service.Delete(ctx, companyID.String(), makerID.String(), record.ID.String())

		assert.NoError(t, err)
		assert.Equal(t, record.ID.String(), released)
		assert.Equal(t, record.ID.String(), deleted)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("non-draft cannot be deleted", func(t *testing.T) {
		deps := setupPayrollServiceTest(t)
		defer deps.db.Close()

		record := draftRecord(companyID, makerID)
		record.Status = payroll.StatusApproved
		deps.repo.findByIDAndCompanyFn = func(ctx context.Context, cid, id string) (*payroll.PayrollRecord, error) {
			return record, nil
		}

		expectTx(t, deps.sqlMock, false)

		err := deps.service.Delete(ctx, companyID.String(), makerID.String(), record.ID.String())

		assert.ErrorIs(t, err, payrollerrors.ErrDeleteOnlyDraft)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

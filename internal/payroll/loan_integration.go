package payroll

import (
	"context"
	"database/sql"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/loan"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LoanIntegrator folds due loan installments into a payroll record. It runs
// twice per record: DueDeduction before the insert (the record id does not
// exist yet), LinkToRecord after it, writing the back-reference and
// returning the authoritative total in case an installment became due
// between the two passes.
type LoanIntegrator struct {
	loans  loan.Repository
	logger *zap.Logger
}

func NewLoanIntegrator(loans loan.Repository, logger ...*zap.Logger) *LoanIntegrator {
	l := zap.L().Named("payroll.loans")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.loans")
	}
	return &LoanIntegrator{loans: loans, logger: l}
}

func (i *LoanIntegrator) WithTx(tx *sql.Tx) *LoanIntegrator {
	return &LoanIntegrator{loans: i.loans.WithTx(tx), logger: i.logger}
}

// DueDeduction computes the period's loan deduction and per-loan detail
// rows. A failed schedule lookup degrades to a zero deduction with a logged
// warning; payroll continues without it.
func (i *LoanIntegrator) DueDeduction(ctx context.Context, companyID, employeeID string, month, year int) (float64, []LoanDeductionDetail) {
	from, to := periodBounds(month, year)

	entries, err := i.loans.FindDueUnlinked(ctx, companyID, employeeID, from, to)
	if err != nil {
		i.logger.Warn("loan schedule lookup failed, treating loan deduction as zero",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return 0, nil
	}

	return sumEntries(companyID, entries)
}

// LinkToRecord stamps the payroll record id onto the period's due schedule
// entries and returns the recomputed deduction total and details. Callers
// compare the total against the first pass and correct the record if they
// differ.
func (i *LoanIntegrator) LinkToRecord(ctx context.Context, companyID, employeeID string, month, year int, recordID uuid.UUID) (float64, []LoanDeductionDetail, error) {
	from, to := periodBounds(month, year)

	entries, err := i.loans.FindDueUnlinked(ctx, companyID, employeeID, from, to)
	if err != nil {
		return 0, nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}

	if err := i.loans.LinkToPayroll(ctx, companyID, ids, recordID); err != nil {
		return 0, nil, err
	}

	linked, err := i.loans.FindByPayrollRecord(ctx, companyID, recordID.String())
	if err != nil {
		return 0, nil, err
	}

	total, details := sumEntries(companyID, linked)
	for idx := range details {
		details[idx].PayrollRecordID = recordID
	}
	return total, details, nil
}

// ReleaseRecord unlinks the record's installments. Called when a draft is
// deleted or a record is rejected, so the installments fall due again in the
// next run.
func (i *LoanIntegrator) ReleaseRecord(ctx context.Context, companyID string, recordID uuid.UUID) error {
	return i.loans.UnlinkPayroll(ctx, companyID, recordID.String())
}

func sumEntries(companyID string, entries []loan.EmiScheduleEntry) (float64, []LoanDeductionDetail) {
	companyUUID, _ := uuid.Parse(companyID)

	var total float64
	details := make([]LoanDeductionDetail, 0, len(entries))
	for _, entry := range entries {
		installment := entry.Installment.InexactFloat64()
		total += installment
		details = append(details, LoanDeductionDetail{
			ID:           uuid.New(),
			CompanyID:    companyUUID,
			LoanID:       entry.LoanID,
			Installment:  installment,
			BalanceAfter: entry.Balance.InexactFloat64(),
		})
	}
	return round2(total), details
}

func periodBounds(month, year int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, -1)
}

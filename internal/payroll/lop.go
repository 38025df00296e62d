package payroll

import (
	"context"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/attendance"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/leave"

	"go.uber.org/zap"
)

// LopResult is the reconciled unpaid absence for one employee and month.
type LopResult struct {
	Days      int
	Deduction float64
}

// LopReconciler folds attendance absences and approved unpaid leave into a
// single loss-of-pay figure for a payroll month.
type LopReconciler struct {
	attendance attendance.Repository
	leaves     leave.Repository
	logger     *zap.Logger
}

func NewLopReconciler(att attendance.Repository, leaves leave.Repository, logger ...*zap.Logger) *LopReconciler {
	l := zap.L().Named("payroll.lop")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.lop")
	}
	return &LopReconciler{attendance: att, leaves: leaves, logger: l}
}

// Reconcile counts ABSENT attendance days plus approved LOP/UNPAID leave
// spans clipped to the month, then prices them at gross/30 per day. A failed
// collaborator query degrades to zero rather than failing the payroll run;
// the warning is the caller's signal.
func (r *LopReconciler) Reconcile(ctx context.Context, companyID, employeeID string, month, year int, grossPay float64) LopResult {
	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	monthEnd := monthStart.AddDate(0, 1, -1)

	absentDays, err := r.attendance.CountAbsentDays(ctx, companyID, employeeID, monthStart, monthEnd)
	if err != nil {
		r.logger.Warn("attendance lookup failed, treating loss of pay as zero",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return LopResult{}
	}

	spans, err := r.leaves.FindApprovedUnpaidOverlapping(ctx, companyID, employeeID, monthStart, monthEnd)
	if err != nil {
		r.logger.Warn("unpaid leave lookup failed, treating loss of pay as zero",
			zap.String("company_id", companyID),
			zap.String("employee_id", employeeID),
			zap.Int("month", month),
			zap.Int("year", year),
			zap.Error(err),
		)
		return LopResult{}
	}

	days := absentDays
	for _, span := range spans {
		days += clippedDays(span.StartDate, span.EndDate, monthStart, monthEnd)
	}

	if days == 0 {
		return LopResult{}
	}

	return LopResult{
		Days:      days,
		Deduction: round2(float64(days) * grossPay / lopMonthDivisor),
	}
}

// clippedDays counts the whole days of [start, end] that fall inside
// [monthStart, monthEnd], both ranges inclusive. Spans are counted in whole
// days; a half-day leave rounds up to one.
func clippedDays(start, end, monthStart, monthEnd time.Time) int {
	if start.Before(monthStart) {
		start = monthStart
	}
	if end.After(monthEnd) {
		end = monthEnd
	}
	if end.Before(start) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

package payroll

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/employee"
	payrollerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll/errors"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/apperror"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/contextutil"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const defaultRunWorkers = 8

// RunStatusSuccess is the only terminal status of a completed run. Per-
// employee errors ride in the result's error list; they never fail the run
// itself. The run errors out only when the company has no active employees.
const RunStatusSuccess = "SUCCESS"

// RunBulk generates draft records for every active employee of the company.
// Each employee commits in its own transaction, so one failure never rolls
// back the others; an existing record for the period counts as skipped, not
// failed, and still gets its own entry in the error list. Re-running the
// same period is therefore safe.
func (s *service) RunBulk(
	ctx context.Context,
	companyID, actorID string,
	req BulkRunRequest,
) (BulkRunResult, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Info("bulk payroll run requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	companyUUID, actorUUID, err := parseActorScope(companyID, actorID)
	if err != nil {
		return BulkRunResult{}, err
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return BulkRunResult{}, err
	}

	role, err := s.actorRole(ctx, companyID, actorID)
	if err != nil {
		return BulkRunResult{}, err
	}
	if err := CanCreate(role); err != nil {
		return BulkRunResult{}, err
	}

	employees, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return BulkRunResult{}, err
	}
	if len(employees) == 0 {
		return BulkRunResult{}, payrollerrors.ErrNoActiveEmployees
	}

	workers := s.workers
	if workers <= 0 {
		workers = defaultRunWorkers
	}

	var (
		mu      sync.Mutex
		created []PayrollRecord
		skipped int
		failed  int
		errs    []BulkRunError
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for idx := range employees {
		emp := employees[idx]
		g.Go(func() error {
			record, err := s.createForEmployee(gctx, companyUUID, actorUUID, role, &emp, req.Month, req.Year)

			mu.Lock()
			defer mu.Unlock()

			switch {
			case err == nil:
				created = append(created, *record)
			case errors.Is(err, payrollerrors.ErrPayrollExists):
				skipped++
				errs = append(errs, BulkRunError{
					EmployeeID:   emp.ID.String(),
					EmployeeCode: emp.EmployeeCode,
					Outcome:      RunOutcomeSkipped,
					Code:         errorCode(err),
					Message:      err.Error(),
				})
			default:
				failed++
				errs = append(errs, BulkRunError{
					EmployeeID:   emp.ID.String(),
					EmployeeCode: emp.EmployeeCode,
					Outcome:      RunOutcomeFailed,
					Code:         errorCode(err),
					Message:      err.Error(),
				})
				s.logger.Warn("bulk run employee failed",
					zap.String("request_id", rid),
					zap.String("employee_id", emp.ID.String()),
					zap.Error(err),
				)
			}
			// Employee failures are collected, not returned, so the pool
			// keeps draining; only context cancellation stops the run.
			return gctx.Err()
		})
	}

	if err := g.Wait(); err != nil {
		return BulkRunResult{}, err
	}

	result := BulkRunResult{
		Month:   req.Month,
		Year:    req.Year,
		Status:  RunStatusSuccess,
		Created: len(created),
		Skipped: skipped,
		Failed:  failed,
		Errors:  errs,
		Summary: summarizeByDesignation(employees, created),
	}

	s.logger.Info("bulk payroll run finished",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("status", result.Status),
		zap.Int("created", result.Created),
		zap.Int("skipped", result.Skipped),
		zap.Int("failed", result.Failed),
	)
	if s.audit != nil {
		s.audit.Record(ctx, AuditEvent{
			Action:  "payroll.run",
			Message: "bulk payroll run " + result.Status,
			Meta: map[string]any{
				"company_id": companyID,
				"actor_id":   actorID,
				"month":      req.Month,
				"year":       req.Year,
				"created":    result.Created,
				"skipped":    result.Skipped,
				"failed":     result.Failed,
			},
		})
	}

	return result, nil
}

// GetSummary aggregates the period's stored records by status and
// designation. It reads whatever exists, so it reports manual creations and
// partial runs alike.
func (s *service) GetSummary(
	ctx context.Context,
	companyID string,
	month, year int,
) (PeriodSummaryResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return PeriodSummaryResponse{}, err
	}

	records, err := s.repo.FindAllByCompany(ctx, companyID, month, year)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}
	employees, err := s.employees.FindActiveByCompany(ctx, companyID)
	if err != nil {
		return PeriodSummaryResponse{}, err
	}

	byStatus := make(map[string]int)
	for _, record := range records {
		byStatus[record.Status]++
	}

	return PeriodSummaryResponse{
		Month:    month,
		Year:     year,
		Total:    len(records),
		ByStatus: byStatus,
		Summary:  summarizeByDesignation(employees, records),
	}, nil
}

// summarizeByDesignation groups the run's created records under each
// employee's designation, sorted by designation name.
func summarizeByDesignation(employees []employee.Employee, created []PayrollRecord) []DesignationSummary {
	designationByEmployee := make(map[string]string, len(employees))
	for _, emp := range employees {
		designationByEmployee[emp.ID.String()] = emp.Designation
	}

	groups := make(map[string]*DesignationSummary)
	for _, record := range created {
		designation := designationByEmployee[record.EmployeeID.String()]
		if designation == "" {
			designation = "UNASSIGNED"
		}
		group, ok := groups[designation]
		if !ok {
			group = &DesignationSummary{Designation: designation}
			groups[designation] = group
		}
		group.Count++
		group.TotalBasic = round2(group.TotalBasic + record.BasicSalary)
		group.TotalGross = round2(group.TotalGross + record.GrossSalary)
		group.TotalNet = round2(group.TotalNet + record.NetSalary)
	}

	summary := make([]DesignationSummary, 0, len(groups))
	for _, group := range groups {
		summary = append(summary, *group)
	}
	sort.Slice(summary, func(i, j int) bool {
		return summary[i].Designation < summary[j].Designation
	})
	return summary
}

func errorCode(err error) string {
	return apperror.ToHTTP(err).Code
}

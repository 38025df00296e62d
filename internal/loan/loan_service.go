package loan

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/employee"
	loanerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/loan/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=loan_service.go -destination=mock/loan_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLoanRequest) (LoanResponse, error)
	GetAll(ctx context.Context, companyID string) ([]LoanResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LoanResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	logger    *zap.Logger
}

func NewService(db *sql.DB, repo Repository, employees employee.Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("loan.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("loan.service")
	}
	return &service{db: db, repo: repo, employees: employees, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLoanRequest) (LoanResponse, error) {
	s.logger.Debug("create loan requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Float64("principal", req.Principal),
		zap.Int("tenor_months", req.TenorMonths),
	)

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidActorID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidEmployeeID
	}
	disbursedAt, err := time.Parse("2006-01-02", req.DisbursedAt)
	if err != nil {
		return LoanResponse{}, loanerrors.ErrInvalidDateFormat
	}

	if _, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrEmployeeNotInCompany
		}
		return LoanResponse{}, err
	}

	principal := decimal.NewFromFloat(req.Principal)
	emi, err := CalculateEMI(principal, req.AnnualRate, req.TenorMonths)
	if err != nil {
		return LoanResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create loan begin tx failed", zap.Error(err))
		return LoanResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l := &Loan{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeUUID,
		Principal:     principal,
		AnnualRate:    req.AnnualRate,
		TenorMonths:   req.TenorMonths,
		Installment:   emi.Installment,
		TotalInterest: emi.TotalInterest,
		Status:        StatusActive,
		DisbursedAt:   disbursedAt,
		CreatedBy:     actorUUID,
	}
	l.Schedule = buildScheduleEntries(l, emi, disbursedAt)

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create loan persist failed", zap.Error(err))
		return LoanResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create loan commit failed", zap.Error(err))
		return LoanResponse{}, err
	}

	s.logger.Info("create loan success",
		zap.String("loan_id", l.ID.String()),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
	)

	return mapToResponse(*l), nil
}

// buildScheduleEntries dates installment k on the first of the k-th month
// after disbursal, so repayment never starts inside the disbursal month.
func buildScheduleEntries(l *Loan, emi EmiResult, disbursedAt time.Time) []EmiScheduleEntry {
	firstDue := time.Date(disbursedAt.Year(), disbursedAt.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)

	entries := make([]EmiScheduleEntry, 0, len(emi.Schedule))
	for _, period := range emi.Schedule {
		entries = append(entries, EmiScheduleEntry{
			ID:          uuid.New(),
			CompanyID:   l.CompanyID,
			LoanID:      l.ID,
			Sequence:    period.Sequence,
			DueDate:     firstDue.AddDate(0, period.Sequence-1, 0),
			Installment: period.Installment,
			Principal:   period.Principal,
			Interest:    period.Interest,
			Balance:     period.Balance,
		})
	}
	return entries
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]LoanResponse, error) {
	loans, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	resp := make([]LoanResponse, len(loans))
	for i, l := range loans {
		resp[i] = mapToResponse(l)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LoanResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LoanResponse{}, loanerrors.ErrLoanNotFound
		}
		return LoanResponse{}, err
	}
	return mapToResponse(*l), nil
}

func mapToResponse(l Loan) LoanResponse {
	resp := LoanResponse{
		ID:            l.ID.String(),
		CompanyID:     l.CompanyID.String(),
		EmployeeID:    l.EmployeeID.String(),
		Principal:     l.Principal.InexactFloat64(),
		AnnualRate:    l.AnnualRate,
		TenorMonths:   l.TenorMonths,
		Installment:   l.Installment.InexactFloat64(),
		TotalInterest: l.TotalInterest.InexactFloat64(),
		Status:        l.Status,
		DisbursedAt:   l.DisbursedAt.Format("2006-01-02"),
	}

	for _, entry := range l.Schedule {
		resp.Schedule = append(resp.Schedule, mapEntryToResponse(entry))
	}
	return resp
}

func mapEntryToResponse(entry EmiScheduleEntry) ScheduleEntryResponse {
	e := ScheduleEntryResponse{
		ID:          entry.ID.String(),
		Sequence:    entry.Sequence,
		DueDate:     entry.DueDate.Format("2006-01-02"),
		Installment: entry.Installment.InexactFloat64(),
		Principal:   entry.Principal.InexactFloat64(),
		Interest:    entry.Interest.InexactFloat64(),
		Balance:     entry.Balance.InexactFloat64(),
	}
	if entry.PayrollRecordID != nil {
		v := entry.PayrollRecordID.String()
		e.PayrollID = &v
	}
	return e
}

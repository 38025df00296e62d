package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/employee"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/events"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/messaging/kafka"
	payrollerrors "github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll/errors"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/apperror"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/contextutil"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// RoleDirectory resolves the payroll role the actor holds in the company.
// An empty role means the actor has no payroll function at all.
type RoleDirectory interface {
	RoleOf(ctx context.Context, companyID, employeeID string) (string, error)
}

// AuditSink receives best-effort audit entries after a state change has
// committed. Implementations must not fail the business operation.
type AuditSink interface {
	Record(ctx context.Context, event AuditEvent)
}

type AuditEvent struct {
	Action  string
	Message string
	Meta    map[string]any
}

//go:generate mockgen -source=payroll_service.go -destination=mock/payroll_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreatePayrollRequest) (PayrollResponse, error)
	RunBulk(ctx context.Context, companyID, actorID string, req BulkRunRequest) (BulkRunResult, error)
	GetAll(ctx context.Context, companyID string, month, year int) ([]PayrollResponse, error)
	GetSummary(ctx context.Context, companyID string, month, year int) (PeriodSummaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (PayrollResponse, error)
	Update(ctx context.Context, companyID, actorID, id string, req UpdatePayrollRequest) (PayrollResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error)
	Reject(ctx context.Context, companyID, actorID, id string, req RejectRequest) (PayrollResponse, error)
	Process(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error)
	MarkPaid(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error)
	Delete(ctx context.Context, companyID, actorID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	employees employee.Repository
	lop       *LopReconciler
	loans     *LoanIntegrator
	roles     RoleDirectory
	outbox    kafka.OutboxRepository
	audit     AuditSink
	workers   int
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	employees employee.Repository,
	lop *LopReconciler,
	loans *LoanIntegrator,
	roles RoleDirectory,
	outboxRepo kafka.OutboxRepository,
	audit AuditSink,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		employees: employees,
		lop:       lop,
		loans:     loans,
		roles:     roles,
		outbox:    outboxRepo,
		audit:     audit,
		workers:   defaultRunWorkers,
		logger:    l,
	}
}

func (s *service) Create(
	ctx context.Context,
	companyID, actorID string,
	req CreatePayrollRequest,
) (PayrollResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create payroll requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Int("month", req.Month),
		zap.Int("year", req.Year),
	)

	companyUUID, actorUUID, err := parseActorScope(companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if _, err := uuid.Parse(req.EmployeeID); err != nil {
		return PayrollResponse{}, payrollerrors.ErrInvalidEmployeeID
	}
	if err := validatePeriod(req.Month, req.Year); err != nil {
		return PayrollResponse{}, err
	}

	role, err := s.actorRole(ctx, companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}
	if err := CanCreate(role); err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrEmployeeNotFound
		}
		return PayrollResponse{}, err
	}

	record, err := s.createForEmployee(ctx, companyUUID, actorUUID, role, emp, req.Month, req.Year)
	if err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("create payroll success",
		zap.String("request_id", rid),
		zap.String("payroll_id", record.ID.String()),
		zap.String("employee_id", req.EmployeeID),
	)
	s.recordAudit(ctx, ActionCreate, record, role, actorUUID)

	return mapToResponse(*record), nil
}

// createForEmployee builds one draft record and persists it atomically with
// its history, loan links and outbox event. Shared by Create and RunBulk;
// the caller has already authorized the actor and loaded the employee.
func (s *service) createForEmployee(
	ctx context.Context,
	companyUUID, makerUUID uuid.UUID,
	makerRole string,
	emp *employee.Employee,
	month, year int,
) (*PayrollRecord, error) {
	// Cheap existence check before any collaborator lookup or transaction.
	// The unique constraint below stays the authoritative guard against
	// concurrent inserts.
	if _, err := s.repo.FindByEmployeeAndPeriod(
		ctx, companyUUID.String(), emp.ID.String(), month, year,
	); err == nil {
		return nil, payrollerrors.ErrPayrollExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	record, err := s.buildDraft(ctx, companyUUID, makerUUID, emp, month, year)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	if err := qtx.Create(ctx, record); err != nil {
		if IsDuplicateKey(err) {
			return nil, payrollerrors.ErrPayrollExists
		}
		s.logger.Error("create payroll persist failed",
			zap.String("employee_id", emp.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	if err := qtx.AppendHistory(ctx, &ApprovalEntry{
		ID:              uuid.New(),
		PayrollRecordID: record.ID,
		CompanyID:       companyUUID,
		Action:          ActionCreate,
		ActorID:         makerUUID,
		Role:            makerRole,
	}); err != nil {
		return nil, err
	}

	// Second pass: stamp the now-known record id onto the due installments
	// and trust the recomputed total over the first pass. A failure here
	// aborts the whole unit of work; the transaction is already poisoned,
	// so there is no partial record to salvage.
	linkedTotal, linkedDetails, err := s.loans.WithTx(tx).LinkToRecord(
		ctx, companyUUID.String(), emp.ID.String(), month, year, record.ID,
	)
	if err != nil {
		s.logger.Error("loan link pass failed",
			zap.String("payroll_id", record.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}
	if linkedTotal != record.LoanDeduction {
		s.logger.Warn("loan deduction changed between passes, correcting record",
			zap.String("payroll_id", record.ID.String()),
			zap.Float64("first_pass", record.LoanDeduction),
			zap.Float64("second_pass", linkedTotal),
		)
		record.LoanDeduction = linkedTotal
		recomputeTotals(record)
		if err := qtx.Update(ctx, record); err != nil {
			return nil, err
		}
	}

	if err := qtx.ReplaceDetails(ctx, record, linkedDetails); err != nil {
		return nil, err
	}

	s.enqueueGeneratedEvent(ctx, tx, record)

	if err := tx.Commit(); err != nil {
		s.logger.Error("create payroll commit failed",
			zap.String("employee_id", emp.ID.String()),
			zap.Error(err),
		)
		return nil, err
	}

	record.Details = linkedDetails
	return record, nil
}

// buildDraft derives every component of a draft record from the employee's
// compensation, attendance and loan position. No writes happen here.
func (s *service) buildDraft(
	ctx context.Context,
	companyUUID, makerUUID uuid.UUID,
	emp *employee.Employee,
	month, year int,
) (*PayrollRecord, error) {
	if emp.Status != employee.StatusActive {
		return nil, payrollerrors.ErrEmployeeNotActive
	}
	if emp.CTC <= 0 {
		return nil, payrollerrors.ErrMissingCompensation
	}

	basic := round2(emp.CTC * basicRatio)
	da := DearnessAllowance(basic)
	hra := HouseRentAllowance(basic, emp.Location)
	other := round2(emp.CTC * otherAllowanceRatio)
	gross := round2(basic + da + hra + other)

	pfEmployee, pfEmployer := ProvidentFund(basic, da)
	esiEmployee, esiEmployer := StateInsurance(gross)
	incomeTax := IncomeTaxWithholding(gross)
	profTax := ProfessionalTax(gross, emp.Location)

	lop := s.lop.Reconcile(ctx, companyUUID.String(), emp.ID.String(), month, year, gross)
	loanTotal, _ := s.loans.DueDeduction(ctx, companyUUID.String(), emp.ID.String(), month, year)

	record := &PayrollRecord{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: emp.ID,
		PayMonth:   month,
		PayYear:    year,

		BasicSalary:        basic,
		DearnessAllowance:  da,
		HouseRentAllowance: hra,
		OtherAllowances:    other,

		PfEmployee:  pfEmployee,
		PfEmployer:  pfEmployer,
		EsiEmployee: esiEmployee,
		EsiEmployer: esiEmployer,
		IncomeTax:   incomeTax,
		ProfTax:     profTax,

		LopDays:       lop.Days,
		LopDeduction:  lop.Deduction,
		LoanDeduction: loanTotal,

		Status:  StatusDraft,
		MakerID: makerUUID,
	}
	recomputeTotals(record)

	return record, nil
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
	month, year int,
) ([]PayrollResponse, error) {
	records, err := s.repo.FindAllByCompany(ctx, companyID, month, year)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(records), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (PayrollResponse, error) {
	record, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

// Update edits the hand-set components of a DRAFT record and rederives
// everything downstream of them.
func (s *service) Update(
	ctx context.Context,
	companyID, actorID, id string,
	req UpdatePayrollRequest,
) (PayrollResponse, error) {
	companyUUID, actorUUID, err := parseActorScope(companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}

	role, err := s.actorRole(ctx, companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}

	if req.OtherAllowances != nil && *req.OtherAllowances < 0 {
		return PayrollResponse{}, apperror.InvalidField("other_allowances")
	}
	if req.LopDays != nil && (*req.LopDays < 0 || *req.LopDays > 31) {
		return PayrollResponse{}, apperror.InvalidField("lop_days")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	if record.Status != StatusDraft {
		return PayrollResponse{}, payrollerrors.ErrRecordImmutable
	}
	if _, err := Transition(record.Status, ActionUpdate, role, actorID, record.MakerID.String()); err != nil {
		return PayrollResponse{}, err
	}

	emp, err := s.employees.FindByIDAndCompany(ctx, companyID, record.EmployeeID.String())
	if err != nil {
		return PayrollResponse{}, err
	}

	if req.OtherAllowances != nil {
		record.OtherAllowances = round2(*req.OtherAllowances)
	}
	if req.LopDays != nil {
		record.LopDays = *req.LopDays
	}

	// Gross moved, so everything priced off it moves too.
	gross := round2(record.BasicSalary + record.DearnessAllowance + record.HouseRentAllowance + record.OtherAllowances)
	record.EsiEmployee, record.EsiEmployer = StateInsurance(gross)
	record.IncomeTax = IncomeTaxWithholding(gross)
	record.ProfTax = ProfessionalTax(gross, emp.Location)
	record.LopDeduction = round2(float64(record.LopDays) * gross / lopMonthDivisor)
	recomputeTotals(record)

	if err := qtx.Update(ctx, record); err != nil {
		return PayrollResponse{}, err
	}
	if err := qtx.AppendHistory(ctx, &ApprovalEntry{
		ID:              uuid.New(),
		PayrollRecordID: record.ID,
		CompanyID:       companyUUID,
		Action:          ActionUpdate,
		ActorID:         actorUUID,
		Role:            role,
	}); err != nil {
		return PayrollResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.recordAudit(ctx, ActionUpdate, record, role, actorUUID)
	return mapToResponse(*record), nil
}

func (s *service) Submit(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error) {
	return s.transition(ctx, companyID, actorID, id, ActionSubmit, req.Comment)
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error) {
	return s.transition(ctx, companyID, actorID, id, ActionApprove, req.Comment)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id string, req RejectRequest) (PayrollResponse, error) {
	if strings.TrimSpace(req.Reason) == "" {
		return PayrollResponse{}, payrollerrors.ErrRejectionReasonRequired
	}
	return s.transition(ctx, companyID, actorID, id, ActionReject, req.Reason)
}

func (s *service) Process(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error) {
	return s.transition(ctx, companyID, actorID, id, ActionProcess, req.Comment)
}

func (s *service) MarkPaid(ctx context.Context, companyID, actorID, id string, req TransitionRequest) (PayrollResponse, error) {
	return s.transition(ctx, companyID, actorID, id, ActionMarkPaid, req.Comment)
}

// transition moves one record through the lifecycle. Status read, update and
// history append share a transaction, so a concurrent action on the same
// record loses on the status precondition rather than double-applying.
func (s *service) transition(
	ctx context.Context,
	companyID, actorID, id, action, comment string,
) (PayrollResponse, error) {
	companyUUID, actorUUID, err := parseActorScope(companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}

	role, err := s.actorRole(ctx, companyID, actorID)
	if err != nil {
		return PayrollResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return PayrollResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayrollResponse{}, payrollerrors.ErrPayrollNotFound
		}
		return PayrollResponse{}, err
	}

	next, err := Transition(record.Status, action, role, actorID, record.MakerID.String())
	if err != nil {
		return PayrollResponse{}, err
	}

	now := time.Now().UTC()
	switch action {
	case ActionSubmit:
		record.SubmittedAt = &now
	case ActionApprove:
		record.CheckerID = &actorUUID
		record.ApprovedAt = &now
	case ActionReject:
		record.CheckerID = &actorUUID
		record.RejectionReason = &comment
		record.RejectedAt = &now
	case ActionProcess:
		record.FinanceApproverID = &actorUUID
	case ActionMarkPaid:
		record.PaidAt = &now
	}
	record.Status = next

	if err := qtx.Update(ctx, record); err != nil {
		return PayrollResponse{}, err
	}
	if err := qtx.AppendHistory(ctx, &ApprovalEntry{
		ID:              uuid.New(),
		PayrollRecordID: record.ID,
		CompanyID:       companyUUID,
		Action:          action,
		ActorID:         actorUUID,
		Role:            role,
		Comment:         comment,
	}); err != nil {
		return PayrollResponse{}, err
	}

	if action == ActionReject {
		if err := s.loans.WithTx(tx).ReleaseRecord(ctx, companyID, record.ID); err != nil {
			s.logger.Error("release loan installments on reject failed",
				zap.String("payroll_id", record.ID.String()),
				zap.Error(err),
			)
			return PayrollResponse{}, err
		}
	}

	if action == ActionMarkPaid {
		s.enqueuePaidEvent(ctx, tx, record)
	}

	if err := tx.Commit(); err != nil {
		return PayrollResponse{}, err
	}

	s.logger.Info("payroll transition applied",
		zap.String("payroll_id", record.ID.String()),
		zap.String("action", action),
		zap.String("status", record.Status),
		zap.String("actor_id", actorID),
		zap.String("role", role),
	)
	s.recordAudit(ctx, action, record, role, actorUUID)

	return mapToResponse(*record), nil
}

// Delete hard-deletes a DRAFT record and releases its loan installments.
func (s *service) Delete(
	ctx context.Context,
	companyID, actorID, id string,
) error {
	_, _, err := parseActorScope(companyID, actorID)
	if err != nil {
		return err
	}

	role, err := s.actorRole(ctx, companyID, actorID)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	record, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return payrollerrors.ErrPayrollNotFound
		}
		return err
	}

	if record.Status != StatusDraft {
		return payrollerrors.ErrDeleteOnlyDraft
	}
	if _, err := Transition(record.Status, ActionDelete, role, actorID, record.MakerID.String()); err != nil {
		return err
	}

	if err := s.loans.WithTx(tx).ReleaseRecord(ctx, companyID, record.ID); err != nil {
		return err
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	s.logger.Info("payroll draft deleted",
		zap.String("payroll_id", id),
		zap.String("actor_id", actorID),
	)
	return nil
}

func (s *service) actorRole(ctx context.Context, companyID, actorID string) (string, error) {
	role, err := s.roles.RoleOf(ctx, companyID, actorID)
	if err != nil {
		return "", err
	}
	if role == "" {
		return "", payrollerrors.ErrRoleViolation
	}
	return role, nil
}

// enqueueGeneratedEvent stages a payroll.generated notification in the
// outbox. Staging failures are logged and swallowed; notifications never
// fail payroll.
func (s *service) enqueueGeneratedEvent(ctx context.Context, tx *sql.Tx, record *PayrollRecord) {
	if s.outbox == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.PayrollGeneratedEvent{
		EventType:  "payroll_generated",
		RequestID:  rid,
		PayrollID:  record.ID.String(),
		CompanyID:  record.CompanyID.String(),
		EmployeeID: record.EmployeeID.String(),
		Month:      record.PayMonth,
		Year:       record.PayYear,
		NetSalary:  record.NetSalary,
		OccurredAt: time.Now().UTC(),
	}
	s.stageOutbox(ctx, tx, record, rid, event.EventType, events.PayrollGeneratedTopic, event)
}

func (s *service) enqueuePaidEvent(ctx context.Context, tx *sql.Tx, record *PayrollRecord) {
	if s.outbox == nil {
		return
	}

	rid := contextutil.GetRequestID(ctx)
	event := events.PayrollPaidEvent{
		EventType:  "payroll_paid",
		RequestID:  rid,
		PayrollID:  record.ID.String(),
		CompanyID:  record.CompanyID.String(),
		EmployeeID: record.EmployeeID.String(),
		Month:      record.PayMonth,
		Year:       record.PayYear,
		NetSalary:  record.NetSalary,
		PaidAt:     *record.PaidAt,
		OccurredAt: time.Now().UTC(),
	}
	s.stageOutbox(ctx, tx, record, rid, event.EventType, events.PayrollPaidTopic, event)
}

func (s *service) stageOutbox(ctx context.Context, tx *sql.Tx, record *PayrollRecord, rid, eventType, topic string, event any) {
	payload, err := json.Marshal(event)
	if err != nil {
		s.logger.Error("marshal payroll event failed",
			zap.String("event_type", eventType),
			zap.Error(err),
		)
		return
	}

	if err := s.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
		ID:            uuid.NewString(),
		RequestID:     rid,
		AggregateType: "payroll_record",
		AggregateID:   record.ID.String(),
		EventType:     eventType,
		Topic:         topic,
		Payload:       payload,
		Status:        kafka.OutboxStatusPending,
	}); err != nil {
		s.logger.Error("stage payroll outbox event failed",
			zap.String("payroll_id", record.ID.String()),
			zap.String("event_type", eventType),
			zap.Error(err),
		)
	}
}

func (s *service) recordAudit(ctx context.Context, action string, record *PayrollRecord, role string, actorID uuid.UUID) {
	if s.audit == nil {
		return
	}
	s.audit.Record(ctx, AuditEvent{
		Action:  "payroll." + strings.ToLower(action),
		Message: "payroll record " + record.ID.String() + " " + strings.ToLower(action),
		Meta: map[string]any{
			"payroll_id":  record.ID.String(),
			"company_id":  record.CompanyID.String(),
			"employee_id": record.EmployeeID.String(),
			"status":      record.Status,
			"actor_id":    actorID.String(),
			"role":        role,
		},
	})
}

func parseActorScope(companyID, actorID string) (uuid.UUID, uuid.UUID, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return uuid.Nil, uuid.Nil, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, payrollerrors.ErrInvalidActorID
	}
	return companyUUID, actorUUID, nil
}

func validatePeriod(month, year int) error {
	if month < 1 || month > 12 || year < 2000 || year > 2100 {
		return payrollerrors.ErrInvalidPeriod
	}
	return nil
}

func mapToResponse(record PayrollRecord) PayrollResponse {
	resp := PayrollResponse{
		ID:         record.ID.String(),
		CompanyID:  record.CompanyID.String(),
		EmployeeID: record.EmployeeID.String(),
		Month:      record.PayMonth,
		Year:       record.PayYear,

		BasicSalary:        record.BasicSalary,
		DearnessAllowance:  record.DearnessAllowance,
		HouseRentAllowance: record.HouseRentAllowance,
		OtherAllowances:    record.OtherAllowances,
		GrossSalary:        record.GrossSalary,

		PfEmployee:  record.PfEmployee,
		PfEmployer:  record.PfEmployer,
		EsiEmployee: record.EsiEmployee,
		EsiEmployer: record.EsiEmployer,
		IncomeTax:   record.IncomeTax,
		ProfTax:     record.ProfTax,

		LopDays:       record.LopDays,
		LopDeduction:  record.LopDeduction,
		LoanDeduction: record.LoanDeduction,

		NetSalary: record.NetSalary,

		Status:          record.Status,
		MakerID:         record.MakerID.String(),
		RejectionReason: record.RejectionReason,
	}

	if record.CheckerID != nil {
		v := record.CheckerID.String()
		resp.CheckerID = &v
	}
	if record.FinanceApproverID != nil {
		v := record.FinanceApproverID.String()
		resp.FinanceApproverID = &v
	}
	resp.SubmittedAt = formatTimePtr(record.SubmittedAt)
	resp.ApprovedAt = formatTimePtr(record.ApprovedAt)
	resp.RejectedAt = formatTimePtr(record.RejectedAt)
	resp.PaidAt = formatTimePtr(record.PaidAt)

	for _, d := range record.Details {
		resp.Details = append(resp.Details, LoanDeductionDetailResponse{
			LoanID:       d.LoanID.String(),
			Installment:  d.Installment,
			BalanceAfter: d.BalanceAfter,
		})
	}
	for _, h := range record.History {
		resp.History = append(resp.History, ApprovalEntryResponse{
			Action:    h.Action,
			ActorID:   h.ActorID.String(),
			Role:      h.Role,
			Comment:   h.Comment,
			Timestamp: h.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return resp
}

func mapToListResponse(records []PayrollRecord) []PayrollResponse {
	resp := make([]PayrollResponse, len(records))
	for i, record := range records {
		resp[i] = mapToResponse(record)
	}
	return resp
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.UTC().Format(time.RFC3339)
	return &v
}

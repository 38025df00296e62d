package rbac

import (
	"context"
	"sync"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/domain"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/shared/apperror"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// rolePermissions is the fixed matrix behind the three payroll function
// roles. Changing what a role may do is a code change, not configuration.
var rolePermissions = map[string][][2]string{
	payroll.RoleMaker: {
		{"payroll", "create"},
		{"payroll", "read"},
		{"payroll", "update"},
		{"payroll", "delete"},
		{"payroll", "submit"},
		{"payroll", "mark-paid"},
		{"loan", "read"},
		{"loan", "create"},
	},
	payroll.RoleChecker: {
		{"payroll", "read"},
		{"payroll", "approve"},
		{"payroll", "mark-paid"},
		{"loan", "read"},
	},
	payroll.RoleFinance: {
		{"payroll", "read"},
		{"payroll", "process"},
		{"payroll", "mark-paid"},
		{"loan", "read"},
		{"rbac", "manage"},
	},
}

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	RoleOf(ctx context.Context, companyID, employeeID string) (string, error)
	AssignRole(ctx context.Context, companyID, employeeID, role string) error
	GetAssignments(ctx context.Context, companyID string) ([]RoleAssignment, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	logger   *zap.Logger
	mu       sync.Mutex
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

// Enforce rebuilds the company's policy and evaluates one request. The
// enforcer holds a single company's policy at a time, hence the mutex.
func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicy(req.CompanyID); err != nil {
		return false, err
	}

	allowed, err := s.enforcer.Enforce(
		req.EmployeeID,
		req.CompanyID,
		req.Resource,
		req.Action,
	)
	if err != nil {
		return false, err
	}

	s.logger.Debug("rbac enforce",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) loadCompanyPolicy(companyID string) error {
	s.enforcer.ClearPolicy()

	assignments, err := s.repo.GetAssignments(context.Background(), companyID)
	if err != nil {
		return err
	}

	for _, assignment := range assignments {
		if _, err := s.enforcer.AddGroupingPolicy(
			assignment.EmployeeID.String(),
			assignment.Role,
			companyID,
		); err != nil {
			return err
		}
	}

	for role, perms := range rolePermissions {
		for _, perm := range perms {
			if _, err := s.enforcer.AddPolicy(role, companyID, perm[0], perm[1]); err != nil {
				return err
			}
		}
	}

	return nil
}

func (s *service) RoleOf(ctx context.Context, companyID, employeeID string) (string, error) {
	return s.repo.GetRole(ctx, companyID, employeeID)
}

func (s *service) AssignRole(ctx context.Context, companyID, employeeID, role string) error {
	if _, ok := rolePermissions[role]; !ok {
		return apperror.InvalidField("role")
	}
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return apperror.InvalidField("company_id")
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return apperror.InvalidField("employee_id")
	}

	if err := s.repo.Upsert(ctx, &RoleAssignment{
		ID:         uuid.New(),
		CompanyID:  companyUUID,
		EmployeeID: employeeUUID,
		Role:       role,
	}); err != nil {
		return err
	}

	s.logger.Info("role assigned",
		zap.String("company_id", companyID),
		zap.String("employee_id", employeeID),
		zap.String("role", role),
	)
	return nil
}

func (s *service) GetAssignments(ctx context.Context, companyID string) ([]RoleAssignment, error) {
	return s.repo.GetAssignments(ctx, companyID)
}

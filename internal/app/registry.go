package app

import (
	"context"
	"database/sql"
	"path/filepath"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/attendance"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/bootstrap"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/employee"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/leave"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/loan"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/messaging/kafka"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/payroll"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/rbac"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/rbac/infra"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// auditSink feeds payroll audit events into the shared audit logger.
type auditSink struct {
	logger bootstrap.AuditLogger
}

func (a auditSink) Record(ctx context.Context, event payroll.AuditEvent) {
	a.logger.Log(ctx, bootstrap.AuditLog{
		Action:  event.Action,
		Message: event.Message,
		Meta:    event.Meta,
	})
}

func registerModules(
	router *gin.Engine,
	db *sql.DB,
	gormDB *gorm.DB,
	rdb *redis.Client,
	auditLogger bootstrap.AuditLogger,
) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(gormDB)
	attendanceRepo := attendance.NewRepository(gormDB)
	employeeRepo := employee.NewRepository(gormDB)
	leaveRepo := leave.NewRepository(gormDB)
	loanRepo := loan.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(db)
	payrollRepo := payroll.NewRepository(gormDB)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(filepath.Join("internal", "rbac", "infra", "model.conf"))
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer)

	// --- Services ---
	loanService := loan.NewService(db, loanRepo, employeeRepo)
	lopReconciler := payroll.NewLopReconciler(attendanceRepo, leaveRepo)
	loanIntegrator := payroll.NewLoanIntegrator(loanRepo)
	payrollService := payroll.NewService(
		db,
		payrollRepo,
		employeeRepo,
		lopReconciler,
		loanIntegrator,
		rbacService,
		outboxRepo,
		auditSink{logger: auditLogger},
	)

	// --- Handlers ---
	loanHandler := loan.NewHandler(loanService)
	payrollHandler := payroll.NewHandler(payrollService)
	rbacHandler := rbac.NewHandler(rbacService)

	// --- Routes ---
	api := router.Group("/api/v1")
	{
		loan.RegisterRoutes(api, loanHandler, rbacService)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, rdb)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}

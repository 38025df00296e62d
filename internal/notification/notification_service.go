package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/events"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	mailboxKeyFormat = "notifications:%s:%s" // company id, employee id
	mailboxMaxSize   = 100
	mailboxTTL       = 90 * 24 * time.Hour
)

// Notification is what an employee-facing client reads from the mailbox.
type Notification struct {
	Kind       string    `json:"kind"`
	PayrollID  string    `json:"payroll_id"`
	Month      int       `json:"month"`
	Year       int       `json:"year"`
	NetSalary  float64   `json:"net_salary"`
	OccurredAt time.Time `json:"occurred_at"`
}

//go:generate mockgen -source=notification_service.go -destination=mock/notification_service_mock.go -package=mock
type Service interface {
	NotifyPayrollPaid(ctx context.Context, event events.PayrollPaidEvent) error
}

type service struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewService(rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("notification.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("notification.service")
	}
	return &service{rdb: rdb, logger: l}
}

// NotifyPayrollPaid pushes a salary-credited notice onto the employee's
// mailbox list. The mailbox is capped and expires; it is a convenience feed,
// not a system of record.
func (s *service) NotifyPayrollPaid(ctx context.Context, event events.PayrollPaidEvent) error {
	payload, err := json.Marshal(Notification{
		Kind:       "payroll_paid",
		PayrollID:  event.PayrollID,
		Month:      event.Month,
		Year:       event.Year,
		NetSalary:  event.NetSalary,
		OccurredAt: event.OccurredAt,
	})
	if err != nil {
		return err
	}

	key := fmt.Sprintf(mailboxKeyFormat, event.CompanyID, event.EmployeeID)

	pipe := s.rdb.TxPipeline()
	pipe.LPush(ctx, key, payload)
	pipe.LTrim(ctx, key, 0, mailboxMaxSize-1)
	pipe.Expire(ctx, key, mailboxTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return err
	}

	s.logger.Info("payroll paid notification queued",
		zap.String("company_id", event.CompanyID),
		zap.String("employee_id", event.EmployeeID),
		zap.String("payroll_id", event.PayrollID),
	)
	return nil
}

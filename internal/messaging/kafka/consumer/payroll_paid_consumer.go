package consumer

import (
	"context"
	"encoding/json"

	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/events"
	"github.com/KhushalYadav535/hrmsbackend-sub000/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// ConsumePayrollPaid turns payroll_paid events into employee notifications.
// Malformed messages are committed and dropped; delivery failures leave the
// message uncommitted so the next fetch retries it.
func ConsumePayrollPaid(
	ctx context.Context,
	reader *kafkago.Reader,
	notifications notification.Service,
	logger *zap.Logger,
) {
	log := logger.Named("kafka.consumer.payroll_paid")
	log.Info("payroll paid consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("payroll paid consumer stopped")
				return
			}
			log.Error("fetch payroll paid message failed", zap.Error(err))
			continue
		}

		var event events.PayrollPaidEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			log.Error("decode payroll_paid event failed", zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifications.NotifyPayrollPaid(ctx, event); err != nil {
			log.Error("notify payroll paid failed",
				zap.String("payroll_id", event.PayrollID),
				zap.String("employee_id", event.EmployeeID),
				zap.Error(err),
			)
			continue
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit payroll paid message failed", zap.Error(err))
			continue
		}

		log.Info("payroll paid notification delivered",
			zap.String("payroll_id", event.PayrollID),
			zap.String("employee_id", event.EmployeeID),
		)
	}
}

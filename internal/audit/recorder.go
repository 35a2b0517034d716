package audit

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
	"ClubAdminPlatform/pkg/connection"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/rabbitmq"
)

// Recorder фоновый компонент, сохраняющий события аудита из брокера
// в таблицу audit_log. Необработанные сообщения уходят в DLQ
// на стороне консьюмера
type Recorder struct {
	consumer *rabbitmq.Consumer
	config   *rabbitmq.Config
	audits   repository.AuditRepository
	logger   logger.Logger
}

// NewRecorder создает новый Recorder
func NewRecorder(consumer *rabbitmq.Consumer, config *rabbitmq.Config, audits repository.AuditRepository, log logger.Logger) *Recorder {
	return &Recorder{
		consumer: consumer,
		config:   config,
		audits:   audits,
		logger:   log,
	}
}

// Start регистрирует обработчик и запускает потребление
// Блокируется до отмены контекста
func (r *Recorder) Start(ctx context.Context) error {
	r.consumer.RegisterHandler(r.config.Queue, r.handleMessage)

	return connection.WithRetry(ctx, connection.DefaultRetryConfig(), func(ctx context.Context) error {
		return r.consumer.Start(ctx)
	})
}

// handleMessage десериализует событие и записывает его в журнал
// Ошибка возврата приводит к redelivery и затем к DLQ
func (r *Recorder) handleMessage(ctx context.Context, msg amqp091.Delivery) error {
	var event domain.AuditEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		r.logger.Error("failed to unmarshal audit event", logger.Error(err))
		return err
	}

	if err := r.audits.Record(ctx, &event); err != nil {
		r.logger.Error("failed to record audit event",
			logger.String("table", event.Table),
			logger.String("operation", event.Operation),
			logger.Error(err))
		return err
	}

	r.logger.Debug("audit event recorded",
		logger.String("table", event.Table),
		logger.String("operation", event.Operation),
		logger.String("row_id", event.RowID))
	return nil
}

package events

import (
	"context"
	"encoding/json"
	"time"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/rabbitmq"
)

// Publisher публикует события аудита
// Публикация best effort: сбой логируется и не прерывает операцию пользователя
type Publisher interface {
	PublishAuditEvent(ctx context.Context, event *domain.AuditEvent)
}

// RabbitMQPublisher реализация Publisher поверх RabbitMQ
type RabbitMQPublisher struct {
	producer *rabbitmq.Producer
	config   *rabbitmq.Config
	logger   logger.Logger
}

// NewRabbitMQPublisher создает новый RabbitMQPublisher
func NewRabbitMQPublisher(producer *rabbitmq.Producer, config *rabbitmq.Config, log logger.Logger) *RabbitMQPublisher {
	return &RabbitMQPublisher{
		producer: producer,
		config:   config,
		logger:   log,
	}
}

// PublishAuditEvent сериализует событие и отправляет его в exchange аудита
func (p *RabbitMQPublisher) PublishAuditEvent(ctx context.Context, event *domain.AuditEvent) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		p.logger.Error("failed to marshal audit event",
			logger.String("table", event.Table),
			logger.String("operation", event.Operation),
			logger.Error(err))
		return
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.producer.Publish(publishCtx, body,
		rabbitmq.WithExchange(p.config.Exchange),
		rabbitmq.WithRoutingKey(p.config.RoutingKey),
	); err != nil {
		p.logger.Warn("failed to publish audit event",
			logger.String("table", event.Table),
			logger.String("operation", event.Operation),
			logger.Error(err))
	}
}

// NopPublisher заглушка для окружений без брокера
type NopPublisher struct{}

func (NopPublisher) PublishAuditEvent(ctx context.Context, event *domain.AuditEvent) {}

package service

import (
	"context"
	"time"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/events"
	"ClubAdminPlatform/internal/gateway"
	"ClubAdminPlatform/internal/session"
)

// QueryGateway контракт защищенного шлюза запросов, через который
// сервисы сущностей обращаются к данным
type QueryGateway interface {
	Query(ctx context.Context, table, op string, data []domain.Row, conditions map[string]interface{}) gateway.QueryResult
}

// audit публикует событие аудита после успешной мутации
// ActorID берется из сессии текущего вызывающего
func audit(ctx context.Context, publisher events.Publisher, sessions session.Source, table, operation, rowID string, payload domain.Row) {
	if publisher == nil {
		return
	}

	event := &domain.AuditEvent{
		Table:      table,
		Operation:  operation,
		RowID:      rowID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
	if current := sessions.Current(ctx); current != nil {
		event.ActorID = current.AdministratorID
	}

	publisher.PublishAuditEvent(ctx, event)
}

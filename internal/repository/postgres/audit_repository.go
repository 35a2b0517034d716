package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
)

// AuditRepository реализация журнала аудита для PostgreSQL
type AuditRepository struct {
	pool *pgxpool.Pool
}

// NewAuditRepository создает новый экземпляр AuditRepository
func NewAuditRepository(pool *pgxpool.Pool) repository.AuditRepository {
	return &AuditRepository{pool: pool}
}

// Record сохраняет событие аудита
func (r *AuditRepository) Record(ctx context.Context, event *domain.AuditEvent) error {
	payload, err := json.Marshal(event.Payload)
	if err != nil {
		return fmt.Errorf("failed to marshal audit payload: %w", err)
	}

	query := `INSERT INTO audit_log (table_name, operation, row_id, actor_id, occurred_at, payload)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = r.pool.Exec(ctx, query,
		event.Table,
		event.Operation,
		event.RowID,
		event.ActorID,
		event.OccurredAt,
		payload)

	if err != nil {
		return fmt.Errorf("failed to record audit event: %w", err)
	}

	return nil
}

// ListByTable возвращает последние события аудита для таблицы
func (r *AuditRepository) ListByTable(ctx context.Context, table string, limit int) ([]*domain.AuditEvent, error) {
	query := `SELECT table_name, operation, row_id, actor_id, occurred_at, payload
		FROM audit_log WHERE table_name = $1 ORDER BY occurred_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, table, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit events: %w", err)
	}
	defer rows.Close()

	var events []*domain.AuditEvent
	for rows.Next() {
		var event domain.AuditEvent
		var payload []byte
		if err := rows.Scan(&event.Table, &event.Operation, &event.RowID, &event.ActorID, &event.OccurredAt, &payload); err != nil {
			return nil, fmt.Errorf("failed to scan audit event: %w", err)
		}
		if len(payload) > 0 {
			if err := json.Unmarshal(payload, &event.Payload); err != nil {
				return nil, fmt.Errorf("failed to unmarshal audit payload: %w", err)
			}
		}
		events = append(events, &event)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate audit events: %w", err)
	}

	return events, nil
}

package gateway

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/session"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/metrics"
)

// Поддерживаемые операции шлюза
const (
	OpSelect = "select"
	OpInsert = "insert"
	OpUpdate = "update"
	OpDelete = "delete"
)

// DefaultQueryTimeout таймаут операции по умолчанию
const DefaultQueryTimeout = 10 * time.Second

// identifierPattern допустимая форма имен таблиц и колонок
// Проверяется до любой интерполяции в SQL
var identifierPattern = regexp.MustCompile(`^[a-z_][a-z0-9_]*$`)

// QueryResult результат операции шлюза
// Операция никогда не паникует и не возвращает Go ошибку:
// вызывающий всегда проверяет Err
type QueryResult struct {
	Data []domain.Row
	Err  *apperrors.Error
}

// Gateway пропускает запросы к данным через проверку сессии,
// ограничитель одновременности и таймаут
type Gateway struct {
	client   Client
	sessions session.Source
	guard    *Guard
	timeout  time.Duration
	logger   logger.Logger
	metrics  *metrics.Metrics
}

// Option настройка шлюза
type Option func(*Gateway)

// WithTimeout задает таймаут операции
func WithTimeout(timeout time.Duration) Option {
	return func(g *Gateway) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// WithMetrics подключает сбор метрик
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

// New создает Gateway
func New(client Client, sessions session.Source, guard *Guard, log logger.Logger, opts ...Option) *Gateway {
	g := &Gateway{
		client:   client,
		sessions: sessions,
		guard:    guard,
		timeout:  DefaultQueryTimeout,
		logger:   log,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Query выполняет операцию над таблицей
//
// Предусловия проверяются до обращения к клиенту данных: наличие
// аутентифицированной сессии, допустимость операции и идентификаторов,
// обязательные условия для update/delete, порог одновременности.
//
// Операция гонится с таймером: проигрыш клиента дает TIMEOUT, но
// запущенный удаленный вызов не отменяется. Мутация может примениться
// после возврата TIMEOUT (семантика at-least-once); слот ограничителя
// освобождается, когда вызов фактически завершится
func (g *Gateway) Query(ctx context.Context, table, op string, data []domain.Row, conditions map[string]interface{}) QueryResult {
	start := time.Now()

	if err := g.admit(ctx, table, op, data, conditions); err != nil {
		g.observe(table, op, err, start)
		return QueryResult{Err: err}
	}

	key := op + ":" + table
	if !g.guard.TryAcquire(key) {
		if g.metrics != nil {
			g.metrics.IncGuardRejection(table, op)
		}
		err := apperrors.New(apperrors.ErrTooManyRequests,
			fmt.Sprintf("too many concurrent %s operations on %s", op, table))
		g.observe(table, op, err, start)
		return QueryResult{Err: err}
	}

	type outcome struct {
		rows []domain.Row
		err  error
	}

	// Буфер на 1 гарантирует, что проигравшая гонку горутина не зависнет
	done := make(chan outcome, 1)

	go func() {
		defer g.guard.Release(key)
		defer func() {
			if r := recover(); r != nil {
				g.logger.Error("data client panic recovered",
					logger.String("table", table),
					logger.String("operation", op),
					logger.Any("panic", r))
				done <- outcome{err: apperrors.New(apperrors.ErrInternal, "data client failure")}
			}
		}()

		rows, err := g.execute(ctx, table, op, data, conditions)
		done <- outcome{rows: rows, err: err}
	}()

	select {
	case out := <-done:
		if out.err != nil {
			err := apperrors.FromErr(out.err)
			g.observe(table, op, err, start)
			return QueryResult{Err: err}
		}
		g.observe(table, op, nil, start)
		return QueryResult{Data: out.rows}
	case <-time.After(g.timeout):
		err := apperrors.New(apperrors.ErrTimeout,
			fmt.Sprintf("%s on %s did not settle within %s", op, table, g.timeout))
		g.logger.Warn("gateway query timed out",
			logger.String("table", table),
			logger.String("operation", op))
		g.observe(table, op, err, start)
		return QueryResult{Err: err}
	}
}

// admit проверяет предусловия до обращения к клиенту данных
func (g *Gateway) admit(ctx context.Context, table, op string, data []domain.Row, conditions map[string]interface{}) *apperrors.Error {
	if g.sessions.Current(ctx) == nil {
		return apperrors.New(apperrors.ErrUnauthorized, "no authenticated session")
	}

	switch op {
	case OpSelect, OpInsert, OpUpdate, OpDelete:
	default:
		return apperrors.New(apperrors.ErrValidation, fmt.Sprintf("unsupported operation: %s", op))
	}

	if !identifierPattern.MatchString(table) {
		return apperrors.New(apperrors.ErrValidation, fmt.Sprintf("invalid table name: %s", table))
	}

	for _, row := range data {
		for column := range row {
			if !identifierPattern.MatchString(column) {
				return apperrors.New(apperrors.ErrValidation, fmt.Sprintf("invalid column name: %s", column))
			}
		}
	}
	for column := range conditions {
		if !identifierPattern.MatchString(column) {
			return apperrors.New(apperrors.ErrValidation, fmt.Sprintf("invalid column name: %s", column))
		}
	}

	switch op {
	case OpInsert:
		if len(data) == 0 {
			return apperrors.New(apperrors.ErrValidation, "insert requires at least one row")
		}
	case OpUpdate:
		if len(data) != 1 || len(data[0]) == 0 {
			return apperrors.New(apperrors.ErrValidation, "update requires exactly one row of changes")
		}
		if len(conditions) == 0 {
			return apperrors.New(apperrors.ErrValidation, "update requires at least one condition")
		}
	case OpDelete:
		if len(conditions) == 0 {
			return apperrors.New(apperrors.ErrValidation, "delete requires at least one condition")
		}
	}

	return nil
}

// execute выполняет операцию через клиента данных
func (g *Gateway) execute(ctx context.Context, table, op string, data []domain.Row, conditions map[string]interface{}) ([]domain.Row, error) {
	builder := g.client.From(table)

	switch op {
	case OpSelect:
		return builder.Select(ctx, conditions)
	case OpInsert:
		return builder.Insert(ctx, data)
	case OpUpdate:
		return builder.Update(ctx, data[0], conditions)
	case OpDelete:
		return builder.Delete(ctx, conditions)
	default:
		return nil, apperrors.New(apperrors.ErrValidation, fmt.Sprintf("unsupported operation: %s", op))
	}
}

func (g *Gateway) observe(table, op string, err *apperrors.Error, start time.Time) {
	if g.metrics == nil {
		return
	}

	status := "ok"
	if err != nil {
		status = string(err.Code)
	}
	g.metrics.ObserveQuery(table, op, status, time.Since(start))
}

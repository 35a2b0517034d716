package gateway

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ClubAdminPlatform/internal/domain"
)

// Client коллаборатор доступа к данным со fluent интерфейсом
// Шлюз не знает схему таблиц и работает с динамическими строками
type Client interface {
	From(table string) QueryBuilder
}

// QueryBuilder операции над одной таблицей
// Условия всегда equality и соединяются конъюнкцией
type QueryBuilder interface {
	Select(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error)
	Insert(ctx context.Context, rows []domain.Row) ([]domain.Row, error)
	Update(ctx context.Context, changes domain.Row, conditions map[string]interface{}) ([]domain.Row, error)
	Delete(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error)
}

// PgxClient реализация Client поверх pgxpool
type PgxClient struct {
	pool *pgxpool.Pool
}

// NewPgxClient создает новый PgxClient
func NewPgxClient(pool *pgxpool.Pool) *PgxClient {
	return &PgxClient{pool: pool}
}

// From возвращает построитель запросов для таблицы
func (c *PgxClient) From(table string) QueryBuilder {
	return &pgxQueryBuilder{pool: c.pool, table: table}
}

type pgxQueryBuilder struct {
	pool  *pgxpool.Pool
	table string
}

// Select возвращает все строки, прошедшие все условия
func (b *pgxQueryBuilder) Select(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error) {
	query := fmt.Sprintf("SELECT * FROM %s", b.table)
	where, args := whereClause(conditions, 1)
	query += where

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select from %s: %w", b.table, err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// Insert записывает одну строку или пакет и возвращает записанные строки
// со сгенерированными полями
func (b *pgxQueryBuilder) Insert(ctx context.Context, toInsert []domain.Row) ([]domain.Row, error) {
	if len(toInsert) == 0 {
		return nil, fmt.Errorf("insert into %s requires at least one row", b.table)
	}

	// Колонки берутся из первой строки, порядок детерминирован
	columns := sortedKeys(toInsert[0])

	var args []interface{}
	var valueTuples []string
	placeholder := 1
	for _, row := range toInsert {
		tuple := make([]string, 0, len(columns))
		for _, col := range columns {
			tuple = append(tuple, fmt.Sprintf("$%d", placeholder))
			args = append(args, row[col])
			placeholder++
		}
		valueTuples = append(valueTuples, "("+strings.Join(tuple, ", ")+")")
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s RETURNING *",
		b.table, strings.Join(columns, ", "), strings.Join(valueTuples, ", "))

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", b.table, err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// Update изменяет строки, прошедшие условия, и возвращает их
func (b *pgxQueryBuilder) Update(ctx context.Context, changes domain.Row, conditions map[string]interface{}) ([]domain.Row, error) {
	if len(changes) == 0 {
		return nil, fmt.Errorf("update of %s requires at least one change", b.table)
	}

	columns := sortedKeys(changes)

	var args []interface{}
	assignments := make([]string, 0, len(columns))
	for i, col := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", col, i+1))
		args = append(args, changes[col])
	}

	where, whereArgs := whereClause(conditions, len(columns)+1)
	args = append(args, whereArgs...)

	query := fmt.Sprintf("UPDATE %s SET %s%s RETURNING *",
		b.table, strings.Join(assignments, ", "), where)

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", b.table, err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// Delete удаляет строки, прошедшие условия, и возвращает их
func (b *pgxQueryBuilder) Delete(ctx context.Context, conditions map[string]interface{}) ([]domain.Row, error) {
	where, args := whereClause(conditions, 1)
	query := fmt.Sprintf("DELETE FROM %s%s RETURNING *", b.table, where)

	rows, err := b.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to delete from %s: %w", b.table, err)
	}
	defer rows.Close()

	return collectRows(rows)
}

// whereClause строит конъюнкцию equality условий
// Ключи сортируются для детерминированного порядка placeholder'ов
func whereClause(conditions map[string]interface{}, firstPlaceholder int) (string, []interface{}) {
	if len(conditions) == 0 {
		return "", nil
	}

	keys := sortedKeys(conditions)
	parts := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		parts = append(parts, fmt.Sprintf("%s = $%d", k, firstPlaceholder+i))
		args = append(args, conditions[k])
	}

	return " WHERE " + strings.Join(parts, " AND "), args
}

// collectRows декодирует pgx строки в динамические domain.Row
func collectRows(rows pgx.Rows) ([]domain.Row, error) {
	fields := rows.FieldDescriptions()

	var result []domain.Row
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("failed to read row values: %w", err)
		}

		row := make(domain.Row, len(fields))
		for i, field := range fields {
			row[string(field.Name)] = values[i]
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate rows: %w", err)
	}

	return result, nil
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

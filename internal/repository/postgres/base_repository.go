package postgres

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolationCode код PostgreSQL для нарушения уникальности
const uniqueViolationCode = "23505"

// foreignKeyViolationCode код PostgreSQL для нарушения внешнего ключа
const foreignKeyViolationCode = "23503"

// isUniqueViolation проверяет, является ли ошибка нарушением уникальности
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolationCode
	}
	return false
}

// isForeignKeyViolation проверяет, является ли ошибка нарушением внешнего ключа
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == foreignKeyViolationCode
	}
	return false
}

// buildEqualityFilters строит WHERE из equality фильтров
// Ключи сортируются для детерминированного порядка placeholder'ов
func buildEqualityFilters(filters map[string]interface{}) (string, []interface{}) {
	if len(filters) == 0 {
		return "", nil
	}

	keys := make([]string, 0, len(filters))
	for k := range filters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]interface{}, 0, len(keys))
	for i, k := range keys {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", k, i+1))
		args = append(args, filters[k])
	}

	return " WHERE " + strings.Join(conditions, " AND "), args
}

package service

import (
	"time"

	"ClubAdminPlatform/internal/domain"
)

// Декодеры динамических строк шлюза в доменные структуры.
// Значения приходят типизированными из pgx, но декодеры терпимы
// к строковым таймстампам из тестовых источников.

func rowString(row domain.Row, column string) string {
	if value, ok := row[column].(string); ok {
		return value
	}
	return ""
}

func rowBool(row domain.Row, column string) bool {
	if value, ok := row[column].(bool); ok {
		return value
	}
	return false
}

func rowFloat(row domain.Row, column string) float64 {
	switch value := row[column].(type) {
	case float64:
		return value
	case float32:
		return float64(value)
	case int64:
		return float64(value)
	case int:
		return float64(value)
	}
	return 0
}

func rowTime(row domain.Row, column string) time.Time {
	switch value := row[column].(type) {
	case time.Time:
		return value
	case string:
		if ts, err := time.Parse(time.RFC3339, value); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func administratorFromRow(row domain.Row) *domain.Administrator {
	return &domain.Administrator{
		ID:           rowString(row, "id"),
		Email:        rowString(row, "email"),
		FirstName:    rowString(row, "first_name"),
		LastName:     rowString(row, "last_name"),
		Phone:        rowString(row, "phone"),
		PasswordHash: rowString(row, "password_hash"),
		Salary:       rowFloat(row, "salary"),
		ContractType: rowString(row, "contract_type"),
		Status:       rowString(row, "status"),
		IsSuper:      rowBool(row, "is_super"),
		CreatedAt:    rowTime(row, "created_at"),
		UpdatedAt:    rowTime(row, "updated_at"),
	}
}

func clubFromRow(row domain.Row) *domain.Club {
	return &domain.Club{
		ID:          rowString(row, "id"),
		Name:        rowString(row, "name"),
		Slug:        rowString(row, "slug"),
		Status:      rowString(row, "status"),
		Description: rowString(row, "description"),
		CreatedAt:   rowTime(row, "created_at"),
		UpdatedAt:   rowTime(row, "updated_at"),
	}
}

func membershipFromRow(row domain.Row) *domain.Membership {
	return &domain.Membership{
		ID:              rowString(row, "id"),
		AdministratorID: rowString(row, "administrator_id"),
		ClubID:          rowString(row, "club_id"),
		Role:            rowString(row, "role"),
		IsActive:        rowBool(row, "is_active"),
		CreatedAt:       rowTime(row, "created_at"),
	}
}

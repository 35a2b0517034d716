package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/repository"
	apperrors "ClubAdminPlatform/pkg/errors"
)

// AdministratorRepository реализация репозитория администраторов для PostgreSQL
type AdministratorRepository struct {
	pool *pgxpool.Pool
}

// NewAdministratorRepository создает новый экземпляр AdministratorRepository
func NewAdministratorRepository(pool *pgxpool.Pool) repository.AdministratorRepository {
	return &AdministratorRepository{pool: pool}
}

// Create сохраняет нового администратора в базе данных
func (r *AdministratorRepository) Create(ctx context.Context, administrator *domain.Administrator) error {
	query := `INSERT INTO administrators (id, email, first_name, last_name, phone, password_hash, salary, contract_type, status, is_super, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`

	_, err := r.pool.Exec(ctx, query,
		administrator.ID,
		administrator.Email,
		administrator.FirstName,
		administrator.LastName,
		administrator.Phone,
		administrator.PasswordHash,
		administrator.Salary,
		administrator.ContractType,
		administrator.Status,
		administrator.IsSuper,
		administrator.CreatedAt,
		administrator.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.ErrConflict, fmt.Sprintf("administrator with email %s already exists", administrator.Email))
		}
		return fmt.Errorf("failed to create administrator: %w", err)
	}

	return nil
}

// FindByID возвращает администратора по его ID
func (r *AdministratorRepository) FindByID(ctx context.Context, id string) (*domain.Administrator, error) {
	query := adminSelectColumns + ` FROM administrators WHERE id = $1`

	administrator, err := r.scanAdministrator(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("administrator %s not found", id))
		}
		return nil, fmt.Errorf("failed to get administrator by id: %w", err)
	}

	return administrator, nil
}

// FindByEmail возвращает администратора по его email
func (r *AdministratorRepository) FindByEmail(ctx context.Context, email string) (*domain.Administrator, error) {
	query := adminSelectColumns + ` FROM administrators WHERE email = $1`

	administrator, err := r.scanAdministrator(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("administrator with email %s not found", email))
		}
		return nil, fmt.Errorf("failed to get administrator by email: %w", err)
	}

	return administrator, nil
}

// List возвращает администраторов с опциональными equality фильтрами
func (r *AdministratorRepository) List(ctx context.Context, filters map[string]interface{}) ([]*domain.Administrator, error) {
	query := adminSelectColumns + ` FROM administrators`
	where, args := buildEqualityFilters(filters)
	query += where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list administrators: %w", err)
	}
	defer rows.Close()

	var administrators []*domain.Administrator
	for rows.Next() {
		administrator, err := r.scanAdministrator(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan administrator: %w", err)
		}
		administrators = append(administrators, administrator)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate administrators: %w", err)
	}

	return administrators, nil
}

// Update обновляет существующего администратора
func (r *AdministratorRepository) Update(ctx context.Context, administrator *domain.Administrator) error {
	query := `UPDATE administrators SET
		email = $2,
		first_name = $3,
		last_name = $4,
		phone = $5,
		password_hash = $6,
		salary = $7,
		contract_type = $8,
		status = $9,
		is_super = $10,
		updated_at = $11
	WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		administrator.ID,
		administrator.Email,
		administrator.FirstName,
		administrator.LastName,
		administrator.Phone,
		administrator.PasswordHash,
		administrator.Salary,
		administrator.ContractType,
		administrator.Status,
		administrator.IsSuper,
		administrator.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.ErrConflict, fmt.Sprintf("administrator with email %s already exists", administrator.Email))
		}
		return fmt.Errorf("failed to update administrator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("administrator %s not found", administrator.ID))
	}

	return nil
}

// Delete удаляет администратора по ID
// Членства удаляются каскадно через FK в БД
func (r *AdministratorRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM administrators WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete administrator: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("administrator %s not found", id))
	}

	return nil
}

const adminSelectColumns = `SELECT id, email, first_name, last_name, phone, password_hash, salary, contract_type, status, is_super, created_at, updated_at`

// scanAdministrator сканирует строку в domain.Administrator
func (r *AdministratorRepository) scanAdministrator(row pgx.Row) (*domain.Administrator, error) {
	var administrator domain.Administrator
	err := row.Scan(
		&administrator.ID,
		&administrator.Email,
		&administrator.FirstName,
		&administrator.LastName,
		&administrator.Phone,
		&administrator.PasswordHash,
		&administrator.Salary,
		&administrator.ContractType,
		&administrator.Status,
		&administrator.IsSuper,
		&administrator.CreatedAt,
		&administrator.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &administrator, nil
}

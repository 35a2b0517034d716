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

// MembershipRepository реализация репозитория членств для PostgreSQL
type MembershipRepository struct {
	pool *pgxpool.Pool
}

// NewMembershipRepository создает новый экземпляр MembershipRepository
func NewMembershipRepository(pool *pgxpool.Pool) repository.MembershipRepository {
	return &MembershipRepository{pool: pool}
}

// Create сохраняет новое членство в базе данных
func (r *MembershipRepository) Create(ctx context.Context, membership *domain.Membership) error {
	query := `INSERT INTO memberships (id, administrator_id, club_id, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.pool.Exec(ctx, query,
		membership.ID,
		membership.AdministratorID,
		membership.ClubID,
		membership.Role,
		membership.IsActive,
		membership.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.ErrConflict, "administrator is already a member of this club")
		}
		if isForeignKeyViolation(err) {
			return apperrors.New(apperrors.ErrNotFound, "administrator or club does not exist")
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// FindByID возвращает членство по его ID
func (r *MembershipRepository) FindByID(ctx context.Context, id string) (*domain.Membership, error) {
	query := membershipSelectColumns + ` FROM memberships WHERE id = $1`

	membership, err := r.scanMembership(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("membership %s not found", id))
		}
		return nil, fmt.Errorf("failed to get membership by id: %w", err)
	}

	return membership, nil
}

// ListByAdministrator возвращает членства администратора
func (r *MembershipRepository) ListByAdministrator(ctx context.Context, administratorID string) ([]*domain.Membership, error) {
	query := membershipSelectColumns + ` FROM memberships WHERE administrator_id = $1 ORDER BY created_at`
	return r.list(ctx, query, administratorID)
}

// ListByClub возвращает членства клуба
func (r *MembershipRepository) ListByClub(ctx context.Context, clubID string) ([]*domain.Membership, error) {
	query := membershipSelectColumns + ` FROM memberships WHERE club_id = $1 ORDER BY created_at`
	return r.list(ctx, query, clubID)
}

// Update обновляет существующее членство
func (r *MembershipRepository) Update(ctx context.Context, membership *domain.Membership) error {
	query := `UPDATE memberships SET role = $2, is_active = $3 WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		membership.ID,
		membership.Role,
		membership.IsActive)

	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("membership %s not found", membership.ID))
	}

	return nil
}

// Delete удаляет членство по ID
func (r *MembershipRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM memberships WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("membership %s not found", id))
	}

	return nil
}

const membershipSelectColumns = `SELECT id, administrator_id, club_id, role, is_active, created_at`

func (r *MembershipRepository) list(ctx context.Context, query string, arg interface{}) ([]*domain.Membership, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*domain.Membership
	for rows.Next() {
		membership, err := r.scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		memberships = append(memberships, membership)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return memberships, nil
}

// scanMembership сканирует строку в domain.Membership
func (r *MembershipRepository) scanMembership(row pgx.Row) (*domain.Membership, error) {
	var membership domain.Membership
	err := row.Scan(
		&membership.ID,
		&membership.AdministratorID,
		&membership.ClubID,
		&membership.Role,
		&membership.IsActive,
		&membership.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

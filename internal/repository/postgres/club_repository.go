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

// ClubRepository реализация репозитория клубов для PostgreSQL
type ClubRepository struct {
	pool *pgxpool.Pool
}

// NewClubRepository создает новый экземпляр ClubRepository
func NewClubRepository(pool *pgxpool.Pool) repository.ClubRepository {
	return &ClubRepository{pool: pool}
}

// Create сохраняет новый клуб в базе данных
func (r *ClubRepository) Create(ctx context.Context, club *domain.Club) error {
	query := `INSERT INTO clubs (id, name, slug, status, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		club.ID,
		club.Name,
		club.Slug,
		club.Status,
		club.Description,
		club.CreatedAt,
		club.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.ErrConflict, fmt.Sprintf("club with slug %s already exists", club.Slug))
		}
		return fmt.Errorf("failed to create club: %w", err)
	}

	return nil
}

// FindByID возвращает клуб по его ID
func (r *ClubRepository) FindByID(ctx context.Context, id string) (*domain.Club, error) {
	query := clubSelectColumns + ` FROM clubs WHERE id = $1`

	club, err := r.scanClub(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("club %s not found", id))
		}
		return nil, fmt.Errorf("failed to get club by id: %w", err)
	}

	return club, nil
}

// FindBySlug возвращает клуб по его slug
func (r *ClubRepository) FindBySlug(ctx context.Context, slug string) (*domain.Club, error) {
	query := clubSelectColumns + ` FROM clubs WHERE slug = $1`

	club, err := r.scanClub(r.pool.QueryRow(ctx, query, slug))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("club with slug %s not found", slug))
		}
		return nil, fmt.Errorf("failed to get club by slug: %w", err)
	}

	return club, nil
}

// List возвращает клубы с опциональными equality фильтрами
func (r *ClubRepository) List(ctx context.Context, filters map[string]interface{}) ([]*domain.Club, error) {
	query := clubSelectColumns + ` FROM clubs`
	where, args := buildEqualityFilters(filters)
	query += where + ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	defer rows.Close()

	var clubs []*domain.Club
	for rows.Next() {
		club, err := r.scanClub(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan club: %w", err)
		}
		clubs = append(clubs, club)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate clubs: %w", err)
	}

	return clubs, nil
}

// Update обновляет существующий клуб
func (r *ClubRepository) Update(ctx context.Context, club *domain.Club) error {
	query := `UPDATE clubs SET
		name = $2,
		slug = $3,
		status = $4,
		description = $5,
		updated_at = $6
	WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		club.ID,
		club.Name,
		club.Slug,
		club.Status,
		club.Description,
		club.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.New(apperrors.ErrConflict, fmt.Sprintf("club with slug %s already exists", club.Slug))
		}
		return fmt.Errorf("failed to update club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("club %s not found", club.ID))
	}

	return nil
}

// Delete удаляет клуб по ID
func (r *ClubRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM clubs WHERE id = $1`

	result, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return apperrors.New(apperrors.ErrConflict, fmt.Sprintf("club %s still has memberships", id))
		}
		return fmt.Errorf("failed to delete club: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.New(apperrors.ErrNotFound, fmt.Sprintf("club %s not found", id))
	}

	return nil
}

const clubSelectColumns = `SELECT id, name, slug, status, description, created_at, updated_at`

// scanClub сканирует строку в domain.Club
func (r *ClubRepository) scanClub(row pgx.Row) (*domain.Club, error) {
	var club domain.Club
	err := row.Scan(
		&club.ID,
		&club.Name,
		&club.Slug,
		&club.Status,
		&club.Description,
		&club.CreatedAt,
		&club.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &club, nil
}

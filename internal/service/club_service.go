package service

import (
	"context"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/events"
	"ClubAdminPlatform/internal/session"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/validation"
)

const clubsTable = "clubs"

var clubStatuses = []string{
	domain.ClubStatusActive,
	domain.ClubStatusInactive,
	domain.ClubStatusSuspended,
}

// CreateClubInput данные для создания клуба
type CreateClubInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
}

// UpdateClubInput частичное обновление; nil поля не меняются
type UpdateClubInput struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// ClubService CRUD операции над клубами через шлюз
type ClubService struct {
	gateway   QueryGateway
	sessions  session.Source
	publisher events.Publisher
	validator *validation.Validator
	logger    logger.Logger
}

// NewClubService создает новый ClubService
func NewClubService(gw QueryGateway, sessions session.Source, publisher events.Publisher, log logger.Logger) *ClubService {
	return &ClubService{
		gateway:   gw,
		sessions:  sessions,
		publisher: publisher,
		validator: validation.NewValidator(),
		logger:    log,
	}
}

// Create создает клуб, уникальность slug обеспечивает БД (CONFLICT)
func (s *ClubService) Create(ctx context.Context, input CreateClubInput) (*domain.Club, error) {
	if err := s.validator.ValidateStringLength(input.Name, "name", 1, 200); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club name")
	}
	if err := s.validator.ValidateSlug(input.Slug); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club slug")
	}

	row := domain.Row{
		"name":        input.Name,
		"slug":        input.Slug,
		"description": input.Description,
		"status":      domain.ClubStatusActive,
	}

	result := s.gateway.Query(ctx, clubsTable, "insert", []domain.Row{row}, nil)
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrInternal, "insert returned no rows")
	}

	club := clubFromRow(result.Data[0])
	s.logger.Info("club created",
		logger.String("club_id", club.ID),
		logger.String("slug", club.Slug))

	audit(ctx, s.publisher, s.sessions, clubsTable, "insert", club.ID, domain.Row{"slug": club.Slug})
	return club, nil
}

// GetByID возвращает клуб по идентификатору
func (s *ClubService) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	if err := s.validator.ValidateUUID(id, "club id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club id")
	}

	result := s.gateway.Query(ctx, clubsTable, "select", nil, map[string]interface{}{"id": id})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "club not found")
	}

	return clubFromRow(result.Data[0]), nil
}

// GetBySlug возвращает клуб по slug
func (s *ClubService) GetBySlug(ctx context.Context, slug string) (*domain.Club, error) {
	if err := s.validator.ValidateSlug(slug); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club slug")
	}

	result := s.gateway.Query(ctx, clubsTable, "select", nil, map[string]interface{}{"slug": slug})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "club not found")
	}

	return clubFromRow(result.Data[0]), nil
}

// List возвращает клубы, опционально отфильтрованные по статусу
func (s *ClubService) List(ctx context.Context, status string) ([]*domain.Club, error) {
	conditions := map[string]interface{}{}
	if status != "" {
		if err := s.validator.ValidateEnum(status, clubStatuses, "status"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid status filter")
		}
		conditions["status"] = status
	}

	result := s.gateway.Query(ctx, clubsTable, "select", nil, conditions)
	if result.Err != nil {
		return nil, result.Err
	}

	clubs := make([]*domain.Club, 0, len(result.Data))
	for _, row := range result.Data {
		clubs = append(clubs, clubFromRow(row))
	}
	return clubs, nil
}

// Update частично обновляет клуб
func (s *ClubService) Update(ctx context.Context, id string, input UpdateClubInput) (*domain.Club, error) {
	if err := s.validator.ValidateUUID(id, "club id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club id")
	}

	changes := domain.Row{}
	if input.Name != nil {
		if err := s.validator.ValidateStringLength(*input.Name, "name", 1, 200); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club name")
		}
		changes["name"] = *input.Name
	}
	if input.Description != nil {
		changes["description"] = *input.Description
	}
	if input.Status != nil {
		if err := s.validator.ValidateEnum(*input.Status, clubStatuses, "status"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid status")
		}
		changes["status"] = *input.Status
	}
	if len(changes) == 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "no fields to update")
	}

	result := s.gateway.Query(ctx, clubsTable, "update",
		[]domain.Row{changes}, map[string]interface{}{"id": id})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "club not found")
	}

	club := clubFromRow(result.Data[0])
	audit(ctx, s.publisher, s.sessions, clubsTable, "update", club.ID, changes)
	return club, nil
}

// SetStatus переключает статус клуба
func (s *ClubService) SetStatus(ctx context.Context, id, status string) (*domain.Club, error) {
	return s.Update(ctx, id, UpdateClubInput{Status: &status})
}

// Delete удаляет клуб, при наличии членств БД вернет CONFLICT
func (s *ClubService) Delete(ctx context.Context, id string) error {
	if err := s.validator.ValidateUUID(id, "club id"); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid club id")
	}

	result := s.gateway.Query(ctx, clubsTable, "delete", nil, map[string]interface{}{"id": id})
	if result.Err != nil {
		return result.Err
	}
	if len(result.Data) == 0 {
		return apperrors.New(apperrors.ErrNotFound, "club not found")
	}

	s.logger.Info("club deleted", logger.String("club_id", id))
	audit(ctx, s.publisher, s.sessions, clubsTable, "delete", id, nil)
	return nil
}

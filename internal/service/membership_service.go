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

const membershipsTable = "memberships"

// AssignMembershipInput данные для назначения администратора в клуб
type AssignMembershipInput struct {
	AdministratorID string `json:"administrator_id"`
	ClubID          string `json:"club_id"`
	Role            string `json:"role"`
}

// MembershipService операции над членствами через шлюз
type MembershipService struct {
	gateway   QueryGateway
	sessions  session.Source
	publisher events.Publisher
	validator *validation.Validator
	logger    logger.Logger
}

// NewMembershipService создает новый MembershipService
func NewMembershipService(gw QueryGateway, sessions session.Source, publisher events.Publisher, log logger.Logger) *MembershipService {
	return &MembershipService{
		gateway:   gw,
		sessions:  sessions,
		publisher: publisher,
		validator: validation.NewValidator(),
		logger:    log,
	}
}

// Assign назначает администратора в клуб
// Повторное назначение той же пары дает CONFLICT из БД
func (s *MembershipService) Assign(ctx context.Context, input AssignMembershipInput) (*domain.Membership, error) {
	if err := s.validator.ValidateUUID(input.AdministratorID, "administrator id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid administrator id")
	}
	if err := s.validator.ValidateUUID(input.ClubID, "club id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club id")
	}
	if err := s.validator.ValidateStringLength(input.Role, "role", 1, 100); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid role")
	}

	row := domain.Row{
		"administrator_id": input.AdministratorID,
		"club_id":          input.ClubID,
		"role":             input.Role,
		"is_active":        true,
	}

	result := s.gateway.Query(ctx, membershipsTable, "insert", []domain.Row{row}, nil)
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrInternal, "insert returned no rows")
	}

	membership := membershipFromRow(result.Data[0])
	s.logger.Info("membership assigned",
		logger.String("membership_id", membership.ID),
		logger.String("administrator_id", membership.AdministratorID),
		logger.String("club_id", membership.ClubID))

	audit(ctx, s.publisher, s.sessions, membershipsTable, "insert", membership.ID, domain.Row{
		"administrator_id": membership.AdministratorID,
		"club_id":          membership.ClubID,
	})
	return membership, nil
}

// ListByClub возвращает членства клуба
func (s *MembershipService) ListByClub(ctx context.Context, clubID string) ([]*domain.Membership, error) {
	if err := s.validator.ValidateUUID(clubID, "club id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid club id")
	}

	result := s.gateway.Query(ctx, membershipsTable, "select", nil, map[string]interface{}{"club_id": clubID})
	if result.Err != nil {
		return nil, result.Err
	}

	memberships := make([]*domain.Membership, 0, len(result.Data))
	for _, row := range result.Data {
		memberships = append(memberships, membershipFromRow(row))
	}
	return memberships, nil
}

// ListByAdministrator возвращает членства администратора
func (s *MembershipService) ListByAdministrator(ctx context.Context, administratorID string) ([]*domain.Membership, error) {
	if err := s.validator.ValidateUUID(administratorID, "administrator id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid administrator id")
	}

	result := s.gateway.Query(ctx, membershipsTable, "select", nil,
		map[string]interface{}{"administrator_id": administratorID})
	if result.Err != nil {
		return nil, result.Err
	}

	memberships := make([]*domain.Membership, 0, len(result.Data))
	for _, row := range result.Data {
		memberships = append(memberships, membershipFromRow(row))
	}
	return memberships, nil
}

// SetActive переключает активность членства
func (s *MembershipService) SetActive(ctx context.Context, id string, active bool) (*domain.Membership, error) {
	if err := s.validator.ValidateUUID(id, "membership id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid membership id")
	}

	result := s.gateway.Query(ctx, membershipsTable, "update",
		[]domain.Row{{"is_active": active}}, map[string]interface{}{"id": id})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "membership not found")
	}

	membership := membershipFromRow(result.Data[0])
	audit(ctx, s.publisher, s.sessions, membershipsTable, "update", membership.ID, domain.Row{
		"is_active": active,
	})
	return membership, nil
}

// Revoke удаляет членство
func (s *MembershipService) Revoke(ctx context.Context, id string) error {
	if err := s.validator.ValidateUUID(id, "membership id"); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid membership id")
	}

	result := s.gateway.Query(ctx, membershipsTable, "delete", nil, map[string]interface{}{"id": id})
	if result.Err != nil {
		return result.Err
	}
	if len(result.Data) == 0 {
		return apperrors.New(apperrors.ErrNotFound, "membership not found")
	}

	s.logger.Info("membership revoked", logger.String("membership_id", id))
	audit(ctx, s.publisher, s.sessions, membershipsTable, "delete", id, nil)
	return nil
}

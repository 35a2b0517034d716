package service

import (
	"context"

	"ClubAdminPlatform/internal/auth/password"
	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/events"
	"ClubAdminPlatform/internal/session"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/logger"
	"ClubAdminPlatform/pkg/validation"
)

const administratorsTable = "administrators"

var contractTypes = []string{
	domain.ContractTypeCDI,
	domain.ContractTypeCDD,
	domain.ContractTypeFreelance,
}

var administratorStatuses = []string{
	domain.AdministratorStatusActive,
	domain.AdministratorStatusInactive,
}

// CreateAdministratorInput данные для создания администратора
type CreateAdministratorInput struct {
	Email        string  `json:"email"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	Phone        string  `json:"phone"`
	Password     string  `json:"password"`
	Salary       float64 `json:"salary"`
	ContractType string  `json:"contract_type"`
	IsSuper      bool    `json:"is_super"`
}

// UpdateAdministratorInput частичное обновление; nil поля не меняются
type UpdateAdministratorInput struct {
	FirstName    *string  `json:"first_name,omitempty"`
	LastName     *string  `json:"last_name,omitempty"`
	Phone        *string  `json:"phone,omitempty"`
	Salary       *float64 `json:"salary,omitempty"`
	ContractType *string  `json:"contract_type,omitempty"`
	Status       *string  `json:"status,omitempty"`
}

// AdministratorFilters фильтры списка администраторов
type AdministratorFilters struct {
	Status       string
	ContractType string
}

// AdministratorService CRUD операции над администраторами через шлюз
// Валидация выполняется до обращения к шлюзу, ошибки валидации
// никогда не доходят до слоя данных
type AdministratorService struct {
	gateway   QueryGateway
	sessions  session.Source
	publisher events.Publisher
	validator *validation.Validator
	hasher    password.Hasher
	logger    logger.Logger
}

// NewAdministratorService создает новый AdministratorService
func NewAdministratorService(
	gw QueryGateway,
	sessions session.Source,
	publisher events.Publisher,
	hasher password.Hasher,
	log logger.Logger,
) *AdministratorService {
	return &AdministratorService{
		gateway:   gw,
		sessions:  sessions,
		publisher: publisher,
		validator: validation.NewValidator(),
		hasher:    hasher,
		logger:    log,
	}
}

// Create создает администратора, пароль хешируется до записи
func (s *AdministratorService) Create(ctx context.Context, input CreateAdministratorInput) (*domain.Administrator, error) {
	if err := s.validateCreate(input); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrInternal, "failed to hash password")
	}

	row := domain.Row{
		"email":         input.Email,
		"first_name":    input.FirstName,
		"last_name":     input.LastName,
		"phone":         input.Phone,
		"password_hash": passwordHash,
		"salary":        input.Salary,
		"contract_type": input.ContractType,
		"status":        domain.AdministratorStatusActive,
		"is_super":      input.IsSuper,
	}

	result := s.gateway.Query(ctx, administratorsTable, "insert", []domain.Row{row}, nil)
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrInternal, "insert returned no rows")
	}

	administrator := administratorFromRow(result.Data[0])
	s.logger.Info("administrator created",
		logger.String("administrator_id", administrator.ID),
		logger.String("email", administrator.Email))

	audit(ctx, s.publisher, s.sessions, administratorsTable, "insert", administrator.ID, domain.Row{
		"email":         administrator.Email,
		"contract_type": administrator.ContractType,
	})
	return administrator, nil
}

// GetByID возвращает администратора по идентификатору
func (s *AdministratorService) GetByID(ctx context.Context, id string) (*domain.Administrator, error) {
	if err := s.validator.ValidateUUID(id, "administrator id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid administrator id")
	}

	result := s.gateway.Query(ctx, administratorsTable, "select", nil, map[string]interface{}{"id": id})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "administrator not found")
	}

	return administratorFromRow(result.Data[0]), nil
}

// List возвращает администраторов с учетом фильтров равенства
func (s *AdministratorService) List(ctx context.Context, filters AdministratorFilters) ([]*domain.Administrator, error) {
	conditions := map[string]interface{}{}
	if filters.Status != "" {
		if err := s.validator.ValidateEnum(filters.Status, administratorStatuses, "status"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid status filter")
		}
		conditions["status"] = filters.Status
	}
	if filters.ContractType != "" {
		if err := s.validator.ValidateEnum(filters.ContractType, contractTypes, "contract_type"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid contract type filter")
		}
		conditions["contract_type"] = filters.ContractType
	}

	result := s.gateway.Query(ctx, administratorsTable, "select", nil, conditions)
	if result.Err != nil {
		return nil, result.Err
	}

	administrators := make([]*domain.Administrator, 0, len(result.Data))
	for _, row := range result.Data {
		administrators = append(administrators, administratorFromRow(row))
	}
	return administrators, nil
}

// Update частично обновляет администратора
func (s *AdministratorService) Update(ctx context.Context, id string, input UpdateAdministratorInput) (*domain.Administrator, error) {
	if err := s.validator.ValidateUUID(id, "administrator id"); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid administrator id")
	}

	changes, err := s.buildChanges(input)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return nil, apperrors.New(apperrors.ErrValidation, "no fields to update")
	}

	result := s.gateway.Query(ctx, administratorsTable, "update",
		[]domain.Row{changes}, map[string]interface{}{"id": id})
	if result.Err != nil {
		return nil, result.Err
	}
	if len(result.Data) == 0 {
		return nil, apperrors.New(apperrors.ErrNotFound, "administrator not found")
	}

	administrator := administratorFromRow(result.Data[0])
	audit(ctx, s.publisher, s.sessions, administratorsTable, "update", administrator.ID, changes)
	return administrator, nil
}

// SetStatus переключает статус администратора
func (s *AdministratorService) SetStatus(ctx context.Context, id, status string) (*domain.Administrator, error) {
	return s.Update(ctx, id, UpdateAdministratorInput{Status: &status})
}

// Delete удаляет администратора, членства удаляются каскадно на уровне БД
func (s *AdministratorService) Delete(ctx context.Context, id string) error {
	if err := s.validator.ValidateUUID(id, "administrator id"); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid administrator id")
	}

	result := s.gateway.Query(ctx, administratorsTable, "delete", nil, map[string]interface{}{"id": id})
	if result.Err != nil {
		return result.Err
	}
	if len(result.Data) == 0 {
		return apperrors.New(apperrors.ErrNotFound, "administrator not found")
	}

	s.logger.Info("administrator deleted", logger.String("administrator_id", id))
	audit(ctx, s.publisher, s.sessions, administratorsTable, "delete", id, nil)
	return nil
}

func (s *AdministratorService) validateCreate(input CreateAdministratorInput) error {
	if err := s.validator.ValidateRequiredFields(map[string]interface{}{
		"email":         input.Email,
		"first_name":    input.FirstName,
		"last_name":     input.LastName,
		"password":      input.Password,
		"contract_type": input.ContractType,
	}, map[string]string{
		"email":         "email",
		"first_name":    "first name",
		"last_name":     "last name",
		"password":      "password",
		"contract_type": "contract type",
	}); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "missing required fields")
	}

	if err := s.validator.ValidateEmail(input.Email); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid email")
	}
	if err := s.validator.ValidatePhone(input.Phone); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid phone")
	}
	if err := s.validator.ValidateSalary(input.Salary); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid salary")
	}
	if err := s.validator.ValidateEnum(input.ContractType, contractTypes, "contract_type"); err != nil {
		return apperrors.Wrap(err, apperrors.ErrValidation, "invalid contract type")
	}
	if !s.hasher.Validate(input.Password) {
		return apperrors.New(apperrors.ErrValidation,
			"password must be at least 8 characters with upper, lower and digit")
	}

	return nil
}

func (s *AdministratorService) buildChanges(input UpdateAdministratorInput) (domain.Row, error) {
	changes := domain.Row{}

	if input.FirstName != nil {
		if err := s.validator.ValidateStringLength(*input.FirstName, "first name", 1, 100); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid first name")
		}
		changes["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		if err := s.validator.ValidateStringLength(*input.LastName, "last name", 1, 100); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid last name")
		}
		changes["last_name"] = *input.LastName
	}
	if input.Phone != nil {
		if err := s.validator.ValidatePhone(*input.Phone); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid phone")
		}
		changes["phone"] = *input.Phone
	}
	if input.Salary != nil {
		if err := s.validator.ValidateSalary(*input.Salary); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid salary")
		}
		changes["salary"] = *input.Salary
	}
	if input.ContractType != nil {
		if err := s.validator.ValidateEnum(*input.ContractType, contractTypes, "contract_type"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid contract type")
		}
		changes["contract_type"] = *input.ContractType
	}
	if input.Status != nil {
		if err := s.validator.ValidateEnum(*input.Status, administratorStatuses, "status"); err != nil {
			return nil, apperrors.Wrap(err, apperrors.ErrValidation, "invalid status")
		}
		changes["status"] = *input.Status
	}

	return changes, nil
}

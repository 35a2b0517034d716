package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"ClubAdminPlatform/internal/auth"
	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/service"
)

// MockAuthService мок для сервиса аутентификации
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*auth.LoginResult, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockAuthService) Refresh(ctx context.Context, refreshToken string) (*auth.LoginResult, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.LoginResult), args.Error(1)
}

func (m *MockAuthService) Validate(ctx context.Context, accessToken string) (*domain.Session, error) {
	args := m.Called(ctx, accessToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

// MockAdministratorService мок для сервиса администраторов
type MockAdministratorService struct {
	mock.Mock
}

func (m *MockAdministratorService) Create(ctx context.Context, input service.CreateAdministratorInput) (*domain.Administrator, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

func (m *MockAdministratorService) GetByID(ctx context.Context, id string) (*domain.Administrator, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

func (m *MockAdministratorService) List(ctx context.Context, filters service.AdministratorFilters) ([]*domain.Administrator, error) {
	args := m.Called(ctx, filters)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Administrator), args.Error(1)
}

func (m *MockAdministratorService) Update(ctx context.Context, id string, input service.UpdateAdministratorInput) (*domain.Administrator, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

func (m *MockAdministratorService) SetStatus(ctx context.Context, id, status string) (*domain.Administrator, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Administrator), args.Error(1)
}

func (m *MockAdministratorService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockClubService мок для сервиса клубов
type MockClubService struct {
	mock.Mock
}

func (m *MockClubService) Create(ctx context.Context, input service.CreateClubInput) (*domain.Club, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *MockClubService) GetByID(ctx context.Context, id string) (*domain.Club, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *MockClubService) List(ctx context.Context, status string) ([]*domain.Club, error) {
	args := m.Called(ctx, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Club), args.Error(1)
}

func (m *MockClubService) Update(ctx context.Context, id string, input service.UpdateClubInput) (*domain.Club, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *MockClubService) SetStatus(ctx context.Context, id, status string) (*domain.Club, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Club), args.Error(1)
}

func (m *MockClubService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockAuditReader мок для чтения журнала аудита
type MockAuditReader struct {
	mock.Mock
}

func (m *MockAuditReader) ListByTable(ctx context.Context, table string, limit int) ([]*domain.AuditEvent, error) {
	args := m.Called(ctx, table, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.AuditEvent), args.Error(1)
}

// MockMembershipService мок для сервиса членств
type MockMembershipService struct {
	mock.Mock
}

func (m *MockMembershipService) Assign(ctx context.Context, input service.AssignMembershipInput) (*domain.Membership, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) ListByClub(ctx context.Context, clubID string) ([]*domain.Membership, error) {
	args := m.Called(ctx, clubID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) SetActive(ctx context.Context, id string, active bool) (*domain.Membership, error) {
	args := m.Called(ctx, id, active)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Membership), args.Error(1)
}

func (m *MockMembershipService) Revoke(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ClubAdminPlatform/internal/auth"
	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/service"
	apperrors "ClubAdminPlatform/pkg/errors"
	"ClubAdminPlatform/pkg/health"
	"ClubAdminPlatform/pkg/logger"
)

const (
	testAdminID      = "1b4e28ba-2fa1-11d2-883f-0016d3cca427"
	testClubID       = "2c5f39cb-3fb2-22e3-994f-1127e4ddb538"
	testMembershipID = "3d604adc-4fc3-33f4-aa50-2238f5eec649"
)

type handlerMocks struct {
	auth           *MockAuthService
	administrators *MockAdministratorService
	clubs          *MockClubService
	memberships    *MockMembershipService
	audits         *MockAuditReader
}

func newTestHandler(t *testing.T) (*Handler, *handlerMocks) {
	t.Helper()

	log, err := logger.NewLogger("dev", "error", "handler-test")
	require.NoError(t, err)

	m := &handlerMocks{
		auth:           new(MockAuthService),
		administrators: new(MockAdministratorService),
		clubs:          new(MockClubService),
		memberships:    new(MockMembershipService),
		audits:         new(MockAuditReader),
	}

	h := NewHandler(
		m.auth,
		m.administrators,
		m.clubs,
		m.memberships,
		m.audits,
		health.NewSimpleHealthChecker("test"),
		nil,
		log,
	)
	return h, m
}

func authorize(m *handlerMocks) {
	m.auth.On("Validate", mock.Anything, "valid-token").Return(&domain.Session{
		ID:              "sess-1",
		AdministratorID: testAdminID,
		Profile: &domain.Profile{
			Administrator: domain.Administrator{ID: testAdminID, Email: "root@club.dev"},
		},
		ExpiresAt: time.Now().Add(time.Hour),
	}, nil)
}

func doRequest(h *Handler, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Code
}

func TestHandler_Login(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.On("Login", mock.Anything, "root@club.dev", "Secret123").Return(&auth.LoginResult{
		AccessToken:  "access",
		RefreshToken: "refresh",
		ExpiresAt:    time.Now().Add(15 * time.Minute),
		Profile: &domain.Profile{
			Administrator: domain.Administrator{ID: testAdminID, Email: "root@club.dev"},
		},
	}, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    "root@club.dev",
		Password: "Secret123",
	})

	assert.Equal(t, http.StatusOK, rec.Code)

	var result auth.LoginResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "access", result.AccessToken)
	assert.Equal(t, "refresh", result.RefreshToken)
	m.auth.AssertExpectations(t)
}

func TestHandler_Login_InvalidCredentials(t *testing.T) {
	h, m := newTestHandler(t)

	m.auth.On("Login", mock.Anything, "root@club.dev", "wrong").
		Return(nil, apperrors.New(apperrors.ErrUnauthorized, "invalid email or password"))

	rec := doRequest(h, http.MethodPost, "/api/v1/auth/login", "", loginRequest{
		Email:    "root@club.dev",
		Password: "wrong",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, rec))
}

func TestHandler_Login_MalformedBody(t *testing.T) {
	h, _ := newTestHandler(t)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHandler_Refresh_MissingToken(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := doRequest(h, http.MethodPost, "/api/v1/auth/refresh", "", refreshRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", errorCode(t, rec))
}

func TestHandler_Logout(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)
	m.auth.On("Logout", mock.Anything, "valid-token").Return(nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/auth/logout", "valid-token", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.auth.AssertExpectations(t)
}

func TestHandler_Me(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	rec := doRequest(h, http.MethodGet, "/api/v1/auth/me", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)

	var profile domain.Profile
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, testAdminID, profile.Administrator.ID)
}

func TestHandler_ProtectedRouteWithoutToken(t *testing.T) {
	h, m := newTestHandler(t)

	rec := doRequest(h, http.MethodGet, "/api/v1/administrators", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	m.administrators.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_ProtectedRouteWithInvalidToken(t *testing.T) {
	h, m := newTestHandler(t)
	m.auth.On("Validate", mock.Anything, "stale-token").
		Return(nil, apperrors.New(apperrors.ErrUnauthorized, "session not found"))

	rec := doRequest(h, http.MethodGet, "/api/v1/administrators", "stale-token", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	m.administrators.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestHandler_CreateAdministrator(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	input := service.CreateAdministratorInput{
		Email:        "new@club.dev",
		FirstName:    "Anna",
		LastName:     "Petrova",
		Phone:        "+79160000000",
		Password:     "Secret123",
		Salary:       95000,
		ContractType: "full_time",
	}
	m.administrators.On("Create", mock.Anything, input).Return(&domain.Administrator{
		ID:    testAdminID,
		Email: "new@club.dev",
	}, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/administrators", "valid-token", input)

	assert.Equal(t, http.StatusCreated, rec.Code)
	m.administrators.AssertExpectations(t)
}

func TestHandler_GetAdministrator_PathValue(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.administrators.On("GetByID", mock.Anything, testAdminID).Return(&domain.Administrator{
		ID: testAdminID,
	}, nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/administrators/"+testAdminID, "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.administrators.AssertExpectations(t)
}

func TestHandler_GetAdministrator_NotFound(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.administrators.On("GetByID", mock.Anything, testAdminID).
		Return(nil, apperrors.New(apperrors.ErrNotFound, "administrator not found"))

	rec := doRequest(h, http.MethodGet, "/api/v1/administrators/"+testAdminID, "valid-token", nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", errorCode(t, rec))
}

func TestHandler_ListAdministrators_Filters(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.administrators.On("List", mock.Anything, service.AdministratorFilters{
		Status:       "active",
		ContractType: "part_time",
	}).Return([]*domain.Administrator{{ID: testAdminID}}, nil)

	rec := doRequest(h, http.MethodGet,
		"/api/v1/administrators?status=active&contract_type=part_time", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.administrators.AssertExpectations(t)
}

func TestHandler_AdministratorStatus_MissingStatus(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	rec := doRequest(h, http.MethodPut,
		"/api/v1/administrators/"+testAdminID+"/status", "valid-token", statusRequest{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.administrators.AssertNotCalled(t, "SetStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_DeleteAdministrator(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.administrators.On("Delete", mock.Anything, testAdminID).Return(nil)

	rec := doRequest(h, http.MethodDelete, "/api/v1/administrators/"+testAdminID, "valid-token", nil)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	m.administrators.AssertExpectations(t)
}

func TestHandler_CreateClub(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	input := service.CreateClubInput{Name: "Downtown Club", Slug: "downtown-club"}
	m.clubs.On("Create", mock.Anything, input).Return(&domain.Club{
		ID:   testClubID,
		Slug: "downtown-club",
	}, nil)

	rec := doRequest(h, http.MethodPost, "/api/v1/clubs", "valid-token", input)

	assert.Equal(t, http.StatusCreated, rec.Code)
	m.clubs.AssertExpectations(t)
}

func TestHandler_DeleteClub_Conflict(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.clubs.On("Delete", mock.Anything, testClubID).
		Return(apperrors.New(apperrors.ErrConflict, "club has active memberships"))

	rec := doRequest(h, http.MethodDelete, "/api/v1/clubs/"+testClubID, "valid-token", nil)

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "CONFLICT", errorCode(t, rec))
}

func TestHandler_AssignMembership_ClubIDFromPath(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.memberships.On("Assign", mock.Anything, service.AssignMembershipInput{
		AdministratorID: testAdminID,
		ClubID:          testClubID,
		Role:            "manager",
	}).Return(&domain.Membership{ID: testMembershipID}, nil)

	rec := doRequest(h, http.MethodPost,
		"/api/v1/clubs/"+testClubID+"/administrators", "valid-token",
		assignMembershipRequest{AdministratorID: testAdminID, Role: "manager"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	m.memberships.AssertExpectations(t)
}

func TestHandler_MembershipActive_MissingField(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	rec := doRequest(h, http.MethodPut,
		"/api/v1/memberships/"+testMembershipID+"/active", "valid-token",
		map[string]interface{}{})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.memberships.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_MembershipActive_Disable(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.memberships.On("SetActive", mock.Anything, testMembershipID, false).
		Return(&domain.Membership{ID: testMembershipID, IsActive: false}, nil)

	active := false
	rec := doRequest(h, http.MethodPut,
		"/api/v1/memberships/"+testMembershipID+"/active", "valid-token",
		membershipActiveRequest{Active: &active})

	assert.Equal(t, http.StatusOK, rec.Code)
	m.memberships.AssertExpectations(t)
}

func TestHandler_ListAudit(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	m.audits.On("ListByTable", mock.Anything, "clubs", 10).
		Return([]*domain.AuditEvent{{Table: "clubs", Operation: "insert"}}, nil)

	rec := doRequest(h, http.MethodGet, "/api/v1/audit?table=clubs&limit=10", "valid-token", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	m.audits.AssertExpectations(t)
}

func TestHandler_ListAudit_MissingTable(t *testing.T) {
	h, m := newTestHandler(t)
	authorize(m)

	rec := doRequest(h, http.MethodGet, "/api/v1/audit", "valid-token", nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	m.audits.AssertNotCalled(t, "ListByTable", mock.Anything, mock.Anything, mock.Anything)
}

func TestHandler_HealthEndpoints(t *testing.T) {
	h, _ := newTestHandler(t)

	for _, target := range []string{"/health", "/ready", "/live"} {
		rec := doRequest(h, http.MethodGet, target, "", nil)
		assert.Equal(t, http.StatusOK, rec.Code, target)
	}
}

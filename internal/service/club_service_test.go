package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ClubAdminPlatform/internal/domain"
	"ClubAdminPlatform/internal/gateway"
	apperrors "ClubAdminPlatform/pkg/errors"
)

func clubRow() domain.Row {
	return domain.Row{
		"id":          clubID,
		"name":        "Olympique de Marseille",
		"slug":        "olympique-marseille",
		"status":      domain.ClubStatusActive,
		"description": "Football club",
		"created_at":  time.Now().UTC(),
		"updated_at":  time.Now().UTC(),
	}
}

func newClubService(gw QueryGateway, publisher *recordingPublisher, t *testing.T) *ClubService {
	return NewClubService(gw, actorSource(), publisher, testLogger(t))
}

func TestClubService_Create(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{clubRow()}},
	}}
	publisher := &recordingPublisher{}
	svc := newClubService(gw, publisher, t)

	club, err := svc.Create(context.Background(), CreateClubInput{
		Name:        "Olympique de Marseille",
		Slug:        "olympique-marseille",
		Description: "Football club",
	})

	require.NoError(t, err)
	assert.Equal(t, "olympique-marseille", club.Slug)

	call := gw.lastCall()
	assert.Equal(t, "clubs", call.table)
	assert.Equal(t, "insert", call.op)
	assert.Equal(t, domain.ClubStatusActive, call.data[0]["status"])

	require.Len(t, publisher.events, 1)
	assert.Equal(t, "clubs", publisher.events[0].Table)
}

func TestClubService_Create_InvalidSlug(t *testing.T) {
	gw := &recordingGateway{}
	svc := newClubService(gw, &recordingPublisher{}, t)

	tests := []string{"", "-leading", "trailing-", "With Spaces", "UPPER"}
	for _, slug := range tests {
		_, err := svc.Create(context.Background(), CreateClubInput{Name: "Club", Slug: slug})
		require.Error(t, err, "slug %q must be rejected", slug)
		assert.Equal(t, apperrors.ErrValidation, apperrors.GetCode(err))
	}
	assert.Equal(t, 0, gw.callCount())
}

func TestClubService_Create_DuplicateSlug(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Err: apperrors.New(apperrors.ErrConflict, "club with this slug already exists")},
	}}
	svc := newClubService(gw, &recordingPublisher{}, t)

	_, err := svc.Create(context.Background(), CreateClubInput{
		Name: "Olympique", Slug: "olympique-marseille",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.GetCode(err))
}

func TestClubService_GetBySlug(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{clubRow()}},
	}}
	svc := newClubService(gw, &recordingPublisher{}, t)

	club, err := svc.GetBySlug(context.Background(), "olympique-marseille")

	require.NoError(t, err)
	assert.Equal(t, clubID, club.ID)
	assert.Equal(t, "olympique-marseille", gw.lastCall().conditions["slug"])
}

func TestClubService_List_StatusFilter(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{clubRow()}},
	}}
	svc := newClubService(gw, &recordingPublisher{}, t)

	clubs, err := svc.List(context.Background(), domain.ClubStatusSuspended)

	require.NoError(t, err)
	require.Len(t, clubs, 1)
	assert.Equal(t, domain.ClubStatusSuspended, gw.lastCall().conditions["status"])
}

func TestClubService_SetStatus(t *testing.T) {
	updated := clubRow()
	updated["status"] = domain.ClubStatusSuspended
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{updated}},
	}}
	publisher := &recordingPublisher{}
	svc := newClubService(gw, publisher, t)

	club, err := svc.SetStatus(context.Background(), clubID, domain.ClubStatusSuspended)

	require.NoError(t, err)
	assert.Equal(t, domain.ClubStatusSuspended, club.Status)

	call := gw.lastCall()
	assert.Equal(t, "update", call.op)
	assert.Equal(t, domain.ClubStatusSuspended, call.data[0]["status"])
	assert.Equal(t, clubID, call.conditions["id"])
}

func TestClubService_SetStatus_UnknownStatus(t *testing.T) {
	gw := &recordingGateway{}
	svc := newClubService(gw, &recordingPublisher{}, t)

	_, err := svc.SetStatus(context.Background(), clubID, "closed")

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.GetCode(err))
	assert.Equal(t, 0, gw.callCount())
}

func TestClubService_Delete_ConflictWithMemberships(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Err: apperrors.New(apperrors.ErrConflict, "club still has memberships")},
	}}
	svc := newClubService(gw, &recordingPublisher{}, t)

	err := svc.Delete(context.Background(), clubID)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.GetCode(err))
}

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

func membershipRow() domain.Row {
	return domain.Row{
		"id":               membershipID,
		"administrator_id": adminID,
		"club_id":          clubID,
		"role":             "manager",
		"is_active":        true,
		"created_at":       time.Now().UTC(),
	}
}

func newMembershipService(gw QueryGateway, publisher *recordingPublisher, t *testing.T) *MembershipService {
	return NewMembershipService(gw, actorSource(), publisher, testLogger(t))
}

func TestMembershipService_Assign(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{membershipRow()}},
	}}
	publisher := &recordingPublisher{}
	svc := newMembershipService(gw, publisher, t)

	membership, err := svc.Assign(context.Background(), AssignMembershipInput{
		AdministratorID: adminID,
		ClubID:          clubID,
		Role:            "manager",
	})

	require.NoError(t, err)
	assert.Equal(t, adminID, membership.AdministratorID)
	assert.True(t, membership.IsActive)

	call := gw.lastCall()
	assert.Equal(t, "memberships", call.table)
	assert.Equal(t, "insert", call.op)
	assert.Equal(t, true, call.data[0]["is_active"])

	require.Len(t, publisher.events, 1)
}

func TestMembershipService_Assign_InvalidIDs(t *testing.T) {
	gw := &recordingGateway{}
	svc := newMembershipService(gw, &recordingPublisher{}, t)

	_, err := svc.Assign(context.Background(), AssignMembershipInput{
		AdministratorID: "not-a-uuid",
		ClubID:          clubID,
		Role:            "manager",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrValidation, apperrors.GetCode(err))
	assert.Equal(t, 0, gw.callCount())
}

func TestMembershipService_Assign_Duplicate(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Err: apperrors.New(apperrors.ErrConflict, "membership already exists")},
	}}
	svc := newMembershipService(gw, &recordingPublisher{}, t)

	_, err := svc.Assign(context.Background(), AssignMembershipInput{
		AdministratorID: adminID,
		ClubID:          clubID,
		Role:            "manager",
	})

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrConflict, apperrors.GetCode(err))
}

func TestMembershipService_ListByClub(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{membershipRow()}},
	}}
	svc := newMembershipService(gw, &recordingPublisher{}, t)

	memberships, err := svc.ListByClub(context.Background(), clubID)

	require.NoError(t, err)
	require.Len(t, memberships, 1)
	assert.Equal(t, clubID, gw.lastCall().conditions["club_id"])
}

func TestMembershipService_SetActive(t *testing.T) {
	deactivated := membershipRow()
	deactivated["is_active"] = false
	gw := &recordingGateway{results: []gateway.QueryResult{
		{Data: []domain.Row{deactivated}},
	}}
	publisher := &recordingPublisher{}
	svc := newMembershipService(gw, publisher, t)

	membership, err := svc.SetActive(context.Background(), membershipID, false)

	require.NoError(t, err)
	assert.False(t, membership.IsActive)

	call := gw.lastCall()
	assert.Equal(t, "update", call.op)
	assert.Equal(t, false, call.data[0]["is_active"])
	assert.Equal(t, membershipID, call.conditions["id"])
}

func TestMembershipService_Revoke_NotFound(t *testing.T) {
	gw := &recordingGateway{results: []gateway.QueryResult{{}}}
	svc := newMembershipService(gw, &recordingPublisher{}, t)

	err := svc.Revoke(context.Background(), membershipID)

	require.Error(t, err)
	assert.Equal(t, apperrors.ErrNotFound, apperrors.GetCode(err))
}

package service

import (
	"context"
	"testing"
	"time"

	"toolshare/internal/model"

	"github.com/stretchr/testify/require"
)

func TestInviteSweeper_SweepOnce(t *testing.T) {
	db, ref := getTestDatabase(t)
	svc := NewCommunityService(db, ref, nil)

	creator := createTestUser(t, db, "u1@example.com")
	community, err := svc.CreateCommunity(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	stale, err := svc.CreateInvite(context.Background(), community.ID, "old@example.com")
	require.NoError(t, err)
	fresh, err := svc.CreateInvite(context.Background(), community.ID, "new@example.com")
	require.NoError(t, err)

	require.NoError(t, db.Model(&model.Invitation{}).Where("id = ?", stale.ID).
		Update("created_at", time.Now().Add(-15*24*time.Hour)).Error)

	sweeper := NewInviteSweeper(db, ref, 14*24*time.Hour)
	sweeper.sweepOnce(context.Background())

	var got model.Invitation
	require.NoError(t, db.First(&got, stale.ID).Error)
	require.Equal(t, ref.StatusID(model.StatusExpired), got.StatusID)

	got = model.Invitation{}
	require.NoError(t, db.First(&got, fresh.ID).Error)
	require.Equal(t, ref.StatusID(model.StatusOpen), got.StatusID)
}

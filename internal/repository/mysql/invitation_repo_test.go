package mysql

import (
	"context"
	"testing"
	"time"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"github.com/stretchr/testify/require"
)

func TestInvitationRepository_CreateOpen(t *testing.T) {
	db, ref := getTestDatabase(t)
	communityRepo := &CommunityRepository{DB: db, Ref: ref}
	repo := &InvitationRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	community, err := communityRepo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	invite, err := repo.Create(context.Background(), community.ID, "u2@example.com")
	require.NoError(t, err)
	require.Equal(t, ref.StatusID(model.StatusOpen), invite.StatusID)

	// 同一 (社区, 邮箱) 允许重复 Open 邀请
	_, err = repo.Create(context.Background(), community.ID, "u2@example.com")
	require.NoError(t, err)

	list, err := repo.ListByEmail(context.Background(), "u2@example.com")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "Garden Club", list[0].Community.Name)
}

func TestInvitationRepository_ActionAccept(t *testing.T) {
	db, ref := getTestDatabase(t)
	communityRepo := &CommunityRepository{DB: db, Ref: ref}
	repo := &InvitationRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	invitee := createTestUser(t, db, "u2@example.com")
	community, err := communityRepo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	invite, err := repo.Create(context.Background(), community.ID, invitee.Email)
	require.NoError(t, err)

	updated, err := repo.Action(context.Background(), invite.ID, true, invitee.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusAccepted, updated.Status.Name)
	require.True(t, updated.LastUpdatedAt.After(invite.LastUpdatedAt) || updated.LastUpdatedAt.Equal(invite.LastUpdatedAt))

	var members []model.Member
	require.NoError(t, db.Where("community_id = ? AND user_id = ?", community.ID, invitee.ID).Find(&members).Error)
	require.Len(t, members, 1)
	require.Equal(t, ref.PermissionID(model.PermissionMember), members[0].PermissionID)

	detail, err := communityRepo.Detail(context.Background(), community.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 2)
}

func TestInvitationRepository_ActionReject(t *testing.T) {
	db, ref := getTestDatabase(t)
	communityRepo := &CommunityRepository{DB: db, Ref: ref}
	repo := &InvitationRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	invitee := createTestUser(t, db, "u2@example.com")
	community, err := communityRepo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	invite, err := repo.Create(context.Background(), community.ID, invitee.Email)
	require.NoError(t, err)

	updated, err := repo.Action(context.Background(), invite.ID, false, invitee.ID)
	require.NoError(t, err)
	require.Equal(t, model.StatusRejected, updated.Status.Name)

	// 拒绝不产生成员
	var count int64
	db.Model(&model.Member{}).Where("user_id = ?", invitee.ID).Count(&count)
	require.EqualValues(t, 0, count)
}

func TestInvitationRepository_ActionTerminalTwice(t *testing.T) {
	db, ref := getTestDatabase(t)
	communityRepo := &CommunityRepository{DB: db, Ref: ref}
	repo := &InvitationRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	invitee := createTestUser(t, db, "u2@example.com")
	community, err := communityRepo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	invite, err := repo.Create(context.Background(), community.ID, invitee.Email)
	require.NoError(t, err)

	_, err = repo.Action(context.Background(), invite.ID, true, invitee.ID)
	require.NoError(t, err)

	// 终态邀请不允许再次受理
	_, err = repo.Action(context.Background(), invite.ID, false, invitee.ID)
	require.ErrorIs(t, err, pkg.ErrInvalidStateTransition)

	var count int64
	db.Model(&model.Member{}).Where("user_id = ?", invitee.ID).Count(&count)
	require.EqualValues(t, 1, count)
}

func TestInvitationRepository_ActionNotFound(t *testing.T) {
	db, ref := getTestDatabase(t)
	repo := &InvitationRepository{DB: db, Ref: ref}

	_, err := repo.Action(context.Background(), 9999, true, 1)
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestInvitationRepository_ExpireOpenBefore(t *testing.T) {
	db, ref := getTestDatabase(t)
	communityRepo := &CommunityRepository{DB: db, Ref: ref}
	repo := &InvitationRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	community, err := communityRepo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	stale, err := repo.Create(context.Background(), community.ID, "old@example.com")
	require.NoError(t, err)
	fresh, err := repo.Create(context.Background(), community.ID, "new@example.com")
	require.NoError(t, err)
	accepted, err := repo.Create(context.Background(), community.ID, "done@example.com")
	require.NoError(t, err)

	past := time.Now().Add(-48 * time.Hour)
	require.NoError(t, db.Model(&model.Invitation{}).Where("id IN ?", []uint64{stale.ID, accepted.ID}).Update("created_at", past).Error)
	require.NoError(t, db.Model(&model.Invitation{}).Where("id = ?", accepted.ID).Update("status_id", ref.StatusID(model.StatusAccepted)).Error)

	n, err := repo.ExpireOpenBefore(context.Background(), time.Now().Add(-24*time.Hour), 100)
	require.NoError(t, err)
	require.EqualValues(t, 1, n)

	var got model.Invitation
	require.NoError(t, db.First(&got, stale.ID).Error)
	require.Equal(t, ref.StatusID(model.StatusExpired), got.StatusID)

	// 新的 Open 和已受理的不受影响
	got = model.Invitation{}
	require.NoError(t, db.First(&got, fresh.ID).Error)
	require.Equal(t, ref.StatusID(model.StatusOpen), got.StatusID)
	got = model.Invitation{}
	require.NoError(t, db.First(&got, accepted.ID).Error)
	require.Equal(t, ref.StatusID(model.StatusAccepted), got.StatusID)
}

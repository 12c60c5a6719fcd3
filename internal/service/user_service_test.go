package service

import (
	"context"
	"testing"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndVerify(t *testing.T) {
	db, ref := getTestDatabase(t)
	svc := NewUserService(db, ref)

	user, err := svc.Register(context.Background(), "u1@example.com", "hunter2hunter2", "Rachel", "Remix", "AB1 2CD")
	require.NoError(t, err)
	require.NotZero(t, user.ID)
	require.NotEqual(t, "hunter2hunter2", user.Password)

	got, err := svc.VerifyLogin(context.Background(), "u1@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, user.ID, got.ID)

	_, err = svc.VerifyLogin(context.Background(), "u1@example.com", "wrong")
	require.Error(t, err)
	_, err = svc.VerifyLogin(context.Background(), "nobody@example.com", "hunter2hunter2")
	require.Error(t, err)
}

func TestUserService_RegisterValidation(t *testing.T) {
	db, ref := getTestDatabase(t)
	svc := NewUserService(db, ref)

	_, err := svc.Register(context.Background(), "", "pw", "", "", "")
	require.ErrorIs(t, err, pkg.ErrValidation)
}

func TestUserService_DeleteUserByEmailCascades(t *testing.T) {
	db, ref := getTestDatabase(t)
	userSvc := NewUserService(db, ref)
	communitySvc := NewCommunityService(db, ref, nil)

	u1 := createTestUser(t, db, "u1@example.com")
	u2 := createTestUser(t, db, "u2@example.com")

	community, err := communitySvc.CreateCommunity(context.Background(), "Garden Club", u1.ID)
	require.NoError(t, err)
	invite, err := communitySvc.CreateInvite(context.Background(), community.ID, u2.Email)
	require.NoError(t, err)
	_, err = communitySvc.ActionInvite(context.Background(), invite.ID, true, u2.ID)
	require.NoError(t, err)

	require.NoError(t, db.Create(&model.Category{Name: "Garden"}).Error)
	require.NoError(t, db.Create(&model.SubCategory{Name: "Hand saws", CategoryID: 1}).Error)
	require.NoError(t, db.Create(&model.Tool{Name: "Saw", Description: "d", SubCategoryID: 1, UserID: u2.ID}).Error)

	require.NoError(t, userSvc.DeleteUserByEmail(context.Background(), u2.Email))

	var count int64
	db.Model(&model.Tool{}).Where("user_id = ?", u2.ID).Count(&count)
	require.EqualValues(t, 0, count)
	db.Model(&model.Member{}).Where("user_id = ?", u2.ID).Count(&count)
	require.EqualValues(t, 0, count)
	db.Model(&model.Invitation{}).Where("user_email = ?", u2.Email).Count(&count)
	require.EqualValues(t, 0, count)

	communities, err := userSvc.GetCommunitiesByUserID(context.Background(), u1.ID)
	require.NoError(t, err)
	require.Len(t, communities, 1)
}

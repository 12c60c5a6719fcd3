package mysql

import (
	"context"
	"testing"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func getTestDatabase(t *testing.T) (*gorm.DB, *RefLookup) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	require.NoError(t, Migrate(db))

	ref, err := LoadRef(db)
	require.NoError(t, err)

	return db, ref
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *model.User {
	t.Helper()
	user := &model.User{
		Email:     email,
		Password:  "hash",
		FirstName: "Test",
		LastName:  "User",
		Postcode:  "AB1 2CD",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func TestCommunityRepository_Create(t *testing.T) {
	db, ref := getTestDatabase(t)
	repo := &CommunityRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")

	community, err := repo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)
	require.NotZero(t, community.ID)

	var communities int64
	db.Model(&model.Community{}).Count(&communities)
	require.EqualValues(t, 1, communities)

	var members []model.Member
	require.NoError(t, db.Where("community_id = ?", community.ID).Find(&members).Error)
	require.Len(t, members, 1)
	require.Equal(t, creator.ID, members[0].UserID)
	require.Equal(t, ref.PermissionID(model.PermissionAdmin), members[0].PermissionID)

	var outbox []model.MembershipOutbox
	require.NoError(t, db.Find(&outbox).Error)
	require.Len(t, outbox, 1)
	require.Equal(t, "community_created", outbox[0].EventType)
}

func TestCommunityRepository_Detail(t *testing.T) {
	db, ref := getTestDatabase(t)
	repo := &CommunityRepository{DB: db, Ref: ref}

	creator := createTestUser(t, db, "u1@example.com")
	community, err := repo.Create(context.Background(), "Garden Club", creator.ID)
	require.NoError(t, err)

	inviteRepo := &InvitationRepository{DB: db, Ref: ref}
	_, err = inviteRepo.Create(context.Background(), community.ID, "u2@example.com")
	require.NoError(t, err)

	detail, err := repo.Detail(context.Background(), community.ID)
	require.NoError(t, err)
	require.Len(t, detail.Members, 1)
	require.Equal(t, "u1@example.com", detail.Members[0].User.Email)
	require.Equal(t, model.PermissionAdmin, detail.Members[0].Permission.Name)
	require.Len(t, detail.Invites, 1)
	require.Equal(t, model.StatusOpen, detail.Invites[0].Status.Name)
}

func TestCommunityRepository_DetailNotFound(t *testing.T) {
	db, ref := getTestDatabase(t)
	repo := &CommunityRepository{DB: db, Ref: ref}

	_, err := repo.Detail(context.Background(), 12345)
	require.ErrorIs(t, err, pkg.ErrNotFound)
}

func TestCommunityRepository_ListByUserID(t *testing.T) {
	db, ref := getTestDatabase(t)
	repo := &CommunityRepository{DB: db, Ref: ref}

	u1 := createTestUser(t, db, "u1@example.com")
	u2 := createTestUser(t, db, "u2@example.com")

	_, err := repo.Create(context.Background(), "Garden Club", u1.ID)
	require.NoError(t, err)
	_, err = repo.Create(context.Background(), "Wood Club", u2.ID)
	require.NoError(t, err)

	mine, err := repo.ListByUserID(context.Background(), u1.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	require.Equal(t, "Garden Club", mine[0].Name)
}

func TestLoadRef_MissingPermission(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	// 只建表，不写参考数据
	require.NoError(t, db.AutoMigrate(&model.MemberPermission{}, &model.InvitationStatus{}))

	_, err = LoadRef(db)
	require.ErrorIs(t, err, pkg.ErrConfiguration)
}

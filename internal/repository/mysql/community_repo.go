package mysql

import (
	"context"
	"encoding/json"
	"time"

	"toolshare/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CommunityRepository struct {
	DB  *gorm.DB
	Ref *RefLookup
}

// Create 建社区并原子地把创建者写成 Admin 成员，同事务写 outbox
func (r *CommunityRepository) Create(ctx context.Context, name string, creatorID uint64) (*model.Community, error) {
	community := &model.Community{Name: name}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(community).Error; err != nil {
			return err
		}

		member := &model.Member{
			CommunityID:  community.ID,
			UserID:       creatorID,
			PermissionID: r.Ref.PermissionID(model.PermissionAdmin),
		}
		if err := tx.Create(member).Error; err != nil {
			return err
		}

		return insertOutbox(tx, "community_created", community.ID, creatorID)
	})
	if err != nil {
		return nil, err
	}
	return community, nil
}

func (r *CommunityRepository) FindByID(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).First(&community, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &community, nil
}

// Detail 社区详情：成员（带用户展示字段和权限）+ 邀请（带状态名）
func (r *CommunityRepository) Detail(ctx context.Context, id uint64) (*model.Community, error) {
	var community model.Community
	err := r.DB.WithContext(ctx).
		Preload("Members.User").
		Preload("Members.Permission").
		Preload("Invites.Status").
		First(&community, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &community, nil
}

// ListByUserID 用户所在的社区列表
func (r *CommunityRepository) ListByUserID(ctx context.Context, userID uint64) ([]model.Community, error) {
	var list []model.Community
	err := r.DB.WithContext(ctx).
		Joins("JOIN members ON members.community_id = communities.id").
		Where("members.user_id = ?", userID).
		Order("communities.id").
		Find(&list).Error
	return list, err
}

func (r *CommunityRepository) Permissions(ctx context.Context) ([]model.MemberPermission, error) {
	var list []model.MemberPermission
	err := r.DB.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

// addMember 幂等插入：同一 (community_id, user_id) 已存在则不报错
func addMember(tx *gorm.DB, member *model.Member) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "community_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(member).Error
}

func insertOutbox(tx *gorm.DB, event string, communityID, userID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time":   time.Now().UTC().Format(time.RFC3339Nano),
		"community_id": communityID,
		"user_id":      userID,
	})
	ob := &model.MembershipOutbox{
		EventType:   event,
		CommunityID: communityID,
		UserID:      userID,
		Payload:     string(payload),
		Status:      0,
	}
	return tx.Create(ob).Error
}

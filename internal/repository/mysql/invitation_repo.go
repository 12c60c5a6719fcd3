package mysql

import (
	"context"
	"time"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"gorm.io/gorm"
)

type InvitationRepository struct {
	DB  *gorm.DB
	Ref *RefLookup
}

func (r *InvitationRepository) Create(ctx context.Context, communityID uint64, userEmail string) (*model.Invitation, error) {
	invite := &model.Invitation{
		CommunityID:   communityID,
		UserEmail:     userEmail,
		StatusID:      r.Ref.StatusID(model.StatusOpen),
		LastUpdatedAt: time.Now(),
	}
	if err := r.DB.WithContext(ctx).Create(invite).Error; err != nil {
		return nil, err
	}
	return invite, nil
}

func (r *InvitationRepository) FindByID(ctx context.Context, id uint64) (*model.Invitation, error) {
	var invite model.Invitation
	err := r.DB.WithContext(ctx).
		Preload("Community").
		Preload("Status").
		First(&invite, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &invite, nil
}

// ListByEmail 按邮箱查邀请，带社区名，保持插入顺序
func (r *InvitationRepository) ListByEmail(ctx context.Context, userEmail string) ([]model.Invitation, error) {
	var list []model.Invitation
	err := r.DB.WithContext(ctx).
		Preload("Community").
		Preload("Status").
		Where("user_email = ?", userEmail).
		Order("id").
		Find(&list).Error
	return list, err
}

// Action 受理邀请。状态更新和成员写入在同一事务里完成。
// 只允许 Open → Accepted/Rejected；非 Open 的邀请返回 ErrInvalidStateTransition。
func (r *InvitationRepository) Action(ctx context.Context, id uint64, accepted bool, actingUserID uint64) (*model.Invitation, error) {
	open := r.Ref.StatusID(model.StatusOpen)
	target := r.Ref.StatusID(model.StatusRejected)
	if accepted {
		target = r.Ref.StatusID(model.StatusAccepted)
	}

	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invite model.Invitation
		if err := tx.First(&invite, id).Error; err != nil {
			return notFound(err)
		}

		// 带状态守卫的更新，防止并发下的重复受理
		res := tx.Model(&model.Invitation{}).
			Where("id = ? AND status_id = ?", id, open).
			Updates(map[string]any{
				"status_id":       target,
				"last_updated_at": time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return pkg.ErrInvalidStateTransition
		}

		if !accepted {
			return nil
		}

		if err := addMember(tx, &model.Member{
			CommunityID:  invite.CommunityID,
			UserID:       actingUserID,
			PermissionID: r.Ref.PermissionID(model.PermissionMember),
		}); err != nil {
			return err
		}
		return insertOutbox(tx, "invite_accepted", invite.CommunityID, actingUserID)
	})
	if err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// ExpireOpenBefore 把 cutoff 之前创建、仍为 Open 的邀请批量置为 Expired
func (r *InvitationRepository) ExpireOpenBefore(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	open := r.Ref.StatusID(model.StatusOpen)
	expired := r.Ref.StatusID(model.StatusExpired)

	var ids []uint64
	err := r.DB.WithContext(ctx).Model(&model.Invitation{}).
		Where("status_id = ? AND created_at < ?", open, cutoff).
		Order("id").
		Limit(batchSize).
		Pluck("id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}

	res := r.DB.WithContext(ctx).Model(&model.Invitation{}).
		Where("id IN ? AND status_id = ?", ids, open).
		Updates(map[string]any{
			"status_id":       expired,
			"last_updated_at": time.Now(),
		})
	return res.RowsAffected, res.Error
}

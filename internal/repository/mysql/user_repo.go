package mysql

import (
	"context"

	"toolshare/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	return r.DB.WithContext(ctx).Create(user).Error
}

func (r *UserRepository) FindByID(ctx context.Context, id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).First(&user, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.DB.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, user *model.User, newPassword string) error {
	return r.DB.WithContext(ctx).Model(user).Update("password", newPassword).Error
}

// DeleteByEmail 删除账号并级联清理名下数据
func (r *UserRepository) DeleteByEmail(ctx context.Context, email string) error {
	return r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user model.User
		if err := tx.Where("email = ?", email).First(&user).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Tool{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", user.ID).Delete(&model.Member{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_email = ?", user.Email).Delete(&model.Invitation{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
}

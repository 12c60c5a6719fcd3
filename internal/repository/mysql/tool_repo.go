package mysql

import (
	"context"

	"toolshare/internal/model"

	"gorm.io/gorm"
)

type ToolRepository struct {
	DB *gorm.DB
}

func (r *ToolRepository) Create(ctx context.Context, tool *model.Tool) error {
	return r.DB.WithContext(ctx).Create(tool).Error
}

func (r *ToolRepository) FindByID(ctx context.Context, id uint64) (*model.Tool, error) {
	var tool model.Tool
	err := r.DB.WithContext(ctx).
		Preload("SubCategory.Category").
		Preload("User").
		First(&tool, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &tool, nil
}

func (r *ToolRepository) ListByUserID(ctx context.Context, userID uint64, offset, limit int) ([]model.Tool, error) {
	var list []model.Tool
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

// ListBorrowable 可借工具：同社区其他成员名下的工具
func (r *ToolRepository) ListBorrowable(ctx context.Context, userID uint64, offset, limit int) ([]model.Tool, error) {
	var list []model.Tool
	err := r.DB.WithContext(ctx).Model(&model.Tool{}).
		Distinct("tools.*").
		Joins("JOIN members owner ON owner.user_id = tools.user_id").
		Joins("JOIN members self ON self.community_id = owner.community_id").
		Where("self.user_id = ? AND tools.user_id <> ?", userID, userID).
		Order("tools.id").
		Offset(offset).Limit(limit).
		Find(&list).Error
	return list, err
}

func (r *ToolRepository) Categories(ctx context.Context) ([]model.Category, error) {
	var list []model.Category
	err := r.DB.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

func (r *ToolRepository) SubCategories(ctx context.Context) ([]model.SubCategory, error) {
	var list []model.SubCategory
	err := r.DB.WithContext(ctx).Order("id").Find(&list).Error
	return list, err
}

package service

import (
	"context"
	"io"

	"toolshare/internal/model"
	"toolshare/internal/pkg"
	"toolshare/internal/repository/mysql"
	"toolshare/internal/storage"

	"gorm.io/gorm"
)

type ToolService struct {
	repo     *mysql.ToolRepository
	uploader *storage.Uploader
}

func NewToolService(db *gorm.DB, uploader *storage.Uploader) *ToolService {
	return &ToolService{
		repo:     &mysql.ToolRepository{DB: db},
		uploader: uploader,
	}
}

// UploadToolImage 上传在前，建档在后。上传失败则整个创建中止。
func (s *ToolService) UploadToolImage(ctx context.Context, stream io.Reader, filename, mimetype string, userID uint64) (string, error) {
	return s.uploader.UploadToolImage(ctx, stream, filename, mimetype, userID)
}

func (s *ToolService) CreateTool(ctx context.Context, name, description string, subCategoryID, userID uint64, imageURL string) (*model.Tool, error) {
	if name == "" {
		return nil, pkg.FieldError("name", "required")
	}
	if description == "" {
		return nil, pkg.FieldError("description", "required")
	}
	if subCategoryID == 0 {
		return nil, pkg.FieldError("subCategory", "required")
	}

	tool := &model.Tool{
		Name:          name,
		Description:   description,
		SubCategoryID: subCategoryID,
		UserID:        userID,
		ImageURL:      imageURL,
	}
	if err := s.repo.Create(ctx, tool); err != nil {
		return nil, err
	}
	return tool, nil
}

func (s *ToolService) GetTool(ctx context.Context, id uint64) (*model.Tool, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *ToolService) GetUsersTools(ctx context.Context, userID uint64, page, size int) ([]model.Tool, error) {
	offset, limit := pageWindow(page, size)
	return s.repo.ListByUserID(ctx, userID, offset, limit)
}

func (s *ToolService) GetAllBorrowableTools(ctx context.Context, userID uint64, page, size int) ([]model.Tool, error) {
	offset, limit := pageWindow(page, size)
	return s.repo.ListBorrowable(ctx, userID, offset, limit)
}

func (s *ToolService) GetCategories(ctx context.Context) ([]model.Category, error) {
	return s.repo.Categories(ctx)
}

func (s *ToolService) GetSubCategories(ctx context.Context) ([]model.SubCategory, error) {
	return s.repo.SubCategories(ctx)
}

// pageWindow 默认第 1 页每页 20，上限 50
func pageWindow(page, size int) (offset, limit int) {
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 20
	}
	return (page - 1) * size, size
}

package service

import (
	"context"
	"testing"

	"toolshare/internal/model"
	"toolshare/internal/pkg"

	"github.com/stretchr/testify/require"
)

func TestToolService_CreateToolValidation(t *testing.T) {
	db, _ := getTestDatabase(t)
	svc := NewToolService(db, nil)

	_, err := svc.CreateTool(context.Background(), "", "desc", 1, 1, "")
	require.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.CreateTool(context.Background(), "saw", "", 1, 1, "")
	require.ErrorIs(t, err, pkg.ErrValidation)

	_, err = svc.CreateTool(context.Background(), "saw", "desc", 0, 1, "")
	require.ErrorIs(t, err, pkg.ErrValidation)
}

func TestToolService_CreateToolRoundTrip(t *testing.T) {
	db, _ := getTestDatabase(t)
	svc := NewToolService(db, nil)

	owner := createTestUser(t, db, "u1@example.com")
	cat := &model.Category{Name: "Garden"}
	require.NoError(t, db.Create(cat).Error)
	sub := &model.SubCategory{Name: "Hand saws", CategoryID: cat.ID}
	require.NoError(t, db.Create(sub).Error)

	const url = "https://images.s3.amazonaws.com/toolImages/1_k_saw.png"
	tool, err := svc.CreateTool(context.Background(), "Bow saw", "Sharp", sub.ID, owner.ID, url)
	require.NoError(t, err)

	got, err := svc.GetTool(context.Background(), tool.ID)
	require.NoError(t, err)
	require.Equal(t, url, got.ImageURL)

	// 无图创建同样合法
	plain, err := svc.CreateTool(context.Background(), "Spade", "Rusty", sub.ID, owner.ID, "")
	require.NoError(t, err)
	got, err = svc.GetTool(context.Background(), plain.ID)
	require.NoError(t, err)
	require.Empty(t, got.ImageURL)
}

func TestPageWindow(t *testing.T) {
	offset, limit := pageWindow(0, 0)
	require.Equal(t, 0, offset)
	require.Equal(t, 20, limit)

	offset, limit = pageWindow(3, 10)
	require.Equal(t, 20, offset)
	require.Equal(t, 10, limit)

	_, limit = pageWindow(1, 500)
	require.Equal(t, 20, limit)
}

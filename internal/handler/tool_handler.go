package handler

import (
	"net/http"
	"strconv"

	"toolshare/internal/service"

	"github.com/gin-gonic/gin"
)

type ToolHandler struct {
	svc *service.ToolService
}

func NewToolHandler(svc *service.ToolService) *ToolHandler {
	return &ToolHandler{svc: svc}
}

// Create multipart 表单：name、description、subCategory，可选 image 文件
func (h *ToolHandler) Create(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	subCategoryID, _ := strconv.ParseUint(c.PostForm("subCategory"), 10, 64)
	uid := userID(c)

	imageURL := ""
	file, header, err := c.Request.FormFile("image")
	if err == nil && header != nil {
		defer file.Close()
		imageURL, err = h.svc.UploadToolImage(c.Request.Context(), file, header.Filename, header.Header.Get("Content-Type"), uid)
		if err != nil {
			fail(c, err)
			return
		}
	}

	tool, err := h.svc.CreateTool(c.Request.Context(), name, description, subCategoryID, uid, imageURL)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": tool.ID, "name": tool.Name, "image_url": tool.ImageURL})
}

func (h *ToolHandler) Detail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid tool id"})
		return
	}

	tool, err := h.svc.GetTool(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           tool.ID,
		"name":         tool.Name,
		"description":  tool.Description,
		"image_url":    tool.ImageURL,
		"sub_category": tool.SubCategory.Name,
		"category":     tool.SubCategory.Category.Name,
		"owner":        tool.User.FirstName + " " + tool.User.LastName,
	})
}

func (h *ToolHandler) Mine(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.GetUsersTools(c.Request.Context(), userID(c), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

// Borrowable 同社区其他成员的工具
func (h *ToolHandler) Borrowable(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.Query("size"))

	list, err := h.svc.GetAllBorrowableTools(c.Request.Context(), userID(c), page, size)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ToolHandler) Categories(c *gin.Context) {
	list, err := h.svc.GetCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

func (h *ToolHandler) SubCategories(c *gin.Context) {
	list, err := h.svc.GetSubCategories(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"list": list})
}

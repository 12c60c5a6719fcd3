package handler

import (
	"errors"
	"net/http"

	"toolshare/internal/pkg"

	"github.com/gin-gonic/gin"
)

// fail 按错误类别映射状态码
func fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, pkg.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, pkg.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, pkg.ErrForbidden):
		status = http.StatusForbidden
	case errors.Is(err, pkg.ErrInvalidStateTransition):
		status = http.StatusConflict
	case errors.Is(err, pkg.ErrImageUpload):
		status = http.StatusBadGateway
	}
	c.JSON(status, gin.H{"msg": err.Error()})
}

func userID(c *gin.Context) uint64 {
	v, _ := c.Get("user_id")
	id, _ := v.(uint64)
	return id
}

func userEmail(c *gin.Context) string {
	v, _ := c.Get("user_email")
	email, _ := v.(string)
	return email
}

package pkg

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound               = errors.New("not found")
	ErrValidation             = errors.New("validation failed")
	ErrConfiguration          = errors.New("configuration error")
	ErrImageUpload            = errors.New("image upload error")
	ErrInvalidStateTransition = errors.New("invalid state transition")
	ErrForbidden              = errors.New("forbidden")
)

// FieldError 带字段名的校验错误，便于前端按字段提示
func FieldError(field, msg string) error {
	return fmt.Errorf("%w: %s: %s", ErrValidation, field, msg)
}

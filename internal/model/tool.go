package model

import "time"

type Tool struct {
	ID            uint64 `gorm:"primaryKey"`
	Name          string `gorm:"size:64;not null"`
	Description   string `gorm:"type:text;not null"`
	SubCategoryID uint64 `gorm:"not null;index"`
	UserID        uint64 `gorm:"not null;index"`
	ImageURL      string `gorm:"size:512"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	SubCategory SubCategory `gorm:"foreignKey:SubCategoryID"`
	User        User        `gorm:"foreignKey:UserID"`
}

package model

import "time"

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Email     string `gorm:"uniqueIndex;size:64;not null"`
	Password  string `gorm:"size:255;not null"`
	FirstName string `gorm:"size:32;not null"`
	LastName  string `gorm:"size:32;not null"`
	Postcode  string `gorm:"size:16;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

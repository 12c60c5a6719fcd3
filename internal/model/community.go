package model

import "time"

type Community struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"size:64;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Members []Member     `gorm:"foreignKey:CommunityID"`
	Invites []Invitation `gorm:"foreignKey:CommunityID"`
}

type Member struct {
	ID           uint64 `gorm:"primaryKey"`
	CommunityID  uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	UserID       uint64 `gorm:"not null;index;uniqueIndex:uk_community_user"`
	PermissionID uint64 `gorm:"not null"`
	CreatedAt    time.Time

	User       User             `gorm:"foreignKey:UserID"`
	Permission MemberPermission `gorm:"foreignKey:PermissionID"`
}

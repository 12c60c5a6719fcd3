package model

import "time"

type Invitation struct {
	ID            uint64 `gorm:"primaryKey"`
	CommunityID   uint64 `gorm:"not null;index"`
	UserEmail     string `gorm:"size:64;not null;index"`
	StatusID      uint64 `gorm:"not null;index"`
	CreatedAt     time.Time
	LastUpdatedAt time.Time

	Community Community        `gorm:"foreignKey:CommunityID"`
	Status    InvitationStatus `gorm:"foreignKey:StatusID"`
}

// MembershipOutbox 成员事件表
type MembershipOutbox struct {
	ID          uint64 `gorm:"primaryKey"`
	EventType   string `gorm:"size:32;not null"` // community_created / invite_accepted
	CommunityID uint64 `gorm:"not null"`
	UserID      uint64 `gorm:"not null"`
	Payload     string `gorm:"type:json;not null"`
	Status      int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry       int    `gorm:"not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (MembershipOutbox) TableName() string { return "membership_outbox" }

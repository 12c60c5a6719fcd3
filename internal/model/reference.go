package model

// 静态参考数据，启动时写入并解析一次

type MemberPermission struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:32;not null"`
}

type InvitationStatus struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:32;not null"`
}

type Category struct {
	ID   uint64 `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex;size:64;not null"`
}

type SubCategory struct {
	ID         uint64 `gorm:"primaryKey"`
	Name       string `gorm:"size:64;not null"`
	CategoryID uint64 `gorm:"not null;index"`

	Category Category `gorm:"foreignKey:CategoryID"`
}

const (
	PermissionAdmin  = "Admin"
	PermissionMember = "Member"

	StatusOpen     = "Open"
	StatusAccepted = "Accepted"
	StatusRejected = "Rejected"
	StatusExpired  = "Expired"
)

package models

import "time"

// Role partitions accounts for sign-in purposes.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User represents an application account.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Account      string `gorm:"size:50;uniqueIndex;not null"`
	Email        string `gorm:"size:255;uniqueIndex;not null"`
	Password     string `gorm:"size:255;not null"` // bcrypt hash
	Name         string `gorm:"size:50"`
	Avatar       string `gorm:"size:255"`
	Cover        string `gorm:"size:255"`
	Introduction string `gorm:"size:160"`
	Role         Role   `gorm:"size:16;index;not null;default:user"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	// 关注关系由 Store 显式批量查询填充，不交给 gorm 自动关联
	Followers  []User `gorm:"-"`
	Followings []User `gorm:"-"`
}

// IsFollowedBy reports whether userID is among u.Followers.
// Followers must have been loaded.
func (u *User) IsFollowedBy(userID uint) bool {
	for _, f := range u.Followers {
		if f.ID == userID {
			return true
		}
	}
	return false
}

package models

import "time"

// Tweet is a post owned by its author.
type Tweet struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:140;not null"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time

	User    User    `gorm:"constraint:OnDelete:CASCADE"`
	Replies []Reply `gorm:"constraint:OnDelete:CASCADE"`
	Likes   []Like  `gorm:"constraint:OnDelete:CASCADE"`
}

// LikedBy reports whether userID is among the accounts that liked t.
// Likes must have been loaded.
func (t *Tweet) LikedBy(userID uint) bool {
	for _, l := range t.Likes {
		if l.UserID == userID {
			return true
		}
	}
	return false
}

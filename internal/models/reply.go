package models

import "time"

// Reply is a comment by an account on a tweet.
type Reply struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"index;not null"`
	TweetID   uint      `gorm:"index;not null"`
	Comment   string    `gorm:"size:140;not null"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time

	User  User  `gorm:"constraint:OnDelete:CASCADE"`
	Tweet Tweet `gorm:"constraint:OnDelete:CASCADE"`
}

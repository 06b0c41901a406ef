package models

import "time"

// Like marks that an account liked a tweet. At most one per pair.
type Like struct {
	ID        uint `gorm:"primaryKey"`
	UserID    uint `gorm:"not null;uniqueIndex:idx_like_user_tweet"`
	TweetID   uint `gorm:"not null;index;uniqueIndex:idx_like_user_tweet"`
	CreatedAt time.Time
}

package models

import "time"

// Followship is a directed follow edge: FollowerID follows FollowingID.
type Followship struct {
	ID          uint `gorm:"primaryKey"`
	FollowerID  uint `gorm:"not null;uniqueIndex:idx_follower_following"`
	FollowingID uint `gorm:"not null;index;uniqueIndex:idx_follower_following;check:chk_followship_no_self,follower_id <> following_id"`
	CreatedAt   time.Time
}

package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yy933/twitter-api-2020/internal/models"

	"gorm.io/gorm"
)

// PasswordHasher produces the stored digest for a plaintext password.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

const (
	seedPassword   = "12345678"
	seedUsers      = 5
	seedTweetsEach = 3
)

// ErrAlreadySeeded is returned by Seed when the root admin already exists.
var ErrAlreadySeeded = errors.New("database already seeded")

// Seed inserts a root admin and a small graph of users, tweets, replies,
// likes and follow edges. Every seeded account uses the password "12345678".
func Seed(ctx context.Context, db *gorm.DB, hasher PasswordHasher) error {
	var count int64
	if err := db.WithContext(ctx).Model(&models.User{}).
		Where("account = ?", "root").
		Count(&count).Error; err != nil {
		return fmt.Errorf("check seed: %w", err)
	}
	if count > 0 {
		return ErrAlreadySeeded
	}

	hash, err := hasher.Hash(seedPassword)
	if err != nil {
		return fmt.Errorf("hash seed password: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		root := models.User{
			Account:  "root",
			Email:    "root@example.com",
			Password: hash,
			Name:     "root",
			Role:     models.RoleAdmin,
		}
		if err := tx.Create(&root).Error; err != nil {
			return fmt.Errorf("create root: %w", err)
		}

		users := make([]models.User, seedUsers)
		for i := range users {
			n := i + 1
			users[i] = models.User{
				Account:  fmt.Sprintf("user%d", n),
				Email:    fmt.Sprintf("user%d@example.com", n),
				Password: hash,
				Name:     fmt.Sprintf("user%d", n),
				Role:     models.RoleUser,
			}
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		base := time.Now().Add(-time.Duration(seedUsers*seedTweetsEach) * time.Hour)
		var tweets []models.Tweet
		for i, u := range users {
			for j := 0; j < seedTweetsEach; j++ {
				tweets = append(tweets, models.Tweet{
					UserID:      u.ID,
					Description: fmt.Sprintf("tweet %d from %s", j+1, u.Account),
					CreatedAt:   base.Add(time.Duration(i*seedTweetsEach+j) * time.Hour),
				})
			}
		}
		if err := tx.Create(&tweets).Error; err != nil {
			return fmt.Errorf("create tweets: %w", err)
		}

		// 每则推文由下一位使用者回复、按赞
		var (
			replies []models.Reply
			likes   []models.Like
		)
		for i, t := range tweets {
			other := users[(i/seedTweetsEach+1)%seedUsers]
			replies = append(replies, models.Reply{
				UserID:  other.ID,
				TweetID: t.ID,
				Comment: fmt.Sprintf("reply from %s", other.Account),
			})
			likes = append(likes, models.Like{UserID: other.ID, TweetID: t.ID})
		}
		if err := tx.Create(&replies).Error; err != nil {
			return fmt.Errorf("create replies: %w", err)
		}
		if err := tx.Create(&likes).Error; err != nil {
			return fmt.Errorf("create likes: %w", err)
		}

		// 环状关注：user1 -> user2 -> ... -> user5 -> user1
		edges := make([]models.Followship, 0, seedUsers)
		for i, u := range users {
			edges = append(edges, models.Followship{
				FollowerID:  u.ID,
				FollowingID: users[(i+1)%seedUsers].ID,
			})
		}
		if err := tx.Create(&edges).Error; err != nil {
			return fmt.Errorf("create followships: %w", err)
		}
		return nil
	})
}

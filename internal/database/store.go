package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"

	"gorm.io/gorm"
)

// Store implements storage.Store on gorm.
type Store struct {
	db *gorm.DB
}

// NewStore wraps db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

var _ storage.Store = (*Store)(nil)

// ---------- 帐号 ----------

func (s *Store) FindAccountByHandleAndRole(ctx context.Context, handle string, role models.Role) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("account = ? AND role = ?", handle, role).
		Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account %q: %w", handle, err)
	}
	return &user, nil
}

func (s *Store) FindAccountByID(ctx context.Context, id uint, withEdges bool) (*models.User, error) {
	db := s.db.WithContext(ctx)

	var user models.User
	err := db.Take(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find account %d: %w", id, err)
	}
	if !withEdges {
		return &user, nil
	}

	// 粉丝：followships.following_id = id
	if err := db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN followships ON followships.follower_id = users.id").
		Where("followships.following_id = ?", id).
		Order("followships.created_at DESC").
		Find(&user.Followers).Error; err != nil {
		return nil, fmt.Errorf("load followers of %d: %w", id, err)
	}
	// 关注中：followships.follower_id = id
	if err := db.Model(&models.User{}).
		Select("users.*").
		Joins("JOIN followships ON followships.following_id = users.id").
		Where("followships.follower_id = ?", id).
		Order("followships.created_at DESC").
		Find(&user.Followings).Error; err != nil {
		return nil, fmt.Errorf("load followings of %d: %w", id, err)
	}
	return &user, nil
}

func (s *Store) AccountHandleTaken(ctx context.Context, handle string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("account = ?", handle).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count account %q: %w", handle, err)
	}
	return count > 0, nil
}

func (s *Store) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("count email: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CreateAccount(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("create account: %w", err)
	}
	return nil
}

// ---------- 关注关系 ----------

func (s *Store) FindEdge(ctx context.Context, followerID, followingID uint) (*models.Followship, error) {
	var edge models.Followship
	err := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Take(&edge).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find followship %d->%d: %w", followerID, followingID, err)
	}
	return &edge, nil
}

func (s *Store) CreateEdge(ctx context.Context, followerID, followingID uint) error {
	edge := models.Followship{FollowerID: followerID, FollowingID: followingID}
	if err := s.db.WithContext(ctx).Create(&edge).Error; err != nil {
		// 并发重复关注由唯一索引兜底
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("create followship %d->%d: %w", followerID, followingID, err)
	}
	return nil
}

func (s *Store) DeleteEdge(ctx context.Context, followerID, followingID uint) error {
	res := s.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Followship{})
	if res.Error != nil {
		return fmt.Errorf("delete followship %d->%d: %w", followerID, followingID, res.Error)
	}
	if res.RowsAffected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// ---------- 推文 / 回复 ----------

func (s *Store) ListTweetsByAuthor(ctx context.Context, authorID uint) ([]models.Tweet, error) {
	var tweets []models.Tweet
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Preload("User").
		Preload("Replies").
		Preload("Likes").
		Find(&tweets).Error; err != nil {
		return nil, fmt.Errorf("list tweets of %d: %w", authorID, err)
	}
	return tweets, nil
}

func (s *Store) ListRepliesByAuthor(ctx context.Context, authorID uint) ([]models.Reply, error) {
	var replies []models.Reply
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", authorID).
		Order("created_at DESC, id DESC").
		Preload("User").
		Preload("Tweet.User").
		Find(&replies).Error; err != nil {
		return nil, fmt.Errorf("list replies of %d: %w", authorID, err)
	}
	return replies, nil
}

func (s *Store) CountTweetsByAuthor(ctx context.Context, authorID uint) (int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Tweet{}).
		Where("user_id = ?", authorID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count tweets of %d: %w", authorID, err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") ||
		strings.Contains(msg, "duplicate key")
}

package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/yy933/twitter-api-2020/internal/config"
	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// setupTestDB 初始化测试数据库
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := Init(config.DatabaseConfig{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createTestUser(t *testing.T, s *Store, account string, role models.Role) *models.User {
	t.Helper()
	u := &models.User{
		Account:  account,
		Email:    account + "@example.com",
		Password: "hash",
		Name:     account,
		Role:     role,
	}
	require.NoError(t, s.CreateAccount(context.Background(), u))
	return u
}

func TestStoreAccountLookups(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()
	alice := createTestUser(t, s, "alice", models.RoleUser)
	createTestUser(t, s, "root", models.RoleAdmin)

	got, err := s.FindAccountByHandleAndRole(ctx, "alice", models.RoleUser)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, alice.ID, got.ID)

	// 角色分区：同一帐号在另一个角色下查不到
	got, err = s.FindAccountByHandleAndRole(ctx, "alice", models.RoleAdmin)
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = s.FindAccountByID(ctx, 9999, false)
	require.NoError(t, err)
	assert.Nil(t, got)

	taken, err := s.AccountHandleTaken(ctx, "alice")
	require.NoError(t, err)
	assert.True(t, taken)
	taken, err = s.EmailTaken(ctx, "nobody@example.com")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestStoreCreateAccountConflict(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()
	createTestUser(t, s, "alice", models.RoleUser)

	dupAccount := &models.User{Account: "alice", Email: "x@example.com", Password: "hash", Role: models.RoleUser}
	assert.ErrorIs(t, s.CreateAccount(ctx, dupAccount), storage.ErrConflict)

	dupEmail := &models.User{Account: "alice2", Email: "alice@example.com", Password: "hash", Role: models.RoleUser}
	assert.ErrorIs(t, s.CreateAccount(ctx, dupEmail), storage.ErrConflict)
}

func TestStoreEdges(t *testing.T) {
	s := NewStore(setupTestDB(t))
	ctx := context.Background()
	alice := createTestUser(t, s, "alice", models.RoleUser)
	bob := createTestUser(t, s, "bob", models.RoleUser)
	carol := createTestUser(t, s, "carol", models.RoleUser)

	require.NoError(t, s.CreateEdge(ctx, alice.ID, bob.ID))
	require.NoError(t, s.CreateEdge(ctx, carol.ID, bob.ID))
	require.NoError(t, s.CreateEdge(ctx, bob.ID, alice.ID))

	// 唯一索引拦住重复边
	assert.ErrorIs(t, s.CreateEdge(ctx, alice.ID, bob.ID), storage.ErrConflict)
	// check 约束拦住自环
	assert.Error(t, s.CreateEdge(ctx, alice.ID, alice.ID))

	edge, err := s.FindEdge(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.NotNil(t, edge)
	edge, err = s.FindEdge(ctx, bob.ID, carol.ID)
	require.NoError(t, err)
	assert.Nil(t, edge)

	got, err := s.FindAccountByID(ctx, bob.ID, true)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.ElementsMatch(t, []uint{alice.ID, carol.ID}, ids(got.Followers))
	assert.ElementsMatch(t, []uint{alice.ID}, ids(got.Followings))

	require.NoError(t, s.DeleteEdge(ctx, alice.ID, bob.ID))
	assert.ErrorIs(t, s.DeleteEdge(ctx, alice.ID, bob.ID), storage.ErrNotFound)

	got, err = s.FindAccountByID(ctx, bob.ID, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{carol.ID}, ids(got.Followers))
}

func TestStoreContent(t *testing.T) {
	db := setupTestDB(t)
	s := NewStore(db)
	ctx := context.Background()
	alice := createTestUser(t, s, "alice", models.RoleUser)
	bob := createTestUser(t, s, "bob", models.RoleUser)

	now := time.Now()
	older := models.Tweet{UserID: alice.ID, Description: "older", CreatedAt: now.Add(-time.Hour)}
	newer := models.Tweet{UserID: alice.ID, Description: "newer", CreatedAt: now}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&models.Reply{UserID: bob.ID, TweetID: newer.ID, Comment: "hi"}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: bob.ID, TweetID: newer.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: alice.ID, TweetID: newer.ID}).Error)

	// 同一人重复按赞被唯一索引拦住
	err := db.Create(&models.Like{UserID: bob.ID, TweetID: newer.ID}).Error
	assert.True(t, errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err))

	tweets, err := s.ListTweetsByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tweets, 2)
	assert.Equal(t, "newer", tweets[0].Description)
	assert.Equal(t, "alice", tweets[0].User.Account)
	assert.Len(t, tweets[0].Replies, 1)
	assert.Len(t, tweets[0].Likes, 2)
	assert.Empty(t, tweets[1].Likes)

	replies, err := s.ListRepliesByAuthor(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, "bob", replies[0].User.Account)
	assert.Equal(t, "newer", replies[0].Tweet.Description)
	assert.Equal(t, "alice", replies[0].Tweet.User.Account)

	count, err := s.CountTweetsByAuthor(ctx, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	empty, err := s.ListTweetsByAuthor(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

type plainHasher struct{}

func (plainHasher) Hash(plain string) (string, error) { return "hashed:" + plain, nil }

func TestSeed(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, Seed(ctx, db, plainHasher{}))
	assert.ErrorIs(t, Seed(ctx, db, plainHasher{}), ErrAlreadySeeded)

	var admins, users, tweets, edges int64
	db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&admins)
	db.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&users)
	db.Model(&models.Tweet{}).Count(&tweets)
	db.Model(&models.Followship{}).Count(&edges)
	assert.Equal(t, int64(1), admins)
	assert.Equal(t, int64(seedUsers), users)
	assert.Equal(t, int64(seedUsers*seedTweetsEach), tweets)
	assert.Equal(t, int64(seedUsers), edges)
}

func TestIsUniqueViolation(t *testing.T) {
	assert.False(t, isUniqueViolation(nil))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(errors.New("UNIQUE constraint failed: followships.follower_id")))
	assert.True(t, isUniqueViolation(errors.New(`ERROR: duplicate key value violates unique constraint "idx_follower_following"`)))
	assert.False(t, isUniqueViolation(errors.New("FOREIGN KEY constraint failed")))
}

func TestInitRejectsUnknownDriver(t *testing.T) {
	_, err := Init(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
	_, err = Init(config.DatabaseConfig{Driver: "postgres"})
	assert.Error(t, err)
}

func ids(users []models.User) []uint {
	out := make([]uint, 0, len(users))
	for _, u := range users {
		out = append(out, u.ID)
	}
	return out
}

// Package storage defines the persistence contract consumed by the service layer.
//
// Reads report absence as a nil result (or empty slice), never as an error.
// Writes report uniqueness violations as ErrConflict and deletes of missing
// rows as ErrNotFound so callers can classify concurrent duplicate mutations.
package storage

import (
	"context"
	"errors"

	"github.com/yy933/twitter-api-2020/internal/models"
)

// ErrNotFound indicates a write targeted a row that does not exist.
var ErrNotFound = errors.New("record not found")

// ErrConflict indicates a uniqueness-constrained record already exists.
var ErrConflict = errors.New("record already exists")

// AccountStore persists accounts.
type AccountStore interface {
	FindAccountByHandleAndRole(ctx context.Context, handle string, role models.Role) (*models.User, error)
	// FindAccountByID loads an account; withEdges also fills Followers and Followings.
	FindAccountByID(ctx context.Context, id uint, withEdges bool) (*models.User, error)
	AccountHandleTaken(ctx context.Context, handle string) (bool, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	CreateAccount(ctx context.Context, user *models.User) error
}

// EdgeStore persists directed follow edges.
type EdgeStore interface {
	FindEdge(ctx context.Context, followerID, followingID uint) (*models.Followship, error)
	CreateEdge(ctx context.Context, followerID, followingID uint) error
	DeleteEdge(ctx context.Context, followerID, followingID uint) error
}

// ContentStore reads tweets and replies with their nested relations
// batch-loaded, so projections never query per row.
type ContentStore interface {
	// ListTweetsByAuthor returns tweets newest first with User, Replies and Likes loaded.
	ListTweetsByAuthor(ctx context.Context, authorID uint) ([]models.Tweet, error)
	// ListRepliesByAuthor returns replies newest first with User and Tweet.User loaded.
	ListRepliesByAuthor(ctx context.Context, authorID uint) ([]models.Reply, error)
	CountTweetsByAuthor(ctx context.Context, authorID uint) (int64, error)
}

// Store is the full adapter the service layer runs against.
type Store interface {
	AccountStore
	EdgeStore
	ContentStore
}

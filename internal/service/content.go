package service

import (
	"context"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"

	"golang.org/x/sync/errgroup"
)

// Content loads rows from the store and projects them for a viewer.
type Content struct {
	store storage.Store
	proj  *Projector
}

func NewContent(store storage.Store, proj *Projector) *Content {
	return &Content{store: store, proj: proj}
}

// UserTweets returns the owner's tweets, newest first. Only the owner may
// read them, and an empty list is NotFound.
func (c *Content) UserTweets(ctx context.Context, ownerID, viewerID uint) ([]TweetView, error) {
	if err := RequireSelf(ownerID, viewerID); err != nil {
		return nil, err
	}
	tweets, err := c.store.ListTweetsByAuthor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(tweets) == 0 {
		return nil, newError(KindNotFound, "查無推文！")
	}
	return c.proj.ProjectTweets(tweets, viewerID), nil
}

// UserReplies returns the owner's replies, newest first, under the same
// rules as UserTweets.
func (c *Content) UserReplies(ctx context.Context, ownerID, viewerID uint) ([]ReplyView, error) {
	if err := RequireSelf(ownerID, viewerID); err != nil {
		return nil, err
	}
	replies, err := c.store.ListRepliesByAuthor(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if len(replies) == 0 {
		return nil, newError(KindNotFound, "查無回覆！")
	}
	return c.proj.ProjectReplies(replies), nil
}

// Profile returns the public profile of userID with live counts.
func (c *Content) Profile(ctx context.Context, userID, viewerID uint) (*ProfileView, error) {
	var (
		user       *models.User
		tweetCount int64
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		user, err = c.store.FindAccountByID(gctx, userID, true)
		return err
	})
	g.Go(func() error {
		var err error
		tweetCount, err = c.store.CountTweetsByAuthor(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return c.proj.ProjectProfile(user, tweetCount, viewerID)
}

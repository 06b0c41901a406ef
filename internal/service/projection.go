package service

import (
	"time"

	"github.com/yy933/twitter-api-2020/internal/models"
)

// Defaults are substituted whenever the stored value is empty.
type Defaults struct {
	Avatar       string
	Cover        string
	Introduction string
}

// TweetView is a tweet enriched for one viewer.
type TweetView struct {
	ID           uint      `json:"id"`
	AuthorID     uint      `json:"authorId"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"createdAt"`
	Avatar       string    `json:"avatar"`
	Name         string    `json:"name"`
	Account      string    `json:"account"`
	RepliedCount int       `json:"repliedCount"`
	LikedCount   int       `json:"likedCount"`
	IsLiked      bool      `json:"isLiked"`
}

// ReplyView is a reply with its author and parent tweet flattened in.
type ReplyView struct {
	ID                 uint      `json:"id"`
	AuthorID           uint      `json:"authorId"`
	Comment            string    `json:"comment"`
	CreatedAt          time.Time `json:"createdAt"`
	Avatar             string    `json:"avatar"`
	Name               string    `json:"name"`
	Account            string    `json:"account"`
	TweetID            uint      `json:"tweetId"`
	TweetDescription   string    `json:"tweetDescription"`
	TweetCreatedAt     time.Time `json:"tweetCreatedAt"`
	TweetAuthorID      uint      `json:"tweetAuthorId"`
	TweetAuthorAccount string    `json:"tweetAuthorAccount"`
}

// ProfileView is the public profile of an account as seen by a viewer.
type ProfileView struct {
	ID             uint   `json:"id"`
	Account        string `json:"account"`
	Name           string `json:"name"`
	Avatar         string `json:"avatar"`
	Cover          string `json:"cover"`
	Introduction   string `json:"introduction"`
	TweetCount     int64  `json:"tweetCount"`
	FollowingCount int    `json:"followingCount"`
	FollowerCount  int    `json:"followerCount"`
	IsFollowing    bool   `json:"isFollowing"`
}

// Projector turns fully loaded rows into views. It never queries.
type Projector struct {
	defaults Defaults
}

func NewProjector(d Defaults) *Projector {
	return &Projector{defaults: d}
}

func (p *Projector) avatar(v string) string {
	if v == "" {
		return p.defaults.Avatar
	}
	return v
}

// ProjectTweets preserves the input order. Each tweet must have User,
// Replies and Likes loaded.
func (p *Projector) ProjectTweets(tweets []models.Tweet, viewerID uint) []TweetView {
	out := make([]TweetView, 0, len(tweets))
	for i := range tweets {
		t := &tweets[i]
		out = append(out, TweetView{
			ID:           t.ID,
			AuthorID:     t.UserID,
			Description:  t.Description,
			CreatedAt:    t.CreatedAt,
			Avatar:       p.avatar(t.User.Avatar),
			Name:         t.User.Name,
			Account:      t.User.Account,
			RepliedCount: len(t.Replies),
			LikedCount:   len(t.Likes),
			IsLiked:      t.LikedBy(viewerID),
		})
	}
	return out
}

// ProjectReplies preserves the input order. Each reply must have User and
// Tweet.User loaded.
func (p *Projector) ProjectReplies(replies []models.Reply) []ReplyView {
	out := make([]ReplyView, 0, len(replies))
	for i := range replies {
		r := &replies[i]
		out = append(out, ReplyView{
			ID:                 r.ID,
			AuthorID:           r.UserID,
			Comment:            r.Comment,
			CreatedAt:          r.CreatedAt,
			Avatar:             p.avatar(r.User.Avatar),
			Name:               r.User.Name,
			Account:            r.User.Account,
			TweetID:            r.TweetID,
			TweetDescription:   r.Tweet.Description,
			TweetCreatedAt:     r.Tweet.CreatedAt,
			TweetAuthorID:      r.Tweet.UserID,
			TweetAuthorAccount: r.Tweet.User.Account,
		})
	}
	return out
}

// ProjectProfile fails with NotFound for a missing or admin account, so the
// two cases look the same to callers. user must have its edges loaded.
func (p *Projector) ProjectProfile(user *models.User, tweetCount int64, viewerID uint) (*ProfileView, error) {
	if err := requireVisible(user); err != nil {
		return nil, err
	}

	cover := user.Cover
	if cover == "" {
		cover = p.defaults.Cover
	}
	intro := user.Introduction
	if intro == "" {
		intro = p.defaults.Introduction
	}
	return &ProfileView{
		ID:             user.ID,
		Account:        user.Account,
		Name:           user.Name,
		Avatar:         p.avatar(user.Avatar),
		Cover:          cover,
		Introduction:   intro,
		TweetCount:     tweetCount,
		FollowingCount: len(user.Followings),
		FollowerCount:  len(user.Followers),
		IsFollowing:    user.IsFollowedBy(viewerID),
	}, nil
}

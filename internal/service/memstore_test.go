package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"
)

type edgeKey struct{ follower, following uint }

// memStore is an in-memory storage.Store. Uniqueness is enforced under mu
// the way a database unique index would.
type memStore struct {
	mu      sync.Mutex
	nextID  uint
	users   map[uint]models.User
	edges   map[edgeKey]time.Time
	tweets  []models.Tweet
	replies []models.Reply
	likes   []models.Like
}

func newMemStore() *memStore {
	return &memStore{
		users: map[uint]models.User{},
		edges: map[edgeKey]time.Time{},
	}
}

var _ storage.Store = (*memStore)(nil)

func (s *memStore) id() uint {
	s.nextID++
	return s.nextID
}

func (s *memStore) FindAccountByHandleAndRole(_ context.Context, handle string, role models.Role) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Account == handle && u.Role == role {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (s *memStore) FindAccountByID(_ context.Context, id uint, withEdges bool) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	if withEdges {
		u.Followers, u.Followings = nil, nil
		for k := range s.edges {
			if k.following == id {
				u.Followers = append(u.Followers, s.users[k.follower])
			}
			if k.follower == id {
				u.Followings = append(u.Followings, s.users[k.following])
			}
		}
	}
	return &u, nil
}

func (s *memStore) AccountHandleTaken(_ context.Context, handle string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Account == handle {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) EmailTaken(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) CreateAccount(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Account == user.Account || u.Email == user.Email {
			return storage.ErrConflict
		}
	}
	user.ID = s.id()
	user.CreatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

// updateUser replaces the stored row, keeping the password.
func (s *memStore) updateUser(u models.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u.Password = s.users[u.ID].Password
	s.users[u.ID] = u
}

func (s *memStore) deleteUser(id uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.users, id)
}

func (s *memStore) FindEdge(_ context.Context, followerID, followingID uint) (*models.Followship, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.edges[edgeKey{followerID, followingID}]
	if !ok {
		return nil, nil
	}
	return &models.Followship{FollowerID: followerID, FollowingID: followingID, CreatedAt: at}, nil
}

func (s *memStore) CreateEdge(_ context.Context, followerID, followingID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := edgeKey{followerID, followingID}
	if _, ok := s.edges[k]; ok {
		return storage.ErrConflict
	}
	s.edges[k] = time.Now()
	return nil
}

func (s *memStore) DeleteEdge(_ context.Context, followerID, followingID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := edgeKey{followerID, followingID}
	if _, ok := s.edges[k]; !ok {
		return storage.ErrNotFound
	}
	delete(s.edges, k)
	return nil
}

func (s *memStore) addTweet(authorID uint, desc string, at time.Time) models.Tweet {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := models.Tweet{ID: s.id(), UserID: authorID, Description: desc, CreatedAt: at}
	s.tweets = append(s.tweets, t)
	return t
}

func (s *memStore) addReply(authorID, tweetID uint, comment string, at time.Time) models.Reply {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := models.Reply{ID: s.id(), UserID: authorID, TweetID: tweetID, Comment: comment, CreatedAt: at}
	s.replies = append(s.replies, r)
	return r
}

func (s *memStore) addLike(userID, tweetID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.likes = append(s.likes, models.Like{ID: s.id(), UserID: userID, TweetID: tweetID})
}

func (s *memStore) ListTweetsByAuthor(_ context.Context, authorID uint) ([]models.Tweet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Tweet
	for _, t := range s.tweets {
		if t.UserID != authorID {
			continue
		}
		t.User = s.users[t.UserID]
		for _, r := range s.replies {
			if r.TweetID == t.ID {
				t.Replies = append(t.Replies, r)
			}
		}
		for _, l := range s.likes {
			if l.TweetID == t.ID {
				t.Likes = append(t.Likes, l)
			}
		}
		out = append(out, t)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) ListRepliesByAuthor(_ context.Context, authorID uint) ([]models.Reply, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Reply
	for _, r := range s.replies {
		if r.UserID != authorID {
			continue
		}
		r.User = s.users[r.UserID]
		for _, t := range s.tweets {
			if t.ID == r.TweetID {
				t.User = s.users[t.UserID]
				r.Tweet = t
			}
		}
		out = append(out, r)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) CountTweetsByAuthor(_ context.Context, authorID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, t := range s.tweets {
		if t.UserID == authorID {
			n++
		}
	}
	return n, nil
}

package service

import (
	"context"
	"errors"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"

	"golang.org/x/sync/errgroup"
)

// GraphStore is the slice of storage the follow graph needs.
type GraphStore interface {
	storage.AccountStore
	storage.EdgeStore
}

// Graph creates and destroys follow edges. It holds no state of its own;
// the store's unique index on (follower, following) is the final guard
// against concurrent duplicates.
type Graph struct {
	store GraphStore
}

func NewGraph(store GraphStore) *Graph {
	return &Graph{store: store}
}

// Follow makes actorID follow targetID.
func (g *Graph) Follow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return newError(KindSelfReference, "不能追蹤自己！")
	}
	target, edge, err := g.lookup(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if err := requireVisible(target); err != nil {
		return err
	}
	if edge != nil {
		return newError(KindAlreadyExists, "已追蹤此使用者！")
	}

	if err := g.store.CreateEdge(ctx, actorID, targetID); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return wrapError(KindAlreadyExists, "已追蹤此使用者！", err)
		}
		return err
	}
	return nil
}

// Unfollow removes the edge actorID -> targetID.
func (g *Graph) Unfollow(ctx context.Context, actorID, targetID uint) error {
	if actorID == targetID {
		return newError(KindSelfReference, "不能取消追蹤自己！")
	}
	target, edge, err := g.lookup(ctx, actorID, targetID)
	if err != nil {
		return err
	}
	if err := requireVisible(target); err != nil {
		return err
	}
	if edge == nil {
		return newError(KindEdgeNotFound, "尚未追蹤此使用者！")
	}

	if err := g.store.DeleteEdge(ctx, actorID, targetID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return wrapError(KindEdgeNotFound, "尚未追蹤此使用者！", err)
		}
		return err
	}
	return nil
}

// lookup fetches the target account and the existing edge concurrently.
func (g *Graph) lookup(ctx context.Context, actorID, targetID uint) (*models.User, *models.Followship, error) {
	var (
		target *models.User
		edge   *models.Followship
	)
	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		var err error
		target, err = g.store.FindAccountByID(ctx, targetID, false)
		return err
	})
	eg.Go(func() error {
		var err error
		edge, err = g.store.FindEdge(ctx, actorID, targetID)
		return err
	})
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}
	return target, edge, nil
}

// requireVisible treats admin accounts as absent.
func requireVisible(u *models.User) error {
	if u == nil || u.Role == models.RoleAdmin {
		return newError(KindNotFound, "使用者不存在！")
	}
	return nil
}

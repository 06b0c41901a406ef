package service

import (
	"context"
	"testing"
	"time"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var testDefaults = Defaults{
	Avatar:       "https://example.com/avatar.png",
	Cover:        "https://example.com/cover.png",
	Introduction: "hello",
}

type fixture struct {
	store   *memStore
	hasher  *util.BcryptHasher
	auth    *Authority
	graph   *Graph
	content *Content
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := newMemStore()
	hasher := util.NewBcryptHasher(bcrypt.MinCost)
	codec := util.NewJWTCodec("test-secret", "twitter-api")
	return &fixture{
		store:   store,
		hasher:  hasher,
		auth:    NewAuthority(store, hasher, codec, 30*24*time.Hour),
		graph:   NewGraph(store),
		content: NewContent(store, NewProjector(testDefaults)),
	}
}

// addUser inserts an account directly with the given role and password.
func (f *fixture) addUser(t *testing.T, account string, role models.Role, password string) *models.User {
	t.Helper()
	hash, err := f.hasher.Hash(password)
	require.NoError(t, err)
	u := &models.User{
		Account:  account,
		Email:    account + "@example.com",
		Name:     account,
		Password: hash,
		Role:     role,
	}
	require.NoError(t, f.store.CreateAccount(context.Background(), u))
	return u
}

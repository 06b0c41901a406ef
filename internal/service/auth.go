package service

import (
	"context"
	"fmt"
	"time"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/storage"
	"github.com/yy933/twitter-api-2020/internal/util"
)

// PasswordVerifier wraps the one-way password hash.
type PasswordVerifier interface {
	Hash(plain string) (string, error)
	Verify(plain, digest string) bool
}

// TokenCodec signs and verifies session tokens.
type TokenCodec interface {
	Encode(claims util.UserClaims, expiresAt time.Time) (string, error)
	Decode(token string) (*util.UserClaims, error)
}

// PublicUser is an account with the password hash stripped.
type PublicUser struct {
	ID           uint   `json:"id"`
	Account      string `json:"account"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Cover        string `json:"cover"`
	Introduction string `json:"introduction"`
	Role         string `json:"role"`
}

// NewPublicUser copies the public fields of u.
func NewPublicUser(u *models.User) PublicUser {
	return PublicUser{
		ID:           u.ID,
		Account:      u.Account,
		Name:         u.Name,
		Email:        u.Email,
		Avatar:       u.Avatar,
		Cover:        u.Cover,
		Introduction: u.Introduction,
		Role:         string(u.Role),
	}
}

// Session is the result of a successful sign-in.
type Session struct {
	Token     string     `json:"token"`
	User      PublicUser `json:"user"`
	ExpiresAt time.Time  `json:"-"`
}

// Authority verifies credentials, issues session tokens and rebuilds the
// authenticated identity from a bearer token.
type Authority struct {
	store  storage.AccountStore
	hasher PasswordVerifier
	codec  TokenCodec
	ttl    time.Duration
	now    func() time.Time
}

// NewAuthority builds an Authority. The codec carries the signing key.
func NewAuthority(store storage.AccountStore, hasher PasswordVerifier, codec TokenCodec, ttl time.Duration) *Authority {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Authority{
		store:  store,
		hasher: hasher,
		codec:  codec,
		ttl:    ttl,
		now:    time.Now,
	}
}

// VerifyCredentials looks the account up inside the given role partition
// only. role is chosen by the endpoint, never by the client.
func (a *Authority) VerifyCredentials(ctx context.Context, account, password string, role models.Role) (*models.User, error) {
	if !role.Valid() {
		return nil, fmt.Errorf("unknown role %q", role)
	}

	user, err := a.store.FindAccountByHandleAndRole(ctx, account, role)
	if err != nil {
		return nil, err
	}
	if err := RequireExists(user, "帳號不存在！"); err != nil {
		return nil, err
	}
	if !a.hasher.Verify(password, user.Password) {
		return nil, newError(KindInvalidCredential, "帳號或密碼輸入錯誤！")
	}
	return user, nil
}

// IssueSession signs a token carrying the public fields of user.
func (a *Authority) IssueSession(user *models.User) (*Session, error) {
	pub := NewPublicUser(user)
	expiresAt := a.now().Add(a.ttl)

	token, err := a.codec.Encode(util.UserClaims{
		ID:           pub.ID,
		Account:      pub.Account,
		Name:         pub.Name,
		Email:        pub.Email,
		Avatar:       pub.Avatar,
		Cover:        pub.Cover,
		Introduction: pub.Introduction,
		Role:         pub.Role,
	}, expiresAt)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}
	return &Session{Token: token, User: pub, ExpiresAt: expiresAt}, nil
}

// SignIn verifies credentials and issues a session in one step.
func (a *Authority) SignIn(ctx context.Context, account, password string, role models.Role) (*Session, error) {
	user, err := a.VerifyCredentials(ctx, account, password, role)
	if err != nil {
		return nil, err
	}
	return a.IssueSession(user)
}

// ResolveSession verifies token and re-fetches the live account with its
// follower and following edges. Token contents other than the id are ignored.
func (a *Authority) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, newError(KindUnauthenticated, "未登入！")
	}
	claims, err := a.codec.Decode(token)
	if err != nil {
		return nil, wrapError(KindUnauthenticated, "登入已失效，請重新登入！", err)
	}
	if claims.ID == 0 {
		return nil, newError(KindUnauthenticated, "登入已失效，請重新登入！")
	}

	user, err := a.store.FindAccountByID(ctx, claims.ID, true)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, newError(KindUnauthenticated, "使用者不存在！")
	}
	return user, nil
}

package util

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserClaims 是 token 内携带的帐号公开栏位快照（不含密码）
type UserClaims struct {
	ID           uint   `json:"id"`
	Account      string `json:"account"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Avatar       string `json:"avatar"`
	Cover        string `json:"cover"`
	Introduction string `json:"introduction"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec signs and verifies HS256 session tokens with a key fixed at construction.
type JWTCodec struct {
	secret []byte
	issuer string
}

// NewJWTCodec 构造函数，secret 在启动时注入一次
func NewJWTCodec(secret, issuer string) *JWTCodec {
	return &JWTCodec{secret: []byte(secret), issuer: issuer}
}

// Encode 生成 token，expiresAt 为过期时间
func (c *JWTCodec) Encode(claims UserClaims, expiresAt time.Time) (string, error) {
	if len(c.secret) == 0 {
		return "", errors.New("jwt secret is empty")
	}
	now := time.Now()
	claims.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    c.issuer,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	return token.SignedString(c.secret)
}

// Decode 解析并验证 token（签名、算法、过期时间、签发者）
func (c *JWTCodec) Decode(tokenStr string) (*UserClaims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}

	token, err := jwt.ParseWithClaims(tokenStr, &UserClaims{}, func(t *jwt.Token) (interface{}, error) {
		return c.secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*UserClaims)
	if !ok || !token.Valid {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

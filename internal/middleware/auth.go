package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

const currentUserKey = "currentUser"

// TokenCookie is the cookie consulted when no Authorization header is sent.
const TokenCookie = "tw_token"

// SessionResolver rebuilds the live identity behind a bearer token.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// AuthMiddleware 校验 JWT，并在 context 里放入当前用户（含粉丝 / 关注中）
func AuthMiddleware(auth SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		// 1) Header: Authorization: Bearer xxx
		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			}
		}

		// 2) URL 查询参数 ?token=xxx（用于下载等无法自定义 Header 的场景）
		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		// 3) Cookie
		if tokenStr == "" {
			if cookie, err := c.Cookie(TokenCookie); err == nil {
				tokenStr = cookie
			}
		}

		user, err := auth.ResolveSession(c.Request.Context(), tokenStr)
		if err != nil {
			var se *service.Error
			if errors.As(err, &se) && se.Kind == service.KindUnauthenticated {
				util.Error(c, http.StatusUnauthorized, util.CodeAuth, se.Message)
			} else {
				log.Printf("[%s] resolve session: %v", RequestID(c), err)
				util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "查詢使用者失敗")
			}
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// RoleRequired 只允许指定角色；须放在 AuthMiddleware 之后
func RoleRequired(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登入！")
			c.Abort()
			return
		}
		if user.Role != role {
			util.Error(c, http.StatusForbidden, util.CodeForbidden, "無權限存取此資源！")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUser returns the identity set by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(currentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

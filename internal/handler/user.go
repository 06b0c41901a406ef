package handler

import (
	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

// GetMe 返回当前登录用户信息（需要经过 AuthMiddleware），含即时的粉丝 / 关注中 id
func GetMe(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	util.Success(c, util.Response{
		"user":         service.NewPublicUser(user),
		"followerIds":  userIDs(user.Followers),
		"followingIds": userIDs(user.Followings),
	})
}

func userIDs(users []models.User) []uint {
	ids := make([]uint, 0, len(users))
	for _, u := range users {
		ids = append(ids, u.ID)
	}
	return ids
}

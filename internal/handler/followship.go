package handler

import (
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

// FollowshipHandler 负责追踪 / 取消追踪
type FollowshipHandler struct {
	Graph *service.Graph
}

func NewFollowshipHandler(graph *service.Graph) *FollowshipHandler {
	return &FollowshipHandler{Graph: graph}
}

// Follow 当前用户追踪 :id
func (h *FollowshipHandler) Follow(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Graph.Follow(c.Request.Context(), user.ID, targetID); err != nil {
		renderError(c, err)
		return
	}
	util.Success(c, util.Response{
		"followerId":  user.ID,
		"followingId": targetID,
	})
}

// Unfollow 当前用户取消追踪 :id
func (h *FollowshipHandler) Unfollow(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	targetID, ok := paramID(c)
	if !ok {
		return
	}

	if err := h.Graph.Unfollow(c.Request.Context(), user.ID, targetID); err != nil {
		renderError(c, err)
		return
	}
	util.Success(c, util.Response{
		"followerId":  user.ID,
		"followingId": targetID,
	})
}

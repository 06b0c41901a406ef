package handler

import (
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

// ContentHandler 负责个人资料、推文与回复列表
type ContentHandler struct {
	Content *service.Content
}

func NewContentHandler(content *service.Content) *ContentHandler {
	return &ContentHandler{Content: content}
}

// GetUser 公开个人资料；管理员帐号一律视为不存在
func (h *ContentHandler) GetUser(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	profile, err := h.Content.Profile(c.Request.Context(), id, viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	util.Success(c, profile)
}

// GetUserTweets 只有本人可以查看
func (h *ContentHandler) GetUserTweets(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	tweets, err := h.Content.UserTweets(c.Request.Context(), id, viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	util.Success(c, tweets)
}

// GetUserReplies 只有本人可以查看
func (h *ContentHandler) GetUserReplies(c *gin.Context) {
	viewer, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := paramID(c)
	if !ok {
		return
	}

	replies, err := h.Content.UserReplies(c.Request.Context(), id, viewer.ID)
	if err != nil {
		renderError(c, err)
		return
	}
	util.Success(c, replies)
}

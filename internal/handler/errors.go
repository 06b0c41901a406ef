package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/yy933/twitter-api-2020/internal/middleware"
	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

// renderError 把 service 错误转换成统一错误返回；未分类错误只记日志不外泄
func renderError(c *gin.Context, err error) {
	var se *service.Error
	if !errors.As(err, &se) {
		log.Printf("[%s] internal error: %v", middleware.RequestID(c), err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "伺服器錯誤，請稍後再試")
		return
	}

	switch se.Kind {
	case service.KindNotFound:
		util.Error(c, http.StatusNotFound, util.CodeNotFound, se.Message)
	case service.KindInvalidCredential:
		util.Error(c, http.StatusUnauthorized, util.CodeCredential, se.Message)
	case service.KindUnauthenticated:
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, se.Message)
	case service.KindForbidden:
		util.Error(c, http.StatusForbidden, util.CodeForbidden, se.Message)
	case service.KindSelfReference:
		util.Error(c, http.StatusBadRequest, util.CodeSelfFollow, se.Message)
	case service.KindAlreadyExists:
		if len(se.Fields) == 0 {
			util.Error(c, http.StatusConflict, util.CodeConflict, se.Message)
			return
		}
		util.ErrorWithFields(c, http.StatusConflict, util.CodeConflict, se.Message, se.Fields)
	case service.KindEdgeNotFound:
		util.Error(c, http.StatusNotFound, util.CodeEdgeNotFound, se.Message)
	case service.KindValidationFailed:
		util.ErrorWithFields(c, http.StatusBadRequest, util.CodeInvalidParam, se.Message, se.Fields)
	default:
		log.Printf("[%s] internal error: %v", middleware.RequestID(c), err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "伺服器錯誤，請稍後再試")
	}
}

// currentUser 取出 AuthMiddleware 放入的用户，取不到时直接返回 401
func currentUser(c *gin.Context) (*models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登入！")
		return nil, false
	}
	return user, true
}

// paramID 解析路径中的 :id
func paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return 0, false
	}
	return uint(id), true
}

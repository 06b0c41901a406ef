package handler

import (
	"net/http"
	"strings"

	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler 负责登录/注册相关接口
type AuthHandler struct {
	Auth *service.Authority
}

// NewAuthHandler 构造函数
func NewAuthHandler(auth *service.Authority) *AuthHandler {
	return &AuthHandler{Auth: auth}
}

// ---------- 登录 ----------

type signInReq struct {
	Account  string `json:"account" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// SignIn 返回指定角色的登录接口；角色由路由决定，不读取客户端传入的角色
func (h *AuthHandler) SignIn(role models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req signInReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "帳號與密碼皆為必填！")
			return
		}

		session, err := h.Auth.SignIn(c.Request.Context(), strings.TrimSpace(req.Account), req.Password, role)
		if err != nil {
			renderError(c, err)
			return
		}

		util.Success(c, util.Response{
			"token": session.Token,
			"user":  session.User,
		})
	}
}

// ---------- 注册 ----------

func (h *AuthHandler) SignUp(c *gin.Context) {
	var req service.SignUpInput
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "參數錯誤")
		return
	}

	user, err := h.Auth.SignUp(c.Request.Context(), req)
	if err != nil {
		renderError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "註冊成功！",
		"user":    service.NewPublicUser(user),
	})
}

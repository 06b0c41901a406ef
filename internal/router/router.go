package router

import (
	"net/http"

	"github.com/yy933/twitter-api-2020/internal/config"
	"github.com/yy933/twitter-api-2020/internal/database"
	"github.com/yy933/twitter-api-2020/internal/handler"
	"github.com/yy933/twitter-api-2020/internal/middleware"
	"github.com/yy933/twitter-api-2020/internal/models"
	"github.com/yy933/twitter-api-2020/internal/service"
	"github.com/yy933/twitter-api-2020/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter wires the store, services and handlers into a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	store := database.NewStore(db)
	hasher := util.NewBcryptHasher(cfg.Security.BcryptCost)
	// 签名密钥只在启动时注入一次
	codec := util.NewJWTCodec(cfg.JWT.Secret, cfg.JWT.Issuer)

	auth := service.NewAuthority(store, hasher, codec, cfg.JWT.TTL())
	graph := service.NewGraph(store)
	content := service.NewContent(store, service.NewProjector(service.Defaults{
		Avatar:       cfg.App.DefaultAvatar,
		Cover:        cfg.App.DefaultCover,
		Introduction: cfg.App.DefaultIntroduction,
	}))

	authHandler := handler.NewAuthHandler(auth)
	followHandler := handler.NewFollowshipHandler(graph)
	contentHandler := handler.NewContentHandler(content)

	// ====== API ======
	api := r.Group("/api")

	// 登录/注册接口（不需要鉴权），角色由路由决定
	api.POST("/signin", authHandler.SignIn(models.RoleUser))
	api.POST("/sessions/standard", authHandler.SignIn(models.RoleUser))
	api.POST("/admin/signin", authHandler.SignIn(models.RoleAdmin))
	api.POST("/sessions/admin", authHandler.SignIn(models.RoleAdmin))
	api.POST("/users", authHandler.SignUp)
	api.POST("/accounts", authHandler.SignUp)

	// 一般使用者
	users := api.Group("")
	users.Use(
		middleware.AuthMiddleware(auth),
		middleware.RoleRequired(models.RoleUser),
	)
	users.GET("/users/current", handler.GetMe)
	for _, prefix := range []string{"/users/:id", "/accounts/:id"} {
		users.POST(prefix+"/followers", followHandler.Follow)
		users.DELETE(prefix+"/followers", followHandler.Unfollow)
		users.GET(prefix, contentHandler.GetUser)
	}
	users.GET("/users/:id/tweets", contentHandler.GetUserTweets)
	users.GET("/users/:id/tweets/export", contentHandler.ExportTweetsXLSX)
	users.GET("/users/:id/replied_tweets", contentHandler.GetUserReplies)
	users.GET("/accounts/:id/posts", contentHandler.GetUserTweets)
	users.GET("/accounts/:id/replies", contentHandler.GetUserReplies)

	// 管理员
	admin := api.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(auth),
		middleware.RoleRequired(models.RoleAdmin),
	)
	admin.GET("/current", handler.GetMe)

	return r
}

package router

import (
	"github.com/cloudwego/hertz/pkg/app/server"

	"social-wall/pkg/common/config"
	"social-wall/pkg/core/auth"
	"social-wall/pkg/core/post/pubsub"
	postdao "social-wall/pkg/core/post/repository/dao"
	postservice "social-wall/pkg/core/post/service"
	userdao "social-wall/pkg/core/user/repository/dao"
	userservice "social-wall/pkg/core/user/service"
	"social-wall/pkg/web/handler"
	"social-wall/pkg/web/middleware"
)

// RegisterAPIs 注册所有API路由，仓储与总线由调用方注入
func RegisterAPIs(h *server.Hertz, cfg *config.Config, userRepo userdao.UserRepository, postRepo postdao.PostRepository, bus *pubsub.Bus) {
	issuer := auth.NewTokenIssuer(
		cfg.Middleware.JWT.Secret,
		cfg.Middleware.JWT.ExpireDuration,
		cfg.Middleware.JWT.Issuer,
	)

	users := userservice.NewUserService(userRepo, issuer)
	posts := postservice.NewPostService(postRepo, bus)

	// 初始化Handler实例
	healthHandler := handler.NewHealthCheckHandler(bus)
	userHandler := handler.NewUserHandler(users)
	postHandler := handler.NewPostHandler(posts)
	subHandler := handler.NewSubscriptionHandler(bus)

	// 鉴权守卫，只挂在写操作上；读接口与注册/登录公开
	authGuard := middleware.JWTAuthMiddleware(issuer)

	// 注册全局中间件（按执行顺序）
	h.Use(
		middleware.RecoveryMiddleware(cfg),
		middleware.LoggerMiddleware(),
		middleware.CORSMiddleware(cfg.Middleware.CORS),
	)

	// 基础接口组
	h.GET("/health", healthHandler.HealthCheck)

	// 业务接口组
	apiGroup := h.Group("/api/v1")
	{
		// 用户相关接口
		userGroup := apiGroup.Group("/users")
		{
			userGroup.POST("/register", userHandler.Register)
			userGroup.POST("/login", userHandler.Login)
		}

		// 帖子相关接口
		apiGroup.GET("/posts", postHandler.ListPosts)
		apiGroup.GET("/posts/:id", postHandler.GetPost)
		apiGroup.POST("/posts", authGuard, postHandler.CreatePost)
		apiGroup.DELETE("/posts/:id", authGuard, postHandler.DeletePost)
		apiGroup.POST("/posts/:id/like", authGuard, postHandler.ToggleLike)
		apiGroup.POST("/posts/:id/comments", authGuard, postHandler.CreateComment)
		apiGroup.DELETE("/posts/:id/comments/:commentId", authGuard, postHandler.DeleteComment)

		// 新帖订阅（WebSocket），连接时鉴权
		apiGroup.GET("/subscriptions/new-post", authGuard, subHandler.NewPost)
	}
}

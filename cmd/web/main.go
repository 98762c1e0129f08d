package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"

	"social-wall/pkg/common/config"
	postmodel "social-wall/pkg/core/post/model"
	"social-wall/pkg/core/post/pubsub"
	postdao "social-wall/pkg/core/post/repository/dao"
	postimpl "social-wall/pkg/core/post/repository/dao/impl"
	postmemory "social-wall/pkg/core/post/repository/dao/memory"
	usermodel "social-wall/pkg/core/user/model"
	userdao "social-wall/pkg/core/user/repository/dao"
	userimpl "social-wall/pkg/core/user/repository/dao/impl"
	usermemory "social-wall/pkg/core/user/repository/dao/memory"
	"social-wall/pkg/web/router"
)

func main() {
	// 初始化配置
	cfg := config.Load()

	// 按配置选择存储实现
	var (
		userRepo userdao.UserRepository
		postRepo postdao.PostRepository
	)
	switch cfg.Database.Driver {
	case "memory":
		hlog.Warn("Running with in-memory storage, data will not survive restarts")
		userRepo = usermemory.NewUserStore()
		postRepo = postmemory.NewPostStore()
	default:
		db, err := cfg.InitDB()
		if err != nil {
			panic("Failed to initialize database: " + err.Error())
		}
		if err := usermodel.AutoMigrate(db); err != nil {
			panic("Failed to migrate user table: " + err.Error())
		}
		if err := postmodel.AutoMigrate(db); err != nil {
			panic("Failed to migrate post table: " + err.Error())
		}
		userRepo = userimpl.NewGormUserRepository(db)
		postRepo = postimpl.NewGormPostRepository(db)
	}

	// 通知总线随进程创建，关停时一并释放订阅
	bus := pubsub.NewBus(cfg.Bus.SubscriberBuffer)

	// 创建Hertz实例
	h := server.Default(
		server.WithHostPorts(cfg.Server.Address),
		server.WithHandleMethodNotAllowed(true),
	)
	h.OnShutdown = append(h.OnShutdown, func(ctx context.Context) {
		bus.Close()
	})

	// 注册路由
	router.RegisterAPIs(h, cfg, userRepo, postRepo, bus)

	// 启动服务
	h.Spin()
}

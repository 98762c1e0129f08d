package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/websocket"

	"social-wall/pkg/core/post/pubsub"
	"social-wall/pkg/web/model"
)

// SubscriptionHandler 新帖订阅：WebSocket连接建立后，
// 每有帖子创建成功就推送一帧JSON，直到连接断开
type SubscriptionHandler struct {
	bus *pubsub.Bus
}

func NewSubscriptionHandler(bus *pubsub.Bus) *SubscriptionHandler {
	return &SubscriptionHandler{bus: bus}
}

var upgrader = websocket.HertzUpgrader{
	CheckOrigin: func(ctx *app.RequestContext) bool {
		// 跨域已由CORS中间件统一管控
		return true
	},
}

func (h *SubscriptionHandler) NewPost(ctx context.Context, c *app.RequestContext) {
	err := upgrader.Upgrade(c, func(conn *websocket.Conn) {
		sub := h.bus.Subscribe()
		// 连接断开立即注销订阅，不留陈旧句柄
		defer sub.Close()

		// 读循环只用来感知对端关闭
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case post, ok := <-sub.C():
				if !ok {
					// 总线关停，服务端正在退出
					return
				}
				if err := conn.WriteJSON(model.NewPostRes(post)); err != nil {
					hlog.Warnf("subscription: write failed, closing: %v", err)
					return
				}
			case <-closed:
				return
			}
		}
	})
	if err != nil {
		hlog.Errorf("subscription: websocket upgrade failed: %v", err)
	}
}

package handler

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"

	"social-wall/pkg/core/post/pubsub"
)

type HealthCheckHandler struct {
	bus *pubsub.Bus
}

func NewHealthCheckHandler(bus *pubsub.Bus) *HealthCheckHandler {
	return &HealthCheckHandler{bus: bus}
}

type HealthStatus struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Uptime      string    `json:"uptime"`
	Subscribers int       `json:"subscribers"`
}

var startupTime = time.Now()

// HealthCheck 健康检查接口，附带当前订阅者数量
func (h *HealthCheckHandler) HealthCheck(ctx context.Context, c *app.RequestContext) {
	c.JSON(200, HealthStatus{
		Status:      "healthy",
		Timestamp:   time.Now().UTC(),
		Uptime:      time.Since(startupTime).String(),
		Subscribers: h.bus.SubscriberCount(),
	})
}

package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	userservice "social-wall/pkg/core/user/service"
	"social-wall/pkg/web/model"
)

type UserHandler struct {
	users *userservice.UserService
}

func NewUserHandler(users *userservice.UserService) *UserHandler {
	return &UserHandler{users: users}
}

func (h *UserHandler) Register(ctx context.Context, c *app.RequestContext) {
	var req model.RegisterReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "参数校验失败"})
		return
	}

	authUser, err := h.users.Register(ctx, req.Username, req.Email, req.Password, req.ConfirmPassword)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, model.NewAuthUserRes(authUser))
}

func (h *UserHandler) Login(ctx context.Context, c *app.RequestContext) {
	var req model.LoginReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "参数错误"})
		return
	}

	authUser, err := h.users.Login(ctx, req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, model.NewAuthUserRes(authUser))
}

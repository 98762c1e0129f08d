package model

import (
	"time"

	userservice "social-wall/pkg/core/user/service"
)

// 请求/响应数据结构
type (
	RegisterReq struct {
		Username        string `json:"username" binding:"required"`
		Email           string `json:"email" binding:"required"`
		Password        string `json:"password" binding:"required"`
		ConfirmPassword string `json:"confirmPassword" binding:"required"`
	}

	LoginReq struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	// AuthUserRes 注册/登录的返回体，密码哈希永不出现在响应中
	AuthUserRes struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		CreatedAt string `json:"createdAt"`
		Token     string `json:"token"`
	}
)

func NewAuthUserRes(au userservice.AuthUser) AuthUserRes {
	return AuthUserRes{
		ID:        au.User.ID,
		Username:  au.User.Username,
		Email:     au.User.Email,
		CreatedAt: au.User.CreatedAt.Format(time.RFC3339),
		Token:     au.Token,
	}
}

package dao

import (
	"context"

	"social-wall/pkg/core/post/model"
)

type PostRepository interface {
	Create(ctx context.Context, post model.Post) error
	FindByID(ctx context.Context, id string) (model.Post, error)
	// FindAll 按创建时间倒序返回全部帖子，每次调用现查，不做缓存
	FindAll(ctx context.Context) ([]model.Post, error)
	// Update 整体回写聚合（body/comments/likes），带版本校验
	Update(ctx context.Context, post model.Post) (model.Post, error)
	Delete(ctx context.Context, id string) error
}

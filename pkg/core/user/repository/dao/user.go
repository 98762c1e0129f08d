package dao

import (
	"context"

	"social-wall/pkg/core/user/model"
)

type UserRepository interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByUsername(ctx context.Context, username string) (model.User, error)
	IsUsernameExists(ctx context.Context, username string) (bool, error)
}

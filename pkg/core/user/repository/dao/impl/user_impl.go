package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/user/model"
	"social-wall/pkg/core/user/repository/dao"
)

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) dao.UserRepository {
	return &GormUserRepository{db: db}
}

func (r *GormUserRepository) Create(ctx context.Context, user model.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			// 唯一索引冲突单独归类，注册并发重名时走这里
			if apperrors.IsDuplicateError(apperrors.WrapGormError(err)) {
				return apperrors.NewConflict("Username is taken", map[string]string{
					"username": "This username is taken",
				})
			}
			return apperrors.WrapGormError(err)
		}
		return nil
	})
}

func (r *GormUserRepository) FindByID(ctx context.Context, id string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperrors.New(apperrors.KindNotFound, "User not found")
	case err != nil:
		return model.User{}, apperrors.WrapGormError(err)
	default:
		return user, nil
	}
}

func (r *GormUserRepository) FindByUsername(ctx context.Context, username string) (model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&user).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.User{}, apperrors.New(apperrors.KindNotFound, "User not found")
	case err != nil:
		return model.User{}, apperrors.WrapGormError(err)
	default:
		return user, nil
	}
}

func (r *GormUserRepository) IsUsernameExists(ctx context.Context, username string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.User{}).
		Where("username = ?", username).
		Count(&count).Error
	if err != nil {
		return false, apperrors.WrapGormError(err)
	}
	return count > 0, nil
}

package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/post/model"
	"social-wall/pkg/core/post/repository/dao"
)

type GormPostRepository struct {
	db *gorm.DB
}

func NewGormPostRepository(db *gorm.DB) dao.PostRepository {
	return &GormPostRepository{db: db}
}

func (r *GormPostRepository) Create(ctx context.Context, post model.Post) error {
	if err := r.db.WithContext(ctx).Create(&post).Error; err != nil {
		return apperrors.WrapGormError(err)
	}
	return nil
}

func (r *GormPostRepository) FindByID(ctx context.Context, id string) (model.Post, error) {
	var post model.Post
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&post).Error

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return model.Post{}, apperrors.New(apperrors.KindNotFound, "Post not found")
	case err != nil:
		return model.Post{}, apperrors.WrapGormError(err)
	default:
		return post, nil
	}
}

func (r *GormPostRepository) FindAll(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&posts).Error
	if err != nil {
		return nil, apperrors.WrapGormError(err)
	}
	return posts, nil
}

// Update 带版本校验的整体回写；0行命中说明并发写冲突或帖子已删除
func (r *GormPostRepository) Update(ctx context.Context, post model.Post) (model.Post, error) {
	oldVersion := post.Version
	post.Version++

	result := r.db.WithContext(ctx).Model(&model.Post{}).
		Where("id = ? AND version = ?", post.ID, oldVersion).
		Select("body", "comments", "likes", "version").
		Updates(&post)

	if result.Error != nil {
		return model.Post{}, apperrors.WrapGormError(result.Error)
	}
	if result.RowsAffected == 0 {
		return model.Post{}, apperrors.New(apperrors.KindInternal, "post write conflict")
	}
	return post, nil
}

func (r *GormPostRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&model.Post{})
		if result.Error != nil {
			return apperrors.WrapGormError(result.Error)
		}
		if result.RowsAffected == 0 {
			return apperrors.New(apperrors.KindNotFound, "Post not found")
		}
		return nil
	})
}

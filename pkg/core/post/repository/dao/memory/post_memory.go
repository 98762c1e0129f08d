// 内存实现：无数据库场景（DB_DRIVER=memory）与服务层测试共用
package memory

import (
	"context"
	"sort"
	"sync"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/post/model"
	"social-wall/pkg/core/post/repository/dao"
)

type PostStore struct {
	mu    sync.RWMutex
	posts map[string]model.Post
}

func NewPostStore() dao.PostRepository {
	return &PostStore{posts: make(map[string]model.Post)}
}

// clonePost 深拷贝聚合，避免调用方与存储共享comments/likes底层数组
func clonePost(p model.Post) model.Post {
	cloned := p
	cloned.Comments = append([]model.Comment(nil), p.Comments...)
	cloned.Likes = append([]model.Like(nil), p.Likes...)
	return cloned
}

func (s *PostStore) Create(_ context.Context, post model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.posts[post.ID] = clonePost(post)
	return nil
}

func (s *PostStore) FindByID(_ context.Context, id string) (model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	post, ok := s.posts[id]
	if !ok {
		return model.Post{}, apperrors.New(apperrors.KindNotFound, "Post not found")
	}
	return clonePost(post), nil
}

func (s *PostStore) FindAll(_ context.Context) ([]model.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	posts := make([]model.Post, 0, len(s.posts))
	for _, post := range s.posts {
		posts = append(posts, clonePost(post))
	}

	// 创建时间倒序，最新的在前
	sort.Slice(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}

func (s *PostStore) Update(_ context.Context, post model.Post) (model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.posts[post.ID]
	if !ok {
		return model.Post{}, apperrors.New(apperrors.KindNotFound, "Post not found")
	}
	if existing.Version != post.Version {
		return model.Post{}, apperrors.New(apperrors.KindInternal, "post write conflict")
	}

	post.Version++
	s.posts[post.ID] = clonePost(post)
	return clonePost(post), nil
}

func (s *PostStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return apperrors.New(apperrors.KindNotFound, "Post not found")
	}
	delete(s.posts, id)
	return nil
}

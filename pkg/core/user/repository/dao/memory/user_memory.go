// 内存实现：无数据库场景（DB_DRIVER=memory）与服务层测试共用
package memory

import (
	"context"
	"sync"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/user/model"
	"social-wall/pkg/core/user/repository/dao"
)

type UserStore struct {
	mu    sync.RWMutex
	users map[string]model.User // key为用户id
}

func NewUserStore() dao.UserRepository {
	return &UserStore{users: make(map[string]model.User)}
}

func (s *UserStore) Create(_ context.Context, user model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// 对齐MySQL唯一索引语义
	for _, existing := range s.users {
		if existing.Username == user.Username {
			return apperrors.NewConflict("Username is taken", map[string]string{
				"username": "This username is taken",
			})
		}
	}

	s.users[user.ID] = user
	return nil
}

func (s *UserStore) FindByID(_ context.Context, id string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return model.User{}, apperrors.New(apperrors.KindNotFound, "User not found")
	}
	return user, nil
}

func (s *UserStore) FindByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return model.User{}, apperrors.New(apperrors.KindNotFound, "User not found")
}

func (s *UserStore) IsUsernameExists(_ context.Context, username string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/auth"
	"social-wall/pkg/core/user/model"
	"social-wall/pkg/core/user/repository/dao"
)

// AuthUser 注册/登录成功后返回的用户视图 + 新签发的令牌
type AuthUser struct {
	User  model.User
	Token string
}

type UserService struct {
	repo   dao.UserRepository
	issuer *auth.TokenIssuer
}

func NewUserService(repo dao.UserRepository, issuer *auth.TokenIssuer) *UserService {
	return &UserService{repo: repo, issuer: issuer}
}

// Register 注册流程：校验 -> 查重 -> 哈希密码 -> 落库 -> 签发令牌
func (s *UserService) Register(ctx context.Context, username, email, password, confirmPassword string) (AuthUser, error) {
	valid, fieldErrors := auth.ValidateRegisterInput(username, email, password, confirmPassword)
	if !valid {
		return AuthUser{}, apperrors.NewValidation("Errors", fieldErrors)
	}

	exists, err := s.repo.IsUsernameExists(ctx, username)
	if err != nil {
		return AuthUser{}, err
	}
	if exists {
		return AuthUser{}, apperrors.NewConflict("Username is taken", map[string]string{
			"username": "This username is taken",
		})
	}

	hashed, err := auth.HashPassword(password)
	if err != nil {
		return AuthUser{}, err
	}

	user := model.User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hashed,
		CreatedAt:    time.Now(),
	}

	// 并发重名由存储层唯一索引兜底，这里原样上抛冲突
	if err := s.repo.Create(ctx, user); err != nil {
		return AuthUser{}, err
	}

	token, err := s.issuer.Issue(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return AuthUser{}, err
	}

	return AuthUser{User: user, Token: token}, nil
}

// Login 登录流程：校验 -> 查用户 -> 比对密码 -> 签发令牌
func (s *UserService) Login(ctx context.Context, username, password string) (AuthUser, error) {
	valid, fieldErrors := auth.ValidateLoginInput(username, password)
	if !valid {
		return AuthUser{}, apperrors.NewValidation("Errors", fieldErrors)
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if apperrors.KindOf(err) == apperrors.KindNotFound {
			return AuthUser{}, &apperrors.Error{
				Kind:    apperrors.KindNotFound,
				Message: "User not found",
				Fields:  map[string]string{"general": "User not found"},
			}
		}
		return AuthUser{}, err
	}

	if !auth.VerifyPassword(password, user.PasswordHash) {
		return AuthUser{}, &apperrors.Error{
			Kind:    apperrors.KindUnauthenticated,
			Message: "Wrong credentials",
			Fields:  map[string]string{"general": "Wrong credentials"},
		}
	}

	token, err := s.issuer.Issue(auth.Identity{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return AuthUser{}, err
	}

	return AuthUser{User: user, Token: token}, nil
}

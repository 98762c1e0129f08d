package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/auth"
	"social-wall/pkg/core/post/model"
	"social-wall/pkg/core/post/pubsub"
	"social-wall/pkg/core/post/repository/dao"
)

// PostService 帖子聚合的全部读写操作。
// 所有读-改-写的变更按帖子id串行化，防止并发点赞/评论互相覆盖；
// 不同帖子之间完全并行
type PostService struct {
	repo dao.PostRepository
	bus  *pubsub.Bus

	locks sync.Map // 帖子id -> *sync.Mutex
}

func NewPostService(repo dao.PostRepository, bus *pubsub.Bus) *PostService {
	return &PostService{repo: repo, bus: bus}
}

// lockFor 取该帖子的互斥锁，首次访问时创建
func (s *PostService) lockFor(postID string) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(postID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// ListPosts 按创建时间倒序返回全部帖子
func (s *PostService) ListPosts(ctx context.Context) ([]model.Post, error) {
	return s.repo.FindAll(ctx)
}

func (s *PostService) GetPost(ctx context.Context, id string) (model.Post, error) {
	return s.repo.FindByID(ctx, id)
}

// CreatePost 发帖并在落库成功后广播到通知总线
func (s *PostService) CreatePost(ctx context.Context, ident auth.Identity, body string) (model.Post, error) {
	if strings.TrimSpace(body) == "" {
		return model.Post{}, apperrors.NewValidation("Post body must not be empty", map[string]string{
			"body": "Post body must not be empty",
		})
	}

	post := model.Post{
		ID:        uuid.NewString(),
		UserID:    ident.ID,
		Username:  ident.Username,
		Body:      body,
		Comments:  []model.Comment{},
		Likes:     []model.Like{},
		Version:   1,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(ctx, post); err != nil {
		return model.Post{}, err
	}

	// 返回前广播，仅投递给此刻在线的订阅者
	s.bus.Publish(post)

	return post, nil
}

// DeletePost 仅作者可删，连同内嵌评论/点赞一并删除
func (s *PostService) DeletePost(ctx context.Context, ident auth.Identity, id string) error {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if post.Username != ident.Username {
		return apperrors.New(apperrors.KindForbidden, "Action not allowed")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	// 帖子已不存在，锁条目随之释放
	s.locks.Delete(id)
	return nil
}

// ToggleLike 点赞开关：已赞则取消，未赞则追加
func (s *PostService) ToggleLike(ctx context.Context, ident auth.Identity, postID string) (model.Post, error) {
	mu := s.lockFor(postID)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}

	if post.LikedBy(ident.Username) {
		likes := post.Likes[:0:0]
		for _, like := range post.Likes {
			if like.Username != ident.Username {
				likes = append(likes, like)
			}
		}
		post.Likes = likes
	} else {
		post.Likes = append(post.Likes, model.Like{
			Username:  ident.Username,
			CreatedAt: time.Now(),
		})
	}

	return s.repo.Update(ctx, post)
}

// AddComment 评论插入到队首，最新的在前
func (s *PostService) AddComment(ctx context.Context, ident auth.Identity, postID, body string) (model.Post, error) {
	if strings.TrimSpace(body) == "" {
		return model.Post{}, apperrors.NewValidation("Empty Comment", map[string]string{
			"body": "Comment body must not be empty",
		})
	}

	mu := s.lockFor(postID)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}

	comment := model.Comment{
		ID:        uuid.NewString(),
		Username:  ident.Username,
		Body:      body,
		CreatedAt: time.Now(),
	}
	post.Comments = append([]model.Comment{comment}, post.Comments...)

	return s.repo.Update(ctx, post)
}

// DeleteComment 按id定位评论；帖子或评论不存在为NotFound，
// 非本人评论为Forbidden，二者必须区分
func (s *PostService) DeleteComment(ctx context.Context, ident auth.Identity, postID, commentID string) (model.Post, error) {
	mu := s.lockFor(postID)
	mu.Lock()
	defer mu.Unlock()

	post, err := s.repo.FindByID(ctx, postID)
	if err != nil {
		return model.Post{}, err
	}

	index, ok := post.FindComment(commentID)
	if !ok {
		return model.Post{}, apperrors.New(apperrors.KindNotFound, "Comment not found")
	}

	if post.Comments[index].Username != ident.Username {
		return model.Post{}, apperrors.New(apperrors.KindForbidden, "Action not allowed")
	}

	post.Comments = append(post.Comments[:index], post.Comments[index+1:]...)

	return s.repo.Update(ctx, post)
}

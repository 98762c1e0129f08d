package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "social-wall/pkg/common/errors"
	"social-wall/pkg/core/auth"
	"social-wall/pkg/core/post/pubsub"
	"social-wall/pkg/core/post/repository/dao/memory"
)

var (
	alice = auth.Identity{ID: "u-alice", Username: "alice", Email: "alice@example.com"}
	bob   = auth.Identity{ID: "u-bob", Username: "bob", Email: "bob@example.com"}
)

func newTestService() (*PostService, *pubsub.Bus) {
	bus := pubsub.NewBus(16)
	return NewPostService(memory.NewPostStore(), bus), bus
}

func TestCreatePost(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()

	post, err := svc.CreatePost(context.Background(), alice, "hello")
	require.NoError(t, err)

	assert.Equal(t, "hello", post.Body)
	assert.Equal(t, "alice", post.Username)
	assert.Empty(t, post.Comments)
	assert.Empty(t, post.Likes)
	assert.Equal(t, 0, post.LikeCount())
	assert.Equal(t, 0, post.CommentCount())
	assert.NotEmpty(t, post.ID)
}

func TestCreatePostRejectsBlankBody(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()

	_, err := svc.CreatePost(context.Background(), alice, "   \n\t")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
	assert.Contains(t, apperrors.FieldsOf(err), "body")
}

func TestListPostsNewestFirst(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreatePost(ctx, alice, fmt.Sprintf("post %d", i))
		require.NoError(t, err)
		time.Sleep(2 * time.Millisecond) // 保证createdAt可区分
	}

	posts, err := svc.ListPosts(ctx)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, "post 2", posts[0].Body)
	assert.Equal(t, "post 0", posts[2].Body)
}

func TestGetPostNotFound(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()

	_, err := svc.GetPost(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestDeletePostOwnerOnly(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	// 非作者删除被拒
	err = svc.DeletePost(ctx, bob, post.ID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	// 作者删除成功，之后查询NotFound
	require.NoError(t, svc.DeletePost(ctx, alice, post.ID))
	_, err = svc.GetPost(ctx, post.ID)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestToggleLike(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, liked.LikeCount())
	assert.True(t, liked.LikedBy("bob"))

	// 再次调用即取消，回到原始点赞集合
	unliked, err := svc.ToggleLike(ctx, bob, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, unliked.LikeCount())
	assert.False(t, unliked.LikedBy("bob"))
}

func TestToggleLikeNotFound(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()

	_, err := svc.ToggleLike(context.Background(), bob, "missing")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestConcurrentLikesNoLostUpdate(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	const n = 32
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ident := auth.Identity{ID: fmt.Sprintf("u-%d", i), Username: fmt.Sprintf("user-%d", i)}
			_, err := svc.ToggleLike(ctx, ident, post.ID)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, n, got.LikeCount(), "every distinct user's like must be retained")

	seen := map[string]bool{}
	for _, like := range got.Likes {
		assert.False(t, seen[like.Username], "duplicate like for %s", like.Username)
		seen[like.Username] = true
	}
}

func TestAddComment(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	first, err := svc.AddComment(ctx, bob, post.ID, "first")
	require.NoError(t, err)
	require.Equal(t, 1, first.CommentCount())

	second, err := svc.AddComment(ctx, alice, post.ID, "second")
	require.NoError(t, err)
	require.Equal(t, 2, second.CommentCount())

	// 最新评论在最前
	assert.Equal(t, "second", second.Comments[0].Body)
	assert.Equal(t, "first", second.Comments[1].Body)
}

func TestAddCommentRejectsBlankBody(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = svc.AddComment(ctx, bob, post.ID, "  ")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))

	// 空评论校验先于帖子存在性检查
	_, err = svc.AddComment(ctx, bob, "missing", "  ")
	assert.Equal(t, apperrors.KindValidation, apperrors.KindOf(err))
}

func TestDeleteComment(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	withComment, err := svc.AddComment(ctx, bob, post.ID, "bob's comment")
	require.NoError(t, err)
	commentID := withComment.Comments[0].ID

	// 非评论作者删除被拒，评论列表不变
	_, err = svc.DeleteComment(ctx, alice, post.ID, commentID)
	require.Error(t, err)
	assert.Equal(t, apperrors.KindForbidden, apperrors.KindOf(err))

	unchanged, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, unchanged.CommentCount())

	// 作者本人删除成功
	after, err := svc.DeleteComment(ctx, bob, post.ID, commentID)
	require.NoError(t, err)
	assert.Equal(t, 0, after.CommentCount())
}

func TestDeleteCommentUnknownIDIsNotFound(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	// 评论id不属于该帖 -> NotFound，而不是Forbidden
	_, err = svc.DeleteComment(ctx, alice, post.ID, "no-such-comment")
	require.Error(t, err)
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))

	_, err = svc.DeleteComment(ctx, alice, "no-such-post", "whatever")
	assert.Equal(t, apperrors.KindNotFound, apperrors.KindOf(err))
}

func TestCreatePostNotifiesActiveSubscribersOnly(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	early := bus.Subscribe()
	defer early.Close()

	post, err := svc.CreatePost(ctx, alice, "hello subscribers")
	require.NoError(t, err)

	select {
	case got := <-early.C():
		assert.Equal(t, post.ID, got.ID)
		assert.Equal(t, "hello subscribers", got.Body)
	case <-time.After(time.Second):
		t.Fatal("Subscriber connected before publish must receive the post")
	}

	// 事后订阅不补发
	late := bus.Subscribe()
	defer late.Close()
	select {
	case got := <-late.C():
		t.Fatalf("Late subscriber must not receive %s", got.ID)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMutationsKeepDerivedCountsConsistent(t *testing.T) {
	svc, bus := newTestService()
	defer bus.Close()
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "hello")
	require.NoError(t, err)

	_, err = svc.ToggleLike(ctx, bob, post.ID)
	require.NoError(t, err)
	_, err = svc.AddComment(ctx, bob, post.ID, "nice")
	require.NoError(t, err)

	got, err := svc.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, len(got.Likes), got.LikeCount())
	assert.Equal(t, len(got.Comments), got.CommentCount())
}

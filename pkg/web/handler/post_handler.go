package handler

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/utils"

	postservice "social-wall/pkg/core/post/service"
	"social-wall/pkg/web/middleware"
	"social-wall/pkg/web/model"
)

type PostHandler struct {
	posts *postservice.PostService
}

func NewPostHandler(posts *postservice.PostService) *PostHandler {
	return &PostHandler{posts: posts}
}

func (h *PostHandler) ListPosts(ctx context.Context, c *app.RequestContext) {
	posts, err := h.posts.ListPosts(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, model.NewPostResList(posts))
}

func (h *PostHandler) GetPost(ctx context.Context, c *app.RequestContext) {
	post, err := h.posts.GetPost(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(200, model.NewPostRes(post))
}

func (h *PostHandler) CreatePost(ctx context.Context, c *app.RequestContext) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(401, utils.H{"error": "未授权访问"})
		return
	}

	var req model.CreatePostReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "参数错误"})
		return
	}

	post, err := h.posts.CreatePost(ctx, ident, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(201, model.NewPostRes(post))
}

func (h *PostHandler) DeletePost(ctx context.Context, c *app.RequestContext) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(401, utils.H{"error": "未授权访问"})
		return
	}

	if err := h.posts.DeletePost(ctx, ident, c.Param("id")); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, utils.H{"message": "Post deleted successfully"})
}

// ToggleLike 点赞开关：同一用户再次调用即取消点赞
func (h *PostHandler) ToggleLike(ctx context.Context, c *app.RequestContext) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(401, utils.H{"error": "未授权访问"})
		return
	}

	post, err := h.posts.ToggleLike(ctx, ident, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, model.NewPostRes(post))
}

func (h *PostHandler) CreateComment(ctx context.Context, c *app.RequestContext) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(401, utils.H{"error": "未授权访问"})
		return
	}

	var req model.CreateCommentReq
	if err := c.BindAndValidate(&req); err != nil {
		c.JSON(400, utils.H{"error": "参数错误"})
		return
	}

	post, err := h.posts.AddComment(ctx, ident, c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, model.NewPostRes(post))
}

func (h *PostHandler) DeleteComment(ctx context.Context, c *app.RequestContext) {
	ident, ok := middleware.IdentityFrom(c)
	if !ok {
		c.JSON(401, utils.H{"error": "未授权访问"})
		return
	}

	post, err := h.posts.DeleteComment(ctx, ident, c.Param("id"), c.Param("commentId"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(200, model.NewPostRes(post))
}

package model

import (
	"time"

	postmodel "social-wall/pkg/core/post/model"
)

type (
	CreatePostReq struct {
		Body string `json:"body" binding:"required"`
	}

	CreateCommentReq struct {
		Body string `json:"body" binding:"required"`
	}

	CommentRes struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Body      string `json:"body"`
		CreatedAt string `json:"createdAt"`
	}

	LikeRes struct {
		Username  string `json:"username"`
		CreatedAt string `json:"createdAt"`
	}

	// PostRes 帖子返回体，likeCount/commentCount在此处派生
	PostRes struct {
		ID           string       `json:"id"`
		Body         string       `json:"body"`
		Username     string       `json:"username"`
		CreatedAt    string       `json:"createdAt"`
		Comments     []CommentRes `json:"comments"`
		Likes        []LikeRes    `json:"likes"`
		LikeCount    int          `json:"likeCount"`
		CommentCount int          `json:"commentCount"`
	}
)

func NewPostRes(p postmodel.Post) PostRes {
	comments := make([]CommentRes, 0, len(p.Comments))
	for _, c := range p.Comments {
		comments = append(comments, CommentRes{
			ID:        c.ID,
			Username:  c.Username,
			Body:      c.Body,
			CreatedAt: c.CreatedAt.Format(time.RFC3339),
		})
	}

	likes := make([]LikeRes, 0, len(p.Likes))
	for _, l := range p.Likes {
		likes = append(likes, LikeRes{
			Username:  l.Username,
			CreatedAt: l.CreatedAt.Format(time.RFC3339),
		})
	}

	return PostRes{
		ID:           p.ID,
		Body:         p.Body,
		Username:     p.Username,
		CreatedAt:    p.CreatedAt.Format(time.RFC3339),
		Comments:     comments,
		Likes:        likes,
		LikeCount:    p.LikeCount(),
		CommentCount: p.CommentCount(),
	}
}

func NewPostResList(posts []postmodel.Post) []PostRes {
	out := make([]PostRes, 0, len(posts))
	for _, p := range posts {
		out = append(out, NewPostRes(p))
	}
	return out
}

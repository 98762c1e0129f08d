package model

import (
	"time"

	"gorm.io/gorm"
)

// Comment 内嵌于Post，不单独建表，随聚合整体读写
type Comment struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// Like 点赞记录，同一帖子同一用户名至多一条
type Like struct {
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Post 帖子聚合根。comments/likes以JSON列整体存储，
// 聚合作为一个文档读写，版本号配合服务层的按帖互斥锁防丢失更新
type Post struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	UserID    string    `gorm:"type:varchar(36);index;not null"`
	Username  string    `gorm:"type:varchar(100);index;not null"` // 冗余的作者用户名，省联表
	Body      string    `gorm:"type:text;not null"`
	Comments  []Comment `gorm:"serializer:json;type:json"`
	Likes     []Like    `gorm:"serializer:json;type:json"`
	Version   int       `gorm:"default:1;not null"`
	CreatedAt time.Time `gorm:"index;autoCreateTime"`
}

// TableName 定义映射表名
func (Post) TableName() string {
	return "wall_posts"
}

// LikeCount 派生计数，读取时计算，不落库
func (p *Post) LikeCount() int {
	return len(p.Likes)
}

func (p *Post) CommentCount() int {
	return len(p.Comments)
}

// LikedBy 当前用户名是否已点赞
func (p *Post) LikedBy(username string) bool {
	for _, like := range p.Likes {
		if like.Username == username {
			return true
		}
	}
	return false
}

// FindComment 按id查找评论，返回下标；不能假设评论顺序
func (p *Post) FindComment(commentID string) (int, bool) {
	for i, comment := range p.Comments {
		if comment.ID == commentID {
			return i, true
		}
	}
	return 0, false
}

func AutoMigrate(db *gorm.DB) error {
	return db.Set("gorm:table_options", "COMMENT='帖子聚合表'").
		AutoMigrate(&Post{})
}

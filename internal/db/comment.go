package db

import "gorm.io/gorm"

// Comment 定义了评论模型，通过 RepliedID 指向被回复的评论形成回复树
type Comment struct {
	gorm.Model
	Author    string `gorm:"size:30;not null"`
	Email     string `gorm:"size:254"`
	Site      string `gorm:"size:255"`
	Body      string `gorm:"type:text;not null"`
	FromAdmin bool   `gorm:"default:false"`
	Reviewed  bool   `gorm:"default:false;index"`
	PostID    uint   `gorm:"not null;index"`
	Post      Post
	RepliedID *uint     `gorm:"index"`
	Replied   *Comment  `gorm:"foreignKey:RepliedID"`
	Replies   []Comment `gorm:"foreignKey:RepliedID"`
}

package db

import "gorm.io/gorm"

// Post 定义了文章模型
type Post struct {
	gorm.Model
	Title      string `gorm:"size:60;not null"`
	Body       string `gorm:"type:text"`
	CanComment bool   `gorm:"default:true"`
	CategoryID uint   `gorm:"not null;index"`
	Category   Category
	Comments   []Comment
}

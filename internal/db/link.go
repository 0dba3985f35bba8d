package db

import "gorm.io/gorm"

// Link 定义了侧边栏友情链接模型
type Link struct {
	gorm.Model
	Name string `gorm:"size:30;not null"`
	URL  string `gorm:"size:255;not null"`
}

package db

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Admin 定义了博客管理员模型，应用逻辑默认只使用第一条记录
type Admin struct {
	gorm.Model
	Username     string `gorm:"size:20;unique;not null"`
	Password     string `gorm:"size:128;not null"`
	BlogTitle    string `gorm:"size:60"`
	BlogSubTitle string `gorm:"size:100"`
	Name         string `gorm:"size:30"`
	About        string `gorm:"type:text"`
}

// EnsureAdmin 存在性检查：若提供的用户名与密码均非空且不存在对应账号，则创建一个 bcrypt 哈希的管理员。
func EnsureAdmin(username, password string) error {
	trimmedUser := strings.TrimSpace(username)
	trimmedPassword := strings.TrimSpace(password)
	if trimmedUser == "" || trimmedPassword == "" {
		return nil
	}

	if DB == nil {
		return errors.New("database not initialized")
	}

	var existing Admin
	if err := DB.Where("username = ?", trimmedUser).First(&existing).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(trimmedPassword), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		admin := Admin{
			Username:     trimmedUser,
			Password:     string(hashed),
			BlogTitle:    "Inklog",
			BlogSubTitle: "Yet another personal blog",
		}
		return DB.Create(&admin).Error
	}

	return nil
}

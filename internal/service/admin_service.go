package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrAdminNotFound      = errors.New("admin not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AdminService 管理单一博主账号的认证与站点设置。
type AdminService struct {
	db *gorm.DB
}

// SettingsInput represents fields accepted when updating blog settings.
type SettingsInput struct {
	Name         string
	BlogTitle    string
	BlogSubTitle string
	About        string
}

// NewAdminService creates an AdminService instance.
func NewAdminService(gdb *gorm.DB) *AdminService {
	return &AdminService{db: gdb}
}

// Profile returns the first admin record. 应用逻辑假定博主是单例。
func (s *AdminService) Profile() (*db.Admin, error) {
	var admin db.Admin
	if err := s.db.Order("id asc").First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, err
	}
	return &admin, nil
}

// Authenticate verifies the credential pair against the stored bcrypt hash.
func (s *AdminService) Authenticate(username, password string) (*db.Admin, error) {
	var admin db.Admin
	if err := s.db.Where("username = ?", strings.TrimSpace(username)).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return &admin, nil
}

// UpdateSettings 更新博主昵称、博客标题副标题与关于页内容。
func (s *AdminService) UpdateSettings(input SettingsInput) (*db.Admin, error) {
	blogTitle := strings.TrimSpace(input.BlogTitle)
	if blogTitle == "" {
		return nil, errors.New("blog title is required")
	}

	admin, err := s.Profile()
	if err != nil {
		return nil, err
	}

	admin.Name = strings.TrimSpace(input.Name)
	admin.BlogTitle = blogTitle
	admin.BlogSubTitle = strings.TrimSpace(input.BlogSubTitle)
	admin.About = input.About
	if err := s.db.Save(admin).Error; err != nil {
		return nil, err
	}

	return admin, nil
}

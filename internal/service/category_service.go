package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCategoryNotFound  = errors.New("category not found")
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryProtected = errors.New("default category can not be modified")
)

// CategoryService wraps category related operations.
type CategoryService struct {
	db *gorm.DB
}

// NewCategoryService creates a CategoryService instance.
func NewCategoryService(gdb *gorm.DB) *CategoryService {
	return &CategoryService{db: gdb}
}

// List returns all categories ordered by name.
func (s *CategoryService) List() ([]db.Category, error) {
	var categories []db.Category
	if err := s.db.Order("name asc").Order("id asc").Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// Get fetches a category by id.
func (s *CategoryService) Get(id uint) (*db.Category, error) {
	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category with unique name.
func (s *CategoryService) Create(name string) (*db.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var existing db.Category
	if err := s.db.Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category := db.Category{Name: name}
	if err := s.db.Create(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// Rename changes a category name while keeping uniqueness.
// 默认分类不可重命名。
func (s *CategoryService) Rename(id uint, name string) (*db.Category, error) {
	if id == db.DefaultCategoryID {
		return nil, ErrCategoryProtected
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("category name is required")
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	var existing db.Category
	if err := s.db.Where("name = ? AND id <> ?", name, id).First(&existing).Error; err == nil {
		return nil, ErrCategoryExists
	}

	category.Name = name
	if err := s.db.Save(&category).Error; err != nil {
		return nil, err
	}

	return &category, nil
}

// Delete removes a category after moving its posts into the default category.
// 归类迁移与删除在同一事务内完成，要么全部成功要么全部回滚。
func (s *CategoryService) Delete(id uint) error {
	if id == db.DefaultCategoryID {
		return ErrCategoryProtected
	}

	var category db.Category
	if err := s.db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&db.Post{}).
			Where("category_id = ?", id).
			Update("category_id", db.DefaultCategoryID).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&category).Error
	})
}

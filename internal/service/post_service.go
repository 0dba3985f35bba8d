package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var ErrPostNotFound = errors.New("post not found")

// PostService wraps post related database operations.
type PostService struct {
	db *gorm.DB
}

// PostInput represents fields accepted when creating or updating a post.
type PostInput struct {
	Title      string
	Body       string
	CategoryID uint
}

// PostListResult aggregates paginated list data and counters.
type PostListResult struct {
	Posts      []db.Post
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewPostService creates a PostService instance.
func NewPostService(gdb *gorm.DB) *PostService {
	return &PostService{db: gdb}
}

// List returns posts ordered by created time descending with pagination.
func (s *PostService) List(page, perPage int) (*PostListResult, error) {
	return s.list(func(query *gorm.DB) *gorm.DB { return query }, page, perPage)
}

// ListByCategory returns the paginated posts owned by one category.
func (s *PostService) ListByCategory(categoryID uint, page, perPage int) (*PostListResult, error) {
	var category db.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	scope := func(query *gorm.DB) *gorm.DB {
		return query.Where("category_id = ?", categoryID)
	}
	return s.list(scope, page, perPage)
}

// Get fetches a post by id with its category preloaded.
func (s *PostService) Get(id uint) (*db.Post, error) {
	var post db.Post
	if err := s.db.Preload("Category").First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// Create persists a new post under an existing category.
func (s *PostService) Create(input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("post title is required")
	}

	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	post := db.Post{
		Title:      title,
		Body:       input.Body,
		CanComment: true,
		CategoryID: categoryID,
	}
	if err := s.db.Create(&post).Error; err != nil {
		return nil, err
	}

	return s.Get(post.ID)
}

// Update applies updates to an existing post. 创建时间不随编辑变化。
func (s *PostService) Update(id uint, input PostInput) (*db.Post, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, errors.New("post title is required")
	}

	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	categoryID, err := s.resolveCategory(input.CategoryID)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Body = input.Body
	post.CategoryID = categoryID
	if err := s.db.Save(&post).Error; err != nil {
		return nil, err
	}

	return s.Get(post.ID)
}

// Delete removes a post together with all of its comments.
func (s *PostService) Delete(id uint) error {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("post_id = ?", id).Delete(&db.Comment{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&post).Error
	})
}

// ToggleComment flips the per-post comment gate and returns the new value.
// 已有评论不受影响，只限制后续提交。
func (s *PostService) ToggleComment(id uint) (bool, error) {
	var post db.Post
	if err := s.db.First(&post, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrPostNotFound
		}
		return false, err
	}

	next := !post.CanComment
	if err := s.db.Model(&post).Update("can_comment", next).Error; err != nil {
		return false, err
	}

	return next, nil
}

// Count returns the total number of posts.
func (s *PostService) Count() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Post{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (s *PostService) list(scope func(*gorm.DB) *gorm.DB, page, perPage int) (*PostListResult, error) {
	page, perPage = normalizePage(page, perPage)

	var total int64
	if err := scope(s.db.Model(&db.Post{})).Count(&total).Error; err != nil {
		return nil, err
	}

	var posts []db.Post
	if err := scope(s.db.Model(&db.Post{})).
		Preload("Category").
		Order("created_at desc").
		Order("id desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&posts).Error; err != nil {
		return nil, err
	}

	return &PostListResult{
		Posts:      posts,
		Total:      total,
		TotalPages: totalPages(total, perPage),
		Page:       page,
		PerPage:    perPage,
	}, nil
}

func (s *PostService) resolveCategory(categoryID uint) (uint, error) {
	if categoryID == 0 {
		return db.DefaultCategoryID, nil
	}

	var category db.Category
	if err := s.db.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrCategoryNotFound
		}
		return 0, err
	}
	return category.ID, nil
}

func normalizePage(page, perPage int) (int, int) {
	if page < 1 {
		page = 1
	}
	if perPage < 1 {
		perPage = 10
	}
	return page, perPage
}

func totalPages(total int64, perPage int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}

package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var ErrLinkNotFound = errors.New("link not found")

// LinkService wraps sidebar link operations.
type LinkService struct {
	db *gorm.DB
}

// NewLinkService creates a LinkService instance.
func NewLinkService(gdb *gorm.DB) *LinkService {
	return &LinkService{db: gdb}
}

// List returns all links ordered by creation.
func (s *LinkService) List() ([]db.Link, error) {
	var links []db.Link
	if err := s.db.Order("id asc").Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Create inserts a new sidebar link.
func (s *LinkService) Create(name, url string) (*db.Link, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return nil, errors.New("link name and url are required")
	}

	link := db.Link{Name: name, URL: url}
	if err := s.db.Create(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Update changes an existing link.
func (s *LinkService) Update(id uint, name, url string) (*db.Link, error) {
	name = strings.TrimSpace(name)
	url = strings.TrimSpace(url)
	if name == "" || url == "" {
		return nil, errors.New("link name and url are required")
	}

	var link db.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLinkNotFound
		}
		return nil, err
	}

	link.Name = name
	link.URL = url
	if err := s.db.Save(&link).Error; err != nil {
		return nil, err
	}
	return &link, nil
}

// Delete removes a link.
func (s *LinkService) Delete(id uint) error {
	var link db.Link
	if err := s.db.First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLinkNotFound
		}
		return err
	}
	return s.db.Unscoped().Delete(&link).Error
}

package handler

import (
	"github.com/inklog/internal/service"
	"gorm.io/gorm"
)

// 分页大小沿用公开页 10 篇、后台管理 15 条的约定。
const (
	postPerPage       = 10
	managePostPerPage = 15
	commentPerPage    = 15
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	admins     *service.AdminService
	posts      *service.PostService
	categories *service.CategoryService
	comments   *service.CommentService
	links      *service.LinkService
	uploadDir  string
	uploadURL  string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, notifier service.CommentNotifier, uploadDir, uploadURL string) *API {
	return &API{
		db:         gdb,
		admins:     service.NewAdminService(gdb),
		posts:      service.NewPostService(gdb),
		categories: service.NewCategoryService(gdb),
		comments:   service.NewCommentService(gdb, notifier),
		links:      service.NewLinkService(gdb),
		uploadDir:  uploadDir,
		uploadURL:  uploadURL,
	}
}

// DB exposes the underlying gorm instance for legacy paths.
func (a *API) DB() *gorm.DB {
	return a.db
}

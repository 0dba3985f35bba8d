package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inklog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPostServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:post-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestPostCreateDefaultsToDefaultCategory(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "Hello", Body: "body"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	if post.CategoryID != db.DefaultCategoryID {
		t.Fatalf("expected default category, got %d", post.CategoryID)
	}
	if !post.CanComment {
		t.Fatal("expected new post to allow comments")
	}
}

func TestPostCreateRejectsUnknownCategory(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{Title: "Hello", CategoryID: 42}); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestPostListOrdersByTimeDescending(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	old := db.Post{Title: "旧文章", CanComment: true, CategoryID: db.DefaultCategoryID}
	old.CreatedAt = time.Now().Add(-48 * time.Hour)
	recent := db.Post{Title: "新文章", CanComment: true, CategoryID: db.DefaultCategoryID}
	recent.CreatedAt = time.Now().Add(-1 * time.Hour)
	if err := gdb.Create(&old).Error; err != nil {
		t.Fatalf("seed old post: %v", err)
	}
	if err := gdb.Create(&recent).Error; err != nil {
		t.Fatalf("seed recent post: %v", err)
	}

	svc := NewPostService(gdb)
	result, err := svc.List(1, 10)
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}

	if len(result.Posts) != 2 {
		t.Fatalf("expected 2 posts, got %d", len(result.Posts))
	}
	if result.Posts[0].Title != "新文章" || result.Posts[1].Title != "旧文章" {
		t.Fatalf("unexpected order: %q then %q", result.Posts[0].Title, result.Posts[1].Title)
	}
}

func TestPostListPagination(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	for i := 0; i < 7; i++ {
		if _, err := svc.Create(PostInput{Title: fmt.Sprintf("post-%d", i)}); err != nil {
			t.Fatalf("create post %d: %v", i, err)
		}
	}

	page2, err := svc.List(2, 3)
	if err != nil {
		t.Fatalf("list page 2: %v", err)
	}

	if page2.Total != 7 {
		t.Fatalf("expected total 7, got %d", page2.Total)
	}
	if page2.TotalPages != 3 {
		t.Fatalf("expected 3 pages, got %d", page2.TotalPages)
	}
	if len(page2.Posts) != 3 {
		t.Fatalf("expected 3 posts on page 2, got %d", len(page2.Posts))
	}
}

func TestPostListByCategory(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	tech, err := NewCategoryService(gdb).Create("Tech")
	if err != nil {
		t.Fatalf("create category: %v", err)
	}

	svc := NewPostService(gdb)
	if _, err := svc.Create(PostInput{Title: "默认分类文章"}); err != nil {
		t.Fatalf("create post: %v", err)
	}
	if _, err := svc.Create(PostInput{Title: "技术文章", CategoryID: tech.ID}); err != nil {
		t.Fatalf("create post: %v", err)
	}

	result, err := svc.ListByCategory(tech.ID, 1, 10)
	if err != nil {
		t.Fatalf("list by category: %v", err)
	}
	if len(result.Posts) != 1 || result.Posts[0].Title != "技术文章" {
		t.Fatalf("expected only the tech post, got %d", len(result.Posts))
	}

	if _, err := svc.ListByCategory(999, 1, 10); !errors.Is(err, ErrCategoryNotFound) {
		t.Fatalf("expected ErrCategoryNotFound, got %v", err)
	}
}

func TestPostUpdateKeepsCreatedAt(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "原标题", Body: "原文"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}
	created := post.CreatedAt

	updated, err := svc.Update(post.ID, PostInput{Title: "新标题", Body: "新文", CategoryID: post.CategoryID})
	if err != nil {
		t.Fatalf("update post: %v", err)
	}

	if updated.Title != "新标题" {
		t.Fatalf("expected title updated, got %q", updated.Title)
	}
	if !updated.CreatedAt.Equal(created) {
		t.Fatalf("expected created time unchanged, got %v vs %v", updated.CreatedAt, created)
	}
}

func TestPostDeleteCascadesComments(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "带评论的文章"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	comments := NewCommentService(gdb, nil)
	parent, err := comments.Submit(CommentInput{PostID: post.ID, Author: "A", Body: "评论"})
	if err != nil {
		t.Fatalf("submit comment: %v", err)
	}
	if _, err := comments.Submit(CommentInput{PostID: post.ID, Author: "B", Body: "回复", RepliedID: &parent.ID}); err != nil {
		t.Fatalf("submit reply: %v", err)
	}

	if err := svc.Delete(post.ID); err != nil {
		t.Fatalf("delete post: %v", err)
	}

	var count int64
	if err := gdb.Model(&db.Comment{}).Where("post_id = ?", post.ID).Count(&count).Error; err != nil {
		t.Fatalf("count comments: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected all comments removed with the post, %d remain", count)
	}

	if _, err := svc.Get(post.ID); !errors.Is(err, ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostToggleCommentGate(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "开关测试"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	enabled, err := svc.ToggleComment(post.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if enabled {
		t.Fatal("expected gate closed after first toggle")
	}

	enabled, err = svc.ToggleComment(post.ID)
	if err != nil {
		t.Fatalf("toggle back: %v", err)
	}
	if !enabled {
		t.Fatal("expected gate reopened after second toggle")
	}
}

func TestPostToggleCommentKeepsExistingComments(t *testing.T) {
	gdb, cleanup := setupPostServiceTestDB(t)
	defer cleanup()

	svc := NewPostService(gdb)
	post, err := svc.Create(PostInput{Title: "开关测试"})
	if err != nil {
		t.Fatalf("create post: %v", err)
	}

	comments := NewCommentService(gdb, nil)
	existing, err := comments.Submit(CommentInput{PostID: post.ID, Author: "A", Body: "早到的评论"})
	if err != nil {
		t.Fatalf("submit comment: %v", err)
	}
	if err := comments.Approve(existing.ID); err != nil {
		t.Fatalf("approve comment: %v", err)
	}

	if _, err := svc.ToggleComment(post.ID); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	result, err := comments.ListForPost(post.ID, false, 1, 10)
	if err != nil {
		t.Fatalf("list comments: %v", err)
	}
	if len(result.Comments) != 1 {
		t.Fatalf("expected existing comment untouched by the gate, got %d", len(result.Comments))
	}
}

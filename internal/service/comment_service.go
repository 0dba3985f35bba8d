package service

import (
	"errors"
	"strings"

	"github.com/inklog/internal/db"
	"gorm.io/gorm"
)

var (
	ErrCommentNotFound    = errors.New("comment not found")
	ErrCommentingDisabled = errors.New("commenting is disabled for this post")
	ErrInvalidReplyTarget = errors.New("reply target belongs to a different post")
)

// CommentNotifier 接收评论事件并异步通知相关人，由 mailer 包实现。
type CommentNotifier interface {
	NotifyNewComment(post *db.Post)
	NotifyNewReply(post *db.Post, replied *db.Comment)
}

// CommentService 负责评论的提交、审核与回复树维护。
type CommentService struct {
	db       *gorm.DB
	notifier CommentNotifier
}

// CommentInput represents fields accepted when submitting a comment.
type CommentInput struct {
	PostID    uint
	Author    string
	Email     string
	Site      string
	Body      string
	FromAdmin bool
	RepliedID *uint
}

// CommentListResult aggregates paginated comment list data.
type CommentListResult struct {
	Comments   []db.Comment
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewCommentService creates a CommentService instance. notifier 可以为 nil。
func NewCommentService(gdb *gorm.DB, notifier CommentNotifier) *CommentService {
	return &CommentService{db: gdb, notifier: notifier}
}

// Submit 在指定文章下创建评论。管理员评论直接视为已审核。
// 每次成功提交最多触发一个通知事件：回复通知被回复者，
// 否则非管理员评论通知博主，管理员的顶层评论不通知任何人。
func (s *CommentService) Submit(input CommentInput) (*db.Comment, error) {
	author := strings.TrimSpace(input.Author)
	if author == "" {
		return nil, errors.New("comment author is required")
	}
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, errors.New("comment body is required")
	}

	var post db.Post
	if err := s.db.First(&post, input.PostID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	if !post.CanComment {
		return nil, ErrCommentingDisabled
	}

	var replied *db.Comment
	if input.RepliedID != nil {
		var target db.Comment
		if err := s.db.First(&target, *input.RepliedID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCommentNotFound
			}
			return nil, err
		}
		if target.PostID != post.ID {
			return nil, ErrInvalidReplyTarget
		}
		replied = &target
	}

	comment := db.Comment{
		Author:    author,
		Email:     strings.TrimSpace(input.Email),
		Site:      strings.TrimSpace(input.Site),
		Body:      body,
		FromAdmin: input.FromAdmin,
		Reviewed:  input.FromAdmin,
		PostID:    post.ID,
		RepliedID: input.RepliedID,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, err
	}

	if s.notifier != nil {
		switch {
		case replied != nil:
			s.notifier.NotifyNewReply(&post, replied)
		case !input.FromAdmin:
			s.notifier.NotifyNewComment(&post)
		}
	}

	return &comment, nil
}

// Approve 将评论标记为已审核，对已审核的评论重复调用是无害的空操作。
func (s *CommentService) Approve(id uint) error {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	if comment.Reviewed {
		return nil
	}

	return s.db.Model(&comment).Update("reviewed", true).Error
}

// Delete 删除评论及其整棵回复子树。
// 先按 replied_id 逐层收集完整的删除集合，再在一个事务中一次性删除。
func (s *CommentService) Delete(id uint) error {
	var comment db.Comment
	if err := s.db.First(&comment, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	ids, err := s.collectReplyTree(comment.ID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Unscoped().Where("id IN ?", ids).Delete(&db.Comment{}).Error
	})
}

// ListForPost returns the paginated comments of one post ordered by time
// descending. 未审核评论只对管理员可见。
func (s *CommentService) ListForPost(postID uint, includeUnreviewed bool, page, perPage int) (*CommentListResult, error) {
	var post db.Post
	if err := s.db.First(&post, postID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}

	scope := func(query *gorm.DB) *gorm.DB {
		query = query.Where("post_id = ?", postID)
		if !includeUnreviewed {
			query = query.Where("reviewed = ?", true)
		}
		return query
	}

	return s.list(scope, false, page, perPage)
}

// ListAll returns comments across all posts for the admin panel.
// filter 取值 all、unread、admin，与后台筛选一致。
func (s *CommentService) ListAll(filter string, page, perPage int) (*CommentListResult, error) {
	scope := func(query *gorm.DB) *gorm.DB {
		switch filter {
		case "unread":
			return query.Where("reviewed = ?", false)
		case "admin":
			return query.Where("from_admin = ?", true)
		}
		return query
	}

	return s.list(scope, true, page, perPage)
}

// CountUnread returns the number of comments awaiting review.
func (s *CommentService) CountUnread() (int64, error) {
	var count int64
	if err := s.db.Model(&db.Comment{}).Where("reviewed = ?", false).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// collectReplyTree 自根评论开始按 id 广度优先遍历回复边，返回整棵子树的 id 集合。
func (s *CommentService) collectReplyTree(rootID uint) ([]uint, error) {
	all := []uint{rootID}
	frontier := []uint{rootID}

	for len(frontier) > 0 {
		var childIDs []uint
		if err := s.db.Model(&db.Comment{}).
			Where("replied_id IN ?", frontier).
			Pluck("id", &childIDs).Error; err != nil {
			return nil, err
		}

		all = append(all, childIDs...)
		frontier = childIDs
	}

	return all, nil
}

func (s *CommentService) list(scope func(*gorm.DB) *gorm.DB, withPost bool, page, perPage int) (*CommentListResult, error) {
	page, perPage = normalizePage(page, perPage)

	var total int64
	if err := scope(s.db.Model(&db.Comment{})).Count(&total).Error; err != nil {
		return nil, err
	}

	dataQuery := scope(s.db.Model(&db.Comment{}))
	if withPost {
		dataQuery = dataQuery.Preload("Post")
	}

	var comments []db.Comment
	if err := dataQuery.
		Order("created_at desc").
		Order("id desc").
		Offset((page - 1) * perPage).
		Limit(perPage).
		Find(&comments).Error; err != nil {
		return nil, err
	}

	return &CommentListResult{
		Comments:   comments,
		Total:      total,
		TotalPages: totalPages(total, perPage),
		Page:       page,
		PerPage:    perPage,
	}, nil
}

package handler

import (
	"bytes"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/service"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	postSanitizer    = bluemonday.UGCPolicy()
	commentSanitizer = bluemonday.StrictPolicy()
)

// renderMarkdown 将文章正文渲染为净化后的 HTML。
func renderMarkdown(body string) string {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(body), &buf); err != nil {
		return postSanitizer.Sanitize(body)
	}
	return postSanitizer.Sanitize(buf.String())
}

// ShowHome 返回首页的分页文章列表
func (a *API) ShowHome(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	result, err := a.posts.List(page, postPerPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      postListView(result.Posts),
		"pagination": paginationView(result.Page, result.PerPage, result.Total, result.TotalPages),
	})
}

// ShowCategory 返回单个分类下的分页文章列表
func (a *API) ShowCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	category, err := a.categories.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusNotFound, "分类不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取分类失败")
		return
	}

	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	result, err := a.posts.ListByCategory(id, page, postPerPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":   gin.H{"id": category.ID, "name": category.Name},
		"posts":      postListView(result.Posts),
		"pagination": paginationView(result.Page, result.PerPage, result.Total, result.TotalPages),
	})
}

// ShowPost 返回文章详情与它的分页评论，未审核评论只对管理员可见
func (a *API) ShowPost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	post, err := a.posts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取文章失败")
		return
	}

	privileged := isAuthenticated(c)
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)
	comments, err := a.comments.ListForPost(id, privileged, page, commentPerPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"post": gin.H{
			"id":         post.ID,
			"title":      post.Title,
			"body":       renderMarkdown(post.Body),
			"canComment": post.CanComment,
			"category":   gin.H{"id": post.Category.ID, "name": post.Category.Name},
			"createdAt":  post.CreatedAt,
		},
		"comments":   commentListView(comments.Comments, privileged),
		"pagination": paginationView(comments.Page, comments.PerPage, comments.Total, comments.TotalPages),
	})
}

type commentRequest struct {
	Author string `json:"author"`
	Email  string `json:"email"`
	Site   string `json:"site"`
	Body   string `json:"body" binding:"required"`
}

// SubmitComment 提交评论或回复。
// 管理员会话下以博主身份发布并直接通过审核，访客评论进入待审核队列。
func (a *API) SubmitComment(c *gin.Context) {
	postID, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	repliedID, err := parseOptionalUintQuery(c, "reply")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的回复目标")
		return
	}

	var req commentRequest
	if !bindJSON(c, &req, "评论内容不能为空") {
		return
	}

	input := service.CommentInput{
		PostID:    postID,
		Author:    req.Author,
		Email:     req.Email,
		Site:      req.Site,
		Body:      req.Body,
		RepliedID: repliedID,
	}

	if isAuthenticated(c) {
		admin, err := a.admins.Profile()
		if err != nil {
			respondError(c, http.StatusInternalServerError, "获取博主信息失败")
			return
		}
		input.FromAdmin = true
		input.Author = admin.Name
		if strings.TrimSpace(input.Author) == "" {
			input.Author = admin.Username
		}
		input.Email = ""
		input.Site = "/"
	}

	comment, err := a.comments.Submit(input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		case errors.Is(err, service.ErrCommentingDisabled):
			respondError(c, http.StatusForbidden, "该文章已关闭评论")
		case errors.Is(err, service.ErrCommentNotFound):
			respondError(c, http.StatusNotFound, "被回复的评论不存在")
		case errors.Is(err, service.ErrInvalidReplyTarget):
			respondError(c, http.StatusBadRequest, "不能回复其他文章下的评论")
		default:
			respondError(c, http.StatusBadRequest, "评论提交失败")
		}
		return
	}

	message := "感谢您的评论，审核通过后将会显示。"
	if comment.FromAdmin {
		message = "评论已发布。"
	}

	c.JSON(http.StatusOK, gin.H{"message": message, "comment": commentView(comment, comment.FromAdmin)})
}

// ShowAbout 返回博主的关于页内容
func (a *API) ShowAbout(c *gin.Context) {
	admin, err := a.admins.Profile()
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, http.StatusNotFound, "博主信息尚未初始化")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取博主信息失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name":         admin.Name,
		"blogTitle":    admin.BlogTitle,
		"blogSubTitle": admin.BlogSubTitle,
		"about":        renderMarkdown(admin.About),
	})
}

// GetPublicCategories 返回侧边栏使用的分类列表
func (a *API) GetPublicCategories(c *gin.Context) {
	categories, err := a.categories.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取分类列表失败")
		return
	}

	response := make([]gin.H, 0, len(categories))
	for _, category := range categories {
		response = append(response, gin.H{"id": category.ID, "name": category.Name})
	}

	c.JSON(http.StatusOK, gin.H{"categories": response})
}

// GetPublicLinks 返回侧边栏友情链接
func (a *API) GetPublicLinks(c *gin.Context) {
	links, err := a.links.List()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取链接列表失败")
		return
	}

	response := make([]gin.H, 0, len(links))
	for _, link := range links {
		response = append(response, gin.H{"id": link.ID, "name": link.Name, "url": link.URL})
	}

	c.JSON(http.StatusOK, gin.H{"links": response})
}

func postListView(posts []db.Post) []gin.H {
	response := make([]gin.H, 0, len(posts))
	for _, post := range posts {
		response = append(response, gin.H{
			"id":        post.ID,
			"title":     post.Title,
			"category":  gin.H{"id": post.Category.ID, "name": post.Category.Name},
			"createdAt": post.CreatedAt,
		})
	}
	return response
}

func commentListView(comments []db.Comment, privileged bool) []gin.H {
	response := make([]gin.H, 0, len(comments))
	for i := range comments {
		response = append(response, commentView(&comments[i], privileged))
	}
	return response
}

func commentView(comment *db.Comment, privileged bool) gin.H {
	view := gin.H{
		"id":        comment.ID,
		"author":    comment.Author,
		"site":      comment.Site,
		"body":      commentSanitizer.Sanitize(comment.Body),
		"fromAdmin": comment.FromAdmin,
		"createdAt": comment.CreatedAt,
	}
	if comment.RepliedID != nil {
		view["repliedId"] = *comment.RepliedID
	}
	if privileged {
		view["email"] = comment.Email
		view["reviewed"] = comment.Reviewed
	}
	return view
}

func paginationView(page, perPage int, total int64, totalPages int) gin.H {
	return gin.H{
		"page":       page,
		"perPage":    perPage,
		"total":      total,
		"totalPages": totalPages,
	}
}

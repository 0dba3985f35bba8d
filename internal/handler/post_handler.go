package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type postRequest struct {
	Title      string `json:"title" binding:"required"`
	Body       string `json:"body"`
	CategoryID uint   `json:"categoryId"`
}

// GetPosts 返回后台文章管理列表
func (a *API) GetPosts(c *gin.Context) {
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	result, err := a.posts.List(page, managePostPerPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取文章列表失败")
		return
	}

	response := make([]gin.H, 0, len(result.Posts))
	for _, post := range result.Posts {
		response = append(response, gin.H{
			"id":         post.ID,
			"title":      post.Title,
			"canComment": post.CanComment,
			"category":   gin.H{"id": post.Category.ID, "name": post.Category.Name},
			"createdAt":  post.CreatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":      response,
		"pagination": paginationView(result.Page, result.PerPage, result.Total, result.TotalPages),
	})
}

// GetPost 返回单篇文章的编辑数据
func (a *API) GetPost(c *gin.Context) {
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

	c.JSON(http.StatusOK, gin.H{
		"post": gin.H{
			"id":         post.ID,
			"title":      post.Title,
			"body":       post.Body,
			"canComment": post.CanComment,
			"categoryId": post.CategoryID,
			"createdAt":  post.CreatedAt,
		},
	})
}

// CreatePost 创建新文章
func (a *API) CreatePost(c *gin.Context) {
	var req postRequest
	if !bindJSON(c, &req, "文章标题不能为空") {
		return
	}

	post, err := a.posts.Create(service.PostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		if errors.Is(err, service.ErrCategoryNotFound) {
			respondError(c, http.StatusBadRequest, "所选分类不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章创建成功", "id": post.ID})
}

// UpdatePost 更新文章
func (a *API) UpdatePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	var req postRequest
	if !bindJSON(c, &req, "文章标题不能为空") {
		return
	}

	post, err := a.posts.Update(id, service.PostInput{
		Title:      req.Title,
		Body:       req.Body,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			respondError(c, http.StatusNotFound, "文章不存在")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusBadRequest, "所选分类不存在")
		default:
			respondError(c, http.StatusInternalServerError, "更新文章失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章更新成功", "id": post.ID})
}

// DeletePost 删除文章及其全部评论
func (a *API) DeletePost(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	if err := a.posts.Delete(id); err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除文章失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "文章删除成功"})
}

// ToggleComment 开关单篇文章的评论功能
func (a *API) ToggleComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的文章ID")
		return
	}

	enabled, err := a.posts.ToggleComment(id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			respondError(c, http.StatusNotFound, "文章不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "操作失败")
		return
	}

	message := "评论已关闭"
	if enabled {
		message = "评论已开启"
	}
	c.JSON(http.StatusOK, gin.H{"message": message, "canComment": enabled})
}

package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

// GetComments 返回后台评论管理列表，支持 all、unread、admin 三种筛选
func (a *API) GetComments(c *gin.Context) {
	filter := c.DefaultQuery("filter", "all")
	page := parsePositiveInt(c.DefaultQuery("page", "1"), 1)

	result, err := a.comments.ListAll(filter, page, commentPerPage)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取评论列表失败")
		return
	}

	response := make([]gin.H, 0, len(result.Comments))
	for i := range result.Comments {
		comment := &result.Comments[i]
		view := commentView(comment, true)
		view["post"] = gin.H{"id": comment.Post.ID, "title": comment.Post.Title}
		response = append(response, view)
	}

	c.JSON(http.StatusOK, gin.H{
		"comments":   response,
		"pagination": paginationView(result.Page, result.PerPage, result.Total, result.TotalPages),
	})
}

// ApproveComment 审核通过评论，重复审核不报错
func (a *API) ApproveComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := a.comments.Approve(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "评论不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "审核评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论已通过审核"})
}

// DeleteComment 删除评论及其整棵回复树
func (a *API) DeleteComment(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的评论ID")
		return
	}

	if err := a.comments.Delete(id); err != nil {
		if errors.Is(err, service.ErrCommentNotFound) {
			respondError(c, http.StatusNotFound, "评论不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除评论失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "评论删除成功"})
}

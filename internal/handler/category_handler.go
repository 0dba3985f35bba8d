package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type categoryRequest struct {
	Name string `json:"name" binding:"required"`
}

// GetCategories 返回后台分类管理列表
func (a *API) GetCategories(c *gin.Context) {
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

// CreateCategory 创建新分类
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}

	category, err := a.categories.Create(req.Name)
	if err != nil {
		if errors.Is(err, service.ErrCategoryExists) {
			respondError(c, http.StatusBadRequest, "分类已存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "创建分类失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类创建成功", "category": gin.H{"id": category.ID, "name": category.Name}})
}

// UpdateCategory 重命名分类，默认分类受保护
func (a *API) UpdateCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	var req categoryRequest
	if !bindJSON(c, &req, "分类名称不能为空") {
		return
	}

	category, err := a.categories.Rename(id, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryProtected):
			respondError(c, http.StatusForbidden, "默认分类不能修改")
		case errors.Is(err, service.ErrCategoryExists):
			respondError(c, http.StatusBadRequest, "分类名已存在")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "分类不存在")
		default:
			respondError(c, http.StatusInternalServerError, "更新分类失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类更新成功", "category": gin.H{"id": category.ID, "name": category.Name}})
}

// DeleteCategory 删除分类，原有文章迁入默认分类
func (a *API) DeleteCategory(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的分类ID")
		return
	}

	if err := a.categories.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrCategoryProtected):
			respondError(c, http.StatusForbidden, "默认分类不能删除")
		case errors.Is(err, service.ErrCategoryNotFound):
			respondError(c, http.StatusNotFound, "分类不存在")
		default:
			respondError(c, http.StatusInternalServerError, "删除分类失败")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分类删除成功"})
}

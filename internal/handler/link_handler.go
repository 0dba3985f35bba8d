package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type linkRequest struct {
	Name string `json:"name" binding:"required"`
	URL  string `json:"url" binding:"required"`
}

// GetLinks 返回后台链接管理列表
func (a *API) GetLinks(c *gin.Context) {
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

// CreateLink 创建友情链接
func (a *API) CreateLink(c *gin.Context) {
	var req linkRequest
	if !bindJSON(c, &req, "链接名称和地址不能为空") {
		return
	}

	link, err := a.links.Create(req.Name, req.URL)
	if err != nil {
		respondError(c, http.StatusBadRequest, "创建链接失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "链接创建成功", "link": gin.H{"id": link.ID, "name": link.Name, "url": link.URL}})
}

// UpdateLink 更新友情链接
func (a *API) UpdateLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	var req linkRequest
	if !bindJSON(c, &req, "链接名称和地址不能为空") {
		return
	}

	link, err := a.links.Update(id, req.Name, req.URL)
	if err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			respondError(c, http.StatusNotFound, "链接不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新链接失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "链接更新成功", "link": gin.H{"id": link.ID, "name": link.Name, "url": link.URL}})
}

// DeleteLink 删除友情链接
func (a *API) DeleteLink(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "无效的链接ID")
		return
	}

	if err := a.links.Delete(id); err != nil {
		if errors.Is(err, service.ErrLinkNotFound) {
			respondError(c, http.StatusNotFound, "链接不存在")
			return
		}
		respondError(c, http.StatusInternalServerError, "删除链接失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "链接删除成功"})
}

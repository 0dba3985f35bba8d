package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

type settingsRequest struct {
	Name         string `json:"name"`
	BlogTitle    string `json:"blogTitle" binding:"required"`
	BlogSubTitle string `json:"blogSubTitle"`
	About        string `json:"about"`
}

// GetSettings 返回当前站点设置
func (a *API) GetSettings(c *gin.Context) {
	admin, err := a.admins.Profile()
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, http.StatusNotFound, "博主信息尚未初始化")
			return
		}
		respondError(c, http.StatusInternalServerError, "获取设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"settings": gin.H{
			"name":         admin.Name,
			"blogTitle":    admin.BlogTitle,
			"blogSubTitle": admin.BlogSubTitle,
			"about":        admin.About,
		},
	})
}

// UpdateSettings 更新站点设置
func (a *API) UpdateSettings(c *gin.Context) {
	var req settingsRequest
	if !bindJSON(c, &req, "博客标题不能为空") {
		return
	}

	admin, err := a.admins.UpdateSettings(service.SettingsInput{
		Name:         req.Name,
		BlogTitle:    req.BlogTitle,
		BlogSubTitle: req.BlogSubTitle,
		About:        req.About,
	})
	if err != nil {
		if errors.Is(err, service.ErrAdminNotFound) {
			respondError(c, http.StatusNotFound, "博主信息尚未初始化")
			return
		}
		respondError(c, http.StatusInternalServerError, "更新设置失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "设置已更新",
		"settings": gin.H{
			"name":         admin.Name,
			"blogTitle":    admin.BlogTitle,
			"blogSubTitle": admin.BlogSubTitle,
			"about":        admin.About,
		},
	})
}

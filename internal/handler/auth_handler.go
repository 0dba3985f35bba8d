package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/service"
)

const sessionAdminIDKey = "admin_id"

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login 处理管理员登录请求
func (a *API) Login(c *gin.Context) {
	var req loginRequest
	if !bindJSON(c, &req, "用户名和密码不能为空") {
		return
	}

	admin, err := a.admins.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "用户名或密码错误")
			return
		}
		respondError(c, http.StatusInternalServerError, "登录失败")
		return
	}

	session := sessions.Default(c)
	session.Set(sessionAdminIDKey, admin.ID)
	session.Set("username", admin.Username)
	if err := session.Save(); err != nil {
		respondError(c, http.StatusInternalServerError, "会话保存失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "登录成功", "username": admin.Username})
}

// Logout 处理管理员登出
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	_ = session.Save()
	c.JSON(http.StatusOK, gin.H{"message": "已登出"})
}

// Dashboard 返回后台概览统计
func (a *API) Dashboard(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")

	postCount, err := a.posts.Count()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	unreadComments, err := a.comments.CountUnread()
	if err != nil {
		respondError(c, http.StatusInternalServerError, "获取统计数据失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username":       username,
		"postCount":      postCount,
		"unreadComments": unreadComments,
	})
}

// AuthRequired 是一个简单的认证中间件
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		adminID := session.Get(sessionAdminIDKey)
		if adminID == nil {
			respondError(c, http.StatusUnauthorized, "请先登录")
			c.Abort()
			return
		}
		c.Next()
	}
}

// isAuthenticated 判断当前请求是否携带有效的管理员会话。
func isAuthenticated(c *gin.Context) bool {
	session := sessions.Default(c)
	return session.Get(sessionAdminIDKey) != nil
}

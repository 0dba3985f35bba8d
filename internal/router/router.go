package router

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/handler"
)

// Setup 配置 Gin 引擎和路由
func Setup(api *handler.API, sessionSecret, uploadDir string) *gin.Engine {
	r := gin.Default()

	// 配置会话中间件
	store := cookie.NewStore([]byte(sessionSecret))
	r.Use(sessions.Sessions("inklog_session", store))

	// 上传文件的静态访问
	r.Static("/static/uploads", uploadDir)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// 公开路由
	r.GET("/", api.ShowHome)
	r.GET("/about", api.ShowAbout)
	r.GET("/category/:id", api.ShowCategory)
	r.GET("/post/:id", api.ShowPost)
	r.POST("/post/:id/comments", api.SubmitComment)
	r.GET("/categories", api.GetPublicCategories)
	r.GET("/links", api.GetPublicLinks)

	// 后台管理路由
	admin := r.Group("/admin")
	{
		admin.POST("/login", api.Login)
		admin.GET("/logout", api.Logout)

		// 需要认证的后台路由
		auth := admin.Group("")
		auth.Use(handler.AuthRequired())
		{
			auth.GET("/dashboard", api.Dashboard)

			// API路由
			apiGroup := auth.Group("/api")
			{
				apiGroup.GET("/settings", api.GetSettings)
				apiGroup.PUT("/settings", api.UpdateSettings)

				apiGroup.GET("/posts", api.GetPosts)
				apiGroup.GET("/posts/:id", api.GetPost)
				apiGroup.POST("/posts", api.CreatePost)
				apiGroup.PUT("/posts/:id", api.UpdatePost)
				apiGroup.DELETE("/posts/:id", api.DeletePost)
				apiGroup.POST("/posts/:id/toggle-comment", api.ToggleComment)

				apiGroup.GET("/categories", api.GetCategories)
				apiGroup.POST("/categories", api.CreateCategory)
				apiGroup.PUT("/categories/:id", api.UpdateCategory)
				apiGroup.DELETE("/categories/:id", api.DeleteCategory)

				apiGroup.GET("/comments", api.GetComments)
				apiGroup.POST("/comments/:id/approve", api.ApproveComment)
				apiGroup.DELETE("/comments/:id", api.DeleteComment)

				apiGroup.GET("/links", api.GetLinks)
				apiGroup.POST("/links", api.CreateLink)
				apiGroup.PUT("/links/:id", api.UpdateLink)
				apiGroup.DELETE("/links/:id", api.DeleteLink)

				apiGroup.POST("/uploads", api.UploadImage)
			}
		}
	}

	return r
}

package main

import (
	"fmt"
	"log"

	"github.com/inklog/internal/config"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/service"
)

// 测试数据生成器
func main() {
	cfg := config.Load()
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal("数据库初始化失败:", err)
	}

	fmt.Println("开始生成测试数据...")

	if err := db.EnsureAdmin("admin", "inklog123"); err != nil {
		log.Fatal("创建管理员失败:", err)
	}

	createCategories()
	createPosts()
	createComments()
	createLinks()

	fmt.Println("测试数据生成完成！")
	fmt.Println("管理员: admin (密码: inklog123)")
}

func createCategories() {
	categories := service.NewCategoryService(db.DB)
	for _, name := range []string{"技术", "生活", "思考", "教程"} {
		if _, err := categories.Create(name); err != nil {
			if err == service.ErrCategoryExists {
				continue
			}
			log.Fatal("创建分类失败:", err)
		}
	}
}

func createPosts() {
	posts := service.NewPostService(db.DB)
	samples := []service.PostInput{
		{Title: "你好，Inklog", Body: "# 欢迎\n\n这是第一篇示例文章。", CategoryID: db.DefaultCategoryID},
		{Title: "Go 里的错误处理", Body: "错误是值，围绕它设计程序。", CategoryID: 2},
		{Title: "一周小结", Body: "记录本周的所见所想。", CategoryID: 3},
	}

	for _, input := range samples {
		if _, err := posts.Create(input); err != nil {
			log.Fatal("创建文章失败:", err)
		}
	}
}

func createComments() {
	comments := service.NewCommentService(db.DB, nil)

	first, err := comments.Submit(service.CommentInput{
		PostID: 1,
		Author: "访客甲",
		Email:  "guest@example.com",
		Site:   "https://example.com",
		Body:   "写得不错，期待更新！",
	})
	if err != nil {
		log.Fatal("创建评论失败:", err)
	}
	if err := comments.Approve(first.ID); err != nil {
		log.Fatal("审核评论失败:", err)
	}

	if _, err := comments.Submit(service.CommentInput{
		PostID:    1,
		Author:    "博主",
		Body:      "谢谢支持。",
		FromAdmin: true,
		RepliedID: &first.ID,
	}); err != nil {
		log.Fatal("创建回复失败:", err)
	}

	if _, err := comments.Submit(service.CommentInput{
		PostID: 2,
		Author: "访客乙",
		Email:  "another@example.com",
		Body:   "有个问题想请教一下。",
	}); err != nil {
		log.Fatal("创建评论失败:", err)
	}
}

func createLinks() {
	links := service.NewLinkService(db.DB)
	for _, entry := range [][2]string{
		{"Go 官网", "https://go.dev"},
		{"Gin", "https://gin-gonic.com"},
	} {
		if _, err := links.Create(entry[0], entry[1]); err != nil {
			log.Fatal("创建链接失败:", err)
		}
	}
}

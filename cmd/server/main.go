package main

import (
	"os"

	"github.com/gin-gonic/gin"
	"github.com/inklog/internal/config"
	"github.com/inklog/internal/db"
	"github.com/inklog/internal/handler"
	"github.com/inklog/internal/mailer"
	"github.com/inklog/internal/router"
	"github.com/rs/zerolog"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 初始化数据库
	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Msg("failed to initialize database")
	}

	// 根据环境变量引导管理员账号
	if err := db.EnsureAdmin(cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure admin account")
	}

	// 启动异步邮件通知
	sender := mailer.NewSMTPSender(cfg.MailHost, cfg.MailPort, cfg.MailUsername, cfg.MailPassword, cfg.MailFrom)
	notifier := mailer.NewNotifier(sender, cfg.SiteBaseURL, cfg.OperatorEmail)
	defer notifier.Close()

	// 设置并运行 Gin 服务器
	api := handler.NewAPI(db.DB, notifier, cfg.UploadDir, cfg.UploadURLPath)
	r := router.Setup(api, cfg.SessionSecret, cfg.UploadDir)
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to run server")
	}
}

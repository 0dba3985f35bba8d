package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	SessionSecret string
	GinMode       string
	UploadDir     string
	UploadURLPath string
	AdminUsername string
	AdminPassword string
	SiteBaseURL   string

	// 邮件通知相关配置，OperatorEmail 为新评论通知的收件人。
	MailHost      string
	MailPort      int
	MailUsername  string
	MailPassword  string
	MailFrom      string
	OperatorEmail string
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若工作目录存在 .env 文件会先行加载。
func Load() AppConfig {
	_ = godotenv.Load()

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "inklog.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "inklog-dev-secret"
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	siteBaseURL := strings.TrimSpace(os.Getenv("SITE_BASE_URL"))
	if siteBaseURL == "" {
		siteBaseURL = "http://localhost:8080"
	}
	siteBaseURL = strings.TrimRight(siteBaseURL, "/")

	mailPort := 465
	if raw := strings.TrimSpace(os.Getenv("MAIL_PORT")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			mailPort = parsed
		}
	}

	mailUsername := strings.TrimSpace(os.Getenv("MAIL_USERNAME"))
	mailFrom := strings.TrimSpace(os.Getenv("MAIL_FROM"))
	if mailFrom == "" {
		mailFrom = mailUsername
	}

	operatorEmail := strings.TrimSpace(os.Getenv("OPERATOR_EMAIL"))
	if operatorEmail == "" {
		operatorEmail = mailUsername
	}

	return AppConfig{
		ListenAddr:    listenAddr,
		Port:          port,
		DatabasePath:  databasePath,
		SessionSecret: sessionSecret,
		GinMode:       ginMode,
		UploadDir:     uploadDir,
		UploadURLPath: uploadURLPath,
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		SiteBaseURL:   siteBaseURL,
		MailHost:      strings.TrimSpace(os.Getenv("MAIL_HOST")),
		MailPort:      mailPort,
		MailUsername:  mailUsername,
		MailPassword:  os.Getenv("MAIL_PASSWORD"),
		MailFrom:      mailFrom,
		OperatorEmail: operatorEmail,
	}
}

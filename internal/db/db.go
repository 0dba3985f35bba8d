package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// DB 是一个全局的数据库连接实例
var DB *gorm.DB

// DefaultCategoryID 是默认分类的固定主键，该分类在引导时创建且不可删除。
const DefaultCategoryID uint = 1

// Init 初始化数据库连接并执行自动迁移。
// databasePath 为空时将回退到默认值 inklog.db。
func Init(databasePath string) error {
	path := strings.TrimSpace(databasePath)
	if path == "" {
		path = "inklog.db"
	}

	if err := ensureParentDir(path); err != nil {
		return err
	}

	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return err
	}

	return Migrate(DB)
}

// Migrate 为核心模型创建表并确保默认分类存在。
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&Admin{},
		&Category{},
		&Post{},
		&Comment{},
		&Link{},
	); err != nil {
		return err
	}

	return EnsureDefaultCategory(gdb)
}

// EnsureDefaultCategory 保证主键为 1 的默认分类存在，删除其他分类时文章会归入这里。
func EnsureDefaultCategory(gdb *gorm.DB) error {
	var category Category
	err := gdb.First(&category, DefaultCategoryID).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	category = Category{Name: "Default"}
	category.ID = DefaultCategoryID
	return gdb.Create(&category).Error
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}

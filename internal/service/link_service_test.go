package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/inklog/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupLinkServiceTestDB(t *testing.T) (*gorm.DB, func()) {
	t.Helper()

	dsn := fmt.Sprintf("file:link-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}

	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	return gdb, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			_ = sqlDB.Close()
		}
	}
}

func TestLinkCRUD(t *testing.T) {
	gdb, cleanup := setupLinkServiceTestDB(t)
	defer cleanup()

	svc := NewLinkService(gdb)

	link, err := svc.Create("Go 官网", "https://go.dev")
	if err != nil {
		t.Fatalf("create link: %v", err)
	}

	updated, err := svc.Update(link.ID, "Gin", "https://gin-gonic.com")
	if err != nil {
		t.Fatalf("update link: %v", err)
	}
	if updated.Name != "Gin" || updated.URL != "https://gin-gonic.com" {
		t.Fatalf("unexpected link %+v", updated)
	}

	links, err := svc.List()
	if err != nil {
		t.Fatalf("list links: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected 1 link, got %d", len(links))
	}

	if err := svc.Delete(link.ID); err != nil {
		t.Fatalf("delete link: %v", err)
	}
	if err := svc.Delete(link.ID); !errors.Is(err, ErrLinkNotFound) {
		t.Fatalf("expected ErrLinkNotFound, got %v", err)
	}
}

func TestLinkCreateRequiresFields(t *testing.T) {
	gdb, cleanup := setupLinkServiceTestDB(t)
	defer cleanup()

	svc := NewLinkService(gdb)
	if _, err := svc.Create("", "https://go.dev"); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := svc.Create("Go", "  "); err == nil {
		t.Fatal("expected error for empty url")
	}
}

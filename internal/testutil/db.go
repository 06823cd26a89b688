package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"attrition-go/internal/config"
	"attrition-go/internal/database"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UseSQLiteDB points database.DB at a fresh, migrated in-memory SQLite
// database for the duration of the test.
func UseSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conf := config.DatabaseConfig{
		Driver:   "sqlite",
		Path:     fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, time.Now().UnixNano()),
		LogLevel: "silent",
	}
	log := zap.NewNop()

	db, err := database.Connect(conf, log)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := database.Migrate(db, log); err != nil {
		t.Fatalf("migrate sqlite: %v", err)
	}

	previous := database.DB
	database.DB = db
	t.Cleanup(func() {
		database.DB = previous
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

// Package testdb opens throwaway in-memory SQLite databases with the
// application schema applied.
package testdb

import (
	"fmt"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/models/migrations"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open returns a migrated database private to t. The pool is pinned to one
// connection because every connection to ":memory:" is a separate database.
func Open(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("testdb: failed to open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("testdb: failed to get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := migrations.AutoMigrate(db); err != nil {
		t.Fatalf("testdb: failed to migrate: %v", err)
	}
	return db
}

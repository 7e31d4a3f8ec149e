package testutil

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"schoolpay/internal/config"
	"schoolpay/internal/infra"
)

// NewSQLiteDB opens a migrated SQLite database in a temp dir that is removed after the test.
func NewSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := config.StoreConfig{
		Driver:     config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := infra.OpenGorm(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	if err := infra.MigrateGorm(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	t.Cleanup(func() {
		_ = infra.CloseGorm(db, zap.NewNop())
	})
	return db
}

// Seed inserts each record, failing the test on the first error.
func Seed(t *testing.T, db *gorm.DB, records ...interface{}) {
	t.Helper()
	for _, r := range records {
		if err := db.Create(r).Error; err != nil {
			t.Fatalf("Failed to seed %T: %v", r, err)
		}
	}
}

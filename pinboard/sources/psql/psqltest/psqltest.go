// Package psqltest opens throwaway in-memory databases for tests.
package psqltest

import (
	"context"
	"fmt"
	"testing"

	"pinboard/pinboard/sources/psql"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
)

// NewDatabase returns a migrated SQLite database private to the test.
func NewDatabase(t testing.TB) *psql.Database {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := psql.Open(context.Background(), sqlite.Open(dsn))
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	sqlDB, err := db.DB.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// One connection keeps the shared in-memory database free of lock errors.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(db.Close)
	return db
}

package testsupport

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-commerce-store/dbconn"
)

// DatabaseConfig returns a pool configuration for a private, migrated
// in-memory SQLite database. The pure Go driver is used so tests do not need
// cgo.
func DatabaseConfig(t testing.TB) dbconn.Config {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	cfg := dbconn.DefaultConfig()
	cfg.Driver = dbconn.DriverSQLite
	cfg.DSN = fmt.Sprintf("file:%s_%s?mode=memory&cache=shared", name, uuid.NewString())
	return cfg
}

// OpenDB opens and migrates a private in-memory database. It is closed when
// the test ends.
func OpenDB(t testing.TB, hooks ...bun.QueryHook) *bun.DB {
	t.Helper()

	db, err := dbconn.Open(DatabaseConfig(t), hooks...)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := dbconn.Migrate(context.Background(), db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

// SeededDB opens a test database and inserts the catalog fixture.
func SeededDB(t testing.TB) (*bun.DB, Catalog) {
	t.Helper()

	db := OpenDB(t)
	catalog := LoadCatalog(t)
	catalog.Insert(t, db)
	return db, catalog
}

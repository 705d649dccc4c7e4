package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestDBDialectNameDefaultsToSQLite(t *testing.T) {
	if got := dbDialectName(nil); got != "sqlite" {
		t.Fatalf("nil db should default to sqlite, got %s", got)
	}
}

func TestDBDialectNameSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:dialect_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if got := dbDialectName(db); got != "sqlite" {
		t.Fatalf("dialect want sqlite got %s", got)
	}
}

func TestApplyForUpdateNilSafe(t *testing.T) {
	if got := applyForUpdate(nil); got != nil {
		t.Fatalf("nil query should pass through, got %v", got)
	}
}

func TestApplyForUpdateSkipsLockingOnSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:dialect_lock_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	query := applyForUpdate(db.Session(&gorm.Session{}))
	if _, found := query.Statement.Clauses["FOR"]; found {
		t.Fatal("sqlite query must not carry a locking clause")
	}
}

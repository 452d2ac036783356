package config

import (
	"path/filepath"
	"strings"
	"testing"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
)

// An endpoint without the database segment used to reach gorm.Open
// unchecked; the handle came back with no connection pool and the
// startup migration dereferenced nil. The malformed value has to fall
// back to the local-dev defaults instead.
func TestInitDBMalformedAddrFallsBack(t *testing.T) {
	t.Setenv("STALL_DB_DRIVER", "")
	t.Setenv("STALL_DB_ADDR", "tcp(db.example.com:3306)")
	t.Setenv("STALL_DB_CREDENTIALS", "stall:stall")

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB with malformed addr: %v", err)
	}

	// Startup runs AutoMigrate on this handle, so it must carry a real
	// connection pool.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("handle has no connection pool: %v", err)
	}
	if sqlDB == nil {
		t.Fatal("nil connection pool")
	}

	dialector, ok := db.Dialector.(*mysql.Dialector)
	if !ok {
		t.Fatalf("dialector is %T, want mysql", db.Dialector)
	}
	if !strings.Contains(dialector.DSN, DefaultAddr) {
		t.Errorf("DSN = %q, want fallback to %q", dialector.DSN, DefaultAddr)
	}
	if _, err := gomysql.ParseDSN(dialector.DSN); err != nil {
		t.Errorf("fallback DSN does not parse: %v", err)
	}
}

func TestInitDBUsesConfiguredEndpoint(t *testing.T) {
	t.Setenv("STALL_DB_DRIVER", "")
	t.Setenv("STALL_DB_ADDR", "tcp(db.stall.lan:3306)/stall_pos")
	t.Setenv("STALL_DB_CREDENTIALS", "counter:secret")

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}

	dialector, ok := db.Dialector.(*mysql.Dialector)
	if !ok {
		t.Fatalf("dialector is %T, want mysql", db.Dialector)
	}
	if !strings.HasPrefix(dialector.DSN, "counter:secret@tcp(db.stall.lan:3306)/stall_pos") {
		t.Errorf("DSN = %q, want the configured endpoint and credentials", dialector.DSN)
	}
}

func TestInitDBSQLiteDriver(t *testing.T) {
	t.Setenv("STALL_DB_DRIVER", "sqlite")
	t.Setenv("STALL_DB_PATH", filepath.Join(t.TempDir(), "stall.db"))

	db, err := InitDB()
	if err != nil {
		t.Fatalf("InitDB sqlite: %v", err)
	}
	if err := db.Exec("CREATE TABLE ping (id integer primary key)").Error; err != nil {
		t.Fatalf("sqlite handle unusable: %v", err)
	}
}

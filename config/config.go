package config

import (
	"fmt"
	"log"
	"os"

	gomysql "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Local-dev defaults so a bare checkout still starts; main warns when
// the real values are missing from the environment.
const (
	DefaultAddr        = "tcp(127.0.0.1:3306)/stall_pos"
	DefaultCredentials = "stall:stall"
)

// InitDB opens the order store. The hosted MySQL endpoint and
// credentials come from STALL_DB_ADDR and STALL_DB_CREDENTIALS;
// STALL_DB_DRIVER=sqlite switches to a local file database for
// development without a MySQL server.
//
// The MySQL pool is opened lazily: an unreachable store must not stop
// startup, so connection failures surface per query and are logged
// there instead. A DSN that does not even parse would leave the handle
// without a connection pool at all, so the assembled DSN is validated
// first and a malformed endpoint falls back to the local-dev defaults
// with a warning.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("STALL_DB_DRIVER") == "sqlite" {
		path := os.Getenv("STALL_DB_PATH")
		if path == "" {
			path = "stall_pos.db"
		}
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	addr := os.Getenv("STALL_DB_ADDR")
	if addr == "" {
		addr = DefaultAddr
	}
	creds := os.Getenv("STALL_DB_CREDENTIALS")
	if creds == "" {
		creds = DefaultCredentials
	}

	dsn := buildDSN(creds, addr)
	if _, err := gomysql.ParseDSN(dsn); err != nil {
		log.Printf("Warning: invalid STALL_DB_ADDR/STALL_DB_CREDENTIALS (%v), falling back to local defaults", err)
		dsn = buildDSN(DefaultCredentials, DefaultAddr)
	}

	return gorm.Open(mysql.New(mysql.Config{
		DSN:                       dsn,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DisableAutomaticPing: true,
	})
}

func buildDSN(creds, addr string) string {
	return fmt.Sprintf("%s@%s?charset=utf8mb4&parseTime=True&loc=Local", creds, addr)
}

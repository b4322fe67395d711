package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/gorm"

	"github.com/crestline/origination-backend/internal/config"
	"github.com/crestline/origination-backend/internal/db"
	"github.com/crestline/origination-backend/internal/pkg/logger"
)

var (
	once    sync.Once
	shared  *gorm.DB
	openErr error
)

// DB returns a migrated connection to the database named by TEST_POSTGRES_DSN,
// skipping the test when the variable is unset. The connection is shared
// across tests; isolation comes from Tx.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		tb.Skip("TEST_POSTGRES_DSN not set")
	}
	once.Do(func() {
		svc, err := db.New(config.DatabaseConfig{Driver: "postgres", DSN: dsn}, Logger(tb))
		if err != nil {
			openErr = err
			return
		}
		if err := svc.AutoMigrateAll(); err != nil {
			openErr = err
			return
		}
		shared = svc.DB()
	})
	if openErr != nil {
		tb.Fatalf("open test database: %v", openErr)
	}
	return shared
}

// Tx starts a transaction rolled back when the test finishes.
func Tx(tb testing.TB, conn *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := conn.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	log, err := logger.New("development")
	if err != nil {
		tb.Fatalf("init logger: %v", err)
	}
	return log
}

package testutil

import (
	"os"
	"sync"
	"testing"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	types "github.com/smartmeal/smartmeal-backend/internal/domain"
	"github.com/smartmeal/smartmeal-backend/internal/platform/logger"
)

var (
	dbOnce sync.Once
	db     *gorm.DB
	dbErr  error

	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// DB returns a shared test database. TEST_POSTGRES_DSN selects a real
// Postgres; otherwise an in-memory sqlite stands in (row locking degrades to
// sqlite's single writer there, so lock-contention tests must require the
// Postgres DSN via RequirePostgres).
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	dbOnce.Do(func() {
		dialector := sqliteDialector()
		if dsn := os.Getenv("TEST_POSTGRES_DSN"); dsn != "" {
			dialector = postgres.Open(dsn)
		}

		db, dbErr = gorm.Open(dialector, &gorm.Config{
			DisableForeignKeyConstraintWhenMigrating: true,
			TranslateError:                           true,
			Logger:                                   gormLogger.Default.LogMode(gormLogger.Silent),
		})
		if dbErr != nil {
			return
		}
		dbErr = autoMigrateAll(db)
	})

	if dbErr != nil {
		tb.Fatalf("failed to init test db: %v", dbErr)
	}
	return db
}

func sqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared")
}

// RequirePostgres skips the test unless TEST_POSTGRES_DSN is set.
func RequirePostgres(tb testing.TB) {
	tb.Helper()
	if os.Getenv("TEST_POSTGRES_DSN") == "" {
		tb.Skip("set TEST_POSTGRES_DSN to run Postgres-only tests")
	}
}

func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if tx.Error != nil {
		tb.Fatalf("begin tx: %v", tx.Error)
	}
	tb.Cleanup(func() {
		_ = tx.Rollback().Error
	})
	return tx
}

func autoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&types.AppUser{},
		&types.PantryEntry{},
		&types.WasteLogEntry{},
	)
}

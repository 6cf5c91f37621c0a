package database

import (
	"log/slog"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"cabinrental/internal/domain"
)

// sqliteDefaults are appended to SQLite DSNs that do not set them.
// _txlock=immediate makes every transaction take the write lock on BEGIN.
var sqliteDefaults = []struct{ key, param string }{
	{"foreign_keys", "_pragma=foreign_keys(1)"},
	{"busy_timeout", "_pragma=busy_timeout(5000)"},
	{"_txlock", "_txlock=immediate"},
}

func IsPostgres(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://")
}

// Connect opens PostgreSQL for postgres:// URLs and SQLite (pure Go driver)
// for anything else. log may be nil to silence SQL logging.
func Connect(dsn string, log *slog.Logger) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger:         gormLogger(log),
		TranslateError: true,
	}

	if IsPostgres(dsn) {
		if log != nil {
			log.Info("connecting to PostgreSQL")
		}
		return gorm.Open(postgres.Open(dsn), cfg)
	}

	if log != nil {
		log.Info("using SQLite", "path", dsn)
	}

	db, err := gorm.Open(
		gormsqlite.New(gormsqlite.Config{
			DriverName: "sqlite",
			DSN:        SQLiteDSN(dsn),
		}),
		cfg,
	)
	if err != nil {
		return nil, err
	}

	if strings.Contains(dsn, ":memory:") {
		// each connection would otherwise get its own empty database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	return db, nil
}

// SQLiteDSN appends the default pragmas the DSN does not already set.
func SQLiteDSN(dsn string) string {
	var missing []string
	for _, d := range sqliteDefaults {
		if !strings.Contains(dsn, d.key) {
			missing = append(missing, d.param)
		}
	}
	if len(missing) == 0 {
		return dsn
	}

	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + strings.Join(missing, "&")
}

// Migrate creates or updates the schema.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.Admin{},
		&domain.Cabin{},
		&domain.CabinImage{},
		&domain.MaintenanceBlock{},
	)
}

func gormLogger(log *slog.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	return logger.New(
		slog.NewLogLogger(log.Handler(), slog.LevelWarn),
		logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		},
	)
}

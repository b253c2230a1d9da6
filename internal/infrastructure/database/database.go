package database

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
	"go.uber.org/fx"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"commerce-api/internal/config"
)

type Database struct {
	DB     *sql.DB
	driver string
	logger *zap.Logger
}

func NewDatabase(cfg *config.Config, logger *zap.Logger) (*Database, error) {
	dsn := cfg.Database.Path
	if !cfg.Database.IsSQLite() {
		// Build PostgreSQL connection string
		dsn = fmt.Sprintf(
			"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Database.Host,
			cfg.Database.Port,
			cfg.Database.User,
			cfg.Database.Password,
			cfg.Database.DBName,
			cfg.Database.SSLMode,
		)
	}

	database, err := Open(cfg.Database.Driver, dsn, logger)
	if err != nil {
		return nil, err
	}

	logger.Info("Database connected successfully",
		zap.String("driver", cfg.Database.Driver),
		zap.String("host", cfg.Database.Host),
		zap.Int("port", cfg.Database.Port),
		zap.String("dbname", cfg.Database.DBName),
	)

	return database, nil
}

// Open connects with an explicit driver and DSN and runs migrations
func Open(driver, dsn string, logger *zap.Logger) (*Database, error) {
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if driver == config.DriverSQLite {
		// Every connection to ":memory:" is a separate database
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	database := &Database{
		DB:     db,
		driver: driver,
		logger: logger,
	}

	if err := database.migrate(); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return database, nil
}

// Driver returns the sql driver name the database was opened with
func (d *Database) Driver() string {
	return d.driver
}

// Placeholder returns the n-th (1-based) bind parameter for the driver
func (d *Database) Placeholder(n int) string {
	if d.driver == config.DriverSQLite {
		return "?"
	}
	return fmt.Sprintf("$%d", n)
}

func (d *Database) migrate() error {
	idColumn := "id BIGSERIAL PRIMARY KEY"
	floatType := "DOUBLE PRECISION"
	if d.driver == config.DriverSQLite {
		idColumn = "id INTEGER PRIMARY KEY AUTOINCREMENT"
		floatType = "REAL"
	}

	createTableSQL := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS api_request_logs (
		%s,
		user_id BIGINT NOT NULL DEFAULT 0,
		api_key VARCHAR(32) NOT NULL DEFAULT 'public',
		token VARCHAR(32) NOT NULL DEFAULT '',
		version VARCHAR(32) NOT NULL DEFAULT '',
		request TEXT NOT NULL DEFAULT '',
		error TEXT NOT NULL DEFAULT '',
		ip VARCHAR(60) NOT NULL DEFAULT '',
		time %s NOT NULL DEFAULT 0,
		date_created VARCHAR(19) NOT NULL DEFAULT '0000-00-00 00:00:00'
	);
	`, idColumn, floatType)

	if _, err := d.DB.Exec(createTableSQL); err != nil {
		return fmt.Errorf("failed to create api_request_logs table: %w", err)
	}

	indexes := []string{
		`CREATE INDEX IF NOT EXISTS idx_api_request_logs_user_id ON api_request_logs(user_id);`,
		`CREATE INDEX IF NOT EXISTS idx_api_request_logs_date_created ON api_request_logs(date_created);`,
	}
	for _, stmt := range indexes {
		if _, err := d.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	d.logger.Debug("Database migrations completed successfully",
		zap.String("driver", d.driver),
	)
	return nil
}

func (d *Database) Close() error {
	return d.DB.Close()
}

func registerClose(lc fx.Lifecycle, db *Database) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return db.Close()
		},
	})
}

var Module = fx.Module("database",
	fx.Provide(NewDatabase),
	fx.Invoke(registerClose),
)

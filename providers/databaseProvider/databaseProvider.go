package databaseProvider

import (
	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"oamanager/database"
	"oamanager/providers"
)

type PostgresProvider struct {
	db *sqlx.DB
}

// NewDBProvider connects, sizes the pool from config and brings the schema
// up to date.
func NewDBProvider(cfg providers.ConfigProvider, logger *zap.Logger) (*PostgresProvider, error) {
	db, err := sqlx.Connect("postgres", cfg.GetDatabaseString())
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	db.SetMaxOpenConns(cfg.GetPoolMaxConns())
	db.SetMaxIdleConns(cfg.GetPoolMaxConns())
	db.SetConnMaxIdleTime(cfg.GetPoolIdleTimeout())
	logger.Info("connected to postgres", zap.Int("maxConns", cfg.GetPoolMaxConns()))

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "migration failed")
	}
	logger.Info("migration complete")
	return &PostgresProvider{db: db}, nil
}

func (p *PostgresProvider) DB() *sqlx.DB {
	return p.db
}

func (p *PostgresProvider) Close() error {
	return p.db.Close()
}

func migrateUp(db *sqlx.DB) error {
	driver, err := postgres.WithInstance(db.DB, &postgres.Config{})
	if err != nil {
		return err
	}
	source, err := iofs.New(database.Migrations, "migrations")
	if err != nil {
		return err
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return err
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

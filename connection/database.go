package connection

import (
	"context"
	"fmt"

	"dolanlur/config"
	"dolanlur/migrations"
	"dolanlur/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// OpenDatabase connects the pgx pool and brings the schema up to date.
func OpenDatabase(ctx context.Context, cfg config.DB) (*repository.DB, error) {
	if err := migrate(cfg.DSN); err != nil {
		return nil, err
	}
	return repository.New(ctx, cfg)
}

// migrate runs the embedded goose migrations through the database/sql pgx
// driver; the pool itself stays on the native pgx interface.
func migrate(dsn string) error {
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}
	goose.SetBaseFS(migrations.FS)

	db, err := goose.OpenDBWithDriver("pgx", dsn)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"

	"orders/internal/adapters/out/postgres/orderrepo"

	"github.com/lib/pq"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectionConfig locates the order database.
type ConnectionConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// DSN renders a URL connection string for database name.
func (c ConnectionConfig) DSN(name string) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + name,
	}
	sslMode := c.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u.RawQuery = url.Values{"sslmode": []string{sslMode}}.Encode()
	return u.String()
}

// EnsureDatabase creates the configured database when it does not exist yet.
// It connects to the maintenance database "postgres" through lib/pq.
func EnsureDatabase(ctx context.Context, cfg ConnectionConfig) error {
	db, err := sql.Open("postgres", cfg.DSN("postgres"))
	if err != nil {
		return fmt.Errorf("open maintenance connection: %w", err)
	}
	defer db.Close()

	var exists bool
	err = db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Name,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("check database %q: %w", cfg.Name, err)
	}
	if exists {
		return nil
	}

	if _, err = db.ExecContext(ctx, "CREATE DATABASE "+pq.QuoteIdentifier(cfg.Name)); err != nil {
		var pqErr *pq.Error
		// 42P04: another instance created it concurrently.
		if errors.As(err, &pqErr) && pqErr.Code == "42P04" {
			return nil
		}
		return fmt.Errorf("create database %q: %w", cfg.Name, err)
	}
	return nil
}

// Open connects GORM to the order database and migrates the order table.
func Open(cfg ConnectionConfig, table string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(cfg.DSN(cfg.Name)), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database %q: %w", cfg.Name, err)
	}

	if err = orderrepo.Migrate(db, table); err != nil {
		return nil, fmt.Errorf("migrate table %q: %w", table, err)
	}
	return db, nil
}

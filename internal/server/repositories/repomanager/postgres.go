// Package repomanager provides a concrete RepositoryManager for PostgreSQL,
// wiring together repository constructors and database migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"

	"github.com/example/reserva/internal/dbx"
	"github.com/example/reserva/internal/server/migrations"
	"github.com/example/reserva/internal/server/repositories/departments"
	"github.com/example/reserva/internal/server/repositories/reservations"
	"github.com/example/reserva/internal/server/repositories/spaces"
	"github.com/example/reserva/internal/server/repositories/users"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

// PostgresRepositoryManager vends PostgreSQL-backed repository implementations
// and exposes a schema migration hook.
type PostgresRepositoryManager struct{}

// Users returns a users.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

// Spaces returns a spaces.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Spaces(db dbx.DBTX) spaces.Repository {
	return spaces.NewPostgresRepository(db)
}

// Reservations returns a reservations.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Reservations(db dbx.DBTX) reservations.Repository {
	return reservations.NewPostgresRepository(db)
}

// Departments returns a departments.Repository bound to the provided DBTX.
func (m *PostgresRepositoryManager) Departments(db dbx.DBTX) departments.Repository {
	return departments.NewPostgresRepository(db)
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations and runs them
// against the provided database connection.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, "."); err != nil {
		return err
	}
	return nil
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager() RepositoryManager {
	return &PostgresRepositoryManager{}
}

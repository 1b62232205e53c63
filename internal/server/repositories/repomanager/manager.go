package repomanager

import (
	"context"
	"database/sql"

	"github.com/example/reserva/internal/dbx"
	"github.com/example/reserva/internal/server/repositories/departments"
	"github.com/example/reserva/internal/server/repositories/reservations"
	"github.com/example/reserva/internal/server/repositories/spaces"
	"github.com/example/reserva/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Spaces(db dbx.DBTX) spaces.Repository
	Reservations(db dbx.DBTX) reservations.Repository
	Departments(db dbx.DBTX) departments.Repository
}

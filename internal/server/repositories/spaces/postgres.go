package spaces

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/dbx"
	"github.com/example/reserva/internal/server/models"
	"github.com/google/uuid"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, space *models.Space) (*models.Space, error) {
	if space.ID == "" {
		space.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO espacos (espaco_id, nome, tipo, capacidade, gestor_responsavel_id)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	_, err := r.db.ExecContext(ctx, query,
		space.ID, space.Name, space.Kind, space.Capacity, nullableID(space.ManagerID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return space, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Space, error) {
	query :=
		`SELECT espaco_id, nome, tipo, capacidade, coalesce(gestor_responsavel_id::text, '') FROM espacos
		 WHERE espaco_id = $1
		 `

	space := &models.Space{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&space.ID, &space.Name, &space.Kind, &space.Capacity, &space.ManagerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return space, nil
}

// List returns all spaces, optionally restricted to a kind.
func (r *PostgresRepository) List(ctx context.Context, kind string) ([]*models.Space, error) {
	query :=
		`SELECT espaco_id, nome, tipo, capacidade, coalesce(gestor_responsavel_id::text, '') FROM espacos
		 WHERE ($1 = '' OR tipo = $1)
		 ORDER BY nome
		 `

	rows, err := r.db.QueryContext(ctx, query, kind)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Space
	for rows.Next() {
		space := &models.Space{}
		if err := rows.Scan(&space.ID, &space.Name, &space.Kind, &space.Capacity, &space.ManagerID); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, space)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, space *models.Space) (*models.Space, error) {
	query :=
		`UPDATE espacos
		 SET nome = $2, tipo = $3, capacidade = $4, gestor_responsavel_id = $5
		 WHERE espaco_id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		space.ID, space.Name, space.Kind, space.Capacity, nullableID(space.ManagerID))
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return nil, common.ErrorNotFound
	}

	return space, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM espacos WHERE espaco_id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

// nullableID maps an empty string to SQL NULL for uuid columns.
func nullableID(id string) any {
	if id == "" {
		return nil
	}
	return id
}

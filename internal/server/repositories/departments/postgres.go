package departments

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

func (r *PostgresRepository) Create(ctx context.Context, dep *models.Department) (*models.Department, error) {
	if dep.ID == "" {
		dep.ID = uuid.NewString()
	}

	query := `INSERT INTO departamentos (departamento_id, nome) VALUES ($1, $2)`

	_, err := r.db.ExecContext(ctx, query, dep.ID, dep.Name)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dep, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Department, error) {
	query := `SELECT departamento_id, nome FROM departamentos WHERE departamento_id = $1`

	dep := &models.Department{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(&dep.ID, &dep.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return dep, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Department, error) {
	query := `SELECT departamento_id, nome FROM departamentos ORDER BY nome`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Department
	for rows.Next() {
		dep := &models.Department{}
		if err := rows.Scan(&dep.ID, &dep.Name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, dep)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, dep *models.Department) (*models.Department, error) {
	query := `UPDATE departamentos SET nome = $2 WHERE departamento_id = $1`

	res, err := r.db.ExecContext(ctx, query, dep.ID, dep.Name)
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

	return dep, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM departamentos WHERE departamento_id = $1`, id)
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

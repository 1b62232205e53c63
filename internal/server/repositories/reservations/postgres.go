package reservations

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

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

const selectColumns = `r.reserva_id, r.espaco_id, e.nome, r.solicitante_id, u.nome,
	coalesce(r.finalidade, ''), r.num_participantes, r.data_hora_inicio, r.data_hora_fim, r.status`

const fromJoined = `reservas r
	JOIN espacos e ON e.espaco_id = r.espaco_id
	JOIN usuarios u ON u.usuario_id = r.solicitante_id`

func (r *PostgresRepository) Create(ctx context.Context, res *models.Reservation) (*models.Reservation, error) {
	if res.ID == "" {
		res.ID = uuid.NewString()
	}
	if res.Status == "" {
		res.Status = models.StatusPending
	}

	query :=
		`INSERT INTO reservas (reserva_id, espaco_id, solicitante_id, finalidade, num_participantes,
		                       data_hora_inicio, data_hora_fim, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 `

	_, err := r.db.ExecContext(ctx, query,
		res.ID, res.SpaceID, res.RequesterID, res.Purpose, res.Participants,
		res.Start, res.End, res.Status)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return r.GetByID(ctx, res.ID)
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Reservation, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE r.reserva_id = $1`, selectColumns, fromJoined)

	res := &models.Reservation{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&res.ID, &res.SpaceID, &res.SpaceName, &res.RequesterID, &res.RequesterName,
		&res.Purpose, &res.Participants, &res.Start, &res.End, &res.Status)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return res, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter ListFilter) ([]*models.Reservation, error) {
	var conds []string
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.RequesterID != "" {
		conds = append(conds, "r.solicitante_id = "+arg(filter.RequesterID))
	}
	if filter.SpaceID != "" {
		conds = append(conds, "r.espaco_id = "+arg(filter.SpaceID))
	}
	if len(filter.Statuses) > 0 {
		placeholders := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			placeholders = append(placeholders, arg(s))
		}
		conds = append(conds, "r.status IN ("+strings.Join(placeholders, ", ")+")")
	}
	if filter.OverlapStart != nil && filter.OverlapEnd != nil {
		conds = append(conds, "r.data_hora_inicio < "+arg(*filter.OverlapEnd))
		conds = append(conds, "r.data_hora_fim > "+arg(*filter.OverlapStart))
	}

	query := fmt.Sprintf(`SELECT %s FROM %s`, selectColumns, fromJoined)
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.data_hora_inicio"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Reservation
	for rows.Next() {
		res := &models.Reservation{}
		if err := rows.Scan(
			&res.ID, &res.SpaceID, &res.SpaceName, &res.RequesterID, &res.RequesterName,
			&res.Purpose, &res.Participants, &res.Start, &res.End, &res.Status); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reservas SET status = $2 WHERE reserva_id = $1`, id, status)
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

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reservas WHERE reserva_id = $1`, id)
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

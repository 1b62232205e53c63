package services

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/dbx"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/repositories/repomanager"
	"github.com/example/reserva/internal/server/repositories/reservations"
)

// ReservationService is the authority on booking conflicts and status
// transitions. All writes that depend on the current calendar run inside a
// transaction so concurrent requests cannot double-book a space.
type ReservationService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	now         func() time.Time
}

func NewReservationService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *ReservationService {
	return &ReservationService{db: db, repomanager: m, now: time.Now}
}

// List returns reservations matching the filter. Non-manager actors only ever
// see their own reservations regardless of the requested filter.
func (s *ReservationService) List(ctx context.Context, actor Actor, filter reservations.ListFilter) ([]*models.Reservation, error) {
	if !actor.IsManager() {
		filter.RequesterID = actor.ID
	}
	return s.repomanager.Reservations(s.db).List(ctx, filter)
}

// Create books a space for the actor. The new reservation starts out pending.
// A pending or confirmed reservation whose [start, end) window intersects the
// requested one makes the space unavailable.
func (s *ReservationService) Create(ctx context.Context, actor Actor, res *models.Reservation) (*models.Reservation, error) {
	if res.SpaceID == "" {
		return nil, common.NewValidationError("espaço é obrigatório")
	}
	if res.Purpose == "" {
		return nil, common.NewValidationError("finalidade é obrigatória")
	}
	if res.Start.IsZero() || res.End.IsZero() {
		return nil, common.NewValidationError("início e fim são obrigatórios")
	}
	if !res.Start.Before(res.End) {
		return nil, common.NewValidationError("o fim deve ser posterior ao início")
	}
	if res.Start.Before(s.now()) {
		return nil, common.NewValidationError("o início deve ser no futuro")
	}
	if res.Participants != nil && *res.Participants <= 0 {
		return nil, common.NewValidationError("número de participantes deve ser positivo")
	}

	res.RequesterID = actor.ID
	res.Status = models.StatusPending

	var created *models.Reservation
	err := dbx.WithTx(ctx, s.db, &sql.TxOptions{Isolation: sql.LevelSerializable}, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reservations(tx)

		if _, err := s.repomanager.Spaces(tx).GetByID(ctx, res.SpaceID); err != nil {
			return err
		}

		conflicting, err := repo.List(ctx, reservations.ListFilter{
			SpaceID:      res.SpaceID,
			Statuses:     []string{models.StatusPending, models.StatusConfirmed},
			OverlapStart: &res.Start,
			OverlapEnd:   &res.End,
		})
		if err != nil {
			return err
		}
		if len(conflicting) > 0 {
			return fmt.Errorf("%w: espaço já reservado neste horário", common.ErrorConflict)
		}

		created, err = repo.Create(ctx, res)
		return err
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// UpdateStatus reviews a pending reservation. Only managers may review, and
// the only transitions allowed are pending to confirmed or rejected.
func (s *ReservationService) UpdateStatus(ctx context.Context, actor Actor, id, status string) (*models.Reservation, error) {
	if !actor.IsManager() {
		return nil, common.ErrorForbidden
	}
	if status != models.StatusConfirmed && status != models.StatusRejected {
		return nil, fmt.Errorf("%w: status de destino inválido", common.ErrorInvalidTransition)
	}

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reservations(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.Status != models.StatusPending {
			return fmt.Errorf("%w: apenas reservas pendentes podem ser avaliadas", common.ErrorInvalidTransition)
		}
		return repo.UpdateStatus(ctx, id, status)
	})
	if err != nil {
		return nil, err
	}

	return s.repomanager.Reservations(s.db).GetByID(ctx, id)
}

// Cancel marks the actor's own reservation as cancelled. Only pending or
// confirmed reservations that have not started yet can be cancelled.
func (s *ReservationService) Cancel(ctx context.Context, actor Actor, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Reservations(tx)
		current, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if current.RequesterID != actor.ID {
			return common.ErrorForbidden
		}
		if current.Status != models.StatusPending && current.Status != models.StatusConfirmed {
			return fmt.Errorf("%w: reserva não pode mais ser cancelada", common.ErrorInvalidTransition)
		}
		if !current.Start.After(s.now()) {
			return fmt.Errorf("%w: a reserva já começou", common.ErrorInvalidTransition)
		}
		return repo.UpdateStatus(ctx, id, models.StatusCancelled)
	})
}

// ParseStatuses validates a comma-separated status filter coming off the wire.
func ParseStatuses(statuses []string) ([]string, error) {
	for _, s := range statuses {
		if !models.ValidStatus(s) {
			return nil, common.NewValidationError("status inválido: " + s)
		}
	}
	return statuses, nil
}

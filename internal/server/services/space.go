package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/repositories/repomanager"
	"github.com/example/reserva/internal/server/repositories/reservations"
)

// SpaceService manages the space catalog and answers availability queries.
type SpaceService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewSpaceService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *SpaceService {
	return &SpaceService{db: db, repomanager: m}
}

func (s *SpaceService) List(ctx context.Context) ([]*models.Space, error) {
	return s.repomanager.Spaces(s.db).List(ctx, "")
}

func (s *SpaceService) Get(ctx context.Context, id string) (*models.Space, error) {
	return s.repomanager.Spaces(s.db).GetByID(ctx, id)
}

func (s *SpaceService) Create(ctx context.Context, space *models.Space) (*models.Space, error) {
	if err := s.validate(space); err != nil {
		return nil, err
	}
	return s.repomanager.Spaces(s.db).Create(ctx, space)
}

func (s *SpaceService) Update(ctx context.Context, space *models.Space) (*models.Space, error) {
	if err := s.validate(space); err != nil {
		return nil, err
	}
	return s.repomanager.Spaces(s.db).Update(ctx, space)
}

func (s *SpaceService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Spaces(s.db).Delete(ctx, id)
}

// Available returns the spaces with no pending or confirmed reservation
// intersecting [start, end). Kind narrows the result when non-empty.
func (s *SpaceService) Available(ctx context.Context, start, end time.Time, kind string) ([]*models.Space, error) {
	if !start.Before(end) {
		return nil, common.NewValidationError("o fim deve ser posterior ao início")
	}
	if kind != "" && !models.ValidKind(kind) {
		return nil, common.NewValidationError("tipo de espaço inválido")
	}

	all, err := s.repomanager.Spaces(s.db).List(ctx, kind)
	if err != nil {
		return nil, err
	}

	busy, err := s.repomanager.Reservations(s.db).List(ctx, reservations.ListFilter{
		Statuses:     []string{models.StatusPending, models.StatusConfirmed},
		OverlapStart: &start,
		OverlapEnd:   &end,
	})
	if err != nil {
		return nil, err
	}

	occupied := make(map[string]bool, len(busy))
	for _, r := range busy {
		occupied[r.SpaceID] = true
	}

	free := make([]*models.Space, 0, len(all))
	for _, sp := range all {
		if !occupied[sp.ID] {
			free = append(free, sp)
		}
	}
	return free, nil
}

func (s *SpaceService) validate(space *models.Space) error {
	if space.Name == "" {
		return common.NewValidationError("nome é obrigatório")
	}
	if !models.ValidKind(space.Kind) {
		return common.NewValidationError("tipo de espaço inválido")
	}
	if space.Capacity != nil && *space.Capacity <= 0 {
		return common.NewValidationError("capacidade deve ser positiva")
	}
	return nil
}

package reservations

import (
	"context"
	"time"

	"github.com/example/reserva/internal/server/models"
)

// ListFilter narrows a reservation listing. Zero values mean "no restriction".
// OverlapStart/OverlapEnd, when both set, keep only reservations whose
// [start, end) window intersects the given one.
type ListFilter struct {
	RequesterID  string
	SpaceID      string
	Statuses     []string
	OverlapStart *time.Time
	OverlapEnd   *time.Time
}

type Repository interface {
	Create(ctx context.Context, res *models.Reservation) (*models.Reservation, error)
	GetByID(ctx context.Context, id string) (*models.Reservation, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Reservation, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	Delete(ctx context.Context, id string) error
}

package spaces

import (
	"context"

	"github.com/example/reserva/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, space *models.Space) (*models.Space, error)
	GetByID(ctx context.Context, id string) (*models.Space, error)
	List(ctx context.Context, kind string) ([]*models.Space, error)
	Update(ctx context.Context, space *models.Space) (*models.Space, error)
	Delete(ctx context.Context, id string) error
}

package departments

import (
	"context"

	"github.com/example/reserva/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, dep *models.Department) (*models.Department, error)
	GetByID(ctx context.Context, id string) (*models.Department, error)
	List(ctx context.Context) ([]*models.Department, error)
	Update(ctx context.Context, dep *models.Department) (*models.Department, error)
	Delete(ctx context.Context, id string) error
}

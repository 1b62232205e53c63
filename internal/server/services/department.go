package services

import (
	"context"
	"database/sql"

	"github.com/example/reserva/internal/common"
	"github.com/example/reserva/internal/server/config"
	"github.com/example/reserva/internal/server/models"
	"github.com/example/reserva/internal/server/repositories/repomanager"
)

// DepartmentService manages the department registry.
type DepartmentService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewDepartmentService(db *sql.DB, m repomanager.RepositoryManager, _ *config.Config) *DepartmentService {
	return &DepartmentService{db: db, repomanager: m}
}

func (s *DepartmentService) List(ctx context.Context) ([]*models.Department, error) {
	return s.repomanager.Departments(s.db).List(ctx)
}

func (s *DepartmentService) Create(ctx context.Context, dep *models.Department) (*models.Department, error) {
	if dep.Name == "" {
		return nil, common.NewValidationError("nome é obrigatório")
	}
	return s.repomanager.Departments(s.db).Create(ctx, dep)
}

func (s *DepartmentService) Update(ctx context.Context, dep *models.Department) (*models.Department, error) {
	if dep.Name == "" {
		return nil, common.NewValidationError("nome é obrigatório")
	}
	return s.repomanager.Departments(s.db).Update(ctx, dep)
}

func (s *DepartmentService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Departments(s.db).Delete(ctx, id)
}

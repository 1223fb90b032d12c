package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, category domain.Category) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Category, error)
	List(ctx context.Context) ([]domain.Category, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

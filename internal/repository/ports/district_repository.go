package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

type DistrictRepository interface {
	Create(ctx context.Context, district domain.District) (*domain.District, error)
	Update(ctx context.Context, id uuid.UUID, fields domain.DistrictInput, thumbnailURL *string) (*domain.District, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.District, error)
	FindBySlug(ctx context.Context, slug string) (*domain.District, error)
	List(ctx context.Context) ([]domain.District, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
}

package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

type DestinationRepository interface {
	Create(ctx context.Context, record domain.DestinationRecord) (*domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, record domain.DestinationRecord) (*domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	FindBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	SlugExists(ctx context.Context, slug string) (bool, error)

	// List returns one page of the filtered listing plus the total match count.
	List(ctx context.Context, filter domain.DestinationFilter, limit, offset int) ([]domain.Destination, int, error)
	// IncrementViewsBySlug bumps view_count in a single statement and returns the updated row.
	IncrementViewsBySlug(ctx context.Context, slug string) (*domain.Destination, error)
	ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Destination, error)
	ListByDistrict(ctx context.Context, districtID uuid.UUID) ([]domain.Destination, error)
	ListLatest(ctx context.Context, limit int) ([]domain.Destination, error)
	ListMostViewed(ctx context.Context, limit int) ([]domain.Destination, error)
	ListSummaries(ctx context.Context) ([]domain.DestinationSummary, error)
	Counts(ctx context.Context) (domain.CatalogCounts, error)
}

package http

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
)

// Catalog is the read side consumed by the public routes.
type Catalog interface {
	Home(ctx context.Context) (*domain.HomeDigest, error)
	ListDestinations(ctx context.Context, filter domain.DestinationFilter) (*domain.DestinationPage, error)
	ViewDestination(ctx context.Context, slug string) (*domain.Destination, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	GetCategory(ctx context.Context, slug string) (*domain.CategoryDetail, error)
	ListDistricts(ctx context.Context) ([]domain.District, error)
	GetDistrict(ctx context.Context, slug string) (*domain.DistrictDetail, error)
	Surprise(ctx context.Context) ([]domain.DestinationSummary, error)
}

type Accounts interface {
	Login(ctx context.Context, email, password string) (*service.LoginResult, error)
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
}

type DistrictManager interface {
	Create(ctx context.Context, input domain.DistrictInput, thumbnail *service.ImageUpload) (*domain.District, error)
	Update(ctx context.Context, id uuid.UUID, input domain.DistrictInput, thumbnail *service.ImageUpload) (*domain.District, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CategoryManager interface {
	Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error)
	Update(ctx context.Context, id uuid.UUID, input domain.CategoryInput) (*domain.Category, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type DestinationManager interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error)
	Create(ctx context.Context, actorID uuid.UUID, input domain.DestinationInput, mainImage *service.ImageUpload) (*domain.Destination, error)
	Update(ctx context.Context, id uuid.UUID, input domain.DestinationInput, mainImage *service.ImageUpload) (*domain.Destination, error)
	Delete(ctx context.Context, id uuid.UUID) error
	AddGalleryImages(ctx context.Context, destinationID uuid.UUID, uploads []service.GalleryUpload) ([]domain.GalleryImage, error)
	DeleteGalleryImage(ctx context.Context, destinationID, imageID uuid.UUID) error
}

type Dashboard interface {
	Stats(ctx context.Context) (*domain.DashboardStats, error)
}

var (
	_ Catalog            = (*service.CatalogService)(nil)
	_ Accounts           = (*service.AccountService)(nil)
	_ DistrictManager    = (*service.DistrictService)(nil)
	_ CategoryManager    = (*service.CategoryService)(nil)
	_ DestinationManager = (*service.DestinationService)(nil)
	_ Dashboard          = (*service.DashboardService)(nil)
)

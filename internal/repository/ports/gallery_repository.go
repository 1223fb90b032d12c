package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
)

type GalleryRepository interface {
	AddMany(ctx context.Context, destinationID uuid.UUID, images []domain.GalleryImage) ([]domain.GalleryImage, error)
	ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.GalleryImage, error)
	Delete(ctx context.Context, destinationID, imageID uuid.UUID) error
}

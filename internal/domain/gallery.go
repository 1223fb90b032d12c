package domain

import (
	"time"

	"github.com/google/uuid"
)

type GalleryImage struct {
	ID            uuid.UUID `db:"id" json:"id"`
	DestinationID uuid.UUID `db:"destination_id" json:"destination_id"`
	ImageURL      string    `db:"image_url" json:"image"`
	Caption       *string   `db:"caption" json:"caption,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

package domain

import (
	"time"

	"github.com/google/uuid"
)

type District struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Slug         string    `db:"slug" json:"slug"`
	Description  *string   `db:"description" json:"description,omitempty"`
	ThumbnailURL *string   `db:"thumbnail_url" json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// DistrictInput holds admin-supplied fields. Nil pointers are left untouched on update.
type DistrictInput struct {
	Name        *string
	Slug        *string
	Description *string
}

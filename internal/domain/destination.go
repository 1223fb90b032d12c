package domain

import (
	"time"

	"github.com/google/uuid"
)

type Destination struct {
	ID             uuid.UUID      `db:"id" json:"id"`
	Name           string         `db:"name" json:"name"`
	Slug           string         `db:"slug" json:"slug"`
	Description    string         `db:"description" json:"description"`
	DistrictID     *uuid.UUID     `db:"district_id" json:"district_id,omitempty"`
	DistrictName   *string        `db:"district_name" json:"district_name,omitempty"`
	DistrictSlug   *string        `db:"district_slug" json:"district_slug,omitempty"`
	CategoryID     *uuid.UUID     `db:"category_id" json:"category_id,omitempty"`
	CategoryName   *string        `db:"category_name" json:"category_name,omitempty"`
	CategorySlug   *string        `db:"category_slug" json:"category_slug,omitempty"`
	CategoryIcon   *string        `db:"category_icon" json:"category_icon,omitempty"`
	MapsEmbedURL   *string        `db:"maps_embed_url" json:"maps_embed_url,omitempty"`
	AdditionalInfo *string        `db:"additional_info" json:"additional_info,omitempty"`
	MainImage      string         `db:"main_image_url" json:"main_image"`
	ManagerID      *uuid.UUID     `db:"manager_id" json:"manager_id,omitempty"`
	ViewCount      int64          `db:"view_count" json:"view_count"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
	Gallery        []GalleryImage `db:"-" json:"gallery,omitempty"`
}

// DestinationSummary is the reduced projection used by the "surprise me" listing.
type DestinationSummary struct {
	Name         string  `db:"name" json:"name"`
	DistrictName *string `db:"district_name" json:"district_name,omitempty"`
	MainImage    string  `db:"main_image_url" json:"main_image"`
	Slug         string  `db:"slug" json:"slug"`
}

// DestinationInput holds admin-supplied fields. A DistrictID or CategoryID
// pointing at uuid.Nil clears the reference.
type DestinationInput struct {
	Name           *string
	Slug           *string
	Description    *string
	DistrictID     *uuid.UUID
	CategoryID     *uuid.UUID
	MapsEmbedURL   *string
	AdditionalInfo *string
	ManagerID      *uuid.UUID
}

// DestinationRecord is the fully resolved row handed to the repository on insert/update.
type DestinationRecord struct {
	Name           string
	Slug           string
	Description    string
	DistrictID     *uuid.UUID
	CategoryID     *uuid.UUID
	MapsEmbedURL   *string
	AdditionalInfo *string
	MainImage      string
	ManagerID      *uuid.UUID
}

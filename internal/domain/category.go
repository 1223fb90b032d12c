package domain

import (
	"time"

	"github.com/google/uuid"
)

const DefaultCategoryIcon = "category"

type Category struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Slug        string    `db:"slug" json:"slug"`
	Icon        string    `db:"icon" json:"icon"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type CategoryInput struct {
	Name        *string `json:"name" form:"name"`
	Slug        *string `json:"slug" form:"slug"`
	Icon        *string `json:"icon" form:"icon"`
	Description *string `json:"description" form:"description"`
}

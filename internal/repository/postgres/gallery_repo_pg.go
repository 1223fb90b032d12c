package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

type GalleryRepository struct {
	db *sqlx.DB
}

func NewGalleryRepo(db *sqlx.DB) *GalleryRepository {
	return &GalleryRepository{db: db}
}

var _ ports.GalleryRepository = (*GalleryRepository)(nil)

// AddMany appends images after the current last position, preserving input order.
// The destination row is locked for the transaction so concurrent uploads never
// share a sort_order. A missing destination yields sql.ErrNoRows.
func (r *GalleryRepository) AddMany(ctx context.Context, destinationID uuid.UUID, images []domain.GalleryImage) ([]domain.GalleryImage, error) {
	if len(images) == 0 {
		return []domain.GalleryImage{}, nil
	}

	urls := make([]string, len(images))
	captions := make([]string, len(images))
	for i, img := range images {
		urls[i] = img.ImageURL
		if img.Caption != nil {
			captions[i] = *img.Caption
		}
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var locked uuid.UUID
	if err := tx.GetContext(ctx, &locked, `SELECT id FROM destination WHERE id = $1 FOR UPDATE`, destinationID); err != nil {
		return nil, err
	}

	const query = `
		WITH base AS (
			SELECT COALESCE(MAX(sort_order), 0) AS last
			FROM destination_gallery
			WHERE destination_id = $1
		)
		INSERT INTO destination_gallery (destination_id, image_url, caption, sort_order)
		SELECT $1, u.url, NULLIF(BTRIM(u.caption), ''), base.last + u.ord
		FROM unnest($2::text[], $3::text[]) WITH ORDINALITY AS u(url, caption, ord), base
		ORDER BY u.ord
		RETURNING id, destination_id, image_url, caption, created_at
	`

	added := make([]domain.GalleryImage, 0, len(images))
	if err := tx.SelectContext(ctx, &added, query, destinationID, pq.Array(urls), pq.Array(captions)); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return added, nil
}

func (r *GalleryRepository) ListByDestination(ctx context.Context, destinationID uuid.UUID) ([]domain.GalleryImage, error) {
	const query = `
		SELECT id, destination_id, image_url, caption, created_at
		FROM destination_gallery
		WHERE destination_id = $1
		ORDER BY sort_order ASC, created_at ASC, id ASC
	`
	images := make([]domain.GalleryImage, 0)
	if err := r.db.SelectContext(ctx, &images, query, destinationID); err != nil {
		return nil, err
	}
	return images, nil
}

func (r *GalleryRepository) Delete(ctx context.Context, destinationID, imageID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM destination_gallery WHERE id = $1 AND destination_id = $2`, imageID, destinationID)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

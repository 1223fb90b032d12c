package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const districtColumns = `id, name, slug, description, thumbnail_url, created_at`

type DistrictRepository struct {
	db *sqlx.DB
}

func NewDistrictRepo(db *sqlx.DB) *DistrictRepository {
	return &DistrictRepository{db: db}
}

var _ ports.DistrictRepository = (*DistrictRepository)(nil)

func (r *DistrictRepository) Create(ctx context.Context, district domain.District) (*domain.District, error) {
	const query = `
		INSERT INTO district (name, slug, description, thumbnail_url)
		VALUES (:name, :slug, :description, :thumbnail_url)
		RETURNING ` + districtColumns

	args := map[string]any{
		"name":          district.Name,
		"slug":          district.Slug,
		"description":   nullString(district.Description),
		"thumbnail_url": nullString(district.ThumbnailURL),
	}

	rows, err := r.db.NamedQueryContext(ctx, query, args)
	if err != nil {
		return nil, translateError(err)
	}
	defer rows.Close()

	var created domain.District
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, translateError(err)
		}
		return nil, fmt.Errorf("insert district: no row returned")
	}
	if err := rows.StructScan(&created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *DistrictRepository) Update(ctx context.Context, id uuid.UUID, fields domain.DistrictInput, thumbnailURL *string) (*domain.District, error) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	idx := 1

	if fields.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", idx))
		args = append(args, strings.TrimSpace(*fields.Name))
		idx++
	}
	if fields.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", idx))
		args = append(args, nullString(fields.Description))
		idx++
	}
	if thumbnailURL != nil {
		setParts = append(setParts, fmt.Sprintf("thumbnail_url = $%d", idx))
		args = append(args, nullString(thumbnailURL))
		idx++
	}
	if len(setParts) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE district SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), idx, districtColumns)
	args = append(args, id)

	var district domain.District
	if err := r.db.GetContext(ctx, &district, query, args...); err != nil {
		return nil, translateError(err)
	}
	return &district, nil
}

func (r *DistrictRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM district WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *DistrictRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.District, error) {
	var district domain.District
	query := `SELECT ` + districtColumns + ` FROM district WHERE id = $1`
	if err := r.db.GetContext(ctx, &district, query, id); err != nil {
		return nil, err
	}
	return &district, nil
}

func (r *DistrictRepository) FindBySlug(ctx context.Context, slug string) (*domain.District, error) {
	var district domain.District
	query := `SELECT ` + districtColumns + ` FROM district WHERE slug = $1`
	if err := r.db.GetContext(ctx, &district, query, slug); err != nil {
		return nil, err
	}
	return &district, nil
}

func (r *DistrictRepository) List(ctx context.Context) ([]domain.District, error) {
	districts := make([]domain.District, 0)
	query := `SELECT ` + districtColumns + ` FROM district ORDER BY name ASC`
	if err := r.db.SelectContext(ctx, &districts, query); err != nil {
		return nil, err
	}
	return districts, nil
}

func (r *DistrictRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "district", slug)
}

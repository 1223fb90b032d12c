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

const destinationJoins = `
	LEFT JOIN district dist ON dist.id = d.district_id
	LEFT JOIN category c ON c.id = d.category_id`

type DestinationRepository struct {
	db *sqlx.DB
}

func NewDestinationRepo(db *sqlx.DB) *DestinationRepository {
	return &DestinationRepository{db: db}
}

var _ ports.DestinationRepository = (*DestinationRepository)(nil)

// selectDestinations projects a destination row source (a table or CTE aliased as d)
// together with its district and category read fields.
func selectDestinations(source string) string {
	return `
	SELECT d.id, d.name, d.slug, d.description,
	       d.district_id, dist.name AS district_name, dist.slug AS district_slug,
	       d.category_id, c.name AS category_name, c.slug AS category_slug, c.icon AS category_icon,
	       d.maps_embed_url, d.additional_info, d.main_image_url, d.manager_id,
	       d.view_count, d.created_at, d.updated_at
	FROM ` + source + ` d` + destinationJoins
}

func (r *DestinationRepository) Create(ctx context.Context, record domain.DestinationRecord) (*domain.Destination, error) {
	query := `
	WITH inserted AS (
		INSERT INTO destination (
			name, slug, description, district_id, category_id,
			maps_embed_url, additional_info, main_image_url, manager_id
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING *
	)` + selectDestinations("inserted")

	var dest domain.Destination
	err := r.db.GetContext(ctx, &dest, query,
		record.Name,
		record.Slug,
		record.Description,
		nullUUID(record.DistrictID),
		nullUUID(record.CategoryID),
		nullString(record.MapsEmbedURL),
		nullString(record.AdditionalInfo),
		record.MainImage,
		nullUUID(record.ManagerID),
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &dest, nil
}

// Update rewrites every mutable column except the slug.
func (r *DestinationRepository) Update(ctx context.Context, id uuid.UUID, record domain.DestinationRecord) (*domain.Destination, error) {
	query := `
	WITH updated AS (
		UPDATE destination
		SET name = $2,
		    description = $3,
		    district_id = $4,
		    category_id = $5,
		    maps_embed_url = $6,
		    additional_info = $7,
		    main_image_url = $8,
		    manager_id = $9,
		    updated_at = NOW()
		WHERE id = $1
		RETURNING *
	)` + selectDestinations("updated")

	var dest domain.Destination
	err := r.db.GetContext(ctx, &dest, query,
		id,
		record.Name,
		record.Description,
		nullUUID(record.DistrictID),
		nullUUID(record.CategoryID),
		nullString(record.MapsEmbedURL),
		nullString(record.AdditionalInfo),
		record.MainImage,
		nullUUID(record.ManagerID),
	)
	if err != nil {
		return nil, translateError(err)
	}
	return &dest, nil
}

func (r *DestinationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM destination WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *DestinationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, selectDestinations("destination")+` WHERE d.id = $1`, id); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) FindBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, selectDestinations("destination")+` WHERE d.slug = $1`, slug); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "destination", slug)
}

func (r *DestinationRepository) List(ctx context.Context, filter domain.DestinationFilter, limit, offset int) ([]domain.Destination, int, error) {
	where, args := buildDestinationFilter(filter)

	var total int
	countQuery := `SELECT COUNT(*) FROM destination d` + destinationJoins + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, err
	}

	items := make([]domain.Destination, 0)
	if total == 0 || offset < 0 || offset >= total {
		return items, total, nil
	}

	idx := len(args) + 1
	query := selectDestinations("destination") + where +
		fmt.Sprintf(` ORDER BY d.created_at DESC, d.id DESC LIMIT $%d OFFSET $%d`, idx, idx+1)
	args = append(args, limit, offset)

	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *DestinationRepository) IncrementViewsBySlug(ctx context.Context, slug string) (*domain.Destination, error) {
	query := `
	WITH bumped AS (
		UPDATE destination
		SET view_count = view_count + 1
		WHERE slug = $1
		RETURNING *
	)` + selectDestinations("bumped")

	var dest domain.Destination
	if err := r.db.GetContext(ctx, &dest, query, slug); err != nil {
		return nil, err
	}
	return &dest, nil
}

func (r *DestinationRepository) ListByCategory(ctx context.Context, categoryID uuid.UUID) ([]domain.Destination, error) {
	return r.selectOrdered(ctx, ` WHERE d.category_id = $1 ORDER BY d.created_at DESC, d.id DESC`, categoryID)
}

func (r *DestinationRepository) ListByDistrict(ctx context.Context, districtID uuid.UUID) ([]domain.Destination, error) {
	return r.selectOrdered(ctx, ` WHERE d.district_id = $1 ORDER BY d.created_at DESC, d.id DESC`, districtID)
}

func (r *DestinationRepository) ListLatest(ctx context.Context, limit int) ([]domain.Destination, error) {
	return r.selectOrdered(ctx, ` ORDER BY d.created_at DESC, d.id DESC LIMIT $1`, limit)
}

func (r *DestinationRepository) ListMostViewed(ctx context.Context, limit int) ([]domain.Destination, error) {
	return r.selectOrdered(ctx, ` ORDER BY d.view_count DESC, d.created_at DESC LIMIT $1`, limit)
}

func (r *DestinationRepository) ListSummaries(ctx context.Context) ([]domain.DestinationSummary, error) {
	const query = `
		SELECT d.name, dist.name AS district_name, d.main_image_url, d.slug
		FROM destination d
		LEFT JOIN district dist ON dist.id = d.district_id
		ORDER BY d.created_at DESC
	`
	summaries := make([]domain.DestinationSummary, 0)
	if err := r.db.SelectContext(ctx, &summaries, query); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (r *DestinationRepository) Counts(ctx context.Context) (domain.CatalogCounts, error) {
	const query = `
		SELECT (SELECT COUNT(*) FROM destination) AS destinations,
		       (SELECT COUNT(*) FROM category)    AS categories,
		       (SELECT COUNT(*) FROM district)    AS districts,
		       (SELECT COUNT(*) FROM account)     AS accounts
	`
	var counts domain.CatalogCounts
	if err := r.db.GetContext(ctx, &counts, query); err != nil {
		return domain.CatalogCounts{}, err
	}
	return counts, nil
}

func (r *DestinationRepository) selectOrdered(ctx context.Context, tail string, args ...any) ([]domain.Destination, error) {
	items := make([]domain.Destination, 0)
	if err := r.db.SelectContext(ctx, &items, selectDestinations("destination")+tail, args...); err != nil {
		return nil, err
	}
	return items, nil
}

func buildDestinationFilter(filter domain.DestinationFilter) (string, []any) {
	clauses := make([]string, 0, 2)
	args := make([]any, 0, 2)

	if text := strings.TrimSpace(filter.TextQuery); text != "" {
		args = append(args, "%"+escapeLike(text)+"%")
		n := len(args)
		clauses = append(clauses, fmt.Sprintf("(d.name ILIKE $%d OR d.description ILIKE $%d OR dist.name ILIKE $%d)", n, n, n))
	}
	if categorySlug := strings.TrimSpace(filter.CategorySlug); categorySlug != "" {
		args = append(args, categorySlug)
		clauses = append(clauses, fmt.Sprintf("c.slug = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes user input match literally inside an ILIKE pattern.
func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}

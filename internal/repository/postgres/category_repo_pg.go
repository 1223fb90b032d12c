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

const categoryColumns = `id, name, slug, icon, description, created_at`

type CategoryRepository struct {
	db *sqlx.DB
}

func NewCategoryRepo(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

var _ ports.CategoryRepository = (*CategoryRepository)(nil)

func (r *CategoryRepository) Create(ctx context.Context, category domain.Category) (*domain.Category, error) {
	query := `
		INSERT INTO category (name, slug, icon, description)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + categoryColumns

	var created domain.Category
	err := r.db.GetContext(ctx, &created, query, category.Name, category.Slug, category.Icon, nullString(category.Description))
	if err != nil {
		return nil, translateError(err)
	}
	return &created, nil
}

// Update never touches the slug; callers pass normalized values.
func (r *CategoryRepository) Update(ctx context.Context, id uuid.UUID, fields domain.CategoryInput) (*domain.Category, error) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)
	idx := 1

	if fields.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", idx))
		args = append(args, strings.TrimSpace(*fields.Name))
		idx++
	}
	if fields.Icon != nil {
		setParts = append(setParts, fmt.Sprintf("icon = $%d", idx))
		args = append(args, *fields.Icon)
		idx++
	}
	if fields.Description != nil {
		setParts = append(setParts, fmt.Sprintf("description = $%d", idx))
		args = append(args, nullString(fields.Description))
		idx++
	}
	if len(setParts) == 0 {
		return r.FindByID(ctx, id)
	}

	query := fmt.Sprintf(`UPDATE category SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(setParts, ", "), idx, categoryColumns)
	args = append(args, id)

	var category domain.Category
	if err := r.db.GetContext(ctx, &category, query, args...); err != nil {
		return nil, translateError(err)
	}
	return &category, nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return expectOneRow(result)
}

func (r *CategoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM category WHERE id = $1`, id); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) FindBySlug(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := r.db.GetContext(ctx, &category, `SELECT `+categoryColumns+` FROM category WHERE slug = $1`, slug); err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *CategoryRepository) List(ctx context.Context) ([]domain.Category, error) {
	categories := make([]domain.Category, 0)
	if err := r.db.SelectContext(ctx, &categories, `SELECT `+categoryColumns+` FROM category ORDER BY name ASC`); err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *CategoryRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	return slugExists(ctx, r.db, "category", slug)
}

package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const (
	categoryNameMaxLength = 100
	categoryIconMaxLength = 50
)

type CategoryService struct {
	categories ports.CategoryRepository
	cache      ports.CatalogCache
	log        logrus.FieldLogger
}

func NewCategoryService(categories ports.CategoryRepository, cache ports.CatalogCache, log logrus.FieldLogger) *CategoryService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CategoryService{categories: categories, cache: cache, log: log.WithField("component", "categories")}
}

func (s *CategoryService) Create(ctx context.Context, input domain.CategoryInput) (*domain.Category, error) {
	input.Name = trimPtr(input.Name)
	input.Description = trimPtr(input.Description)

	icon := domain.DefaultCategoryIcon
	if input.Icon != nil {
		icon = NormalizeIcon(*input.Icon)
	}

	var problems []string
	checkName(input.Name, "name", categoryNameMaxLength, true, &problems)
	checkMaxLength(&icon, "icon", categoryIconMaxLength, &problems)
	explicit, hasSlug := checkExplicitSlug(input.Slug, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	category := domain.Category{Name: *input.Name, Icon: icon, Description: input.Description}
	insert := func(slug string) (*domain.Category, error) {
		category.Slug = slug
		return s.categories.Create(ctx, category)
	}

	var (
		created *domain.Category
		err     error
	)
	if hasSlug {
		created, err = insertWithExplicitSlug(ctx, explicit, s.categories.SlugExists, insert)
	} else {
		created, err = insertWithSlug(ctx, baseSlug(category.Name, "category"), s.categories.SlugExists, insert)
	}
	if err != nil {
		return nil, err
	}

	invalidateReferenceData(ctx, s.cache, s.log)
	return created, nil
}

func (s *CategoryService) Update(ctx context.Context, id uuid.UUID, input domain.CategoryInput) (*domain.Category, error) {
	input.Name = trimPtr(input.Name)
	input.Description = trimPtr(input.Description)
	input.Slug = nil
	if input.Icon != nil {
		icon := NormalizeIcon(*input.Icon)
		input.Icon = &icon
	}

	var problems []string
	checkName(input.Name, "name", categoryNameMaxLength, false, &problems)
	checkMaxLength(input.Icon, "icon", categoryIconMaxLength, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	updated, err := s.categories.Update(ctx, id, input)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	invalidateReferenceData(ctx, s.cache, s.log)
	return updated, nil
}

// Delete removes the category; destinations keep existing with no category.
func (s *CategoryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.categories.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrCategoryNotFound
		}
		return err
	}
	invalidateReferenceData(ctx, s.cache, s.log)
	return nil
}

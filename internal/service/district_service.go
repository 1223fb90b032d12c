package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/media"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const districtNameMaxLength = 100

type DistrictService struct {
	districts ports.DistrictRepository
	images    imageStore
	cache     ports.CatalogCache
	log       logrus.FieldLogger
}

func NewDistrictService(districts ports.DistrictRepository, storage ports.ObjectStorage, processor media.Processor, imageCfg ImageConfig, cache ports.CatalogCache, log logrus.FieldLogger) *DistrictService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DistrictService{
		districts: districts,
		images:    newImageStore(storage, processor, imageCfg, log),
		cache:     cache,
		log:       log.WithField("component", "districts"),
	}
}

func (s *DistrictService) Create(ctx context.Context, input domain.DistrictInput, thumbnail *ImageUpload) (*domain.District, error) {
	input.Name = trimPtr(input.Name)
	input.Description = trimPtr(input.Description)

	var problems []string
	checkName(input.Name, "name", districtNameMaxLength, true, &problems)
	explicit, hasSlug := checkExplicitSlug(input.Slug, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	district := domain.District{Name: *input.Name, Description: input.Description}
	if thumbnail != nil {
		url, err := s.images.put(ctx, "districts", *thumbnail)
		if err != nil {
			return nil, err
		}
		district.ThumbnailURL = &url
	}

	insert := func(slug string) (*domain.District, error) {
		district.Slug = slug
		return s.districts.Create(ctx, district)
	}

	var (
		created *domain.District
		err     error
	)
	if hasSlug {
		created, err = insertWithExplicitSlug(ctx, explicit, s.districts.SlugExists, insert)
	} else {
		created, err = insertWithSlug(ctx, baseSlug(district.Name, "district"), s.districts.SlugExists, insert)
	}
	if err != nil && district.ThumbnailURL != nil {
		s.images.discard(ctx, *district.ThumbnailURL)
	}
	if isNameViolation(err) {
		return nil, fmt.Errorf("%w: district %q already exists", ErrNameConflict, district.Name)
	}
	if err != nil {
		return nil, err
	}

	invalidateReferenceData(ctx, s.cache, s.log)
	return created, nil
}

func (s *DistrictService) Update(ctx context.Context, id uuid.UUID, input domain.DistrictInput, thumbnail *ImageUpload) (*domain.District, error) {
	input.Name = trimPtr(input.Name)
	input.Description = trimPtr(input.Description)

	var problems []string
	checkName(input.Name, "name", districtNameMaxLength, false, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	current, err := s.districts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDistrictNotFound
		}
		return nil, err
	}

	var thumbnailURL *string
	if thumbnail != nil {
		url, err := s.images.put(ctx, "districts", *thumbnail)
		if err != nil {
			return nil, err
		}
		thumbnailURL = &url
	}

	updated, err := s.districts.Update(ctx, id, input, thumbnailURL)
	if err != nil && thumbnailURL != nil {
		s.images.discard(ctx, *thumbnailURL)
	}
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return nil, ErrDistrictNotFound
	case isNameViolation(err):
		return nil, fmt.Errorf("%w: district %q already exists", ErrNameConflict, *input.Name)
	case err != nil:
		return nil, err
	}
	if thumbnailURL != nil && current.ThumbnailURL != nil {
		s.images.discard(ctx, *current.ThumbnailURL)
	}

	invalidateReferenceData(ctx, s.cache, s.log)
	return updated, nil
}

// Delete removes the district; destinations keep existing with no district.
func (s *DistrictService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.districts.FindByID(ctx, id)
	if err == nil {
		err = s.districts.Delete(ctx, id)
	}
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDistrictNotFound
		}
		return err
	}
	if current.ThumbnailURL != nil {
		s.images.discard(ctx, *current.ThumbnailURL)
	}
	invalidateReferenceData(ctx, s.cache, s.log)
	return nil
}

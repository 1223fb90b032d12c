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

const (
	destinationNameMaxLength = 200
	galleryCaptionMaxLength  = 200
)

type GalleryUpload struct {
	Image   ImageUpload
	Caption *string
}

// DestinationService is the admin write side for destinations and their galleries.
type DestinationService struct {
	destinations ports.DestinationRepository
	districts    ports.DistrictRepository
	categories   ports.CategoryRepository
	gallery      ports.GalleryRepository
	images       imageStore
}

func NewDestinationService(
	destinations ports.DestinationRepository,
	districts ports.DistrictRepository,
	categories ports.CategoryRepository,
	gallery ports.GalleryRepository,
	storage ports.ObjectStorage,
	processor media.Processor,
	imageCfg ImageConfig,
	log logrus.FieldLogger,
) *DestinationService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &DestinationService{
		destinations: destinations,
		districts:    districts,
		categories:   categories,
		gallery:      gallery,
		images:       newImageStore(storage, processor, imageCfg, log.WithField("component", "destinations")),
	}
}

func (s *DestinationService) Get(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	images, err := s.gallery.ListByDestination(ctx, id)
	if err != nil {
		return nil, err
	}
	dest.Gallery = images
	return dest, nil
}

// Create stores a new destination. The manager defaults to actorID when not supplied.
func (s *DestinationService) Create(ctx context.Context, actorID uuid.UUID, input domain.DestinationInput, mainImage *ImageUpload) (*domain.Destination, error) {
	input = normalizeDestinationInput(input)

	var problems []string
	checkName(input.Name, "name", destinationNameMaxLength, true, &problems)
	explicit, hasSlug := checkExplicitSlug(input.Slug, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}
	if mainImage == nil || mainImage.Reader == nil || mainImage.Size <= 0 {
		return nil, ErrMainImageRequired
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	url, err := s.images.put(ctx, "destinations", *mainImage)
	if err != nil {
		return nil, err
	}

	record := domain.DestinationRecord{
		Name:           *input.Name,
		Description:    valueOrEmpty(input.Description),
		DistrictID:     input.DistrictID,
		CategoryID:     input.CategoryID,
		MapsEmbedURL:   input.MapsEmbedURL,
		AdditionalInfo: input.AdditionalInfo,
		MainImage:      url,
		ManagerID:      input.ManagerID,
	}
	if record.ManagerID == nil && actorID != uuid.Nil {
		record.ManagerID = &actorID
	}

	insert := func(slug string) (*domain.Destination, error) {
		record.Slug = slug
		return s.destinations.Create(ctx, record)
	}
	var created *domain.Destination
	if hasSlug {
		created, err = insertWithExplicitSlug(ctx, explicit, s.destinations.SlugExists, insert)
	} else {
		created, err = insertWithSlug(ctx, baseSlug(record.Name, "destination"), s.destinations.SlugExists, insert)
	}
	if err != nil {
		s.images.discard(ctx, url)
		return nil, err
	}
	return created, nil
}

// Update applies the non-nil fields of input. The slug is never changed.
func (s *DestinationService) Update(ctx context.Context, id uuid.UUID, input domain.DestinationInput, mainImage *ImageUpload) (*domain.Destination, error) {
	input = normalizeDestinationInput(input)
	input.Slug = nil

	var problems []string
	checkName(input.Name, "name", destinationNameMaxLength, false, &problems)
	if len(problems) > 0 {
		return nil, validationError(problems)
	}

	current, err := s.findByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, input); err != nil {
		return nil, err
	}

	record := domain.DestinationRecord{
		Name:           current.Name,
		Slug:           current.Slug,
		Description:    current.Description,
		DistrictID:     current.DistrictID,
		CategoryID:     current.CategoryID,
		MapsEmbedURL:   current.MapsEmbedURL,
		AdditionalInfo: current.AdditionalInfo,
		MainImage:      current.MainImage,
		ManagerID:      current.ManagerID,
	}
	if input.Name != nil {
		record.Name = *input.Name
	}
	if input.Description != nil {
		record.Description = *input.Description
	}
	if input.DistrictID != nil {
		record.DistrictID = input.DistrictID
	}
	if input.CategoryID != nil {
		record.CategoryID = input.CategoryID
	}
	if input.MapsEmbedURL != nil {
		record.MapsEmbedURL = input.MapsEmbedURL
	}
	if input.AdditionalInfo != nil {
		record.AdditionalInfo = input.AdditionalInfo
	}
	if input.ManagerID != nil {
		record.ManagerID = input.ManagerID
	}
	if mainImage != nil {
		url, err := s.images.put(ctx, "destinations", *mainImage)
		if err != nil {
			return nil, err
		}
		record.MainImage = url
	}

	updated, err := s.destinations.Update(ctx, id, record)
	if err != nil {
		if mainImage != nil {
			s.images.discard(ctx, record.MainImage)
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	if mainImage != nil {
		s.images.discard(ctx, current.MainImage)
	}
	return updated, nil
}

// Delete removes the destination and, through the schema, its gallery.
// Stored images go afterwards.
func (s *DestinationService) Delete(ctx context.Context, id uuid.UUID) error {
	current, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.destinations.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrDestinationNotFound
		}
		return err
	}
	urls := []string{current.MainImage}
	for _, image := range current.Gallery {
		urls = append(urls, image.ImageURL)
	}
	s.images.discard(ctx, urls...)
	return nil
}

func (s *DestinationService) AddGalleryImages(ctx context.Context, destinationID uuid.UUID, uploads []GalleryUpload) ([]domain.GalleryImage, error) {
	if len(uploads) == 0 {
		return nil, ErrImageRequired
	}
	var problems []string
	for i, upload := range uploads {
		caption := trimPtr(upload.Caption)
		checkMaxLength(caption, fmt.Sprintf("caption %d", i+1), galleryCaptionMaxLength, &problems)
		uploads[i].Caption = caption
	}
	if len(problems) > 0 {
		return nil, validationError(problems)
	}
	if _, err := s.findByID(ctx, destinationID); err != nil {
		return nil, err
	}

	prefix := fmt.Sprintf("destinations/%s/gallery", destinationID)
	images := make([]domain.GalleryImage, 0, len(uploads))
	for _, upload := range uploads {
		url, err := s.images.put(ctx, prefix, upload.Image)
		if err != nil {
			s.images.discard(ctx, galleryURLs(images)...)
			return nil, err
		}
		images = append(images, domain.GalleryImage{DestinationID: destinationID, ImageURL: url, Caption: upload.Caption})
	}
	added, err := s.gallery.AddMany(ctx, destinationID, images)
	if err != nil {
		s.images.discard(ctx, galleryURLs(images)...)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDestinationNotFound
		}
		return nil, err
	}
	return added, nil
}

// DeleteGalleryImage only matches images that belong to destinationID.
func (s *DestinationService) DeleteGalleryImage(ctx context.Context, destinationID, imageID uuid.UUID) error {
	images, err := s.gallery.ListByDestination(ctx, destinationID)
	if err != nil {
		return err
	}
	var url string
	for _, image := range images {
		if image.ID == imageID {
			url = image.ImageURL
			break
		}
	}
	if err := s.gallery.Delete(ctx, destinationID, imageID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrGalleryImageNotFound
		}
		return err
	}
	s.images.discard(ctx, url)
	return nil
}

func galleryURLs(images []domain.GalleryImage) []string {
	urls := make([]string, len(images))
	for i, image := range images {
		urls[i] = image.ImageURL
	}
	return urls
}

func (s *DestinationService) findByID(ctx context.Context, id uuid.UUID) (*domain.Destination, error) {
	dest, err := s.destinations.FindByID(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDestinationNotFound
	}
	return dest, err
}

// checkReferences rejects district and category ids that do not exist. uuid.Nil clears a reference.
func (s *DestinationService) checkReferences(ctx context.Context, input domain.DestinationInput) error {
	var problems []string
	if input.DistrictID != nil && *input.DistrictID != uuid.Nil {
		if _, err := s.districts.FindByID(ctx, *input.DistrictID); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			problems = append(problems, "district does not exist")
		}
	}
	if input.CategoryID != nil && *input.CategoryID != uuid.Nil {
		if _, err := s.categories.FindByID(ctx, *input.CategoryID); err != nil {
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			problems = append(problems, "category does not exist")
		}
	}
	if len(problems) > 0 {
		return validationError(problems)
	}
	return nil
}

func normalizeDestinationInput(input domain.DestinationInput) domain.DestinationInput {
	input.Name = trimPtr(input.Name)
	input.Description = trimPtr(input.Description)
	input.AdditionalInfo = trimPtr(input.AdditionalInfo)
	if input.MapsEmbedURL != nil {
		normalized := NormalizeMapsURL(*input.MapsEmbedURL)
		input.MapsEmbedURL = &normalized
	}
	return input
}

func valueOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}

package service

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

const (
	CacheKeyCategories = "catalog:categories"
	CacheKeyDistricts  = "catalog:districts"
)

// CatalogConfig drives the public listing. Zero values fall back to the defaults below.
type CatalogConfig struct {
	PageSize      int
	FeaturedCount int
	PopularCount  int
	CacheTTL      time.Duration
}

func (c CatalogConfig) withDefaults() CatalogConfig {
	if c.PageSize <= 0 {
		c.PageSize = 6
	}
	if c.FeaturedCount <= 0 {
		c.FeaturedCount = 3
	}
	if c.PopularCount <= 0 {
		c.PopularCount = 3
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = 5 * time.Minute
	}
	return c
}

// CatalogService serves the read side of the directory.
type CatalogService struct {
	destinations ports.DestinationRepository
	categories   ports.CategoryRepository
	districts    ports.DistrictRepository
	gallery      ports.GalleryRepository
	cache        ports.CatalogCache
	cfg          CatalogConfig
	log          logrus.FieldLogger
	shuffle      func(n int, swap func(i, j int))
}

func NewCatalogService(
	destinations ports.DestinationRepository,
	categories ports.CategoryRepository,
	districts ports.DistrictRepository,
	gallery ports.GalleryRepository,
	cache ports.CatalogCache,
	cfg CatalogConfig,
	log logrus.FieldLogger,
) *CatalogService {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &CatalogService{
		destinations: destinations,
		categories:   categories,
		districts:    districts,
		gallery:      gallery,
		cache:        cache,
		cfg:          cfg.withDefaults(),
		log:          log.WithField("component", "catalog"),
		shuffle:      rand.Shuffle,
	}
}

// SetShuffler replaces the shuffle used by Surprise.
func (s *CatalogService) SetShuffler(shuffle func(n int, swap func(i, j int))) {
	if shuffle != nil {
		s.shuffle = shuffle
	}
}

func (s *CatalogService) PageSize() int {
	return s.cfg.PageSize
}

func (s *CatalogService) ListDestinations(ctx context.Context, filter domain.DestinationFilter) (*domain.DestinationPage, error) {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := s.cfg.PageSize

	items, total, err := s.destinations.List(ctx, filter, size, pageOffset(page, size))
	if err != nil {
		return nil, err
	}

	totalPages := (total + size - 1) / size
	return &domain.DestinationPage{
		Items:       items,
		Page:        page,
		PageSize:    size,
		TotalItems:  total,
		TotalPages:  totalPages,
		HasNext:     page < totalPages,
		HasPrevious: page > 1,
	}, nil
}

// pageOffset saturates at math.MaxInt so huge page numbers land past the last row.
func pageOffset(page, size int) int {
	if page-1 > math.MaxInt/size {
		return math.MaxInt
	}
	return (page - 1) * size
}

// ViewDestination records one view and returns the refreshed destination with its gallery.
func (s *CatalogService) ViewDestination(ctx context.Context, slug string) (*domain.Destination, error) {
	dest, err := s.destinations.IncrementViewsBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDestinationNotFound
	}
	if err != nil {
		return nil, err
	}

	images, err := s.gallery.ListByDestination(ctx, dest.ID)
	if err != nil {
		return nil, err
	}
	dest.Gallery = images
	return dest, nil
}

// GetCategory returns every destination in the category, newest first.
func (s *CatalogService) GetCategory(ctx context.Context, slug string) (*domain.CategoryDetail, error) {
	category, err := s.categories.FindBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.destinations.ListByCategory(ctx, category.ID)
	if err != nil {
		return nil, err
	}
	return &domain.CategoryDetail{Category: *category, Destinations: items}, nil
}

func (s *CatalogService) GetDistrict(ctx context.Context, slug string) (*domain.DistrictDetail, error) {
	district, err := s.districts.FindBySlug(ctx, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDistrictNotFound
	}
	if err != nil {
		return nil, err
	}

	items, err := s.destinations.ListByDistrict(ctx, district.ID)
	if err != nil {
		return nil, err
	}
	return &domain.DistrictDetail{District: *district, Destinations: items}, nil
}

func (s *CatalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if s.fromCache(ctx, CacheKeyCategories, &categories) {
		return categories, nil
	}
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, CacheKeyCategories, categories)
	return categories, nil
}

func (s *CatalogService) ListDistricts(ctx context.Context) ([]domain.District, error) {
	var districts []domain.District
	if s.fromCache(ctx, CacheKeyDistricts, &districts) {
		return districts, nil
	}
	districts, err := s.districts.List(ctx)
	if err != nil {
		return nil, err
	}
	s.toCache(ctx, CacheKeyDistricts, districts)
	return districts, nil
}

// Surprise returns every destination summary in random order.
func (s *CatalogService) Surprise(ctx context.Context) ([]domain.DestinationSummary, error) {
	summaries, err := s.destinations.ListSummaries(ctx)
	if err != nil {
		return nil, err
	}
	s.shuffle(len(summaries), func(i, j int) {
		summaries[i], summaries[j] = summaries[j], summaries[i]
	})
	return summaries, nil
}

func (s *CatalogService) Home(ctx context.Context) (*domain.HomeDigest, error) {
	featured, err := s.destinations.ListLatest(ctx, s.cfg.FeaturedCount)
	if err != nil {
		return nil, err
	}
	popular, err := s.destinations.ListMostViewed(ctx, s.cfg.PopularCount)
	if err != nil {
		return nil, err
	}
	categories, err := s.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	return &domain.HomeDigest{Featured: featured, Popular: popular, Categories: categories}, nil
}

func (s *CatalogService) fromCache(ctx context.Context, key string, dest any) bool {
	if s.cache == nil {
		return false
	}
	hit, err := s.cache.Get(ctx, key, dest)
	if err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache read failed")
		return false
	}
	return hit
}

func (s *CatalogService) toCache(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.log.WithError(err).WithField("key", key).Warn("cache write failed")
	}
}

// invalidateReferenceData drops cached category and district lists after an admin write.
func invalidateReferenceData(ctx context.Context, cache ports.CatalogCache, log logrus.FieldLogger) {
	if cache == nil {
		return
	}
	if err := cache.Delete(ctx, CacheKeyCategories, CacheKeyDistricts); err != nil && log != nil {
		log.WithError(err).Warn("cache invalidation failed")
	}
}

package http

import (
	"context"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/service"
)

type stubCatalog struct {
	lastFilter domain.DestinationFilter
	page       *domain.DestinationPage
	dest       *domain.Destination
	err        error
	views      int
}

func (s *stubCatalog) Home(context.Context) (*domain.HomeDigest, error) {
	return &domain.HomeDigest{}, s.err
}

func (s *stubCatalog) ListDestinations(_ context.Context, filter domain.DestinationFilter) (*domain.DestinationPage, error) {
	s.lastFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	if s.page != nil {
		return s.page, nil
	}
	return &domain.DestinationPage{Items: []domain.Destination{}, Page: filter.Page, PageSize: 6}, nil
}

func (s *stubCatalog) ViewDestination(_ context.Context, slug string) (*domain.Destination, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.views++
	if s.dest == nil || s.dest.Slug != slug {
		return nil, service.ErrDestinationNotFound
	}
	out := *s.dest
	out.ViewCount = int64(s.views)
	return &out, nil
}

func (s *stubCatalog) ListCategories(context.Context) ([]domain.Category, error) {
	return []domain.Category{{Name: "Beaches", Slug: "beaches", Icon: "beach"}}, s.err
}

func (s *stubCatalog) GetCategory(_ context.Context, slug string) (*domain.CategoryDetail, error) {
	if slug != "beaches" {
		return nil, service.ErrCategoryNotFound
	}
	return &domain.CategoryDetail{Category: domain.Category{Name: "Beaches", Slug: slug}, Destinations: []domain.Destination{}}, nil
}

func (s *stubCatalog) ListDistricts(context.Context) ([]domain.District, error) {
	return []domain.District{}, s.err
}

func (s *stubCatalog) GetDistrict(_ context.Context, slug string) (*domain.DistrictDetail, error) {
	return nil, service.ErrDistrictNotFound
}

func (s *stubCatalog) Surprise(context.Context) ([]domain.DestinationSummary, error) {
	return []domain.DestinationSummary{{Name: "Pink Beach", Slug: "pink-beach"}}, s.err
}

type stubAccounts struct {
	accounts map[string]*domain.Account
}

func (s *stubAccounts) Login(_ context.Context, email, password string) (*service.LoginResult, error) {
	if password != "rinjani2024" {
		return nil, service.ErrInvalidCredentials
	}
	for token, account := range s.accounts {
		if account.Email == email {
			return &service.LoginResult{Token: token, ExpiresAt: time.Now().Add(time.Hour), Account: account}, nil
		}
	}
	return nil, service.ErrInvalidCredentials
}

func (s *stubAccounts) Authenticate(_ context.Context, token string) (*domain.Account, error) {
	account, ok := s.accounts[token]
	if !ok {
		return nil, service.ErrUnauthorized
	}
	return account, nil
}

func newStubAccounts() (*stubAccounts, *domain.Account) {
	staff := &domain.Account{ID: uuid.New(), Email: "admin@lombok.test", IsStaff: true}
	visitor := &domain.Account{ID: uuid.New(), Email: "guest@lombok.test"}
	return &stubAccounts{accounts: map[string]*domain.Account{"staff-token": staff, "guest-token": visitor}}, staff
}

type createCall struct {
	actor     uuid.UUID
	input     domain.DestinationInput
	imageName string
	imageData string
}

type stubDestinations struct {
	created  []createCall
	updated  []domain.DestinationInput
	gallery  []service.GalleryUpload
	captions []string
	err      error
}

func readUpload(upload *service.ImageUpload) (string, string) {
	if upload == nil {
		return "", ""
	}
	data, _ := io.ReadAll(upload.Reader)
	return upload.FileName, string(data)
}

func (s *stubDestinations) Get(_ context.Context, id uuid.UUID) (*domain.Destination, error) {
	return &domain.Destination{ID: id}, s.err
}

func (s *stubDestinations) Create(_ context.Context, actorID uuid.UUID, input domain.DestinationInput, mainImage *service.ImageUpload) (*domain.Destination, error) {
	if s.err != nil {
		return nil, s.err
	}
	if mainImage == nil {
		return nil, service.ErrMainImageRequired
	}
	name, data := readUpload(mainImage)
	s.created = append(s.created, createCall{actor: actorID, input: input, imageName: name, imageData: data})
	return &domain.Destination{ID: uuid.New(), Name: *input.Name, Slug: "created"}, nil
}

func (s *stubDestinations) Update(_ context.Context, id uuid.UUID, input domain.DestinationInput, _ *service.ImageUpload) (*domain.Destination, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.updated = append(s.updated, input)
	return &domain.Destination{ID: id}, nil
}

func (s *stubDestinations) Delete(context.Context, uuid.UUID) error {
	return s.err
}

func (s *stubDestinations) AddGalleryImages(_ context.Context, destinationID uuid.UUID, uploads []service.GalleryUpload) ([]domain.GalleryImage, error) {
	s.gallery = uploads
	out := make([]domain.GalleryImage, len(uploads))
	for i, u := range uploads {
		caption := ""
		if u.Caption != nil {
			caption = *u.Caption
		}
		s.captions = append(s.captions, caption)
		out[i] = domain.GalleryImage{ID: uuid.New(), DestinationID: destinationID, ImageURL: u.Image.FileName, Caption: u.Caption}
	}
	return out, nil
}

func (s *stubDestinations) DeleteGalleryImage(context.Context, uuid.UUID, uuid.UUID) error {
	return s.err
}

type stubDistricts struct {
	inputs []domain.DistrictInput
	thumbs []string
}

func (s *stubDistricts) Create(_ context.Context, input domain.DistrictInput, thumbnail *service.ImageUpload) (*domain.District, error) {
	s.inputs = append(s.inputs, input)
	name, _ := readUpload(thumbnail)
	s.thumbs = append(s.thumbs, name)
	return &domain.District{ID: uuid.New(), Name: *input.Name}, nil
}

func (s *stubDistricts) Update(_ context.Context, id uuid.UUID, input domain.DistrictInput, _ *service.ImageUpload) (*domain.District, error) {
	s.inputs = append(s.inputs, input)
	return &domain.District{ID: id}, nil
}

func (s *stubDistricts) Delete(context.Context, uuid.UUID) error {
	return service.ErrDistrictNotFound
}

type stubCategories struct {
	inputs []domain.CategoryInput
}

func (s *stubCategories) Create(_ context.Context, input domain.CategoryInput) (*domain.Category, error) {
	s.inputs = append(s.inputs, input)
	if input.Name != nil && *input.Name == "Beaches" {
		return nil, service.ErrSlugConflict
	}
	return &domain.Category{ID: uuid.New()}, nil
}

func (s *stubCategories) Update(_ context.Context, id uuid.UUID, input domain.CategoryInput) (*domain.Category, error) {
	s.inputs = append(s.inputs, input)
	return &domain.Category{ID: id}, nil
}

func (s *stubCategories) Delete(context.Context, uuid.UUID) error {
	return nil
}

type stubDashboard struct{}

func (stubDashboard) Stats(context.Context) (*domain.DashboardStats, error) {
	return &domain.DashboardStats{Counts: domain.CatalogCounts{Destinations: 4}}, nil
}

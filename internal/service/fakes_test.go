package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/njprem/Lombok_Tourism_BackEnd/internal/domain"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/media"
	"github.com/njprem/Lombok_Tourism_BackEnd/internal/repository/ports"
)

func strPtr(v string) *string { return &v }

// memoryCatalog is a single in-memory store backing every repository port.
type memoryCatalog struct {
	mu           sync.Mutex
	now          time.Time
	districts    map[uuid.UUID]*domain.District
	categories   map[uuid.UUID]*domain.Category
	destinations map[uuid.UUID]*domain.Destination
	gallery      map[uuid.UUID][]domain.GalleryImage
	accounts     map[uuid.UUID]*domain.Account

	// raceSlugs makes the next Create for these slugs fail as if a concurrent writer won.
	raceSlugs map[string]bool
}

func newMemoryCatalog() *memoryCatalog {
	return &memoryCatalog{
		now:          time.Date(2024, 7, 1, 9, 0, 0, 0, time.UTC),
		districts:    map[uuid.UUID]*domain.District{},
		categories:   map[uuid.UUID]*domain.Category{},
		destinations: map[uuid.UUID]*domain.Destination{},
		gallery:      map[uuid.UUID][]domain.GalleryImage{},
		accounts:     map[uuid.UUID]*domain.Account{},
		raceSlugs:    map[string]bool{},
	}
}

func (m *memoryCatalog) tick() time.Time {
	m.now = m.now.Add(time.Minute)
	return m.now
}

type memoryDistricts struct{ *memoryCatalog }
type memoryCategories struct{ *memoryCatalog }
type memoryDestinations struct{ *memoryCatalog }
type memoryGallery struct{ *memoryCatalog }
type memoryAccounts struct{ *memoryCatalog }

var (
	_ ports.DistrictRepository    = memoryDistricts{}
	_ ports.CategoryRepository    = memoryCategories{}
	_ ports.DestinationRepository = memoryDestinations{}
	_ ports.GalleryRepository     = memoryGallery{}
	_ ports.AccountRepository     = memoryAccounts{}
)

func (r memoryDistricts) Create(_ context.Context, d domain.District) (*domain.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.districts {
		if existing.Slug == d.Slug {
			return nil, &ports.UniqueViolation{Constraint: "district_slug_key"}
		}
		if existing.Name == d.Name {
			return nil, &ports.UniqueViolation{Constraint: "district_name_key"}
		}
	}
	d.ID = uuid.New()
	d.CreatedAt = r.tick()
	r.districts[d.ID] = &d
	out := d
	return &out, nil
}

func (r memoryDistricts) Update(_ context.Context, id uuid.UUID, fields domain.DistrictInput, thumbnailURL *string) (*domain.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.districts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Name != nil {
		for _, existing := range r.districts {
			if existing.ID != id && existing.Name == *fields.Name {
				return nil, &ports.UniqueViolation{Constraint: "district_name_key"}
			}
		}
		d.Name = *fields.Name
	}
	if fields.Description != nil {
		d.Description = fields.Description
	}
	if thumbnailURL != nil {
		d.ThumbnailURL = thumbnailURL
	}
	out := *d
	return &out, nil
}

func (r memoryDistricts) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.districts[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.districts, id)
	for _, dest := range r.destinations {
		if dest.DistrictID != nil && *dest.DistrictID == id {
			dest.DistrictID = nil
		}
	}
	return nil
}

func (r memoryDistricts) FindByID(_ context.Context, id uuid.UUID) (*domain.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.districts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *d
	return &out, nil
}

func (r memoryDistricts) FindBySlug(_ context.Context, slug string) (*domain.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.districts {
		if d.Slug == slug {
			out := *d
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memoryDistricts) List(context.Context) ([]domain.District, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.District, 0, len(r.districts))
	for _, d := range r.districts {
		out = append(out, *d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memoryDistricts) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.districts {
		if d.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r memoryCategories) Create(_ context.Context, c domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.categories {
		if existing.Slug == c.Slug {
			return nil, &ports.UniqueViolation{Constraint: "category_slug_key"}
		}
	}
	c.ID = uuid.New()
	c.CreatedAt = r.tick()
	r.categories[c.ID] = &c
	out := c
	return &out, nil
}

func (r memoryCategories) Update(_ context.Context, id uuid.UUID, fields domain.CategoryInput) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if fields.Name != nil {
		c.Name = *fields.Name
	}
	if fields.Icon != nil {
		c.Icon = *fields.Icon
	}
	if fields.Description != nil {
		c.Description = fields.Description
	}
	out := *c
	return &out, nil
}

func (r memoryCategories) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.categories[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.categories, id)
	for _, dest := range r.destinations {
		if dest.CategoryID != nil && *dest.CategoryID == id {
			dest.CategoryID = nil
		}
	}
	return nil
}

func (r memoryCategories) FindByID(_ context.Context, id uuid.UUID) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.categories[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *c
	return &out, nil
}

func (r memoryCategories) FindBySlug(_ context.Context, slug string) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			out := *c
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memoryCategories) List(context.Context) ([]domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Category, 0, len(r.categories))
	for _, c := range r.categories {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r memoryCategories) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.categories {
		if c.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

// resolve fills the joined read fields the way the SQL LEFT JOINs do. Caller holds mu.
func (m *memoryCatalog) resolve(d domain.Destination) domain.Destination {
	d.DistrictName, d.DistrictSlug = nil, nil
	d.CategoryName, d.CategorySlug, d.CategoryIcon = nil, nil, nil
	if d.DistrictID != nil {
		if dist, ok := m.districts[*d.DistrictID]; ok {
			d.DistrictName, d.DistrictSlug = strPtr(dist.Name), strPtr(dist.Slug)
		}
	}
	if d.CategoryID != nil {
		if cat, ok := m.categories[*d.CategoryID]; ok {
			d.CategoryName, d.CategorySlug, d.CategoryIcon = strPtr(cat.Name), strPtr(cat.Slug), strPtr(cat.Icon)
		}
	}
	d.Gallery = nil
	return d
}

// sorted returns resolved destinations newest first. Caller holds mu.
func (m *memoryCatalog) sorted(keep func(domain.Destination) bool) []domain.Destination {
	out := make([]domain.Destination, 0, len(m.destinations))
	for _, d := range m.destinations {
		resolved := m.resolve(*d)
		if keep == nil || keep(resolved) {
			out = append(out, resolved)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func nilIfZero(id *uuid.UUID) *uuid.UUID {
	if id == nil || *id == uuid.Nil {
		return nil
	}
	v := *id
	return &v
}

func (r memoryDestinations) Create(_ context.Context, rec domain.DestinationRecord) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.raceSlugs[rec.Slug] {
		delete(r.raceSlugs, rec.Slug)
		return nil, &ports.UniqueViolation{Constraint: "destination_slug_key"}
	}
	for _, existing := range r.destinations {
		if existing.Slug == rec.Slug {
			return nil, &ports.UniqueViolation{Constraint: "destination_slug_key"}
		}
	}
	now := r.tick()
	d := &domain.Destination{
		ID:             uuid.New(),
		Name:           rec.Name,
		Slug:           rec.Slug,
		Description:    rec.Description,
		DistrictID:     nilIfZero(rec.DistrictID),
		CategoryID:     nilIfZero(rec.CategoryID),
		MapsEmbedURL:   rec.MapsEmbedURL,
		AdditionalInfo: rec.AdditionalInfo,
		MainImage:      rec.MainImage,
		ManagerID:      nilIfZero(rec.ManagerID),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.destinations[d.ID] = d
	out := r.resolve(*d)
	return &out, nil
}

func (r memoryDestinations) Update(_ context.Context, id uuid.UUID, rec domain.DestinationRecord) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.destinations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	d.Name = rec.Name
	d.Description = rec.Description
	d.DistrictID = nilIfZero(rec.DistrictID)
	d.CategoryID = nilIfZero(rec.CategoryID)
	d.MapsEmbedURL = rec.MapsEmbedURL
	d.AdditionalInfo = rec.AdditionalInfo
	d.MainImage = rec.MainImage
	d.ManagerID = nilIfZero(rec.ManagerID)
	d.UpdatedAt = r.tick()
	out := r.resolve(*d)
	return &out, nil
}

func (r memoryDestinations) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.destinations[id]; !ok {
		return sql.ErrNoRows
	}
	delete(r.destinations, id)
	delete(r.gallery, id)
	return nil
}

func (r memoryDestinations) FindByID(_ context.Context, id uuid.UUID) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.destinations[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := r.resolve(*d)
	return &out, nil
}

func (r memoryDestinations) FindBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.destinations {
		if d.Slug == slug {
			out := r.resolve(*d)
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memoryDestinations) SlugExists(_ context.Context, slug string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.destinations {
		if d.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func containsFold(value *string, needle string) bool {
	return value != nil && strings.Contains(strings.ToLower(*value), needle)
}

func (r memoryDestinations) List(_ context.Context, filter domain.DestinationFilter, limit, offset int) ([]domain.Destination, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text := strings.ToLower(strings.TrimSpace(filter.TextQuery))
	category := strings.TrimSpace(filter.CategorySlug)
	matches := r.sorted(func(d domain.Destination) bool {
		if text != "" && !containsFold(&d.Name, text) && !containsFold(&d.Description, text) && !containsFold(d.DistrictName, text) {
			return false
		}
		if category != "" && (d.CategorySlug == nil || *d.CategorySlug != category) {
			return false
		}
		return true
	})
	total := len(matches)
	if offset >= total {
		return []domain.Destination{}, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matches[offset:end], total, nil
}

func (r memoryDestinations) IncrementViewsBySlug(_ context.Context, slug string) (*domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, d := range r.destinations {
		if d.Slug == slug {
			d.ViewCount++
			out := r.resolve(*d)
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memoryDestinations) ListByCategory(_ context.Context, categoryID uuid.UUID) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(d domain.Destination) bool { return d.CategoryID != nil && *d.CategoryID == categoryID }), nil
}

func (r memoryDestinations) ListByDistrict(_ context.Context, districtID uuid.UUID) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sorted(func(d domain.Destination) bool { return d.DistrictID != nil && *d.DistrictID == districtID }), nil
}

func (r memoryDestinations) ListLatest(_ context.Context, limit int) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(nil)
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memoryDestinations) ListMostViewed(_ context.Context, limit int) ([]domain.Destination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(nil)
	sort.SliceStable(all, func(i, j int) bool { return all[i].ViewCount > all[j].ViewCount })
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (r memoryDestinations) ListSummaries(context.Context) ([]domain.DestinationSummary, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.sorted(nil)
	out := make([]domain.DestinationSummary, len(all))
	for i, d := range all {
		out[i] = domain.DestinationSummary{Name: d.Name, DistrictName: d.DistrictName, MainImage: d.MainImage, Slug: d.Slug}
	}
	return out, nil
}

func (r memoryDestinations) Counts(context.Context) (domain.CatalogCounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return domain.CatalogCounts{
		Destinations: len(r.destinations),
		Categories:   len(r.categories),
		Districts:    len(r.districts),
		Accounts:     len(r.accounts),
	}, nil
}

func (r memoryGallery) AddMany(_ context.Context, destinationID uuid.UUID, images []domain.GalleryImage) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	added := make([]domain.GalleryImage, 0, len(images))
	for _, img := range images {
		img.ID = uuid.New()
		img.DestinationID = destinationID
		img.CreatedAt = r.tick()
		r.gallery[destinationID] = append(r.gallery[destinationID], img)
		added = append(added, img)
	}
	return added, nil
}

func (r memoryGallery) ListByDestination(_ context.Context, destinationID uuid.UUID) ([]domain.GalleryImage, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.GalleryImage{}, r.gallery[destinationID]...), nil
}

func (r memoryGallery) Delete(_ context.Context, destinationID, imageID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	images := r.gallery[destinationID]
	for i, img := range images {
		if img.ID == imageID {
			r.gallery[destinationID] = append(images[:i], images[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (r memoryAccounts) Create(_ context.Context, email string, fullName *string, hash, salt []byte, isStaff bool) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			return nil, &ports.UniqueViolation{Constraint: "account_email_key"}
		}
	}
	a := &domain.Account{ID: uuid.New(), Email: email, FullName: fullName, PasswordHash: hash, PasswordSalt: salt, IsStaff: isStaff, CreatedAt: r.tick()}
	r.accounts[a.ID] = a
	out := *a
	return &out, nil
}

func (r memoryAccounts) FindByEmail(_ context.Context, email string) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.accounts {
		if a.Email == email {
			out := *a
			return &out, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (r memoryAccounts) FindByID(_ context.Context, id uuid.UUID) (*domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.accounts[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	out := *a
	return &out, nil
}

type memoryStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
}

const memoryStorageBase = "https://cdn.lombok.test/"

func (m *memoryStorage) Remove(_ context.Context, bucket, objectURL string) error {
	key, ok := strings.CutPrefix(objectURL, memoryStorageBase)
	if !ok || !strings.HasPrefix(key, bucket+"/") {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.objects, key)
	m.removed = append(m.removed, objectURL)
	return nil
}

func (m *memoryStorage) has(objectURL string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[strings.TrimPrefix(objectURL, memoryStorageBase)]
	return ok
}

func (m *memoryStorage) Upload(_ context.Context, bucket, objectName, _ string, reader io.Reader, _ int64) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.objects == nil {
		m.objects = map[string][]byte{}
	}
	m.objects[bucket+"/"+objectName] = data
	return fmt.Sprintf("%s%s/%s", memoryStorageBase, bucket, objectName), nil
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	gets    int
	deletes int
	failGet error
}

func newMemoryCache() *memoryCache { return &memoryCache{entries: map[string][]byte{}} }

func (c *memoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gets++
	if c.failGet != nil {
		return false, c.failGet
	}
	raw, ok := c.entries[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (c *memoryCache) Set(_ context.Context, key string, value any, _ time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = raw
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deletes++
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}

// stubImageProcessor skips decoding so tests can upload arbitrary bytes.
type stubImageProcessor struct {
	contentType string
	err         error
	calls       int
}

func (s *stubImageProcessor) Process(_ context.Context, upload media.Upload, _ int) (*media.Result, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, err
	}
	ct := s.contentType
	if ct == "" {
		ct = "image/jpeg"
	}
	return &media.Result{Bytes: data, ContentType: ct}, nil
}

func jpegUpload(name string) *ImageUpload {
	data := []byte("fake-jpeg-" + name)
	return &ImageUpload{Reader: bytes.NewReader(data), Size: int64(len(data)), FileName: name, ContentType: "image/jpeg"}
}

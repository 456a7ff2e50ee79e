// Package fakes holds in-memory stand-ins for the database and blob store,
// used by handler and middleware tests.
package fakes

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/models"
)

type FakeStore struct {
	Users     map[uuid.UUID]models.User
	Campaigns map[uuid.UUID]models.Campaign
	Results   map[uuid.UUID]models.CampaignResult
	Settings  *models.SiteSettings
	Slides    map[int64]models.Slide

	SettingsCreates int
	nextSlideID     int64
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		Users:     make(map[uuid.UUID]models.User),
		Campaigns: make(map[uuid.UUID]models.Campaign),
		Results:   make(map[uuid.UUID]models.CampaignResult),
		Slides:    make(map[int64]models.Slide),
	}
}

var _ database.Store = (*FakeStore)(nil)

// ---- Users ----

func (s *FakeStore) CreateUser(u *models.User) error {
	u.CreatedAt = time.Now()
	s.Users[u.ID] = *u
	return nil
}

func (s *FakeStore) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.Users {
		if u.Username == username {
			user := u
			return &user, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *FakeStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	u, ok := s.Users[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	user := u
	return &user, nil
}

// ---- Campaigns ----

func (s *FakeStore) CreateCampaign(c *models.Campaign) error {
	c.CreatedAt = time.Now()
	s.Campaigns[c.ID] = *c
	return nil
}

func (s *FakeStore) GetCampaignBySlug(slug string) (*models.Campaign, error) {
	for _, c := range s.Campaigns {
		if c.Slug == slug {
			campaign := c
			return &campaign, nil
		}
	}
	return nil, database.ErrNotFound
}

func (s *FakeStore) CampaignSlugExists(slug string) (bool, error) {
	_, err := s.GetCampaignBySlug(slug)
	return err == nil, nil
}

func (s *FakeStore) ListCampaigns() ([]models.Campaign, error) {
	var campaigns []models.Campaign
	for _, c := range s.Campaigns {
		campaigns = append(campaigns, c)
	}
	sort.Slice(campaigns, func(i, j int) bool {
		return campaigns[i].CreatedAt.After(campaigns[j].CreatedAt)
	})
	return campaigns, nil
}

func (s *FakeStore) ListCampaignsPage(offset, limit int) ([]models.Campaign, int, error) {
	campaigns, _ := s.ListCampaigns()
	total := len(campaigns)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return campaigns[offset:end], total, nil
}

func (s *FakeStore) ListCampaignsByAuthor(authorID uuid.UUID) ([]models.Campaign, error) {
	all, _ := s.ListCampaigns()
	var campaigns []models.Campaign
	for _, c := range all {
		if c.AuthorID.Valid && c.AuthorID.UUID == authorID {
			campaigns = append(campaigns, c)
		}
	}
	return campaigns, nil
}

func (s *FakeStore) UpdateCampaign(c *models.Campaign) error {
	if _, ok := s.Campaigns[c.ID]; !ok {
		return database.ErrNotFound
	}
	s.Campaigns[c.ID] = *c
	return nil
}

func (s *FakeStore) DeleteCampaign(id uuid.UUID) error {
	delete(s.Campaigns, id)
	for rid, r := range s.Results {
		if r.CampaignID == id {
			delete(s.Results, rid)
		}
	}
	return nil
}

// ---- Results ----

func (s *FakeStore) CreateResult(r *models.CampaignResult) error {
	r.CreatedAt = time.Now()
	s.Results[r.ID] = *r
	return nil
}

func (s *FakeStore) GetResult(id uuid.UUID) (*models.CampaignResult, error) {
	r, ok := s.Results[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	result := r
	return &result, nil
}

func (s *FakeStore) ListResultsPage(offset, limit int) ([]models.CampaignResult, int, error) {
	var results []models.CampaignResult
	for _, r := range s.Results {
		results = append(results, r)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	total := len(results)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return results[offset:end], total, nil
}

// ---- Site settings ----

func (s *FakeStore) GetOrCreateSiteSettings() (*models.SiteSettings, error) {
	if s.Settings == nil {
		s.Settings = &models.SiteSettings{
			ID:       models.SiteSettingsID,
			SiteName: "Twibbon Lombok Barat",
		}
		s.SettingsCreates++
	}
	settings := *s.Settings
	return &settings, nil
}

func (s *FakeStore) UpdateSiteSettings(settings *models.SiteSettings) error {
	copied := *settings
	s.Settings = &copied
	return nil
}

// ---- Slides ----

func (s *FakeStore) CreateSlide(slide *models.Slide) error {
	s.nextSlideID++
	slide.ID = s.nextSlideID
	slide.CreatedAt = time.Now()
	s.Slides[slide.ID] = *slide
	return nil
}

func (s *FakeStore) GetSlide(id int64) (*models.Slide, error) {
	slide, ok := s.Slides[id]
	if !ok {
		return nil, database.ErrNotFound
	}
	copied := slide
	return &copied, nil
}

func (s *FakeStore) ListSlides() ([]models.Slide, error) {
	var slides []models.Slide
	for _, slide := range s.Slides {
		slides = append(slides, slide)
	}
	sortSlides(slides)
	return slides, nil
}

func (s *FakeStore) ListActiveSlides() ([]models.Slide, error) {
	var slides []models.Slide
	for _, slide := range s.Slides {
		if slide.IsActive {
			slides = append(slides, slide)
		}
	}
	sortSlides(slides)
	return slides, nil
}

func sortSlides(slides []models.Slide) {
	sort.Slice(slides, func(i, j int) bool {
		if slides[i].Order != slides[j].Order {
			return slides[i].Order < slides[j].Order
		}
		return slides[i].CreatedAt.After(slides[j].CreatedAt)
	})
}

func (s *FakeStore) UpdateSlide(slide *models.Slide) error {
	if _, ok := s.Slides[slide.ID]; !ok {
		return database.ErrNotFound
	}
	s.Slides[slide.ID] = *slide
	return nil
}

func (s *FakeStore) DeleteSlide(id int64) error {
	delete(s.Slides, id)
	return nil
}

// FakeBlobStore records uploads and deletions in memory.
type FakeBlobStore struct {
	Files   map[string][]byte
	Deleted []string
}

func NewFakeBlobStore() *FakeBlobStore {
	return &FakeBlobStore{Files: make(map[string][]byte)}
}

func (b *FakeBlobStore) Upload(folder, filename string, data []byte, contentType string) (string, string, error) {
	path := folder + "/" + filename
	b.Files[path] = data
	return path, "https://cdn.test/" + path, nil
}

func (b *FakeBlobStore) Delete(path string) error {
	delete(b.Files, path)
	b.Deleted = append(b.Deleted, path)
	return nil
}

package database

import (
	"errors"

	"github.com/google/uuid"
	"twibbon-backend/internal/models"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Store is the query surface handlers depend on, implemented by *Client.
type Store interface {
	// Users
	CreateUser(u *models.User) error
	GetUserByUsername(username string) (*models.User, error)
	GetUserByID(id uuid.UUID) (*models.User, error)

	// Campaigns
	CreateCampaign(c *models.Campaign) error
	GetCampaignBySlug(slug string) (*models.Campaign, error)
	CampaignSlugExists(slug string) (bool, error)
	ListCampaigns() ([]models.Campaign, error)
	ListCampaignsPage(offset, limit int) ([]models.Campaign, int, error)
	ListCampaignsByAuthor(authorID uuid.UUID) ([]models.Campaign, error)
	UpdateCampaign(c *models.Campaign) error
	DeleteCampaign(id uuid.UUID) error

	// Campaign results
	CreateResult(r *models.CampaignResult) error
	GetResult(id uuid.UUID) (*models.CampaignResult, error)
	ListResultsPage(offset, limit int) ([]models.CampaignResult, int, error)

	// Site settings singleton
	GetOrCreateSiteSettings() (*models.SiteSettings, error)
	UpdateSiteSettings(s *models.SiteSettings) error

	// Slides
	CreateSlide(s *models.Slide) error
	GetSlide(id int64) (*models.Slide, error)
	ListSlides() ([]models.Slide, error)
	ListActiveSlides() ([]models.Slide, error)
	UpdateSlide(s *models.Slide) error
	DeleteSlide(id int64) error
}

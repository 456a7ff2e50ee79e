package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"twibbon-backend/internal/models"
)

type Client struct {
	db *sql.DB
}

func NewClient(connectionString string) (*Client, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Client{db: db}, nil
}

// DB exposes the underlying handle for the migrator.
func (c *Client) DB() *sql.DB {
	return c.db
}

func (c *Client) Close() error {
	return c.db.Close()
}

// ---- Users ----

func (c *Client) CreateUser(u *models.User) error {
	err := c.db.QueryRow(`
		INSERT INTO users (id, username, email, password_hash, is_staff)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`, u.ID, u.Username, u.Email, u.PasswordHash, u.IsStaff).Scan(&u.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (c *Client) GetUserByUsername(username string) (*models.User, error) {
	var u models.User
	err := c.db.QueryRow(`
		SELECT id, username, email, password_hash, is_staff, created_at
		FROM users
		WHERE username = $1
	`, username).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

func (c *Client) GetUserByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	err := c.db.QueryRow(`
		SELECT id, username, email, password_hash, is_staff, created_at
		FROM users
		WHERE id = $1
	`, id).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.IsStaff, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &u, nil
}

// ---- Campaigns ----

const campaignColumns = `id, title, slug, description, frame_image_path, frame_image_url,
	author_id, views_count, downloads_count, created_at`

func scanCampaign(row interface{ Scan(...any) error }, c *models.Campaign) error {
	return row.Scan(
		&c.ID, &c.Title, &c.Slug, &c.Description, &c.FrameImagePath, &c.FrameImageURL,
		&c.AuthorID, &c.ViewsCount, &c.DownloadsCount, &c.CreatedAt,
	)
}

func (c *Client) CreateCampaign(campaign *models.Campaign) error {
	err := c.db.QueryRow(`
		INSERT INTO campaigns (id, title, slug, description, frame_image_path, frame_image_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING views_count, downloads_count, created_at
	`, campaign.ID, campaign.Title, campaign.Slug, campaign.Description,
		campaign.FrameImagePath, campaign.FrameImageURL, campaign.AuthorID,
	).Scan(&campaign.ViewsCount, &campaign.DownloadsCount, &campaign.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create campaign: %w", err)
	}
	return nil
}

func (c *Client) GetCampaignBySlug(slug string) (*models.Campaign, error) {
	var campaign models.Campaign
	row := c.db.QueryRow(`
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE slug = $1
	`, slug)
	err := scanCampaign(row, &campaign)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get campaign: %w", err)
	}
	return &campaign, nil
}

func (c *Client) CampaignSlugExists(slug string) (bool, error) {
	var count int
	err := c.db.QueryRow(`SELECT COUNT(*) FROM campaigns WHERE slug = $1`, slug).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check slug: %w", err)
	}
	return count > 0, nil
}

func (c *Client) ListCampaigns() ([]models.Campaign, error) {
	rows, err := c.db.Query(`
		SELECT ` + campaignColumns + `
		FROM campaigns
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	return collectCampaigns(rows)
}

func (c *Client) ListCampaignsPage(offset, limit int) ([]models.Campaign, int, error) {
	var total int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM campaigns`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count campaigns: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT `+campaignColumns+`
		FROM campaigns
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	campaigns, err := collectCampaigns(rows)
	return campaigns, total, err
}

func (c *Client) ListCampaignsByAuthor(authorID uuid.UUID) ([]models.Campaign, error) {
	rows, err := c.db.Query(`
		SELECT `+campaignColumns+`
		FROM campaigns
		WHERE author_id = $1
		ORDER BY created_at DESC
	`, authorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list campaigns: %w", err)
	}
	defer rows.Close()

	return collectCampaigns(rows)
}

func collectCampaigns(rows *sql.Rows) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	for rows.Next() {
		var campaign models.Campaign
		if err := scanCampaign(rows, &campaign); err != nil {
			return nil, fmt.Errorf("failed to scan campaign: %w", err)
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, rows.Err()
}

func (c *Client) UpdateCampaign(campaign *models.Campaign) error {
	// Slug is immutable once set, so it is deliberately absent here.
	_, err := c.db.Exec(`
		UPDATE campaigns
		SET title = $1, description = $2, frame_image_path = $3, frame_image_url = $4,
			views_count = $5, downloads_count = $6
		WHERE id = $7
	`, campaign.Title, campaign.Description, campaign.FrameImagePath, campaign.FrameImageURL,
		campaign.ViewsCount, campaign.DownloadsCount, campaign.ID)
	if err != nil {
		return fmt.Errorf("failed to update campaign: %w", err)
	}
	return nil
}

func (c *Client) DeleteCampaign(id uuid.UUID) error {
	// campaign_results rows go with it via ON DELETE CASCADE.
	_, err := c.db.Exec(`DELETE FROM campaigns WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}
	return nil
}

// ---- Campaign results ----

func (c *Client) CreateResult(r *models.CampaignResult) error {
	err := c.db.QueryRow(`
		INSERT INTO campaign_results (id, campaign_id, image_path, image_url)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, r.ID, r.CampaignID, r.ImagePath, r.ImageURL).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create result: %w", err)
	}
	return nil
}

func (c *Client) GetResult(id uuid.UUID) (*models.CampaignResult, error) {
	var r models.CampaignResult
	err := c.db.QueryRow(`
		SELECT id, campaign_id, image_path, image_url, created_at
		FROM campaign_results
		WHERE id = $1
	`, id).Scan(&r.ID, &r.CampaignID, &r.ImagePath, &r.ImageURL, &r.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get result: %w", err)
	}
	return &r, nil
}

func (c *Client) ListResultsPage(offset, limit int) ([]models.CampaignResult, int, error) {
	var total int
	if err := c.db.QueryRow(`SELECT COUNT(*) FROM campaign_results`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count results: %w", err)
	}

	rows, err := c.db.Query(`
		SELECT id, campaign_id, image_path, image_url, created_at
		FROM campaign_results
		ORDER BY created_at DESC
		OFFSET $1 LIMIT $2
	`, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list results: %w", err)
	}
	defer rows.Close()

	var results []models.CampaignResult
	for rows.Next() {
		var r models.CampaignResult
		if err := rows.Scan(&r.ID, &r.CampaignID, &r.ImagePath, &r.ImageURL, &r.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}
	return results, total, rows.Err()
}

// ---- Site settings ----

// GetOrCreateSiteSettings is the only way to obtain the settings row. The
// fixed key plus ON CONFLICT DO NOTHING keeps it a singleton under
// concurrent callers and multiple server instances.
func (c *Client) GetOrCreateSiteSettings() (*models.SiteSettings, error) {
	_, err := c.db.Exec(`
		INSERT INTO site_settings (id, site_name)
		VALUES ($1, 'Twibbon Lombok Barat')
		ON CONFLICT (id) DO NOTHING
	`, models.SiteSettingsID)
	if err != nil {
		return nil, fmt.Errorf("failed to ensure settings row: %w", err)
	}

	var s models.SiteSettings
	err = c.db.QueryRow(`
		SELECT id, site_name, site_logo_path, site_logo_url
		FROM site_settings
		WHERE id = $1
	`, models.SiteSettingsID).Scan(&s.ID, &s.SiteName, &s.SiteLogoPath, &s.SiteLogoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return &s, nil
}

func (c *Client) UpdateSiteSettings(s *models.SiteSettings) error {
	_, err := c.db.Exec(`
		UPDATE site_settings
		SET site_name = $1, site_logo_path = $2, site_logo_url = $3
		WHERE id = $4
	`, s.SiteName, s.SiteLogoPath, s.SiteLogoURL, models.SiteSettingsID)
	if err != nil {
		return fmt.Errorf("failed to update settings: %w", err)
	}
	return nil
}

// ---- Slides ----

func (c *Client) CreateSlide(s *models.Slide) error {
	err := c.db.QueryRow(`
		INSERT INTO slides (image_path, image_url, title, description, "order", is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`, s.ImagePath, s.ImageURL, s.Title, s.Description, s.Order, s.IsActive).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create slide: %w", err)
	}
	return nil
}

func (c *Client) GetSlide(id int64) (*models.Slide, error) {
	var s models.Slide
	err := c.db.QueryRow(`
		SELECT id, image_path, image_url, title, description, "order", is_active, created_at
		FROM slides
		WHERE id = $1
	`, id).Scan(&s.ID, &s.ImagePath, &s.ImageURL, &s.Title, &s.Description, &s.Order, &s.IsActive, &s.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get slide: %w", err)
	}
	return &s, nil
}

func (c *Client) ListSlides() ([]models.Slide, error) {
	return c.listSlides(`
		SELECT id, image_path, image_url, title, description, "order", is_active, created_at
		FROM slides
		ORDER BY "order" ASC, created_at DESC
	`)
}

func (c *Client) ListActiveSlides() ([]models.Slide, error) {
	return c.listSlides(`
		SELECT id, image_path, image_url, title, description, "order", is_active, created_at
		FROM slides
		WHERE is_active
		ORDER BY "order" ASC, created_at DESC
	`)
}

func (c *Client) listSlides(query string) ([]models.Slide, error) {
	rows, err := c.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list slides: %w", err)
	}
	defer rows.Close()

	var slides []models.Slide
	for rows.Next() {
		var s models.Slide
		if err := rows.Scan(&s.ID, &s.ImagePath, &s.ImageURL, &s.Title, &s.Description, &s.Order, &s.IsActive, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan slide: %w", err)
		}
		slides = append(slides, s)
	}
	return slides, rows.Err()
}

func (c *Client) UpdateSlide(s *models.Slide) error {
	_, err := c.db.Exec(`
		UPDATE slides
		SET image_path = $1, image_url = $2, title = $3, description = $4, "order" = $5, is_active = $6
		WHERE id = $7
	`, s.ImagePath, s.ImageURL, s.Title, s.Description, s.Order, s.IsActive, s.ID)
	if err != nil {
		return fmt.Errorf("failed to update slide: %w", err)
	}
	return nil
}

func (c *Client) DeleteSlide(id int64) error {
	_, err := c.db.Exec(`DELETE FROM slides WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete slide: %w", err)
	}
	return nil
}

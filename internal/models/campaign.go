package models

import (
	"time"

	"github.com/google/uuid"
)

type Campaign struct {
	ID             uuid.UUID
	Title          string
	Slug           string
	Description    string
	FrameImagePath string
	FrameImageURL  string
	AuthorID       uuid.NullUUID
	ViewsCount     int
	DownloadsCount int
	CreatedAt      time.Time
}

// CanEdit reports whether u may modify the campaign: its author or any
// staff user. Anonymous users can never edit.
func (c *Campaign) CanEdit(u *User) bool {
	if u == nil {
		return false
	}
	if u.IsStaff {
		return true
	}
	return c.AuthorID.Valid && c.AuthorID.UUID == u.ID
}

type CampaignResult struct {
	ID         uuid.UUID
	CampaignID uuid.UUID
	ImagePath  string
	ImageURL   string
	CreatedAt  time.Time
}

// RedirectURL is the canonical public page for a saved result.
func (r *CampaignResult) RedirectURL() string {
	return "/result/" + r.ID.String() + "/"
}

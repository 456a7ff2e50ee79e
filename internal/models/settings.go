package models

import "database/sql"

// SiteSettingsID is the fixed key of the settings singleton row.
const SiteSettingsID = 1

type SiteSettings struct {
	ID           int
	SiteName     string
	SiteLogoPath sql.NullString
	SiteLogoURL  sql.NullString
}

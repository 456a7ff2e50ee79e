package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"twibbon-backend/internal/models"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello World":        "hello-world",
		"  Semangat 2024!  ": "semangat-2024",
		"--Weird__Title--":   "weird-title",
		"UPPER":              "upper",
		"!!!":                "",
	}
	for title, want := range cases {
		assert.Equal(t, want, models.Slugify(title), "title %q", title)
	}
}

func TestSlugSuffix(t *testing.T) {
	suffix := models.SlugSuffix()
	assert.Len(t, suffix, 6)
	for _, r := range suffix {
		assert.True(t, (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f'), "non-hex rune %q", r)
	}

	// Two consecutive suffixes colliding would defeat the point.
	assert.NotEqual(t, suffix, models.SlugSuffix())
}

func TestCampaignCanEdit(t *testing.T) {
	owner := &models.User{ID: uuid.New()}
	staff := &models.User{ID: uuid.New(), IsStaff: true}
	other := &models.User{ID: uuid.New()}

	campaign := &models.Campaign{
		ID:       uuid.New(),
		AuthorID: uuid.NullUUID{UUID: owner.ID, Valid: true},
	}

	assert.True(t, campaign.CanEdit(owner))
	assert.True(t, campaign.CanEdit(staff))
	assert.False(t, campaign.CanEdit(other))
	assert.False(t, campaign.CanEdit(nil))
}

func TestCampaignCanEdit_NoAuthor(t *testing.T) {
	// Legacy campaigns without an author are only editable by staff.
	campaign := &models.Campaign{ID: uuid.New()}

	assert.False(t, campaign.CanEdit(&models.User{ID: uuid.New()}))
	assert.True(t, campaign.CanEdit(&models.User{ID: uuid.New(), IsStaff: true}))
}

func TestUserPassword(t *testing.T) {
	u := &models.User{}
	assert.NoError(t, u.SetPassword("correct horse battery"))
	assert.NotEqual(t, "correct horse battery", u.PasswordHash)
	assert.True(t, u.CheckPassword("correct horse battery"))
	assert.False(t, u.CheckPassword("wrong"))
}

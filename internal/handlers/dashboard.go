package handlers

import (
	"database/sql"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/services"
)

type DashboardHandler struct {
	store   database.Store
	storage BlobStore
}

func NewDashboardHandler(store database.Store, storage BlobStore) *DashboardHandler {
	return &DashboardHandler{store: store, storage: storage}
}

// Dashboard is the staff landing page listing every campaign.
func (h *DashboardHandler) Dashboard(c *gin.Context) {
	campaigns, err := h.store.ListCampaigns()
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "dashboard.html", gin.H{
		"User":      middleware.UserFrom(c),
		"Campaigns": campaigns,
	})
}

func (h *DashboardHandler) SettingsForm(c *gin.Context) {
	settings, err := h.store.GetOrCreateSiteSettings()
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "site_settings.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Settings": settings,
	})
}

// SettingsUpdate edits the singleton settings row. A replaced logo blob is
// deleted after the row persists, same ordering as campaign frames.
func (h *DashboardHandler) SettingsUpdate(c *gin.Context) {
	settings, err := h.store.GetOrCreateSiteSettings()
	if err != nil {
		serverError(c, err)
		return
	}

	siteName := strings.TrimSpace(c.PostForm("site_name"))
	if siteName == "" {
		c.HTML(http.StatusOK, "site_settings.html", gin.H{
			"User":     middleware.UserFrom(c),
			"Settings": settings,
			"Errors":   []string{"Site name is required."},
		})
		return
	}
	settings.SiteName = siteName

	data, filename, contentType, ok, err := readFormFile(c, "site_logo")
	if err != nil {
		serverError(c, err)
		return
	}

	oldPath := ""
	if ok {
		path, url, err := h.storage.Upload("site", services.UploadFilename(filename), data, contentType)
		if err != nil {
			serverError(c, err)
			return
		}
		if settings.SiteLogoPath.Valid {
			oldPath = settings.SiteLogoPath.String
		}
		settings.SiteLogoPath = sql.NullString{String: path, Valid: true}
		settings.SiteLogoURL = sql.NullString{String: url, Valid: true}
	}

	if err := h.store.UpdateSiteSettings(settings); err != nil {
		serverError(c, err)
		return
	}

	if oldPath != "" {
		if err := h.storage.Delete(oldPath); err != nil {
			log.Printf("failed to delete replaced site logo %s: %v", oldPath, err)
		}
	}

	c.Redirect(http.StatusFound, "/dashboard/")
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/models"
)

type DownloadsHandler struct {
	store database.Store
}

func NewDownloadsHandler(store database.Store) *DownloadsHandler {
	return &DownloadsHandler{store: store}
}

// Increment bumps a campaign's download counter and returns the new value.
// POST only; the router rejects other methods. Same read-modify-write
// discipline as the view counter.
func (h *DownloadsHandler) Increment(c *gin.Context) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.NewErrorResponse("campaign not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("failed to load campaign"))
		return
	}

	campaign.DownloadsCount++
	if err := h.store.UpdateCampaign(campaign); err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("failed to update campaign"))
		return
	}

	c.JSON(http.StatusOK, models.DownloadResponse{
		Status:         "success",
		DownloadsCount: campaign.DownloadsCount,
	})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/services"
)

type ResultsHandler struct {
	store   database.Store
	storage BlobStore
}

func NewResultsHandler(store database.Store, storage BlobStore) *ResultsHandler {
	return &ResultsHandler{store: store, storage: storage}
}

// Save accepts the composited photo as a JSON data URI and persists it as a
// CampaignResult. Unlike the frame-override path there is no fallback, so a
// missing or malformed payload is a client error.
func (h *ResultsHandler) Save(c *gin.Context) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		c.JSON(http.StatusNotFound, models.NewErrorResponse("campaign not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("failed to load campaign"))
		return
	}

	var req models.SaveResultRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		c.JSON(http.StatusBadRequest, models.NewErrorResponse("missing image data"))
		return
	}

	data, ext, err := services.DecodeDataURI(req.Image)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Status:  "error",
			Error:   "invalid image data",
			Message: err.Error(),
		})
		return
	}

	resultID := uuid.New()
	filename := services.ResultFilename(campaign.Slug, resultID, ext)
	path, url, err := h.storage.Upload("results", filename, data, "image/"+ext)
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("failed to store image"))
		return
	}

	result := &models.CampaignResult{
		ID:         resultID,
		CampaignID: campaign.ID,
		ImagePath:  path,
		ImageURL:   url,
	}
	if err := h.store.CreateResult(result); err != nil {
		c.JSON(http.StatusInternalServerError, models.NewErrorResponse("failed to save result"))
		return
	}

	c.JSON(http.StatusOK, models.SaveResultResponse{
		Status:      "success",
		RedirectURL: result.RedirectURL(),
	})
}

// View renders a saved result by its public UUID.
func (h *ResultsHandler) View(c *gin.Context) {
	id, err := uuid.Parse(c.Param("uuid"))
	if err != nil {
		notFound(c)
		return
	}

	result, err := h.store.GetResult(id)
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "campaign_result.html", gin.H{
		"User":   middleware.UserFrom(c),
		"Result": result,
	})
}

// MyResults lists saved results. Results carry no owning user, so every
// visitor sees all of them; kept as-is until ownership lands in the schema.
func (h *ResultsHandler) MyResults(c *gin.Context) {
	page, offset := pageParam(c)
	results, total, err := h.store.ListResultsPage(offset, PageSize)
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "my_results.html", gin.H{
		"User":       middleware.UserFrom(c),
		"Results":    results,
		"Page":       page,
		"TotalPages": totalPages(total),
	})
}

// DashboardList is the staff-only listing of all results.
func (h *ResultsHandler) DashboardList(c *gin.Context) {
	page, offset := pageParam(c)
	results, total, err := h.store.ListResultsPage(offset, PageSize)
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "result_list.html", gin.H{
		"User":       middleware.UserFrom(c),
		"Results":    results,
		"Page":       page,
		"TotalPages": totalPages(total),
	})
}

package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/services"
)

type CampaignsHandler struct {
	store   database.Store
	storage BlobStore
}

func NewCampaignsHandler(store database.Store, storage BlobStore) *CampaignsHandler {
	return &CampaignsHandler{store: store, storage: storage}
}

// Home renders the campaign listing with the active homepage slides.
func (h *CampaignsHandler) Home(c *gin.Context) {
	campaigns, err := h.store.ListCampaigns()
	if err != nil {
		serverError(c, err)
		return
	}
	slides, err := h.store.ListActiveSlides()
	if err != nil {
		serverError(c, err)
		return
	}
	settings, err := h.store.GetOrCreateSiteSettings()
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "home.html", gin.H{
		"User":      middleware.UserFrom(c),
		"Settings":  settings,
		"Slides":    slides,
		"Campaigns": campaigns,
	})
}

func (h *CampaignsHandler) Explore(c *gin.Context) {
	page, offset := pageParam(c)
	campaigns, total, err := h.store.ListCampaignsPage(offset, PageSize)
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "explore.html", gin.H{
		"User":       middleware.UserFrom(c),
		"Campaigns":  campaigns,
		"Page":       page,
		"TotalPages": totalPages(total),
	})
}

func (h *CampaignsHandler) MyCampaigns(c *gin.Context) {
	user := middleware.UserFrom(c)
	campaigns, err := h.store.ListCampaignsByAuthor(user.ID)
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "my_campaigns.html", gin.H{
		"User":      user,
		"Campaigns": campaigns,
	})
}

func (h *CampaignsHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "campaign_form.html", gin.H{
		"User":        middleware.UserFrom(c),
		"Title":       "",
		"Description": "",
	})
}

// Create handles the campaign creation form. The optional edited_image_data
// field carries a client-edited frame as a base64 data URI; when present and
// well-formed it wins over the uploaded file. A malformed payload is logged
// and discarded so the submission still goes through with the uploaded file.
func (h *CampaignsHandler) Create(c *gin.Context) {
	user := middleware.UserFrom(c)

	title := strings.TrimSpace(c.PostForm("title"))
	description := c.PostForm("description")

	frameData, frameName, frameType, err := h.resolveFrame(c)
	if err != nil {
		serverError(c, err)
		return
	}

	var formErrors []string
	if title == "" {
		formErrors = append(formErrors, "Title is required.")
	}
	if frameData == nil {
		formErrors = append(formErrors, "Frame image is required.")
	}
	if len(formErrors) > 0 {
		c.HTML(http.StatusOK, "campaign_form.html", gin.H{
			"User":        user,
			"Errors":      formErrors,
			"Title":       title,
			"Description": description,
		})
		return
	}

	slug, err := h.assignSlug(title)
	if err != nil {
		serverError(c, err)
		return
	}

	path, url, err := h.storage.Upload("frames", frameName, frameData, frameType)
	if err != nil {
		serverError(c, err)
		return
	}

	campaign := &models.Campaign{
		ID:             uuid.New(),
		Title:          title,
		Slug:           slug,
		Description:    description,
		FrameImagePath: path,
		FrameImageURL:  url,
		AuthorID:       uuid.NullUUID{UUID: user.ID, Valid: true},
	}
	if err := h.store.CreateCampaign(campaign); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

// Detail renders a campaign page and bumps its view counter. The increment
// is a plain read-modify-write; a lost update under concurrent views is
// acceptable for a tally.
func (h *CampaignsHandler) Detail(c *gin.Context) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	campaign.ViewsCount++
	if err := h.store.UpdateCampaign(campaign); err != nil {
		log.Printf("failed to record view for campaign %s: %v", campaign.Slug, err)
	}

	c.HTML(http.StatusOK, "campaign_detail.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Campaign": campaign,
	})
}

func (h *CampaignsHandler) EditForm(c *gin.Context) {
	campaign, user, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "campaign_form.html", gin.H{
		"User":        user,
		"Campaign":    campaign,
		"Title":       campaign.Title,
		"Description": campaign.Description,
	})
}

// Edit updates a campaign. When the frame changes, the new blob is uploaded
// and the row persisted before the old blob is removed, so a failed cleanup
// leaves at worst an orphaned file, never a row pointing at nothing.
func (h *CampaignsHandler) Edit(c *gin.Context) {
	campaign, user, ok := h.loadForEdit(c)
	if !ok {
		return
	}

	title := strings.TrimSpace(c.PostForm("title"))
	if title == "" {
		c.HTML(http.StatusOK, "campaign_form.html", gin.H{
			"User":        user,
			"Campaign":    campaign,
			"Errors":      []string{"Title is required."},
			"Title":       title,
			"Description": c.PostForm("description"),
		})
		return
	}

	frameData, frameName, frameType, err := h.resolveFrame(c)
	if err != nil {
		serverError(c, err)
		return
	}

	campaign.Title = title
	campaign.Description = c.PostForm("description")

	oldPath := ""
	if frameData != nil {
		path, url, err := h.storage.Upload("frames", frameName, frameData, frameType)
		if err != nil {
			serverError(c, err)
			return
		}
		oldPath = campaign.FrameImagePath
		campaign.FrameImagePath = path
		campaign.FrameImageURL = url
	}

	if err := h.store.UpdateCampaign(campaign); err != nil {
		serverError(c, err)
		return
	}

	if oldPath != "" && oldPath != campaign.FrameImagePath {
		if err := h.storage.Delete(oldPath); err != nil {
			log.Printf("failed to delete replaced frame %s: %v", oldPath, err)
		}
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *CampaignsHandler) DeleteConfirm(c *gin.Context) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "campaign_confirm_delete.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Campaign": campaign,
	})
}

// Delete removes the campaign row (results cascade with it) and then the
// owned frame blob. Result blobs are intentionally left behind; only the
// rows cascade.
func (h *CampaignsHandler) Delete(c *gin.Context) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return
	}
	if err != nil {
		serverError(c, err)
		return
	}

	if err := h.store.DeleteCampaign(campaign.ID); err != nil {
		serverError(c, err)
		return
	}

	if err := h.storage.Delete(campaign.FrameImagePath); err != nil {
		log.Printf("failed to delete frame %s: %v", campaign.FrameImagePath, err)
	}

	c.Redirect(http.StatusFound, "/")
}

// loadForEdit fetches the campaign and enforces the owner-or-staff rule
// before any mutation. It writes the response itself when ok is false.
func (h *CampaignsHandler) loadForEdit(c *gin.Context) (*models.Campaign, *models.User, bool) {
	campaign, err := h.store.GetCampaignBySlug(c.Param("slug"))
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return nil, nil, false
	}
	if err != nil {
		serverError(c, err)
		return nil, nil, false
	}

	user := middleware.UserFrom(c)
	if !campaign.CanEdit(user) {
		c.String(http.StatusForbidden, "403 Forbidden")
		return nil, nil, false
	}
	return campaign, user, true
}

// assignSlug derives the slug from the title and appends six random hex
// characters when the derived one is taken. Best-effort: a concurrent create
// with the same title can still race, and the unique constraint backstops it.
func (h *CampaignsHandler) assignSlug(title string) (string, error) {
	slug := models.Slugify(title)
	if slug == "" {
		slug = "campaign"
	}
	exists, err := h.store.CampaignSlugExists(slug)
	if err != nil {
		return "", err
	}
	if exists {
		slug = slug + "-" + models.SlugSuffix()
	}
	return slug, nil
}

// resolveFrame picks the frame image for a create/edit submission: the
// decoded edited_image_data payload when present and valid, otherwise the
// uploaded frame_image file. Returns nil data when neither is usable.
func (h *CampaignsHandler) resolveFrame(c *gin.Context) ([]byte, string, string, error) {
	if edited := c.PostForm("edited_image_data"); edited != "" {
		data, err := services.DecodeEditedImage(edited)
		if err != nil {
			log.Printf("discarding malformed edited image payload: %v", err)
		} else {
			return data, services.EditedFrameFilename(), "image/png", nil
		}
	}

	data, filename, contentType, ok, err := readFormFile(c, "frame_image")
	if err != nil {
		return nil, "", "", err
	}
	if !ok {
		return nil, "", "", nil
	}
	return data, services.UploadFilename(filename), contentType, nil
}

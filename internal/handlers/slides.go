package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/services"
)

type SlidesHandler struct {
	store   database.Store
	storage BlobStore
}

func NewSlidesHandler(store database.Store, storage BlobStore) *SlidesHandler {
	return &SlidesHandler{store: store, storage: storage}
}

func (h *SlidesHandler) List(c *gin.Context) {
	slides, err := h.store.ListSlides()
	if err != nil {
		serverError(c, err)
		return
	}

	c.HTML(http.StatusOK, "slide_list.html", gin.H{
		"User":   middleware.UserFrom(c),
		"Slides": slides,
	})
}

func (h *SlidesHandler) CreateForm(c *gin.Context) {
	c.HTML(http.StatusOK, "slide_form.html", gin.H{
		"User": middleware.UserFrom(c),
	})
}

func (h *SlidesHandler) Create(c *gin.Context) {
	slide := &models.Slide{
		Title:       strings.TrimSpace(c.PostForm("title")),
		Description: c.PostForm("description"),
		Order:       formInt(c, "order"),
		IsActive:    c.PostForm("is_active") != "",
	}

	data, filename, contentType, ok, err := readFormFile(c, "image")
	if err != nil {
		serverError(c, err)
		return
	}
	if !ok {
		c.HTML(http.StatusOK, "slide_form.html", gin.H{
			"User":   middleware.UserFrom(c),
			"Slide":  slide,
			"Errors": []string{"Slide image is required."},
		})
		return
	}

	path, url, err := h.storage.Upload("slides", services.UploadFilename(filename), data, contentType)
	if err != nil {
		serverError(c, err)
		return
	}
	slide.ImagePath = path
	slide.ImageURL = url

	if err := h.store.CreateSlide(slide); err != nil {
		serverError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/dashboard/slides/")
}

func (h *SlidesHandler) EditForm(c *gin.Context) {
	slide, ok := h.loadSlide(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "slide_form.html", gin.H{
		"User":  middleware.UserFrom(c),
		"Slide": slide,
	})
}

func (h *SlidesHandler) Edit(c *gin.Context) {
	slide, ok := h.loadSlide(c)
	if !ok {
		return
	}

	slide.Title = strings.TrimSpace(c.PostForm("title"))
	slide.Description = c.PostForm("description")
	slide.Order = formInt(c, "order")
	slide.IsActive = c.PostForm("is_active") != ""

	data, filename, contentType, hasImage, err := readFormFile(c, "image")
	if err != nil {
		serverError(c, err)
		return
	}

	oldPath := ""
	if hasImage {
		path, url, err := h.storage.Upload("slides", services.UploadFilename(filename), data, contentType)
		if err != nil {
			serverError(c, err)
			return
		}
		oldPath = slide.ImagePath
		slide.ImagePath = path
		slide.ImageURL = url
	}

	if err := h.store.UpdateSlide(slide); err != nil {
		serverError(c, err)
		return
	}

	if oldPath != "" && oldPath != slide.ImagePath {
		if err := h.storage.Delete(oldPath); err != nil {
			log.Printf("failed to delete replaced slide image %s: %v", oldPath, err)
		}
	}

	c.Redirect(http.StatusFound, "/dashboard/slides/")
}

func (h *SlidesHandler) DeleteConfirm(c *gin.Context) {
	slide, ok := h.loadSlide(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "campaign_confirm_delete.html", gin.H{
		"User":  middleware.UserFrom(c),
		"Slide": slide,
	})
}

func (h *SlidesHandler) Delete(c *gin.Context) {
	slide, ok := h.loadSlide(c)
	if !ok {
		return
	}

	if err := h.store.DeleteSlide(slide.ID); err != nil {
		serverError(c, err)
		return
	}

	if err := h.storage.Delete(slide.ImagePath); err != nil {
		log.Printf("failed to delete slide image %s: %v", slide.ImagePath, err)
	}

	c.Redirect(http.StatusFound, "/dashboard/slides/")
}

func (h *SlidesHandler) loadSlide(c *gin.Context) (*models.Slide, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		notFound(c)
		return nil, false
	}

	slide, err := h.store.GetSlide(id)
	if errors.Is(err, database.ErrNotFound) {
		notFound(c)
		return nil, false
	}
	if err != nil {
		serverError(c, err)
		return nil, false
	}
	return slide, true
}

func formInt(c *gin.Context, field string) int {
	n, err := strconv.Atoi(c.PostForm(field))
	if err != nil {
		return 0
	}
	return n
}

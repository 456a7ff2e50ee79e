package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"twibbon-backend/internal/handlers"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/test/fakes"
)

func TestIncrementDownload(t *testing.T) {
	store := fakes.NewFakeStore()
	seedCampaign(store, nil, "merdeka", uuid.New())

	router := newRouter(nil)
	router.POST("/campaign/:slug/download/", handlers.NewDownloadsHandler(store).Increment)

	for want := 1; want <= 2; want++ {
		req, _ := http.NewRequest("POST", "/campaign/merdeka/download/", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp models.DownloadResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "success", resp.Status)
		assert.Equal(t, want, resp.DownloadsCount)
	}

	campaign, err := store.GetCampaignBySlug("merdeka")
	assert.NoError(t, err)
	assert.Equal(t, 2, campaign.DownloadsCount)
}

func TestIncrementDownload_UnknownSlug(t *testing.T) {
	router := newRouter(nil)
	router.POST("/campaign/:slug/download/", handlers.NewDownloadsHandler(fakes.NewFakeStore()).Increment)

	req, _ := http.NewRequest("POST", "/campaign/nope/download/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}

func TestIncrementDownload_GetRejected(t *testing.T) {
	store := fakes.NewFakeStore()
	seedCampaign(store, nil, "merdeka", uuid.New())

	router := newRouter(nil)
	router.POST("/campaign/:slug/download/", handlers.NewDownloadsHandler(store).Increment)

	req, _ := http.NewRequest("GET", "/campaign/merdeka/download/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.NotEqual(t, http.StatusOK, w.Code)

	campaign, err := store.GetCampaignBySlug("merdeka")
	assert.NoError(t, err)
	assert.Equal(t, 0, campaign.DownloadsCount, "non-POST must not mutate")
}

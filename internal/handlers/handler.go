package handlers

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
)

// PageSize is the listing page size for paginated views.
const PageSize = 20

// BlobStore is the slice of the storage client the handlers need. Upload
// returns the stored path and its public URL.
type BlobStore interface {
	Upload(folder, filename string, data []byte, contentType string) (string, string, error)
	Delete(path string) error
}

func notFound(c *gin.Context) {
	c.String(http.StatusNotFound, "404 Not Found")
}

func serverError(c *gin.Context, err error) {
	c.String(http.StatusInternalServerError, "500 Internal Server Error")
	_ = c.Error(err)
}

// readFormFile reads an uploaded file field in full. A missing field returns
// ok=false with no error; the caller decides whether the field was required.
func readFormFile(c *gin.Context, field string) (data []byte, filename, contentType string, ok bool, err error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, "", "", false, nil
	}

	f, err := header.Open()
	if err != nil {
		return nil, "", "", false, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer f.Close()

	data, err = io.ReadAll(f)
	if err != nil {
		return nil, "", "", false, fmt.Errorf("failed to read uploaded file: %w", err)
	}

	contentType = header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mime.TypeByExtension(filepath.Ext(header.Filename))
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return data, header.Filename, contentType, true, nil
}

// pageParam reads ?page=N (1-based) and returns the page and row offset.
func pageParam(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.Query("page"))
	if err != nil || page < 1 {
		page = 1
	}
	return page, (page - 1) * PageSize
}

func totalPages(total int) int {
	if total == 0 {
		return 1
	}
	return (total + PageSize - 1) / PageSize
}

package handlers_test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/gin-gonic/gin"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/web"
)

// newRouter builds a test engine with templates loaded. A non-nil user is
// injected as the authenticated user for every request.
func newRouter(user *models.User) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.SetHTMLTemplate(web.Templates())
	if user != nil {
		router.Use(func(c *gin.Context) {
			c.Set(middleware.CurrentUserKey, user)
		})
	}
	return router
}

// multipartForm encodes text fields plus an optional file field and returns
// the body with its content type.
func multipartForm(t *testing.T, fields map[string]string, fileField, filename string, file []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	if fileField != "" {
		fw, err := w.CreateFormFile(fileField, filename)
		if err != nil {
			t.Fatalf("failed to create file field: %v", err)
		}
		if _, err := fw.Write(file); err != nil {
			t.Fatalf("failed to write file: %v", err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("failed to close writer: %v", err)
	}
	return &buf, w.FormDataContentType()
}

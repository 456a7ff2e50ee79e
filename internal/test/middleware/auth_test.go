package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"twibbon-backend/internal/config"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/test/fakes"
)

func testConfig() *config.Config {
	return &config.Config{SessionSecret: "test-secret-key-for-session-signing"}
}

func TestCurrentUser_ValidSession(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	store := fakes.NewFakeStore()
	user := &models.User{ID: uuid.New(), Username: "alice"}
	store.Users[user.ID] = *user

	token, err := middleware.NewSessionToken(cfg, user.ID)
	assert.NoError(t, err)

	router := gin.New()
	router.Use(middleware.CurrentUser(cfg, store))
	router.GET("/whoami", func(c *gin.Context) {
		resolved := middleware.UserFrom(c)
		if assert.NotNil(t, resolved) {
			assert.Equal(t, "alice", resolved.Username)
		}
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUser_BadTokenIsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(middleware.CurrentUser(testConfig(), fakes.NewFakeStore()))
	router.GET("/whoami", func(c *gin.Context) {
		assert.Nil(t, middleware.UserFrom(c))
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "not-a-jwt"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCurrentUser_DeletedUserIsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := testConfig()

	token, err := middleware.NewSessionToken(cfg, uuid.New())
	assert.NoError(t, err)

	router := gin.New()
	router.Use(middleware.CurrentUser(cfg, fakes.NewFakeStore()))
	router.GET("/whoami", func(c *gin.Context) {
		assert.Nil(t, middleware.UserFrom(c))
		c.String(http.StatusOK, "ok")
	})

	req, _ := http.NewRequest("GET", "/whoami", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireLogin_RedirectsAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/create/", middleware.RequireLogin(), func(c *gin.Context) {
		c.String(http.StatusOK, "form")
	})

	req, _ := http.NewRequest("GET", "/create/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login/?next=%2Fcreate%2F", w.Header().Get("Location"))
}

func TestRequireStaff(t *testing.T) {
	gin.SetMode(gin.TestMode)

	newRouter := func(user *models.User) *gin.Engine {
		router := gin.New()
		if user != nil {
			router.Use(func(c *gin.Context) { c.Set(middleware.CurrentUserKey, user) })
		}
		router.GET("/dashboard/", middleware.RequireStaff(), func(c *gin.Context) {
			c.String(http.StatusOK, "dashboard")
		})
		return router
	}

	// Anonymous: redirected to login.
	req, _ := http.NewRequest("GET", "/dashboard/", nil)
	w := httptest.NewRecorder()
	newRouter(nil).ServeHTTP(w, req)
	assert.Equal(t, http.StatusFound, w.Code)

	// Authenticated but not staff: forbidden.
	w = httptest.NewRecorder()
	newRouter(&models.User{ID: uuid.New()}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Staff: allowed.
	w = httptest.NewRecorder()
	newRouter(&models.User{ID: uuid.New(), IsStaff: true}).ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

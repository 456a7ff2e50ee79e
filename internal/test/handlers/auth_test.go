package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"twibbon-backend/internal/config"
	"twibbon-backend/internal/handlers"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
	"twibbon-backend/internal/test/fakes"
)

func authRoutes(router *gin.Engine, store *fakes.FakeStore) {
	cfg := &config.Config{SessionSecret: "test-secret-key-for-session-signing"}
	h := handlers.NewAuthHandler(cfg, store)
	router.GET("/register/", h.RegisterForm)
	router.POST("/register/", h.Register)
	router.GET("/login/", h.LoginForm)
	router.POST("/login/", h.Login)
	router.GET("/logout/", h.Logout)
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req, _ := http.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegister_Success(t *testing.T) {
	store := fakes.NewFakeStore()
	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/register/", url.Values{
		"username":  {"budi"},
		"email":     {"budi@example.com"},
		"password1": {"rahasia-banget"},
		"password2": {"rahasia-banget"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	user, err := store.GetUserByUsername("budi")
	assert.NoError(t, err)
	assert.Equal(t, "budi@example.com", user.Email)
	assert.False(t, user.IsStaff)
	assert.True(t, user.CheckPassword("rahasia-banget"))

	// Registration logs the new user in.
	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == middleware.SessionCookie && c.Value != "" {
			found = true
		}
	}
	assert.True(t, found, "expected a session cookie")
}

func TestRegister_PasswordMismatch(t *testing.T) {
	store := fakes.NewFakeStore()
	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/register/", url.Values{
		"username":  {"budi"},
		"email":     {"budi@example.com"},
		"password1": {"rahasia-banget"},
		"password2": {"something-else"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match.")
	assert.Empty(t, store.Users)
}

func TestRegister_TakenUsername(t *testing.T) {
	store := fakes.NewFakeStore()
	existing := models.User{ID: uuid.New(), Username: "budi"}
	store.Users[existing.ID] = existing

	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/register/", url.Values{
		"username":  {"budi"},
		"email":     {"other@example.com"},
		"password1": {"rahasia-banget"},
		"password2": {"rahasia-banget"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "already taken")
	assert.Len(t, store.Users, 1)
}

func TestLogin_WrongPassword(t *testing.T) {
	store := fakes.NewFakeStore()
	user := &models.User{ID: uuid.New(), Username: "budi"}
	assert.NoError(t, user.SetPassword("rahasia-banget"))
	store.Users[user.ID] = *user

	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/login/", url.Values{
		"username": {"budi"},
		"password": {"wrong"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid username or password.")
}

func TestLogin_RedirectsToNext(t *testing.T) {
	store := fakes.NewFakeStore()
	user := &models.User{ID: uuid.New(), Username: "budi"}
	assert.NoError(t, user.SetPassword("rahasia-banget"))
	store.Users[user.ID] = *user

	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/login/", url.Values{
		"username": {"budi"},
		"password": {"rahasia-banget"},
		"next":     {"/create/"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/create/", w.Header().Get("Location"))
}

func TestLogin_IgnoresAbsoluteNext(t *testing.T) {
	store := fakes.NewFakeStore()
	user := &models.User{ID: uuid.New(), Username: "budi"}
	assert.NoError(t, user.SetPassword("rahasia-banget"))
	store.Users[user.ID] = *user

	router := newRouter(nil)
	authRoutes(router, store)

	w := postForm(router, "/login/", url.Values{
		"username": {"budi"},
		"password": {"rahasia-banget"},
		"next":     {"https://evil.example/phish"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))
}

func TestLogout_ClearsSession(t *testing.T) {
	router := newRouter(&models.User{ID: uuid.New(), Username: "budi"})
	authRoutes(router, fakes.NewFakeStore())

	req, _ := http.NewRequest("GET", "/logout/", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	var cleared bool
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie && c.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "expected the session cookie to be expired")
}

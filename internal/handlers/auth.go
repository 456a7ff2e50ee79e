package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"twibbon-backend/internal/config"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/middleware"
	"twibbon-backend/internal/models"
)

type AuthHandler struct {
	cfg   *config.Config
	store database.Store
}

func NewAuthHandler(cfg *config.Config, store database.Store) *AuthHandler {
	return &AuthHandler{cfg: cfg, store: store}
}

func (h *AuthHandler) RegisterForm(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Username": "",
		"Email":    "",
	})
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	email := strings.TrimSpace(c.PostForm("email"))
	password1 := c.PostForm("password1")
	password2 := c.PostForm("password2")

	var formErrors []string
	if username == "" {
		formErrors = append(formErrors, "Username is required.")
	}
	if email == "" {
		formErrors = append(formErrors, "Email is required.")
	}
	if len(password1) < 8 {
		formErrors = append(formErrors, "Password must be at least 8 characters.")
	}
	if password1 != password2 {
		formErrors = append(formErrors, "Passwords do not match.")
	}
	if username != "" {
		_, err := h.store.GetUserByUsername(username)
		switch {
		case err == nil:
			formErrors = append(formErrors, "That username is already taken.")
		case !errors.Is(err, database.ErrNotFound):
			serverError(c, err)
			return
		}
	}

	if len(formErrors) > 0 {
		c.HTML(http.StatusOK, "register.html", gin.H{
			"Errors":   formErrors,
			"Username": username,
			"Email":    email,
		})
		return
	}

	user := &models.User{
		ID:       uuid.New(),
		Username: username,
		Email:    email,
	}
	if err := user.SetPassword(password1); err != nil {
		serverError(c, err)
		return
	}
	if err := h.store.CreateUser(user); err != nil {
		serverError(c, err)
		return
	}

	h.login(c, user)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) LoginForm(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"User":     middleware.UserFrom(c),
		"Username": "",
		"Next":     c.Query("next"),
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	username := strings.TrimSpace(c.PostForm("username"))
	password := c.PostForm("password")

	user, err := h.store.GetUserByUsername(username)
	if err != nil && !errors.Is(err, database.ErrNotFound) {
		serverError(c, err)
		return
	}
	if user == nil || !user.CheckPassword(password) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"Errors":   []string{"Invalid username or password."},
			"Username": username,
			"Next":     c.PostForm("next"),
		})
		return
	}

	h.login(c, user)

	// Only same-site relative targets; anything else goes home.
	next := c.PostForm("next")
	if !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		next = "/"
	}
	c.Redirect(http.StatusFound, next)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c)
	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) Profile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User": middleware.UserFrom(c),
	})
}

func (h *AuthHandler) login(c *gin.Context, user *models.User) {
	token, err := middleware.NewSessionToken(h.cfg, user.ID)
	if err != nil {
		log.Printf("failed to issue session for %s: %v", user.Username, err)
		return
	}
	middleware.SetSessionCookie(c, token)
}

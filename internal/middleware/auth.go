package middleware

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"twibbon-backend/internal/config"
	"twibbon-backend/internal/database"
	"twibbon-backend/internal/models"
)

const (
	// SessionCookie carries a signed JWT whose subject is the user id.
	SessionCookie = "session"

	CurrentUserKey = "current_user"

	sessionLifetime = 30 * 24 * time.Hour
)

// NewSessionToken issues the signed session token stored in the cookie.
func NewSessionToken(cfg *config.Config, userID uuid.UUID) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID.String(),
		"iat": time.Now().Unix(),
		"exp": time.Now().Add(sessionLifetime).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.SessionSecret))
}

func SetSessionCookie(c *gin.Context, token string) {
	c.SetCookie(SessionCookie, token, int(sessionLifetime/time.Second), "/", "", false, true)
}

func ClearSessionCookie(c *gin.Context) {
	c.SetCookie(SessionCookie, "", -1, "/", "", false, true)
}

// CurrentUser resolves the session cookie into a *models.User and stores it
// in the request context. Requests without a valid session proceed as
// anonymous; rejecting them is left to RequireLogin / RequireStaff.
func CurrentUser(cfg *config.Config, store database.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			c.Next()
			return
		}

		token, err := jwt.Parse(cookie, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(cfg.SessionSecret), nil
		}, jwt.WithValidMethods([]string{"HS256"}))
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			c.Next()
			return
		}
		sub, ok := claims["sub"].(string)
		if !ok {
			c.Next()
			return
		}
		userID, err := uuid.Parse(sub)
		if err != nil {
			c.Next()
			return
		}

		user, err := store.GetUserByID(userID)
		if err != nil {
			// Stale cookie for a deleted user; continue anonymous.
			c.Next()
			return
		}

		c.Set(CurrentUserKey, user)
		c.Next()
	}
}

// UserFrom returns the authenticated user for this request, or nil.
func UserFrom(c *gin.Context) *models.User {
	v, exists := c.Get(CurrentUserKey)
	if !exists {
		return nil
	}
	user, ok := v.(*models.User)
	if !ok {
		return nil
	}
	return user
}

// RequireLogin redirects anonymous requests to the login form before any
// handler runs.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserFrom(c) == nil {
			redirectToLogin(c)
			return
		}
		c.Next()
	}
}

// RequireStaff rejects requests lacking the staff capability: anonymous
// users get the login redirect, authenticated non-staff get 403.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		user := UserFrom(c)
		if user == nil {
			redirectToLogin(c)
			return
		}
		if !user.IsStaff {
			c.String(http.StatusForbidden, "403 Forbidden")
			c.Abort()
			return
		}
		c.Next()
	}
}

func redirectToLogin(c *gin.Context) {
	c.Redirect(http.StatusFound, "/login/?next="+url.QueryEscape(c.Request.URL.Path))
	c.Abort()
}

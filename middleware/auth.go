package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"dolanlur/model"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Context keys the middleware populates for downstream handlers.
const (
	ClaimsKey = "claims"
	UserIDKey = "userId"
)

// Routes that must stay reachable without a token, matched by exact path.
var exemptRoutes = map[string]struct{}{
	"/api/auth/register":        {},
	"/api/auth/login":           {},
	"/api/auth/refresh":         {},
	"/api/auth/forget-password": {},
	"/api/auth/reset-password":  {},
}

type UserStore interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

type RefreshStore interface {
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	Create(ctx context.Context, userID int64, token string) (*model.RefreshToken, error)
}

// Session authenticates every request to a protected route. An expired but
// otherwise valid access token is renewed silently through the refresh
// cookie; any other failure rejects the request.
type Session struct {
	Tokens       *services.TokenService
	Blacklist    *services.Blacklist
	Users        UserStore
	Refresh      RefreshStore
	CookieName   string
	CookieMaxAge int
	CookieSecure bool
	Log          *zap.Logger
}

func (s *Session) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := exemptRoutes[c.Request.URL.Path]; ok {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Token is missing"})
			return
		}
		accessToken := strings.TrimPrefix(header, "Bearer ")

		// Revoked tokens are rejected before any signature work.
		if s.Blacklist.Contains(accessToken) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Token is blacklisted"})
			return
		}

		claims, err := s.Tokens.ParseAccessToken(accessToken)
		switch {
		case err == nil:
			c.Set(ClaimsKey, claims)
			c.Set(UserIDKey, claims.UserID)
			c.Next()
		case errors.Is(err, services.ErrTokenExpired):
			s.renew(c)
		default:
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid access token"})
		}
	}
}

// renew mints a fresh token pair from the refresh cookie. A new refresh row
// is inserted without deleting the prior one, so several live refresh tokens
// per user are possible.
func (s *Session) renew(c *gin.Context) {
	refreshToken, err := c.Cookie(s.CookieName)
	if err != nil || refreshToken == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Refresh token is missing"})
		return
	}

	stored, err := s.Refresh.FindByToken(c.Request.Context(), refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid refresh token"})
			return
		}
		s.Log.Error("refresh token lookup failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
		return
	}

	user, err := s.Users.GetByID(c.Request.Context(), stored.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: User not found"})
			return
		}
		s.Log.Error("user lookup failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
		return
	}

	newAccess, err := s.Tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		s.Log.Error("access token issue failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
		return
	}
	newRefresh, err := s.Tokens.CreateRefreshToken(user.ID, user.Email)
	if err != nil {
		s.Log.Error("refresh token issue failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
		return
	}
	if _, err := s.Refresh.Create(c.Request.Context(), user.ID, newRefresh); err != nil {
		s.Log.Error("refresh token store failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
		return
	}

	s.SetRefreshCookie(c, newRefresh)
	c.Request.Header.Set("Authorization", "Bearer "+newAccess)

	claims := &model.AccessClaims{UserID: user.ID, Email: user.Email}
	c.Set(ClaimsKey, claims)
	c.Set(UserIDKey, user.ID)
	c.Next()
}

// CurrentUserID returns the user id the session middleware resolved for
// this request.
func CurrentUserID(c *gin.Context) (int64, bool) {
	v, ok := c.Get(UserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}

func (s *Session) SetRefreshCookie(c *gin.Context, token string) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.CookieName, token, s.CookieMaxAge, "/", "", s.CookieSecure, true)
}

func (s *Session) ClearRefreshCookie(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(s.CookieName, "", -1, "/", "", s.CookieSecure, true)
}

// RequireRole guards a route group behind a role after the session
// middleware has resolved identity.
func RequireRole(users UserStore, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claimsValue, exists := c.Get(ClaimsKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Claims not found"})
			return
		}
		claims, ok := claimsValue.(*model.AccessClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid claims format"})
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "User not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to authorize request"})
			return
		}
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
			return
		}
		c.Next()
	}
}

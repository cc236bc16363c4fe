package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dolanlur/config"
	"dolanlur/model"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	users map[int64]*model.User
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

type fakeRefresh struct {
	rows   map[string]*model.RefreshToken
	nextID int64
}

func newFakeRefresh() *fakeRefresh {
	return &fakeRefresh{rows: make(map[string]*model.RefreshToken)}
}

func (f *fakeRefresh) FindByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	row, ok := f.rows[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeRefresh) Create(_ context.Context, userID int64, token string) (*model.RefreshToken, error) {
	f.nextID++
	row := &model.RefreshToken{ID: f.nextID, UserID: userID, Token: token, IssuedAt: time.Now()}
	f.rows[token] = row
	return row, nil
}

func authConfig(accessTTL time.Duration) config.Auth {
	return config.Auth{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     accessTTL,
		RefreshTTL:    4 * time.Hour,
	}
}

func newTestSession(accessTTL time.Duration) (*Session, *fakeUsers, *fakeRefresh) {
	users := &fakeUsers{users: map[int64]*model.User{
		1: {ID: 1, Email: "bob@x.com", Role: model.RoleUser},
	}}
	refresh := newFakeRefresh()
	session := &Session{
		Tokens:       services.NewTokenService(authConfig(accessTTL)),
		Blacklist:    services.NewBlacklist(),
		Users:        users,
		Refresh:      refresh,
		CookieName:   "refresh_token",
		CookieMaxAge: 14400,
		Log:          zap.NewNop(),
	}
	return session, users, refresh
}

func newTestRouter(session *Session) *gin.Engine {
	router := gin.New()
	router.Use(session.Handler())
	router.GET("/api/protected", func(c *gin.Context) {
		id, _ := CurrentUserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id})
	})
	router.POST("/api/auth/login", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})
	return router
}

func TestExemptRouteSkipsAuthentication(t *testing.T) {
	session, _, _ := newTestSession(10 * time.Minute)
	router := newTestRouter(session)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMissingTokenIsRejected(t *testing.T) {
	session, _, _ := newTestSession(10 * time.Minute)
	router := newTestRouter(session)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Token is missing")
}

func TestValidTokenPasses(t *testing.T) {
	session, _, _ := newTestSession(10 * time.Minute)
	router := newTestRouter(session)

	token, err := session.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":1`)
}

func TestBlacklistedTokenIsRejected(t *testing.T) {
	session, _, _ := newTestSession(10 * time.Minute)
	router := newTestRouter(session)

	token, err := session.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)
	session.Blacklist.Add(token)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "blacklisted")
}

func TestMalformedTokenIsRejected(t *testing.T) {
	session, _, _ := newTestSession(10 * time.Minute)
	router := newTestRouter(session)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid access token")
}

// A negative TTL makes every minted access token already expired, which
// forces the renewal path on each request.
func TestExpiredTokenIsRenewedThroughRefreshCookie(t *testing.T) {
	session, _, refresh := newTestSession(-time.Minute)
	router := newTestRouter(session)

	expired, err := session.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)
	refreshToken, err := session.Tokens.CreateRefreshToken(1, "bob@x.com")
	require.NoError(t, err)
	_, err = refresh.Create(context.Background(), 1, refreshToken)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"userId":1`)

	// The prior refresh row stays; renewal adds a second one.
	assert.Len(t, refresh.rows, 2)

	var renewed bool
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" && c.Value != refreshToken {
			renewed = true
		}
	}
	assert.True(t, renewed, "renewal should set a fresh refresh cookie")
}

func TestExpiredTokenWithoutCookieIsRejected(t *testing.T) {
	session, _, _ := newTestSession(-time.Minute)
	router := newTestRouter(session)

	expired, err := session.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token is missing")
}

func TestExpiredTokenWithUnknownRefreshIsRejected(t *testing.T) {
	session, _, _ := newTestSession(-time.Minute)
	router := newTestRouter(session)

	expired, err := session.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "never-issued"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")
}

func TestRenewalRejectsDeletedUser(t *testing.T) {
	session, users, refresh := newTestSession(-time.Minute)
	router := newTestRouter(session)

	expired, err := session.Tokens.CreateAccessToken(9, "gone@x.com")
	require.NoError(t, err)
	_, err = refresh.Create(context.Background(), 9, "orphan-refresh")
	require.NoError(t, err)
	delete(users.users, 9)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expired)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: "orphan-refresh"})
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestRequireRole(t *testing.T) {
	session, users, _ := newTestSession(10 * time.Minute)
	users.users[2] = &model.User{ID: 2, Email: "admin@x.com", Role: model.RoleAdmin}

	router := gin.New()
	router.Use(session.Handler())
	router.GET("/api/admin", RequireRole(session.Users, model.RoleAdmin), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "ok"})
	})

	do := func(userID int64, email string) *httptest.ResponseRecorder {
		token, err := session.Tokens.CreateAccessToken(userID, email)
		require.NoError(t, err)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do(2, "admin@x.com").Code)

	w := do(1, "bob@x.com")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient permissions")
}

package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"dolanlur/config"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeUsers struct {
	byEmail map[string]*model.User
	byID    map[int64]*model.User
	nextID  int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byEmail: make(map[string]*model.User), byID: make(map[int64]*model.User)}
}

func (f *fakeUsers) add(u *model.User) {
	f.byEmail[u.Email] = u
	f.byID[u.ID] = u
	if u.ID > f.nextID {
		f.nextID = u.ID
	}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrConflict
	}
	f.nextID++
	u.ID = f.nextID
	f.add(u)
	return nil
}

func (f *fakeUsers) GetByID(_ context.Context, id int64) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) GetByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUsers) SetPassword(_ context.Context, id int64, hash string) error {
	u, ok := f.byID[id]
	if !ok {
		return repository.ErrNotFound
	}
	u.Password = hash
	u.OTP = nil
	return nil
}

func (f *fakeUsers) SetOTP(_ context.Context, email, otp string) error {
	u, ok := f.byEmail[email]
	if !ok {
		return repository.ErrNotFound
	}
	u.OTP = &otp
	return nil
}

type fakeRefresh struct {
	rows   map[string]*model.RefreshToken
	nextID int64
}

func newFakeRefresh() *fakeRefresh {
	return &fakeRefresh{rows: make(map[string]*model.RefreshToken)}
}

func (f *fakeRefresh) Create(_ context.Context, userID int64, token string) (*model.RefreshToken, error) {
	f.nextID++
	row := &model.RefreshToken{ID: f.nextID, UserID: userID, Token: token, IssuedAt: time.Now()}
	f.rows[token] = row
	return row, nil
}

func (f *fakeRefresh) FindByToken(_ context.Context, token string) (*model.RefreshToken, error) {
	row, ok := f.rows[token]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return row, nil
}

func (f *fakeRefresh) DeleteByToken(_ context.Context, token string) error {
	delete(f.rows, token)
	return nil
}

type fakeMailer struct {
	sent []string
}

func (f *fakeMailer) Send(to, _, _ string) error {
	f.sent = append(f.sent, to)
	return nil
}

func newTestController() (*Controller, *fakeUsers, *fakeRefresh, *fakeMailer) {
	users := newFakeUsers()
	refresh := newFakeRefresh()
	mailer := &fakeMailer{}

	tokens := services.NewTokenService(config.Auth{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		AccessTTL:     10 * time.Minute,
		RefreshTTL:    4 * time.Hour,
	})

	ctl := &Controller{
		Users:     users,
		Refresh:   refresh,
		Tokens:    tokens,
		Blacklist: services.NewBlacklist(),
		Mailer:    mailer,
		Session:   &middleware.Session{CookieName: "refresh_token", CookieMaxAge: 14400},
		Log:       zap.NewNop(),
	}
	return ctl, users, refresh, mailer
}

func newTestRouter(ctl *Controller) *gin.Engine {
	router := gin.New()
	ctl.RegisterRoutes(router)
	return router
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func postJSON(router *gin.Engine, path, body string, mutate ...func(*http.Request)) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, m := range mutate {
		m(req)
	}
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndDuplicateEmail(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	body := `{"username":"bob","email":"bob@x.com","password":"pw"}`
	w := postJSON(router, "/api/auth/register", body)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/auth/register", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already registered")
}

func TestRegisterRejectsMissingFields(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/register", `{"username":"bob"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoginUnknownUserIs404(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/login", `{"email":"nobody@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestLoginWrongPasswordIs401(t *testing.T) {
	ctl, users, _, _ := newTestController()
	router := newTestRouter(ctl)

	users.add(&model.User{ID: 1, Email: "bob@x.com", Password: mustHash(t, "right")})

	w := postJSON(router, "/api/auth/login", `{"email":"bob@x.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid password")
}

func TestLoginSetsRefreshCookieAndPersistsRow(t *testing.T) {
	ctl, users, refresh, _ := newTestController()
	router := newTestRouter(ctl)

	users.add(&model.User{ID: 1, Email: "bob@x.com", Password: mustHash(t, "pw")})

	w := postJSON(router, "/api/auth/login", `{"email":"bob@x.com","password":"pw"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "accessToken")

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == "refresh_token" {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "login must set the refresh cookie")
	assert.True(t, cookie.HttpOnly)
	assert.Len(t, refresh.rows, 1)
	assert.Contains(t, refresh.rows, cookie.Value)
}

func TestRefreshWithoutCookieIs400(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/refresh", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Refresh token not found in cookies")
}

func TestRefreshWithUnknownTokenIs401(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/refresh", "", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "refresh_token", Value: "never-issued"})
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid refresh token")
}

func TestRefreshIssuesNewAccessToken(t *testing.T) {
	ctl, users, refresh, _ := newTestController()
	router := newTestRouter(ctl)

	users.add(&model.User{ID: 1, Email: "bob@x.com"})
	refreshToken, err := ctl.Tokens.CreateRefreshToken(1, "bob@x.com")
	require.NoError(t, err)
	_, err = refresh.Create(context.Background(), 1, refreshToken)
	require.NoError(t, err)

	w := postJSON(router, "/api/auth/refresh", "", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
	})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "New access token generated")
}

func TestForgetPasswordUnknownEmailStillSucceeds(t *testing.T) {
	ctl, _, _, mailer := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/forget-password", `{"email":"nobody@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, mailer.sent)
}

func TestForgetPasswordStoresOTPAndSendsMail(t *testing.T) {
	ctl, users, _, mailer := newTestController()
	router := newTestRouter(ctl)

	users.add(&model.User{ID: 1, Email: "bob@x.com"})

	w := postJSON(router, "/api/auth/forget-password", `{"email":"bob@x.com"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"bob@x.com"}, mailer.sent)
	require.NotNil(t, users.byID[1].OTP)
	assert.Len(t, *users.byID[1].OTP, 6)
}

func TestResetPasswordMismatchIs400(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/reset-password",
		`{"email":"bob@x.com","otp":"123456","newPassword":"a1","confirmNewPassword":"b2"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Passwords do not match")
}

func TestResetPasswordWrongOTPIs403(t *testing.T) {
	ctl, users, _, _ := newTestController()
	router := newTestRouter(ctl)

	otp := "654321"
	users.add(&model.User{ID: 1, Email: "bob@x.com", OTP: &otp, Password: mustHash(t, "old")})

	w := postJSON(router, "/api/auth/reset-password",
		`{"email":"bob@x.com","otp":"000000","newPassword":"new-pass","confirmNewPassword":"new-pass"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired OTP")
}

func TestResetPasswordSucceedsAndClearsOTP(t *testing.T) {
	ctl, users, _, _ := newTestController()
	router := newTestRouter(ctl)

	otp := "654321"
	users.add(&model.User{ID: 1, Email: "bob@x.com", OTP: &otp, Password: mustHash(t, "old")})

	w := postJSON(router, "/api/auth/reset-password",
		`{"email":"bob@x.com","otp":"654321","newPassword":"new-pass","confirmNewPassword":"new-pass"}`)
	assert.Equal(t, http.StatusOK, w.Code)

	user := users.byID[1]
	assert.Nil(t, user.OTP)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("new-pass")))
}

func TestLogoutWithoutCookieIs400(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/logout", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No refresh token found")
}

func TestLogoutRevokesTokensAndIsIdempotentOnMissingRow(t *testing.T) {
	ctl, _, refresh, _ := newTestController()
	router := newTestRouter(ctl)

	accessToken, err := ctl.Tokens.CreateAccessToken(1, "bob@x.com")
	require.NoError(t, err)
	refreshToken, err := ctl.Tokens.CreateRefreshToken(1, "bob@x.com")
	require.NoError(t, err)
	_, err = refresh.Create(context.Background(), 1, refreshToken)
	require.NoError(t, err)

	do := func() *httptest.ResponseRecorder {
		return postJSON(router, "/api/auth/logout", "", func(r *http.Request) {
			r.Header.Set("Authorization", "Bearer "+accessToken)
			r.AddCookie(&http.Cookie{Name: "refresh_token", Value: refreshToken})
		})
	}

	w := do()
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, ctl.Blacklist.Contains(accessToken))
	assert.Empty(t, refresh.rows)

	// Deleting an already-deleted row is a no-op, so a replayed logout
	// still succeeds.
	w = do()
	assert.Equal(t, http.StatusOK, w.Code)
}

type fakeCaptcha struct {
	allow     bool
	err       error
	gotToken  string
	gotAction string
}

func (f *fakeCaptcha) Verify(_ context.Context, token, action, _, _ string) (bool, error) {
	f.gotToken = token
	f.gotAction = action
	return f.allow, f.err
}

func TestRegisterRejectedCaptchaIs403(t *testing.T) {
	ctl, users, _, _ := newTestController()
	ctl.Captcha = &fakeCaptcha{allow: false}
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/register", `{"username":"bob","email":"bob@x.com","password":"pw","captchaToken":"tok"}`)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Captcha verification failed")
	assert.Empty(t, users.byEmail)
}

func TestLoginPassesCaptchaTokenAndAction(t *testing.T) {
	ctl, users, _, _ := newTestController()
	captcha := &fakeCaptcha{allow: true}
	ctl.Captcha = captcha
	router := newTestRouter(ctl)

	users.add(&model.User{ID: 1, Email: "bob@x.com", Password: mustHash(t, "pw")})

	w := postJSON(router, "/api/auth/login", `{"email":"bob@x.com","password":"pw","captchaToken":"tok"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "tok", captcha.gotToken)
	assert.Equal(t, "login", captcha.gotAction)
}

func TestCaptchaSkippedWhenUnconfigured(t *testing.T) {
	ctl, _, _, _ := newTestController()
	router := newTestRouter(ctl)

	w := postJSON(router, "/api/auth/register", `{"username":"bob","email":"bob@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusCreated, w.Code)
}

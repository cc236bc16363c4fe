package user

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

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
	byID   map[int64]*model.User
	nextID int64
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{byID: make(map[int64]*model.User)}
}

func (f *fakeUsers) add(u *model.User) {
	f.byID[u.ID] = u
	if u.ID > f.nextID {
		f.nextID = u.ID
	}
}

func (f *fakeUsers) Create(_ context.Context, u *model.User) error {
	for _, existing := range f.byID {
		if existing.Email == u.Email || existing.Username == u.Username {
			return repository.ErrConflict
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.byID[u.ID] = u
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
	for _, u := range f.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeUsers) List(_ context.Context, _, _ int) ([]model.User, error) {
	var users []model.User
	for _, u := range f.byID {
		users = append(users, *u)
	}
	return users, nil
}

func (f *fakeUsers) UpdateProfile(_ context.Context, id int64, username, phone, secureURL, publicURL *string) (*model.User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if username != nil {
		u.Username = *username
	}
	if phone != nil {
		u.Phone = phone
	}
	if secureURL != nil {
		u.SecureURLProfile = secureURL
	}
	if publicURL != nil {
		u.PublicURLProfile = publicURL
	}
	return u, nil
}

func (f *fakeUsers) Delete(_ context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

// newTestRouter registers the routes behind a stub session that resolves
// every request to callerID, the way the auth middleware would.
func newTestRouter(ctl *Controller, callerID int64) *gin.Engine {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.ClaimsKey, &model.AccessClaims{UserID: callerID})
		c.Set(middleware.UserIDKey, callerID)
	})
	ctl.RegisterRoutes(router)
	return router
}

func newTestController() (*Controller, *fakeUsers) {
	users := newFakeUsers()
	return &Controller{Users: users, Log: zap.NewNop()}, users
}

func postForm(router *gin.Engine, method, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	router.ServeHTTP(w, req)
	return w
}

func get(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestCreateUserHashesPasswordAndDefaultsRole(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	w := postForm(router, http.MethodPost, "/api/users", url.Values{
		"username": {"bob"},
		"email":    {"bob@x.com"},
		"password": {"pw"},
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created, err := users.GetByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, created.Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("pw")))
}

func TestCreateUserDuplicateEmailIs409(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com"})

	w := postForm(router, http.MethodPost, "/api/users", url.Values{
		"username": {"bobby"},
		"email":    {"bob@x.com"},
		"password": {"pw"},
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestCreateUserMissingFieldsIs400(t *testing.T) {
	ctl, _ := newTestController()
	router := newTestRouter(ctl, 1)

	w := postForm(router, http.MethodPost, "/api/users", url.Values{"username": {"bob"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetByUsername(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com"})

	w := get(router, "/api/users/username/bob")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob@x.com")

	w = get(router, "/api/users/username/nobody")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "User not found")
}

func TestGetByEmail(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com"})

	w := get(router, "/api/users/email/bob@x.com")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "bob")

	w = get(router, "/api/users/email/nobody@x.com")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateOwnAccountSucceeds(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})

	w := postForm(router, http.MethodPut, "/api/users/1", url.Values{"username": {"bobby"}})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bobby", users.byID[1].Username)
}

func TestUpdateOtherAccountAsUserIs403(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 2)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})
	users.add(&model.User{ID: 2, Username: "eve", Email: "eve@x.com", Role: model.RoleUser})

	w := postForm(router, http.MethodPut, "/api/users/1", url.Values{"username": {"pwned"}})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "Access denied. Insufficient permissions.")
	assert.Equal(t, "bob", users.byID[1].Username)
}

func TestUpdateOtherAccountAsAdminSucceeds(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 2)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})
	users.add(&model.User{ID: 2, Username: "root", Email: "root@x.com", Role: model.RoleAdmin})

	w := postForm(router, http.MethodPut, "/api/users/1", url.Values{"username": {"bobby"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "bobby", users.byID[1].Username)
}

func TestDeleteOtherAccountAsUserIs403(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 2)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})
	users.add(&model.User{ID: 2, Username: "eve", Email: "eve@x.com", Role: model.RoleUser})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, users.byID, int64(1))
}

func TestDeleteOwnAccountSucceeds(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/api/users/1", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, users.byID, int64(1))
}

func TestListRequiresAdmin(t *testing.T) {
	ctl, users := newTestController()
	router := newTestRouter(ctl, 1)

	users.add(&model.User{ID: 1, Username: "bob", Email: "bob@x.com", Role: model.RoleUser})

	w := get(router, "/api/users")
	assert.Equal(t, http.StatusForbidden, w.Code)

	users.byID[1].Role = model.RoleAdmin
	w = get(router, "/api/users")
	assert.Equal(t, http.StatusOK, w.Code)
}

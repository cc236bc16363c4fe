package user

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	List(ctx context.Context, page, itemsPerPage int) ([]model.User, error)
	UpdateProfile(ctx context.Context, id int64, username, phone, secureURL, publicURL *string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}

type Controller struct {
	Users   UserStore
	Details *repository.DetailUserRepo
	Storage middleware.Uploader
	Log     *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	users := router.Group("/api/users")
	users.POST("", ctl.Create)
	users.GET("", middleware.RequireRole(ctl.Users, model.RoleAdmin), ctl.List)
	users.GET("/:id", ctl.GetByID)
	users.GET("/username/:username", ctl.GetByUsername)
	users.GET("/email/:email", ctl.GetByEmail)
	users.PUT("/:id", ctl.Update)
	users.DELETE("/:id", ctl.Delete)

	details := router.Group("/api/detail-users")
	details.POST("", ctl.CreateDetail)
	details.GET("", ctl.ListDetails)
	details.GET("/me", ctl.GetDetail)
	details.PUT("", ctl.UpdateDetail)
	details.DELETE("/:id", ctl.DeleteDetail)
}

// Create accepts multipart form data so an initial profile image can
// ride along with the account fields.
func (ctl *Controller) Create(c *gin.Context) {
	var request dto.CreateUserRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Username, email and password are required"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	newUser := model.User{
		Username: request.Username,
		Email:    request.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
		Status:   model.StatusActive,
	}
	if err := ctl.Users.Create(c.Request.Context(), &newUser); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		ctl.Log.Error("user create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}
	if secureURL != nil {
		updated, err := ctl.Users.UpdateProfile(c.Request.Context(), newUser.ID, nil, nil, secureURL, publicURL)
		if err != nil {
			ctl.Log.Error("user profile image attach failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		newUser = *updated
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User created successfully", "user": newUser})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	users, err := ctl.Users.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("user list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "users": users})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	user, err := ctl.Users.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("user fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *Controller) GetByUsername(c *gin.Context) {
	user, err := ctl.Users.GetByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("user fetch by username failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (ctl *Controller) GetByEmail(c *gin.Context) {
	user, err := ctl.Users.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("user fetch by email failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update accepts multipart form data so the profile image can ride along
// with the text fields.
func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !ctl.ownerOrAdmin(c, id) {
		return
	}

	var request dto.UpdateProfileRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	user, err := ctl.Users.UpdateProfile(c.Request.Context(), id, request.Username, request.Phone, secureURL, publicURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("user update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User updated successfully", "user": user})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if !ctl.ownerOrAdmin(c, id) {
		return
	}
	if err := ctl.Users.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("user delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ownerOrAdmin lets the account owner or an admin through and writes the
// response itself otherwise.
func (ctl *Controller) ownerOrAdmin(c *gin.Context, id int64) bool {
	callerID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return false
	}
	if callerID == id {
		return true
	}
	caller, err := ctl.Users.GetByID(c.Request.Context(), callerID)
	if err != nil {
		ctl.Log.Error("caller lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify permissions"})
		return false
	}
	if caller.Role != model.RoleAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied. Insufficient permissions."})
		return false
	}
	return true
}

func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return id, true
}

func pagination(c *gin.Context) (page, itemsPerPage int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	itemsPerPage, _ = strconv.Atoi(c.DefaultQuery("itemsPerPage", "10"))
	return page, itemsPerPage
}

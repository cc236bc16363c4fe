package banner

import (
	"errors"
	"net/http"
	"strconv"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Banners *repository.BannerRepo
	Storage middleware.Uploader
	Log     *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/banners")
	group.POST("", ctl.Create)
	group.GET("", ctl.List)
	group.GET("/:id", ctl.GetByID)
	group.GET("/user/:user_id", ctl.ListByUser)
	group.GET("/vehicle/:vehicle_id", ctl.ListByVehicle)
	group.PUT("/:id", ctl.Update)
	group.DELETE("/:id", ctl.Delete)
}

func (ctl *Controller) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateBannerRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	banner := model.Banner{
		UserID:         userID,
		VehicleID:      request.VehicleID,
		Title:          request.Title,
		Description:    request.Description,
		SecureURLImage: secureURL,
		PublicURLImage: publicURL,
	}
	if err := ctl.Banners.Create(c.Request.Context(), &banner); err != nil {
		ctl.Log.Error("banner create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create banner"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Banner created successfully", "banner": banner})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	banners, err := ctl.Banners.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("banner list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "banners": banners})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	banner, err := ctl.Banners.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		ctl.Log.Error("banner fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banner"})
		return
	}
	c.JSON(http.StatusOK, banner)
}

func (ctl *Controller) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	banners, err := ctl.Banners.ListByUser(c.Request.Context(), userID)
	if err != nil {
		ctl.Log.Error("banner list by user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (ctl *Controller) ListByVehicle(c *gin.Context) {
	vehicleID, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	banners, err := ctl.Banners.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		ctl.Log.Error("banner list by vehicle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch banners"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateBannerRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	banner, err := ctl.Banners.Update(c.Request.Context(), id, request.Title, request.Description, secureURL, publicURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		ctl.Log.Error("banner update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner updated successfully", "banner": banner})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Banners.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Banner not found"})
			return
		}
		ctl.Log.Error("banner delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete banner"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Banner deleted successfully"})
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

package brand

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
	Brands  *repository.BrandRepo
	Users   middleware.UserStore
	Storage middleware.Uploader
	Log     *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/brands")
	group.GET("", ctl.List)
	group.GET("/:id", ctl.GetByID)

	admin := middleware.RequireRole(ctl.Users, model.RoleAdmin)
	group.POST("", admin, ctl.Create)
	group.PUT("/:id", admin, ctl.Update)
	group.DELETE("/:id", admin, ctl.Delete)
}

func (ctl *Controller) Create(c *gin.Context) {
	var request dto.CreateBrandRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Brand name is required"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	brand := model.Brand{
		BrandName:      request.BrandName,
		SecureURLImage: secureURL,
		PublicURLImage: publicURL,
	}
	if err := ctl.Brands.Create(c.Request.Context(), &brand); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Brand already exists"})
			return
		}
		ctl.Log.Error("brand create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create brand"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Brand created successfully", "brand": brand})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	brands, err := ctl.Brands.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("brand list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brands"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "brands": brands})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	brand, err := ctl.Brands.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		ctl.Log.Error("brand fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch brand"})
		return
	}
	c.JSON(http.StatusOK, brand)
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request dto.UpdateBrandRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	brand, err := ctl.Brands.Update(c.Request.Context(), id, request.BrandName, secureURL, publicURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		ctl.Log.Error("brand update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update brand"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand updated successfully", "brand": brand})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.Brands.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Brand not found"})
			return
		}
		ctl.Log.Error("brand delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete brand"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Brand deleted successfully"})
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
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

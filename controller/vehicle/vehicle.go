package vehicle

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
	Vehicles *repository.VehicleRepo
	Users    middleware.UserStore
	Storage  middleware.Uploader
	Log      *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/vehicles")
	group.GET("", ctl.List)
	group.GET("/:id", ctl.GetByID)
	group.GET("/brand/:brand_id", ctl.ListByBrand)

	admin := middleware.RequireRole(ctl.Users, model.RoleAdmin)
	group.POST("", admin, ctl.Create)
	group.PUT("/:id", admin, ctl.Update)
	group.DELETE("/:id", admin, ctl.Delete)
}

func (ctl *Controller) Create(c *gin.Context) {
	var request dto.CreateVehicleRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	vehicle := model.Vehicle{
		BrandID:            request.BrandID,
		VehicleType:        request.VehicleType,
		VehicleName:        request.VehicleName,
		RentalPrice:        request.RentalPrice,
		AvailabilityStatus: model.VehicleAvailable,
		Year:               request.Year,
		Seats:              request.Seats,
		HorsePower:         request.HorsePower,
		Description:        request.Description,
		SpecificationList:  request.SpecificationList,
		SecureURLImage:     secureURL,
		PublicURLImage:     publicURL,
	}
	if err := ctl.Vehicles.Create(c.Request.Context(), &vehicle); err != nil {
		ctl.Log.Error("vehicle create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create vehicle"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Vehicle created successfully", "vehicle": vehicle})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	vehicles, err := ctl.Vehicles.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("vehicle list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "vehicles": vehicles})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	vehicle, err := ctl.Vehicles.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		ctl.Log.Error("vehicle fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicle"})
		return
	}
	c.JSON(http.StatusOK, vehicle)
}

func (ctl *Controller) ListByBrand(c *gin.Context) {
	brandID, ok := pathID(c, "brand_id")
	if !ok {
		return
	}
	vehicles, err := ctl.Vehicles.ListByBrand(c.Request.Context(), brandID)
	if err != nil {
		ctl.Log.Error("vehicle list by brand failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch vehicles"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"vehicles": vehicles})
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch model.VehiclePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	vehicle, err := ctl.Vehicles.Update(c.Request.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		ctl.Log.Error("vehicle update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle updated successfully", "vehicle": vehicle})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Vehicles.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		ctl.Log.Error("vehicle delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete vehicle"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Vehicle deleted successfully"})
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

package address

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
	Addresses  *repository.AddressRepo
	Deliveries *repository.AddressDeliveryRepo
	Log        *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/addresses")
	group.POST("", ctl.Create)
	group.GET("", ctl.List)
	group.GET("/:id", ctl.GetByID)
	group.GET("/user/:user_id", ctl.ListByUser)
	group.PUT("/:id", ctl.Update)
	group.DELETE("/:id", ctl.Delete)

	delivery := router.Group("/api/address-delivery")
	delivery.POST("", ctl.CreateDelivery)
	delivery.GET("", ctl.ListDeliveries)
	delivery.GET("/:id", ctl.GetDeliveryByID)
	delivery.PUT("/:id", ctl.UpdateDelivery)
	delivery.DELETE("/:id", ctl.DeleteDelivery)
}

func (ctl *Controller) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateAddressRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Full name and address are required"})
		return
	}

	address := model.Address{
		UserID:      userID,
		FullName:    request.FullName,
		Address:     request.Address,
		Phone:       request.Phone,
		FullAddress: request.FullAddress,
		URLMaps:     request.URLMaps,
		Latitude:    request.Latitude,
		Longitude:   request.Longitude,
	}
	if err := ctl.Addresses.Create(c.Request.Context(), &address); err != nil {
		ctl.Log.Error("address create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address created successfully", "address": address})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	addresses, err := ctl.Addresses.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("address list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "addresses": addresses})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	address, err := ctl.Addresses.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		ctl.Log.Error("address fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address"})
		return
	}
	c.JSON(http.StatusOK, address)
}

func (ctl *Controller) ListByUser(c *gin.Context) {
	userID, ok := pathID(c, "user_id")
	if !ok {
		return
	}
	addresses, err := ctl.Addresses.ListByUser(c.Request.Context(), userID)
	if err != nil {
		ctl.Log.Error("address list by user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch addresses"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"addresses": addresses})
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var patch model.AddressPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	address, err := ctl.Addresses.Update(c.Request.Context(), id, &patch)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		ctl.Log.Error("address update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address updated successfully", "address": address})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Addresses.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address not found"})
			return
		}
		ctl.Log.Error("address delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address deleted successfully"})
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

package address

import (
	"errors"
	"net/http"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func (ctl *Controller) CreateDelivery(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateAddressDeliveryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	delivery := model.AddressDelivery{
		UserID:   userID,
		FullName: request.FullName,
		Address:  request.Address,
		Phone:    request.Phone,
	}
	if err := ctl.Deliveries.Create(c.Request.Context(), &delivery); err != nil {
		ctl.Log.Error("address delivery create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create address delivery"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Address delivery created successfully", "address_delivery": delivery})
}

func (ctl *Controller) ListDeliveries(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	deliveries, err := ctl.Deliveries.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("address delivery list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address deliveries"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "address_deliveries": deliveries})
}

func (ctl *Controller) GetDeliveryByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	delivery, err := ctl.Deliveries.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address delivery not found"})
			return
		}
		ctl.Log.Error("address delivery fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch address delivery"})
		return
	}
	c.JSON(http.StatusOK, delivery)
}

func (ctl *Controller) UpdateDelivery(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateAddressDeliveryRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	delivery, err := ctl.Deliveries.Update(c.Request.Context(), id, request.FullName, request.Address, request.Phone)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address delivery not found"})
			return
		}
		ctl.Log.Error("address delivery update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update address delivery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address delivery updated successfully", "address_delivery": delivery})
}

func (ctl *Controller) DeleteDelivery(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Deliveries.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Address delivery not found"})
			return
		}
		ctl.Log.Error("address delivery delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete address delivery"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Address delivery deleted successfully"})
}

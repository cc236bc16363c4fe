package rental

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

type Controller struct {
	Rentals *repository.RentalRepo
	Log     *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/rentals")
	group.POST("", ctl.Create)
	group.GET("", ctl.List)
	group.GET("/:id", ctl.GetByID)
	group.PUT("/:id", ctl.Update)
	group.DELETE("/:id", ctl.Delete)
}

func (ctl *Controller) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateRentalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	startDate, err := time.Parse(dateLayout, request.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
		return
	}
	endDate, err := time.Parse(dateLayout, request.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "End date must be after start date"})
		return
	}

	status := request.RentalStatus
	if status == "" {
		status = model.RentalPending
	}

	rental := model.Rental{
		UserID:             userID,
		VehicleID:          request.VehicleID,
		StartDate:          startDate,
		EndDate:            endDate,
		DeliveryLocationID: request.DeliveryLocationID,
		RentalStatus:       status,
		TotalPrice:         request.TotalPrice,
	}
	if err := ctl.Rentals.Create(c.Request.Context(), &rental); err != nil {
		ctl.Log.Error("rental create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create rental"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Rental created successfully", "rental": rental})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	rentals, err := ctl.Rentals.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("rental list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rentals"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "rentals": rentals})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	rental, err := ctl.Rentals.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		ctl.Log.Error("rental fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch rental"})
		return
	}
	c.JSON(http.StatusOK, rental)
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request dto.UpdateRentalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var startDate, endDate *time.Time
	if request.StartDate != nil {
		parsed, err := time.Parse(dateLayout, *request.StartDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid start date, expected YYYY-MM-DD"})
			return
		}
		startDate = &parsed
	}
	if request.EndDate != nil {
		parsed, err := time.Parse(dateLayout, *request.EndDate)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid end date, expected YYYY-MM-DD"})
			return
		}
		endDate = &parsed
	}

	rental, err := ctl.Rentals.Update(c.Request.Context(), id, startDate, endDate, request.RentalStatus, request.TotalPrice)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		ctl.Log.Error("rental update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update rental"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental updated successfully", "rental": rental})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.Rentals.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Rental not found"})
			return
		}
		ctl.Log.Error("rental delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete rental"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rental deleted successfully"})
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

package booking

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
	Bookings *repository.BookingRepo
	Vehicles *repository.VehicleRepo
	Users    middleware.UserStore
	Storage  middleware.Uploader
	Log      *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/bookings")
	group.POST("/create", ctl.Create)
	group.GET("/user/history", ctl.History)
	group.GET("/user/history/:id", ctl.HistoryByID)
	group.PUT("/user/:id", ctl.AttachPaymentProof)

	admin := router.Group("/api/dashboard", middleware.RequireRole(ctl.Users, model.RoleAdmin))
	admin.GET("/book", ctl.List)
	admin.GET("/book/:id", ctl.GetByID)
	admin.GET("/book/vehicle/:vehicle_id", ctl.ListByVehicle)
	admin.PUT("/book/:id", ctl.UpdateAdmin)
	admin.DELETE("/book/:id", ctl.Delete)
}

// Create opens a booking in pending status. The rental period and total
// price are derived server-side from the vehicle's daily rate, never taken
// from the client.
func (ctl *Controller) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateBookingRequest
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

	vehicle, err := ctl.Vehicles.GetByID(c.Request.Context(), request.VehicleID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Vehicle not found"})
			return
		}
		ctl.Log.Error("booking vehicle lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}

	rentalPeriod := int(endDate.Sub(startDate).Hours() / 24)
	if rentalPeriod < 1 {
		rentalPeriod = 1
	}

	booking := model.Booking{
		UserID:           userID,
		VehicleID:        request.VehicleID,
		RentalPeriod:     rentalPeriod,
		StartDate:        startDate,
		EndDate:          endDate,
		DeliveryLocation: request.DeliveryLocation,
		RentalStatus:     model.RentalPending,
		TotalPrice:       vehicle.RentalPrice * float64(rentalPeriod),
		BankTransfer:     request.BankTransfer,
		Notes:            request.Notes,
		PaymentProof:     model.PaymentPending,
	}
	if err := ctl.Bookings.Create(c.Request.Context(), &booking); err != nil {
		ctl.Log.Error("booking create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create booking"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Booking created successfully", "booking": booking})
}

func (ctl *Controller) History(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	page, itemsPerPage := pagination(c)
	bookings, err := ctl.Bookings.ListByUser(c.Request.Context(), userID, page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("booking history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "bookings": bookings})
}

// HistoryByID fetches a single booking but only if it belongs to the caller.
func (ctl *Controller) HistoryByID(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := ctl.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		ctl.Log.Error("booking fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}
	if booking.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

// AttachPaymentProof uploads the transfer receipt for the caller's booking
// and flips the payment proof to paid.
func (ctl *Controller) AttachPaymentProof(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}
	if secureURL == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Payment proof image is required"})
		return
	}

	if err := ctl.Bookings.AttachPaymentProof(c.Request.Context(), id, userID, secureURL, publicURL); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		ctl.Log.Error("payment proof attach failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Payment proof uploaded successfully"})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	bookings, err := ctl.Bookings.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("booking list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "bookings": bookings})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	booking, err := ctl.Bookings.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		ctl.Log.Error("booking fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch booking"})
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctl *Controller) ListByVehicle(c *gin.Context) {
	vehicleID, ok := pathID(c, "vehicle_id")
	if !ok {
		return
	}
	bookings, err := ctl.Bookings.ListByVehicle(c.Request.Context(), vehicleID)
	if err != nil {
		ctl.Log.Error("booking list by vehicle failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bookings"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": bookings})
}

func (ctl *Controller) UpdateAdmin(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var request dto.UpdateBookingAdminRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	booking, err := ctl.Bookings.UpdateAdmin(c.Request.Context(), id, request.RentalStatus, request.PaymentProof, request.TotalPrice)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		ctl.Log.Error("booking admin update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking updated successfully", "booking": booking})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Bookings.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
			return
		}
		ctl.Log.Error("booking delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete booking"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
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

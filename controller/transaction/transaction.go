package transaction

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

type Controller struct {
	Transactions *repository.TransactionRepo
	Storage      middleware.Uploader
	Log          *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/transactions")
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

	var request dto.CreateTransactionRequest
	if err := c.ShouldBind(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	secureURL, publicURL, ok := middleware.FormImage(c, ctl.Storage, ctl.Log)
	if !ok {
		return
	}

	transaction := model.Transaction{
		UserID:          userID,
		RentalID:        request.RentalID,
		PaymentStatus:   request.PaymentStatus,
		TransactionDate: time.Now(),
		PaymentMethod:   request.PaymentMethod,
		TotalAmount:     request.TotalAmount,
		SecureURLImage:  secureURL,
		PublicURLImage:  publicURL,
	}
	if err := ctl.Transactions.Create(c.Request.Context(), &transaction); err != nil {
		ctl.Log.Error("transaction create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create transaction"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Transaction created successfully", "transaction": transaction})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	transactions, err := ctl.Transactions.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("transaction list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "transactions": transactions})
}

func (ctl *Controller) GetByID(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	transaction, err := ctl.Transactions.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		ctl.Log.Error("transaction fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transaction"})
		return
	}
	c.JSON(http.StatusOK, transaction)
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	transaction, err := ctl.Transactions.Update(c.Request.Context(), id, request.PaymentStatus, request.PaymentMethod, request.TotalAmount)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		ctl.Log.Error("transaction update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction updated successfully", "transaction": transaction})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.Transactions.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Transaction not found"})
			return
		}
		ctl.Log.Error("transaction delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete transaction"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
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

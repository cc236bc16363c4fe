package bank

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
	Accounts *repository.BankAccountRepo
	Log      *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/bank-transfer")
	group.POST("", ctl.Create)
	group.GET("", ctl.List)
	group.PUT("/:id", ctl.Update)
	group.DELETE("/:id", ctl.Delete)
}

func (ctl *Controller) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateBankAccountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Bank name and number are required"})
		return
	}

	account := model.BankAccount{
		UserID:   userID,
		NameBank: request.NameBank,
		Number:   request.Number,
	}
	if err := ctl.Accounts.Create(c.Request.Context(), &account); err != nil {
		ctl.Log.Error("bank account create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create bank account"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Bank account created successfully", "bank_account": account})
}

func (ctl *Controller) List(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	accounts, err := ctl.Accounts.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("bank account list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch bank accounts"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "bank_accounts": accounts})
}

func (ctl *Controller) Update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var request dto.UpdateBankAccountRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	account, err := ctl.Accounts.Update(c.Request.Context(), id, request.NameBank, request.Number)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
			return
		}
		ctl.Log.Error("bank account update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update bank account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank account updated successfully", "bank_account": account})
}

func (ctl *Controller) Delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctl.Accounts.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Bank account not found"})
			return
		}
		ctl.Log.Error("bank account delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete bank account"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Bank account deleted successfully"})
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

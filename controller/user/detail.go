package user

import (
	"errors"
	"net/http"
	"time"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

func (ctl *Controller) CreateDetail(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.CreateDetailUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	dob, err := time.Parse(dateLayout, request.DOB)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
		return
	}

	detail := model.DetailUser{
		UserID:   userID,
		FullName: request.FullName,
		Address:  request.Address,
		Phone:    request.Phone,
		Gender:   request.Gender,
		DOB:      dob,
	}
	if err := ctl.Details.Create(c.Request.Context(), &detail); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Detail user already exists"})
			return
		}
		ctl.Log.Error("detail user create failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create detail user"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Detail user created successfully", "detail_user": detail})
}

func (ctl *Controller) GetDetail(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	detail, err := ctl.Details.GetByUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Detail user not found"})
			return
		}
		ctl.Log.Error("detail user fetch failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch detail user"})
		return
	}
	c.JSON(http.StatusOK, detail)
}

func (ctl *Controller) ListDetails(c *gin.Context) {
	page, itemsPerPage := pagination(c)
	details, err := ctl.Details.List(c.Request.Context(), page, itemsPerPage)
	if err != nil {
		ctl.Log.Error("detail user list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch detail users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "itemsPerPage": itemsPerPage, "detail_users": details})
}

func (ctl *Controller) UpdateDetail(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var request dto.UpdateDetailUserRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	var dob *time.Time
	if request.DOB != nil {
		parsed, err := time.Parse(dateLayout, *request.DOB)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date format, expected YYYY-MM-DD"})
			return
		}
		dob = &parsed
	}

	detail, err := ctl.Details.Update(c.Request.Context(), userID,
		request.FullName, request.Address, request.Phone, request.Gender, dob)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Detail user not found"})
			return
		}
		ctl.Log.Error("detail user update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update detail user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Detail user updated successfully", "detail_user": detail})
}

func (ctl *Controller) DeleteDetail(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	if err := ctl.Details.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Detail user not found"})
			return
		}
		ctl.Log.Error("detail user delete failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete detail user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Detail user deleted successfully"})
}

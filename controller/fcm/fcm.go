package fcm

import (
	"net/http"

	"dolanlur/dto"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Controller struct {
	Notifier *services.Notifier
	Tokens   *repository.DeviceTokenRepo
	Log      *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	fcm := router.Group("/api/fcm")
	fcm.POST("/all", ctl.SendAll)
	fcm.POST("/token", ctl.SendToToken)
	fcm.POST("/topic", ctl.SendToTopic)
	fcm.POST("/subscribe", ctl.Subscribe)
	fcm.POST("/unsubscribe", ctl.Unsubscribe)

	tokens := router.Group("/api/tokens")
	tokens.POST("", ctl.StoreToken)
	tokens.GET("", ctl.ListTokens)
}

func (ctl *Controller) SendAll(c *gin.Context) {
	var request dto.NotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title and body are required"})
		return
	}

	response, err := ctl.Notifier.SendAll(c.Request.Context(), request.Title, request.Body)
	if err != nil {
		ctl.Log.Error("fcm broadcast failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Notification sent successfully",
		"successCount": response.SuccessCount,
		"failureCount": response.FailureCount,
	})
}

func (ctl *Controller) SendToToken(c *gin.Context) {
	var request dto.TokenNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token, title and body are required"})
		return
	}

	id, err := ctl.Notifier.SendToToken(c.Request.Context(), request.Token, request.Title, request.Body)
	if err != nil {
		ctl.Log.Error("fcm token send failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent successfully", "messageId": id})
}

func (ctl *Controller) SendToTopic(c *gin.Context) {
	var request dto.TopicNotificationRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Topic, title and body are required"})
		return
	}

	id, err := ctl.Notifier.SendToTopic(c.Request.Context(), request.Topic, request.Title, request.Body)
	if err != nil {
		ctl.Log.Error("fcm topic send failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send notification"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification sent successfully", "messageId": id})
}

func (ctl *Controller) Subscribe(c *gin.Context) {
	var request dto.TopicSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and topic are required"})
		return
	}

	response, err := ctl.Notifier.Subscribe(c.Request.Context(), request.Token, request.Topic)
	if err != nil {
		ctl.Log.Error("fcm subscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to subscribe to topic"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Subscribed to topic successfully",
		"successCount": response.SuccessCount,
		"failureCount": response.FailureCount,
	})
}

func (ctl *Controller) Unsubscribe(c *gin.Context) {
	var request dto.TopicSubscriptionRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token and topic are required"})
		return
	}

	response, err := ctl.Notifier.Unsubscribe(c.Request.Context(), request.Token, request.Topic)
	if err != nil {
		ctl.Log.Error("fcm unsubscribe failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unsubscribe from topic"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Unsubscribed from topic successfully",
		"successCount": response.SuccessCount,
		"failureCount": response.FailureCount,
	})
}

func (ctl *Controller) StoreToken(c *gin.Context) {
	var request dto.StoreTokenRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Token is required"})
		return
	}

	token, err := ctl.Tokens.Store(c.Request.Context(), request.Token)
	if err != nil {
		ctl.Log.Error("device token store failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store token"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Token stored successfully", "token": token})
}

func (ctl *Controller) ListTokens(c *gin.Context) {
	tokens, err := ctl.Tokens.List(c.Request.Context())
	if err != nil {
		ctl.Log.Error("device token list failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tokens"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"tokens": tokens})
}

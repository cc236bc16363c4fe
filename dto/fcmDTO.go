package dto

type StoreTokenRequest struct {
	Token string `json:"token" binding:"required"`
}

type NotificationRequest struct {
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type TokenNotificationRequest struct {
	Token string `json:"token" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type TopicNotificationRequest struct {
	Topic string `json:"topic" binding:"required"`
	Title string `json:"title" binding:"required"`
	Body  string `json:"body" binding:"required"`
}

type TopicSubscriptionRequest struct {
	Token string `json:"token" binding:"required"`
	Topic string `json:"topic" binding:"required"`
}

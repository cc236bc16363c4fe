package model

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims is the signed payload carried by both access and refresh
// tokens. Validity lives entirely in the signature and the registered
// expiry; revocation is tracked out of band.
type AccessClaims struct {
	UserID int64  `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// RefreshToken is the persisted server-side record of an issued refresh
// token. A user may hold several rows at once (multi-device); rows are only
// removed by logout or explicit invalidation, never by server-side expiry.
type RefreshToken struct {
	ID       int64     `json:"id"`
	UserID   int64     `json:"user_id"`
	Token    string    `json:"refresh_token"`
	IssuedAt time.Time `json:"issued_at"`
}

// DeviceToken is an FCM registration token for push delivery.
type DeviceToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	CreatedAt time.Time `json:"created_at"`
}

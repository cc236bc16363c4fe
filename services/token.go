package services

import (
	"errors"
	"fmt"
	"time"

	"dolanlur/config"
	"dolanlur/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is the only verification failure the session
	// middleware recovers from; everything else is terminal.
	ErrTokenExpired = errors.New("token is expired")
	ErrTokenInvalid = errors.New("token is invalid")
)

// TokenService signs and verifies access and refresh tokens. The two kinds
// use distinct secrets so one leaking cannot mint the other.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	now           func() time.Time
}

func NewTokenService(cfg config.Auth) *TokenService {
	return &TokenService{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		now:           time.Now,
	}
}

func (s *TokenService) CreateAccessToken(userID int64, email string) (string, error) {
	return s.sign(userID, email, s.accessSecret, s.accessTTL)
}

func (s *TokenService) CreateRefreshToken(userID int64, email string) (string, error) {
	return s.sign(userID, email, s.refreshSecret, s.refreshTTL)
}

func (s *TokenService) ParseAccessToken(token string) (*model.AccessClaims, error) {
	return s.parse(token, s.accessSecret)
}

func (s *TokenService) ParseRefreshToken(token string) (*model.AccessClaims, error) {
	return s.parse(token, s.refreshSecret)
}

func (s *TokenService) sign(userID int64, email string, secret []byte, ttl time.Duration) (string, error) {
	now := s.now()
	claims := &model.AccessClaims{
		UserID: userID,
		Email:  email,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "dolanlur",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func (s *TokenService) parse(tokenString string, secret []byte) (*model.AccessClaims, error) {
	claims := &model.AccessClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}

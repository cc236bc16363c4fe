package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"dolanlur/dto"
	"dolanlur/middleware"
	"dolanlur/model"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type UserStore interface {
	Create(ctx context.Context, u *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	SetPassword(ctx context.Context, id int64, hash string) error
	SetOTP(ctx context.Context, email, otp string) error
}

type RefreshStore interface {
	Create(ctx context.Context, userID int64, token string) (*model.RefreshToken, error)
	FindByToken(ctx context.Context, token string) (*model.RefreshToken, error)
	DeleteByToken(ctx context.Context, token string) error
}

type MailSender interface {
	Send(to, subject, body string) error
}

// CaptchaVerifier scores a reCAPTCHA token for an expected action. A nil
// verifier disables the check.
type CaptchaVerifier interface {
	Verify(ctx context.Context, token, action, ip, userAgent string) (bool, error)
}

type Controller struct {
	Users     UserStore
	Refresh   RefreshStore
	Tokens    *services.TokenService
	Blacklist *services.Blacklist
	Mailer    MailSender
	Captcha   CaptchaVerifier
	Session   *middleware.Session
	Log       *zap.Logger
}

func (ctl *Controller) RegisterRoutes(router *gin.Engine) {
	group := router.Group("/api/auth")
	group.POST("/register", ctl.Register)
	group.POST("/login", ctl.Login)
	group.POST("/refresh", ctl.RefreshToken)
	group.POST("/forget-password", ctl.ForgetPassword)
	group.POST("/reset-password", ctl.ResetPassword)
	group.POST("/logout", ctl.Logout)
}

func (ctl *Controller) verifyCaptcha(c *gin.Context, token, action string) bool {
	if ctl.Captcha == nil {
		return true
	}
	ok, err := ctl.Captcha.Verify(c.Request.Context(), token, action, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		ctl.Log.Error("captcha assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify captcha"})
		return false
	}
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Captcha verification failed"})
		return false
	}
	return true
}

func (ctl *Controller) Register(c *gin.Context) {
	var request dto.RegisterRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}

	if !ctl.verifyCaptcha(c, request.CaptchaToken, "register") {
		return
	}

	if _, err := ctl.Users.GetByEmail(c.Request.Context(), request.Email); err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		ctl.Log.Error("register: email lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	newUser := model.User{
		Username: request.Username,
		Email:    request.Email,
		Password: string(hashed),
		Role:     model.RoleUser,
		Status:   model.StatusActive,
	}
	if err := ctl.Users.Create(c.Request.Context(), &newUser); err != nil {
		if errors.Is(err, repository.ErrConflict) {
			c.JSON(http.StatusConflict, gin.H{"error": "Email already registered"})
			return
		}
		ctl.Log.Error("register: create user failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": newUser})
}

func (ctl *Controller) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email and password are required"})
		return
	}

	if !ctl.verifyCaptcha(c, request.CaptchaToken, "login") {
		return
	}

	user, err := ctl.Users.GetByEmail(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("login: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		return
	}

	accessToken, err := ctl.Tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create access token"})
		return
	}
	refreshToken, err := ctl.Tokens.CreateRefreshToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create refresh token"})
		return
	}

	if _, err := ctl.Refresh.Create(c.Request.Context(), user.ID, refreshToken); err != nil {
		ctl.Log.Error("login: store refresh token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		return
	}

	ctl.Session.SetRefreshCookie(c, refreshToken)
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "accessToken": accessToken})
}

func (ctl *Controller) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie(ctl.Session.CookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token not found in cookies"})
		return
	}

	if _, err := ctl.Refresh.FindByToken(c.Request.Context(), refreshToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid refresh token"})
			return
		}
		ctl.Log.Error("refresh: token lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	claims, err := ctl.Tokens.ParseRefreshToken(refreshToken)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired refresh token"})
		return
	}

	user, err := ctl.Users.GetByID(c.Request.Context(), claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found for this refresh token"})
			return
		}
		ctl.Log.Error("refresh: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	accessToken, err := ctl.Tokens.CreateAccessToken(user.ID, user.Email)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to refresh token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "New access token generated", "accessToken": accessToken})
}

func (ctl *Controller) ForgetPassword(c *gin.Context) {
	var request dto.ForgetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Email is required"})
		return
	}

	// The response is identical whether or not the account exists, so the
	// endpoint cannot be used to enumerate registered e-mails.
	const sent = "OTP code has been sent to your email if registered."

	if _, err := ctl.Users.GetByEmail(c.Request.Context(), request.Email); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"message": sent})
			return
		}
		ctl.Log.Error("forget password: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	otp, err := services.GenerateOTP()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	if err := ctl.Users.SetOTP(c.Request.Context(), request.Email, otp); err != nil {
		ctl.Log.Error("forget password: store otp failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}
	if err := ctl.Mailer.Send(request.Email, "Reset Password", services.ResetPasswordEmail(otp)); err != nil {
		ctl.Log.Error("forget password: send mail failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to send OTP"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": sent})
}

func (ctl *Controller) ResetPassword(c *gin.Context) {
	var request dto.ResetPasswordRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "All fields are required"})
		return
	}
	if request.NewPassword != request.ConfirmNewPassword {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Passwords do not match"})
		return
	}

	user, err := ctl.Users.GetByEmail(c.Request.Context(), request.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		ctl.Log.Error("reset password: user lookup failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	if user.OTP == nil || *user.OTP != request.OTP {
		c.JSON(http.StatusForbidden, gin.H{"error": "Invalid or expired OTP"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(request.NewPassword)) == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "New password cannot be the same as the old password"})
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(request.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}
	if err := ctl.Users.SetPassword(c.Request.Context(), user.ID, string(hashed)); err != nil {
		ctl.Log.Error("reset password: update failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset password"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password reset successfully"})
}

// Logout deletes the refresh row and revokes the presented access token so
// it stops working before its natural expiry.
func (ctl *Controller) Logout(c *gin.Context) {
	refreshToken, err := c.Cookie(ctl.Session.CookieName)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No refresh token found"})
		return
	}

	if err := ctl.Refresh.DeleteByToken(c.Request.Context(), refreshToken); err != nil {
		ctl.Log.Error("logout: delete refresh token failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to logout"})
		return
	}

	header := c.GetHeader("Authorization")
	if accessToken := strings.TrimPrefix(header, "Bearer "); accessToken != "" && accessToken != header {
		ctl.Blacklist.Add(accessToken)
	}

	ctl.Session.ClearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

package connection

import (
	"context"
	"fmt"
	"net/http"

	"dolanlur/config"
	"dolanlur/controller/address"
	"dolanlur/controller/auth"
	"dolanlur/controller/bank"
	"dolanlur/controller/banner"
	"dolanlur/controller/booking"
	"dolanlur/controller/brand"
	"dolanlur/controller/fcm"
	"dolanlur/controller/rental"
	"dolanlur/controller/transaction"
	"dolanlur/controller/user"
	"dolanlur/controller/vehicle"
	"dolanlur/middleware"
	"dolanlur/repository"
	"dolanlur/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartServer wires every dependency and blocks serving HTTP.
func StartServer(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	if cfg.App.Production() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := OpenDatabase(ctx, cfg.DB)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()

	storage, err := services.NewStorage(ctx, cfg.S3)
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	mailer, err := services.NewMailer(cfg.SMTP)
	if err != nil {
		return fmt.Errorf("mailer: %w", err)
	}
	messagingClient, err := MessagingClient(ctx, cfg.Firebase)
	if err != nil {
		return fmt.Errorf("firebase: %w", err)
	}

	var captcha auth.CaptchaVerifier
	if cfg.Captcha.SiteKey != "" {
		verifier, err := services.NewCaptcha(ctx, cfg.Captcha)
		if err != nil {
			return fmt.Errorf("captcha: %w", err)
		}
		defer verifier.Close()
		captcha = verifier
	}

	users := repository.NewUserRepo(db)
	refreshTokens := repository.NewRefreshTokenRepo(db)
	details := repository.NewDetailUserRepo(db)
	brands := repository.NewBrandRepo(db)
	vehicles := repository.NewVehicleRepo(db)
	banners := repository.NewBannerRepo(db)
	bookings := repository.NewBookingRepo(db)
	rentals := repository.NewRentalRepo(db)
	transactions := repository.NewTransactionRepo(db)
	addresses := repository.NewAddressRepo(db)
	deliveries := repository.NewAddressDeliveryRepo(db)
	accounts := repository.NewBankAccountRepo(db)
	deviceTokens := repository.NewDeviceTokenRepo(db)

	tokens := services.NewTokenService(cfg.Auth)
	blacklist := services.NewBlacklist()
	notifier := services.NewNotifier(messagingClient, deviceTokens)

	session := &middleware.Session{
		Tokens:       tokens,
		Blacklist:    blacklist,
		Users:        users,
		Refresh:      refreshTokens,
		CookieName:   cfg.Auth.CookieName,
		CookieMaxAge: int(cfg.Auth.RefreshTTL.Seconds()),
		CookieSecure: cfg.App.Production(),
		Log:          log,
	}

	router := gin.Default()
	router.Use(cors.Default())

	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Api is running!"})
	})

	router.Use(session.Handler())

	controllers := []interface {
		RegisterRoutes(router *gin.Engine)
	}{
		&auth.Controller{
			Users:     users,
			Refresh:   refreshTokens,
			Tokens:    tokens,
			Blacklist: blacklist,
			Mailer:    mailer,
			Captcha:   captcha,
			Session:   session,
			Log:       log,
		},
		&user.Controller{Users: users, Details: details, Storage: storage, Log: log},
		&vehicle.Controller{Vehicles: vehicles, Users: users, Storage: storage, Log: log},
		&brand.Controller{Brands: brands, Users: users, Storage: storage, Log: log},
		&banner.Controller{Banners: banners, Storage: storage, Log: log},
		&booking.Controller{Bookings: bookings, Vehicles: vehicles, Users: users, Storage: storage, Log: log},
		&rental.Controller{Rentals: rentals, Log: log},
		&transaction.Controller{Transactions: transactions, Storage: storage, Log: log},
		&address.Controller{Addresses: addresses, Deliveries: deliveries, Log: log},
		&bank.Controller{Accounts: accounts, Log: log},
		&fcm.Controller{Notifier: notifier, Tokens: deviceTokens, Log: log},
	}
	for _, ctl := range controllers {
		ctl.RegisterRoutes(router)
	}

	log.Info("server listening", zap.String("port", cfg.App.Port))
	return router.Run(":" + cfg.App.Port)
}

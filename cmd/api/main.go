package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"courtbook/internal/config"
	"courtbook/internal/database"
	authdom "courtbook/internal/domain/auth"
	catalogdom "courtbook/internal/domain/catalog"
	discountdom "courtbook/internal/domain/discount"
	paymentdom "courtbook/internal/domain/payment"
	reservationdom "courtbook/internal/domain/reservation"
	walletdom "courtbook/internal/domain/wallet"
	"courtbook/internal/middleware"
	"courtbook/internal/modules/auth"
	"courtbook/internal/modules/booking"
	"courtbook/internal/modules/catalog"
	"courtbook/internal/modules/checkout"
	"courtbook/internal/modules/history"
	"courtbook/internal/modules/wallet"
	jwtsvc "courtbook/internal/pkg/jwt"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}

	if err := db.AutoMigrate(
		&authdom.Member{},
		&catalogdom.Course{},
		&discountdom.Discount{},
		&reservationdom.Reservation{},
		&reservationdom.ReservationLine{},
		&paymentdom.Payment{},
		&walletdom.EWallet{},
		&walletdom.EWalletTransaction{},
		checkout.SessionModel(),
	); err != nil {
		log.Fatal(err)
	}

	memberRepo := authdom.NewRepository(db)
	courseRepo := catalogdom.NewRepository(db)
	discountRepo := discountdom.NewRepository(db)
	reservationRepo := reservationdom.NewRepository(db)
	paymentRepo := paymentdom.NewRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	walletService := walletdom.NewService(db)

	authService := auth.NewService(memberRepo, j)
	authHandler := auth.NewHandler(authService)

	bookingService := booking.NewService(reservationRepo, courseRepo, cfg.MaxCourtPerSlot, cfg.SlotTimes)

	carrier := checkout.NewGormCarrier(db, cfg.CheckoutTTL)
	checkoutService := checkout.NewService(
		db,
		carrier,
		courseRepo,
		discountRepo,
		reservationRepo,
		paymentRepo,
		walletService,
		cfg.MaxCourtPerSlot,
	)
	checkoutHandler := checkout.NewHandler(checkoutService)

	bookingHandler := booking.NewHandler(bookingService, checkoutService)

	catalogService := catalog.NewService(courseRepo, discountRepo, bookingService)
	catalogHandler := catalog.NewHandler(catalogService)

	walletHandler := wallet.NewHandler(walletService)

	mailer := history.NewDevConsoleMailer(cfg.ReceiptMailerOn)
	historyService := history.NewService(reservationRepo, paymentRepo, mailer)
	historyHandler := history.NewHandler(historyService)

	if cfg.AppEnv == "prod" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)
		catalogHandler.RegisterRoutes(v1)

		// member
		member := v1.Group("/")
		member.Use(middleware.Auth(j))
		{
			authHandler.RegisterMemberRoutes(member)
			bookingHandler.RegisterRoutes(member)
			checkoutHandler.RegisterRoutes(member)
			walletHandler.RegisterRoutes(member)
			historyHandler.RegisterRoutes(member)
		}

		// admin
		admin := v1.Group("/admin")
		admin.Use(middleware.Auth(j), middleware.RequireRole(string(authdom.RoleAdmin)))
		{
			catalogHandler.RegisterAdminRoutes(admin)
		}
	}

	if err := r.Run(":8080"); err != nil {
		log.Fatal(err)
	}
}

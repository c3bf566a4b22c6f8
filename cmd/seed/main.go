package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"courtbook/internal/database"
	authdom "courtbook/internal/domain/auth"
	catalogdom "courtbook/internal/domain/catalog"
	discountdom "courtbook/internal/domain/discount"
	paymentdom "courtbook/internal/domain/payment"
	reservationdom "courtbook/internal/domain/reservation"
	walletdom "courtbook/internal/domain/wallet"
	"courtbook/internal/modules/checkout"
)

func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "courtbook.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
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
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM checkout_sessions")
	db.Exec("DELETE FROM e_wallet_transactions")
	db.Exec("DELETE FROM e_wallets")
	db.Exec("DELETE FROM reservation_lines")
	db.Exec("DELETE FROM reservations")
	db.Exec("DELETE FROM payments")
	db.Exec("DELETE FROM discounts")
	db.Exec("DELETE FROM courses")
	db.Exec("DELETE FROM members")

	log.Println("Creating members...")

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := authdom.Member{
		Email:        "admin@courtbook.my",
		PasswordHash: string(adminHash),
		Name:         "Administrator",
		Role:         authdom.RoleAdmin,
	}
	db.Create(&admin)
	log.Println("Admin created: admin@courtbook.my / admin123")

	memberEmails := []string{"aisyah@mail.my", "wei.jie@gmail.com", "kumar@yahoo.com"}
	memberNames := []string{"Aisyah Rahman", "Tan Wei Jie", "Kumar Subramaniam"}
	for i, email := range memberEmails {
		hash, _ := bcrypt.GenerateFromPassword([]byte("member123"), bcrypt.DefaultCost)
		db.Create(&authdom.Member{
			Email:        email,
			PasswordHash: string(hash),
			Name:         memberNames[i],
			Role:         authdom.RoleMember,
		})
	}

	log.Println("Creating courses...")
	courses := []catalogdom.Course{
		{CourseID: "C001", Name: "Badminton", Price: decimal.RequireFromString("10.00"), PhotoURL: "/img/badminton.jpg", IsActive: true},
		{CourseID: "C002", Name: "Futsal", Price: decimal.RequireFromString("25.00"), PhotoURL: "/img/futsal.jpg", IsActive: true},
		{CourseID: "C003", Name: "Basketball", Price: decimal.RequireFromString("20.00"), PhotoURL: "/img/basketball.jpg", IsActive: true},
		{CourseID: "C004", Name: "Tennis", Price: decimal.RequireFromString("15.00"), PhotoURL: "/img/tennis.jpg", IsActive: true},
		{CourseID: "C005", Name: "Squash", Price: decimal.RequireFromString("12.50"), PhotoURL: "/img/squash.jpg", IsActive: false},
	}
	for i := range courses {
		db.Create(&courses[i])
	}

	log.Println("Creating discounts...")
	limitOne := 1
	limitFifty := 50
	discounts := []discountdom.Discount{
		{DiscountType: discountdom.TypePercentage, Code: "SAVE10", DiscountValue: decimal.RequireFromString("0.10"), IsActive: true, UsageLimit: &limitFifty},
		{DiscountType: discountdom.TypePercentage, Code: "WELCOME20", DiscountValue: decimal.RequireFromString("0.20"), IsActive: true, UsageLimit: &limitOne},
		{DiscountType: discountdom.TypeFixedAmount, Code: "RM5OFF", DiscountValue: decimal.RequireFromString("5.00"), IsActive: true},
		{DiscountType: discountdom.TypePercentage, Code: "EXPIRED15", DiscountValue: decimal.RequireFromString("0.15"), IsActive: false},
	}
	for i := range discounts {
		db.Create(&discounts[i])
	}

	log.Println("Funding wallets...")
	wallets := walletdom.NewService(db)
	ctx := context.Background()
	for _, email := range memberEmails {
		if _, _, err := wallets.Credit(ctx, email, decimal.RequireFromString("100.00")); err != nil {
			log.Fatal("wallet top-up failed:", err)
		}
	}

	log.Println("Seed complete.")
}

package wallet

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient e-wallet balance")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) GetOrCreateWallet(ctx context.Context, memberEmail string) (*EWallet, error) {
	wallet, err := s.getWalletByEmail(ctx, memberEmail)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	wallet = &EWallet{MemberEmail: memberEmail, Balance: decimal.Zero, LastUpdated: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(wallet).Error; err != nil {
		if isUniqueConstraintError(err) {
			return s.getWalletByEmail(ctx, memberEmail)
		}
		return nil, err
	}
	return wallet, nil
}

// Credit tops the wallet up and appends a TopUp transaction.
func (s *Service) Credit(ctx context.Context, memberEmail string, amount decimal.Decimal) (*EWallet, *EWalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, nil, ErrInvalidAmount
	}

	var wallet EWallet
	var txn EWalletTransaction

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := getOrCreateWalletForUpdate(tx, memberEmail, &wallet); err != nil {
			return err
		}

		wallet.Balance = wallet.Balance.Add(amount)
		wallet.LastUpdated = time.Now().UTC()
		updates := map[string]interface{}{"balance": wallet.Balance, "last_updated": wallet.LastUpdated}
		if err := tx.Model(&EWallet{}).Where("id = ?", wallet.ID).Updates(updates).Error; err != nil {
			return err
		}

		txn = EWalletTransaction{MemberEmail: memberEmail, TransactionType: TransactionTypeTopUp, Amount: amount}
		return tx.Create(&txn).Error
	})
	if err != nil {
		return nil, nil, err
	}

	return &wallet, &txn, nil
}

// DebitTx charges the wallet inside the caller's transaction so the
// debit commits or rolls back together with the rest of the checkout.
// The balance check happens after the row lock, before any mutation.
func (s *Service) DebitTx(tx *gorm.DB, memberEmail string, amount decimal.Decimal) (*EWalletTransaction, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	var wallet EWallet
	if err := getOrCreateWalletForUpdate(tx, memberEmail, &wallet); err != nil {
		return nil, err
	}

	if wallet.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	wallet.Balance = wallet.Balance.Sub(amount)
	wallet.LastUpdated = time.Now().UTC()
	updates := map[string]interface{}{"balance": wallet.Balance, "last_updated": wallet.LastUpdated}
	if err := tx.Model(&EWallet{}).Where("id = ?", wallet.ID).Updates(updates).Error; err != nil {
		return nil, err
	}

	txn := EWalletTransaction{MemberEmail: memberEmail, TransactionType: TransactionTypePayment, Amount: amount}
	if err := tx.Create(&txn).Error; err != nil {
		return nil, err
	}
	return &txn, nil
}

func (s *Service) ListTransactions(ctx context.Context, memberEmail string) ([]EWalletTransaction, error) {
	if _, err := s.GetOrCreateWallet(ctx, memberEmail); err != nil {
		return nil, err
	}

	var txns []EWalletTransaction
	err := s.db.WithContext(ctx).
		Where("member_email = ?", memberEmail).
		Order("transaction_date desc").
		Find(&txns).Error
	if err != nil {
		return nil, err
	}
	return txns, nil
}

func (s *Service) getWalletByEmail(ctx context.Context, memberEmail string) (*EWallet, error) {
	var wallet EWallet
	if err := s.db.WithContext(ctx).Where("member_email = ?", memberEmail).First(&wallet).Error; err != nil {
		return nil, err
	}
	return &wallet, nil
}

func getOrCreateWalletForUpdate(tx *gorm.DB, memberEmail string, wallet *EWallet) error {
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("member_email = ?", memberEmail).First(wallet).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		*wallet = EWallet{MemberEmail: memberEmail, Balance: decimal.Zero, LastUpdated: time.Now().UTC()}
		if err := tx.Create(wallet).Error; err != nil {
			if isUniqueConstraintError(err) {
				return tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where("member_email = ?", memberEmail).First(wallet).Error
			}
			return err
		}
	}
	return nil
}

func isUniqueConstraintError(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

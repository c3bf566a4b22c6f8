package wallet

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeTopUp   = "TopUp"
	TransactionTypePayment = "Payment"
	TransactionTypeRefund  = "Refund"
)

// EWallet stores a member's balance. One wallet per member; the
// balance never goes negative.
type EWallet struct {
	ID          uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	MemberEmail string          `json:"member_email" gorm:"size:100;not null;uniqueIndex"`
	Balance     decimal.Decimal `json:"balance" gorm:"type:decimal(10,2);not null;default:0"`
	LastUpdated time.Time       `json:"last_updated"`
}

func (EWallet) TableName() string { return "e_wallets" }

func (w *EWallet) BeforeCreate(_ *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}

// EWalletTransaction is the append-only audit record for every balance
// mutation.
type EWalletTransaction struct {
	ID              uuid.UUID       `json:"id" gorm:"type:uuid;primaryKey"`
	MemberEmail     string          `json:"member_email" gorm:"size:100;not null;index"`
	TransactionType string          `json:"transaction_type" gorm:"size:16;not null;check:transaction_type IN ('TopUp','Payment','Refund')"`
	Amount          decimal.Decimal `json:"amount" gorm:"type:decimal(10,2);not null"`
	TransactionDate time.Time       `json:"transaction_date" gorm:"autoCreateTime"`
}

func (EWalletTransaction) TableName() string { return "e_wallet_transactions" }

func (t *EWalletTransaction) BeforeCreate(_ *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

package payment

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// NextIDTx allocates the next P### identifier from the current max,
// inside the caller's transaction. With no payments the seed is P000,
// so the first allocation is P001.
func (r *Repository) NextIDTx(tx *gorm.DB) (string, error) {
	var max string
	err := tx.Model(&Payment{}).
		Select("COALESCE(MAX(payment_id), 'P000')").
		Scan(&max).Error
	if err != nil {
		return "", err
	}

	n, err := strconv.Atoi(max[1:])
	if err != nil {
		return "", fmt.Errorf("malformed payment id %q: %w", max, err)
	}
	return fmt.Sprintf("P%03d", n+1), nil
}

func (r *Repository) CreateTx(tx *gorm.DB, p *Payment) error {
	return tx.Create(p).Error
}

func (r *Repository) GetByID(ctx context.Context, paymentID string) (*Payment, error) {
	var p Payment
	err := r.db.WithContext(ctx).Where("payment_id = ?", paymentID).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &p, nil
}

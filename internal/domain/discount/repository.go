package discount

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrDiscountNotFound = errors.New("discount not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByCode is an exact, case-sensitive match. The apply path depends
// on this; only the admin duplicate check folds case (FindByCodeFold).
func (r *Repository) FindByCode(ctx context.Context, code string) (*Discount, error) {
	var d Discount
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

// FindByCodeFold matches case-insensitively. Admin duplicate checks
// only.
func (r *Repository) FindByCodeFold(ctx context.Context, code string) (*Discount, error) {
	var d Discount
	err := r.db.WithContext(ctx).Where("LOWER(code) = LOWER(?)", code).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Discount, error) {
	var d Discount
	err := r.db.WithContext(ctx).Where("discount_id = ?", id).First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

// GetByIDForUpdateTx re-fetches the durable row inside the caller's
// transaction with a row lock. The confirmer must use this, never the
// carrier's possibly-stale copy.
func (r *Repository) GetByIDForUpdateTx(tx *gorm.DB, id int64) (*Discount, error) {
	var d Discount
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("discount_id = ?", id).
		First(&d).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDiscountNotFound
		}
		return nil, err
	}
	return &d, nil
}

// IncrementUsageTx bumps used_count by exactly one inside the caller's
// transaction.
func (r *Repository) IncrementUsageTx(tx *gorm.DB, id int64) error {
	return tx.Model(&Discount{}).
		Where("discount_id = ?", id).
		UpdateColumn("used_count", gorm.Expr("used_count + 1")).Error
}

func (r *Repository) List(ctx context.Context) ([]Discount, error) {
	var out []Discount
	err := r.db.WithContext(ctx).Order("discount_id").Find(&out).Error
	return out, err
}

func (r *Repository) Create(ctx context.Context, d *Discount) error {
	return r.db.WithContext(ctx).Create(d).Error
}

func (r *Repository) Update(ctx context.Context, d *Discount) error {
	return r.db.WithContext(ctx).Save(d).Error
}

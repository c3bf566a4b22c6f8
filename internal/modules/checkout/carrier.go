package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Carrier ferries the in-flight checkout between requests. Absent or
// stale state surfaces as ErrStateExpired; consumers treat that as
// "restart the flow".
type Carrier interface {
	Load(ctx context.Context, memberEmail string) (*Checkout, error)
	Save(ctx context.Context, memberEmail string, ck *Checkout) error
	Clear(ctx context.Context, memberEmail string) error
}

// sessionRow stores the checkout as serialized text, one row per
// member. The state column mirrors the payload for inspection only.
type sessionRow struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	MemberEmail string    `gorm:"size:100;not null;uniqueIndex"`
	State       string    `gorm:"size:32;not null"`
	Payload     string    `gorm:"type:text;not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

func (sessionRow) TableName() string { return "checkout_sessions" }

func (r *sessionRow) BeforeCreate(_ *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// SessionModel is exported for migration wiring.
func SessionModel() interface{} { return &sessionRow{} }

type GormCarrier struct {
	db  *gorm.DB
	ttl time.Duration
}

func NewGormCarrier(db *gorm.DB, ttl time.Duration) *GormCarrier {
	return &GormCarrier{db: db, ttl: ttl}
}

func (c *GormCarrier) Load(ctx context.Context, memberEmail string) (*Checkout, error) {
	var row sessionRow
	err := c.db.WithContext(ctx).Where("member_email = ?", memberEmail).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrStateExpired
		}
		return nil, err
	}

	if c.ttl > 0 && time.Since(row.UpdatedAt) > c.ttl {
		_ = c.Clear(ctx, memberEmail)
		return nil, ErrStateExpired
	}

	var ck Checkout
	if err := json.Unmarshal([]byte(row.Payload), &ck); err != nil {
		// A payload we can't read is as good as absent.
		_ = c.Clear(ctx, memberEmail)
		return nil, ErrStateExpired
	}
	return &ck, nil
}

func (c *GormCarrier) Save(ctx context.Context, memberEmail string, ck *Checkout) error {
	payload, err := json.Marshal(ck)
	if err != nil {
		return err
	}

	row := sessionRow{
		MemberEmail: memberEmail,
		State:       string(ck.State),
		Payload:     string(payload),
		UpdatedAt:   time.Now().UTC(),
	}
	return c.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "member_email"}},
			DoUpdates: clause.AssignmentColumns([]string{"state", "payload", "updated_at"}),
		}).
		Create(&row).Error
}

func (c *GormCarrier) Clear(ctx context.Context, memberEmail string) error {
	return c.db.WithContext(ctx).Where("member_email = ?", memberEmail).Delete(&sessionRow{}).Error
}

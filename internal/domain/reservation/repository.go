package reservation

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReservationNotFound = errors.New("reservation not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// BookedUnits sums CourseCount over all persisted lines matching the
// slot (course type + date + time). Pure read; the confirm path must
// use BookedUnitsTx instead.
func (r *Repository) BookedUnits(ctx context.Context, courseType, date, timeOfDay string) (int, error) {
	return bookedUnits(r.db.WithContext(ctx), courseType, date, timeOfDay, false)
}

// BookedUnitsTx re-checks the slot aggregate inside the caller's
// transaction, locking the matched parent rows so two confirmations
// racing for the last unit serialize instead of both passing.
func (r *Repository) BookedUnitsTx(tx *gorm.DB, courseType, date, timeOfDay string) (int, error) {
	return bookedUnits(tx, courseType, date, timeOfDay, true)
}

func bookedUnits(db *gorm.DB, courseType, date, timeOfDay string, lock bool) (int, error) {
	q := db.Table("reservation_lines").
		Select("reservations.course_count").
		Joins("JOIN reservations ON reservations.reservation_id = reservation_lines.reservation_id").
		Where("reservations.course_type = ?", courseType).
		Where("reservations.date = ?", date).
		Where("reservation_lines.time = ?", timeOfDay)
	if lock {
		q = q.Clauses(clause.Locking{Strength: "UPDATE", Table: clause.Table{Name: "reservations"}})
	}

	var counts []int
	if err := q.Scan(&counts).Error; err != nil {
		return 0, err
	}

	sum := 0
	for _, c := range counts {
		sum += c
	}
	return sum, nil
}

// CreateTx persists a confirmed reservation and its lines inside the
// caller's transaction. The line slice is written with the parent id
// assigned by the insert.
func (r *Repository) CreateTx(tx *gorm.DB, res *Reservation, lines []ReservationLine) error {
	if err := tx.Create(res).Error; err != nil {
		return err
	}
	for i := range lines {
		lines[i].ReservationID = res.ReservationID
	}
	if len(lines) == 0 {
		return nil
	}
	return tx.Create(&lines).Error
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*Reservation, error) {
	var res Reservation
	err := r.db.WithContext(ctx).Where("reservation_id = ?", id).First(&res).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, err
	}
	return &res, nil
}

func (r *Repository) GetLines(ctx context.Context, reservationID int64) ([]ReservationLine, error) {
	var lines []ReservationLine
	err := r.db.WithContext(ctx).
		Where("reservation_id = ?", reservationID).
		Order("time").
		Find(&lines).Error
	return lines, err
}

func (r *Repository) ListByMember(ctx context.Context, memberEmail string) ([]Reservation, error) {
	var out []Reservation
	err := r.db.WithContext(ctx).
		Where("member_email = ?", memberEmail).
		Order("reservation_id desc").
		Find(&out).Error
	return out, err
}

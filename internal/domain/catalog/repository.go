package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var ErrCourseNotFound = errors.New("course not found")

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByID(ctx context.Context, courseID string) (*Course, error) {
	var c Course
	err := r.db.WithContext(ctx).Where("course_id = ?", courseID).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) GetByName(ctx context.Context, name string) (*Course, error) {
	var c Course
	err := r.db.WithContext(ctx).Where("name = ?", name).First(&c).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCourseNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *Repository) ListActive(ctx context.Context) ([]Course, error) {
	var out []Course
	err := r.db.WithContext(ctx).Where("is_active = ?", true).Order("course_id").Find(&out).Error
	return out, err
}

func (r *Repository) List(ctx context.Context) ([]Course, error) {
	var out []Course
	err := r.db.WithContext(ctx).Order("course_id").Find(&out).Error
	return out, err
}

func (r *Repository) Create(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *Repository) Update(ctx context.Context, c *Course) error {
	return r.db.WithContext(ctx).Save(c).Error
}

// NextID allocates the next C### catalog code from the current max.
func (r *Repository) NextID(ctx context.Context) (string, error) {
	var max string
	err := r.db.WithContext(ctx).
		Model(&Course{}).
		Select("COALESCE(MAX(course_id), 'C000')").
		Scan(&max).Error
	if err != nil {
		return "", err
	}

	var n int
	if _, err := fmt.Sscanf(max, "C%03d", &n); err != nil {
		return "", fmt.Errorf("malformed course id %q: %w", max, err)
	}
	return fmt.Sprintf("C%03d", n+1), nil
}

package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	catalogdom "courtbook/internal/domain/catalog"
	discountdom "courtbook/internal/domain/discount"
	"courtbook/internal/modules/booking"
)

type Service struct {
	courses   *catalogdom.Repository
	discounts *discountdom.Repository
	capacity  *booking.Service
}

func NewService(courses *catalogdom.Repository, discounts *discountdom.Repository, capacity *booking.Service) *Service {
	return &Service{courses: courses, discounts: discounts, capacity: capacity}
}

func (s *Service) ListCourses(ctx context.Context) ([]catalogdom.Course, error) {
	return s.courses.ListActive(ctx)
}

func (s *Service) ListAllCourses(ctx context.Context) ([]catalogdom.Course, error) {
	return s.courses.List(ctx)
}

// CourseDetail resolves one course and, when a date is given, the
// remaining capacity of each daily slot on that date.
func (s *Service) CourseDetail(ctx context.Context, courseID, date string) (*CourseDetail, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	detail := &CourseDetail{Course: *course}
	if date == "" {
		return detail, nil
	}

	availability, err := s.capacity.Availability(ctx, course.Name, date)
	if err != nil {
		return nil, err
	}
	detail.Date = date
	detail.Availability = availability
	return detail, nil
}

func (s *Service) CreateCourse(ctx context.Context, req CreateCourseRequest) (*catalogdom.Course, error) {
	id, err := s.courses.NextID(ctx)
	if err != nil {
		return nil, err
	}

	course := &catalogdom.Course{
		CourseID: id,
		Name:     req.Name,
		Price:    req.Price,
		PhotoURL: req.PhotoURL,
		IsActive: true,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) UpdateCourse(ctx context.Context, courseID string, req UpdateCourseRequest) (*catalogdom.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		course.Name = *req.Name
	}
	if req.Price != nil {
		course.Price = *req.Price
	}
	if req.PhotoURL != nil {
		course.PhotoURL = *req.PhotoURL
	}
	if req.IsActive != nil {
		course.IsActive = *req.IsActive
	}

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *Service) ListDiscounts(ctx context.Context) ([]discountdom.Discount, error) {
	return s.discounts.List(ctx)
}

// CreateDiscount stores a new code. Duplicate detection here is
// case-sensitive; the update path folds case. Percentage values are
// divided by 100 on the way in.
func (s *Service) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*discountdom.Discount, error) {
	_, err := s.discounts.FindByCode(ctx, req.Code)
	if err == nil {
		return nil, ErrDuplicateCode
	}
	if !errors.Is(err, discountdom.ErrDiscountNotFound) {
		return nil, err
	}

	value := req.Value
	if req.Type == discountdom.TypePercentage {
		value = value.Div(decimal.NewFromInt(100))
	}

	d := &discountdom.Discount{
		DiscountType:  req.Type,
		Code:          req.Code,
		DiscountValue: value,
		IsActive:      true,
		UsageLimit:    req.UsageLimit,
	}
	if err := s.discounts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateDiscount edits an existing code. The duplicate check is
// case-insensitive here (unlike apply-time lookup, which stays exact).
func (s *Service) UpdateDiscount(ctx context.Context, id int64, req UpdateDiscountRequest) (*discountdom.Discount, error) {
	d, err := s.discounts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	other, err := s.discounts.FindByCodeFold(ctx, req.Code)
	if err == nil && other.DiscountID != d.DiscountID {
		return nil, ErrDuplicateCode
	}
	if err != nil && !errors.Is(err, discountdom.ErrDiscountNotFound) {
		return nil, err
	}

	value := req.Value
	if req.Type == discountdom.TypePercentage {
		value = value.Div(decimal.NewFromInt(100))
	}

	if req.IsReset {
		d.UsedCount = 0
	} else if req.UsageLimit != nil && *req.UsageLimit < d.UsedCount {
		return nil, ErrLimitBelowUsed
	}

	d.DiscountType = req.Type
	d.Code = req.Code
	d.DiscountValue = value
	d.UsageLimit = req.UsageLimit
	d.IsActive = req.IsActive

	if err := s.discounts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

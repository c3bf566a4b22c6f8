package booking

import (
	"context"
	"fmt"
	"time"

	"courtbook/internal/domain/reservation"
)

type Service struct {
	reservations ReservationReader
	courses      CourseReader
	maxPerSlot   int
	slotTimes    []string
}

func NewService(reservations ReservationReader, courses CourseReader, maxPerSlot int, slotTimes []string) *Service {
	return &Service{
		reservations: reservations,
		courses:      courses,
		maxPerSlot:   maxPerSlot,
		slotTimes:    slotTimes,
	}
}

// SlotTimes returns the fixed daily catalog of bookable times.
func (s *Service) SlotTimes() []string {
	out := make([]string, len(s.slotTimes))
	copy(out, s.slotTimes)
	return out
}

// Remaining computes how many units are left for one slot. May be
// negative if the store was overbooked out-of-band.
func (s *Service) Remaining(ctx context.Context, courseType, date, timeOfDay string) (int, error) {
	booked, err := s.reservations.BookedUnits(ctx, courseType, date, timeOfDay)
	if err != nil {
		return 0, err
	}
	return s.maxPerSlot - booked, nil
}

// Availability reports remaining capacity for every slot of a day.
func (s *Service) Availability(ctx context.Context, courseType, date string) ([]SlotAvailability, error) {
	if _, err := time.Parse(reservation.DateLayout, date); err != nil {
		return nil, fmt.Errorf("invalid date %q: %w", date, err)
	}

	out := make([]SlotAvailability, 0, len(s.slotTimes))
	for _, slot := range s.slotTimes {
		remaining, err := s.Remaining(ctx, courseType, date, slot)
		if err != nil {
			return nil, err
		}
		out = append(out, SlotAvailability{Time: slot, Remaining: remaining})
	}
	return out, nil
}

// BuildDraft validates a booking request against slot expiry and
// capacity and returns the provisional reservation with one line per
// requested time. Validation stops at the first failing slot; nothing
// is persisted here. Line subtotals are filled by pricing later.
func (s *Service) BuildDraft(ctx context.Context, memberEmail string, req BuildDraftRequest) (*reservation.Draft, []reservation.DraftLine, error) {
	if len(req.Times) == 0 {
		return nil, nil, ErrNoTimesSelected
	}

	course, err := s.courses.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, nil, err
	}
	if !course.IsActive {
		return nil, nil, ErrCourseInactive
	}

	date, err := time.Parse(reservation.DateLayout, req.Date)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid date %q: %w", req.Date, err)
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	times := dedupeTimes(req.Times)
	lines := make([]reservation.DraftLine, 0, len(times))

	for _, slot := range times {
		if !s.knownSlot(slot) {
			return nil, nil, &SlotError{Time: slot, Err: ErrUnknownSlot}
		}

		slotT, err := time.Parse(reservation.TimeLayout, slot)
		if err != nil {
			return nil, nil, &SlotError{Time: slot, Err: ErrUnknownSlot}
		}

		if date.Before(today) {
			return nil, nil, &SlotError{Time: slot, Err: ErrExpiredSlot}
		}
		if date.Equal(today) {
			slotToday := time.Date(now.Year(), now.Month(), now.Day(), slotT.Hour(), slotT.Minute(), 0, 0, now.Location())
			if slotToday.Before(now) {
				return nil, nil, &SlotError{Time: slot, Err: ErrExpiredSlot}
			}
		}

		remaining, err := s.Remaining(ctx, course.Name, req.Date, slot)
		if err != nil {
			return nil, nil, err
		}
		if remaining <= 0 {
			return nil, nil, &SlotError{Time: slot, Err: ErrSlotFull}
		}
		if req.CourseCount > remaining {
			return nil, nil, &SlotError{Time: slot, Remaining: remaining, Err: ErrInsufficientCapacity}
		}

		lines = append(lines, reservation.DraftLine{Time: slot})
	}

	draft := &reservation.Draft{
		CourseType:  course.Name,
		CourseID:    course.CourseID,
		Date:        req.Date,
		CourseCount: req.CourseCount,
		MemberEmail: memberEmail,
	}
	return draft, lines, nil
}

func (s *Service) knownSlot(t string) bool {
	for _, slot := range s.slotTimes {
		if slot == t {
			return true
		}
	}
	return false
}

func dedupeTimes(times []string) []string {
	seen := make(map[string]struct{}, len(times))
	out := make([]string, 0, len(times))
	for _, t := range times {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

package booking

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/reservation"
)

type MockReservationReader struct {
	mock.Mock
}

func (m *MockReservationReader) BookedUnits(ctx context.Context, courseType, date, timeOfDay string) (int, error) {
	args := m.Called(ctx, courseType, date, timeOfDay)
	return args.Int(0), args.Error(1)
}

type MockCourseReader struct {
	mock.Mock
}

func (m *MockCourseReader) GetByID(ctx context.Context, courseID string) (*catalog.Course, error) {
	args := m.Called(ctx, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Course), args.Error(1)
}

func activeCourse() *catalog.Course {
	return &catalog.Course{
		CourseID: "C001",
		Name:     "Badminton",
		Price:    decimal.RequireFromString("10.00"),
		IsActive: true,
	}
}

func futureDate() string {
	return time.Now().AddDate(0, 0, 7).Format(reservation.DateLayout)
}

func newTestService(reservations *MockReservationReader, courses *MockCourseReader) *Service {
	return NewService(reservations, courses, 20, []string{"09:00", "14:00"})
}

func TestBuildDraftHappyPath(t *testing.T) {
	reservations := new(MockReservationReader)
	courses := new(MockCourseReader)
	svc := newTestService(reservations, courses)
	date := futureDate()

	courses.On("GetByID", mock.Anything, "C001").Return(activeCourse(), nil)
	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "09:00").Return(5, nil)
	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "14:00").Return(0, nil)

	draft, lines, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        date,
		CourseCount: 3,
		Times:       []string{"09:00", "14:00", "09:00"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "Badminton", draft.CourseType)
	assert.Equal(t, "C001", draft.CourseID)
	assert.Equal(t, 3, draft.CourseCount)
	assert.Equal(t, "amy@mail.my", draft.MemberEmail)
	// Duplicate times collapse into one line.
	assert.Len(t, lines, 2)
	assert.Equal(t, "09:00", lines[0].Time)
	assert.Equal(t, "14:00", lines[1].Time)
}

func TestBuildDraftRequiresTimes(t *testing.T) {
	svc := newTestService(new(MockReservationReader), new(MockCourseReader))

	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        futureDate(),
		CourseCount: 1,
	})
	assert.ErrorIs(t, err, ErrNoTimesSelected)
}

func TestBuildDraftRejectsInactiveCourse(t *testing.T) {
	courses := new(MockCourseReader)
	svc := newTestService(new(MockReservationReader), courses)

	inactive := activeCourse()
	inactive.IsActive = false
	courses.On("GetByID", mock.Anything, "C001").Return(inactive, nil)

	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        futureDate(),
		CourseCount: 1,
		Times:       []string{"09:00"},
	})
	assert.ErrorIs(t, err, ErrCourseInactive)
}

func TestBuildDraftRejectsUnknownSlot(t *testing.T) {
	courses := new(MockCourseReader)
	svc := newTestService(new(MockReservationReader), courses)
	courses.On("GetByID", mock.Anything, "C001").Return(activeCourse(), nil)

	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        futureDate(),
		CourseCount: 1,
		Times:       []string{"11:00"},
	})

	var slotErr *SlotError
	assert.ErrorAs(t, err, &slotErr)
	assert.ErrorIs(t, err, ErrUnknownSlot)
	assert.Equal(t, "11:00", slotErr.Time)
}

func TestBuildDraftRejectsPastDate(t *testing.T) {
	courses := new(MockCourseReader)
	svc := newTestService(new(MockReservationReader), courses)
	courses.On("GetByID", mock.Anything, "C001").Return(activeCourse(), nil)

	past := time.Now().AddDate(0, 0, -1).Format(reservation.DateLayout)
	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        past,
		CourseCount: 1,
		Times:       []string{"09:00"},
	})
	assert.ErrorIs(t, err, ErrExpiredSlot)
}

func TestBuildDraftRejectsFullSlot(t *testing.T) {
	reservations := new(MockReservationReader)
	courses := new(MockCourseReader)
	svc := newTestService(reservations, courses)
	date := futureDate()

	courses.On("GetByID", mock.Anything, "C001").Return(activeCourse(), nil)
	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "09:00").Return(20, nil)

	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        date,
		CourseCount: 1,
		Times:       []string{"09:00"},
	})
	assert.ErrorIs(t, err, ErrSlotFull)
}

func TestBuildDraftStopsAtFirstCapacityFailure(t *testing.T) {
	reservations := new(MockReservationReader)
	courses := new(MockCourseReader)
	svc := newTestService(reservations, courses)
	date := futureDate()

	courses.On("GetByID", mock.Anything, "C001").Return(activeCourse(), nil)
	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "09:00").Return(17, nil)

	_, _, err := svc.BuildDraft(context.Background(), "amy@mail.my", BuildDraftRequest{
		CourseID:    "C001",
		Date:        date,
		CourseCount: 5,
		Times:       []string{"09:00", "14:00"},
	})

	var slotErr *SlotError
	assert.ErrorAs(t, err, &slotErr)
	assert.ErrorIs(t, err, ErrInsufficientCapacity)
	assert.Equal(t, "09:00", slotErr.Time)
	assert.Equal(t, 3, slotErr.Remaining)
	// The second slot is never queried once the first fails.
	reservations.AssertNumberOfCalls(t, "BookedUnits", 1)
}

func TestAvailabilityReportsEverySlot(t *testing.T) {
	reservations := new(MockReservationReader)
	svc := newTestService(reservations, new(MockCourseReader))
	date := futureDate()

	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "09:00").Return(20, nil)
	reservations.On("BookedUnits", mock.Anything, "Badminton", date, "14:00").Return(4, nil)

	availability, err := svc.Availability(context.Background(), "Badminton", date)
	assert.NoError(t, err)
	assert.Equal(t, []SlotAvailability{
		{Time: "09:00", Remaining: 0},
		{Time: "14:00", Remaining: 16},
	}, availability)
}

func TestAvailabilityRejectsMalformedDate(t *testing.T) {
	svc := newTestService(new(MockReservationReader), new(MockCourseReader))
	_, err := svc.Availability(context.Background(), "Badminton", "03/01/2027")
	assert.Error(t, err)
}

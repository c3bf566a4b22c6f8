package booking

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service  *Service
	checkout CheckoutStarter
}

func NewHandler(service *Service, checkout CheckoutStarter) *Handler {
	return &Handler{service: service, checkout: checkout}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/checkout/draft", h.BuildDraft)
}

// BuildDraft starts a checkout: validates the booking request, builds
// the provisional reservation and parks it in the carrier.
func (h *Handler) BuildDraft(c *gin.Context) {
	memberEmail := c.GetString("member_email")
	if memberEmail == "" {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Authentication required")
		return
	}

	var req BuildDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	draft, lines, err := h.service.BuildDraft(c.Request.Context(), memberEmail, req)
	if err != nil {
		h.writeBuildError(c, err)
		return
	}

	if err := h.checkout.Begin(c.Request.Context(), memberEmail, draft, lines); err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to start checkout")
		return
	}

	times := make([]string, 0, len(lines))
	for _, l := range lines {
		times = append(times, l.Time)
	}

	response.Success(c, http.StatusCreated, gin.H{
		"draft": gin.H{
			"course_type":  draft.CourseType,
			"course_id":    draft.CourseID,
			"date":         draft.Date,
			"course_count": draft.CourseCount,
			"times":        times,
		},
	})
}

func (h *Handler) writeBuildError(c *gin.Context, err error) {
	var slotErr *SlotError
	switch {
	case errors.Is(err, ErrNoTimesSelected):
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", "times", "Please select at least one time slot")
	case errors.As(err, &slotErr) && (errors.Is(err, ErrSlotFull) || errors.Is(err, ErrInsufficientCapacity)):
		response.Error(c, http.StatusConflict, "CAPACITY_ERROR", slotErr.Error())
	case errors.As(err, &slotErr):
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", "times", slotErr.Error())
	case errors.Is(err, ErrCourseInactive):
		response.Error(c, http.StatusConflict, "VALIDATION_ERROR", "This course is no longer bookable")
	case errors.Is(err, catalog.ErrCourseNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	}
}

package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	catalogdom "courtbook/internal/domain/catalog"
	discountdom "courtbook/internal/domain/discount"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the public browsing surface.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.ListCourses)
	rg.GET("/courses/:id", h.CourseDetail)
}

// RegisterAdminRoutes wires the management surface; callers guard the
// group with the admin role.
func (h *Handler) RegisterAdminRoutes(rg *gin.RouterGroup) {
	rg.GET("/courses", h.ListAllCourses)
	rg.POST("/courses", h.CreateCourse)
	rg.PUT("/courses/:id", h.UpdateCourse)
	rg.GET("/discounts", h.ListDiscounts)
	rg.POST("/discounts", h.CreateDiscount)
	rg.PUT("/discounts/:id", h.UpdateDiscount)
}

func (h *Handler) ListCourses(c *gin.Context) {
	courses, err := h.service.ListCourses(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list courses")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

func (h *Handler) CourseDetail(c *gin.Context) {
	detail, err := h.service.CourseDetail(c.Request.Context(), c.Param("id"), c.Query("date"))
	if err != nil {
		if errors.Is(err, catalogdom.ErrCourseNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
			return
		}
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	response.Success(c, http.StatusOK, detail)
}

func (h *Handler) ListAllCourses(c *gin.Context) {
	courses, err := h.service.ListAllCourses(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list courses")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"courses": courses})
}

func (h *Handler) CreateCourse(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	course, err := h.service.CreateCourse(c.Request.Context(), req)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to create course")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"course": course})
}

func (h *Handler) UpdateCourse(c *gin.Context) {
	var req UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	course, err := h.service.UpdateCourse(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		if errors.Is(err, catalogdom.ErrCourseNotFound) {
			response.Error(c, http.StatusNotFound, "NOT_FOUND", "Course not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to update course")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"course": course})
}

func (h *Handler) ListDiscounts(c *gin.Context) {
	discounts, err := h.service.ListDiscounts(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list discounts")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discounts": discounts})
}

func (h *Handler) CreateDiscount(c *gin.Context) {
	var req CreateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.CreateDiscount(c.Request.Context(), req)
	if err != nil {
		h.writeDiscountError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"discount": d})
}

func (h *Handler) UpdateDiscount(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid discount id")
		return
	}

	var req UpdateDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	d, err := h.service.UpdateDiscount(c.Request.Context(), id, req)
	if err != nil {
		h.writeDiscountError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d})
}

func (h *Handler) writeDiscountError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrDuplicateCode):
		response.ErrorWithField(c, http.StatusConflict, "DUPLICATE_CODE", "code", "This code already exists, please enter a different one")
	case errors.Is(err, ErrLimitBelowUsed):
		response.ErrorWithField(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "usage_limit", "Usage limit must be greater or equal to the used amount")
	case errors.Is(err, discountdom.ErrDiscountNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Discount not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to save discount")
	}
}

package checkout

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"courtbook/internal/domain/catalog"
	"courtbook/internal/domain/wallet"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/checkout/quote", h.GetQuote)
	rg.POST("/checkout/discount", h.ApplyDiscount)
	rg.POST("/checkout/payment-method", h.SelectPaymentMethod)
	rg.POST("/checkout/confirm", h.Confirm)
}

func (h *Handler) GetQuote(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	quote, err := h.service.Quote(c.Request.Context(), memberEmail)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

func (h *Handler) ApplyDiscount(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	var req ApplyDiscountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", "code", "Discount code is required")
		return
	}

	d, err := h.service.ApplyDiscount(c.Request.Context(), memberEmail, req.Code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"discount": d})
}

func (h *Handler) SelectPaymentMethod(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := ParseMethod(req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	quote, err := h.service.SelectPaymentMethod(c.Request.Context(), memberEmail, m)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"quote": quote})
}

func (h *Handler) Confirm(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	var req PaymentMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := ParseMethod(req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	result, err := h.service.Confirm(c.Request.Context(), memberEmail, m)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, result)
}

func (h *Handler) writeError(c *gin.Context, err error) {
	var fieldErr *FieldError
	var capErr *CapacityError

	switch {
	case errors.Is(err, ErrStateExpired):
		// The flow must restart from the beginning; never proceed
		// with a defaulted draft.
		response.Error(c, http.StatusGone, "STATE_EXPIRED", "Your checkout session has expired, please start again")
	case errors.As(err, &fieldErr):
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", fieldErr.Field, fieldErr.Message)
	case errors.As(err, &capErr):
		response.Error(c, http.StatusConflict, "CAPACITY_ERROR", capErr.Error())
	case errors.Is(err, ErrNoPaymentMethod):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please select payment method")
	case errors.Is(err, ErrUnknownPaymentMethod):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment method")
	case errors.Is(err, ErrDiscountNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Cannot find this discount code")
	case errors.Is(err, ErrDiscountInactive):
		response.Error(c, http.StatusUnprocessableEntity, "DISCOUNT_INACTIVE", "This code is not active")
	case errors.Is(err, ErrDiscountLimitReached):
		response.Error(c, http.StatusUnprocessableEntity, "DISCOUNT_LIMIT_REACHED", "This code has reached its usage limit")
	case errors.Is(err, wallet.ErrInsufficientFunds):
		response.Error(c, http.StatusPaymentRequired, "INSUFFICIENT_FUNDS", "Insufficient e-wallet balance, please top up to proceed")
	case errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STATE", "This checkout step is not available")
	case errors.Is(err, catalog.ErrCourseNotFound):
		response.Error(c, http.StatusGone, "STATE_EXPIRED", "The booked course is no longer available, please start again")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Checkout failed")
	}
}

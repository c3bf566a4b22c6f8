package history

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"courtbook/internal/domain/payment"
	"courtbook/internal/domain/reservation"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/history", h.List)
	rg.GET("/history/:id", h.ReceiptDetail)
	rg.POST("/history/:id/send-receipt", h.SendReceipt)
}

func (h *Handler) List(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	reservations, err := h.service.ListByMember(c.Request.Context(), memberEmail)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list reservations")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"reservations": reservations})
}

func (h *Handler) ReceiptDetail(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	receipt, err := h.service.Receipt(c.Request.Context(), memberEmail, id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, receipt)
}

func (h *Handler) SendReceipt(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid reservation id")
		return
	}

	var req SendReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", "email", "A valid email address is required")
		return
	}

	if err := h.service.SendReceipt(c.Request.Context(), memberEmail, id, req.Email); err != nil {
		h.writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"sent_to": req.Email})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, reservation.ErrReservationNotFound), errors.Is(err, ErrNotOwner):
		// Ownership failures read as not-found so ids can't be probed.
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Reservation not found")
	case errors.Is(err, payment.ErrPaymentNotFound):
		response.Error(c, http.StatusNotFound, "NOT_FOUND", "Payment record not found")
	default:
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load receipt")
	}
}

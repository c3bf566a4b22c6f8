package wallet

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	walletdom "courtbook/internal/domain/wallet"
	"courtbook/internal/modules/checkout"
	"courtbook/internal/pkg/response"
)

type Handler struct {
	service *walletdom.Service
}

func NewHandler(service *walletdom.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wallet", h.GetMyWallet)
	rg.POST("/wallet/topup", h.TopUp)
	rg.GET("/wallet/transactions", h.ListMyTransactions)
}

func (h *Handler) GetMyWallet(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	wallet, err := h.service.GetOrCreateWallet(c.Request.Context(), memberEmail)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to get wallet")
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"balance":      wallet.Balance,
		"last_updated": wallet.LastUpdated,
	})
}

// TopUp credits the wallet. The funding method goes through the same
// tagged-variant validation as checkout; a wallet cannot fund itself.
func (h *Handler) TopUp(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	m, err := checkout.ParseMethod(req.PaymentMethodRequest)
	if err != nil {
		h.writeMethodError(c, err)
		return
	}
	if m.Kind() == checkout.MethodEWallet {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "E-wallet cannot fund its own top-up")
		return
	}

	wallet, txn, err := h.service.Credit(c.Request.Context(), memberEmail, req.Amount)
	if err != nil {
		if errors.Is(err, walletdom.ErrInvalidAmount) {
			response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", "amount", err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to top up")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"wallet": wallet, "transaction": txn})
}

func (h *Handler) ListMyTransactions(c *gin.Context) {
	memberEmail := c.GetString("member_email")

	txns, err := h.service.ListTransactions(c.Request.Context(), memberEmail)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list transactions")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"transactions": txns})
}

func (h *Handler) writeMethodError(c *gin.Context, err error) {
	var fieldErr *checkout.FieldError
	switch {
	case errors.As(err, &fieldErr):
		response.ErrorWithField(c, http.StatusBadRequest, "VALIDATION_ERROR", fieldErr.Field, fieldErr.Message)
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Please select payment method")
	default:
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown payment method")
	}
}

package handler

import (
	"net/http"

	"app/internal/gateway/midtrans"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PaymentHandler receives the provider's server-to-server notifications. No
// bearer auth here; the payload is re-verified against the provider before
// anything irreversible happens.
type PaymentHandler struct {
	uc *usecase.ReconcileUsecase
}

func NewPaymentHandler(uc *usecase.ReconcileUsecase) *PaymentHandler {
	return &PaymentHandler{uc: uc}
}

func (h *PaymentHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/payments/notification", h.notification)
}

func (h *PaymentHandler) notification(c echo.Context) error {
	var txn midtrans.TransactionStatus
	if err := c.Bind(&txn); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if txn.OrderID == "" {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "order_id is required"})
	}

	if err := h.uc.HandleNotification(c.Request().Context(), txn); err != nil {
		return writeError(c, err)
	}

	// the provider retries anything that is not a 200
	return c.JSON(http.StatusOK, SuccessResponse{Message: "ok"})
}

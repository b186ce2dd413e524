package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type OrderHandler struct {
	uc          *usecase.OrderUsecase
	cancelUC    *usecase.CancellationUsecase
	returnUC    *usecase.ReturnUsecase
	reconcileUC *usecase.ReconcileUsecase
}

func NewOrderHandler(
	uc *usecase.OrderUsecase,
	cancelUC *usecase.CancellationUsecase,
	returnUC *usecase.ReturnUsecase,
	reconcileUC *usecase.ReconcileUsecase,
) *OrderHandler {
	return &OrderHandler{uc: uc, cancelUC: cancelUC, returnUC: returnUC, reconcileUC: reconcileUC}
}

type CheckoutRequest struct {
	RecipientName   string `json:"recipient_name"`
	RecipientPhone  string `json:"recipient_phone"`
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	VoucherCode     string `json:"voucher_code"`
	ShippingFee     int64  `json:"shipping_fee"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type ReturnRequest struct {
	Reason   string   `json:"reason"`
	Evidence []string `json:"evidence"`
}

func (h *OrderHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/orders")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("", h.checkout)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	g.POST("/:id/complete", h.complete)
	g.POST("/:id/cancel", h.requestCancel)
	g.POST("/:id/return", h.requestReturn)
	g.POST("/:id/verify-payment", h.verifyPayment)
}

func (h *OrderHandler) checkout(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Checkout(c.Request().Context(), userID, usecase.CheckoutInput{
		RecipientName:   req.RecipientName,
		RecipientPhone:  req.RecipientPhone,
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		VoucherCode:     req.VoucherCode,
		ShippingFee:     req.ShippingFee,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *OrderHandler) list(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.ListMyOrders(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) detail(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	out, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

func (h *OrderHandler) complete(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	if err := h.uc.Complete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "order completed"})
}

func (h *OrderHandler) requestCancel(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req CancelRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.cancelUC.Request(c.Request().Context(), userID, c.Param("id"), req.Reason); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "cancellation requested"})
}

func (h *OrderHandler) requestReturn(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	var req ReturnRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.returnUC.Request(c.Request().Context(), userID, c.Param("id"), usecase.ReturnRequestInput{
		Reason:   req.Reason,
		Evidence: req.Evidence,
	}); err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "return requested"})
}

// verifyPayment asks the provider for the authoritative transaction status
// and reconciles the order against it. The buyer calls this right after the
// payment UI reports success, without waiting for the webhook.
func (h *OrderHandler) verifyPayment(c echo.Context) error {
	userID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	// ownership check; the reconcile itself does not care who triggers it
	if _, err := h.uc.GetMyOrderDetail(c.Request().Context(), userID, c.Param("id")); err != nil {
		return writeError(c, err)
	}

	out, err := h.reconcileUC.VerifyPayment(c.Request().Context(), c.Param("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

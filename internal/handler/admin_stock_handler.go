package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/middleware"
	"app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type SuccessResponse struct {
	Message string `json:"message"`
}

type StockAdjustRequest struct {
	Delta int64  `json:"delta"`
	Note  string `json:"note"`
}

// /admin/inventory: manual corrections and the movement ledger.
type AdminStockHandler struct {
	uc *usecase.InventoryUsecase
}

func NewAdminStockHandler(uc *usecase.InventoryUsecase) *AdminStockHandler {
	return &AdminStockHandler{uc: uc}
}

func (h *AdminStockHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	admin := e.Group("/admin")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.PUT("/inventory/:product_id", h.adjust)
	admin.GET("/inventory/movements", h.listMovements)
}

func (h *AdminStockHandler) adjust(c echo.Context) error {
	adminID, ok := getUserIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "unauthorized"})
	}

	productID, err := strconv.ParseInt(c.Param("product_id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
	}

	var req StockAdjustRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	if err := h.uc.AdjustManually(c.Request().Context(), adminID, usecase.ManualAdjustInput{
		ProductID: productID,
		Delta:     req.Delta,
		Note:      req.Note,
	}); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "stock adjusted"})
}

func (h *AdminStockHandler) listMovements(c echo.Context) error {
	f := repository.StockMovementFilter{Limit: 50}

	if v := c.QueryParam("product_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid product_id"})
		}
		f.ProductID = &id
	}
	if v := c.QueryParam("order_id"); v != "" {
		f.OrderID = &v
	}
	if v := c.QueryParam("reason"); v != "" {
		r := model.StockReason(v)
		f.Reason = &r
	}
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		f.Limit = l
	}
	if v := c.QueryParam("offset"); v != "" {
		o, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		}
		f.Offset = o
	}

	out, err := h.uc.ListMovements(c.Request().Context(), f)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, out)
}

// middleware.AuthJWT stores the subject as int64 under "user_id"
func getUserIDFromContext(c echo.Context) (int64, bool) {
	v := c.Get("user_id")
	if v == nil {
		return 0, false
	}

	id, ok := v.(int64)
	if !ok {
		return 0, false
	}

	return id, true
}

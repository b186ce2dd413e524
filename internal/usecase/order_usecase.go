package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/event"
	repo "app/internal/repository"
)

type IDGenerator interface {
	NewID() string
}

type OrderUsecase struct {
	tx        repo.TransactionManager
	idGen     IDGenerator
	publisher event.StatusPublisher
}

func NewOrderUsecase(tx repo.TransactionManager, idGen IDGenerator, publisher event.StatusPublisher) *OrderUsecase {
	return &OrderUsecase{tx: tx, idGen: idGen, publisher: publisher}
}

type CheckoutInput struct {
	RecipientName   string
	RecipientPhone  string
	ShippingAddress string
	PaymentMethod   string
	VoucherCode     string
	ShippingFee     int64
}

type OrderItemOutput struct {
	ProductID int64  `json:"product_id"`
	Name      string `json:"name"`
	Image     string `json:"image"`
	Price     int64  `json:"price"`
	Quantity  int64  `json:"quantity"`
}

type OrderOutput struct {
	ID            string            `json:"id"`
	BuyerID       int64             `json:"buyer_id"`
	Status        string            `json:"status"`
	Subtotal      int64             `json:"subtotal"`
	Discount      int64             `json:"discount"`
	ShippingFee   int64             `json:"shipping_fee"`
	Total         int64             `json:"total"`
	VoucherCode   string            `json:"voucher_code,omitempty"`
	PaymentMethod string            `json:"payment_method"`
	PaymentType   string            `json:"payment_type,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	Items         []OrderItemOutput `json:"items"`
}

// Checkout turns the active cart into a pending order. Prices, names and
// images are snapshotted; the cart itself stays untouched until the payment
// is confirmed.
func (u *OrderUsecase) Checkout(ctx context.Context, buyerID int64, in CheckoutInput) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if strings.TrimSpace(in.RecipientName) == "" ||
		strings.TrimSpace(in.RecipientPhone) == "" ||
		strings.TrimSpace(in.ShippingAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "recipient is required")
	}
	method := model.PaymentMethod(in.PaymentMethod)
	if !method.Valid() {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	if in.ShippingFee < 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid shipping_fee")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		cart, err := r.Carts().FindActiveByUserID(ctx, buyerID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		cartItems, err := r.CartItems().ListByCartID(ctx, cart.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(cartItems) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart empty")
		}

		now := time.Now()
		orderItems := make([]model.OrderItem, 0, len(cartItems))
		var subtotal int64 = 0

		for _, ci := range cartItems {
			if ci.Quantity < 1 {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}

			p, err := r.Products().FindByID(ctx, ci.ProductID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !p.IsActive {
				return NewHTTPError(http.StatusBadRequest, "invalid")
			}

			orderItems = append(orderItems, model.OrderItem{
				ProductID:            ci.ProductID,
				ProductNameSnapshot:  p.Name,
				ProductImageSnapshot: p.Image,
				UnitPriceSnapshot:    ci.UnitPriceSnapshot,
				Quantity:             ci.Quantity,
				CreatedAt:            now,
			})
			subtotal += ci.UnitPriceSnapshot * ci.Quantity
		}

		var discount int64 = 0
		var voucherCode *string
		if code := strings.TrimSpace(in.VoucherCode); code != "" {
			v, err := r.Vouchers().FindByCode(ctx, code)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "invalid voucher")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !v.Redeemable() {
				return NewHTTPError(http.StatusBadRequest, "invalid voucher")
			}
			discount = subtotal * v.DiscountPercent / 100
			voucherCode = &code
		}

		order := model.Order{
			ID:              u.idGen.NewID(),
			BuyerID:         buyerID,
			RecipientName:   strings.TrimSpace(in.RecipientName),
			RecipientPhone:  strings.TrimSpace(in.RecipientPhone),
			ShippingAddress: strings.TrimSpace(in.ShippingAddress),
			Subtotal:        subtotal,
			Discount:        discount,
			ShippingFee:     in.ShippingFee,
			Total:           subtotal - discount + in.ShippingFee,
			VoucherCode:     voucherCode,
			PaymentMethod:   method,
			Status:          model.OrderStatusPending,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if !order.MoneyConsistent() {
			return NewHTTPError(http.StatusBadRequest, "inconsistent totals")
		}

		if err := r.Orders().Create(ctx, order); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.OrderItems().CreateBulk(ctx, order.ID, orderItems); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, orderItems)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ListMyOrders returns the buyer's orders, newest first.
func (u *OrderUsecase) ListMyOrders(ctx context.Context, buyerID int64) ([]OrderOutput, error) {
	if buyerID <= 0 {
		return []OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var outs []OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, _, err := r.Orders().ListByBuyerID(ctx, buyerID, 1, 50)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})

	if err != nil {
		return []OrderOutput{}, err
	}
	return outs, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, buyerID int64, orderID string) (OrderOutput, error) {
	if buyerID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.BuyerID != buyerID {
			// someone else's order looks like it does not exist
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})

	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// Complete is the buyer confirming a delivered order.
func (u *OrderUsecase) Complete(ctx context.Context, buyerID int64, orderID string) error {
	if buyerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.BuyerID != buyerID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if !o.Status.CanTransitionTo(model.OrderStatusCompleted) {
			return NewHTTPError(http.StatusBadRequest, "order is not delivered")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCompleted); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return err
	}

	_ = u.publisher.PublishOrderStatus(ctx, orderID, model.OrderStatusCompleted)
	return nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			ProductID: it.ProductID,
			Name:      it.ProductNameSnapshot,
			Image:     it.ProductImageSnapshot,
			Price:     it.UnitPriceSnapshot,
			Quantity:  it.Quantity,
		})
	}

	out := OrderOutput{
		ID:            o.ID,
		BuyerID:       o.BuyerID,
		Status:        string(o.Status),
		Subtotal:      o.Subtotal,
		Discount:      o.Discount,
		ShippingFee:   o.ShippingFee,
		Total:         o.Total,
		PaymentMethod: string(o.PaymentMethod),
		CreatedAt:     o.CreatedAt,
		Items:         outItems,
	}
	if o.VoucherCode != nil {
		out.VoucherCode = *o.VoucherCode
	}
	if o.PaymentType != nil {
		out.PaymentType = *o.PaymentType
	}
	return out
}

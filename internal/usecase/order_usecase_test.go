package usecase_test

import (
	"context"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type orderFixture struct {
	tx         *TxManagerMock
	orders     *OrderRepoMock
	orderItems *OrderItemRepoMock
	carts      *CartRepoMock
	cartItems  *CartItemRepoMock
	products   *ProductRepoMock
	vouchers   *VoucherRepoMock
	publisher  *PublisherMock
	uc         *usecase.OrderUsecase
}

func newOrderFixture() *orderFixture {
	f := &orderFixture{
		tx:         new(TxManagerMock),
		orders:     new(OrderRepoMock),
		orderItems: new(OrderItemRepoMock),
		carts:      new(CartRepoMock),
		cartItems:  new(CartItemRepoMock),
		products:   new(ProductRepoMock),
		vouchers:   new(VoucherRepoMock),
		publisher:  new(PublisherMock),
	}
	f.tx.Repos = &TxReposMock{
		orders:     f.orders,
		orderItems: f.orderItems,
		carts:      f.carts,
		cartItems:  f.cartItems,
		products:   f.products,
		vouchers:   f.vouchers,
	}
	f.tx.On("WithinTx", mock.Anything).Return(nil)
	f.uc = usecase.NewOrderUsecase(f.tx, &fixedIDGen{id: "ord-new"}, f.publisher)
	return f
}

func validCheckoutInput() usecase.CheckoutInput {
	return usecase.CheckoutInput{
		RecipientName:   "Taro",
		RecipientPhone:  "080-0000-0000",
		ShippingAddress: "Tokyo",
		PaymentMethod:   "gateway",
		ShippingFee:     50,
	}
}

func TestCheckout_Success_WithVoucher(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	buyerID := int64(7)

	f.carts.On("FindActiveByUserID", mock.Anything, buyerID).Return(model.Cart{ID: 3}, nil)
	f.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 2, UnitPriceSnapshot: 500},
		{ProductID: 102, Quantity: 1, UnitPriceSnapshot: 300},
	}, nil)

	f.products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, Name: "Mug", Image: "mug.png", IsActive: true}, nil)
	f.products.On("FindByID", mock.Anything, int64(102)).Return(model.Product{ID: 102, Name: "Pen", IsActive: true}, nil)

	f.vouchers.On("FindByCode", mock.Anything, "SAVE10").Return(model.Voucher{
		Code:            "SAVE10",
		DiscountPercent: 10,
		MaxUses:         100,
		CurrentUses:     1,
		IsActive:        true,
	}, nil)

	f.orders.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.ID == "ord-new" &&
			o.BuyerID == buyerID &&
			o.Status == model.OrderStatusPending &&
			o.Subtotal == 1300 &&
			o.Discount == 130 &&
			o.ShippingFee == 50 &&
			o.Total == 1220 &&
			o.VoucherCode != nil && *o.VoucherCode == "SAVE10"
	})).Return(nil)
	f.orderItems.On("CreateBulk", mock.Anything, "ord-new", mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].ProductNameSnapshot == "Mug" && items[0].ProductImageSnapshot == "mug.png"
	})).Return(nil)

	in := validCheckoutInput()
	in.VoucherCode = "SAVE10"

	out, err := f.uc.Checkout(ctx, buyerID, in)
	assert.NoError(t, err)
	assert.Equal(t, "ord-new", out.ID)
	assert.Equal(t, int64(1220), out.Total)
	assert.Equal(t, string(model.OrderStatusPending), out.Status)

	f.orders.AssertExpectations(t)
	f.orderItems.AssertExpectations(t)

	// the cart is only cleared once the payment is confirmed
	f.carts.AssertNotCalled(t, "Clear", mock.Anything, mock.Anything)
	// and the voucher is not consumed yet either
	f.vouchers.AssertNotCalled(t, "Redeem", mock.Anything, mock.Anything)
}

func TestCheckout_EmptyCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 5}, nil)
	f.cartItems.On("ListByCartID", mock.Anything, int64(5)).Return([]model.CartItem{}, nil)

	_, err := f.uc.Checkout(ctx, 1, validCheckoutInput())
	assertErrContains(t, err, "cart empty")
}

func TestCheckout_NoActiveCart(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{}, repo.ErrNotFound)

	_, err := f.uc.Checkout(ctx, 1, validCheckoutInput())
	assertErrContains(t, err, "cart empty")
}

func TestCheckout_InvalidPaymentMethod(t *testing.T) {
	f := newOrderFixture()

	in := validCheckoutInput()
	in.PaymentMethod = "crypto"

	_, err := f.uc.Checkout(context.Background(), 1, in)
	assertErrContains(t, err, "invalid payment_method")
}

func TestCheckout_MissingRecipient(t *testing.T) {
	f := newOrderFixture()

	in := validCheckoutInput()
	in.RecipientName = "  "

	_, err := f.uc.Checkout(context.Background(), 1, in)
	assertErrContains(t, err, "recipient is required")
}

func TestCheckout_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3}, nil)
	f.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 1, UnitPriceSnapshot: 500},
	}, nil)
	f.products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, IsActive: false}, nil)

	_, err := f.uc.Checkout(ctx, 1, validCheckoutInput())
	assert.Error(t, err)

	f.orders.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCheckout_ExhaustedVoucher(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.carts.On("FindActiveByUserID", mock.Anything, int64(1)).Return(model.Cart{ID: 3}, nil)
	f.cartItems.On("ListByCartID", mock.Anything, int64(3)).Return([]model.CartItem{
		{ProductID: 101, Quantity: 1, UnitPriceSnapshot: 500},
	}, nil)
	f.products.On("FindByID", mock.Anything, int64(101)).Return(model.Product{ID: 101, IsActive: true}, nil)
	f.vouchers.On("FindByCode", mock.Anything, "DEAD").Return(model.Voucher{
		Code:            "DEAD",
		DiscountPercent: 10,
		MaxUses:         5,
		CurrentUses:     5,
		IsActive:        true,
	}, nil)

	in := validCheckoutInput()
	in.VoucherCode = "DEAD"

	_, err := f.uc.Checkout(ctx, 1, in)
	assertErrContains(t, err, "invalid voucher")
}

func TestGetMyOrderDetail_OtherBuyersOrderHidden(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, "ord-1").Return(model.Order{
		ID:      "ord-1",
		BuyerID: 99,
		Status:  model.OrderStatusProcessing,
	}, nil)

	_, err := f.uc.GetMyOrderDetail(ctx, 7, "ord-1")
	assertErrContains(t, err, "not found")
}

func TestComplete_DeliveredOrder(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, "ord-1").Return(model.Order{
		ID:      "ord-1",
		BuyerID: 7,
		Status:  model.OrderStatusDelivered,
	}, nil)
	f.orders.On("UpdateStatus", mock.Anything, "ord-1", model.OrderStatusCompleted).Return(nil)
	f.publisher.On("PublishOrderStatus", mock.Anything, "ord-1", model.OrderStatusCompleted).Return(nil)

	err := f.uc.Complete(ctx, 7, "ord-1")
	assert.NoError(t, err)

	f.orders.AssertExpectations(t)
}

func TestComplete_NotDelivered(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture()

	f.orders.On("FindByID", mock.Anything, "ord-1").Return(model.Order{
		ID:      "ord-1",
		BuyerID: 7,
		Status:  model.OrderStatusShipped,
	}, nil)

	err := f.uc.Complete(ctx, 7, "ord-1")
	assertErrContains(t, err, "order is not delivered")

	f.orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

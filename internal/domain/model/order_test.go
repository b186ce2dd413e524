package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_Valid(t *testing.T) {
	valid := []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusProcessing,
		model.OrderStatusShipped,
		model.OrderStatusDelivered,
		model.OrderStatusCompleted,
		model.OrderStatusCancelRequested,
		model.OrderStatusCancelled,
		model.OrderStatusReturnRequested,
		model.OrderStatusReturnRejected,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), "status %s", s)
	}

	assert.False(t, model.OrderStatus("paid").Valid())
	assert.False(t, model.OrderStatus("").Valid())
	assert.False(t, model.OrderStatus("PENDING").Valid())
}

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from model.OrderStatus
		to   model.OrderStatus
		ok   bool
	}{
		{model.OrderStatusPending, model.OrderStatusProcessing, true},
		{model.OrderStatusPending, model.OrderStatusCancelRequested, true},
		{model.OrderStatusPending, model.OrderStatusShipped, false},
		{model.OrderStatusPending, model.OrderStatusDelivered, false},

		{model.OrderStatusProcessing, model.OrderStatusShipped, true},
		{model.OrderStatusProcessing, model.OrderStatusCancelRequested, true},
		{model.OrderStatusProcessing, model.OrderStatusDelivered, false},
		{model.OrderStatusProcessing, model.OrderStatusPending, false},

		{model.OrderStatusShipped, model.OrderStatusDelivered, true},
		{model.OrderStatusShipped, model.OrderStatusCancelRequested, false},

		{model.OrderStatusDelivered, model.OrderStatusReturnRequested, true},
		{model.OrderStatusDelivered, model.OrderStatusCompleted, true},
		{model.OrderStatusDelivered, model.OrderStatusShipped, false},

		{model.OrderStatusCancelRequested, model.OrderStatusCancelled, true},
		{model.OrderStatusCancelRequested, model.OrderStatusProcessing, true},
		{model.OrderStatusCancelRequested, model.OrderStatusShipped, false},

		{model.OrderStatusReturnRequested, model.OrderStatusReturnRejected, true},
		{model.OrderStatusReturnRequested, model.OrderStatusCancelled, true},
		{model.OrderStatusReturnRequested, model.OrderStatusDelivered, false},

		// terminals go nowhere
		{model.OrderStatusCompleted, model.OrderStatusDelivered, false},
		{model.OrderStatusCancelled, model.OrderStatusPending, false},
		{model.OrderStatusReturnRejected, model.OrderStatusCancelled, false},
	}

	for _, c := range cases {
		assert.Equal(t, c.ok, c.from.CanTransitionTo(c.to), "%s -> %s", c.from, c.to)
	}
}

func TestOrderStatus_Terminal(t *testing.T) {
	assert.True(t, model.OrderStatusCompleted.Terminal())
	assert.True(t, model.OrderStatusCancelled.Terminal())
	assert.True(t, model.OrderStatusReturnRejected.Terminal())

	assert.False(t, model.OrderStatusPending.Terminal())
	assert.False(t, model.OrderStatusProcessing.Terminal())
	assert.False(t, model.OrderStatusShipped.Terminal())
	assert.False(t, model.OrderStatusDelivered.Terminal())
	assert.False(t, model.OrderStatusCancelRequested.Terminal())
	assert.False(t, model.OrderStatusReturnRequested.Terminal())
}

func TestPaymentMethod_Valid(t *testing.T) {
	assert.True(t, model.PaymentMethodGateway.Valid())
	assert.True(t, model.PaymentMethodCOD.Valid())
	assert.False(t, model.PaymentMethod("card").Valid())
	assert.False(t, model.PaymentMethod("").Valid())
}

func TestOrder_MoneyConsistent(t *testing.T) {
	o := model.Order{Subtotal: 1000, Discount: 100, ShippingFee: 50, Total: 950}
	assert.True(t, o.MoneyConsistent())

	o.Total = 1000
	assert.False(t, o.MoneyConsistent())

	o = model.Order{Subtotal: 1000, Discount: -1, ShippingFee: 0, Total: 1001}
	assert.False(t, o.MoneyConsistent())

	o = model.Order{Subtotal: 0, Discount: 0, ShippingFee: 0, Total: 0}
	assert.True(t, o.MoneyConsistent())
}

func TestVoucher_Redeemable(t *testing.T) {
	v := model.Voucher{IsActive: true, MaxUses: 5, CurrentUses: 4}
	assert.True(t, v.Redeemable())

	v.CurrentUses = 5
	assert.False(t, v.Redeemable())

	v = model.Voucher{IsActive: false, MaxUses: 5, CurrentUses: 0}
	assert.False(t, v.Redeemable())
}

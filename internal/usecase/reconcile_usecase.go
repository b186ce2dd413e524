package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	"app/internal/event"
	"app/internal/gateway/midtrans"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

// StatusQuerier is the slice of the provider client the engine needs.
type StatusQuerier interface {
	Status(ctx context.Context, orderID string) (midtrans.TransactionStatus, error)
}

// ReconcileUsecase is the single decision point for "did this order get
// paid". Both triggers land here: the provider's webhook notification and the
// buyer-driven verification call. Either may arrive first, repeatedly, or not
// at all; the conditional status update keeps the side effects single-shot.
type ReconcileUsecase struct {
	orders     repo.OrderRepository
	orderItems repo.OrderItemRepository
	inventory  repo.InventoryRepository
	vouchers   repo.VoucherRepository
	carts      repo.CartRepository
	gateway    StatusQuerier
	adjustor   *InventoryAdjustor
	publisher  event.StatusPublisher
	logger     *log.Logger
}

func NewReconcileUsecase(
	orders repo.OrderRepository,
	orderItems repo.OrderItemRepository,
	inventory repo.InventoryRepository,
	vouchers repo.VoucherRepository,
	carts repo.CartRepository,
	gateway StatusQuerier,
	adjustor *InventoryAdjustor,
	publisher event.StatusPublisher,
	logger *log.Logger,
) *ReconcileUsecase {
	return &ReconcileUsecase{
		orders:     orders,
		orderItems: orderItems,
		inventory:  inventory,
		vouchers:   vouchers,
		carts:      carts,
		gateway:    gateway,
		adjustor:   adjustor,
		publisher:  publisher,
		logger:     logger,
	}
}

type ReconcileResult struct {
	OrderID string            `json:"order_id"`
	Status  model.OrderStatus `json:"status"`
	// Applied is true when this call performed the paid-order side effects.
	// false on duplicates means "already handled", which is still a success.
	Applied bool `json:"applied"`
}

// HandleNotification processes the provider's webhook payload. The payload is
// trusted as-is; signature verification is the transport layer's concern.
func (u *ReconcileUsecase) HandleNotification(ctx context.Context, txn midtrans.TransactionStatus) error {
	_, err := u.apply(ctx, txn)
	return err
}

// VerifyPayment is the client-initiated poll after the payment UI finishes.
// A provider query failure surfaces as a verification error and leaves the
// order untouched; the client is expected to retry.
func (u *ReconcileUsecase) VerifyPayment(ctx context.Context, orderID string) (ReconcileResult, error) {
	if orderID == "" {
		return ReconcileResult{}, NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	txn, err := u.gateway.Status(ctx, orderID)
	if err != nil {
		u.logger.Errorf("order %s: provider status query failed: %v", orderID, err)
		return ReconcileResult{}, NewHTTPError(http.StatusBadGateway, "payment verification failed")
	}
	// the query is keyed by our order id; keep it authoritative over whatever
	// the provider echoes back
	txn.OrderID = orderID

	return u.apply(ctx, txn)
}

// apply maps the provider signal onto the order state machine.
//
// The status write is the commit point and happens before the dependent side
// effects: a crash mid-way leaves the order correctly marked processing, at
// the cost of inventory/voucher drift to be reconciled out of band. Each side
// effect is an independent write; there is deliberately no multi-document
// transaction around them.
func (u *ReconcileUsecase) apply(ctx context.Context, txn midtrans.TransactionStatus) (ReconcileResult, error) {
	o, err := u.orders.FindByID(ctx, txn.OrderID)
	if err == repo.ErrNotFound {
		return ReconcileResult{}, NewHTTPError(http.StatusNotFound, "order not found")
	}
	if err != nil {
		return ReconcileResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	res := ReconcileResult{OrderID: o.ID, Status: o.Status}

	// payment type is pure metadata capture: recorded whenever present, on
	// every branch, never gated behind the idempotency guard
	if txn.PaymentType != "" {
		if err := u.orders.SetPaymentType(ctx, o.ID, txn.PaymentType); err != nil {
			u.logger.Errorf("order %s: recording payment type: %v", o.ID, err)
		}
	}

	switch {
	case txn.Settled():
		moved, err := u.orders.MarkProcessingIfPending(ctx, o.ID)
		if err != nil {
			return ReconcileResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !moved {
			// duplicate webhook, or verify after the webhook already landed
			return res, nil
		}

		res.Status = model.OrderStatusProcessing
		res.Applied = true
		u.applyPaidSideEffects(ctx, o)
		u.publish(ctx, o.ID, model.OrderStatusProcessing)
		return res, nil

	case txn.Failed():
		moved, err := u.orders.MarkCancelled(ctx, o.ID)
		if err != nil {
			return ReconcileResult{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if moved {
			res.Status = model.OrderStatusCancelled
			u.publish(ctx, o.ID, model.OrderStatusCancelled)
		}
		return res, nil

	default:
		// pending and anything unrecognized: no status change
		return res, nil
	}
}

// applyPaidSideEffects runs once per order, guarded by the conditional status
// update in apply. Every step is best effort: payment acknowledgment takes
// precedence over perfect bookkeeping, so a failing step is logged and the
// rest continues.
func (u *ReconcileUsecase) applyPaidSideEffects(ctx context.Context, o model.Order) {
	items, err := u.orderItems.ListByOrderID(ctx, o.ID)
	if err != nil {
		u.logger.Errorf("order %s: loading items for stock decrement: %v", o.ID, err)
	} else {
		for _, it := range items {
			orderID := o.ID
			err := u.adjustor.Adjust(ctx, u.inventory, AdjustStockInput{
				ProductID: it.ProductID,
				Delta:     -it.Quantity,
				Reason:    model.StockReasonSale,
				OrderID:   &orderID,
				Note:      "order " + o.ID,
			})
			if err != nil {
				u.logger.Errorf("order %s: stock movement for product %d: %v", o.ID, it.ProductID, err)
			}
		}
	}

	if o.VoucherCode != nil && *o.VoucherCode != "" {
		redeemed, err := u.vouchers.Redeem(ctx, *o.VoucherCode)
		if err != nil {
			u.logger.Errorf("order %s: redeeming voucher %s: %v", o.ID, *o.VoucherCode, err)
		} else if !redeemed {
			u.logger.Warnf("order %s: voucher %s not redeemed (unknown, inactive or exhausted)", o.ID, *o.VoucherCode)
		}
	}

	cart, err := u.carts.FindActiveByUserID(ctx, o.BuyerID)
	switch {
	case err == repo.ErrNotFound:
		// nothing to clear
	case err != nil:
		u.logger.Errorf("order %s: looking up cart for buyer %d: %v", o.ID, o.BuyerID, err)
	default:
		if err := u.carts.Clear(ctx, cart.ID); err != nil {
			u.logger.Errorf("order %s: clearing cart %d: %v", o.ID, cart.ID, err)
		}
	}
}

func (u *ReconcileUsecase) publish(ctx context.Context, orderID string, status model.OrderStatus) {
	if err := u.publisher.PublishOrderStatus(ctx, orderID, status); err != nil {
		u.logger.Warnf("order %s: publishing status %s: %v", orderID, status, err)
	}
}

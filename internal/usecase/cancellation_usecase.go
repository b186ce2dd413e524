package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	"app/internal/event"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// CancellationUsecase handles the buyer-initiated cancel request and the
// staff decision on it.
type CancellationUsecase struct {
	tx        repo.TransactionManager
	adjustor  *InventoryAdjustor
	auditRepo repo.AuditLogRepository
	publisher event.StatusPublisher
	logger    *log.Logger
}

func NewCancellationUsecase(
	tx repo.TransactionManager,
	adjustor *InventoryAdjustor,
	auditRepo repo.AuditLogRepository,
	publisher event.StatusPublisher,
	logger *log.Logger,
) *CancellationUsecase {
	return &CancellationUsecase{
		tx:        tx,
		adjustor:  adjustor,
		auditRepo: auditRepo,
		publisher: publisher,
		logger:    logger,
	}
}

// Request records the buyer's cancel request. A request on an order that
// already has a cancellation row reuses and resets that row instead of
// creating a duplicate.
func (u *CancellationUsecase) Request(ctx context.Context, buyerID int64, orderID string, reason string) error {
	if buyerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
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
		if !o.Status.CanTransitionTo(model.OrderStatusCancelRequested) {
			return NewHTTPError(http.StatusBadRequest, "order can no longer be cancelled")
		}

		existing, err := r.Cancellations().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			if _, err := r.Cancellations().Create(ctx, model.Cancellation{
				OrderID: orderID,
				Reason:  reason,
				Status:  model.CancellationStatusRequested,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else {
			existing.Reason = reason
			existing.Status = model.CancellationStatusRequested
			existing.ProcessedAt = nil
			if err := r.Cancellations().Update(ctx, existing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusCancelRequested); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return err
	}

	u.publish(ctx, orderID, model.OrderStatusCancelRequested)
	return nil
}

// Decide applies the staff verdict. Approval cancels the order in place; the
// record is kept, not deleted, so the history stays auditable. Stock taken by
// the paid transition is put back, which we detect from the sale movements in
// the ledger.
func (u *CancellationUsecase) Decide(ctx context.Context, adminID int64, orderID string, decision string) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if decision != DecisionApprove && decision != DecisionReject {
		return NewHTTPError(http.StatusBadRequest, "invalid decision")
	}

	var newStatus model.OrderStatus

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if o.Status != model.OrderStatusCancelRequested {
			return NewHTTPError(http.StatusBadRequest, "no cancellation to decide")
		}

		c, err := r.Cancellations().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if c.Status != model.CancellationStatusRequested {
			return NewHTTPError(http.StatusBadRequest, "cancellation already processed")
		}

		now := time.Now()

		if decision == DecisionApprove {
			if err := u.restockIfSold(ctx, r, o, model.StockReasonCancellation); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			newStatus = model.OrderStatusCancelled
			c.Status = model.CancellationStatusApproved
		} else {
			newStatus = model.OrderStatusProcessing
			c.Status = model.CancellationStatusRejected
		}
		c.ProcessedAt = &now

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Cancellations().Update(ctx, c); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionDecideCancellation,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   `{"status":"` + string(o.Status) + `"}`,
			AfterJSON:    `{"status":"` + string(newStatus) + `"}`,
			CreatedAt:    now,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})

	if err != nil {
		return err
	}

	u.publish(ctx, orderID, newStatus)
	return nil
}

// restockIfSold puts the order's quantities back when the paid-order stock
// decrement happened. Orders cancelled straight from pending never took
// stock, so nothing is returned for them.
func (u *CancellationUsecase) restockIfSold(ctx context.Context, r repo.TxRepos, o model.Order, reason model.StockReason) error {
	sold, err := r.Inventory().SaleMovementsExist(ctx, o.ID)
	if err != nil {
		return err
	}
	if !sold {
		return nil
	}

	items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
	if err != nil {
		return err
	}

	for _, it := range items {
		orderID := o.ID
		if err := u.adjustor.Adjust(ctx, r.Inventory(), AdjustStockInput{
			ProductID: it.ProductID,
			Delta:     it.Quantity,
			Reason:    reason,
			OrderID:   &orderID,
			Note:      "order " + o.ID,
		}); err != nil {
			return err
		}
	}
	return nil
}

func (u *CancellationUsecase) publish(ctx context.Context, orderID string, status model.OrderStatus) {
	if err := u.publisher.PublishOrderStatus(ctx, orderID, status); err != nil {
		u.logger.Warnf("order %s: publishing status %s: %v", orderID, status, err)
	}
}

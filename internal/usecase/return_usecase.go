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

// ReturnUsecase mirrors the cancellation workflow for delivered orders.
type ReturnUsecase struct {
	tx        repo.TransactionManager
	adjustor  *InventoryAdjustor
	auditRepo repo.AuditLogRepository
	publisher event.StatusPublisher
	logger    *log.Logger
}

func NewReturnUsecase(
	tx repo.TransactionManager,
	adjustor *InventoryAdjustor,
	auditRepo repo.AuditLogRepository,
	publisher event.StatusPublisher,
	logger *log.Logger,
) *ReturnUsecase {
	return &ReturnUsecase{
		tx:        tx,
		adjustor:  adjustor,
		auditRepo: auditRepo,
		publisher: publisher,
		logger:    logger,
	}
}

type ReturnRequestInput struct {
	Reason   string
	Evidence []string
}

// Request records a return request on a delivered order. Re-requests before a
// staff decision reuse the existing row.
func (u *ReturnUsecase) Request(ctx context.Context, buyerID int64, orderID string, in ReturnRequestInput) error {
	if buyerID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID == "" {
		return NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		return NewHTTPError(http.StatusBadRequest, "reason is required")
	}
	evidence := strings.Join(in.Evidence, ",")

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
		// gate on delivered; an undecided request may be amended repeatedly
		if o.Status != model.OrderStatusDelivered && o.Status != model.OrderStatusReturnRequested {
			return NewHTTPError(http.StatusBadRequest, "order is not delivered")
		}

		existing, err := r.Returns().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			if _, err := r.Returns().Create(ctx, model.ReturnRequest{
				OrderID:  orderID,
				Reason:   reason,
				Evidence: evidence,
				Status:   model.ReturnStatusRequested,
			}); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		} else {
			existing.Reason = reason
			existing.Evidence = evidence
			existing.Status = model.ReturnStatusRequested
			existing.ProcessedAt = nil
			if err := r.Returns().Update(ctx, existing); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		if o.Status != model.OrderStatusReturnRequested {
			if err := r.Orders().UpdateStatus(ctx, orderID, model.OrderStatusReturnRequested); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}
		return nil
	})

	if err != nil {
		return err
	}

	u.publish(ctx, orderID, model.OrderStatusReturnRequested)
	return nil
}

// Decide applies the staff verdict. Approval restocks the returned
// quantities (reason "return") and closes the order as cancelled; rejection
// moves it to the return_rejected terminal.
func (u *ReturnUsecase) Decide(ctx context.Context, adminID int64, orderID string, decision string) error {
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
		if o.Status != model.OrderStatusReturnRequested {
			return NewHTTPError(http.StatusBadRequest, "no return to decide")
		}

		ret, err := r.Returns().FindByOrderID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if ret.Status != model.ReturnStatusRequested {
			return NewHTTPError(http.StatusBadRequest, "return already processed")
		}

		now := time.Now()

		if decision == DecisionApprove {
			items, err := r.OrderItems().ListByOrderID(ctx, orderID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			for _, it := range items {
				oid := orderID
				if err := u.adjustor.Adjust(ctx, r.Inventory(), AdjustStockInput{
					ProductID: it.ProductID,
					Delta:     it.Quantity,
					Reason:    model.StockReasonReturn,
					OrderID:   &oid,
					Note:      "order " + orderID,
				}); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
			newStatus = model.OrderStatusCancelled
			ret.Status = model.ReturnStatusApproved
		} else {
			newStatus = model.OrderStatusReturnRejected
			ret.Status = model.ReturnStatusRejected
		}
		ret.ProcessedAt = &now

		if err := r.Orders().UpdateStatus(ctx, orderID, newStatus); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if err := r.Returns().Update(ctx, ret); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionDecideReturn,
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

func (u *ReturnUsecase) publish(ctx context.Context, orderID string, status model.OrderStatus) {
	if err := u.publisher.PublishOrderStatus(ctx, orderID, status); err != nil {
		u.logger.Warnf("order %s: publishing status %s: %v", orderID, status, err)
	}
}

package usecase

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

// AdjustStockInput describes one inventory change. Delta is negative for
// sales, positive for restocks and returns.
type AdjustStockInput struct {
	ProductID int64
	Delta     int64
	Reason    model.StockReason
	OrderID   *string
	Note      string
}

// InventoryAdjustor applies a stock delta and appends the matching ledger
// entry. It never blocks a delta that would drive stock negative; sufficient
// stock is validated upstream at cart mutation time.
type InventoryAdjustor struct {
	logger *log.Logger
}

func NewInventoryAdjustor(logger *log.Logger) *InventoryAdjustor {
	return &InventoryAdjustor{logger: logger}
}

// Adjust reads the current counter, writes current+delta and records the
// movement. A product that disappeared mid-flight is skipped with a log line;
// the caller's transition must not be aborted by it.
func (a *InventoryAdjustor) Adjust(ctx context.Context, inv repo.InventoryRepository, in AdjustStockInput) error {
	if in.Delta == 0 {
		return nil
	}

	current, err := inv.GetStock(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		a.logger.Warnf("stock adjust skipped, product %d no longer exists", in.ProductID)
		return nil
	}
	if err != nil {
		return err
	}

	newStock := current + in.Delta
	if err := inv.SetStock(ctx, in.ProductID, newStock); err != nil {
		return err
	}

	direction := model.StockDirectionIn
	qty := in.Delta
	if in.Delta < 0 {
		direction = model.StockDirectionOut
		qty = -in.Delta
	}

	return inv.CreateMovement(ctx, model.StockMovement{
		ProductID:      in.ProductID,
		OrderID:        in.OrderID,
		Direction:      direction,
		Quantity:       qty,
		Reason:         in.Reason,
		PreviousStock:  current,
		ResultingStock: newStock,
		Note:           in.Note,
	})
}

// InventoryUsecase covers staff-initiated stock edits and ledger views. The
// edits flow through the same adjustor as the order paths, so every change
// lands in the same audit trail.
type InventoryUsecase struct {
	tx        repo.TransactionManager
	adjustor  *InventoryAdjustor
	auditRepo repo.AuditLogRepository
}

func NewInventoryUsecase(tx repo.TransactionManager, adjustor *InventoryAdjustor, auditRepo repo.AuditLogRepository) *InventoryUsecase {
	return &InventoryUsecase{tx: tx, adjustor: adjustor, auditRepo: auditRepo}
}

type ManualAdjustInput struct {
	ProductID int64
	Delta     int64
	Note      string
}

func (u *InventoryUsecase) AdjustManually(ctx context.Context, adminID int64, in ManualAdjustInput) error {
	if adminID <= 0 {
		return NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProductID <= 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product_id")
	}
	if in.Delta == 0 {
		return NewHTTPError(http.StatusBadRequest, "delta must not be zero")
	}

	return u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		// unlike the order paths, a manual edit on a missing product is a
		// client error and must be reported
		before, err := r.Inventory().GetStock(ctx, in.ProductID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.adjustor.Adjust(ctx, r.Inventory(), AdjustStockInput{
			ProductID: in.ProductID,
			Delta:     in.Delta,
			Reason:    model.StockReasonAdjustment,
			Note:      in.Note,
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := u.auditRepo.Create(ctx, model.AuditLog{
			ActorUserID:  adminID,
			Action:       model.AuditActionAdjustStock,
			ResourceType: model.AuditResourceProduct,
			ResourceID:   fmt.Sprintf("%d", in.ProductID),
			BeforeJSON:   fmt.Sprintf(`{"stock":%d}`, before),
			AfterJSON:    fmt.Sprintf(`{"stock":%d}`, before+in.Delta),
			CreatedAt:    time.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		return nil
	})
}

func (u *InventoryUsecase) ListMovements(ctx context.Context, f repo.StockMovementFilter) ([]model.StockMovement, error) {
	var movements []model.StockMovement

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		var err error
		movements, err = r.Inventory().ListMovements(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return movements, nil
}

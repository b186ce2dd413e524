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

func TestAdjustor_SkipsMissingProduct(t *testing.T) {
	ctx := context.Background()
	inv := new(InventoryRepoMock)
	adjustor := usecase.NewInventoryAdjustor(testLogger())

	inv.On("GetStock", mock.Anything, int64(5)).Return(int64(0), repo.ErrNotFound)

	err := adjustor.Adjust(ctx, inv, usecase.AdjustStockInput{
		ProductID: 5,
		Delta:     -2,
		Reason:    model.StockReasonSale,
	})
	assert.NoError(t, err)

	inv.AssertNotCalled(t, "SetStock", mock.Anything, mock.Anything, mock.Anything)
	inv.AssertNotCalled(t, "CreateMovement", mock.Anything, mock.Anything)
}

func TestAdjustor_ZeroDeltaIsNoOp(t *testing.T) {
	inv := new(InventoryRepoMock)
	adjustor := usecase.NewInventoryAdjustor(testLogger())

	err := adjustor.Adjust(context.Background(), inv, usecase.AdjustStockInput{
		ProductID: 5,
		Delta:     0,
		Reason:    model.StockReasonAdjustment,
	})
	assert.NoError(t, err)

	inv.AssertNotCalled(t, "GetStock", mock.Anything, mock.Anything)
}

func newInventoryFixture() (*TxManagerMock, *InventoryRepoMock, *AuditRepoMock, *usecase.InventoryUsecase) {
	tx := new(TxManagerMock)
	inv := new(InventoryRepoMock)
	audit := new(AuditRepoMock)
	tx.Repos = &TxReposMock{inventory: inv}
	tx.On("WithinTx", mock.Anything).Return(nil)
	uc := usecase.NewInventoryUsecase(tx, usecase.NewInventoryAdjustor(testLogger()), audit)
	return tx, inv, audit, uc
}

func TestAdjustManually_Success(t *testing.T) {
	ctx := context.Background()
	_, inv, audit, uc := newInventoryFixture()

	adminID := int64(99)

	// the pre-read for the audit snapshot, then the adjustor's own read
	inv.On("GetStock", mock.Anything, int64(10)).Return(int64(7), nil)
	inv.On("SetStock", mock.Anything, int64(10), int64(12)).Return(nil)
	inv.On("CreateMovement", mock.Anything, mock.MatchedBy(func(mv model.StockMovement) bool {
		return mv.ProductID == 10 &&
			mv.Direction == model.StockDirectionIn &&
			mv.Quantity == 5 &&
			mv.Reason == model.StockReasonAdjustment &&
			mv.OrderID == nil &&
			mv.Note == "restock delivery"
	})).Return(nil)

	audit.On("Create", mock.Anything, mock.MatchedBy(func(a model.AuditLog) bool {
		return a.ActorUserID == adminID &&
			a.Action == model.AuditActionAdjustStock &&
			a.ResourceType == model.AuditResourceProduct &&
			a.ResourceID == "10" &&
			a.BeforeJSON == `{"stock":7}` &&
			a.AfterJSON == `{"stock":12}`
	})).Return(nil)

	err := uc.AdjustManually(ctx, adminID, usecase.ManualAdjustInput{
		ProductID: 10,
		Delta:     5,
		Note:      "restock delivery",
	})
	assert.NoError(t, err)

	inv.AssertExpectations(t)
	audit.AssertExpectations(t)
}

func TestAdjustManually_MissingProduct(t *testing.T) {
	ctx := context.Background()
	_, inv, _, uc := newInventoryFixture()

	inv.On("GetStock", mock.Anything, int64(10)).Return(int64(0), repo.ErrNotFound)

	err := uc.AdjustManually(ctx, 1, usecase.ManualAdjustInput{ProductID: 10, Delta: 5})
	assertErrContains(t, err, "not found")
}

func TestAdjustManually_ZeroDelta(t *testing.T) {
	_, _, _, uc := newInventoryFixture()

	err := uc.AdjustManually(context.Background(), 1, usecase.ManualAdjustInput{ProductID: 10, Delta: 0})
	assertErrContains(t, err, "delta must not be zero")
}

func TestListMovements_PassesFilter(t *testing.T) {
	ctx := context.Background()
	_, inv, _, uc := newInventoryFixture()

	orderID := "ord-1"
	filter := repo.StockMovementFilter{OrderID: &orderID, Limit: 50}

	inv.On("ListMovements", mock.Anything, filter).Return([]model.StockMovement{
		{ProductID: 1, Direction: model.StockDirectionOut, Quantity: 2, Reason: model.StockReasonSale},
	}, nil)

	movements, err := uc.ListMovements(ctx, filter)
	assert.NoError(t, err)
	assert.Len(t, movements, 1)

	inv.AssertExpectations(t)
}

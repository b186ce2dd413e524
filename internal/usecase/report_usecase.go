package usecase

import (
	"context"
	"net/http"
	"time"

	repo "app/internal/repository"
)

// ReportUsecase exposes the read-only projections for the back office. No
// side effects anywhere in here.
type ReportUsecase struct {
	orders repo.OrderRepository
}

func NewReportUsecase(orders repo.OrderRepository) *ReportUsecase {
	return &ReportUsecase{orders: orders}
}

type RevenueOutput struct {
	From    time.Time `json:"from"`
	To      time.Time `json:"to"`
	Revenue int64     `json:"revenue"`
}

func (u *ReportUsecase) Revenue(ctx context.Context, from time.Time, to time.Time) (RevenueOutput, error) {
	if to.Before(from) {
		return RevenueOutput{}, NewHTTPError(http.StatusBadRequest, "invalid range")
	}

	revenue, err := u.orders.RevenueBetween(ctx, from, to)
	if err != nil {
		return RevenueOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return RevenueOutput{From: from, To: to, Revenue: revenue}, nil
}

func (u *ReportUsecase) StatusCounts(ctx context.Context) ([]repo.StatusCount, error) {
	counts, err := u.orders.CountByStatus(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return counts, nil
}

func (u *ReportUsecase) BestSellers(ctx context.Context, limit int) ([]repo.BestSeller, error) {
	rows, err := u.orders.BestSellers(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

func (u *ReportUsecase) LoyalBuyers(ctx context.Context, limit int) ([]repo.LoyalBuyer, error) {
	rows, err := u.orders.LoyalBuyers(ctx, limit)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return rows, nil
}

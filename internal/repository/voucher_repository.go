package repository

import (
	"context"

	"app/internal/domain/model"
)

type VoucherRepository interface {
	FindByCode(ctx context.Context, code string) (model.Voucher, error)

	// Redeem increments current_uses by one in a single conditional update,
	// only while the voucher is active and under its cap. false means nothing
	// was consumed (unknown code, inactive, or exhausted).
	Redeem(ctx context.Context, code string) (bool, error)
}

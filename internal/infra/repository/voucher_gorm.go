package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type VoucherGormRepository struct {
	db *gorm.DB
}

func NewVoucherGormRepository(db *gorm.DB) *VoucherGormRepository {
	return &VoucherGormRepository{db: db}
}

func (r *VoucherGormRepository) FindByCode(ctx context.Context, code string) (model.Voucher, error) {
	var v model.Voucher
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&v).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Voucher{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Voucher{}, err
	}
	return v, nil
}

// Redeem consumes one use. The WHERE clause enforces the usage cap atomically,
// so retries and duplicate payment signals cannot push current_uses past
// max_uses.
func (r *VoucherGormRepository) Redeem(ctx context.Context, code string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Voucher{}).
		Where("code = ? AND is_active = ? AND current_uses < max_uses", code, true).
		Update("current_uses", gorm.Expr("current_uses + 1"))

	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

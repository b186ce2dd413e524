package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type CancellationGormRepository struct {
	db *gorm.DB
}

func NewCancellationGormRepository(db *gorm.DB) *CancellationGormRepository {
	return &CancellationGormRepository{db: db}
}

func (r *CancellationGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.Cancellation, error) {
	var c model.Cancellation
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cancellation{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cancellation{}, err
	}
	return c, nil
}

func (r *CancellationGormRepository) Create(ctx context.Context, c model.Cancellation) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&c).Error; err != nil {
		return 0, err
	}
	return c.ID, nil
}

func (r *CancellationGormRepository) Update(ctx context.Context, c model.Cancellation) error {
	res := r.db.WithContext(ctx).Model(&model.Cancellation{}).
		Where("id = ?", c.ID).
		Select("reason", "status", "processed_at").
		Updates(map[string]interface{}{
			"reason":       c.Reason,
			"status":       c.Status,
			"processed_at": c.ProcessedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type ReturnGormRepository struct {
	db *gorm.DB
}

func NewReturnGormRepository(db *gorm.DB) *ReturnGormRepository {
	return &ReturnGormRepository{db: db}
}

func (r *ReturnGormRepository) FindByOrderID(ctx context.Context, orderID string) (model.ReturnRequest, error) {
	var ret model.ReturnRequest
	err := r.db.WithContext(ctx).Where("order_id = ?", orderID).First(&ret).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.ReturnRequest{}, repo.ErrNotFound
	}
	if err != nil {
		return model.ReturnRequest{}, err
	}
	return ret, nil
}

func (r *ReturnGormRepository) Create(ctx context.Context, ret model.ReturnRequest) (int64, error) {
	if err := r.db.WithContext(ctx).Create(&ret).Error; err != nil {
		return 0, err
	}
	return ret.ID, nil
}

func (r *ReturnGormRepository) Update(ctx context.Context, ret model.ReturnRequest) error {
	res := r.db.WithContext(ctx).Model(&model.ReturnRequest{}).
		Where("id = ?", ret.ID).
		Updates(map[string]interface{}{
			"reason":       ret.Reason,
			"evidence":     ret.Evidence,
			"status":       ret.Status,
			"processed_at": ret.ProcessedAt,
		})

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

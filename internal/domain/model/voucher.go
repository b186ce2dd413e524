package model

import "time"

type Voucher struct {
	ID              int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Code            string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"code"`
	DiscountPercent int64     `gorm:"not null" json:"discount_percent"`
	MaxUses         int64     `gorm:"not null" json:"max_uses"`
	CurrentUses     int64     `gorm:"not null;default:0" json:"current_uses"`
	IsActive        bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt       time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

// Redeemable reports whether one more use may be consumed.
func (v Voucher) Redeemable() bool {
	return v.IsActive && v.CurrentUses < v.MaxUses
}

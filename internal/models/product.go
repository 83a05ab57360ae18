package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is a catalog entry with a tracked stock level.
// SKU is optional; when present it must be unique (the unique index below is a
// safety net behind the case-insensitive application-level check).
type Product struct {
	ID           uint            `gorm:"primaryKey"`
	Name         string          `gorm:"size:255;not null;index"`
	SKU          *string         `gorm:"size:80;uniqueIndex"`
	Price        decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Quantity     int             `gorm:"not null;index"`
	MinimumStock int             `gorm:"not null;default:0"`
	CategoryID   *uint           `gorm:"index"`
	Category     *Category       `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsLowStock is derived, never stored.
func (p Product) IsLowStock() bool { return p.Quantity <= p.MinimumStock }

// SKUString returns the SKU or "" when absent.
func (p Product) SKUString() string {
	if p.SKU == nil {
		return ""
	}
	return *p.SKU
}

// CategoryName returns the preloaded category name or "" when detached.
func (p Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

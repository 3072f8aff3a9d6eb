package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderItem struct {
	ID        string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	OrderID   string          `gorm:"size:36;not null;index"`
	ProductID string          `gorm:"size:36;not null;index"`
	Position  int             `gorm:"not null"`
	Quantity  int             `gorm:"not null"`
	SizeLabel string          `gorm:"size:50;not null"`
	PriceEach decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	CreatedAt time.Time
}

func (oi *OrderItem) BeforeCreate(tx *gorm.DB) (err error) {
	if oi.ID == "" {
		oi.ID = uuid.New().String()
	}
	return
}

func (oi OrderItem) LineTotal() decimal.Decimal {
	return oi.PriceEach.Mul(decimal.NewFromInt(int64(oi.Quantity)))
}

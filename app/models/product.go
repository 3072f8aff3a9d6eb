package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Product struct {
	ID            string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	Name          string          `gorm:"size:255;not null"`
	Description   string          `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Stock         int             `gorm:"not null"`
	Brand         string          `gorm:"size:100"`
	CategoryID    string          `gorm:"size:36;not null;index"`
	ProductImages []ProductImage  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type ProductImage struct {
	ID        string `gorm:"size:36;not null;uniqueIndex;primary_key"`
	ProductID string `gorm:"size:36;not null;index"`
	ImageURL  string `gorm:"size:255;not null"`
	AltText   string `gorm:"size:255"`
	CreatedAt time.Time
}

func (p *Product) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	return
}

func (pi *ProductImage) BeforeCreate(tx *gorm.DB) (err error) {
	if pi.ID == "" {
		pi.ID = uuid.New().String()
	}
	return
}

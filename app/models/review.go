package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Review is unique per (UserID, ProductID); the composite index is what
// stops two concurrent submissions from both landing.
type Review struct {
	ID        string  `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID    string  `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_product"`
	ProductID string  `gorm:"size:36;not null;uniqueIndex:idx_reviews_user_product;index"`
	Rating    int     `gorm:"not null"`
	Comment   *string `gorm:"type:text"`
	CreatedAt time.Time
}

func (r *Review) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

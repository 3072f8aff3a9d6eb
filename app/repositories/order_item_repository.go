package repositories

import (
	"context"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"gorm.io/gorm"
)

type OrderItemRepository interface {
	BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error
	HasDeliveredItem(ctx context.Context, db *gorm.DB, userID, productID string) (bool, error)
}

type OrderItemRepositoryImpl struct {
	DB *gorm.DB
}

func NewOrderItemRepository(db *gorm.DB) OrderItemRepository {
	return &OrderItemRepositoryImpl{DB: db}
}

func (r *OrderItemRepositoryImpl) conn(db *gorm.DB) *gorm.DB {
	if db == nil {
		return r.DB
	}
	return db
}

func (r *OrderItemRepositoryImpl) BulkCreate(ctx context.Context, db *gorm.DB, items []models.OrderItem) error {
	return r.conn(db).WithContext(ctx).Create(&items).Error
}

// HasDeliveredItem reports whether userID has at least one item of productID
// in an order that has been delivered.
func (r *OrderItemRepositoryImpl) HasDeliveredItem(ctx context.Context, db *gorm.DB, userID, productID string) (bool, error) {
	var count int64
	err := r.conn(db).WithContext(ctx).
		Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.product_id = ? AND orders.user_id = ? AND orders.status = ?", productID, userID, models.OrderStatusDelivered).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

var orderStatuses = []OrderStatus{
	OrderStatusPending,
	OrderStatusShipped,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

var ErrOrderNotCancellable = errors.New("order is no longer pending")

// ParseOrderStatus matches raw against the known statuses, ignoring case and
// surrounding whitespace.
func ParseOrderStatus(raw string) (OrderStatus, bool) {
	normalized := OrderStatus(strings.ToLower(strings.TrimSpace(raw)))
	for _, s := range orderStatuses {
		if s == normalized {
			return s, true
		}
	}
	return "", false
}

func (s OrderStatus) String() string {
	return string(s)
}

// Order is immutable once created except for Status. Total is frozen at
// creation from the item snapshots and never recomputed.
type Order struct {
	ID              string          `gorm:"size:36;not null;uniqueIndex;primary_key"`
	UserID          string          `gorm:"size:36;not null;index"`
	OrderDate       time.Time       `gorm:"not null"`
	ShippingAddress string          `gorm:"type:text;not null"`
	Status          OrderStatus     `gorm:"size:20;not null;default:'pending';index"`
	Total           decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	OrderItems      []OrderItem     `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (o *Order) BeforeCreate(tx *gorm.DB) (err error) {
	if o.ID == "" {
		o.ID = uuid.New().String()
	}
	return
}

func (o *Order) IsOwnedBy(userID string) bool {
	return userID != "" && o.UserID == userID
}

// Cancel moves a pending order to cancelled. It is the only transition a
// customer can trigger.
func (o *Order) Cancel() error {
	if o.Status != OrderStatusPending {
		return ErrOrderNotCancellable
	}
	o.Status = OrderStatusCancelled
	return nil
}

// SetStatus overwrites the status without checking the transition. Reserved
// for admins.
func (o *Order) SetStatus(status OrderStatus) {
	o.Status = status
}

// ItemsTotal sums PriceEach * Quantity over the items.
func (o *Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.OrderItems {
		total = total.Add(item.LineTotal())
	}
	return total
}

func (o *Order) ProductIDs() []string {
	seen := make(map[string]struct{}, len(o.OrderItems))
	ids := make([]string, 0, len(o.OrderItems))
	for _, item := range o.OrderItems {
		if _, ok := seen[item.ProductID]; ok {
			continue
		}
		seen[item.ProductID] = struct{}{}
		ids = append(ids, item.ProductID)
	}
	return ids
}

package services

import (
	"testing"
	"time"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderEmailBodies(t *testing.T) {
	order := &models.Order{
		ID:              "order-1",
		Status:          models.OrderStatusShipped,
		OrderDate:       time.Date(2024, 3, 9, 14, 5, 0, 0, time.UTC),
		ShippingAddress: "<b>12</b> Market Street",
		Total:           decimal.RequireFromString("1234.5"),
		OrderItems:      []models.OrderItem{{Quantity: 1}, {Quantity: 2}},
	}

	placed := BuildOrderPlacedEmailBody(order)
	assert.Contains(t, placed, "order-1")
	assert.Contains(t, placed, "2 item(s)")
	assert.Contains(t, placed, "$1,234.50")
	assert.Contains(t, placed, "&lt;b&gt;12&lt;/b&gt; Market Street")
	assert.NotContains(t, placed, "<b>12</b>")

	status := BuildOrderStatusEmailBody(order)
	assert.Contains(t, status, "<strong>shipped</strong>")
}

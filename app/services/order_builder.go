package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
)

// ProductLookup resolves a product id to the current catalog record. A nil
// product with a nil error means the product does not exist.
type ProductLookup interface {
	FindProduct(ctx context.Context, id string) (*models.Product, error)
}

type ProductLookupFunc func(ctx context.Context, id string) (*models.Product, error)

func (f ProductLookupFunc) FindProduct(ctx context.Context, id string) (*models.Product, error) {
	return f(ctx, id)
}

type OrderLineInput struct {
	ProductID string
	Quantity  int
	SizeLabel string
}

type OrderInput struct {
	ShippingAddress string
	Items           []OrderLineInput
}

// BuildOrder assembles a pending order for userID, snapshotting each
// product's current price into its line. Nothing is persisted.
func BuildOrder(ctx context.Context, catalog ProductLookup, userID string, input OrderInput) (*models.Order, error) {
	address := strings.TrimSpace(input.ShippingAddress)
	if address == "" || len(input.Items) == 0 {
		return nil, apperror.InvalidInput("Invalid request data")
	}

	items := make([]models.OrderItem, 0, len(input.Items))

	for i, line := range input.Items {
		productID := strings.TrimSpace(line.ProductID)
		sizeLabel := strings.TrimSpace(line.SizeLabel)
		if productID == "" || sizeLabel == "" || line.Quantity <= 0 {
			return nil, apperror.InvalidInput("Missing item data")
		}

		product, err := catalog.FindProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("failed to get product %s: %w", productID, err)
		}
		if product == nil {
			return nil, apperror.NotFound("Product not found")
		}

		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Position:  i,
			Quantity:  line.Quantity,
			SizeLabel: sizeLabel,
			PriceEach: product.Price,
		})
	}

	order := &models.Order{
		UserID:          userID,
		OrderDate:       time.Now(),
		ShippingAddress: address,
		Status:          models.OrderStatusPending,
		OrderItems:      items,
	}
	order.Total = order.ItemsTotal()
	return order, nil
}

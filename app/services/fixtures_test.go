package services

import (
	"context"
	"sync"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type recordingNotifier struct {
	mu      sync.Mutex
	placed  []string
	changed []models.OrderStatus
	err     error
}

func (n *recordingNotifier) OrderPlaced(_ context.Context, email string, _ *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.placed = append(n.placed, email)
	return n.err
}

func (n *recordingNotifier) OrderStatusChanged(_ context.Context, _ string, order *models.Order) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.changed = append(n.changed, order.Status)
	return n.err
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "secret123", Role: role}
	require.NoError(t, repositories.NewUserRepository(db).Create(context.Background(), user))
	return user
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) *models.Product {
	t.Helper()
	category := &models.Category{Name: name + " category", Description: "seeded"}
	require.NoError(t, repositories.NewCategoryRepository(db).Create(context.Background(), category))

	product := &models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		Stock:      10,
		CategoryID: category.ID,
	}
	require.NoError(t, repositories.NewProductRepository(db).Create(context.Background(), product))
	return product
}

func newTestOrderService(db *gorm.DB, notifier OrderNotifier) *OrderService {
	return NewOrderService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewUserRepository(db),
		repositories.NewOrderRepository(db),
		repositories.NewOrderItemRepository(db),
		notifier,
	)
}

func newTestReviewService(db *gorm.DB) *ReviewService {
	return NewReviewService(
		db,
		repositories.NewProductRepository(db),
		repositories.NewOrderItemRepository(db),
		repositories.NewReviewRepository(db),
	)
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Count(&n).Error)
	return n
}

func ratingOf(v float64) *float64 {
	return &v
}

package services

import (
	"context"
	"errors"
	"testing"

	"github.com/Rakhulsr/go-ecommerce-api/app/db/testdb"
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeOrder(t *testing.T, svc *OrderService, user *models.User, productID string, qty int) *models.Order {
	t.Helper()
	order, err := svc.CreateOrder(context.Background(), user, OrderInput{
		ShippingAddress: "12 Market Street",
		Items:           []OrderLineInput{{ProductID: productID, Quantity: qty, SizeLabel: "M"}},
	})
	require.NoError(t, err)
	return order
}

func TestCreateOrderPersistsSnapshot(t *testing.T) {
	db := testdb.Open(t)
	notifier := &recordingNotifier{}
	svc := newTestOrderService(db, notifier)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")
	socks := seedProduct(t, db, "Socks", "4.25")

	order, err := svc.CreateOrder(ctx, user, OrderInput{
		ShippingAddress: "12 Market Street",
		Items: []OrderLineInput{
			{ProductID: shirt.ID, Quantity: 3, SizeLabel: "M"},
			{ProductID: socks.ID, Quantity: 2, SizeLabel: "L"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.True(t, decimal.RequireFromString("68.50").Equal(order.Total))
	assert.Equal(t, []string{"u@example.com"}, notifier.placed)

	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", shirt.ID).Update("price", decimal.RequireFromString("99.00")).Error)

	view, err := svc.GetOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("68.50").Equal(view.Order.Total), "total was %s", view.Order.Total)
	require.Len(t, view.Order.OrderItems, 2)
	assert.Equal(t, shirt.ID, view.Order.OrderItems[0].ProductID)
	assert.True(t, decimal.RequireFromString("20.00").Equal(view.Order.OrderItems[0].PriceEach))
	assert.Equal(t, "Shirt", view.ProductName(shirt.ID))
	assert.Equal(t, "Socks", view.ProductName(socks.ID))
}

func TestCreateOrderRollsBackOnFailure(t *testing.T) {
	db := testdb.Open(t)
	svc := newTestOrderService(db, nil)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")

	_, err := svc.CreateOrder(ctx, user, OrderInput{ShippingAddress: "12 Market Street"})
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))

	_, err = svc.CreateOrder(ctx, user, OrderInput{
		ShippingAddress: "12 Market Street",
		Items: []OrderLineInput{
			{ProductID: shirt.ID, Quantity: 1, SizeLabel: "M"},
			{ProductID: "missing", Quantity: 1, SizeLabel: "M"},
		},
	})
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	assert.Zero(t, countRows(t, db, &models.Order{}))
	assert.Zero(t, countRows(t, db, &models.OrderItem{}))

	_, err = svc.CreateOrder(ctx, nil, OrderInput{})
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))
}

func TestCreateOrderIgnoresNotifierFailure(t *testing.T) {
	db := testdb.Open(t)
	svc := newTestOrderService(db, &recordingNotifier{err: errors.New("smtp down")})

	user := seedUser(t, db, "u@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")

	order := placeOrder(t, svc, user, shirt.ID, 1)
	assert.NotEmpty(t, order.ID)
	assert.EqualValues(t, 1, countRows(t, db, &models.Order{}))
}

func TestOrdersAreScopedToOwner(t *testing.T) {
	db := testdb.Open(t)
	svc := newTestOrderService(db, nil)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", models.RoleCustomer)
	stranger := seedUser(t, db, "stranger@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")
	order := placeOrder(t, svc, owner, shirt.ID, 1)

	_, err := svc.GetOrder(ctx, stranger, order.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = svc.GetOrder(ctx, owner, "missing")
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	_, err = svc.GetOrder(ctx, nil, order.ID)
	assert.Equal(t, apperror.KindUnauthorized, apperror.KindOf(err))

	_, err = svc.CancelOrder(ctx, stranger, order.ID)
	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))

	mine, err := svc.ListUserOrders(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 1)

	theirs, err := svc.ListUserOrders(ctx, stranger)
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestCancelOrder(t *testing.T) {
	db := testdb.Open(t)
	svc := newTestOrderService(db, nil)
	ctx := context.Background()

	user := seedUser(t, db, "u@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")
	order := placeOrder(t, svc, user, shirt.ID, 2)

	_, err := svc.CancelOrder(ctx, nil, order.ID)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	cancelled, err := svc.CancelOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, cancelled.Status)

	view, err := svc.GetOrder(ctx, user, order.ID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusCancelled, view.Order.Status)

	_, err = svc.CancelOrder(ctx, user, order.ID)
	assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
	assert.ErrorIs(t, err, models.ErrOrderNotCancellable)
}

func TestCancelOrderRejectsNonPending(t *testing.T) {
	for _, status := range []string{"shipped", "delivered", "cancelled"} {
		t.Run(status, func(t *testing.T) {
			db := testdb.Open(t)
			svc := newTestOrderService(db, nil)
			ctx := context.Background()

			admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
			user := seedUser(t, db, "u@example.com", models.RoleCustomer)
			shirt := seedProduct(t, db, "Shirt", "20.00")
			order := placeOrder(t, svc, user, shirt.ID, 1)

			_, err := svc.UpdateOrderStatus(ctx, admin, order.ID, status)
			require.NoError(t, err)

			_, err = svc.CancelOrder(ctx, user, order.ID)
			require.Error(t, err)
			assert.Equal(t, apperror.KindInvalidInput, apperror.KindOf(err))
			assert.Contains(t, err.Error(), "You can only cancel orders that are still pending.")

			view, err := svc.GetOrder(ctx, user, order.ID)
			require.NoError(t, err)
			assert.Equal(t, models.OrderStatus(status), view.Order.Status)
		})
	}
}

func TestUpdateOrderStatus(t *testing.T) {
	db := testdb.Open(t)
	notifier := &recordingNotifier{}
	svc := newTestOrderService(db, notifier)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	user := seedUser(t, db, "u@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")
	order := placeOrder(t, svc, user, shirt.ID, 1)

	tests := []struct {
		name    string
		caller  *models.User
		orderID string
		status  string
		kind    apperror.Kind
	}{
		{name: "anonymous", caller: nil, orderID: order.ID, status: "shipped", kind: apperror.KindForbidden},
		{name: "customer", caller: user, orderID: order.ID, status: "shipped", kind: apperror.KindForbidden},
		{name: "unknown order", caller: admin, orderID: "missing", status: "shipped", kind: apperror.KindNotFound},
		{name: "blank status", caller: admin, orderID: order.ID, status: " ", kind: apperror.KindInvalidInput},
		{name: "unknown status", caller: admin, orderID: order.ID, status: "lost", kind: apperror.KindInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.UpdateOrderStatus(ctx, tt.caller, tt.orderID, tt.status)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	updated, err := svc.UpdateOrderStatus(ctx, admin, order.ID, "DELIVERED")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)

	reverted, err := svc.UpdateOrderStatus(ctx, admin, order.ID, "pending")
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, reverted.Status)

	assert.Equal(t, []models.OrderStatus{models.OrderStatusDelivered, models.OrderStatusPending}, notifier.changed)
}

func TestListAllOrders(t *testing.T) {
	db := testdb.Open(t)
	svc := newTestOrderService(db, nil)
	ctx := context.Background()

	admin := seedUser(t, db, "admin@example.com", models.RoleAdmin)
	alice := seedUser(t, db, "alice@example.com", models.RoleCustomer)
	bob := seedUser(t, db, "bob@example.com", models.RoleCustomer)
	shirt := seedProduct(t, db, "Shirt", "20.00")
	placeOrder(t, svc, alice, shirt.ID, 1)
	placeOrder(t, svc, bob, shirt.ID, 2)

	_, err := svc.ListAllOrders(ctx, alice)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	views, err := svc.ListAllOrders(ctx, admin)
	require.NoError(t, err)
	require.Len(t, views, 2)

	customers := []string{views[0].CustomerEmail, views[1].CustomerEmail}
	assert.ElementsMatch(t, []string{"alice@example.com", "bob@example.com"}, customers)
	for _, view := range views {
		require.Len(t, view.Order.OrderItems, 1)
		assert.Equal(t, "Shirt", view.ProductName(shirt.ID))
	}
}

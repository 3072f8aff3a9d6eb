package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/Rakhulsr/go-ecommerce-api/app/models"
	"github.com/Rakhulsr/go-ecommerce-api/app/repositories"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"gorm.io/gorm"
)

// OrderView is an order together with the display data resolved from the
// catalog and user tables.
type OrderView struct {
	Order         models.Order
	CustomerEmail string
	productNames  map[string]string
}

// ProductName returns the current catalog name of productID, or "" if the
// product no longer exists.
func (v OrderView) ProductName(productID string) string {
	return v.productNames[productID]
}

type OrderService struct {
	db            *gorm.DB
	productRepo   repositories.ProductRepositoryImpl
	userRepo      repositories.UserRepositoryImpl
	orderRepo     repositories.OrderRepository
	orderItemRepo repositories.OrderItemRepository
	notifier      OrderNotifier
}

func NewOrderService(
	db *gorm.DB,
	productRepo repositories.ProductRepositoryImpl,
	userRepo repositories.UserRepositoryImpl,
	orderRepo repositories.OrderRepository,
	orderItemRepo repositories.OrderItemRepository,
	notifier OrderNotifier,
) *OrderService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &OrderService{
		db:            db,
		productRepo:   productRepo,
		userRepo:      userRepo,
		orderRepo:     orderRepo,
		orderItemRepo: orderItemRepo,
		notifier:      notifier,
	}
}

// CreateOrder builds and stores a new order for user. Prices are read under
// a shared lock inside the same transaction that writes the order and its
// items, so either everything is stored or nothing is.
func (s *OrderService) CreateOrder(ctx context.Context, user *models.User, input OrderInput) (*models.Order, error) {
	if user == nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	var order *models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		catalog := ProductLookupFunc(func(ctx context.Context, id string) (*models.Product, error) {
			return s.productRepo.GetByIDForShare(ctx, tx, id)
		})

		built, err := BuildOrder(ctx, catalog, user.ID, input)
		if err != nil {
			return err
		}

		if err := s.orderRepo.Create(ctx, tx, built); err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for i := range built.OrderItems {
			built.OrderItems[i].OrderID = built.ID
		}
		if err := s.orderItemRepo.BulkCreate(ctx, tx, built.OrderItems); err != nil {
			return fmt.Errorf("failed to create order items: %w", err)
		}

		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("OrderService.CreateOrder: order %s created for user %s (%d items, total %s)", order.ID, user.ID, len(order.OrderItems), order.Total.StringFixed(2))

	if err := s.notifier.OrderPlaced(ctx, user.Email, order); err != nil {
		log.Printf("OrderService.CreateOrder: failed to notify %s about order %s: %v", user.Email, order.ID, err)
	}
	return order, nil
}

// GetOrder returns the order only to its owner. Everyone else gets NotFound
// so order ids do not leak across customers.
func (s *OrderService) GetOrder(ctx context.Context, user *models.User, orderID string) (*OrderView, error) {
	if user == nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	order, err := s.findOwnedOrder(ctx, user, orderID)
	if err != nil {
		return nil, err
	}

	views, err := s.buildViews(ctx, []models.Order{*order}, false)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

func (s *OrderService) ListUserOrders(ctx context.Context, user *models.User) ([]OrderView, error) {
	if user == nil {
		return nil, apperror.Unauthorized("Unauthorized")
	}

	orders, err := s.orderRepo.FindByUserID(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders for user %s: %w", user.ID, err)
	}
	return s.buildViews(ctx, orders, false)
}

func (s *OrderService) CancelOrder(ctx context.Context, user *models.User, orderID string) (*models.Order, error) {
	if user == nil {
		return nil, apperror.Forbidden("Access denied")
	}

	order, err := s.findOwnedOrder(ctx, user, orderID)
	if err != nil {
		return nil, err
	}

	if err := order.Cancel(); err != nil {
		if errors.Is(err, models.ErrOrderNotCancellable) {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "You can only cancel orders that are still pending.", err)
		}
		return nil, err
	}

	changed, err := s.orderRepo.CompareAndSetStatus(ctx, order.ID, models.OrderStatusPending, models.OrderStatusCancelled)
	if err != nil {
		return nil, err
	}
	if !changed {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "You can only cancel orders that are still pending.", models.ErrOrderNotCancellable)
	}

	log.Printf("OrderService.CancelOrder: order %s cancelled by user %s", order.ID, user.ID)
	return order, nil
}

func (s *OrderService) ListAllOrders(ctx context.Context, admin *models.User) ([]OrderView, error) {
	if !admin.IsAdmin() {
		return nil, apperror.Forbidden("Access denied")
	}
	return s.AllOrders(ctx)
}

// AllOrders lists every order without an access check. It backs
// ListAllOrders and the operator report.
func (s *OrderService) AllOrders(ctx context.Context) ([]OrderView, error) {
	orders, err := s.orderRepo.GetAllOrders(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	return s.buildViews(ctx, orders, true)
}

// UpdateOrderStatus overwrites the status of any order with any known status.
// No transition rules apply on this path.
func (s *OrderService) UpdateOrderStatus(ctx context.Context, admin *models.User, orderID, rawStatus string) (*models.Order, error) {
	if !admin.IsAdmin() {
		return nil, apperror.Forbidden("Access denied")
	}

	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil {
		return nil, apperror.NotFound("Order not found")
	}

	if strings.TrimSpace(rawStatus) == "" {
		return nil, apperror.InvalidInput("Missing status")
	}
	status, ok := models.ParseOrderStatus(rawStatus)
	if !ok {
		return nil, apperror.InvalidInput("Invalid status")
	}

	previous := order.Status
	order.SetStatus(status)
	if err := s.orderRepo.UpdateStatus(ctx, order.ID, order.Status); err != nil {
		return nil, fmt.Errorf("failed to update order %s status: %w", order.ID, err)
	}
	log.Printf("OrderService.UpdateOrderStatus: admin %s moved order %s from %s to %s", admin.ID, order.ID, previous, order.Status)

	if previous != order.Status {
		s.notifyStatusChange(ctx, order)
	}
	return order, nil
}

func (s *OrderService) findOwnedOrder(ctx context.Context, user *models.User, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order %s: %w", orderID, err)
	}
	if order == nil || !order.IsOwnedBy(user.ID) {
		return nil, apperror.NotFound("Order not found or access denied")
	}
	return order, nil
}

func (s *OrderService) buildViews(ctx context.Context, orders []models.Order, withCustomer bool) ([]OrderView, error) {
	var productIDs, userIDs []string
	seenUsers := make(map[string]struct{})
	for i := range orders {
		productIDs = append(productIDs, orders[i].ProductIDs()...)
		if _, ok := seenUsers[orders[i].UserID]; !ok {
			seenUsers[orders[i].UserID] = struct{}{}
			userIDs = append(userIDs, orders[i].UserID)
		}
	}

	names, err := s.productRepo.GetNamesByIDs(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	emails := map[string]string{}
	if withCustomer {
		emails, err = s.userRepo.FindEmailsByIDs(ctx, userIDs)
		if err != nil {
			return nil, err
		}
	}

	views := make([]OrderView, 0, len(orders))
	for _, order := range orders {
		views = append(views, OrderView{
			Order:         order,
			CustomerEmail: emails[order.UserID],
			productNames:  names,
		})
	}
	return views, nil
}

func (s *OrderService) notifyStatusChange(ctx context.Context, order *models.Order) {
	customer, err := s.userRepo.FindByID(ctx, order.UserID)
	if err != nil || customer == nil {
		log.Printf("OrderService.notifyStatusChange: customer %s of order %s not found: %v", order.UserID, order.ID, err)
		return
	}
	if err := s.notifier.OrderStatusChanged(ctx, customer.Email, order); err != nil {
		log.Printf("OrderService.notifyStatusChange: failed to notify %s about order %s: %v", customer.Email, order.ID, err)
	}
}

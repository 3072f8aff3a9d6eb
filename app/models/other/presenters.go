package other

import (
	"github.com/Rakhulsr/go-ecommerce-api/app/models"
)

const (
	OrderDateLayout  = "2006-01-02 15:04"
	ReviewDateLayout = "2006-01-02 15:04:05"
)

// NewOrderItemResponses lists items in their stored order. productName
// resolves the current catalog name of a product id.
func NewOrderItemResponses(items []models.OrderItem, productName func(id string) string) []OrderItemResponse {
	resp := make([]OrderItemResponse, 0, len(items))
	for _, item := range items {
		resp = append(resp, OrderItemResponse{
			ProductName: productName(item.ProductID),
			Size:        item.SizeLabel,
			Quantity:    item.Quantity,
			PriceEach:   item.PriceEach.StringFixed(2),
		})
	}
	return resp
}

func NewOrderDetailResponse(order models.Order, productName func(id string) string) OrderDetailResponse {
	return OrderDetailResponse{
		ID:              order.ID,
		Status:          order.Status.String(),
		ShippingAddress: order.ShippingAddress,
		OrderDate:       order.OrderDate.Format(OrderDateLayout),
		Total:           order.Total.StringFixed(2),
		Items:           NewOrderItemResponses(order.OrderItems, productName),
	}
}

func NewAdminOrderResponse(order models.Order, customer string, productName func(id string) string) AdminOrderResponse {
	return AdminOrderResponse{
		OrderID:         order.ID,
		Customer:        customer,
		Status:          order.Status.String(),
		OrderDate:       order.OrderDate.Format(OrderDateLayout),
		ShippingAddress: order.ShippingAddress,
		Total:           order.Total.StringFixed(2),
		Items:           NewOrderItemResponses(order.OrderItems, productName),
	}
}

func NewReviewResponse(review models.Review, userEmail, productName string) ReviewResponse {
	return ReviewResponse{
		ID:        review.ID,
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt.Format(ReviewDateLayout),
		User:      ReviewUser{Email: userEmail},
		Product:   ReviewProduct{ID: review.ProductID, Name: productName},
	}
}

func NewCategoryResponse(category models.Category) CategoryResponse {
	return CategoryResponse{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
	}
}

// NewProductResponse renders product with its category, or a null category
// when it is nil. imageURL turns a stored image path into a public URL.
func NewProductResponse(product models.Product, category *models.Category, imageURL func(path string) string) ProductResponse {
	resp := ProductResponse{
		ID:          product.ID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price.StringFixed(2),
		Stock:       product.Stock,
		Brand:       product.Brand,
		Images:      make([]string, 0, len(product.ProductImages)),
	}
	if !product.UpdatedAt.IsZero() {
		resp.UpdatedAt = product.UpdatedAt.Format(ReviewDateLayout)
	}
	if category != nil {
		resp.Category = &CategorySummary{Name: category.Name, Description: category.Description}
	}
	for _, image := range product.ProductImages {
		resp.Images = append(resp.Images, imageURL(image.ImageURL))
	}
	return resp
}

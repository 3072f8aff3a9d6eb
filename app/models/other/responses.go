// Package other holds the JSON shapes the API writes. They are kept apart
// from the GORM models so column changes never leak into responses.
package other

type MessageResponse struct {
	Message string `json:"message"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreatedOrderResponse struct {
	Message string `json:"message"`
	OrderID string `json:"order_id"`
}

type OrderItemResponse struct {
	ProductName string `json:"product_name"`
	Size        string `json:"size"`
	Quantity    int    `json:"quantity"`
	PriceEach   string `json:"price_each"`
}

type OrderDetailResponse struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	ShippingAddress string              `json:"shippingAddress"`
	OrderDate       string              `json:"orderDate"`
	Total           string              `json:"total"`
	Items           []OrderItemResponse `json:"items"`
}

type CancelOrderResponse struct {
	Message   string `json:"message"`
	OrderID   string `json:"orderId"`
	NewStatus string `json:"newStatus"`
}

type AdminOrderResponse struct {
	OrderID         string              `json:"order_id"`
	Customer        string              `json:"customer"`
	Status          string              `json:"status"`
	OrderDate       string              `json:"order_date"`
	ShippingAddress string              `json:"shipping_address"`
	Total           string              `json:"total"`
	Items           []OrderItemResponse `json:"items"`
}

type OrderStatusResponse struct {
	Message   string `json:"message"`
	OrderID   string `json:"order_id"`
	NewStatus string `json:"new_status"`
}

type ReviewUser struct {
	Email string `json:"email"`
}

type ReviewProduct struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ReviewResponse struct {
	ID        string        `json:"id"`
	Rating    int           `json:"rating"`
	Comment   *string       `json:"comment"`
	CreatedAt string        `json:"createdAt"`
	User      ReviewUser    `json:"user"`
	Product   ReviewProduct `json:"product"`
}

type CategorySummary struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CategoryResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type ProductResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       string           `json:"price"`
	Stock       int              `json:"stock"`
	Brand       string           `json:"brand"`
	Category    *CategorySummary `json:"category"`
	Images      []string         `json:"images"`
	UpdatedAt   string           `json:"updatedAt,omitempty"`
}

type ProductListResponse struct {
	Data []ProductResponse `json:"data"`
}

package handlers

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
)

type OrderHandler struct {
	render    *renderer.Renderer
	orders    *services.OrderService
	validator *validator.Validate
}

func NewOrderHandler(r *renderer.Renderer, orders *services.OrderService, validator *validator.Validate) *OrderHandler {
	return &OrderHandler{
		render:    r,
		orders:    orders,
		validator: validator,
	}
}

type orderItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
	SizeLabel string `json:"sizeLabel" validate:"max=50"`
}

type createOrderRequest struct {
	ShippingAddress string             `json:"shippingAddress" validate:"required"`
	Items           []orderItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (req createOrderRequest) toInput() services.OrderInput {
	input := services.OrderInput{
		ShippingAddress: req.ShippingAddress,
		Items:           make([]services.OrderLineInput, 0, len(req.Items)),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, services.OrderLineInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			SizeLabel: item.SizeLabel,
		})
	}
	return input
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := helpers.DecodeJSON(r, &req, "Invalid request data"); err != nil {
		h.render.Error(w, err)
		return
	}
	if err := helpers.Validate(h.validator, &req, "Invalid request data"); err != nil {
		h.render.Error(w, err)
		return
	}

	order, err := h.orders.CreateOrder(r.Context(), helpers.UserFromContext(r.Context()), req.toInput())
	if err != nil {
		h.render.Error(w, err)
		return
	}

	h.render.JSON(w, http.StatusAccepted, other.CreatedOrderResponse{
		Message: "Order created successfully",
		OrderID: order.ID,
	})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListUserOrders(r.Context(), helpers.UserFromContext(r.Context()))
	if err != nil {
		h.render.Error(w, err)
		return
	}

	resp := make([]other.OrderDetailResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, other.NewOrderDetailResponse(view.Order, view.ProductName))
	}
	h.render.JSON(w, http.StatusOK, resp)
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	view, err := h.orders.GetOrder(r.Context(), helpers.UserFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		h.render.Error(w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, other.NewOrderDetailResponse(view.Order, view.ProductName))
}

func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user := helpers.UserFromContext(r.Context())
	order, err := h.orders.CancelOrder(r.Context(), user, mux.Vars(r)["id"])
	if err != nil {
		h.render.Error(w, err)
		return
	}

	log.Printf("OrderHandler.CancelOrder: order %s cancelled", order.ID)
	h.render.JSON(w, http.StatusOK, other.CancelOrderResponse{
		Message:   "Order cancelled successfully.",
		OrderID:   order.ID,
		NewStatus: order.Status.String(),
	})
}

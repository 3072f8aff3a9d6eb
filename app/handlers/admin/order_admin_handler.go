package admin

import (
	"log"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
	"github.com/gorilla/mux"
)

type AdminHandler struct {
	render *renderer.Renderer
	orders *services.OrderService
}

func NewAdminHandler(r *renderer.Renderer, orders *services.OrderService) *AdminHandler {
	return &AdminHandler{render: r, orders: orders}
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *AdminHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	views, err := h.orders.ListAllOrders(r.Context(), helpers.UserFromContext(r.Context()))
	if err != nil {
		h.render.Error(w, err)
		return
	}

	resp := make([]other.AdminOrderResponse, 0, len(views))
	for _, view := range views {
		resp = append(resp, other.NewAdminOrderResponse(view.Order, view.CustomerEmail, view.ProductName))
	}
	h.render.JSON(w, http.StatusOK, resp)
}

// UpdateOrderStatus reads the body leniently: an unreadable body counts as a
// missing status, which is reported only after the order is known to exist.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := helpers.DecodeJSON(r, &req, "Invalid JSON"); err != nil {
		log.Printf("AdminHandler.UpdateOrderStatus: unreadable body: %v", err)
	}

	order, err := h.orders.UpdateOrderStatus(r.Context(), helpers.UserFromContext(r.Context()), mux.Vars(r)["id"], req.Status)
	if err != nil {
		h.render.Error(w, err)
		return
	}

	h.render.JSON(w, http.StatusOK, other.OrderStatusResponse{
		Message:   "Order status updated",
		OrderID:   order.ID,
		NewStatus: order.Status.String(),
	})
}

package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
)

type Pinger interface {
	PingContext(ctx context.Context) error
}

type HomeHandler struct {
	render *renderer.Renderer
	db     Pinger
}

func NewHomeHandler(r *renderer.Renderer, db Pinger) *HomeHandler {
	return &HomeHandler{render: r, db: db}
}

// Home reports that the API is up and its database reachable.
func (h *HomeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if err := h.db.PingContext(r.Context()); err != nil {
		h.render.Error(w, fmt.Errorf("database unreachable: %w", err))
		return
	}
	h.render.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

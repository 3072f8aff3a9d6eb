package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Rakhulsr/go-ecommerce-api/app/helpers"
	"github.com/Rakhulsr/go-ecommerce-api/app/models/other"
	"github.com/Rakhulsr/go-ecommerce-api/app/services"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/apperror"
	"github.com/Rakhulsr/go-ecommerce-api/app/utils/renderer"
)

type ReviewHandler struct {
	render  *renderer.Renderer
	reviews *services.ReviewService
}

func NewReviewHandler(r *renderer.Renderer, reviews *services.ReviewService) *ReviewHandler {
	return &ReviewHandler{render: r, reviews: reviews}
}

// Rating stays a json.Number so both 4 and 4.5 (and "4") are accepted and
// truncated later.
type createReviewRequest struct {
	ProductID string      `json:"productId"`
	Rating    json.Number `json:"rating"`
	Comment   string      `json:"comment"`
}

func (h *ReviewHandler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req createReviewRequest
	if err := helpers.DecodeJSON(r, &req, "Invalid JSON"); err != nil {
		h.render.Error(w, err)
		return
	}

	input := services.ReviewInput{ProductID: req.ProductID, Comment: req.Comment}
	if req.Rating != "" {
		rating, err := req.Rating.Float64()
		if err != nil {
			h.render.Error(w, apperror.Wrap(apperror.KindInvalidInput, "missing productId or rating", err))
			return
		}
		input.Rating = &rating
	}

	view, err := h.reviews.CreateReview(r.Context(), helpers.UserFromContext(r.Context()), input)
	if err != nil {
		h.render.Error(w, err)
		return
	}

	h.render.JSON(w, http.StatusCreated, other.NewReviewResponse(view.Review, view.UserEmail, view.ProductName))
}
